package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
)

// LeaveServiceImpl owns the per-user leave request document. Every mutation
// loads the whole document, rewrites the request collection, and saves it
// whole; concurrent writers are last-write-wins.
//
// Editing deliberately does not remove the original request: the edit flow
// loads an existing request into a draft and resubmission appends a fresh
// record with a new id. Almost certainly a product defect, but it is the
// shipped behavior and downstream reporting may rely on the duplicates, so it
// is kept until product decides otherwise.
type LeaveServiceImpl struct {
	store leave.StoreRepository
}

func NewLeaveService(store leave.StoreRepository) leave.Service {
	return &LeaveServiceImpl{store: store}
}

// Submit implements leave.Service.
func (s *LeaveServiceImpl) Submit(ctx context.Context, userID, displayName string, req leave.SubmitLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	doc, err := s.store.Load(ctx, userID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to load leave document: %w", err)
	}

	now := time.Now()
	request := leave.LeaveRequest{
		ID:          leave.NewRequestID(now),
		User:        displayName,
		Type:        req.Type,
		From:        req.From,
		To:          req.To,
		Reason:      strings.TrimSpace(req.Reason),
		Days:        leave.InclusiveDays(req.From, req.To),
		SubmittedAt: now,
	}

	// Newest first.
	doc.Requests = append([]leave.LeaveRequest{request}, doc.Requests...)

	if err := s.store.Save(ctx, userID, doc); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to save leave document: %w", err)
	}
	return request, nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	doc, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave document: %w", err)
	}
	if doc.Requests == nil {
		return []leave.LeaveRequest{}, nil
	}
	return doc.Requests, nil
}

// EditDraft implements leave.Service.
func (s *LeaveServiceImpl) EditDraft(ctx context.Context, userID, id string) (leave.SubmitLeaveRequestRequest, error) {
	doc, err := s.store.Load(ctx, userID)
	if err != nil {
		return leave.SubmitLeaveRequestRequest{}, fmt.Errorf("failed to load leave document: %w", err)
	}

	for _, r := range doc.Requests {
		if r.ID == id {
			return leave.SubmitLeaveRequestRequest{
				Type:   r.Type,
				From:   r.From,
				To:     r.To,
				Reason: r.Reason,
			}, nil
		}
	}
	return leave.SubmitLeaveRequestRequest{}, leave.ErrLeaveRequestNotFound
}

// Cancel implements leave.Service. Cancelling an id that is no longer present
// succeeds quietly; the end state is the same.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, userID, id string) error {
	doc, err := s.store.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load leave document: %w", err)
	}

	kept := doc.Requests[:0]
	for _, r := range doc.Requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(doc.Requests) {
		return nil
	}
	doc.Requests = kept

	if err := s.store.Save(ctx, userID, doc); err != nil {
		return fmt.Errorf("failed to save leave document: %w", err)
	}
	return nil
}

// ClearAll implements leave.Service.
func (s *LeaveServiceImpl) ClearAll(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear leave document: %w", err)
	}
	return nil
}
