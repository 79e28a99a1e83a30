package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	EditDraft(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ClearAll(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService   leave.Service
	profileService profile.Service
}

func NewLeaveHandler(leaveService leave.Service, profileService profile.Service) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:   leaveService,
		profileService: profileService,
	}
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	requests, err := h.leaveService.List(r.Context(), userID)
	if err != nil {
		slog.Error("Leave list error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	var submitReq leave.SubmitLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := submitReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// The stored record carries a display name, falling back to the email.
	displayName := emailFromRequest(r)
	if p, err := h.profileService.Get(r.Context(), userID); err == nil && p.DisplayName != nil {
		displayName = *p.DisplayName
	}

	request, err := h.leaveService.Submit(r.Context(), userID, displayName, submitReq)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "id", request.ID, "days", request.Days)
	response.Created(w, "Leave request submitted", request)
}

// EditDraft implements LeaveHandler. Returns the stored request's fields as a
// draft; resubmitting goes through Submit and appends a new record.
func (h *LeaveHandlerImpl) EditDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	draft, err := h.leaveService.EditDraft(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, draft)
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	var cancelReq leave.CancelLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := cancelReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.Cancel(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		slog.Error("Cancel service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// ClearAll implements LeaveHandler.
func (h *LeaveHandlerImpl) ClearAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	var clearReq leave.ClearAllRequest
	if err := json.NewDecoder(r.Body).Decode(&clearReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := clearReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.ClearAll(r.Context(), userID); err != nil {
		slog.Error("ClearAll service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Saved leave requests cleared", nil)
}
