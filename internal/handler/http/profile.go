package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
	Route(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// Me implements ProfileHandler.
func (h *ProfileHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile.ToResponse(p))
}

// Sync implements ProfileHandler. Upserts the caller's directory row from
// token-verified identity plus optional body fields. The subject and email
// are never taken from the body.
func (h *ProfileHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	var syncReq profile.SyncRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&syncReq); err != nil {
			slog.Error("Sync decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	ident := profile.Identity{
		Subject: userID,
		Email:   emailFromRequest(r),
	}
	p, err := h.profileService.Sync(r.Context(), ident, syncReq)
	if err != nil {
		slog.Error("Sync service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Profile synced", "subject", p.ID)
	response.SuccessWithMessage(w, "Profile synced", profile.ToResponse(p))
}

// Route implements ProfileHandler. Returns the caller's effective role,
// landing route, and navigation links.
func (h *ProfileHandlerImpl) Route(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	effective := p.EffectiveRole()
	response.Success(w, map[string]interface{}{
		"effective_role": effective,
		"destination":    role.RouteFor(effective),
	})
}
