package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	Users(w http.ResponseWriter, r *http.Request)
}

// AdminHandlerImpl exposes directory management as a single action-dispatch
// endpoint. The route sits behind the role-claim gate, but the service
// re-checks admin status against the store on every action.
type AdminHandlerImpl struct {
	directoryService directory.Service
}

func NewAdminHandler(directoryService directory.Service) AdminHandler {
	return &AdminHandlerImpl{directoryService: directoryService}
}

// Users implements AdminHandler.
func (h *AdminHandlerImpl) Users(w http.ResponseWriter, r *http.Request) {
	callerID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	var actionReq directory.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&actionReq); err != nil {
		slog.Error("Admin action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := actionReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	switch actionReq.Action {
	case directory.ActionList:
		profiles, err := h.directoryService.List(r.Context(), callerID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		users := make([]profile.ProfileResponse, 0, len(profiles))
		for _, p := range profiles {
			users = append(users, profile.ToResponse(p))
		}
		response.Success(w, directory.ActionResponse{Status: "ok", Users: users})

	case directory.ActionDelete:
		if err := h.directoryService.Delete(r.Context(), callerID, actionReq.TargetUser); err != nil {
			slog.Error("Admin delete error", "target", actionReq.TargetUser, "error", err)
			response.HandleError(w, err)
			return
		}
		slog.Info("User deleted from directory", "target", actionReq.TargetUser, "by", callerID)
		response.Success(w, directory.ActionResponse{
			Status: "deleted",
			Target: actionReq.TargetUser,
		})

	case directory.ActionAddRole:
		if err := h.directoryService.AddRole(r.Context(), callerID, actionReq.TargetUser, actionReq.Role); err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, directory.ActionResponse{
			Status: "role_added",
			Target: actionReq.TargetUser,
			Role:   actionReq.Role,
		})

	case directory.ActionRemoveRole:
		if err := h.directoryService.RemoveRole(r.Context(), callerID, actionReq.TargetUser, actionReq.Role); err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, directory.ActionResponse{
			Status: "role_removed",
			Target: actionReq.TargetUser,
			Role:   actionReq.Role,
		})

	case directory.ActionReplaceRoles:
		if err := h.directoryService.ReplaceRoles(r.Context(), callerID, actionReq.TargetUser, actionReq.Roles); err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, directory.ActionResponse{
			Status: "roles_replaced",
			Target: actionReq.TargetUser,
			Roles:  actionReq.Roles,
		})

	default:
		// Unreachable after Validate, kept for safety.
		response.BadRequest(w, "Unknown action", nil)
	}
}
