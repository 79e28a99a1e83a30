package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectoryService struct {
	listErr   error
	deleteErr error
	actions   []string
}

func (f *fakeDirectoryService) List(ctx context.Context, callerID string) ([]profile.Profile, error) {
	f.actions = append(f.actions, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []profile.Profile{{ID: "emp-1", Email: "emp@example.com", Roles: []string{"employee"}}}, nil
}

func (f *fakeDirectoryService) Delete(ctx context.Context, callerID, targetID string) error {
	f.actions = append(f.actions, "delete:"+targetID)
	return f.deleteErr
}

func (f *fakeDirectoryService) AddRole(ctx context.Context, callerID, targetID, role string) error {
	f.actions = append(f.actions, "add_role:"+targetID+":"+role)
	return nil
}

func (f *fakeDirectoryService) RemoveRole(ctx context.Context, callerID, targetID, role string) error {
	f.actions = append(f.actions, "remove_role:"+targetID+":"+role)
	return nil
}

func (f *fakeDirectoryService) ReplaceRoles(ctx context.Context, callerID, targetID string, roles []string) error {
	f.actions = append(f.actions, "replace_roles:"+targetID)
	return nil
}

func adminRequest(t *testing.T, body interface{}, claims map[string]interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", bytes.NewReader(payload))

	jwtSvc := jwt.NewJWTService("test-secret", "1h", "24h")
	token, _, err := jwtSvc.JWTAuth().Encode(claims)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(req.Context(), token, nil)
	return req.WithContext(ctx)
}

func adminClaims() map[string]interface{} {
	return map[string]interface{}{
		"user_id": "admin-1",
		"email":   "admin@example.com",
		"role":    "admin",
		"type":    "access",
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAdminUsersHandler(t *testing.T) {
	t.Run("list returns directory rows", func(t *testing.T) {
		svc := &fakeDirectoryService{}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{Action: directory.ActionList}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"list"}, svc.actions)
	})

	t.Run("delete dispatches with target", func(t *testing.T) {
		svc := &fakeDirectoryService{}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{
			Action:     directory.ActionDelete,
			TargetUser: "emp-1",
		}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"delete:emp-1"}, svc.actions)
	})

	t.Run("non-admin caller gets 403 from the service recheck", func(t *testing.T) {
		svc := &fakeDirectoryService{listErr: directory.ErrAdminPrivilegeRequired}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{Action: directory.ActionList}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	})

	t.Run("self delete maps to 400", func(t *testing.T) {
		svc := &fakeDirectoryService{deleteErr: directory.ErrSelfDelete}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{
			Action:     directory.ActionDelete,
			TargetUser: "admin-1",
		}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partial delete maps to 500", func(t *testing.T) {
		svc := &fakeDirectoryService{deleteErr: directory.ErrPartialDelete}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{
			Action:     directory.ActionDelete,
			TargetUser: "emp-1",
		}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unknown action is a validation error", func(t *testing.T) {
		svc := &fakeDirectoryService{}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{Action: "promote_everyone"}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, svc.actions, "no dispatch on invalid action")
	})

	t.Run("role action without role field is rejected", func(t *testing.T) {
		svc := &fakeDirectoryService{}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := adminRequest(t, directory.ActionRequest{
			Action:     directory.ActionAddRole,
			TargetUser: "emp-1",
		}, adminClaims())
		handler.Users(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, svc.actions)
	})

	t.Run("request without a subject claim gets 401", func(t *testing.T) {
		svc := &fakeDirectoryService{}
		handler := NewAdminHandler(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", bytes.NewReader([]byte(`{"action":"list"}`)))
		handler.Users(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
