package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithMicrosoft(w http.ResponseWriter, r *http.Request)
	OAuthCallbackMicrosoft(w http.ResponseWriter, r *http.Request)
	Consent(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService     jwt.Service
	sessionService session.Service
}

func NewAuthHandler(jwtService jwt.Service, sessionService session.Service) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:     jwtService,
		sessionService: sessionService,
	}
}

const oauthStateCookie = "oauth_state"

func stateCookie(state string) *http.Cookie {
	return &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login implements AuthHandler. Password fallback for accounts with a local
// hash.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq session.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	track := session.Tracking{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	tokenResponse, err := a.sessionService.LoginWithPassword(r.Context(), loginReq, track)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt))
	slog.Info("User logged in with password")
	response.Created(w, "User logged in successfully", tokenResponse)
}

// LoginWithMicrosoft implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithMicrosoft(w http.ResponseWriter, r *http.Request) {
	url, state, err := a.sessionService.LoginURL(r.Context())
	if err != nil {
		slog.Error("LoginWithMicrosoft state error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, stateCookie(state))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Consent implements AuthHandler. Redirects to the provider requesting the
// calendar scope on top of the base scope set.
func (a *AuthHandlerImpl) Consent(w http.ResponseWriter, r *http.Request) {
	url, state, err := a.sessionService.ConsentURL(r.Context())
	if err != nil {
		slog.Error("Consent state error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, stateCookie(state))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// OAuthCallbackMicrosoft implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackMicrosoft(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != state {
		slog.Error("OAuth state mismatch")
		response.HandleError(w, session.ErrOAuthStateMismatch)
		return
	}

	track := session.Tracking{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	tokenResponse, err := a.sessionService.HandleCallback(r.Context(), code, track)
	if err != nil {
		slog.Error("OAuth callback error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt))
	slog.Info("User signed in via Microsoft", "destination", tokenResponse.Destination)
	response.Created(w, "User logged in successfully", tokenResponse)
}

// RefreshToken implements AuthHandler. Accepts the refresh token from the
// cookie first, then the body.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req session.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	accessResponse, err := a.sessionService.Refresh(r.Context(), refreshToken)
	if err != nil {
		slog.Error("Refresh service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, accessResponse)
}

// Logout implements AuthHandler. Always succeeds from the caller's point of
// view.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if refreshToken != "" {
		if err := a.sessionService.Logout(r.Context(), refreshToken); err != nil {
			slog.Warn("Logout error", "error", err)
		}
	}

	// Expire the cookie regardless.
	expired := a.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

// Session implements AuthHandler. Describes the caller's active session.
func (a *AuthHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	sessionResponse, err := a.sessionService.Current(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sessionResponse)
}
