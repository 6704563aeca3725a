package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	logout   *auth.Logout
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, logout *auth.Logout, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{register: register, login: login, logout: logout, log: log}
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresAt   int64    `json:"expires_at"`
	User        UserView `json:"user"`
}

func tokenResponse(res *auth.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token.Token,
		TokenType:   "bearer",
		ExpiresAt:   res.Token.ExpiresAt.Unix(),
		User:        userView(res.User),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	email := SanitizeEmail(body.Email)
	name := strings.TrimSpace(body.Name)
	if email == "" || name == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid name or email")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	respondJSON(w, h.log, http.StatusOK, tokenResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	respondJSON(w, h.log, http.StatusOK, tokenResponse(result))
}

// Logout revokes the token the request was authenticated with.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := h.logout.Execute(r.Context(), p.Claims); err != nil {
		AuditLog(h.log, r, "user.logout", p.User.ID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.logout", p.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("logout", true)
	respondJSON(w, h.log, http.StatusOK, map[string]string{"message": "Logged out"})
}
