package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zafran-house/ordering/internal/auth"
	"github.com/zafran-house/ordering/internal/franchise"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// handleLogin backs the combined sign-in/sign-up form.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		jsonError(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		jsonError(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	session, created, err := s.auth.SignInOrSignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyRegistered) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "this email is already registered",
				"hint":  "if you forgot your password, use the reset link",
			})
			return
		}
		s.logger.Error(ctx, "login", err, nil)
		jsonError(w, "sign in failed, please try again", http.StatusBadGateway)
		return
	}

	setAuthCookie(w, session.AccessToken, session.ExpiresIn)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]interface{}{
		"created": created,
		"user":    session.User,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(authTokenCookieName); err == nil && c.Value != "" {
		// Best effort: the cookie is cleared even when the remote
		// revocation fails.
		if err := s.auth.SignOut(r.Context(), c.Value); err != nil {
			s.logger.Warn(r.Context(), "remote sign out failed", map[string]interface{}{"err": err.Error()})
		}
	}
	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

type resetRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		jsonError(w, "email is required", http.StatusBadRequest)
		return
	}

	if err := s.auth.ResetPassword(r.Context(), req.Email); err != nil {
		s.logger.Error(r.Context(), "password reset", err, nil)
		jsonError(w, "could not send reset email, please try again", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset email sent"})
}

func (s *Server) handleFranchise(w http.ResponseWriter, r *http.Request) {
	var app franchise.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.franchise.Submit(r.Context(), app); err != nil {
		var verr *franchise.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		s.logger.Error(r.Context(), "franchise application", err, nil)
		jsonError(w, "could not submit application, please try again", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "application received"})
}
