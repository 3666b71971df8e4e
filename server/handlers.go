package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/jrsteele09/go-auth-dispatch/users"
	"github.com/rs/zerolog/log"
)

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateResponse is returned by a successful login.
type AuthenticateResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *sessions.User `json:"user"`
}

// UserUpdate carries the flags an admin may change. Nil fields are left alone.
type UserUpdate struct {
	Active *bool `json:"active,omitempty"`
	Editor *bool `json:"editor,omitempty"`
	Admin  *bool `json:"admin,omitempty"`
}

// AuthenticateHandler exchanges email and password for a session token.
func (s *Server) AuthenticateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authenticateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Bad payload")
			return
		}

		email := users.NormalizeEmail(req.Email)
		if email == "" || req.Password == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", errors.ErrInvalidCredentials.Error())
			return
		}

		user, err := s.users.GetByEmail(email)
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "unauthorized", errors.ErrInvalidCredentials.Error())
			return
		}
		if !user.Active {
			writeError(w, http.StatusUnauthorized, "unauthorized", errors.ErrUserInactive.Error())
			return
		}

		raw, expiresAt, err := s.issuer.Issue(user)
		if err != nil {
			log.Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
			writeError(w, http.StatusInternalServerError, "server_error", "Unable to issue token")
			return
		}

		writeJSON(w, http.StatusOK, AuthenticateResponse{Token: raw, ExpiresAt: expiresAt, User: user.Snapshot()})
	}
}

func (s *Server) VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(s.version))
	}
}

// MeHandler returns the caller's current user record.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		writeJSON(w, http.StatusOK, user.Snapshot())
	}
}

// UpdateUserHandler lets an admin change another user's active, editor and admin flags.
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var update UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Bad payload")
			return
		}

		if _, err := s.users.GetByID(id); err != nil {
			writeError(w, http.StatusNotFound, "not_found", errors.ErrUserNotFound.Error())
			return
		}

		if err := s.applyUserUpdate(id, update); err != nil {
			log.Err(err).Str("user_id", id).Msg("Failed to update user")
			writeError(w, http.StatusInternalServerError, "server_error", "Unable to update user")
			return
		}

		updated, err := s.users.GetByID(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", errors.ErrUserNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) applyUserUpdate(id string, update UserUpdate) error {
	if update.Active != nil {
		if err := s.users.SetActive(id, *update.Active); err != nil {
			return err
		}
	}
	if update.Editor != nil {
		if err := s.users.SetEditor(id, *update.Editor); err != nil {
			return err
		}
	}
	if update.Admin != nil {
		if err := s.users.SetAdmin(id, *update.Admin); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, code int, errorCode, description string) {
	writeJSON(w, code, map[string]string{"error": errorCode, "error_description": description})
}
