package http

import (
	"net/http"

	"fbfinance/internal/core"
	"fbfinance/internal/log"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Profile       *core.Profile `json:"profile,omitempty"`
}

// handleRegister creates an account. The new user is NOT signed in: the
// client is expected to go through login afterwards.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	name := sanitizeInput(req.Name)
	if err := s.directory.Register(r.Context(), name, req.Email, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Account registered", log.FieldOperation, log.OpRegister)
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	profile, err := s.directory.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := s.sessions.Start(r.Context(), profile); err != nil {
		respondServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Login", log.FieldOperation, log.OpLogin, log.FieldUserEmail, profile.Email)
	respondJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Profile: &profile})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "Logout", log.FieldOperation, log.OpLogout)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.sessions.Current()
	if !ok {
		respondJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Profile: &profile})
}

// handleState returns the active user's full data blob.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	data, err := s.finance.State(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}
