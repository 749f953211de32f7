package server

import (
	"encoding/json"
	"net/http"

	"github.com/projectpulse/pulseauth/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := s.sessions.Login(r.Context(), req.Email, req.Password)
		writeAuthResult(w, result, http.StatusUnauthorized)
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := s.sessions.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password, req.PhoneNumber)
		writeAuthResult(w, result, http.StatusBadRequest)
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := BearerToken(r)
		if tokenString == "" {
			writeJSONError(w, http.StatusUnauthorized, "Missing or malformed Authorization header")
			return
		}

		result := s.sessions.Refresh(r.Context(), tokenString)
		writeAuthResult(w, result, http.StatusUnauthorized)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Logout(r.Context(), BearerToken(r))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.sessions.CurrentUser(r.Context(), BearerToken(r))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		writeJSON(w, http.StatusOK, user.Summary())
	}
}

func writeAuthResult(w http.ResponseWriter, result auth.AuthResult, failureStatus int) {
	status := http.StatusOK
	if !result.Success {
		status = failureStatus
	}
	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
