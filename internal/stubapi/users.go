package stubapi

import (
	"net/http"

	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmailTaken         = "email is already registered"
	msgInvalidCredentials = "invalid email or password"
	msgInvalidResetToken  = "invalid or expired reset token"
	msgResetEmailSent     = "password reset instructions sent"
	msgPasswordUpdated    = "password has been updated"
)

func userDTO(user *userRecord) backend.UserDTO {
	return backend.UserDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Email:     user.Email,
		Role:      string(user.Role),
	}
}

// handleRegister POST /api/users
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.logger.Warn("POST /users - invalid request body: %v", err)
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Firstname == "" || req.Email == "" || req.Password == "" {
		respondBadRequest(w, "firstname, email and password are required")
		return
	}

	user, ok := s.store.createUser(req.Firstname, req.Email, req.Password)
	if !ok {
		s.logger.Warn("POST /users - email already taken: %s", req.Email)
		respondConflict(w, msgEmailTaken)
		return
	}

	s.logger.Info("POST /users - registered user id=%s", user.ID)
	respondJSON(w, http.StatusCreated, backend.RegisterResponse{
		Message: "registration successful",
		User:    userDTO(user),
	})
}

// handleLogin POST /api/users/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req backend.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.logger.Warn("POST /users/login - invalid request body: %v", err)
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, token, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		s.logger.Warn("POST /users/login - failed login for %s", req.Email)
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	s.logger.Info("POST /users/login - user id=%s logged in", user.ID)
	respondJSON(w, http.StatusOK, backend.LoginResponse{Token: token, User: userDTO(user)})
}

// handleLogout POST /api/users/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.store.revokeToken(bearerToken(r))
	s.logger.Info("POST /users/logout - token revoked")
	respondJSON(w, http.StatusOK, backend.MessageResponse{Message: "logged out"})
}

// handleForgotPassword POST /api/users/forgot-password
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req backend.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// существование email не раскрывается - ответ всегда одинаковый
	if token, ok := s.store.issueResetToken(req.Email); ok {
		s.logger.Info("POST /users/forgot-password - reset token for %s: %s", req.Email, token)
	} else {
		s.logger.Warn("POST /users/forgot-password - unknown email %s", req.Email)
	}

	respondJSON(w, http.StatusOK, backend.MessageResponse{Message: msgResetEmailSent})
}

// handleResetPassword POST /api/users/reset-password
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req backend.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.NewPassword == "" {
		respondBadRequest(w, "newPassword is required")
		return
	}

	if !s.store.resetPassword(req.Email, req.Token, req.NewPassword) {
		s.logger.Warn("POST /users/reset-password - invalid token for %s", req.Email)
		respondBadRequest(w, msgInvalidResetToken)
		return
	}

	s.logger.Info("POST /users/reset-password - password updated for %s", req.Email)
	respondJSON(w, http.StatusOK, backend.MessageResponse{Message: msgPasswordUpdated})
}
