package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/db"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// handleRegister creates a new account and returns a token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.CreateUser(r.Context(), strings.TrimSpace(req.Name), email, hash)
	if err != nil {
		if err == db.ErrEmailTaken {
			apiErr := &ErrEmailAlreadyExists{Email: email}
			s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
			return
		}
		s.log.Error("user creation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.LoginResponse{
		User:  apiUser(user),
		Token: token,
	})
}

// handleLogin verifies credentials and returns a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		s.log.Error("user lookup failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		apiErr := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		User:  apiUser(user),
		Token: token,
	})
}

func apiUser(user *db.User) *types.User {
	return &types.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
