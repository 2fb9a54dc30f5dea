package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}

	var fields []string
	if !strings.Contains(req.Email, "@") {
		fields = append(fields, "email must be a valid email address")
	}
	if len(req.Password) < 6 {
		fields = append(fields, "password must be at least 6 characters")
	}
	if req.Name == "" {
		fields = append(fields, "name is required")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeValidationError(w, "email and password are required")
		return
	}

	user, tok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: tok})
}
