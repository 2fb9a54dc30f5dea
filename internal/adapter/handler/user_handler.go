package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}
	if req.Password != nil && len(*req.Password) < 6 {
		writeValidationError(w, "password must be at least 6 characters")
		return
	}

	id, _ := identityFrom(r)
	user, err := h.users.Update(r.Context(), userID, domain.UserUpdate{
		Name:     req.Name,
		Age:      req.Age,
		Address:  req.Address,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Password: req.Password,
	}, id.UserID, id.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	id, _ := identityFrom(r)
	if err := h.users.Delete(r.Context(), userID, id.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
