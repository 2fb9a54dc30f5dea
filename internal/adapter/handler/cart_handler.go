package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dangtrinh58/goshop/internal/core/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r)

	cart, err := h.carts.Get(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}

	var fields []string
	if req.ProductID <= 0 {
		fields = append(fields, "productId must be a positive integer")
	}
	if req.Quantity <= 0 {
		fields = append(fields, "quantity must be a positive integer")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	id, _ := identityFrom(r)
	cart, err := h.carts.AddItem(r.Context(), id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeValidationError(w, "productId must be an integer")
		return
	}

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}
	if req.Quantity <= 0 {
		writeValidationError(w, "quantity must be a positive integer")
		return
	}

	id, _ := identityFrom(r)
	cart, err := h.carts.UpdateItemQuantity(r.Context(), id.UserID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeValidationError(w, "productId must be an integer")
		return
	}

	id, _ := identityFrom(r)
	if err := h.carts.RemoveItem(r.Context(), id.UserID, productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r)

	if err := h.carts.Clear(r.Context(), id.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
