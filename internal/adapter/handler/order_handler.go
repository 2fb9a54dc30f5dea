package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	CartItems []domain.OrderLine `json:"cartItems"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}

	var fields []string
	if len(req.CartItems) == 0 {
		fields = append(fields, "cartItems is required and must be a non-empty array")
	}
	for i, line := range req.CartItems {
		if line.ProductID <= 0 {
			fields = append(fields, fmt.Sprintf("cartItems[%d].productId must be a positive integer", i))
		}
		if line.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("cartItems[%d].quantity must be a positive integer", i))
		}
	}
	if len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), id.UserID, req.CartItems)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r)

	orders, err := h.orders.GetOrdersForUser(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAllOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.OrderStatusApproved)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.OrderStatusCancelled)
}

func (h *OrderHandler) setStatus(w http.ResponseWriter, r *http.Request, target domain.OrderStatus) {
	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	order, err := h.orders.SetStatus(r.Context(), orderID, target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
