package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	CategoryID  *int64          `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

func (r productRequest) validate() []string {
	var fields []string
	if r.Name == "" {
		fields = append(fields, "name is required")
	}
	if r.Price.IsNegative() {
		fields = append(fields, "price must not be negative")
	}
	if r.Stock < 0 {
		fields = append(fields, "stock must not be negative")
	}
	return fields
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	product, err := h.products.Create(r.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Featured:    req.Featured,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	product, err := h.products.Get(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fields := parseProductFilter(r)
	if len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, []string) {
	var fields []string
	filter := domain.ProductFilter{Name: r.URL.Query().Get("name")}

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields = append(fields, "categoryId must be an integer")
		} else {
			filter.CategoryID = id
		}
	}
	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fields = append(fields, "minPrice must be a number")
		} else {
			filter.MinPrice = &price
		}
	}
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fields = append(fields, "maxPrice must be a number")
		} else {
			filter.MaxPrice = &price
		}
	}
	return filter, fields
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "body must be valid JSON")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeValidationError(w, fields...)
		return
	}

	product, err := h.products.Update(r.Context(), domain.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Featured:    req.Featured,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "id must be an integer")
		return
	}

	if err := h.products.Delete(r.Context(), productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
