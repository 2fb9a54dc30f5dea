package handler

import (
	"net/http"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
	"github.com/dangtrinh58/goshop/internal/port"
)

type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Products   *service.ProductService
	Categories *service.CategoryService
	Carts      *service.CartService
	Orders     *service.OrderService
	Stats      *service.StatsService
}

// NewRouter builds the full HTTP surface. Catalog reads are public; cart and
// order placement require any authenticated user; order workflow and stats
// are restricted to staff/admin roles.
func NewRouter(svcs Services, tokens port.TokenIssuer, metrics *Metrics) http.Handler {
	authH := NewAuthHandler(svcs.Auth)
	userH := NewUserHandler(svcs.Users)
	productH := NewProductHandler(svcs.Products)
	categoryH := NewCategoryHandler(svcs.Categories)
	cartH := NewCartHandler(svcs.Carts)
	orderH := NewOrderHandler(svcs.Orders)
	statsH := NewStatsHandler(svcs.Stats)

	authed := func(fn http.HandlerFunc) http.HandlerFunc {
		return authenticate(tokens, fn)
	}
	admin := func(fn http.HandlerFunc) http.HandlerFunc {
		return authenticate(tokens, requireRoles([]domain.Role{domain.RoleAdmin}, fn))
	}
	staff := func(fn http.HandlerFunc) http.HandlerFunc {
		return authenticate(tokens, requireRoles([]domain.Role{domain.RoleAdmin, domain.RoleStaff}, fn))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)

	mux.HandleFunc("GET /api/users", admin(userH.List))
	mux.HandleFunc("GET /api/users/{id}", authed(userH.Get))
	mux.HandleFunc("PUT /api/users/{id}", authed(userH.Update))
	mux.HandleFunc("DELETE /api/users/{id}", admin(userH.Delete))

	mux.HandleFunc("GET /api/products", productH.List)
	mux.HandleFunc("GET /api/products/{id}", productH.Get)
	mux.HandleFunc("POST /api/products", admin(productH.Create))
	mux.HandleFunc("PUT /api/products/{id}", admin(productH.Update))
	mux.HandleFunc("DELETE /api/products/{id}", admin(productH.Delete))

	mux.HandleFunc("GET /api/categories", categoryH.List)
	mux.HandleFunc("GET /api/categories/{id}", categoryH.Get)
	mux.HandleFunc("POST /api/categories", admin(categoryH.Create))
	mux.HandleFunc("PUT /api/categories/{id}", admin(categoryH.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", admin(categoryH.Delete))

	mux.HandleFunc("GET /api/cart", authed(cartH.Get))
	mux.HandleFunc("POST /api/cart/items", authed(cartH.AddItem))
	mux.HandleFunc("PUT /api/cart/items/{productId}", authed(cartH.UpdateItem))
	mux.HandleFunc("DELETE /api/cart/items/{productId}", authed(cartH.RemoveItem))
	mux.HandleFunc("DELETE /api/cart", authed(cartH.Clear))

	mux.HandleFunc("POST /api/orders", authed(orderH.Create))
	mux.HandleFunc("GET /api/orders", authed(orderH.ListMine))
	mux.HandleFunc("GET /api/orders/all", admin(orderH.ListAll))
	mux.HandleFunc("PUT /api/orders/{id}/approve", staff(orderH.Approve))
	mux.HandleFunc("PUT /api/orders/{id}/cancel", staff(orderH.Cancel))

	mux.HandleFunc("GET /api/stats/revenue", admin(statsH.TotalRevenue))
	mux.HandleFunc("GET /api/stats/revenue/monthly", admin(statsH.MonthlyRevenue))
	mux.HandleFunc("GET /api/stats/products/top-selling", admin(statsH.TopSellingProducts))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return observe(metrics, mux)
}
