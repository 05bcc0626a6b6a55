package api

import (
	"net/http"

	"shopora-be/internal/cart"
	"shopora-be/internal/logger"
	"shopora-be/internal/metrics"
	"shopora-be/internal/middleware"
	"shopora-be/internal/order"
	"shopora-be/internal/product"
	"shopora-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type Services struct {
	Users    user.Service
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
}

func NewRouter(s Services) http.Handler {
	auth := NewAuthHandler(s.Users)
	products := NewProductHandler(s.Products)
	carts := NewCartHandler(s.Carts)
	orders := NewOrderHandler(s.Orders)

	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS)
	r.Use(middleware.Auth)
	r.Use(middleware.RateLimit)
	r.Use(countRequests)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Get("/products", products.List)
		r.Get("/products/{id}", products.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/profile", auth.Profile)
			r.Put("/auth/profile", auth.UpdateProfile)

			r.Post("/products", products.Create)
			r.Put("/products/{id}", products.Update)
			r.Delete("/products/{id}", products.Delete)

			r.Get("/cart", carts.Get)
			r.Post("/cart/items", carts.AddItem)
			r.Put("/cart/items/{id}", carts.UpdateItem)
			r.Delete("/cart/items/{id}", carts.RemoveItem)
			r.Delete("/cart", carts.Clear)

			r.Post("/orders", orders.Create)
			r.Get("/orders", orders.List)
			r.Get("/orders/{id}", orders.Get)
			r.Put("/orders/{id}/cancel", orders.Cancel)
			r.Put("/orders/{id}/status", orders.UpdateStatus)
			r.Put("/orders/{id}/request-cancellation", orders.RequestCancellation)
			r.Put("/orders/{id}/respond-cancellation", orders.RespondCancellation)
			r.Put("/orders/{id}/confirm-delivery", orders.ConfirmDelivery)
			r.Put("/orders/{id}/mark-delivered", orders.MarkDelivered)

			r.Get("/orders/admin", orders.ListAll)
			r.Get("/orders/admin/pending-cancellations", orders.PendingCancellations)
			r.Get("/orders/admin/pending-deliveries", orders.PendingDeliveries)
		})
	})

	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.Requests.Inc()
		next.ServeHTTP(w, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":               "ok",
		"requests":             metrics.Requests.Load(),
		"request_errors":       metrics.RequestErrors.Load(),
		"rejected_transitions": metrics.RejectedTransitions.Load(),
	})
}
