package router

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/auth"
	"github.com/joyva20/ecommerce-api/internal/handler"
	"github.com/joyva20/ecommerce-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Payment   *handler.PaymentHandler
	User      *handler.UserHandler
	Cart      *handler.CartHandler
	Review    *handler.ReviewHandler
	Dashboard *handler.DashboardHandler
	Recommend *handler.RecommendHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Route shapes and auth placement mirror the original API so existing
// storefront and admin clients keep working unchanged.
func New(h Handlers, tokens *auth.Tokens, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	userAuth := middleware.UserAuth(tokens, logger)
	adminAuth := middleware.AdminAuth(tokens, logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.User.Register)
		r.Post("/login", h.User.Login)
		r.Post("/admin", h.User.AdminLogin)
		r.With(adminAuth).Get("/list", h.User.List)
	})

	r.Route("/api/product", func(r chi.Router) {
		r.Get("/list", h.Product.List)
		r.Get("/single/{id}", h.Product.Single)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(userAuth)
		r.Post("/get", h.Cart.Get)
		r.Post("/add", h.Cart.Add)
		r.Post("/update", h.Cart.Update)
	})

	r.Route("/api/order", func(r chi.Router) {
		r.With(userAuth).Post("/place", h.Order.Place)
		r.With(userAuth).Post("/userorders", h.Order.UserOrders)
		r.With(adminAuth).Post("/list", h.Order.List)
		r.With(adminAuth).Post("/status", h.Order.Status)
		r.With(adminAuth).Post("/remove", h.Order.Remove)
	})

	r.Route("/api/payment", func(r chi.Router) {
		r.With(userAuth).Post("/create-transaction", h.Payment.CreateTransaction)
		// The gateway's webhook authenticates via payload signature.
		r.Post("/notification", h.Payment.Notification)
		r.With(userAuth).Get("/status/{orderId}", h.Payment.Status)
		r.With(userAuth).Post("/cancel/{orderId}", h.Payment.Cancel)
	})

	r.Route("/api/review", func(r chi.Router) {
		r.Get("/product/{productId}", h.Review.Product)
		r.With(userAuth).Post("/add", h.Review.Add)
		r.With(userAuth).Get("/check/{productId}", h.Review.Check)
	})

	r.With(userAuth).Get("/api/recommendations/{userId}", h.Recommend.ForUser)

	r.With(adminAuth).Get("/api/dashboard/summary", h.Dashboard.Summary)

	return r
}
