package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/banner"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/catalog"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/middleware"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/notification"
)

type Deps struct {
	Engine        CartEngine
	Checkout      CheckoutSubmitter
	Orders        OrderService
	Products      catalog.Repository
	Banners       banner.Repository
	Notifications notification.Repository

	AdminToken       string
	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover)
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.ResolveOwner)
	r.Use(middleware.Logging)

	r.Get("/health", healthHandler)

	cartHandler := NewCartHandler(d.Engine)
	checkoutHandler := NewCheckoutHandler(d.Checkout)
	orderHandler := NewOrderHandler(d.Orders)
	catalogHandler := NewCatalogHandler(d.Products)
	bannerHandler := NewBannerHandler(d.Banners)
	notificationHandler := NewNotificationHandler(d.Notifications)
	adminHandler := NewAdminHandler(d.Products, d.Banners, d.Orders)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/search", catalogHandler.SearchProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)

		r.Get("/banners", bannerHandler.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{productId}", cartHandler.UpdateItem)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
			r.Post("/buy-now", cartHandler.BuyNow)
		})

		r.Get("/checkout/intent", cartHandler.CheckoutIntent)
		r.Post("/checkout", checkoutHandler.Submit)

		r.Get("/orders/{orderNumber}", orderHandler.TrackOrder)
		r.Get("/me/orders", orderHandler.ListOrdersMe)

		r.Get("/me/notifications", notificationHandler.List)
		r.Post("/me/notifications/{id}/read", notificationHandler.MarkRead)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.AdminToken))
			r.Post("/products", adminHandler.UpsertProduct)
			r.Post("/products/{id}/active", adminHandler.SetProductActive)
			r.Post("/banners", adminHandler.CreateBanner)
			r.Delete("/banners/{id}", adminHandler.DeleteBanner)
			r.Post("/orders/{id}/status", adminHandler.UpdateOrderStatus)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}
