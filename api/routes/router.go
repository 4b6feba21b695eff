package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AhmedSalahALghzaly/lats-go/api/controllers"
	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/internal/access"
	"github.com/AhmedSalahALghzaly/lats-go/internal/analytics"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/internal/cart"
	"github.com/AhmedSalahALghzaly/lats-go/internal/catalog"
	"github.com/AhmedSalahALghzaly/lats-go/internal/comments"
	"github.com/AhmedSalahALghzaly/lats-go/internal/customers"
	"github.com/AhmedSalahALghzaly/lats-go/internal/favorites"
	"github.com/AhmedSalahALghzaly/lats-go/internal/marketing"
	"github.com/AhmedSalahALghzaly/lats-go/internal/memberships"
	"github.com/AhmedSalahALghzaly/lats-go/internal/notifications"
	"github.com/AhmedSalahALghzaly/lats-go/internal/orders"
	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/internal/realtime"
	syncsvc "github.com/AhmedSalahALghzaly/lats-go/internal/sync"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/config"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/metrics"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTP,
	registry *prometheus.Registry,
	hub *realtime.Hub,
	authService *auth.Service,
	membershipService *memberships.Service,
	catalogService *catalog.Service,
	productService *products.Service,
	cartService *cart.Service,
	orderService *orders.Service,
	notificationService *notifications.Service,
	favoriteService *favorites.Service,
	commentService *comments.Service,
	marketingService *marketing.Service,
	customerService *customers.Service,
	analyticsService *analytics.Service,
	syncService *syncsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
		middleware.Auth(authService, cfg.Auth, logg),
	)

	r.Get("/health", controllers.Health(client))
	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(client, redisClient))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	r.Get("/ws", controllers.Websocket(hub, authService, logg))

	guard := func(resource string, action access.Action) func(http.Handler) http.Handler {
		return middleware.Guard(resource, action, logg)
	}
	requireUser := middleware.RequireUser(logg)
	announce := func(tables ...string) func(http.Handler) http.Handler {
		return middleware.SyncAnnounce(hub, tables...)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", controllers.Root())

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(redisClient, cfg.RateLimit, logg)).
				Post("/session", controllers.Login(authService, cfg.Auth, logg))
			r.Get("/me", controllers.Me())
			r.Post("/logout", controllers.Logout(authService, cfg.Auth, logg))
		})

		r.Route("/partners", func(r chi.Router) {
			r.With(guard("partners", access.ActionList)).Get("/", controllers.ListPartners(membershipService, logg))
			r.With(guard("partners", access.ActionCreate), announce("partners")).Post("/", controllers.CreatePartner(membershipService, logg))
			r.With(guard("partners", access.ActionDelete), announce("partners")).Delete("/{id}", controllers.DeletePartner(membershipService, logg))
		})

		r.Route("/admins", func(r chi.Router) {
			r.With(guard("admins", access.ActionList)).Get("/", controllers.ListAdminStats(membershipService, logg))
			r.With(guard("admins", access.ActionCreate), announce("admins")).Post("/", controllers.CreateAdmin(membershipService, logg))
			r.With(guard("admins", access.ActionDelete), announce("admins")).Delete("/{id}", controllers.DeleteAdmin(membershipService, logg))
			r.With(guard("admins", access.ActionList)).Get("/{id}/products", controllers.ListAdminProducts(productService, logg))
			r.With(guard("admins", access.ActionUpdate), announce("admins", "products", "settlements")).Post("/{id}/settle", controllers.SettleAdminRevenue(membershipService, logg))
			r.With(guard("admins", access.ActionUpdate), announce("admins")).Post("/{id}/clear-revenue", controllers.ClearAdminRevenue(membershipService, logg))
			r.With(guard("admins", access.ActionList)).Get("/{id}/settlements", controllers.ListAdminSettlements(membershipService, logg))
		})

		r.Route("/subscribers", func(r chi.Router) {
			r.With(guard("subscribers", access.ActionList)).Get("/", controllers.ListSubscribers(membershipService, logg))
			r.With(guard("subscribers", access.ActionCreate), announce("subscribers")).Post("/", controllers.CreateSubscriber(membershipService, logg))
			r.With(guard("subscribers", access.ActionDelete), announce("subscribers")).Delete("/{id}", controllers.DeleteSubscriber(membershipService, logg))
		})

		r.Route("/subscription-requests", func(r chi.Router) {
			r.With(announce("subscription_requests")).Post("/", controllers.CreateSubscriptionRequest(membershipService, logg))
			r.With(guard("subscription_requests", access.ActionList)).Get("/", controllers.ListSubscriptionRequests(membershipService, logg))
			r.With(guard("subscription_requests", access.ActionUpdate), announce("subscription_requests", "subscribers")).Post("/{id}/approve", controllers.ApproveSubscriptionRequest(membershipService, logg))
			r.With(guard("subscription_requests", access.ActionUpdate), announce("subscription_requests", "subscribers")).Patch("/{id}/approve", controllers.ApproveSubscriptionRequest(membershipService, logg))
			r.With(guard("subscription_requests", access.ActionUpdate), announce("subscription_requests")).Post("/{id}/reject", controllers.RejectSubscriptionRequest(membershipService, logg))
			r.With(guard("subscription_requests", access.ActionUpdate), announce("subscription_requests")).Delete("/{id}", controllers.RejectSubscriptionRequest(membershipService, logg))
		})

		r.Route("/car-brands", func(r chi.Router) {
			r.Get("/", controllers.ListCarBrands(catalogService, logg))
			r.With(guard("catalog", access.ActionCreate), announce("car_brands")).Post("/", controllers.CreateCarBrand(catalogService, logg))
			r.With(guard("catalog", access.ActionUpdate), announce("car_brands")).Patch("/{id}", controllers.UpdateCarBrand(catalogService, logg))
			r.With(guard("catalog", access.ActionDelete), announce("car_brands")).Delete("/{id}", controllers.DeleteCarBrand(catalogService, logg))
		})

		r.Route("/car-models", func(r chi.Router) {
			r.Get("/", controllers.ListCarModels(catalogService, logg))
			r.Get("/{id}", controllers.GetCarModel(catalogService, productService, logg))
			r.With(guard("catalog", access.ActionCreate), announce("car_models")).Post("/", controllers.CreateCarModel(catalogService, logg))
			r.With(guard("catalog", access.ActionUpdate), announce("car_models")).Patch("/{id}", controllers.UpdateCarModel(catalogService, logg))
			r.With(guard("catalog", access.ActionDelete), announce("car_models")).Delete("/{id}", controllers.DeleteCarModel(catalogService, logg))
		})

		r.Route("/product-brands", func(r chi.Router) {
			r.Get("/", controllers.ListProductBrands(catalogService, logg))
			r.With(guard("catalog", access.ActionCreate), announce("product_brands")).Post("/", controllers.CreateProductBrand(catalogService, logg))
			r.With(guard("catalog", access.ActionUpdate), announce("product_brands")).Patch("/{id}", controllers.UpdateProductBrand(catalogService, logg))
			r.With(guard("catalog", access.ActionDelete), announce("product_brands")).Delete("/{id}", controllers.DeleteProductBrand(catalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/all", controllers.ListCategories(catalogService, logg))
			r.Get("/tree", controllers.CategoryTree(catalogService, logg))
			r.With(guard("catalog", access.ActionCreate), announce("categories")).Post("/", controllers.CreateCategory(catalogService, logg))
			r.With(guard("catalog", access.ActionUpdate), announce("categories")).Patch("/{id}", controllers.UpdateCategory(catalogService, logg))
			r.With(guard("catalog", access.ActionDelete), announce("categories")).Delete("/{id}", controllers.DeleteCategory(catalogService, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.With(guard("suppliers", access.ActionList)).Get("/", controllers.ListSuppliers(catalogService, logg))
			r.With(guard("suppliers", access.ActionList)).Get("/{id}", controllers.GetSupplier(catalogService, logg))
			r.With(guard("suppliers", access.ActionCreate), announce("suppliers")).Post("/", controllers.CreateSupplier(catalogService, logg))
			r.With(guard("suppliers", access.ActionUpdate), announce("suppliers")).Patch("/{id}", controllers.UpdateSupplier(catalogService, logg))
			r.With(guard("suppliers", access.ActionDelete), announce("suppliers")).Delete("/{id}", controllers.DeleteSupplier(catalogService, logg))
		})

		r.Route("/distributors", func(r chi.Router) {
			r.With(guard("distributors", access.ActionList)).Get("/", controllers.ListDistributors(catalogService, logg))
			r.With(guard("distributors", access.ActionList)).Get("/{id}", controllers.GetDistributor(catalogService, logg))
			r.With(guard("distributors", access.ActionCreate), announce("distributors")).Post("/", controllers.CreateDistributor(catalogService, logg))
			r.With(guard("distributors", access.ActionUpdate), announce("distributors")).Patch("/{id}", controllers.UpdateDistributor(catalogService, logg))
			r.With(guard("distributors", access.ActionDelete), announce("distributors")).Delete("/{id}", controllers.DeleteDistributor(catalogService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/search", controllers.SearchProducts(productService, logg))
			r.With(guard("products", access.ActionCreate)).Get("/all", controllers.ListAllProducts(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.With(guard("products", access.ActionCreate), announce("products")).Post("/", controllers.CreateProduct(productService, membershipService, logg))
			r.With(guard("products", access.ActionUpdate), announce("products")).Patch("/{id}", controllers.UpdateProduct(productService, logg))
			r.With(guard("products", access.ActionUpdate), announce("products")).Patch("/{id}/price", controllers.UpdateProductPrice(productService, logg))
			r.With(guard("products", access.ActionUpdate), announce("products")).Patch("/{id}/hidden", controllers.SetProductHidden(productService, logg))
			r.With(guard("products", access.ActionDelete), announce("products")).Delete("/{id}", controllers.DeleteProduct(productService, logg))

			r.Get("/{productID}/comments", controllers.ListProductComments(commentService, logg))
			r.With(requireUser).Post("/{productID}/comments", controllers.CreateComment(commentService, logg))
		})

		r.With(guard("collections", access.ActionList)).Get("/collections", controllers.ListCollections(productService, logg))

		r.Delete("/comments/{id}", controllers.DeleteComment(commentService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/", controllers.GetCart(cartService, logg))
			r.Post("/add", controllers.AddToCart(cartService, logg))
			r.Put("/update", controllers.UpdateCart(cartService, logg))
			r.Post("/items", controllers.AddToCart(cartService, logg))
			r.Patch("/items/{productID}", controllers.UpdateCartItem(cartService, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(cartService, logg))
			r.Delete("/clear", controllers.ClearCart(cartService, logg))
			r.Delete("/", controllers.ClearCart(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(requireUser).Post("/", controllers.Checkout(orderService, logg))
			r.With(requireUser).Get("/mine", controllers.ListMyOrders(orderService, logg))
			r.With(guard("orders_admin", access.ActionList)).Get("/all", controllers.ListAllOrders(orderService, logg))
			r.With(requireUser).Get("/{id}", controllers.GetOrder(orderService, logg))
			r.With(guard("orders_admin", access.ActionUpdate)).Patch("/{id}/status", controllers.UpdateOrderStatus(orderService, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/", controllers.ListFavorites(favoriteService, logg))
			r.Get("/ids", controllers.ListFavoriteIDs(favoriteService, logg))
			r.Get("/check/{productID}", controllers.CheckFavorite(favoriteService, logg))
			r.Post("/{productID}/toggle", controllers.ToggleFavorite(favoriteService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/", controllers.ListNotifications(notificationService, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(notificationService, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(notificationService, logg))
			r.Patch("/{id}/read", controllers.MarkNotificationRead(notificationService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationService, logg))
			r.Post("/mark-all-read", controllers.MarkAllNotificationsRead(notificationService, logg))
			r.Delete("/{id}", controllers.DeleteNotification(notificationService, logg))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", controllers.ListPromotions(marketingService, logg))
			r.Get("/{id}", controllers.GetPromotion(marketingService, logg))
			r.With(guard("marketing", access.ActionCreate), announce("promotions")).Post("/", controllers.CreatePromotion(marketingService, logg))
			r.With(guard("marketing", access.ActionUpdate), announce("promotions")).Patch("/{id}", controllers.UpdatePromotion(marketingService, logg))
			r.With(guard("marketing", access.ActionUpdate), announce("promotions")).Post("/reorder", controllers.ReorderPromotions(marketingService, logg))
			r.With(guard("marketing", access.ActionDelete), announce("promotions")).Delete("/{id}", controllers.DeletePromotion(marketingService, logg))
		})

		r.Route("/bundle-offers", func(r chi.Router) {
			r.Get("/", controllers.ListBundles(marketingService, logg))
			r.Get("/{id}", controllers.GetBundle(marketingService, logg))
			r.With(guard("marketing", access.ActionCreate), announce("bundle_offers")).Post("/", controllers.CreateBundle(marketingService, logg))
			r.With(guard("marketing", access.ActionUpdate), announce("bundle_offers")).Patch("/{id}", controllers.UpdateBundle(marketingService, logg))
			r.With(guard("marketing", access.ActionDelete), announce("bundle_offers")).Delete("/{id}", controllers.DeleteBundle(marketingService, logg))
		})

		r.Get("/home-slider", controllers.HomeSlider(marketingService, logg))

		r.With(guard("customers", access.ActionList)).Get("/customers", controllers.ListCustomers(customerService, logg))
		r.With(guard("customers", access.ActionList)).Get("/customers/{id}", controllers.GetCustomer(customerService, logg))
		r.With(guard("analytics", access.ActionRead)).Get("/analytics/overview", controllers.AnalyticsOverview(analyticsService, logg))

		r.Post("/sync/pull", controllers.SyncPull(syncService, logg))
	})

	return r
}
