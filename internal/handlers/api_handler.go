package handlers

import (
	"cafeteria/internal/auth"
	"cafeteria/internal/models"
	"cafeteria/internal/services"
	"cafeteria/internal/session"
	"log"
	"net/http"
	"time"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	catalogService  services.CatalogService
	orderService    services.OrderService
	userService     services.UserService
	favoriteService services.FavoriteService
	ratingService   services.RatingService
	checkoutService services.CheckoutService
	reportService   services.ReportService
	sessions        session.Store
	tokens          *auth.TokenIssuer
}

func NewAPIHandler(
	catalogService services.CatalogService,
	orderService services.OrderService,
	userService services.UserService,
	favoriteService services.FavoriteService,
	ratingService services.RatingService,
	checkoutService services.CheckoutService,
	reportService services.ReportService,
	sessions session.Store,
	tokens *auth.TokenIssuer,
) *APIHandler {
	return &APIHandler{
		catalogService:  catalogService,
		orderService:    orderService,
		userService:     userService,
		favoriteService: favoriteService,
		ratingService:   ratingService,
		checkoutService: checkoutService,
		reportService:   reportService,
		sessions:        sessions,
		tokens:          tokens,
	}
}

// Routes registers every endpoint on router.
func (h *APIHandler) Routes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/menu", h.ListMenu)
	}

	customer := api.Group("", AuthMiddleware(h.tokens, h.sessions))
	{
		customer.POST("/auth/logout", h.Logout)
		customer.GET("/menu/:name/availability", h.CheckAvailability)

		customer.GET("/cart", h.GetCart)
		customer.DELETE("/cart", h.ClearCart)
		customer.PUT("/cart/items", h.SetCartItem)
		customer.DELETE("/cart/items/:name", h.RemoveCartItem)

		customer.POST("/checkout/validate", h.ValidateCart)
		customer.POST("/checkout", h.Checkout)

		customer.GET("/orders", h.MyOrders)
		customer.GET("/orders/:reference", h.GetOrder)
		customer.GET("/orders/:reference/rating", h.GetRating)
		customer.POST("/orders/:reference/rating", h.RateOrder)

		customer.GET("/favorites", h.ListFavorites)
		customer.POST("/favorites", h.AddFavorite)
		customer.DELETE("/favorites/:name", h.RemoveFavorite)
	}

	admin := api.Group("/admin", AuthMiddleware(h.tokens, h.sessions), RequireRole(models.RoleAdmin))
	{
		admin.GET("/menu", h.AdminListMenu)
		admin.POST("/menu", h.UpsertMenuItem)
		admin.DELETE("/menu/:id", h.DeleteMenuItem)
		admin.GET("/menu/low-stock", h.LowStock)

		admin.GET("/orders", h.AdminListOrders)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
		admin.GET("/orders/:id/history", h.OrderHistory)

		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/sales", h.Sales)
		admin.GET("/reconciliations", h.Reconciliations)
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "healthy", "time": time.Now().UTC()})
}

// saveSession persists the session after its cart changed.
func (h *APIHandler) saveSession(c *gin.Context, sess *session.Session) bool {
	sess.Touch()
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		log.Printf("Failed to save session %s: %v", sess.ID, err)
		resp.Error(c, http.StatusServiceUnavailable, "session storage unavailable")
		return false
	}
	return true
}
