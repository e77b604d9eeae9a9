package handlers

import (
	"cafeteria/internal/models"
	"cafeteria/internal/services"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) ValidateCart(c *gin.Context) {
	sess := currentSession(c)
	if err := h.checkoutService.Validate(c.Request.Context(), sess.Cart.Lines()); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"valid": true, "total": sess.Cart.Total()})
}

func (h *APIHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}

	sess := currentSession(c)
	receipt, err := h.checkoutService.Checkout(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, receipt)
}

func (h *APIHandler) MyOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersForUser(c.Request.Context(), currentSession(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, orders)
}

// visibleOrder loads an order the caller may see. Other customers' orders
// look like missing ones.
func (h *APIHandler) visibleOrder(c *gin.Context) (*models.Order, bool) {
	order, err := h.orderService.GetOrderByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if order.Username != currentSession(c).Username && !isAdmin(c) {
		resp.NotFound(c, "order not found")
		return nil, false
	}
	return order, true
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	order, ok := h.visibleOrder(c)
	if !ok {
		return
	}
	resp.OK(c, order)
}

func (h *APIHandler) GetRating(c *gin.Context) {
	order, ok := h.visibleOrder(c)
	if !ok {
		return
	}
	rating, err := h.ratingService.Get(c.Request.Context(), order.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, rating)
}

func (h *APIHandler) RateOrder(c *gin.Context) {
	var req struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}

	order, ok := h.visibleOrder(c)
	if !ok {
		return
	}
	if order.Username != currentSession(c).Username {
		resp.Forbidden(c, "only the customer who placed the order can rate it")
		return
	}

	rating, err := h.ratingService.Add(c.Request.Context(), order.Reference, req.Rating, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, rating)
}

func (h *APIHandler) ListFavorites(c *gin.Context) {
	names, err := h.favoriteService.List(c.Request.Context(), currentSession(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, names)
}

func (h *APIHandler) AddFavorite(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}
	if err := h.favoriteService.Add(c.Request.Context(), currentSession(c).Username, req.Name); err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, gin.H{"item_name": req.Name})
}

func (h *APIHandler) RemoveFavorite(c *gin.Context) {
	if err := h.favoriteService.Remove(c.Request.Context(), currentSession(c).Username, c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	resp.Message(c, "removed from favorites")
}
