package handlers

import (
	"cafeteria/internal/session"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

func cartView(cart *session.Cart) gin.H {
	return gin.H{
		"items": cart.Lines(),
		"count": cart.Count(),
		"total": cart.Total(),
	}
}

func (h *APIHandler) GetCart(c *gin.Context) {
	resp.OK(c, cartView(&currentSession(c).Cart))
}

// SetCartItem sets the quantity of one item. The unit price is locked the
// first time the item enters the cart; quantity 0 removes the item.
func (h *APIHandler) SetCartItem(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}
	if req.Quantity < 0 {
		resp.BadRequest(c, "quantity cannot be negative")
		return
	}

	sess := currentSession(c)
	if req.Quantity == 0 {
		sess.Cart.Remove(req.Name)
	} else {
		ctx := c.Request.Context()
		item, err := h.catalogService.GetItem(ctx, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := h.catalogService.CheckAvailability(ctx, item.ItemName, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		price := item.Price
		if locked, ok := sess.Cart.Items[item.ItemName]; ok {
			price = locked.UnitPrice
		}
		sess.Cart.Set(item.ItemName, req.Quantity, price)
	}

	if !h.saveSession(c, sess) {
		return
	}
	resp.OK(c, cartView(&sess.Cart))
}

func (h *APIHandler) RemoveCartItem(c *gin.Context) {
	sess := currentSession(c)
	if !sess.Cart.Remove(c.Param("name")) {
		resp.NotFound(c, "item is not in the cart")
		return
	}
	if !h.saveSession(c, sess) {
		return
	}
	resp.OK(c, cartView(&sess.Cart))
}

func (h *APIHandler) ClearCart(c *gin.Context) {
	sess := currentSession(c)
	sess.Cart.Clear()
	if !h.saveSession(c, sess) {
		return
	}
	resp.OK(c, cartView(&sess.Cart))
}
