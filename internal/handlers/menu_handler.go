package handlers

import (
	"cafeteria/internal/models"
	"strconv"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *APIHandler) ListMenu(c *gin.Context) {
	items, err := h.catalogService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, items)
}

func (h *APIHandler) CheckAvailability(c *gin.Context) {
	name := c.Param("name")
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		resp.BadRequest(c, "quantity must be a number")
		return
	}

	if err := h.catalogService.CheckAvailability(c.Request.Context(), name, quantity); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"item": name, "quantity": quantity, "available": true})
}

func (h *APIHandler) AdminListMenu(c *gin.Context) {
	items, err := h.catalogService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, items)
}

type menuItemRequest struct {
	ID          uint            `json:"id"`
	ItemName    string          `json:"item_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsAvailable *bool           `json:"is_available"`
	Description string          `json:"description"`
}

// UpsertMenuItem creates the item when no id is given and replaces it otherwise.
func (h *APIHandler) UpsertMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}

	item := &models.MenuItem{
		ID:          req.ID,
		ItemName:    req.ItemName,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Description: req.Description,
	}
	if err := h.catalogService.UpsertItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	if req.ID == 0 {
		resp.Created(c, item)
		return
	}
	resp.OK(c, item)
}

func (h *APIHandler) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	if err := h.catalogService.DeleteItem(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	resp.Message(c, "menu item deleted")
}

func (h *APIHandler) LowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "-1"))
	if err != nil {
		resp.BadRequest(c, "threshold must be a number")
		return
	}
	items, err := h.catalogService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, items)
}
