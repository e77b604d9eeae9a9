package handlers

import (
	"cafeteria/internal/models"
	"strconv"
	"time"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) AdminListOrders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		resp.BadRequest(c, "limit must be a number")
		return
	}
	orders, err := h.orderService.GetAllOrders(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, orders)
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "status is required")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status, currentSession(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, order)
}

func (h *APIHandler) OrderHistory(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	history, err := h.orderService.GetOrderHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, history)
}

func (h *APIHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, stats)
}

func parseDate(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		resp.BadRequest(c, key+" must be a YYYY-MM-DD date")
		return time.Time{}, false
	}
	return t, true
}

func (h *APIHandler) Sales(c *gin.Context) {
	start, ok := parseDate(c, "start")
	if !ok {
		return
	}
	end, ok := parseDate(c, "end")
	if !ok {
		return
	}
	sales, err := h.reportService.Sales(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, sales)
}

func (h *APIHandler) Reconciliations(c *gin.Context) {
	records, err := h.reportService.Reconciliations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, records)
}
