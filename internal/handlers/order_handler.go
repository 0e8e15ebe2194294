package handlers

import (
	"net/http"

	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	log          *logger.Logger
}

func NewOrderHandler(orderService services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		PaymentMethod: c.Query("payment_method"),
		CustomerID:    c.Query("customer_id"),
		Search:        c.Query("search"),
	}
	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Create accepts the order together with its nested items.
func (h *OrderHandler) Create(c *gin.Context) {
	var req models.OrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Items(c *gin.Context) {
	items, err := h.orderService.GetOrderItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *OrderHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

// Items sent with an update are decoded and validated but not written.
func (h *OrderHandler) update(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.OrderRequest
	if partial {
		req = models.NewOrderRequest(existing)
	}
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(ctx, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
