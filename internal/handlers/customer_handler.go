package handlers

import (
	"net/http"

	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService services.CustomerService
	log             *logger.Logger
}

func NewCustomerHandler(customerService services.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, log: log}
}

// List searches name, email and phone.
func (h *CustomerHandler) List(c *gin.Context) {
	filter := repository.CustomerFilter{Search: c.Query("search")}
	customers, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req models.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *CustomerHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *CustomerHandler) update(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.customerService.GetCustomer(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.CustomerRequest
	if partial {
		req = models.NewCustomerRequest(existing)
	}
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(ctx, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
