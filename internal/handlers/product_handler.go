package handlers

import (
	"net/http"

	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.ProductService
	log            *logger.Logger
}

func NewProductHandler(productService services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, log: log}
}

// List supports exact category, status and supplier filters plus a
// free-text search.
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Supplier: c.Query("supplier"),
		Search:   c.Query("search"),
	}
	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *ProductHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *ProductHandler) update(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.productService.GetProduct(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.ProductRequest
	if partial {
		req = models.NewProductRequest(existing)
	}
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(ctx, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
