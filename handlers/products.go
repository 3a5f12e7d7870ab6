package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Catalog.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Catalog.Update(c.Request.Context(), id, pharmacyId(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id, pharmacyId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	product, err := h.Catalog.Get(c.Request.Context(), pharmacyId(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)
	if c.Query("low_stock") == "true" {
		products, err = h.Catalog.ListLowStock(c.Request.Context(), pharmacyId(c))
	} else {
		products, err = h.Catalog.List(c.Request.Context(), pharmacyId(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductExpiry lists the product's active batches expiring within the
// threshold (default 90 days), soonest first.
func (h *Handler) GetProductExpiry(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	threshold := thresholdDays(c, ledger.DefaultProductThresholdDays)

	rows, err := h.Batches.ProductExpiry(c.Request.Context(), pharmacyId(c), id, threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func thresholdDays(c *gin.Context, fallback int) int {
	raw := c.Query("threshold_days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
