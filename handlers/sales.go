package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/models"
)

func (h *Handler) CreateSale(c *gin.Context) {
	var input models.NewSale
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.Sales.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) UpdateSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateSale
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.Sales.Update(c.Request.Context(), id, pharmacyId(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) DeleteSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := h.Sales.Delete(c.Request.Context(), id, pharmacyId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
