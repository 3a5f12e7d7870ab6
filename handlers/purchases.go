package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/models"
)

func (h *Handler) CreatePurchase(c *gin.Context) {
	var input models.NewPurchase
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.Purchases.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *Handler) UpdatePurchase(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdatePurchase
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.Purchases.Update(c.Request.Context(), id, pharmacyId(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *Handler) DeletePurchase(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := h.Purchases.Delete(c.Request.Context(), id, pharmacyId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
