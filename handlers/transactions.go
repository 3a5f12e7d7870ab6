package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/models"
)

func (h *Handler) ListTransactions(c *gin.Context) {
	var filter models.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transactions, err := h.Transactions.List(c.Request.Context(), pharmacyId(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	t, err := h.Transactions.Get(c.Request.Context(), pharmacyId(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := h.Transactions.Delete(c.Request.Context(), id, pharmacyId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
