// Package handlers is the REST surface over the ledger services. Handlers
// bind input, delegate to the service, and map error kinds to status codes;
// no business rules live here.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/utils"
)

type Handler struct {
	Purchases    *ledger.PurchaseLedger
	Sales        *ledger.SaleLedger
	Batches      *ledger.BatchRegistry
	Catalog      *ledger.Catalog
	Transactions *ledger.TransactionLog
}

func New(purchases *ledger.PurchaseLedger, sales *ledger.SaleLedger, batches *ledger.BatchRegistry, catalog *ledger.Catalog, transactions *ledger.TransactionLog) *Handler {
	return &Handler{
		Purchases:    purchases,
		Sales:        sales,
		Batches:      batches,
		Catalog:      catalog,
		Transactions: transactions,
	}
}

// respondError maps ledger error kinds onto HTTP statuses. Anything
// unclassified is an internal error: logged with context, reported without
// detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogError(config.GetLogger(), "handlers", c.FullPath(), "request failed", correlationId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pharmacyId(c *gin.Context) string {
	id, _ := utils.GetPharmacyIdFromContext(c.Request.Context())
	return id
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
