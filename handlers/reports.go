package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/exports"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) PurchaseReport(c *gin.Context) {
	var filter models.PurchaseReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Purchases.Report(c.Request.Context(), pharmacyId(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) SalesReport(c *gin.Context) {
	var filter models.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Sales.Report(c.Request.Context(), pharmacyId(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// PurchaseReportExport streams the purchase report as an xlsx download.
func (h *Handler) PurchaseReportExport(c *gin.Context) {
	var filter models.PurchaseReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Purchases.Report(c.Request.Context(), pharmacyId(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=purchase_report.xlsx")
	if err := exports.WritePurchaseReport(c.Writer, report); err != nil {
		respondError(c, err)
	}
}

// SalesReportExport streams the sales report as an xlsx download.
func (h *Handler) SalesReportExport(c *gin.Context) {
	var filter models.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Sales.Report(c.Request.Context(), pharmacyId(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=sales_report.xlsx")
	if err := exports.WriteSalesReport(c.Writer, report); err != nil {
		respondError(c, err)
	}
}

// ExpiryReport lists active batches across the pharmacy expiring within the
// threshold (default 180 days), soonest first.
func (h *Handler) ExpiryReport(c *gin.Context) {
	threshold := thresholdDays(c, ledger.DefaultReportThresholdDays)

	rows, err := h.Batches.ExpiryReport(c.Request.Context(), pharmacyId(c), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
