package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/utils"
)

// PharmacyMiddleware resolves the tenant from the X-Pharmacy-Id header and
// puts it on the request context. Every ledger operation scopes its reads and
// writes to this id.
func PharmacyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pharmacyId := c.Request.Header.Get("X-Pharmacy-Id")
		if pharmacyId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Pharmacy-Id header is required"})
			c.Abort()
			return
		}

		ctx := utils.SetPharmacyIdInContext(c.Request.Context(), pharmacyId)
		if header := c.Request.Header.Get("X-User-Id"); header != "" {
			if userId, err := strconv.Atoi(header); err == nil {
				ctx = utils.SetUserIdInContext(ctx, userId)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
