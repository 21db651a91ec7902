package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// TenantGuard rejects requests whose tenant has been deactivated since the
// token was issued. It relies on AuthMiddleware having already set the tenant_id.
func TenantGuard(tenantRepo port.TenantRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := GetTenantID(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}

		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant not found")
				return
			}
			logger.Error("tenant lookup failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		}
		if !tenant.IsActive {
			abort(c, http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive")
			return
		}

		c.Next()
	}
}
