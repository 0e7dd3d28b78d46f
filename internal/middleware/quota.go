package middleware

import (
	"workhub_backend/internal/models"
	"workhub_backend/internal/services"
	"workhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RequireQuota gates a route on the caller's quota for a capability. It only
// checks; recording the usage stays with the service once the action has
// actually succeeded.
func RequireQuota(quota services.QuotaService, capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			c.Abort()
			return
		}

		if _, err := quota.Enforce(userID, capability, nil); err != nil {
			var appErr *apperrors.AppError
			if apperrors.As(err, &appErr) {
				apperrors.HandleError(c, appErr)
			} else {
				apperrors.HandleError(c, apperrors.InternalError(err))
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
