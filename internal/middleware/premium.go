package middleware

import (
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireFeature 按订阅档位与每日限额拦截高级功能。
// 档位来自 JWT claims，避免每个请求都查订阅表。
func RequireFeature(premium *service.PremiumService, feature service.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		err := premium.CheckAccess(c.Request.Context(), claims.UserID, claims.Tier, feature)
		switch {
		case errors.Is(err, util.ErrFeatureNotAvailable):
			util.Error(c, http.StatusForbidden, err.Error())
			c.Abort()
			return
		case errors.Is(err, util.ErrUsageLimitReached):
			util.TooManyRequests(c, err.Error())
			c.Abort()
			return
		case err != nil:
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// TrackUsage 请求成功后记一次用量（4xx/5xx 不计）
func TrackUsage(premium *service.PremiumService, feature service.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		claims := util.GetUserFromContext(c)
		if claims == nil {
			return
		}
		premium.TrackUsage(c.Request.Context(), claims.UserID, feature)
	}
}
