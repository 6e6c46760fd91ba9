package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/auth"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// RequireCapability gates a route on a role predicate, e.g.
// RequireCapability(auth.Role.CanApproveReservation).
func RequireCapability(allowed func(auth.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		role, ok := auth.ParseRole(roleStr.(string))
		if !ok || !allowed(role) {
			utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission"))
			c.Abort()
			return
		}

		c.Next()
	}
}
