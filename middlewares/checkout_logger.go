package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// CheckoutLoggerMiddleware audits checkout attempts separately from the
// request log, so partial pipeline failures are easy to trace back.
func CheckoutLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		userID := c.GetUint("user_id")

		c.Next()

		utils.InfoLogger.Printf("[CHECKOUT] user=%d table=%s status=%d duration=%v",
			userID, c.Param("table_id"), c.Writer.Status(), time.Since(start))
	}
}
