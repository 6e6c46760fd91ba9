package Controllers_test

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

var reservedForTest = time.Date(2025, 5, 22, 12, 48, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// openTestDB gives every test its own in-memory SQLite database. The DSN
// carries the test name so parallel packages never share state.
func openTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(entities...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asUser stands in for AuthMiddleware and seeds the context the same way.
func asUser(userID uint, role, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("session_id", sessionID)
		c.Next()
	}
}
