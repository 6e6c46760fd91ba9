package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	mu sync.RWMutex
	db *gorm.DB
)

// InitDB stores the shared database handle. First call wins.
func InitDB(database *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		db = database
	}
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
