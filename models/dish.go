package models

import "time"

type MenuCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	Dishes    []Dish    `gorm:"foreignKey:CategoryID" json:"dishes,omitempty"`
}

// Dish is menu reference data. The cart snapshots Name and Price at
// add-time, so later edits here do not touch carts or past invoices.
type Dish struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	CategoryID uint         `gorm:"not null;index" json:"category_id"`
	Category   MenuCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Name       string       `gorm:"type:varchar(100);not null" json:"name"`
	Price      float64      `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL   string       `gorm:"type:text" json:"image_url"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}
