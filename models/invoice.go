package models

import "time"

// Invoice statuses. Cash checkout records the invoice as paid right away;
// a manager may later mark it approved during bookkeeping.
const (
	InvoicePaid     = "paid"
	InvoiceApproved = "approved"
)

// Invoice is immutable once created except for Status. Total is the sum of
// line subtotals at checkout time, independent of later dish-price changes.
type Invoice struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	TableID   uint          `gorm:"not null" json:"table_id"`
	Table     Table         `gorm:"foreignKey:TableID" json:"table"`
	UserID    uint          `gorm:"not null" json:"user_id"`
	User      User          `gorm:"foreignKey:UserID" json:"-"`
	Total     float64       `gorm:"type:decimal(12,2);not null" json:"total"`
	Status    string        `gorm:"type:varchar(20);not null;default:'paid'" json:"status"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	Lines     []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines"`
}

type InvoiceLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	Invoice   Invoice `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DishID    uint    `gorm:"not null" json:"dish_id"`
	Dish      Dish    `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"dish"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

// Subtotal -> line amount at the snapshot price.
func (l *InvoiceLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
