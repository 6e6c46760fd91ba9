package models

import "time"

// ReservationRequest is a pending ask for a table, waiting for staff to
// approve or reject it. Approval, rejection and cancellation delete every
// request that references the table.
type ReservationRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableID     uint      `gorm:"not null;index" json:"table_id"`
	Table       Table     `gorm:"foreignKey:TableID" json:"table"`
	CustomerID  uint      `gorm:"not null" json:"customer_id"`
	Customer    User      `gorm:"foreignKey:CustomerID" json:"customer"`
	ReservedFor time.Time `gorm:"not null" json:"reserved_for"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
