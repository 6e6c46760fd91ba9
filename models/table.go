package models

import "time"

// Table statuses. A table walks available -> pending -> reserved and back;
// status and occupant live on the same row so they change together.
const (
	TableAvailable = "available"
	TablePending   = "pending"
	TableReserved  = "reserved"
)

type Table struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(50);not null" json:"name"`
	Status     string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	OccupantID uint      `gorm:"not null;default:0" json:"occupant_id"` // 0 = no occupant
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// IsAvailable reports whether the table can accept a new reservation.
func (t *Table) IsAvailable() bool {
	return t.Status == TableAvailable
}

// OccupiedBy reports whether userID currently holds the table.
func (t *Table) OccupiedBy(userID uint) bool {
	return t.Status != TableAvailable && t.OccupantID == userID
}
