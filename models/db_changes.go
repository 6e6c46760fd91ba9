package models

import "time"

// DBChange is the change-monitor feed. Row triggers append one record per
// write on the monitored tables; the monitor broadcasts and marks processed.
type DBChange struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TableName  string    `gorm:"type:varchar(64);not null" json:"table_name"`
	RecordID   int64     `gorm:"not null" json:"record_id"`
	ActionType string    `gorm:"type:varchar(10);not null" json:"action_type"`
	ChangedAt  time.Time `gorm:"not null" json:"changed_at"`
	Processed  bool      `gorm:"not null;default:false" json:"processed"`
}
