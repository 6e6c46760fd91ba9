package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// ChangeMonitor polls the db_changes feed written by the row triggers and
// pushes the affected records to subscribed sessions. It catches writes
// done outside this process (e.g. another app instance on the same
// database), which direct broadcasts from the services cannot see.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "tables":
			cm.processTableChange(change)
		case "reservation_requests":
			cm.processReservationChange(change)
		case "invoices":
			cm.processInvoiceChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		tx.Rollback()
	}
}

func (cm *ChangeMonitor) processTableChange(change models.DBChange) {
	var table models.Table

	if change.ActionType != "DELETE" {
		if err := cm.DB.First(&table, change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching table %d: %v", change.RecordID, err)
			return
		}
	}

	switch change.ActionType {
	case "INSERT":
		events.BroadcastTableCreate(table)
	case "UPDATE":
		events.BroadcastTableUpdate(table)
	case "DELETE":
		events.BroadcastTableDelete(models.Table{ID: uint(change.RecordID)})
	}
}

func (cm *ChangeMonitor) processReservationChange(change models.DBChange) {
	switch change.ActionType {
	case "INSERT":
		var req models.ReservationRequest
		if err := cm.DB.First(&req, change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching reservation request %d: %v", change.RecordID, err)
			return
		}
		events.BroadcastReservationCreate(req)
	case "DELETE":
		// Resolution outcome is carried by the service broadcast; the
		// trigger only knows the row vanished.
		events.BroadcastMessage(events.Message{
			Event: events.EventReservationResolved,
			Data:  map[string]interface{}{"request_id": change.RecordID},
		})
	}
}

func (cm *ChangeMonitor) processInvoiceChange(change models.DBChange) {
	if change.ActionType != "INSERT" {
		return
	}

	var invoice models.Invoice
	if err := cm.DB.Preload("Lines").First(&invoice, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching invoice %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastInvoiceCreate(invoice)
}
