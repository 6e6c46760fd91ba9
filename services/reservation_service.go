package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// ReservationService owns the table state machine and the reservation
// request queue. Table status and occupant are two fields of one row and
// change atomically; the request collection is a second write with no
// cross-collection atomicity.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// CreateTable -> staff add a table; id comes from the allocator.
func (rs *ReservationService) CreateTable(name string) (*models.Table, error) {
	if name == "" {
		return nil, utils.Validationf("table name is required")
	}

	id, err := NextID(rs.DB, &models.Table{})
	if err != nil {
		return nil, err
	}

	table := models.Table{
		ID:         id,
		Name:       name,
		Status:     models.TableAvailable,
		OccupantID: 0,
	}
	if err := rs.DB.Create(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	events.BroadcastTableCreate(table)
	return &table, nil
}

// RenameTable fails while the table is pending or reserved.
func (rs *ReservationService) RenameTable(tableID uint, name string) (*models.Table, error) {
	if name == "" {
		return nil, utils.Validationf("table name is required")
	}

	var table models.Table
	if err := rs.DB.First(&table, tableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if !table.IsAvailable() {
		return nil, utils.Validationf("table %s is %s and cannot be renamed", table.Name, table.Status)
	}

	table.Name = name
	if err := rs.DB.Save(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	events.BroadcastTableUpdate(table)
	return &table, nil
}

// DeleteTable fails while the table is pending or reserved.
func (rs *ReservationService) DeleteTable(tableID uint) error {
	var table models.Table
	if err := rs.DB.First(&table, tableID).Error; err != nil {
		return utils.NotFound("table")
	}

	if !table.IsAvailable() {
		return utils.Validationf("table %s is %s and cannot be deleted", table.Name, table.Status)
	}

	if err := rs.DB.Delete(&table).Error; err != nil {
		return &utils.ExternalServiceError{Err: err}
	}

	events.BroadcastTableDelete(table)
	return nil
}

// Reserve -> customer submits a reservation: available -> pending with the
// customer as occupant, plus one request in the queue.
//
// Policy for racing customers: reject-while-pending. The status check is
// read-then-decide, so two truly simultaneous submissions can still both
// pass it; the second one then overwrites occupant (last write wins). That
// window is inherent to the store model and is not papered over here.
func (rs *ReservationService) Reserve(tableID, customerID uint, reservedFor time.Time) (*models.ReservationRequest, error) {
	if customerID == 0 {
		return nil, utils.Validationf("customer id is required")
	}
	if reservedFor.IsZero() {
		return nil, utils.Validationf("reservation time is required")
	}

	var table models.Table
	if err := rs.DB.First(&table, tableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if !table.IsAvailable() {
		return nil, utils.Conflictf("table %s is already %s", table.Name, table.Status)
	}

	// First write: status + occupant on the table row.
	table.Status = models.TablePending
	table.OccupantID = customerID
	if err := rs.DB.Save(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	// Second write: the queue entry, keyed by the allocator.
	id, err := NextID(rs.DB, &models.ReservationRequest{})
	if err != nil {
		return nil, err
	}

	req := models.ReservationRequest{
		ID:          id,
		TableID:     table.ID,
		CustomerID:  customerID,
		ReservedFor: reservedFor,
	}
	if err := rs.DB.Create(&req).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationCreate(req)
	utils.InfoLogger.Printf("Table %d reserved by customer %d for %s", table.ID, customerID, reservedFor.Format("02/01/2006 15:04"))
	return &req, nil
}

// PendingRequests -> the queue as staff see it.
func (rs *ReservationService) PendingRequests() ([]models.ReservationRequest, error) {
	var reqs []models.ReservationRequest
	if err := rs.DB.Preload("Table").Preload("Customer").Order("created_at").Find(&reqs).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}
	return reqs, nil
}

// Approve -> pending -> reserved, occupant unchanged, matching requests
// removed.
func (rs *ReservationService) Approve(requestID uint) (*models.Table, error) {
	var req models.ReservationRequest
	if err := rs.DB.First(&req, requestID).Error; err != nil {
		return nil, utils.NotFound("reservation request")
	}

	var table models.Table
	if err := rs.DB.First(&table, req.TableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if table.Status != models.TablePending {
		return nil, utils.Conflictf("table %s is %s, not pending approval", table.Name, table.Status)
	}

	table.Status = models.TableReserved
	if err := rs.DB.Save(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	rs.deleteRequestsForTable(table.ID)

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationResolved(table.ID, "approved")
	utils.InfoLogger.Printf("Reservation for table %d approved (occupant %d)", table.ID, table.OccupantID)
	return &table, nil
}

// Reject -> pending -> available, occupant cleared, every request for the
// table removed.
func (rs *ReservationService) Reject(requestID uint) (*models.Table, error) {
	var req models.ReservationRequest
	if err := rs.DB.First(&req, requestID).Error; err != nil {
		return nil, utils.NotFound("reservation request")
	}

	var table models.Table
	if err := rs.DB.First(&table, req.TableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if table.Status != models.TablePending {
		return nil, utils.Conflictf("table %s is %s, not pending approval", table.Name, table.Status)
	}

	table.Status = models.TableAvailable
	table.OccupantID = 0
	if err := rs.DB.Save(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	rs.deleteRequestsForTable(table.ID)

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationResolved(table.ID, "rejected")
	utils.InfoLogger.Printf("Reservation for table %d rejected", table.ID)
	return &table, nil
}

// Cancel -> the occupant gives the table back, from pending or reserved.
// A non-occupant gets a conflict, not a retry.
func (rs *ReservationService) Cancel(tableID, userID uint) (*models.Table, error) {
	var table models.Table
	if err := rs.DB.First(&table, tableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if table.IsAvailable() {
		return nil, utils.Validationf("table %s is not reserved", table.Name)
	}

	if !table.OccupiedBy(userID) {
		return nil, utils.Conflictf("table %s is held by another customer", table.Name)
	}

	table.Status = models.TableAvailable
	table.OccupantID = 0
	if err := rs.DB.Save(&table).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	rs.deleteRequestsForTable(table.ID)

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationResolved(table.ID, "cancelled")
	utils.InfoLogger.Printf("Reservation for table %d cancelled by occupant %d", table.ID, userID)
	return &table, nil
}

// deleteRequestsForTable removes every queue entry referencing the table,
// which also mops up duplicates should any have slipped through.
func (rs *ReservationService) deleteRequestsForTable(tableID uint) {
	if err := rs.DB.Where("table_id = ?", tableID).Delete(&models.ReservationRequest{}).Error; err != nil {
		utils.ErrorLogger.Printf("Error deleting reservation requests for table %d: %v", tableID, err)
	}
}
