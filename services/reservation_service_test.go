package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

var reservedFor = time.Date(2025, 5, 22, 12, 48, 0, 0, time.UTC)

func TestCreateTableAllocatesSequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	t1, err := svc.CreateTable("Table A1")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), t1.ID)
	assert.Equal(t, models.TableAvailable, t1.Status)
	assert.Equal(t, uint(0), t1.OccupantID)

	t2, err := svc.CreateTable("Table A2")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), t2.ID)
}

func TestReserveMovesTableToPending(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table B1")

	req, err := svc.Reserve(table.ID, 7, reservedFor)
	assert.NoError(t, err)
	assert.Equal(t, table.ID, req.TableID)
	assert.Equal(t, uint(7), req.CustomerID)

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, models.TablePending, got.Status)
	assert.Equal(t, uint(7), got.OccupantID)

	var count int64
	db.Model(&models.ReservationRequest{}).Where("table_id = ?", table.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReserveRejectedWhilePending(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table C1")
	_, err := svc.Reserve(table.ID, 7, reservedFor)
	assert.NoError(t, err)

	// Second customer is rejected while the first request is live
	_, err = svc.Reserve(table.ID, 8, reservedFor)
	assert.Error(t, err)
	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, uint(7), got.OccupantID, "occupant unchanged by the rejected attempt")
}

func TestApproveKeepsOccupantAndDrainsQueue(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table D1")
	req, _ := svc.Reserve(table.ID, 7, reservedFor)

	got, err := svc.Approve(req.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.TableReserved, got.Status)
	assert.Equal(t, uint(7), got.OccupantID)

	var count int64
	db.Model(&models.ReservationRequest{}).Where("table_id = ?", table.ID).Count(&count)
	assert.Equal(t, int64(0), count, "approval removes the matching request")
}

func TestRejectClearsOccupant(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table E1")
	req, _ := svc.Reserve(table.ID, 7, reservedFor)

	got, err := svc.Reject(req.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, got.Status)
	assert.Equal(t, uint(0), got.OccupantID)

	var count int64
	db.Model(&models.ReservationRequest{}).Where("table_id = ?", table.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCancelFromPendingAndReserved(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	// Cancel while pending
	table, _ := svc.CreateTable("Table F1")
	svc.Reserve(table.ID, 7, reservedFor)

	got, err := svc.Cancel(table.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, got.Status)
	assert.Equal(t, uint(0), got.OccupantID)

	// Cancel after approval
	req2, _ := svc.Reserve(table.ID, 7, reservedFor)
	svc.Approve(req2.ID)

	got, err = svc.Cancel(table.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, got.Status)

	var count int64
	db.Model(&models.ReservationRequest{}).Where("table_id = ?", table.ID).Count(&count)
	assert.Equal(t, int64(0), count, "cancel removes every request referencing the table")
}

func TestCancelByNonOccupantIsConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table G1")
	svc.Reserve(table.ID, 7, reservedFor)

	_, err := svc.Cancel(table.ID, 9)
	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRenameAndDeleteBlockedWhileHeld(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table H1")
	svc.Reserve(table.ID, 7, reservedFor)

	_, err := svc.RenameTable(table.ID, "Table H1 bis")
	var validation *utils.ValidationError
	assert.ErrorAs(t, err, &validation)

	err = svc.DeleteTable(table.ID)
	assert.ErrorAs(t, err, &validation)

	// Released tables can be renamed and deleted again
	svc.Cancel(table.ID, 7)
	_, err = svc.RenameTable(table.ID, "Table H1 bis")
	assert.NoError(t, err)
	assert.NoError(t, svc.DeleteTable(table.ID))
}

// status != available implies a non-zero occupant, across the lifecycle
func TestOccupantInvariant(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)

	table, _ := svc.CreateTable("Table I1")
	req, _ := svc.Reserve(table.ID, 7, reservedFor)
	svc.Approve(req.ID)

	var tables []models.Table
	db.Find(&tables)
	for _, tb := range tables {
		assert.Contains(t, []string{models.TableAvailable, models.TablePending, models.TableReserved}, tb.Status)
		if tb.Status != models.TableAvailable {
			assert.NotZero(t, tb.OccupantID)
		}
	}
}
