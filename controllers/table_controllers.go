package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type TableController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewTableController(db *gorm.DB, svc *services.ReservationService) *TableController {
	return &TableController{DB: db, Service: svc}
}

// CreateTable -> staff add a table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.CreateTable(req.Name)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (id=%d)", table.Name, table.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> all tables, every role sees the same list
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("id").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("table"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindTablesByStatus -> e.g. list available tables for the booking screen
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableAvailable
	}
	var tables []models.Table
	if err := tc.DB.Where("status = ?", status).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// RenameTable -> blocked while pending/reserved
func (tc *TableController) RenameTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.RenameTable(uint(id), body.Name)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table renamed", table)
}

// DeleteTable -> blocked while pending/reserved
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	if err := tc.Service.DeleteTable(uint(id)); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": id})
}

// ReserveTable -> customer submits a reservation for a date/time
func (tc *TableController) ReserveTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))
	userID := c.GetUint("user_id")

	var body struct {
		ReservedFor string `json:"reserved_for" binding:"required"` // "02/01/2006 15:04"
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservedFor, err := time.Parse("02/01/2006 15:04", body.ReservedFor)
	if err != nil {
		utils.RespondWithError(c, utils.Validationf("reserved_for must look like 02/01/2006 15:04"))
		return
	}

	req, err := tc.Service.Reserve(uint(id), userID, reservedFor)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation submitted, waiting for approval", req)
}

// CancelReservation -> the occupant gives the table back
func (tc *TableController) CancelReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))
	userID := c.GetUint("user_id")

	table, err := tc.Service.Cancel(uint(id), userID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", table)
}

// GetTableStats -> dashboard counters
func (tc *TableController) GetTableStats(c *gin.Context) {
	var availableCount, pendingCount, reservedCount int64

	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableAvailable).Count(&availableCount)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TablePending).Count(&pendingCount)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableReserved).Count(&reservedCount)

	utils.RespondJSON(c, http.StatusOK, "Table stats", gin.H{
		"available": availableCount,
		"pending":   pendingCount,
		"reserved":  reservedCount,
		"total":     availableCount + pendingCount + reservedCount,
	})
}
