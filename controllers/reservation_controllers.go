package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB, svc *services.ReservationService) *ReservationController {
	return &ReservationController{DB: db, Service: svc}
}

// GetPendingRequests -> the approval queue as staff see it
func (rc *ReservationController) GetPendingRequests(c *gin.Context) {
	reqs, err := rc.Service.PendingRequests()
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending reservation requests", reqs)
}

// ApproveRequest -> pending table becomes reserved
func (rc *ReservationController) ApproveRequest(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("request_id"))

	table, err := rc.Service.Approve(uint(id))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation approved", table)
}

// RejectRequest -> pending table goes back to available
func (rc *ReservationController) RejectRequest(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("request_id"))

	table, err := rc.Service.Reject(uint(id))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation rejected", table)
}
