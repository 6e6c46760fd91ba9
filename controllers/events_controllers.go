package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades a session to the event stream. The subscription
// lives exactly as long as the connection: registered on upgrade,
// unregistered (and closed) when the read loop ends.
func EventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// New subscribers get the current table state before the deltas start.
	// Written before registration: once the hub knows the connection, its
	// broadcaster goroutine is the only allowed writer.
	if db := utils.GetDB(); db != nil {
		var tables []models.Table
		if err := db.Order("id").Find(&tables).Error; err == nil {
			ws.WriteJSON(events.Message{Event: events.EventDashboardUpdate, Data: tables})
		}
	}

	events.RegisterClient(ws, role)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}
