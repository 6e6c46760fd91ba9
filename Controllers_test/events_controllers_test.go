package Controllers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/controllers"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// The snapshot is written by the handler before the hub learns about the
// connection; every frame after it comes from the hub's broadcaster. A
// subscriber therefore sees the snapshot first, then the deltas, with a
// single writer per connection at any time.
func TestEventsSubscriberGetsSnapshotThenDeltas(t *testing.T) {
	db := openTestDB(t, &models.Table{}, &models.ReservationRequest{}, &models.User{})
	utils.InitDB(db)

	svc := services.NewReservationService(db)
	svc.CreateTable("Table W1")

	router := gin.New()
	router.GET("/events/ws", asUser(2, "staff", "sess-staff"), controllers.EventsHandler)

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	// First frame: the table snapshot
	_, raw, err := conn.ReadMessage()
	assert.NoError(t, err)

	var snapshot struct {
		Event string         `json:"event"`
		Data  []models.Table `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, events.EventDashboardUpdate, snapshot.Event)
	assert.Len(t, snapshot.Data, 1)
	assert.Equal(t, "Table W1", snapshot.Data[0].Name)

	// Registration follows the snapshot write on the handler goroutine;
	// wait for it before mutating so the delta has a subscriber.
	for i := 0; i < 100 && events.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 1, events.ClientCount())

	// Later mutations reach the registered subscriber through the hub
	svc.CreateTable("Table W2")

	_, raw, err = conn.ReadMessage()
	assert.NoError(t, err)

	var delta events.Message
	assert.NoError(t, json.Unmarshal(raw, &delta))
	assert.Equal(t, events.EventTableCreate, delta.Event)
}
