package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
)

// Event types pushed to subscribed sessions.
const (
	EventTableCreate         = "table_create"
	EventTableUpdate         = "table_update"
	EventTableDelete         = "table_delete"
	EventReservationCreate   = "reservation_create"
	EventReservationResolved = "reservation_resolved"
	EventInvoiceCreate       = "invoice_create"
	EventNotification        = "notification"
	EventDashboardUpdate     = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to every open session. A session registers its
// connection when it starts observing and must unregister when it stops;
// Unregister also closes the connection.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// ClientCount reports how many sessions are subscribed.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableCreate -> a new table exists
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableUpdate -> table status/occupant changed
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastTableDelete -> table removed
func BroadcastTableDelete(table models.Table) {
	broadcast(Message{Event: EventTableDelete, Data: table})
}

// BroadcastReservationCreate -> new request entered the queue
func BroadcastReservationCreate(req models.ReservationRequest) {
	broadcast(Message{Event: EventReservationCreate, Data: req})
}

// BroadcastReservationResolved -> request approved/rejected/cancelled
func BroadcastReservationResolved(tableID uint, outcome string) {
	broadcast(Message{
		Event: EventReservationResolved,
		Data: map[string]interface{}{
			"table_id": tableID,
			"outcome":  outcome,
		},
	})
}

// BroadcastInvoiceCreate -> checkout completed
func BroadcastInvoiceCreate(invoice models.Invoice) {
	broadcast(Message{Event: EventInvoiceCreate, Data: invoice})
}

// BroadcastNotification -> staff notice / rating prompt
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{Event: EventNotification, Data: notif})
}

// BroadcastDashboardUpdate -> aggregate counters changed
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

// BroadcastMessage -> generic broadcast
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s event to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
