package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
)

const EventOrderStatus = "order_status"

// Event is the envelope written to subscribers.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type delivery struct {
	event      *Event
	recipients []string
}

// Hub keeps the connected clients and routes each order event to the buyer
// and the sellers of that order.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *delivery
	register   chan *Client
	unregister chan *Client
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case d := <-h.broadcast:
			data, err := json.Marshal(d.event)
			if err != nil {
				h.log.With(sl.Err(err)).Error("marshal event")
				continue
			}
			for client := range h.clients {
				if !slices.Contains(d.recipients, client.userID) {
					continue
				}
				select {
				case client.send <- data:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// PublishOrderEvent queues the event without blocking; when the queue is
// full the event is dropped.
func (h *Hub) PublishOrderEvent(event *entity.OrderEvent) {
	recipients := append([]string{event.UserID}, event.SellerIDs...)
	d := &delivery{
		event:      &Event{Type: EventOrderStatus, Data: event},
		recipients: recipients,
	}
	select {
	case h.broadcast <- d:
	default:
		h.log.With(
			slog.String("order", event.OrderID),
		).Warn("event queue full, dropping order event")
	}
}
