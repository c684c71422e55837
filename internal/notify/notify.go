package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Channel names events are published on.
const (
	BookingChannel = "booking-events"
	SupportChannel = "support-events"
)

// Backend defines the broker-agnostic publish operations used by the app.
// This service only produces events; consumers run elsewhere.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// BookingEvent describes a booking lifecycle change.
type BookingEvent struct {
	BookingID  int       `json:"booking_id"`
	UserID     int       `json:"user_id"`
	ProviderID int       `json:"provider_id"`
	ServiceID  int       `json:"service_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TicketEvent describes a newly opened support ticket.
type TicketEvent struct {
	TicketID   int       `json:"ticket_id"`
	Reference  string    `json:"reference"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes domain events to a backend. A nil Notifier is valid
// and drops all events, so callers never need to branch on configuration.
type Notifier struct {
	backend Backend
	logger  *slog.Logger
}

// New constructs a Notifier for the provided backend.
func New(backend Backend, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{backend: backend, logger: logger}
}

// BookingChanged publishes a booking lifecycle event. Publishing is
// best-effort: failures are logged and never fail the request.
func (n *Notifier) BookingChanged(ctx context.Context, event BookingEvent) {
	n.publish(ctx, BookingChannel, event, map[string]string{"status": event.Status})
}

// TicketOpened publishes a support ticket event. Best-effort.
func (n *Notifier) TicketOpened(ctx context.Context, event TicketEvent) {
	n.publish(ctx, SupportChannel, event, nil)
}

// Close closes the underlying backend.
func (n *Notifier) Close() error {
	if n == nil || n.backend == nil {
		return nil
	}
	return n.backend.Close()
}

func (n *Notifier) publish(ctx context.Context, channel string, event any, attrs map[string]string) {
	if n == nil || n.backend == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal event", "channel", channel, "err", err)
		return
	}
	if _, err := n.backend.Publish(ctx, channel, data, attrs); err != nil {
		n.logger.Error("publish event", "channel", channel, "err", err)
	}
}
