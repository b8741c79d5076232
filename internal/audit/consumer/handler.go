package consumer

import (
	"context"
	"fmt"

	"digilist/internal/audit/store"
	"digilist/pkg/adapters"
	"digilist/pkg/kafka"
	"digilist/pkg/logger"
	"digilist/pkg/model"
)

// Handler turns booking events into audit entries.
type Handler struct {
	store store.AuditStore
	log   *logger.Logger
}

func NewHandler(store store.AuditStore, log *logger.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Handle is a kafka.MessageHandler. Events that cannot be decoded are
// permanent failures and go to the DLQ; storage failures are retried.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("undecodable booking event", err).
			WithDetail("offset", msg.Offset)
	}
	if event.BookingID == "" || event.Type == "" {
		return kafka.NewPermanentError("booking event without type or booking id", nil).
			WithDetail("offset", msg.Offset)
	}
	switch event.Type {
	case model.EventBookingCreated, model.EventBookingStatusChanged, model.EventBookingDeleted:
	default:
		return kafka.NewPermanentError("unknown booking event type", nil).
			WithDetail("type", event.Type)
	}

	eventID := msg.GetEventID()
	if eventID == "" {
		eventID = fmt.Sprintf("%s-%d-%d", msg.Topic, msg.Partition, msg.Offset)
	}

	entry := &model.AuditEntry{
		EventID:        eventID,
		EventType:      event.Type,
		BookingID:      event.BookingID,
		ListingID:      event.ListingID,
		Status:         event.Status,
		ExternalStatus: string(adapters.ToExternalBookingStatus(event.Status)),
		PreviousStatus: event.PreviousStatus,
		Reason:         event.Reason,
		Total:          event.Total,
		Currency:       event.Currency,
		OccurredAt:     event.OccurredAt,
	}

	if err := h.store.Record(ctx, entry); err != nil {
		return kafka.NewTransientError("failed to store audit entry", err)
	}

	h.log.Debug("Booking event audited",
		"event_id", eventID,
		"type", event.Type,
		"booking_id", event.BookingID,
		"status", event.Status,
	)
	return nil
}
