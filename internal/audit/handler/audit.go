package handler

import (
	"net/http"

	"digilist/internal/audit/store"
	"digilist/pkg/adapters"
	apperrors "digilist/pkg/errors"
	httputil "digilist/pkg/http"
	"digilist/pkg/logger"
	"digilist/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// AuditHandler serves the recorded history of a booking.
type AuditHandler struct {
	store store.AuditStore
	log   *logger.Logger
}

func NewAuditHandler(store store.AuditStore, log *logger.Logger) *AuditHandler {
	return &AuditHandler{store: store, log: log}
}

func (h *AuditHandler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	total, err := h.store.CountByBooking(r.Context(), bookingID)
	if err != nil {
		h.log.Error("Failed to count audit entries", "booking_id", bookingID, "error", err)
		h.writeError(w, apperrors.Internal("Failed to count audit entries", err))
		return
	}

	entries, err := h.store.FindByBooking(r.Context(), bookingID, limit, offset)
	if err != nil {
		h.log.Error("Failed to read audit entries", "booking_id", bookingID, "error", err)
		h.writeError(w, apperrors.Internal("Failed to read audit entries", err))
		return
	}

	page := adapters.MapPage(adapters.NewPaginated(entries, total, limit, offset), func(e *model.AuditEntry) model.AuditEntry {
		return *e
	})
	if err := httputil.WritePaginated(w, page); err != nil {
		h.log.Error("failed to write paginated response", "handler", "History", "operation", "WritePaginated", "error", err)
	}
}

func (h *AuditHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "History", "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuditHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/audit/bookings/:id", h.History)
}
