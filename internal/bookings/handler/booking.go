package handler

import (
	"net/http"

	"digilist/internal/bookings/repository"
	"digilist/internal/bookings/service"
	"digilist/pkg/adapters"
	httputil "digilist/pkg/http"
	"digilist/pkg/logger"
	"digilist/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, adapters.ToBookingDTO(booking)); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToBookingDTO(*booking)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()
	filter := repository.BookingFilter{
		ListingID: query.Get("listing_id"),
		Status:    model.BookingStatus(query.Get("status")),
	}

	bookings, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	page := adapters.MapPage(adapters.NewPaginated(bookings, total, limit, offset), func(b *model.Booking) adapters.BookingDTO {
		return adapters.ToBookingDTO(*b)
	})
	if err := httputil.WritePaginated(w, page); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var change model.StatusChange
	if err := httputil.DecodeJSON(r, &change); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.service.SetStatus(r.Context(), id, change); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToMutationResult(id, nil)); err != nil {
		h.log.Error("failed to write success response", "handler", "SetStatus", "operation", "WriteSuccess", "error", err)
	}
}

// Receipt serves the citizen portal, which only holds the receipt token.
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByReceipt(r.Context(), ps.ByName("token"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Receipt", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToBookingDTO(*booking)); err != nil {
		h.log.Error("failed to write success response", "handler", "Receipt", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.QuoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	quote, err := h.service.Quote(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
	router.POST("/api/v1/bookings/id/:id/status", h.SetStatus)
	router.GET("/api/v1/bookings/receipt/:token", h.Receipt)
	router.POST("/api/v1/bookings/quote", h.Quote)
}
