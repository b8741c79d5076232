package handler

import (
	"net/http"

	"digilist/internal/listings/repository"
	"digilist/internal/listings/service"
	"digilist/pkg/adapters"
	httputil "digilist/pkg/http"
	"digilist/pkg/logger"
	"digilist/pkg/model"
	"digilist/pkg/pricing"

	"github.com/julienschmidt/httprouter"
)

type ListingHandler struct {
	service service.ListingService
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var listing model.Listing
	if err := httputil.DecodeJSON(r, &listing); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &listing); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, adapters.ToListingDTO(listing)); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listing, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToListingDTO(*listing)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	query := r.URL.Query()
	filter := repository.ListingFilter{
		OrganizationID: query.Get("organization_id"),
		City:           query.Get("city"),
		Category:       query.Get("category"),
	}
	if s := query.Get("status"); s != "" {
		filter.Status = model.ListingStatus(s)
	}

	listings, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	page := adapters.NewPaginated(listings, total, limit, offset)
	dtos := adapters.MapPage(page, func(l *model.Listing) adapters.ListingDTO {
		return adapters.ToListingDTO(*l)
	})
	if err := httputil.WritePaginated(w, dtos); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ListingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	listing, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToListingDTO(*listing)); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToMutationResult(id, nil)); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var change model.StatusChange
	if err := httputil.DecodeJSON(r, &change); err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	listing, err := h.service.SetStatus(r.Context(), ps.ByName("id"), change)
	if err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, adapters.ToListingDTO(*listing)); err != nil {
		h.log.Error("failed to write success response", "handler", "SetStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) Pricing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.service.Pricing(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Pricing", err)
		return
	}

	if err := httputil.WriteSuccess(w, p); err != nil {
		h.log.Error("failed to write success response", "handler", "Pricing", "operation", "WriteSuccess", "error", err)
	}
}

// Quote prices a prospective booking of the listing without storing it.
func (h *ListingHandler) Quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var booking pricing.BookingDetails
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Quote", err)
		return
	}

	quote, err := h.service.Quote(r.Context(), ps.ByName("id"), booking)
	if err != nil {
		h.writeError(w, "Quote", err)
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings", h.Create)
	router.GET("/api/v1/listings", h.GetAll)
	router.GET("/api/v1/listings/id/:id", h.GetByID)
	router.PATCH("/api/v1/listings/id/:id", h.Update)
	router.DELETE("/api/v1/listings/id/:id", h.Delete)
	router.POST("/api/v1/listings/id/:id/status", h.SetStatus)
	router.GET("/api/v1/listings/id/:id/pricing", h.Pricing)
	router.POST("/api/v1/listings/id/:id/quote", h.Quote)
}
