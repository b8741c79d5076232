package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digilist/internal/listings/repository"
	apperrors "digilist/pkg/errors"
	"digilist/pkg/logger"
	"digilist/pkg/model"
	"digilist/pkg/pricing"

	"github.com/julienschmidt/httprouter"
)

type mockListingService struct {
	createFunc    func(ctx context.Context, listing *model.Listing) error
	getByIDFunc   func(ctx context.Context, id string) (*model.Listing, error)
	getAllFunc    func(ctx context.Context, filter repository.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error)
	deleteFunc    func(ctx context.Context, id string) error
	setStatusFunc func(ctx context.Context, id string, change model.StatusChange) (*model.Listing, error)
	quoteFunc     func(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error)
}

func (m *mockListingService) Create(ctx context.Context, listing *model.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, listing)
	}
	return nil
}

func (m *mockListingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Listing", id)
}

func (m *mockListingService) GetAll(ctx context.Context, filter repository.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, filter, limit, offset)
	}
	return []*model.Listing{}, 0, nil
}

func (m *mockListingService) Update(ctx context.Context, id string, updates *model.ListingUpdate) (*model.Listing, error) {
	return &model.Listing{ID: id}, nil
}

func (m *mockListingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockListingService) SetStatus(ctx context.Context, id string, change model.StatusChange) (*model.Listing, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, change)
	}
	return &model.Listing{ID: id}, nil
}

func (m *mockListingService) Pricing(ctx context.Context, id string) (*model.ListingPricing, error) {
	return &model.ListingPricing{ListingID: id, PriceLabel: pricing.PriceOnRequest}, nil
}

func (m *mockListingService) Quote(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error) {
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, id, booking)
	}
	return &model.Quote{}, nil
}

func newRouter(svc *mockListingService) *httprouter.Router {
	router := httprouter.New()
	NewListingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := &mockListingService{
		createFunc: func(ctx context.Context, listing *model.Listing) error {
			listing.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
			listing.Status = model.ListingDraft
			return nil
		},
	}

	body := `{"organization_id":"org-oslo","name":"Nordbyhallen","category":"hall","city":"Oslo","pricing":{"price_per_hour":500}}`
	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/listings", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			PriceLabel string `json:"price_label"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != "65f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("unexpected id %q", resp.Data.ID)
	}
	if resp.Data.Status != "draft" {
		t.Errorf("expected external status draft, got %q", resp.Data.Status)
	}
	if !strings.HasSuffix(resp.Data.PriceLabel, "/time") {
		t.Errorf("expected hourly price label, got %q", resp.Data.PriceLabel)
	}
}

func TestCreate_RejectsUnknownFields(t *testing.T) {
	called := false
	svc := &mockListingService{
		createFunc: func(ctx context.Context, listing *model.Listing) error {
			called = true
			return nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/listings", `{"name":"Hall","pricing":{"price_per_hr":500}}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be called for an undecodable body")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	rec := serve(newRouter(&mockListingService{}), http.MethodGet, "/api/v1/listings/id/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, resp.Code)
	}
}

func TestGetAll_QueryParameters(t *testing.T) {
	var gotFilter repository.ListingFilter
	var gotLimit int
	var gotOffset int64
	svc := &mockListingService{
		getAllFunc: func(ctx context.Context, filter repository.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
			gotFilter, gotLimit, gotOffset = filter, limit, offset
			return []*model.Listing{{ID: "a"}, {ID: "b"}}, 25, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name       string
		query      string
		wantCode   int
		wantLimit  int
		wantOffset int64
	}{
		{"defaults", "", http.StatusOK, 10, 0},
		{"explicit", "?limit=20&offset=20", http.StatusOK, 20, 20},
		{"limit above max", "?limit=500", http.StatusOK, 100, 0},
		{"invalid limit", "?limit=abc", http.StatusBadRequest, 0, 0},
		{"invalid offset", "?offset=x", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLimit, gotOffset = 0, 0
			rec := serve(router, http.MethodGet, "/api/v1/listings"+tt.query, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			if gotLimit != tt.wantLimit || gotOffset != tt.wantOffset {
				t.Errorf("service got limit=%d offset=%d, want %d/%d", gotLimit, gotOffset, tt.wantLimit, tt.wantOffset)
			}
		})
	}

	rec := serve(router, http.MethodGet, "/api/v1/listings?limit=10&city=Oslo&status=published", "")
	if gotFilter.City != "Oslo" || gotFilter.Status != model.ListingPublished {
		t.Errorf("unexpected filter %+v", gotFilter)
	}

	var resp struct {
		Data struct {
			Items      []map[string]any `json:"items"`
			Total      int64            `json:"total"`
			TotalPages int64            `json:"total_pages"`
			HasMore    bool             `json:"has_more"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Items) != 2 || resp.Data.Total != 25 || resp.Data.TotalPages != 3 || !resp.Data.HasMore {
		t.Errorf("unexpected page %+v", resp.Data)
	}
}

func TestDelete(t *testing.T) {
	var deleted string
	svc := &mockListingService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	rec := serve(newRouter(svc), http.MethodDelete, "/api/v1/listings/id/abc", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "abc" {
		t.Errorf("expected abc to be deleted, got %q", deleted)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("expected mutation result, got %s", rec.Body.String())
	}
}

func TestSetStatus_InvalidTransition(t *testing.T) {
	svc := &mockListingService{
		setStatusFunc: func(ctx context.Context, id string, change model.StatusChange) (*model.Listing, error) {
			return nil, apperrors.InvalidStatusTransition("archived", change.Status)
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/listings/id/abc/status", `{"status":"published"}`)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestQuote(t *testing.T) {
	var got pricing.BookingDetails
	svc := &mockListingService{
		quoteFunc: func(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error) {
			got = booking
			return &model.Quote{
				Price:       pricing.PriceCalculationResult{Total: 1250, Currency: "NOK"},
				Constraints: pricing.ConstraintResult{Valid: true, Errors: []string{}},
			}, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/listings/id/abc/quote", `{"mode":"DURATION","duration_minutes":120,"attendees":4}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.DurationMinutes != 120 || got.Attendees != 4 || got.Mode != pricing.ModeDuration {
		t.Errorf("unexpected booking details %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"total":1250`) {
		t.Errorf("expected total in body, got %s", rec.Body.String())
	}
}

func TestPricing(t *testing.T) {
	rec := serve(newRouter(&mockListingService{}), http.MethodGet, "/api/v1/listings/id/abc/pricing", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), pricing.PriceOnRequest) {
		t.Errorf("expected price label in body, got %s", rec.Body.String())
	}
}
