package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"digilist/pkg/logger"
	"digilist/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAuditStore struct {
	entries []*model.AuditEntry
	err     error
}

func (m *mockAuditStore) Record(ctx context.Context, entry *model.AuditEntry) error {
	return nil
}

func (m *mockAuditStore) FindByBooking(ctx context.Context, bookingID string, limit int, offset int64) ([]*model.AuditEntry, error) {
	return m.entries, m.err
}

func (m *mockAuditStore) CountByBooking(ctx context.Context, bookingID string) (int64, error) {
	return int64(len(m.entries)), m.err
}

func TestHistory(t *testing.T) {
	st := &mockAuditStore{entries: []*model.AuditEntry{
		{EventID: "e-1", BookingID: "b-1", EventType: model.EventBookingCreated, Status: model.BookingPending},
		{EventID: "e-2", BookingID: "b-1", EventType: model.EventBookingStatusChanged, Status: model.BookingConfirmed},
	}}
	router := httprouter.New()
	NewAuditHandler(st, logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit/bookings/b-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Items []model.AuditEntry `json:"items"`
			Total int64              `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Total != 2 || len(resp.Data.Items) != 2 || resp.Data.Items[1].EventID != "e-2" {
		t.Errorf("unexpected page %+v", resp.Data)
	}
}

func TestHistory_StoreError(t *testing.T) {
	router := httprouter.New()
	NewAuditHandler(&mockAuditStore{err: errors.New("down")}, logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit/bookings/b-1", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
