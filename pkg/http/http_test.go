package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digilist/pkg/adapters"
	"digilist/pkg/config"
	apperrors "digilist/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFoundWithID("Listing", "x"), http.StatusNotFound, apperrors.CodeNotFound},
		{"constraint", apperrors.ConstraintViolation([]string{"Minimum antall personer er 5"}), http.StatusUnprocessableEntity, apperrors.CodeConstraint},
		{"plain error", errors.New("mongo exploded"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError() error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp apperrors.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if strings.Contains(rec.Body.String(), "mongo exploded") {
				t.Errorf("internal cause leaked to client: %s", rec.Body.String())
			}
		})
	}
}

func TestWritePaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	page := adapters.NewPaginated([]string{"a", "b"}, 3, 2, 0)

	if err := WritePaginated(rec, page); err != nil {
		t.Fatalf("WritePaginated() error = %v", err)
	}

	var body struct {
		Data adapters.Paginated[string] `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Data.TotalPages != 2 || !body.Data.HasMore || len(body.Data.Items) != 2 {
		t.Errorf("unexpected page: %+v", body.Data)
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"", config.MinPaginationLimit, 0, false},
		{"limit=25&offset=50", 25, 50, false},
		{"limit=1000", config.DefaultPaginationLimit, 0, false},
		{"offset=-5", config.MinPaginationLimit, 0, false},
		{"limit=ten", 0, 0, true},
		{"offset=1.5", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/listings?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Storsalen"}`))
	if err := DecodeJSON(r, &target); err != nil || target.Name != "Storsalen" {
		t.Fatalf("expected decode to succeed, got %v %+v", err, target)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"typo"}`))
	if err := DecodeJSON(r, &target); !apperrors.IsAppError(err) || apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input for unknown field, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(r, &target); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty body error, got %v", err)
	}
}
