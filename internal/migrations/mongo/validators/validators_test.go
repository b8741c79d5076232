package validators

import (
	"testing"

	"digilist/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func enumOf(t *testing.T, validator bson.M, field string) bson.A {
	t.Helper()
	schema := validator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)
	prop, ok := props[field].(bson.M)
	if !ok {
		t.Fatalf("no property %q", field)
	}
	return prop["enum"].(bson.A)
}

func contains(values bson.A, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func TestStatusEnums_CoverModel(t *testing.T) {
	bookingEnum := enumOf(t, BookingValidator, "status")
	for _, s := range model.BookingStatuses {
		if !contains(bookingEnum, string(s)) {
			t.Errorf("booking validator rejects status %q", s)
		}
	}

	listingEnum := enumOf(t, ListingValidator, "status")
	for _, s := range model.ListingStatuses {
		if !contains(listingEnum, string(s)) {
			t.Errorf("listing validator rejects status %q", s)
		}
	}
}

func TestAuditValidator_EventTypes(t *testing.T) {
	types := enumOf(t, AuditValidator, "event_type")
	for _, et := range []string{model.EventBookingCreated, model.EventBookingStatusChanged, model.EventBookingDeleted} {
		if !contains(types, et) {
			t.Errorf("audit validator rejects event type %q", et)
		}
	}
}
