package validators

import (
	"digilist/pkg/model"
	"digilist/pkg/pricing"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	integer = bson.A{"int", "long"}
	number  = bson.A{"int", "long", "double", "decimal"}
)

func statusEnum[S ~string](statuses []S) bson.A {
	out := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func modelEnum() bson.A {
	return statusEnum(pricing.Models)
}

var bookingModes = bson.A{
	string(pricing.ModeSlots),
	string(pricing.ModeAllDay),
	string(pricing.ModeDuration),
	string(pricing.ModeTickets),
}

func nonNegative() bson.M {
	return bson.M{"bsonType": number, "minimum": 0}
}

// pricingSchema mirrors pricing.ResourcePricingConfig.
var pricingSchema = bson.M{
	"bsonType":             "object",
	"additionalProperties": true,
	"properties": bson.M{
		"model":                 bson.M{"bsonType": "string", "enum": modelEnum()},
		"currency":              bson.M{"bsonType": "string", "maxLength": 3},
		"price_per_hour":        nonNegative(),
		"price_per_day":         nonNegative(),
		"price_per_half_day":    nonNegative(),
		"price_per_person":      nonNegative(),
		"price_per_person_hour": nonNegative(),
		"base_price":            nonNegative(),
		"price_per_ticket":      nonNegative(),
		"min_duration_minutes":  bson.M{"bsonType": integer, "minimum": 0},
		"max_duration_minutes":  bson.M{"bsonType": integer, "minimum": 0},
		"min_people":            bson.M{"bsonType": integer, "minimum": 0},
		"max_people":            bson.M{"bsonType": integer, "minimum": 0},
		"cleaning_fee":          nonNegative(),
		"deposit_amount":        nonNegative(),
		"tax_rate":              bson.M{"bsonType": number, "minimum": 0, "maximum": 1},
	},
}

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"organization_id",
			"name",
			"category",
			"city",
			"status",
			"pricing",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":             bson.M{"bsonType": "objectId"},
			"organization_id": bson.M{"bsonType": "string", "minLength": 2, "maxLength": 64},
			"name":            bson.M{"bsonType": "string", "minLength": 2, "maxLength": 120},
			"description":     bson.M{"bsonType": "string", "maxLength": 2000},
			"category":        bson.M{"bsonType": "string", "minLength": 2, "maxLength": 60},
			"city":            bson.M{"bsonType": "string", "minLength": 2, "maxLength": 80},
			"contact_phone":   bson.M{"bsonType": "string", "pattern": `^\+[1-9]\d{7,14}$`},
			"booking_mode":    bson.M{"bsonType": "string", "enum": bookingModes},
			"status":          bson.M{"bsonType": "string", "enum": statusEnum(model.ListingStatuses)},
			"pricing":         pricingSchema,
			"created_at":      bson.M{"bsonType": "long"},
			"updated_at":      bson.M{"bsonType": "long"},
		},
	},
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"listing_id",
			"contact_name",
			"contact_phone",
			"mode",
			"start_time",
			"end_time",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":                  bson.M{"bsonType": "objectId"},
			"listing_id":           bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24},
			"contact_name":         bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"contact_phone":        bson.M{"bsonType": "string", "pattern": `^\+[1-9]\d{7,14}$`},
			"mode":                 bson.M{"bsonType": "string", "enum": bookingModes},
			"start_time":           bson.M{"bsonType": "long", "minimum": 1},
			"end_time":             bson.M{"bsonType": "long", "minimum": 1},
			"attendees":            bson.M{"bsonType": integer, "minimum": 0, "maximum": 10000},
			"tickets":              bson.M{"bsonType": integer, "minimum": 0, "maximum": 10000},
			"price_group_discount": bson.M{"bsonType": number, "minimum": 0, "maximum": 100},
			"status":               bson.M{"bsonType": "string", "enum": statusEnum(model.BookingStatuses)},
			"price": bson.M{
				"bsonType": "object",
				"required": []string{"items", "total", "currency", "pricing_model"},
				"properties": bson.M{
					"total":         nonNegative(),
					"currency":      bson.M{"bsonType": "string", "minLength": 3, "maxLength": 3},
					"pricing_model": bson.M{"bsonType": "string", "enum": modelEnum()},
				},
			},
			"receipt_token": bson.M{"bsonType": "string"},
			"created_at":    bson.M{"bsonType": "long"},
			"updated_at":    bson.M{"bsonType": "long"},
		},
	},
}

var AuditValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_id",
			"event_type",
			"booking_id",
			"status",
			"external_status",
			"recorded_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"event_id":   bson.M{"bsonType": "string", "minLength": 1},
			"event_type": bson.M{"bsonType": "string", "enum": bson.A{model.EventBookingCreated, model.EventBookingStatusChanged, model.EventBookingDeleted}},
			"booking_id": bson.M{"bsonType": "string", "minLength": 1},
			"status":     bson.M{"bsonType": "string", "enum": statusEnum(model.BookingStatuses)},
			"external_status": bson.M{
				"bsonType": "string",
				"enum":     bson.A{"pending", "confirmed", "cancelled", "completed"},
			},
			"occurred_at": bson.M{"bsonType": "long"},
			"recorded_at": bson.M{"bsonType": "long"},
		},
	},
}
