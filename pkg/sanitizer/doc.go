// Package sanitizer normalizes listing and booking input before validation
// and storage.
//
// All functions are idempotent. Invalid input yields an empty string rather
// than an error so that the validator reports it with the field name.
//
// Normalization includes:
//   - Phone numbers: E.164, local numbers resolved against NO, SE and DK
//   - URLs: https scheme, lowercase host, no www prefix, no utm_ parameters
//   - Names and addresses: collapsed whitespace, original casing kept
//   - Categories: lowercase labels
//   - Currency codes: uppercase ISO 4217
package sanitizer
