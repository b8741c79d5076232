// Package pricing computes price quotes for bookable resources.
//
// Every function in the package is pure: results depend only on the
// ResourcePricingConfig and BookingDetails passed in. Missing rates price as
// zero and missing quantities fall back to one, so a misconfigured resource
// produces a zero or minimal quote instead of an error. Callers that want to
// surface such configurations use Diagnose at the boundary.
//
// Money is computed with shopspring/decimal and rounded half-up to whole
// currency units. Texts are Norwegian bokmål and numbers follow nb-NO.
package pricing
