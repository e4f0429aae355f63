// Package skips provides the skip record type and an HTTP client for the
// skips-by-location API.
//
// # Overview
//
// The package is split into three files:
//
//   - types.go: the Skip record and its derived values (total price, label)
//   - client.go: HTTP client, request building and payload validation
//   - errors.go: the two failure kinds callers branch on
//
// # Client Usage
//
//	client, err := skips.NewClient("https://app.wewantwaste.co.uk",
//		skips.WithTimeout(10*time.Second))
//	if err != nil {
//		return err
//	}
//	records, err := client.FetchSkips(ctx, skips.Location{Postcode: "NR32", Area: "Lowestoft"})
//
// # API Endpoint
//
//   - GET /api/skips/by-location?postcode=NR32&area=Lowestoft
//
// The response is a JSON array. Only id, size, price_before_vat, vat and
// hire_period_days drive the picker; the remaining fields are decoded for
// display and logging.
//
// # Money
//
// Prices are decoded into decimal.Decimal so that price_before_vat + vat is
// exact. Rounding to two places happens only in FormatTotal.
//
// # Error Handling
//
//   - *FetchError: the request could not be executed, or the status was not 2xx
//   - *ParseError: the body was not a skip array, or a record broke an
//     invariant (duplicate id, non-positive size or hire period, negative
//     amounts)
//
// Both satisfy errors.Is(err, ErrDataFetch).
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api /api/skips/by-location?area=Lowestoft&postcode=NR32 returned status 500"
//   - "decode response: record 1: duplicate id 17"
package skips
