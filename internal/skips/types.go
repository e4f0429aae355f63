package skips

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Skip mirrors one entry of the /api/skips/by-location payload.
type Skip struct {
	ID             int64           `json:"id"`
	Size           int             `json:"size"`
	HirePeriodDays int             `json:"hire_period_days"`
	PriceBeforeVAT decimal.Decimal `json:"price_before_vat"`
	VAT            decimal.Decimal `json:"vat"`

	// Informational fields. The picker never branches on them.
	Postcode         string              `json:"postcode"`
	Area             string              `json:"area"`
	TransportCost    decimal.NullDecimal `json:"transport_cost"`
	PerTonneCost     decimal.NullDecimal `json:"per_tonne_cost"`
	Forbidden        bool                `json:"forbidden"`
	AllowedOnRoad    bool                `json:"allowed_on_road"`
	AllowsHeavyWaste bool                `json:"allows_heavy_waste"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

// Location identifies the delivery area the skips are priced for.
type Location struct {
	Postcode string
	Area     string
}

// TotalPrice returns price before VAT plus VAT at full precision.
func (s Skip) TotalPrice() decimal.Decimal {
	return s.PriceBeforeVAT.Add(s.VAT)
}

// FormatTotal renders the total price rounded to two decimal places.
func (s Skip) FormatTotal() string {
	return s.TotalPrice().StringFixed(2)
}

// SizeString is the decimal form of Size used for filtering and display.
func (s Skip) SizeString() string {
	return strconv.Itoa(s.Size)
}

// Label returns the card heading, e.g. "8 Yard Skip".
func (s Skip) Label() string {
	return s.SizeString() + " Yard Skip"
}

// Clone returns a copy of records that does not alias the input.
func Clone(records []Skip) []Skip {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Skip, len(records))
	copy(dup, records)
	return dup
}
