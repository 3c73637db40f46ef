package models

// Unit is the trade unit a quote is denominated in.
type Unit string

const (
	UnitArroba   Unit = "@"
	UnitKilogram Unit = "kg"
)

// ArrobaKg is the weight of one arroba, the Brazilian cattle trade unit.
const ArrobaKg = 15.0

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	return u == UnitArroba || u == UnitKilogram
}

// Trend is the short-term market direction reported with a quote.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Valid reports whether t is a supported trend.
func (t Trend) Valid() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}

// Quote is a priced market reference for one sale unit, with provenance.
// It is built whole and never patched in place.
type Quote struct {
	Price      float64 `json:"price"`
	Unit       Unit    `json:"unit"`
	Source     string  `json:"source"`
	Date       string  `json:"date"`
	Trend      Trend   `json:"trend"`
	Commentary string  `json:"commentary"`
	IsManual   bool    `json:"is_manual"`
}
