package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

// ErrMalformedQuote indicates a provider payload that is missing fields or
// carries out-of-range values.
var ErrMalformedQuote = errors.New("malformed market quote")

type quotePayload struct {
	Price      *float64 `json:"price"`
	Unit       *string  `json:"unit"`
	Source     *string  `json:"source"`
	Date       *string  `json:"date"`
	Trend      *string  `json:"trend"`
	Commentary *string  `json:"commentary"`
}

// DecodeQuote parses a provider JSON payload. Every field is required; a
// missing or invalid one fails the whole payload.
func DecodeQuote(data []byte) (models.Quote, error) {
	var p quotePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}

	missing := make([]string, 0, 6)
	if p.Price == nil {
		missing = append(missing, "price")
	}
	fields := []struct {
		name  string
		value *string
	}{
		{"unit", p.Unit}, {"source", p.Source}, {"date", p.Date}, {"trend", p.Trend}, {"commentary", p.Commentary},
	}
	for _, f := range fields {
		if f.value == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.Quote{}, fmt.Errorf("%w: missing %s", ErrMalformedQuote, strings.Join(missing, ", "))
	}

	q := models.Quote{
		Price:      *p.Price,
		Unit:       models.Unit(strings.ToLower(strings.TrimSpace(*p.Unit))),
		Source:     *p.Source,
		Date:       *p.Date,
		Trend:      models.Trend(strings.ToLower(strings.TrimSpace(*p.Trend))),
		Commentary: *p.Commentary,
	}
	if err := Validate(q); err != nil {
		return models.Quote{}, err
	}
	return q, nil
}

// Validate checks that q is a complete live quote.
func Validate(q models.Quote) error {
	switch {
	case math.IsNaN(q.Price) || math.IsInf(q.Price, 0) || q.Price <= 0:
		return fmt.Errorf("%w: price must be a positive finite number, got %v", ErrMalformedQuote, q.Price)
	case !q.Unit.Valid():
		return fmt.Errorf("%w: unknown unit %q", ErrMalformedQuote, q.Unit)
	case !q.Trend.Valid():
		return fmt.Errorf("%w: unknown trend %q", ErrMalformedQuote, q.Trend)
	case strings.TrimSpace(q.Source) == "":
		return fmt.Errorf("%w: empty source", ErrMalformedQuote)
	case strings.TrimSpace(q.Date) == "":
		return fmt.Errorf("%w: empty date", ErrMalformedQuote)
	case strings.TrimSpace(q.Commentary) == "":
		return fmt.Errorf("%w: empty commentary", ErrMalformedQuote)
	}
	return nil
}
