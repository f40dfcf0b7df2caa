package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// RatePayload is one day's provider response.
type RatePayload struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// ExchangeRate is the normalised record emitted for one day.
// Rates always contains the base currency at 1.0.
type ExchangeRate struct {
	Date  time.Time
	Rates map[string]float64
}

// Fields flattens the record into the emitted mapping: one key per
// currency code plus "date" as an ISO-8601 UTC timestamp.
func (r ExchangeRate) Fields() map[string]any {
	fields := make(map[string]any, len(r.Rates)+1)
	for code, rate := range r.Rates {
		fields[code] = rate
	}
	fields[RecordKeyDate] = r.Date.UTC().Format(TimestampLayout)
	return fields
}

// MarshalJSON encodes the flattened record.
func (r ExchangeRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// Normalise turns a provider payload into a record. The provider omits the
// base currency from rates, so it is synthesised at 1.0.
func Normalise(p RatePayload) (ExchangeRate, error) {
	if p.Base == "" {
		return ExchangeRate{}, fmt.Errorf("%w: missing base", ErrMalformedPayload)
	}
	if p.Rates == nil {
		return ExchangeRate{}, fmt.Errorf("%w: missing rates", ErrMalformedPayload)
	}
	date, err := time.ParseInLocation(DateLayout, p.Date, time.UTC)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("%w: date %q", ErrMalformedPayload, p.Date)
	}

	rates := maps.Clone(p.Rates)
	rates[p.Base] = 1.0

	return ExchangeRate{Date: date, Rates: rates}, nil
}
