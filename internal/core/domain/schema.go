package domain

// StreamName is the single stream this tap emits.
const StreamName = "exchange_rate"

// RecordKeyDate is the record's key property.
const RecordKeyDate = "date"

// KeyProperties lists the properties identifying a record.
func KeyProperties() []string {
	return []string{RecordKeyDate}
}

// RecordSchema returns the JSON schema of an ExchangeRate record. Only date
// is declared; currency codes vary by day and base, so any additional
// property is allowed.
func RecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			RecordKeyDate: map[string]any{
				"type":   "string",
				"format": "date-time",
			},
		},
		"required":             []string{RecordKeyDate},
		"additionalProperties": true,
	}
}
