// Package validation checks individual data records against the project
// schema before they enter a pipeline.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidRecord indicates a payload that fails the record schema.
var ErrInvalidRecord = errors.New("invalid record")

// Record is one validated data record.
type Record struct {
	ID    int     `mapstructure:"id" validate:"gte=0"`
	Value float64 `mapstructure:"value"`
}

var validate = validator.New()

// ValidateRecord coerces and checks a raw payload. Both fields are
// required; id must be non-negative.
func ValidateRecord(payload map[string]any) (*Record, error) {
	for _, field := range []string{"id", "value"} {
		if _, ok := payload[field]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidRecord, field)
		}
	}

	var record Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := validate.Struct(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return &record, nil
}
