package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone is returned when a phone number cannot be parsed or is
// not a valid number
var ErrInvalidPhone = errors.New("invalid phone number")

// DefaultRegion is used for numbers written without a country code
const DefaultRegion = "US"

// Normalizer canonicalises phone numbers to E.164 so that different
// spellings of one number share an identity
type Normalizer struct {
	region string
}

// New creates a Normalizer for the given default region (ISO 3166 code)
func New(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// Normalize returns raw in E.164 form
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPhone)
	}

	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
