package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Zone is the two-valued delivery area: inside the Dhaka metro or outside it.
type Zone string

const (
	ZoneInside  Zone = "inside"
	ZoneOutside Zone = "outside"
)

// Flat delivery fees per zone, in BDT.
const (
	FeeInside  = 70.0
	FeeOutside = 160.0
)

// Bangladeshi mobile numbers: 11 digits, 01 then an operator digit 3-9.
var phonePattern = regexp.MustCompile(`^01[3-9][0-9]{8}$`)

// Form carries the customer-entered delivery and payment fields.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
	Zone    Zone   `json:"zone"`

	// Required when the zone is outside the metro area: delivery there is
	// paid in advance over mobile banking.
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaymentNumber string `json:"paymentNumber,omitempty"`
	TrxID         string `json:"trxId,omitempty"`
}

// ValidationError names the first field that failed and why. It is shown
// inline next to the field, never treated as fatal.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate fails fast: the first failing rule is returned and submission
// aborts with state unchanged.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if !phonePattern.MatchString(strings.TrimSpace(f.Phone)) {
		return &ValidationError{Field: "phone", Reason: "must be an 11-digit mobile number starting with 01"}
	}
	if strings.TrimSpace(f.Address) == "" {
		return &ValidationError{Field: "address", Reason: "address is required"}
	}

	switch f.Zone {
	case ZoneInside:
	case ZoneOutside:
		if strings.TrimSpace(f.PaymentMethod) == "" {
			return &ValidationError{Field: "paymentMethod", Reason: "payment method is required for delivery outside Dhaka"}
		}
		if strings.TrimSpace(f.PaymentNumber) == "" {
			return &ValidationError{Field: "paymentNumber", Reason: "payment number is required for delivery outside Dhaka"}
		}
		if strings.TrimSpace(f.TrxID) == "" {
			return &ValidationError{Field: "trxId", Reason: "transaction id is required for delivery outside Dhaka"}
		}
	default:
		return &ValidationError{Field: "zone", Reason: "zone must be inside or outside"}
	}

	return nil
}

// DeliveryFee returns the flat fee for the zone.
func DeliveryFee(z Zone) float64 {
	if z == ZoneOutside {
		return FeeOutside
	}
	return FeeInside
}
