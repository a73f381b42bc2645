package reservation

import "fmt"

// PricingError signals that a booking cannot be priced from the document.
type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrNoSkus is returned only when the document has no SKUs at all; callers
// surface it as "cannot price this booking".
var ErrNoSkus = &PricingError{Code: "noSkus", Message: "product has no purchasable SKUs"}
