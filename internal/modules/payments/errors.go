package payments

import "fmt"

// InvalidPaymentError is raised by the validator when an authorized payment
// does not belong to the order it claims to belong to. Details names the
// first violated check.
type InvalidPaymentError struct {
	Details string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("invalid saferpay payment: %s", e.Details)
}
