package payments

import (
	"fmt"
	"strconv"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
)

// transactionStatusAuthorized is the only status a payment may have when it
// is validated: validation happens exactly once, in the window between
// authorization and capture.
const transactionStatusAuthorized = "AUTHORIZED"

// PaymentValidator guards the commit step. It checks the locally cached
// transaction snapshot in a fixed order, failing fast on the first violation:
// status, then order reference, then amount and currency. It only ever
// reports; the caller decides what a violation means.
type PaymentValidator struct{}

func NewPaymentValidator() *PaymentValidator { return &PaymentValidator{} }

func (v *PaymentValidator) Validate(ord *orders.Order, p *Payment) error {
	tx := p.Transaction()
	if tx == nil {
		return &InvalidPaymentError{Details: fmt.Sprintf("payment %s has no transaction snapshot", p.ID)}
	}

	if err := v.validateAuthorized(tx.Status); err != nil {
		return err
	}
	if err := v.validateOrderReference(tx.OrderID, ord.Number); err != nil {
		return err
	}
	return v.validateOrderAmount(tx.Amount.Value, tx.Amount.CurrencyCode, ord)
}

func (v *PaymentValidator) validateAuthorized(status string) error {
	if status != transactionStatusAuthorized {
		return &InvalidPaymentError{
			Details: fmt.Sprintf("expected transaction status %s, got %s", transactionStatusAuthorized, status),
		}
	}
	return nil
}

func (v *PaymentValidator) validateOrderReference(txOrderRef, orderNumber string) error {
	if txOrderRef != orderNumber {
		return &InvalidPaymentError{
			Details: fmt.Sprintf("transaction order reference %s does not match order number %s", txOrderRef, orderNumber),
		}
	}
	return nil
}

func (v *PaymentValidator) validateOrderAmount(value, currency string, ord *orders.Order) error {
	if currency != ord.Currency {
		return &InvalidPaymentError{
			Details: fmt.Sprintf("transaction currency %s does not match order currency %s", currency, ord.Currency),
		}
	}

	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return &InvalidPaymentError{
			Details: fmt.Sprintf("transaction amount %q is not a valid minor-unit value", value),
		}
	}
	if amount != int64(ord.TotalCents) {
		return &InvalidPaymentError{
			Details: fmt.Sprintf("transaction amount %d does not match order total %d", amount, ord.TotalCents),
		}
	}
	return nil
}
