package payments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// CancelAuthorizedPayment voids a payment that was authorized but will never
// be committed, for example because the shopper picked a different payment
// method afterwards. A record without a transaction id cannot be voided;
// that case is reported and otherwise ignored.
type CancelAuthorizedPayment struct {
	gateway  Gateway
	reporter *errreport.Reporter
}

func NewCancelAuthorizedPayment(gateway Gateway, reporter *errreport.Reporter) *CancelAuthorizedPayment {
	return &CancelAuthorizedPayment{gateway: gateway, reporter: reporter}
}

func (s *CancelAuthorizedPayment) Call(ctx context.Context, p *Payment) {
	if p.TransactionID == nil || *p.TransactionID == "" {
		s.reporter.Report(&InvalidPaymentError{
			Details: fmt.Sprintf("can not cancel payment %s because it has no transaction ID", p.ID),
		}, slog.LevelError)
		return
	}
	s.gateway.Void(ctx, *p.TransactionID)
}
