package payments

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// ProcessAuthorizedPayment runs the commit protocol for an authorized
// payment, strictly ordered: liability-shift gate, validation, then either
// void (failure) or cancel-superseded-payments plus commit creation
// (success). The order itself is advanced by the caller, never here.
type ProcessAuthorizedPayment struct {
	gateway   Gateway
	records   RecordStore
	commits   CommitPayments
	validator *PaymentValidator
	reporter  *errreport.Reporter
}

func NewProcessAuthorizedPayment(gateway Gateway, records RecordStore, commits CommitPayments, reporter *errreport.Reporter) *ProcessAuthorizedPayment {
	return &ProcessAuthorizedPayment{
		gateway:   gateway,
		records:   records,
		commits:   commits,
		validator: NewPaymentValidator(),
		reporter:  reporter,
	}
}

type ProcessResult struct {
	Success     bool
	UserMessage string
}

func (s *ProcessAuthorizedPayment) Call(ctx context.Context, ord *orders.Order, p *Payment) (ProcessResult, error) {
	required, err := s.liabilityShiftRequired(ctx, p)
	if err != nil {
		return ProcessResult{}, err
	}
	if required && !liabilityShifted(p) {
		s.reporter.Report(&InvalidPaymentError{
			Details: "liability was not shifted for payment " + p.ID,
		}, slog.LevelInfo)
		s.voidTransaction(ctx, p)
		return ProcessResult{UserMessage: LiabilityShiftMessage}, nil
	}

	if err := s.validator.Validate(ord, p); err != nil {
		var ipe *InvalidPaymentError
		if !errors.As(err, &ipe) {
			return ProcessResult{}, err
		}
		s.reporter.Report(ipe, slog.LevelInfo)
		s.voidTransaction(ctx, p)
		return ProcessResult{UserMessage: ipe.Details}, nil
	}

	// The shopper may have gone through the payment step more than once.
	// Cancel every other still-cancelable commit payment so that at most
	// one live payment remains for the order.
	others, err := s.commits.CancelableForOrder(ctx, ord.ID)
	if err != nil {
		return ProcessResult{}, err
	}
	for i := range others {
		s.gateway.TryVoid(ctx, &others[i])
		if err := s.commits.Cancel(ctx, &others[i]); err != nil {
			return ProcessResult{}, err
		}
	}

	if _, err := s.commits.CreateFromSource(ctx, p, ord); err != nil {
		return ProcessResult{}, err
	}

	return ProcessResult{Success: true}, nil
}

func (s *ProcessAuthorizedPayment) liabilityShiftRequired(ctx context.Context, p *Payment) (bool, error) {
	method, err := s.records.FindMethod(ctx, p.PaymentMethodID)
	if err != nil {
		return false, err
	}
	if method == nil {
		return false, nil
	}
	return method.RequireLiabilityShift, nil
}

func liabilityShifted(p *Payment) bool {
	liability := p.Liability()
	return liability != nil && liability.LiabilityShift
}

func (s *ProcessAuthorizedPayment) voidTransaction(ctx context.Context, p *Payment) {
	if p.TransactionID == nil {
		return
	}
	s.gateway.Void(ctx, *p.TransactionID)
}
