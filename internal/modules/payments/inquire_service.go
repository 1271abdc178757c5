package payments

import (
	"context"
	"fmt"
)

// InquirePayment fetches the current transaction state after a failed
// authorization or a fail callback. It always reports success to its caller:
// a declined payment is a normal inquiry outcome, not a service failure. The
// user message carries what the shopper should be told, if anything.
type InquirePayment struct {
	gateway Gateway
	records RecordStore
}

func NewInquirePayment(gateway Gateway, records RecordStore) *InquirePayment {
	return &InquirePayment{gateway: gateway, records: records}
}

type InquireResult struct {
	Success     bool
	UserMessage string
}

func (s *InquirePayment) Call(ctx context.Context, p *Payment) (InquireResult, error) {
	inquiry := s.gateway.Inquire(ctx, p)

	if inquiry.Success {
		updates, err := transactionAttributes(inquiry.APIResponse)
		if err != nil {
			return InquireResult{}, fmt.Errorf("inquire payment %s: %w", p.ID, err)
		}
		if err := s.records.Update(ctx, p, updates); err != nil {
			return InquireResult{}, err
		}
		return InquireResult{Success: true}, nil
	}

	// Keep the audit trail: merge the error marker into the stored blob
	// instead of replacing it.
	updates := map[string]any{
		"response_hash": p.ResponseHashWithError(inquiry.ErrorName),
	}
	if err := s.records.Update(ctx, p, updates); err != nil {
		return InquireResult{}, err
	}

	return InquireResult{
		Success:     true,
		UserMessage: UserFacingError(inquiry.ErrorName),
	}, nil
}
