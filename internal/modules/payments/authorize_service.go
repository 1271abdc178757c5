package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

// AuthorizePayment authorizes (payment page: asserts) the payment after the
// shopper returns from the provider and persists the transaction snapshot on
// the record. Success reflects the provider outcome; a persistence failure is
// returned as an error and treated as fatal by the caller.
type AuthorizePayment struct {
	gateway Gateway
	records RecordStore
}

func NewAuthorizePayment(gateway Gateway, records RecordStore) *AuthorizePayment {
	return &AuthorizePayment{gateway: gateway, records: records}
}

type AuthorizeResult struct {
	Success bool
}

func (s *AuthorizePayment) Call(ctx context.Context, ord *orders.Order, p *Payment) (AuthorizeResult, error) {
	authorization := s.gateway.Authorize(ctx, ord.TotalCents, p)
	if !authorization.Success {
		return AuthorizeResult{}, nil
	}

	updates, err := transactionAttributes(authorization.APIResponse)
	if err != nil {
		return AuthorizeResult{}, fmt.Errorf("authorize payment %s: %w", p.ID, err)
	}
	if err := s.records.Update(ctx, p, updates); err != nil {
		return AuthorizeResult{}, err
	}

	return AuthorizeResult{Success: true}, nil
}

// transactionAttributes maps a provider transaction snapshot onto record
// columns. Card details are optional: wallet-based payment means return none.
func transactionAttributes(api *saferpay.AssertResponse) (map[string]any, error) {
	tx := api.Transaction

	date, err := saferpay.ParseTime(tx.Date)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date %q: %w", tx.Date, err)
	}

	raw, err := json.Marshal(api)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"transaction_id":            tx.ID,
		"transaction_status":        tx.Status,
		"transaction_date":          date,
		"six_transaction_reference": tx.SixTransactionReference,
		"display_text":              api.PaymentMeans.DisplayText,
		"response_hash":             datatypes.JSON(raw),
	}

	if card := api.PaymentMeans.Card; card != nil {
		updates["masked_number"] = card.MaskedNumber
		updates["expiration_year"] = card.ExpYear
		updates["expiration_month"] = card.ExpMonth
	}

	return updates, nil
}
