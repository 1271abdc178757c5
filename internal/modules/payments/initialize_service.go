package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

// InitializePayment starts a provider payment session for an order. On
// provider success a payment record is persisted; on provider failure no
// record exists and the shopper stays on the payment step.
//
// Calling this twice for one order deliberately creates two records: the
// shopper may switch payment methods, and only the most recent record counts.
type InitializePayment struct {
	gateway Gateway
	records RecordStore
}

func NewInitializePayment(gateway Gateway, records RecordStore) *InitializePayment {
	return &InitializePayment{gateway: gateway, records: records}
}

type InitializeResult struct {
	Success     bool
	RedirectURL string
	Payment     *Payment
}

func (s *InitializePayment) Call(ctx context.Context, ord *orders.Order, method *PaymentMethod) (InitializeResult, error) {
	initialization := s.gateway.InitializePayment(ctx, ord, method)
	if !initialization.Success {
		return InitializeResult{}, nil
	}

	api := initialization.APIResponse

	expiration, err := parseExpiration(api.Expiration)
	if err != nil {
		return InitializeResult{}, fmt.Errorf("initialize payment for order %s: %w", ord.Number, err)
	}

	raw, err := json.Marshal(api)
	if err != nil {
		return InitializeResult{}, err
	}

	record := &Payment{
		OrderID:         ord.ID,
		PaymentMethodID: method.ID,
		Token:           api.Token,
		Expiration:      expiration,
		RedirectURL:     api.RedirectURL,
		ResponseHash:    datatypes.JSON(raw),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return InitializeResult{}, err
	}

	return InitializeResult{
		Success:     true,
		RedirectURL: api.RedirectURL,
		Payment:     record,
	}, nil
}

func parseExpiration(s string) (time.Time, error) {
	t, err := saferpay.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session expiration %q: %w", s, err)
	}
	return t, nil
}
