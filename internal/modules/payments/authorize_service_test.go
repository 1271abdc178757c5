package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

func assertResponseFixture(card *saferpay.Card) *saferpay.AssertResponse {
	return &saferpay.AssertResponse{
		Transaction: saferpay.Transaction{
			Type:                    "PAYMENT",
			Status:                  "AUTHORIZED",
			ID:                      "tx-1",
			Date:                    "2024-05-02T11:30:00+02:00",
			Amount:                  saferpay.Amount{Value: "10090", CurrencyCode: "CHF"},
			OrderID:                 "R100001",
			SixTransactionReference: "six-ref-1",
		},
		PaymentMeans: saferpay.PaymentMeans{
			Brand:       saferpay.Brand{PaymentMethod: "VISA", Name: "VISA"},
			DisplayText: "xxxx xxxx xxxx 1234",
			Card:        card,
		},
	}
}

func TestAuthorizePersistsTransactionSnapshot(t *testing.T) {
	api := assertResponseFixture(&saferpay.Card{MaskedNumber: "xxxx xxxx xxxx 1234", ExpYear: 2027, ExpMonth: 9})
	gw := &fakeGateway{
		authorizeFn: func(_ context.Context, amountCents int, _ *Payment) GatewayResponse[saferpay.AssertResponse] {
			assert.Equal(t, 10090, amountCents)
			return GatewayResponse[saferpay.AssertResponse]{Success: true, APIResponse: api}
		},
	}
	records := newMemRecordStore()
	ord := &orders.Order{ID: "order-1", Number: "R100001", TotalCents: 10090, Currency: "CHF"}
	p := &Payment{ID: "record-1", OrderID: "order-1", Token: "tok"}

	res, err := NewAuthorizePayment(gw, records).Call(context.Background(), ord, p)
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, records.updates, 1)
	updates := records.updates[0]
	assert.Equal(t, "tx-1", updates["transaction_id"])
	assert.Equal(t, "AUTHORIZED", updates["transaction_status"])
	assert.Equal(t, "six-ref-1", updates["six_transaction_reference"])
	assert.Equal(t, "xxxx xxxx xxxx 1234", updates["display_text"])
	assert.Equal(t, "xxxx xxxx xxxx 1234", updates["masked_number"])
	assert.Equal(t, 2027, updates["expiration_year"])
	assert.Equal(t, 9, updates["expiration_month"])

	date, ok := updates["transaction_date"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, date.Year())

	// The record now decodes back to the provider snapshot.
	tx := p.Transaction()
	require.NotNil(t, tx)
	assert.Equal(t, "tx-1", tx.ID)
}

func TestAuthorizeOmitsCardColumnsForWalletPayments(t *testing.T) {
	gw := &fakeGateway{
		authorizeFn: func(_ context.Context, _ int, _ *Payment) GatewayResponse[saferpay.AssertResponse] {
			return GatewayResponse[saferpay.AssertResponse]{Success: true, APIResponse: assertResponseFixture(nil)}
		},
	}
	records := newMemRecordStore()
	ord := &orders.Order{ID: "order-1", Number: "R100001", TotalCents: 10090, Currency: "CHF"}
	p := &Payment{ID: "record-1", OrderID: "order-1", Token: "tok"}

	res, err := NewAuthorizePayment(gw, records).Call(context.Background(), ord, p)
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, records.updates, 1)
	updates := records.updates[0]
	assert.NotContains(t, updates, "masked_number")
	assert.NotContains(t, updates, "expiration_year")
	assert.NotContains(t, updates, "expiration_month")
}

func TestAuthorizeFailureLeavesRecordUntouched(t *testing.T) {
	gw := &fakeGateway{
		authorizeFn: func(_ context.Context, _ int, _ *Payment) GatewayResponse[saferpay.AssertResponse] {
			return GatewayResponse[saferpay.AssertResponse]{Message: "declined", ErrorName: "TRANSACTION_DECLINED"}
		},
	}
	records := newMemRecordStore()
	ord := &orders.Order{ID: "order-1", Number: "R100001", TotalCents: 10090, Currency: "CHF"}
	p := &Payment{ID: "record-1", OrderID: "order-1", Token: "tok"}

	res, err := NewAuthorizePayment(gw, records).Call(context.Background(), ord, p)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, records.updates)
}

func TestAuthorizeRejectsUnparsableTransactionDate(t *testing.T) {
	api := assertResponseFixture(nil)
	api.Transaction.Date = "not-a-date"
	gw := &fakeGateway{
		authorizeFn: func(_ context.Context, _ int, _ *Payment) GatewayResponse[saferpay.AssertResponse] {
			return GatewayResponse[saferpay.AssertResponse]{Success: true, APIResponse: api}
		},
	}
	records := newMemRecordStore()
	ord := &orders.Order{ID: "order-1", Number: "R100001", TotalCents: 10090, Currency: "CHF"}
	p := &Payment{ID: "record-1", OrderID: "order-1", Token: "tok"}

	_, err := NewAuthorizePayment(gw, records).Call(context.Background(), ord, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse transaction date")
	assert.Empty(t, records.updates)
}
