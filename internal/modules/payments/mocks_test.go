package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// fakeGateway implements Gateway with overridable behavior per call. Void and
// TryVoid invocations are recorded so tests can assert on cancellation flows.
type fakeGateway struct {
	initFn      func(ctx context.Context, ord *orders.Order, method *PaymentMethod) GatewayResponse[saferpay.InitializeResponse]
	authorizeFn func(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.AssertResponse]
	inquireFn   func(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse]
	captureFn   func(ctx context.Context, transactionID string) GatewayResponse[saferpay.CaptureResponse]
	voidFn      func(ctx context.Context, transactionID string) GatewayResponse[saferpay.CancelResponse]

	voided    []string
	tryVoided []string
}

func (g *fakeGateway) InitializePayment(ctx context.Context, ord *orders.Order, method *PaymentMethod) GatewayResponse[saferpay.InitializeResponse] {
	if g.initFn != nil {
		return g.initFn(ctx, ord, method)
	}
	return GatewayResponse[saferpay.InitializeResponse]{}
}

func (g *fakeGateway) Authorize(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	if g.authorizeFn != nil {
		return g.authorizeFn(ctx, amountCents, p)
	}
	return GatewayResponse[saferpay.AssertResponse]{}
}

func (g *fakeGateway) Inquire(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	if g.inquireFn != nil {
		return g.inquireFn(ctx, p)
	}
	return GatewayResponse[saferpay.AssertResponse]{}
}

func (g *fakeGateway) Capture(ctx context.Context, transactionID string) GatewayResponse[saferpay.CaptureResponse] {
	if g.captureFn != nil {
		return g.captureFn(ctx, transactionID)
	}
	return GatewayResponse[saferpay.CaptureResponse]{Success: true}
}

func (g *fakeGateway) Void(ctx context.Context, transactionID string) GatewayResponse[saferpay.CancelResponse] {
	g.voided = append(g.voided, transactionID)
	if g.voidFn != nil {
		return g.voidFn(ctx, transactionID)
	}
	return GatewayResponse[saferpay.CancelResponse]{Success: true}
}

func (g *fakeGateway) Refund(ctx context.Context, amountCents int, transactionID string) GatewayResponse[saferpay.CaptureResponse] {
	return GatewayResponse[saferpay.CaptureResponse]{}
}

func (g *fakeGateway) Purchase(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.CaptureResponse] {
	return GatewayResponse[saferpay.CaptureResponse]{}
}

func (g *fakeGateway) TryVoid(ctx context.Context, commit *orders.Payment) {
	g.tryVoided = append(g.tryVoided, commit.ID)
}

// memRecordStore keeps payment records and methods in memory. Update applies
// the column map back onto the struct the way the gorm repo's reload does.
type memRecordStore struct {
	records []*Payment
	methods map[string]*PaymentMethod
	updates []map[string]any

	createErr error
	updateErr error
}

func newMemRecordStore() *memRecordStore {
	return &memRecordStore{methods: map[string]*PaymentMethod{}}
}

func (s *memRecordStore) Create(_ context.Context, p *Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("record-%d", len(s.records)+1)
	}
	s.records = append(s.records, p)
	return nil
}

func (s *memRecordStore) Update(_ context.Context, p *Payment, updates map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, updates)
	if v, ok := updates["transaction_id"].(string); ok {
		p.TransactionID = &v
	}
	if v, ok := updates["transaction_status"].(string); ok {
		p.TransactionStatus = &v
	}
	if v, ok := updates["six_transaction_reference"].(string); ok {
		p.SixTransactionReference = &v
	}
	if v, ok := updates["display_text"].(string); ok {
		p.DisplayText = &v
	}
	if v, ok := updates["response_hash"].(datatypes.JSON); ok {
		p.ResponseHash = v
	}
	return nil
}

func (s *memRecordStore) CurrentForOrder(_ context.Context, orderID string) (*Payment, error) {
	var latest *Payment
	for _, r := range s.records {
		if r.OrderID == orderID {
			latest = r
		}
	}
	return latest, nil
}

func (s *memRecordStore) FindMethod(_ context.Context, id string) (*PaymentMethod, error) {
	return s.methods[id], nil
}

// memCommits tracks commit-level payments per order.
type memCommits struct {
	payments []orders.Payment
	created  []orders.Payment
	canceled []string
}

func (s *memCommits) CreateFromSource(_ context.Context, record *Payment, ord *orders.Order) (*orders.Payment, error) {
	code := ""
	if record.TransactionID != nil {
		code = *record.TransactionID
	}
	p := orders.Payment{
		ID:           fmt.Sprintf("commit-%d", len(s.created)+1),
		OrderID:      ord.ID,
		SourceID:     record.ID,
		AmountCents:  ord.TotalCents,
		Currency:     ord.Currency,
		ResponseCode: code,
		State:        orders.PaymentStateCheckout,
	}
	s.payments = append(s.payments, p)
	s.created = append(s.created, p)
	return &p, nil
}

func (s *memCommits) CancelableForOrder(_ context.Context, orderID string) ([]orders.Payment, error) {
	var out []orders.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID && p.Cancelable() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memCommits) Cancel(_ context.Context, p *orders.Payment) error {
	s.canceled = append(s.canceled, p.ID)
	for i := range s.payments {
		if s.payments[i].ID == p.ID {
			s.payments[i].State = orders.PaymentStateVoid
		}
	}
	return nil
}

func (s *memCommits) FindByResponseCode(_ context.Context, code string) (*orders.Payment, error) {
	for i := range s.payments {
		if s.payments[i].ResponseCode == code {
			return &s.payments[i], nil
		}
	}
	return nil, nil
}

// fakeAPIClient stands in for the Saferpay client in gateway tests.
type fakeAPIClient struct {
	postFn func(ctx context.Context, path string, req any, out any) error
	css    string

	paths    []string
	requests []any
}

func (c *fakeAPIClient) Post(ctx context.Context, path string, req any, out any) error {
	c.paths = append(c.paths, path)
	c.requests = append(c.requests, req)
	if c.postFn != nil {
		return c.postFn(ctx, path, req, out)
	}
	return nil
}

func (c *fakeAPIClient) NewRequestHeader() saferpay.RequestHeader {
	return saferpay.RequestHeader{
		SpecVersion: saferpay.SpecVersion,
		CustomerID:  "cust-1",
		RequestID:   "req-1",
	}
}

func (c *fakeAPIClient) TerminalID() string { return "term-1" }

func (c *fakeAPIClient) CSSURL() string { return c.css }

type fakeOrderSource struct {
	orders map[string]*orders.Order
}

func (s *fakeOrderSource) FindByID(_ context.Context, id string) (*orders.Order, error) {
	return s.orders[id], nil
}

// captureReporter returns a reporter whose handler records every error.
func captureReporter() (*errreport.Reporter, *[]error) {
	var got []error
	r := errreport.New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		func(err error, _ slog.Level) { got = append(got, err) },
	)
	return r, &got
}

// snapshotJSON builds a persisted provider response blob for a record.
func snapshotJSON(t *testing.T, status, orderRef, value, currency string, liability *saferpay.Liability) datatypes.JSON {
	t.Helper()

	resp := saferpay.AssertResponse{
		Transaction: saferpay.Transaction{
			Type:                    "PAYMENT",
			Status:                  status,
			ID:                      "tx-1",
			Date:                    "2024-05-02T11:30:00+02:00",
			Amount:                  saferpay.Amount{Value: value, CurrencyCode: currency},
			OrderID:                 orderRef,
			SixTransactionReference: "six-ref-1",
		},
		PaymentMeans: saferpay.PaymentMeans{
			Brand:       saferpay.Brand{PaymentMethod: "VISA", Name: "VISA"},
			DisplayText: "xxxx xxxx xxxx 1234",
		},
		Liability: liability,
	}

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return datatypes.JSON(b)
}

func strptr(s string) *string { return &s }
