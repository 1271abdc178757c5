package payments

import (
	"context"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

// APIClient is what the gateways need from the Saferpay client.
type APIClient interface {
	Post(ctx context.Context, path string, req any, out any) error
	NewRequestHeader() saferpay.RequestHeader
	TerminalID() string
	CSSURL() string
}

// RecordStore persists Saferpay payment records.
type RecordStore interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment, updates map[string]any) error
	// CurrentForOrder returns the most recently created record for the
	// order, or (nil, nil) when none exists.
	CurrentForOrder(ctx context.Context, orderID string) (*Payment, error)
	FindMethod(ctx context.Context, id string) (*PaymentMethod, error)
}

// CommitPayments manages the order's commit-level payment ledger.
type CommitPayments interface {
	CreateFromSource(ctx context.Context, record *Payment, ord *orders.Order) (*orders.Payment, error)
	CancelableForOrder(ctx context.Context, orderID string) ([]orders.Payment, error)
	Cancel(ctx context.Context, p *orders.Payment) error
	// FindByResponseCode returns (nil, nil) when no commit payment carries
	// the provider transaction id.
	FindByResponseCode(ctx context.Context, code string) (*orders.Payment, error)
}

// OrderSource resolves orders for gateway-internal lookups (refunds need the
// order number belonging to a commit payment).
type OrderSource interface {
	FindByID(ctx context.Context, id string) (*orders.Order, error)
}
