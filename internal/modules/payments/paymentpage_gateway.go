package payments

import (
	"context"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// PaymentPageGateway drives the hosted payment page flow: the provider hosts
// the whole payment form, the shopper is redirected there and the outcome is
// asserted by token afterwards.
type PaymentPageGateway struct {
	gatewayCore
}

func NewPaymentPageGateway(api APIClient, commits CommitPayments, os OrderSource, reporter *errreport.Reporter, baseURL string) *PaymentPageGateway {
	return &PaymentPageGateway{gatewayCore: newGatewayCore(api, commits, os, reporter, baseURL)}
}

func (g *PaymentPageGateway) InitializePayment(ctx context.Context, ord *orders.Order, _ *PaymentMethod) GatewayResponse[saferpay.InitializeResponse] {
	req := saferpay.PaymentPageInitializeRequest{
		RequestHeader: g.api.NewRequestHeader(),
		TerminalID:    g.api.TerminalID(),
		Payment:       g.payment(ord),
		ReturnUrls:    g.returnUrls(KindPaymentPage, ord.Number),
	}
	if css := g.api.CSSURL(); css != "" {
		req.Styling = &saferpay.Styling{CSSURL: css}
	}

	return post[saferpay.InitializeResponse](&g.gatewayCore, ctx, saferpay.PaymentPageInitializePath, req, "payment page initialize")
}

// Authorize asserts the payment page session. Payment page payments are
// authorized by the provider as the shopper completes the hosted form, so the
// assert both confirms and retrieves the final state; the amount parameter is
// unused because the session was initialized for the full order total.
func (g *PaymentPageGateway) Authorize(ctx context.Context, _ int, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	return g.assert(ctx, p)
}

// Inquire re-issues the assert call. Asserting is idempotent on the provider
// side, which makes it double as the status check.
func (g *PaymentPageGateway) Inquire(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	return g.assert(ctx, p)
}

func (g *PaymentPageGateway) assert(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	req := saferpay.PaymentPageAssertRequest{
		RequestHeader: g.api.NewRequestHeader(),
		Token:         p.Token,
	}
	return post[saferpay.AssertResponse](&g.gatewayCore, ctx, saferpay.PaymentPageAssertPath, req, "payment page assert")
}

// Purchase settles a payment-page payment by capturing its authorized
// transaction.
func (g *PaymentPageGateway) Purchase(ctx context.Context, _ int, p *Payment) GatewayResponse[saferpay.CaptureResponse] {
	tx := p.Transaction()
	if tx == nil {
		return failure[saferpay.CaptureResponse](&g.gatewayCore, &InvalidPaymentError{
			Details: "payment has no transaction to capture",
		})
	}
	return g.Capture(ctx, tx.ID)
}
