package payments

import (
	"context"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// TransactionGateway drives the direct transaction flow: the transaction is
// initialized locally and authorized by token in a separate call, without a
// full hosted redirect for already-known payment means.
type TransactionGateway struct {
	gatewayCore
}

func NewTransactionGateway(api APIClient, commits CommitPayments, os OrderSource, reporter *errreport.Reporter, baseURL string) *TransactionGateway {
	return &TransactionGateway{gatewayCore: newGatewayCore(api, commits, os, reporter, baseURL)}
}

func (g *TransactionGateway) InitializePayment(ctx context.Context, ord *orders.Order, _ *PaymentMethod) GatewayResponse[saferpay.InitializeResponse] {
	req := saferpay.TransactionInitializeRequest{
		RequestHeader: g.api.NewRequestHeader(),
		TerminalID:    g.api.TerminalID(),
		Payment:       g.payment(ord),
		ReturnUrls:    g.returnUrls(KindTransaction, ord.Number),
	}
	return post[saferpay.InitializeResponse](&g.gatewayCore, ctx, saferpay.TransactionInitializePath, req, "transaction initialize")
}

// Authorize authorizes the initialized transaction by token. The amount is
// unused: the provider does not allow partial-amount authorization, the
// transaction is authorized for the full initialized amount.
func (g *TransactionGateway) Authorize(ctx context.Context, _ int, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	req := saferpay.TransactionAuthorizeRequest{
		RequestHeader: g.api.NewRequestHeader(),
		Token:         p.Token,
	}
	return post[saferpay.AssertResponse](&g.gatewayCore, ctx, saferpay.TransactionAuthorizePath, req, "transaction authorize")
}

// Inquire fetches the current transaction state by transaction reference.
func (g *TransactionGateway) Inquire(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse] {
	transactionID := ""
	if p.TransactionID != nil {
		transactionID = *p.TransactionID
	}

	req := saferpay.TransactionInquireRequest{
		RequestHeader:        g.api.NewRequestHeader(),
		TransactionReference: saferpay.TransactionReference{TransactionID: transactionID},
	}
	return post[saferpay.AssertResponse](&g.gatewayCore, ctx, saferpay.TransactionInquirePath, req, "transaction inquire")
}

// Purchase chains authorize and capture into one settlement step.
func (g *TransactionGateway) Purchase(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.CaptureResponse] {
	authorization := g.Authorize(ctx, amountCents, p)
	if !authorization.Success {
		return GatewayResponse[saferpay.CaptureResponse]{
			Message:   authorization.Message,
			ErrorName: authorization.ErrorName,
		}
	}
	return g.Capture(ctx, authorization.APIResponse.Transaction.ID)
}
