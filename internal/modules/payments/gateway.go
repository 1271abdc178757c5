package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// GatewayResponse normalizes one provider call outcome. Success carries the
// typed API payload; failure carries the provider's error name and message.
type GatewayResponse[T any] struct {
	Success       bool
	Message       string
	APIResponse   *T
	Authorization string
	ErrorName     string
}

// Gateway is the provider interaction contract shared by the payment-page and
// transaction strategies. Provider errors never escape a gateway call; they
// are reported and folded into a failure response.
type Gateway interface {
	InitializePayment(ctx context.Context, ord *orders.Order, method *PaymentMethod) GatewayResponse[saferpay.InitializeResponse]
	// Authorize ignores the amount: Saferpay does not support
	// partial-amount authorization, the session is always authorized for
	// the full initialized amount.
	Authorize(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.AssertResponse]
	Inquire(ctx context.Context, p *Payment) GatewayResponse[saferpay.AssertResponse]
	Capture(ctx context.Context, transactionID string) GatewayResponse[saferpay.CaptureResponse]
	Void(ctx context.Context, transactionID string) GatewayResponse[saferpay.CancelResponse]
	Refund(ctx context.Context, amountCents int, transactionID string) GatewayResponse[saferpay.CaptureResponse]
	Purchase(ctx context.Context, amountCents int, p *Payment) GatewayResponse[saferpay.CaptureResponse]
	TryVoid(ctx context.Context, commit *orders.Payment)
}

// gatewayCore carries the pieces both strategies share: the API client, the
// commit-payment lookup used by refunds and the error reporter.
type gatewayCore struct {
	api      APIClient
	commits  CommitPayments
	orders   OrderSource
	reporter *errreport.Reporter
	baseURL  string
}

func newGatewayCore(api APIClient, commits CommitPayments, os OrderSource, reporter *errreport.Reporter, baseURL string) gatewayCore {
	return gatewayCore{api: api, commits: commits, orders: os, reporter: reporter, baseURL: baseURL}
}

// post issues one provider call and wraps the outcome into an envelope.
func post[T any](g *gatewayCore, ctx context.Context, path string, req any, what string) GatewayResponse[T] {
	var out T
	if err := g.api.Post(ctx, path, req, &out); err != nil {
		return failure[T](g, err)
	}
	return GatewayResponse[T]{
		Success:     true,
		Message:     fmt.Sprintf("saferpay %s succeeded", what),
		APIResponse: &out,
	}
}

func failure[T any](g *gatewayCore, err error) GatewayResponse[T] {
	g.reporter.Report(err, slog.LevelError)

	var serr *saferpay.Error
	if errors.As(err, &serr) {
		return GatewayResponse[T]{Message: serr.ErrorMessage, ErrorName: serr.ErrorName}
	}
	return GatewayResponse[T]{Message: err.Error()}
}

func (g *gatewayCore) amount(amountCents int, currency string) saferpay.Amount {
	return saferpay.Amount{
		Value:        strconv.Itoa(amountCents),
		CurrencyCode: currency,
	}
}

func (g *gatewayCore) payment(ord *orders.Order) saferpay.Payment {
	return saferpay.Payment{
		Amount:      g.amount(ord.TotalCents, ord.Currency),
		OrderID:     ord.Number,
		Description: fmt.Sprintf("Order %s", ord.Number),
	}
}

func (g *gatewayCore) returnUrls(mode, orderNumber string) saferpay.ReturnUrls {
	base := g.baseURL + "/checkout/" + mode + "/" + orderNumber
	return saferpay.ReturnUrls{
		Success: base + "/success",
		Fail:    base + "/fail",
		Abort:   base + "/fail",
	}
}

// Capture settles an authorized transaction. Always for the full authorized
// amount: Saferpay does not support partial captures through this flow.
func (g *gatewayCore) Capture(ctx context.Context, transactionID string) GatewayResponse[saferpay.CaptureResponse] {
	req := saferpay.CaptureRequest{
		RequestHeader:        g.api.NewRequestHeader(),
		TransactionReference: saferpay.TransactionReference{TransactionID: transactionID},
	}

	resp := post[saferpay.CaptureResponse](g, ctx, saferpay.TransactionCapturePath, req, "capture")
	if resp.Success {
		resp.Authorization = resp.APIResponse.CaptureID
	}
	return resp
}

// Void cancels an authorized-but-uncaptured transaction.
func (g *gatewayCore) Void(ctx context.Context, transactionID string) GatewayResponse[saferpay.CancelResponse] {
	req := saferpay.CancelRequest{
		RequestHeader:        g.api.NewRequestHeader(),
		TransactionReference: saferpay.TransactionReference{TransactionID: transactionID},
	}
	return post[saferpay.CancelResponse](g, ctx, saferpay.TransactionCancelPath, req, "cancel")
}

// TryVoid voids the commit payment only while it is still cancelable and has
// a transaction id. Anything else is a silent no-op: cancellation is
// best-effort and must never block order cancellation.
func (g *gatewayCore) TryVoid(ctx context.Context, commit *orders.Payment) {
	if commit == nil || !commit.Cancelable() || commit.ResponseCode == "" {
		return
	}
	g.Void(ctx, commit.ResponseCode)
}

// Refund refunds a captured transaction. The provider models a refund as a
// transaction of its own which must be captured to take effect, so a
// successful refund call is always chased by a capture of the refund
// transaction.
func (g *gatewayCore) Refund(ctx context.Context, amountCents int, transactionID string) GatewayResponse[saferpay.CaptureResponse] {
	commit, err := g.commits.FindByResponseCode(ctx, transactionID)
	if err != nil {
		return failure[saferpay.CaptureResponse](g, err)
	}
	if commit == nil {
		return failure[saferpay.CaptureResponse](g, fmt.Errorf("no payment found for transaction %s", transactionID))
	}

	ord, err := g.orders.FindByID(ctx, commit.OrderID)
	if err != nil {
		return failure[saferpay.CaptureResponse](g, err)
	}

	req := saferpay.RefundRequest{
		RequestHeader: g.api.NewRequestHeader(),
		Refund: saferpay.Refund{
			Amount:  g.amount(amountCents, commit.Currency),
			OrderID: ord.Number,
		},
		CaptureReference: saferpay.CaptureReference{CaptureID: commit.ResponseCode},
	}

	refund := post[saferpay.RefundResponse](g, ctx, saferpay.TransactionRefundPath, req, "refund")
	if !refund.Success {
		return GatewayResponse[saferpay.CaptureResponse]{
			Message:   refund.Message,
			ErrorName: refund.ErrorName,
		}
	}

	return g.Capture(ctx, refund.APIResponse.Transaction.ID)
}
