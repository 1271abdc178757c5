package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadendaten/solidus-six-saferpay/internal/http/flash"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/middleware"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/validation"
	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/modules/payments"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/apperr"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

const (
	cartPath     = "/cart"
	checkoutPath = "/checkout/"

	msgOrderModified  = "The order was modified after confirmation. Please go through checkout again."
	msgNotInitialized = "The payment could not be initialized. Please try again."
	msgProcessing     = "An error occurred while processing your payment. Please try again."
)

// OrderFinder is what the checkout callbacks need from the order side.
type OrderFinder interface {
	FindByNumber(ctx context.Context, number string) (*orders.Order, error)
	AdvanceFromPayment(ctx context.Context, o *orders.Order) error
}

// CheckoutHandler drives the reconciliation flow for one gateway strategy.
// Two instances are mounted, one per payment mode, each with its own gateway.
type CheckoutHandler struct {
	Mode     string
	Gateway  payments.Gateway
	Orders   OrderFinder
	Records  payments.RecordStore
	Commits  payments.CommitPayments
	Flash    *flash.Codec
	Hooks    Hooks
	Logger   *slog.Logger
	Reporter *errreport.Reporter
}

type initInput struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required,max=36"`
}

// Init starts a provider payment session. The order passed by number must
// still be the shopper's active order: if the shopper mutated the cart after
// reaching the payment step, the stale order must not be paid.
func (h *CheckoutHandler) Init(c *gin.Context) {
	ctx := c.Request.Context()
	number := c.Param("order_number")

	ord, err := h.Orders.FindByNumber(ctx, number)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	current, ok := h.currentOrderNumber(c)
	if ord == nil || !ok || current != ord.Number {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"redirect_url": cartPath,
			"errors":       msgOrderModified,
		})
		return
	}

	var in initInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"redirect_url": cartPath,
			"errors":       msgNotInitialized,
			"fields":       validation.FromBindError(err, &in),
		})
		return
	}

	method, err := h.Records.FindMethod(ctx, in.PaymentMethodID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if method == nil || method.Kind != h.Mode {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"redirect_url": cartPath,
			"errors":       msgNotInitialized,
		})
		return
	}

	res, err := payments.NewInitializePayment(h.Gateway, h.Records).Call(ctx, ord, method)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"redirect_url": cartPath,
			"errors":       msgNotInitialized,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_url": res.RedirectURL})
}

// Success handles the provider redirect after the shopper completed the
// hosted flow: authorize, validate, commit, advance.
func (h *CheckoutHandler) Success(c *gin.Context) {
	ctx := c.Request.Context()
	number := c.Param("order_number")

	ord, err := h.Orders.FindByNumber(ctx, number)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if ord == nil {
		h.orderNotFound(c, number)
		h.redirectWithError(c, cartPath, msgProcessing)
		return
	}

	// A shopper pressing back or refresh after completing the order must
	// land on the cart as if nothing happened. No reprocessing, no error.
	if ord.Completed() {
		c.Redirect(http.StatusFound, cartPath)
		return
	}

	p, err := h.Records.CurrentForOrder(ctx, ord.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if p == nil {
		h.paymentNotFound(c, ord)
		h.redirectWithError(c, cartPath, msgProcessing)
		return
	}

	authorization, err := payments.NewAuthorizePayment(h.Gateway, h.Records).Call(ctx, ord, p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if !authorization.Success {
		inquiry, err := payments.NewInquirePayment(h.Gateway, h.Records).Call(ctx, p)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.redirectWithError(c, h.checkoutStepPath(orders.StatePayment), inquiry.UserMessage)
		return
	}

	processed, err := payments.NewProcessAuthorizedPayment(h.Gateway, h.Records, h.Commits, h.Reporter).Call(ctx, ord, p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if !processed.Success {
		h.redirectWithError(c, h.checkoutStepPath(orders.StatePayment), processed.UserMessage)
		return
	}

	h.processingSuccess(c, ord)
	if c.Writer.Written() || c.IsAborted() {
		// A custom success hook took over the response, or advancing failed.
		return
	}
	c.Redirect(http.StatusFound, h.checkoutStepPath(ord.State))
}

// Fail handles the provider redirect after an abandoned or failed attempt.
// The inquiry fetches a diagnostic message; the shopper retries on the
// payment step.
func (h *CheckoutHandler) Fail(c *gin.Context) {
	ctx := c.Request.Context()
	number := c.Param("order_number")

	ord, err := h.Orders.FindByNumber(ctx, number)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if ord == nil {
		h.orderNotFound(c, number)
		h.redirectWithError(c, cartPath, msgProcessing)
		return
	}

	p, err := h.Records.CurrentForOrder(ctx, ord.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if p == nil {
		h.paymentNotFound(c, ord)
		h.redirectWithError(c, h.checkoutStepPath(orders.StatePayment), msgProcessing)
		return
	}

	inquiry, err := payments.NewInquirePayment(h.Gateway, h.Records).Call(ctx, p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.redirectWithError(c, h.checkoutStepPath(orders.StatePayment), inquiry.UserMessage)
}

func (h *CheckoutHandler) currentOrderNumber(c *gin.Context) (string, bool) {
	if h.Hooks.CurrentOrderNumber != nil {
		return h.Hooks.CurrentOrderNumber(c)
	}
	return defaultCurrentOrderNumber(c)
}

func (h *CheckoutHandler) orderNotFound(c *gin.Context, number string) {
	if h.Hooks.OrderNotFound != nil {
		invokeHook(h.Reporter, "order-not-found", func() { h.Hooks.OrderNotFound(c, number) })
		return
	}
	h.Reporter.Report(fmt.Errorf("no order could be found for number %s", number), slog.LevelError)
}

func (h *CheckoutHandler) paymentNotFound(c *gin.Context, ord *orders.Order) {
	if h.Hooks.PaymentNotFound != nil {
		invokeHook(h.Reporter, "payment-not-found", func() { h.Hooks.PaymentNotFound(c, ord) })
		return
	}
	h.Reporter.Report(fmt.Errorf("no saferpay payment found for order %s", ord.Number), slog.LevelError)
}

func (h *CheckoutHandler) processingSuccess(c *gin.Context, ord *orders.Order) {
	if h.Hooks.ProcessingSuccess != nil {
		invokeHook(h.Reporter, "processing-success", func() { h.Hooks.ProcessingSuccess(c, ord) })
		return
	}

	if !ord.InPaymentState() {
		return
	}
	if err := h.Orders.AdvanceFromPayment(c.Request.Context(), ord); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
	}
}

func (h *CheckoutHandler) checkoutStepPath(state string) string {
	return checkoutPath + state
}

func (h *CheckoutHandler) redirectWithError(c *gin.Context, location, msg string) {
	if msg == "" {
		msg = msgProcessing
	}
	middleware.SetFlashCookie(c, h.Flash, flash.Flash{Kind: flash.KindError, Message: msg})
	c.Redirect(http.StatusFound, location)
}
