package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

// CurrentOrderCookie names the cookie carrying the shopper's active order
// number, set by the surrounding shop when the checkout starts.
const CurrentOrderCookie = "current_order"

// Hooks are the host-overridable control-flow extension points of the
// checkout callbacks. Every field has a default; a nil field means "use the
// default behavior". Hook panics are contained: a broken host hook is
// reported as a configuration problem and never breaks the payment flow.
type Hooks struct {
	// OrderNotFound runs when a provider callback names an unknown order.
	OrderNotFound func(c *gin.Context, orderNumber string)

	// PaymentNotFound runs when the order has no payment record to
	// reconcile against.
	PaymentNotFound func(c *gin.Context, ord *orders.Order)

	// ProcessingSuccess runs after a payment was authorized, validated and
	// committed. The default advances the order out of the payment state.
	// A custom hook may write its own response to take over the redirect.
	ProcessingSuccess func(c *gin.Context, ord *orders.Order)

	// CurrentOrderNumber resolves the shopper's active order number. The
	// default reads the current-order cookie.
	CurrentOrderNumber func(c *gin.Context) (string, bool)
}

func defaultCurrentOrderNumber(c *gin.Context) (string, bool) {
	v, err := c.Cookie(CurrentOrderCookie)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// invokeHook runs a host-supplied hook, containing panics.
func invokeHook(reporter *errreport.Reporter, name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			reporter.Report(fmt.Errorf("configured %s hook panicked: %v", name, rec), slog.LevelWarn)
		}
	}()
	fn()
}
