// Package apphttp wires the checkout callback routes: one set per gateway
// strategy, sharing repositories, flash codec and middleware chain.
package apphttp

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadendaten/solidus-six-saferpay/internal/config"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/flash"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/handlers"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/middleware"
	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
	"github.com/fadendaten/solidus-six-saferpay/internal/modules/payments"
	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

func NewRouter(logger *slog.Logger, db *gorm.DB, cfg *config.Config, reporter *errreport.Reporter, hooks handlers.Hooks) *gin.Engine {
	if reporter == nil {
		reporter = errreport.New(logger)
	}

	client := saferpay.NewClient(cfg.Saferpay)
	orderRepo := orders.NewRepo(db)
	recordRepo := payments.NewRepo(db)
	commitRepo := payments.NewCommitRepo(db)
	flashCodec := flash.NewCodec([]byte(cfg.FlashSecret), "flash", false)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	// ErrorHandler sits outside Recovery: a recovered panic is recorded as a
	// gin error, and the handler renders it on the way back out.
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.FlashMiddleware(flashCodec))

	mount := func(mode string, gw payments.Gateway) {
		h := &handlers.CheckoutHandler{
			Mode:     mode,
			Gateway:  gw,
			Orders:   orderRepo,
			Records:  recordRepo,
			Commits:  commitRepo,
			Flash:    flashCodec,
			Hooks:    hooks,
			Logger:   logger,
			Reporter: reporter,
		}
		g := r.Group("/checkout/" + mode + "/:order_number")
		g.POST("/init", h.Init)
		g.GET("/success", h.Success)
		g.GET("/fail", h.Fail)
	}

	mount(payments.KindPaymentPage,
		payments.NewPaymentPageGateway(client, commitRepo, orderRepo, reporter, cfg.BaseURL))
	mount(payments.KindTransaction,
		payments.NewTransactionGateway(client, commitRepo, orderRepo, reporter, cfg.BaseURL))

	return r
}
