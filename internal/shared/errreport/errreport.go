// Package errreport forwards provider and processing errors to the host
// application. Hosts attach their own handlers (Sentry, Rollbar, ...) on top
// of the default structured log entry.
package errreport

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler receives every reported error. Handlers must not block for long;
// they run synchronously within the reporting call.
type Handler func(err error, level slog.Level)

type Reporter struct {
	logger   *slog.Logger
	handlers []Handler
}

func New(logger *slog.Logger, handlers ...Handler) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger, handlers: handlers}
}

// Report logs the error and invokes each attached handler. A handler that
// panics is logged as a configuration problem and skipped; reporting never
// raises back into the payment flow.
func (r *Reporter) Report(err error, level slog.Level) {
	if err == nil {
		return
	}

	r.logger.Log(context.Background(), level, "saferpay_error", slog.Any("err", err))

	for i, h := range r.handlers {
		r.invoke(i, h, err, level)
	}
}

func (r *Reporter) invoke(idx int, h Handler, err error, level slog.Level) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("error handler misconfigured",
				slog.Int("handler", idx),
				slog.String("panic", fmt.Sprint(rec)),
			)
		}
	}()

	h(err, level)
}
