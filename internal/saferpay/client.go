package saferpay

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Error is the failure reported by the Saferpay JSON API. Transport-level
// failures are wrapped into the same type so that callers only ever deal with
// one error shape for provider calls.
type Error struct {
	Behavior     string   `json:"Behavior"`
	ErrorName    string   `json:"ErrorName"`
	ErrorMessage string   `json:"ErrorMessage"`
	ErrorDetail  []string `json:"ErrorDetail,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("saferpay: %s: %s", e.ErrorName, e.ErrorMessage)
}

// ErrorNameTransport is used for errors raised before an API response was
// received (connection refused, timeout, malformed body).
const ErrorNameTransport = "TRANSPORT_ERROR"

type Config struct {
	CustomerID string
	TerminalID string
	Username   string
	Password   string
	BaseURL    string
	CSSURL     string
}

// Client is a thin typed client for the Saferpay JSON API.
type Client struct {
	http       *resty.Client
	customerID string
	terminalID string
	cssURL     string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetBasicAuth(cfg.Username, cfg.Password).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		customerID: cfg.CustomerID,
		terminalID: cfg.TerminalID,
		cssURL:     cfg.CSSURL,
	}
}

func (c *Client) TerminalID() string { return c.terminalID }

func (c *Client) CSSURL() string { return c.cssURL }

// NewRequestHeader builds the header every API request must carry. RequestId
// is fresh per call; retries are not issued by this client.
func (c *Client) NewRequestHeader() RequestHeader {
	return RequestHeader{
		SpecVersion:    SpecVersion,
		CustomerID:     c.customerID,
		RequestID:      uuid.NewString(),
		RetryIndicator: 0,
	}
}

// Post issues one API request and decodes the response into out. A non-2xx
// response or a transport failure is returned as *Error.
func (c *Client) Post(ctx context.Context, path string, req any, out any) error {
	var apiErr Error

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(out).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return &Error{
			Behavior:     "ABORT",
			ErrorName:    ErrorNameTransport,
			ErrorMessage: err.Error(),
		}
	}

	if resp.IsError() {
		if apiErr.ErrorName == "" {
			apiErr.ErrorName = ErrorNameTransport
			apiErr.ErrorMessage = fmt.Sprintf("unexpected response status %d", resp.StatusCode())
		}
		return &apiErr
	}

	return nil
}
