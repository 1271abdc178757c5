package saferpay

import "time"

// JSON API paths, relative to the configured base URL.
const (
	PaymentPageInitializePath = "/Payment/v1/PaymentPage/Initialize"
	PaymentPageAssertPath     = "/Payment/v1/PaymentPage/Assert"
	TransactionInitializePath = "/Payment/v1/Transaction/Initialize"
	TransactionAuthorizePath  = "/Payment/v1/Transaction/Authorize"
	TransactionInquirePath    = "/Payment/v1/Transaction/Inquire"
	TransactionCapturePath    = "/Payment/v1/Transaction/Capture"
	TransactionCancelPath     = "/Payment/v1/Transaction/Cancel"
	TransactionRefundPath     = "/Payment/v1/Transaction/Refund"
)

// SpecVersion is the Saferpay JSON API version this client speaks.
const SpecVersion = "1.19"

type RequestHeader struct {
	SpecVersion    string `json:"SpecVersion"`
	CustomerID     string `json:"CustomerId"`
	RequestID      string `json:"RequestId"`
	RetryIndicator int    `json:"RetryIndicator"`
}

type ResponseHeader struct {
	SpecVersion string `json:"SpecVersion"`
	RequestID   string `json:"RequestId"`
}

// Amount carries the value in minor units as a decimal string, as the API
// does.
type Amount struct {
	Value        string `json:"Value"`
	CurrencyCode string `json:"CurrencyCode"`
}

type Payment struct {
	Amount      Amount `json:"Amount"`
	OrderID     string `json:"OrderId"`
	Description string `json:"Description,omitempty"`
}

type ReturnUrls struct {
	Success string `json:"Success"`
	Fail    string `json:"Fail"`
	Abort   string `json:"Abort"`
}

type Styling struct {
	CSSURL string `json:"CssUrl"`
}

type Brand struct {
	PaymentMethod string `json:"PaymentMethod"`
	Name          string `json:"Name"`
}

type Card struct {
	MaskedNumber string `json:"MaskedNumber"`
	ExpYear      int    `json:"ExpYear"`
	ExpMonth     int    `json:"ExpMonth"`
	HolderName   string `json:"HolderName,omitempty"`
	CountryCode  string `json:"CountryCode,omitempty"`
}

type PaymentMeans struct {
	Brand       Brand  `json:"Brand"`
	DisplayText string `json:"DisplayText"`
	Card        *Card  `json:"Card,omitempty"`
}

type Liability struct {
	LiabilityShift bool   `json:"LiabilityShift"`
	LiableEntity   string `json:"LiableEntity"`
}

type Transaction struct {
	Type                    string `json:"Type"`
	Status                  string `json:"Status"`
	ID                      string `json:"Id"`
	Date                    string `json:"Date"`
	Amount                  Amount `json:"Amount"`
	OrderID                 string `json:"OrderId"`
	SixTransactionReference string `json:"SixTransactionReference"`
}

type TransactionReference struct {
	TransactionID string `json:"TransactionId"`
}

type CaptureReference struct {
	CaptureID string `json:"CaptureId"`
}

type PaymentPageInitializeRequest struct {
	RequestHeader RequestHeader `json:"RequestHeader"`
	TerminalID    string        `json:"TerminalId"`
	Payment       Payment       `json:"Payment"`
	ReturnUrls    ReturnUrls    `json:"ReturnUrls"`
	Styling       *Styling      `json:"Styling,omitempty"`
}

type TransactionInitializeRequest struct {
	RequestHeader RequestHeader `json:"RequestHeader"`
	TerminalID    string        `json:"TerminalId"`
	Payment       Payment       `json:"Payment"`
	ReturnUrls    ReturnUrls    `json:"ReturnUrls"`
}

// InitializeResponse is shared by the PaymentPage and Transaction initialize
// endpoints; both hand back a session token, its expiry and the URL the
// shopper must be sent to.
type InitializeResponse struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	Token          string         `json:"Token"`
	Expiration     string         `json:"Expiration"`
	RedirectURL    string         `json:"RedirectUrl"`
}

type PaymentPageAssertRequest struct {
	RequestHeader RequestHeader `json:"RequestHeader"`
	Token         string        `json:"Token"`
}

type TransactionAuthorizeRequest struct {
	RequestHeader RequestHeader `json:"RequestHeader"`
	Token         string        `json:"Token"`
}

type TransactionInquireRequest struct {
	RequestHeader        RequestHeader        `json:"RequestHeader"`
	TransactionReference TransactionReference `json:"TransactionReference"`
}

// AssertResponse is the transaction snapshot returned by PaymentPage/Assert,
// Transaction/Authorize and Transaction/Inquire. It is also the shape that is
// persisted verbatim into the payment record's response blob.
type AssertResponse struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	Transaction    Transaction    `json:"Transaction"`
	PaymentMeans   PaymentMeans   `json:"PaymentMeans"`
	Liability      *Liability     `json:"Liability,omitempty"`
}

type CaptureRequest struct {
	RequestHeader        RequestHeader        `json:"RequestHeader"`
	TransactionReference TransactionReference `json:"TransactionReference"`
}

type CaptureResponse struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	CaptureID      string         `json:"CaptureId"`
	Status         string         `json:"Status"`
	Date           string         `json:"Date"`
}

type CancelRequest struct {
	RequestHeader        RequestHeader        `json:"RequestHeader"`
	TransactionReference TransactionReference `json:"TransactionReference"`
}

type CancelResponse struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	TransactionID  string         `json:"TransactionId"`
}

type Refund struct {
	Amount  Amount `json:"Amount"`
	OrderID string `json:"OrderId"`
}

type RefundRequest struct {
	RequestHeader    RequestHeader    `json:"RequestHeader"`
	Refund           Refund           `json:"Refund"`
	CaptureReference CaptureReference `json:"CaptureReference"`
}

type RefundResponse struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	Transaction    Transaction    `json:"Transaction"`
}

// ParseTime parses the timestamp format used by the API (RFC 3339 with
// fractional seconds and a numeric zone offset).
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
