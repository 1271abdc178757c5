package payments

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

// Payment method kinds. A payment-page method sends the shopper through the
// provider-hosted form; a transaction method initializes the transaction
// directly and only redirects for 3-D Secure.
const (
	KindPaymentPage = "payment_page"
	KindTransaction = "transaction"
)

type PaymentMethod struct {
	ID                    string    `gorm:"type:char(36);primaryKey"`
	Name                  string    `gorm:"type:varchar(64);not null"`
	Kind                  string    `gorm:"type:varchar(32);not null"`
	RequireLiabilityShift bool      `gorm:"not null"`
	CreatedAt             time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt             time.Time `gorm:"type:datetime(3);not null"`
}

func (PaymentMethod) TableName() string { return "saferpay_payment_methods" }

// Payment is one Saferpay payment attempt for an order. Several attempts may
// exist per order; only the most recently created one is operationally
// relevant. Token and Expiration are present from creation on, the
// transaction fields only after a successful authorize/assert.
//
// ResponseHash holds the last raw provider response for audit purposes. The
// unique indexes on token, transaction id and the six transaction reference
// are the guard against two records claiming the same provider transaction.
type Payment struct {
	ID              string `gorm:"type:char(36);primaryKey"`
	OrderID         string `gorm:"type:char(36);not null;index:ix_saferpay_payments_order_id"`
	PaymentMethodID string `gorm:"type:char(36);not null"`

	Token       string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_saferpay_payments_token"`
	Expiration  time.Time `gorm:"type:datetime(3);not null"`
	RedirectURL string    `gorm:"type:varchar(255)"`

	TransactionID           *string    `gorm:"type:varchar(64);uniqueIndex:ux_saferpay_payments_transaction_id"`
	TransactionStatus       *string    `gorm:"type:varchar(32)"`
	TransactionDate         *time.Time `gorm:"type:datetime(3)"`
	SixTransactionReference *string    `gorm:"type:varchar(64);uniqueIndex:ux_saferpay_payments_six_reference"`

	DisplayText     *string `gorm:"type:varchar(64)"`
	MaskedNumber    *string `gorm:"type:varchar(32)"`
	ExpirationYear  *int
	ExpirationMonth *int

	ResponseHash datatypes.JSON `gorm:"type:json"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "saferpay_payments" }

// Snapshot decodes the stored provider response. Returns nil while the
// payment is unprocessed (no assert/authorize has been persisted yet).
func (p *Payment) Snapshot() *saferpay.AssertResponse {
	if len(p.ResponseHash) == 0 {
		return nil
	}
	var snap saferpay.AssertResponse
	if err := json.Unmarshal(p.ResponseHash, &snap); err != nil {
		return nil
	}
	if snap.Transaction.ID == "" && snap.Transaction.Status == "" {
		return nil
	}
	return &snap
}

func (p *Payment) Transaction() *saferpay.Transaction {
	snap := p.Snapshot()
	if snap == nil {
		return nil
	}
	return &snap.Transaction
}

func (p *Payment) PaymentMeans() *saferpay.PaymentMeans {
	snap := p.Snapshot()
	if snap == nil {
		return nil
	}
	return &snap.PaymentMeans
}

func (p *Payment) Liability() *saferpay.Liability {
	snap := p.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Liability
}

// ResponseHashWithError merges an error marker into the stored response blob
// without discarding what is already there.
func (p *Payment) ResponseHashWithError(errorName string) datatypes.JSON {
	m := map[string]any{}
	if len(p.ResponseHash) > 0 {
		_ = json.Unmarshal(p.ResponseHash, &m)
	}
	m["error"] = errorName
	b, err := json.Marshal(m)
	if err != nil {
		return p.ResponseHash
	}
	return datatypes.JSON(b)
}
