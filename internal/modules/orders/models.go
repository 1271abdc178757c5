package orders

import "time"

// Checkout states, in order. Payment reconciliation only ever moves an order
// out of StatePayment; StateComplete is terminal for this flow.
const (
	StateCart     = "cart"
	StateAddress  = "address"
	StateDelivery = "delivery"
	StatePayment  = "payment"
	StateConfirm  = "confirm"
	StateComplete = "complete"
)

type Order struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Number     string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_number"`
	State      string    `gorm:"type:varchar(32);not null"`
	TotalCents int       `gorm:"not null"`
	Currency   string    `gorm:"type:char(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) Completed() bool { return o.State == StateComplete }

func (o *Order) InPaymentState() bool { return o.State == StatePayment }

// Commit-level payment states. "checkout" payments are not yet captured and
// may still be voided.
const (
	PaymentStateCheckout  = "checkout"
	PaymentStatePending   = "pending"
	PaymentStateCompleted = "completed"
	PaymentStateVoid      = "void"
)

// Payment is the order's own ledger-level payment, created once a provider
// payment has been authorized and validated. ResponseCode carries the
// provider transaction id; SourceID points at the provider payment record.
type Payment struct {
	ID              string    `gorm:"type:char(36);primaryKey"`
	OrderID         string    `gorm:"type:char(36);not null;index:ix_payments_order_id"`
	PaymentMethodID string    `gorm:"type:char(36);not null"`
	SourceID        string    `gorm:"type:char(36);not null"`
	AmountCents     int       `gorm:"not null"`
	Currency        string    `gorm:"type:char(3);not null"`
	ResponseCode    string    `gorm:"type:varchar(64);not null"`
	State           string    `gorm:"type:varchar(32);not null"`
	CreatedAt       time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt       time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) Cancelable() bool { return p.State == PaymentStateCheckout }

// FinancialEntry is an append-only audit row written whenever a commit-level
// payment changes the order's financial picture.
type FinancialEntry struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_fin_entries_order_id"`
	Event       string    `gorm:"type:varchar(32);not null"`
	AmountCents int       `gorm:"not null"`
	Currency    string    `gorm:"type:char(3);not null"`
	RefType     string    `gorm:"type:varchar(16);not null"`
	RefID       string    `gorm:"type:char(36);not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (FinancialEntry) TableName() string { return "order_financial_entries" }
