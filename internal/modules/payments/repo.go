package payments

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadendaten/solidus-six-saferpay/internal/modules/orders"
)

// ErrDuplicateTransaction signals that another payment record already claimed
// the same provider transaction. This is the persistence-level guard against
// two concurrent callbacks authorizing the same transaction.
var ErrDuplicateTransaction = errors.New("provider transaction already claimed by another payment")

// Repo is the gorm-backed RecordStore.
type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, p *Payment) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDup(err) {
			return ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p *Payment, updates map[string]any) error {
	updates["updated_at"] = time.Now()

	err := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", p.ID).
		Updates(updates).Error
	if err != nil {
		if isDup(err) {
			return ErrDuplicateTransaction
		}
		return err
	}

	return r.db.WithContext(ctx).First(p, "id = ?", p.ID).Error
}

func (r *Repo) CurrentForOrder(ctx context.Context, orderID string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) FindMethod(ctx context.Context, id string) (*PaymentMethod, error) {
	var m PaymentMethod
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CommitRepo is the gorm-backed CommitPayments ledger.
type CommitRepo struct{ db *gorm.DB }

func NewCommitRepo(db *gorm.DB) *CommitRepo { return &CommitRepo{db: db} }

// CreateFromSource writes the commit-level payment plus its ledger entry in
// one transaction.
func (r *CommitRepo) CreateFromSource(ctx context.Context, record *Payment, ord *orders.Order) (*orders.Payment, error) {
	now := time.Now()

	responseCode := ""
	if record.TransactionID != nil {
		responseCode = *record.TransactionID
	}

	commit := orders.Payment{
		ID:              uuid.NewString(),
		OrderID:         ord.ID,
		PaymentMethodID: record.PaymentMethodID,
		SourceID:        record.ID,
		AmountCents:     ord.TotalCents,
		Currency:        ord.Currency,
		ResponseCode:    responseCode,
		State:           orders.PaymentStateCheckout,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&commit).Error; err != nil {
			return err
		}

		entry := orders.FinancialEntry{
			ID:          uuid.NewString(),
			OrderID:     ord.ID,
			Event:       "payment_authorized",
			AmountCents: ord.TotalCents,
			Currency:    ord.Currency,
			RefType:     "payment",
			RefID:       commit.ID,
			CreatedAt:   now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (r *CommitRepo) CancelableForOrder(ctx context.Context, orderID string) ([]orders.Payment, error) {
	var ps []orders.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND state = ?", orderID, orders.PaymentStateCheckout).
		Order("created_at ASC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *CommitRepo) Cancel(ctx context.Context, p *orders.Payment) error {
	now := time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&orders.Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"state":      orders.PaymentStateVoid,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		p.State = orders.PaymentStateVoid

		entry := orders.FinancialEntry{
			ID:          uuid.NewString(),
			OrderID:     p.OrderID,
			Event:       "payment_canceled",
			AmountCents: 0,
			Currency:    p.Currency,
			RefType:     "payment",
			RefID:       p.ID,
			CreatedAt:   now,
		}
		return tx.Create(&entry).Error
	})
}

func (r *CommitRepo) FindByResponseCode(ctx context.Context, code string) (*orders.Payment, error) {
	var p orders.Payment
	err := r.db.WithContext(ctx).First(&p, "response_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
