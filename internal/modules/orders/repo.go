package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// FindByNumber returns (nil, nil) when no order carries the number. A missing
// order is an expected condition on provider callbacks, not an error.
func (r *Repo) FindByNumber(ctx context.Context, number string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// AdvanceFromPayment moves the order one step forward, guarded so that only
// orders still sitting in the payment state move. The guard lives in the
// WHERE clause: a concurrent callback that already advanced the order makes
// this a no-op.
func (r *Repo) AdvanceFromPayment(ctx context.Context, o *Order) error {
	res := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND state = ?", o.ID, StatePayment).
		Updates(map[string]any{
			"state":      StateConfirm,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		o.State = StateConfirm
	}
	return nil
}
