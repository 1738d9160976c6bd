package repository

import (
	"context"
	"time"

	"schedura/internal/domain"
	"schedura/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the pending record in a single statement; there is no
// partial-write state to observe.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txnID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", txnID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// MarkTerminal applies the one allowed status transition as a single
// conditional update keyed on transaction_id AND status = pending. When two
// webhook deliveries race, only one writer hits a row; the loser gets
// applied=false and must treat that as a replay, not an error.
func (r *PaymentRepository) MarkTerminal(ctx context.Context, txnID, status string, utr *string) (applied bool, err error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("transaction_id = ? AND status = ?", txnID, domain.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"utr":          utr,
			"completed_at": now,
			"updated_at":   now,
		})
	return res.RowsAffected > 0, res.Error
}

// SumSuccessfulBySpace totals successful payments linked to a space's
// bookings, in paise. Used by the analytics endpoint.
func (r *PaymentRepository) SumSuccessfulBySpace(ctx context.Context, spaceID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(payments.amount_paise), 0)").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.space_id = ? AND payments.status = ?", spaceID, domain.PaymentStatusSuccess).
		Scan(&total).Error
	return total, err
}
