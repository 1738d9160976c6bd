package repository

import (
	"time"

	"schedura/internal/domain"
	"schedura/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.Preload("Space").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBySpace returns a space's bookings, newest first, optionally limited to
// a creation window (used by the month/year calendar view).
func (r *BookingRepository) ListBySpace(spaceID uint, from, to *time.Time) ([]models.Booking, error) {
	q := r.db.Preload("User").Where("space_id = ?", spaceID).Order("created_at DESC")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	var list []models.Booking
	err := q.Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListByUser(userID uint) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Preload("Space").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Decide moves a PENDING booking to the given status. The status guard in the
// WHERE clause means only the first decision wins; callers see applied=false
// when the booking was already decided.
func (r *BookingRepository) Decide(id uint, status string) (bool, error) {
	res := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingStatusPending).
		Updates(map[string]interface{}{"status": status, "decided_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

// FindAcceptedOverlap returns an accepted booking on the space whose window
// intersects [start, end), or gorm.ErrRecordNotFound.
func (r *BookingRepository) FindAcceptedOverlap(spaceID uint, start, end time.Time, excludeID uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.
		Where("space_id = ? AND status = ? AND id <> ? AND start_at < ? AND end_at > ?",
			spaceID, domain.BookingStatusAccepted, excludeID, end, start).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// StatusCounts returns the number of bookings per status for a space.
func (r *BookingRepository) StatusCounts(spaceID uint) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS n").
		Where("space_id = ?", spaceID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

// MarkPaid flips payment_status to PAID. Driven only by the payment webhook.
func (r *BookingRepository) MarkPaid(id uint) error {
	return r.db.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("payment_status", domain.BookingPaid).Error
}
