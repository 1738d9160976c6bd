package repository

import (
	"schedura/internal/models"

	"gorm.io/gorm"
)

type AccessLogRepository struct {
	db *gorm.DB
}

func NewAccessLogRepository(db *gorm.DB) *AccessLogRepository {
	return &AccessLogRepository{db: db}
}

func (r *AccessLogRepository) Create(l *models.AccessLog) error {
	return r.db.Create(l).Error
}

func (r *AccessLogRepository) ListBySpace(spaceID uint, limit, offset int) ([]models.AccessLog, error) {
	var list []models.AccessLog
	err := r.db.Preload("User").
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
