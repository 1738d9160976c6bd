package repository

import (
	"schedura/internal/models"

	"gorm.io/gorm"
)

type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(s *models.Space) error {
	return r.db.Create(s).Error
}

func (r *SpaceRepository) GetByID(id uint) (*models.Space, error) {
	var s models.Space
	if err := r.db.Preload("Photos").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns spaces, optionally filtered by category, newest first.
func (r *SpaceRepository) List(category string, limit, offset int) ([]models.Space, error) {
	q := r.db.Preload("Photos").Order("created_at DESC").Limit(limit).Offset(offset)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var spaces []models.Space
	err := q.Find(&spaces).Error
	return spaces, err
}

func (r *SpaceRepository) ListByOwner(ownerID uint) ([]models.Space, error) {
	var spaces []models.Space
	err := r.db.Preload("Photos").Where("owner_id = ?", ownerID).Find(&spaces).Error
	return spaces, err
}

func (r *SpaceRepository) Update(s *models.Space) error {
	return r.db.Save(s).Error
}

func (r *SpaceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Space{}, id).Error
}

func (r *SpaceRepository) AddPhoto(p *models.SpacePhoto) error {
	return r.db.Create(p).Error
}
