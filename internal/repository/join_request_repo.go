package repository

import (
	"schedura/internal/domain"
	"schedura/internal/models"

	"gorm.io/gorm"
)

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(jr *models.JoinRequest) error {
	return r.db.Create(jr).Error
}

func (r *JoinRequestRepository) GetByID(id uint) (*models.JoinRequest, error) {
	var jr models.JoinRequest
	if err := r.db.First(&jr, id).Error; err != nil {
		return nil, err
	}
	return &jr, nil
}

// GetPending returns the user's pending request for an organisation, if any.
func (r *JoinRequestRepository) GetPending(userID, orgID uint) (*models.JoinRequest, error) {
	var jr models.JoinRequest
	err := r.db.
		Where("user_id = ? AND organisation_id = ? AND status = ?", userID, orgID, domain.JoinRequestPending).
		First(&jr).Error
	if err != nil {
		return nil, err
	}
	return &jr, nil
}

func (r *JoinRequestRepository) ListByOrganisation(orgID uint) ([]models.JoinRequest, error) {
	var list []models.JoinRequest
	err := r.db.Preload("User").
		Where("organisation_id = ?", orgID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Decide flips a pending request to approved/rejected. The status guard in the
// WHERE clause makes a second decision on the same request a no-op.
func (r *JoinRequestRepository) Decide(id uint, status string) (bool, error) {
	res := r.db.Model(&models.JoinRequest{}).
		Where("id = ? AND status = ?", id, domain.JoinRequestPending).
		Updates(map[string]interface{}{"status": status, "decided_at": gorm.Expr("NOW()")})
	return res.RowsAffected > 0, res.Error
}
