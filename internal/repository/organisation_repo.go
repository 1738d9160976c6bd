package repository

import (
	"errors"

	"schedura/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyMember = errors.New("user is already a member of this organisation")

type OrganisationRepository struct {
	db *gorm.DB
}

func NewOrganisationRepository(db *gorm.DB) *OrganisationRepository {
	return &OrganisationRepository{db: db}
}

func (r *OrganisationRepository) Create(o *models.Organisation) error {
	return r.db.Create(o).Error
}

func (r *OrganisationRepository) GetByID(id uint) (*models.Organisation, error) {
	var o models.Organisation
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByMember returns organisations the user belongs to (via user_roles).
func (r *OrganisationRepository) ListByMember(userID uint) ([]models.Organisation, error) {
	var orgs []models.Organisation
	err := r.db.
		Joins("JOIN user_roles ON user_roles.organisation_id = organisations.id").
		Where("user_roles.user_id = ?", userID).
		Find(&orgs).Error
	return orgs, err
}

func (r *OrganisationRepository) AddMember(userID, orgID uint, roleID *uint) error {
	if ok, err := r.IsMember(userID, orgID); err != nil {
		return err
	} else if ok {
		return ErrAlreadyMember
	}
	return r.db.Create(&models.UserRole{UserID: userID, OrganisationID: orgID, RoleID: roleID}).Error
}

// RemoveMember deletes the membership row outright. The row must actually go
// away, not be soft-deleted, or the unique key would block a later re-join.
func (r *OrganisationRepository) RemoveMember(userID, orgID uint) error {
	return r.db.Where("user_id = ? AND organisation_id = ?", userID, orgID).
		Delete(&models.UserRole{}).Error
}

func (r *OrganisationRepository) IsMember(userID, orgID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.UserRole{}).
		Where("user_id = ? AND organisation_id = ?", userID, orgID).
		Count(&n).Error
	return n > 0, err
}

func (r *OrganisationRepository) ListMembers(orgID uint) ([]models.UserRole, error) {
	var members []models.UserRole
	err := r.db.Preload("User").Preload("Role").
		Where("organisation_id = ?", orgID).
		Find(&members).Error
	return members, err
}

// Roles

func (r *OrganisationRepository) CreateRole(role *models.Role) error {
	return r.db.Create(role).Error
}

func (r *OrganisationRepository) GetRole(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *OrganisationRepository) ListRoles(orgID uint) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Where("organisation_id = ?", orgID).Find(&roles).Error
	return roles, err
}

func (r *OrganisationRepository) UpdateRole(role *models.Role) error {
	return r.db.Save(role).Error
}

func (r *OrganisationRepository) DeleteRole(id uint) error {
	return r.db.Delete(&models.Role{}, id).Error
}
