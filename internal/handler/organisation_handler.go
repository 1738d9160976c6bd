package handler

import (
	"errors"
	"net/http"
	"strconv"

	"schedura/internal/domain"
	"schedura/internal/middleware"
	"schedura/internal/models"
	"schedura/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrganisationHandler struct {
	orgRepo *repository.OrganisationRepository
}

func NewOrganisationHandler(orgRepo *repository.OrganisationRepository) *OrganisationHandler {
	return &OrganisationHandler{orgRepo: orgRepo}
}

func (h *OrganisationHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	org := &models.Organisation{Name: req.Name, Description: req.Description, OwnerID: userID}
	if err := h.orgRepo.Create(org); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	// The creator is an implicit member.
	if err := h.orgRepo.AddMember(userID, org.ID, nil); err != nil && !errors.Is(err, repository.ErrAlreadyMember) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership create failed"})
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (h *OrganisationHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orgs, err := h.orgRepo.ListByMember(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"organisations": orgs})
}

func (h *OrganisationHandler) Members(c *gin.Context) {
	orgID, org, ok := h.requireOwner(c)
	if !ok {
		return
	}
	_ = org
	members, err := h.orgRepo.ListMembers(orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *OrganisationHandler) Leave(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orgID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organisation id"})
		return
	}
	org, err := h.orgRepo.GetByID(orgID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "organisation not found"})
		return
	}
	if org.OwnerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner cannot leave their own organisation"})
		return
	}
	if err := h.orgRepo.RemoveMember(userID, orgID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leave failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Roles

func (h *OrganisationHandler) CreateRole(c *gin.Context) {
	orgID, _, ok := h.requireOwner(c)
	if !ok {
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Privileges int    `json:"privileges"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidPrivilegeMask(req.Privileges) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown privilege bits"})
		return
	}
	role := &models.Role{OrganisationID: orgID, Name: req.Name, Privileges: req.Privileges}
	if err := h.orgRepo.CreateRole(role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (h *OrganisationHandler) ListRoles(c *gin.Context) {
	orgID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organisation id"})
		return
	}
	roles, err := h.orgRepo.ListRoles(orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

func (h *OrganisationHandler) UpdateRole(c *gin.Context) {
	_, _, ok := h.requireOwner(c)
	if !ok {
		return
	}
	roleID, err := paramUint(c, "role_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
		return
	}
	role, err := h.orgRepo.GetRole(roleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	var req struct {
		Name       string `json:"name"`
		Privileges *int   `json:"privileges"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Privileges != nil {
		if !domain.ValidPrivilegeMask(*req.Privileges) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown privilege bits"})
			return
		}
		role.Privileges = *req.Privileges
	}
	if err := h.orgRepo.UpdateRole(role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *OrganisationHandler) DeleteRole(c *gin.Context) {
	_, _, ok := h.requireOwner(c)
	if !ok {
		return
	}
	roleID, err := paramUint(c, "role_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
		return
	}
	if err := h.orgRepo.DeleteRole(roleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// requireOwner resolves the :id param and checks the caller owns the
// organisation. Writes the error response itself when the check fails.
func (h *OrganisationHandler) requireOwner(c *gin.Context) (uint, *models.Organisation, bool) {
	userID := middleware.GetUserID(c)
	orgID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organisation id"})
		return 0, nil, false
	}
	org, err := h.orgRepo.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organisation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return 0, nil, false
	}
	if org.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the organisation owner can do this"})
		return 0, nil, false
	}
	return orgID, org, true
}

func paramUint(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(n), err
}
