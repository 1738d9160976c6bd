package handler

import (
	"errors"
	"net/http"

	"schedura/internal/domain"
	"schedura/internal/middleware"
	"schedura/internal/models"
	"schedura/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JoinRequestHandler struct {
	joinRepo *repository.JoinRequestRepository
	orgRepo  *repository.OrganisationRepository
}

func NewJoinRequestHandler(joinRepo *repository.JoinRequestRepository, orgRepo *repository.OrganisationRepository) *JoinRequestHandler {
	return &JoinRequestHandler{joinRepo: joinRepo, orgRepo: orgRepo}
}

// Create files a join request. Rejected when the user already has a pending
// request or is already a member.
func (h *JoinRequestHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		OrganisationID uint   `json:"organisation_id" binding:"required"`
		Message        string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.orgRepo.GetByID(req.OrganisationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "organisation not found"})
		return
	}
	if _, err := h.joinRepo.GetPending(userID, req.OrganisationID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "you already have a pending request for this organisation"})
		return
	}
	if member, err := h.orgRepo.IsMember(userID, req.OrganisationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	} else if member {
		c.JSON(http.StatusConflict, gin.H{"error": "you are already a member of this organisation"})
		return
	}
	jr := &models.JoinRequest{
		UserID:         userID,
		OrganisationID: req.OrganisationID,
		Message:        req.Message,
		Status:         domain.JoinRequestPending,
	}
	if err := h.joinRepo.Create(jr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, jr)
}

// ListForOrganisation returns an organisation's join requests; owner only.
func (h *JoinRequestHandler) ListForOrganisation(c *gin.Context) {
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
	if org.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only organisation owners can view join requests"})
		return
	}
	list, err := h.joinRepo.ListByOrganisation(orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

// Approve accepts a pending join request and creates the membership.
func (h *JoinRequestHandler) Approve(c *gin.Context) {
	h.decide(c, domain.JoinRequestApproved)
}

// Reject declines a pending join request.
func (h *JoinRequestHandler) Reject(c *gin.Context) {
	h.decide(c, domain.JoinRequestRejected)
}

func (h *JoinRequestHandler) decide(c *gin.Context, status string) {
	userID := middleware.GetUserID(c)
	reqID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	jr, err := h.joinRepo.GetByID(reqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	org, err := h.orgRepo.GetByID(jr.OrganisationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if org.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only organisation owners can decide join requests"})
		return
	}
	applied, err := h.joinRepo.Decide(reqID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !applied {
		// Already decided; report current state without re-applying.
		c.JSON(http.StatusOK, gin.H{"success": true, "status": jr.Status})
		return
	}
	if status == domain.JoinRequestApproved {
		if err := h.orgRepo.AddMember(jr.UserID, jr.OrganisationID, nil); err != nil && !errors.Is(err, repository.ErrAlreadyMember) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "membership create failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}
