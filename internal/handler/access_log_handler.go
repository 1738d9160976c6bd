package handler

import (
	"net/http"
	"strconv"

	"schedura/internal/middleware"
	"schedura/internal/models"
	"schedura/internal/repository"

	"github.com/gin-gonic/gin"
)

type AccessLogHandler struct {
	logRepo   *repository.AccessLogRepository
	spaceRepo *repository.SpaceRepository
}

func NewAccessLogHandler(logRepo *repository.AccessLogRepository, spaceRepo *repository.SpaceRepository) *AccessLogHandler {
	return &AccessLogHandler{logRepo: logRepo, spaceRepo: spaceRepo}
}

// Record logs an access event (check-in, check-out) against a space.
func (h *AccessLogHandler) Record(c *gin.Context) {
	userID := middleware.GetUserID(c)
	spaceID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space id"})
		return
	}
	if _, err := h.spaceRepo.GetByID(spaceID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
		return
	}
	var req struct {
		Action    string `json:"action" binding:"required,oneof=CHECK_IN CHECK_OUT KEY_HANDOVER"`
		BookingID *uint  `json:"booking_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry := &models.AccessLog{
		SpaceID:   spaceID,
		UserID:    &userID,
		Action:    req.Action,
		BookingID: req.BookingID,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.logRepo.Create(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListForSpace returns a space's access log; owner only.
func (h *AccessLogHandler) ListForSpace(c *gin.Context) {
	userID := middleware.GetUserID(c)
	spaceID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space id"})
		return
	}
	s, err := h.spaceRepo.GetByID(spaceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
		return
	}
	if s.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your space"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.logRepo.ListBySpace(spaceID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list})
}
