package handler

import (
	"net/http"

	"schedura/internal/middleware"
	"schedura/internal/repository"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	bookingRepo *repository.BookingRepository
	paymentRepo *repository.PaymentRepository
	spaceRepo   *repository.SpaceRepository
}

func NewAnalyticsHandler(bookingRepo *repository.BookingRepository, paymentRepo *repository.PaymentRepository, spaceRepo *repository.SpaceRepository) *AnalyticsHandler {
	return &AnalyticsHandler{bookingRepo: bookingRepo, paymentRepo: paymentRepo, spaceRepo: spaceRepo}
}

// SpaceSummary returns booking counts per status and collected revenue for a
// space; owner only. Revenue is the paise total of successful payments linked
// to the space's bookings.
func (h *AnalyticsHandler) SpaceSummary(c *gin.Context) {
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
	counts, err := h.bookingRepo.StatusCounts(spaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	revenuePaise, err := h.paymentRepo.SumSuccessfulBySpace(c.Request.Context(), spaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"space_id":      spaceID,
		"bookings":      counts,
		"revenue_paise": revenuePaise,
	})
}
