package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"schedura/internal/domain"
	"schedura/internal/middleware"
	"schedura/internal/models"
	"schedura/internal/repository"
	"schedura/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingHandler struct {
	bookingRepo *repository.BookingRepository
	spaceRepo   *repository.SpaceRepository
	hub         Notifier
}

func NewBookingHandler(bookingRepo *repository.BookingRepository, spaceRepo *repository.SpaceRepository, hub Notifier) *BookingHandler {
	return &BookingHandler{bookingRepo: bookingRepo, spaceRepo: spaceRepo, hub: hub}
}

// Create files a booking request for a space. It starts PENDING; the space
// owner accepts or rejects it.
func (h *BookingHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		SpaceID uint      `json:"space_id" binding:"required"`
		StartAt time.Time `json:"start_at" binding:"required"`
		EndAt   time.Time `json:"end_at" binding:"required"`
		Note    string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.StartAt.Before(req.EndAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_at must be before end_at"})
		return
	}
	if req.StartAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_at must be in the future"})
		return
	}
	if _, err := h.spaceRepo.GetByID(req.SpaceID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
		return
	}
	if _, err := h.bookingRepo.FindAcceptedOverlap(req.SpaceID, req.StartAt, req.EndAt, 0); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "the space is already booked for this window"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	b := &models.Booking{
		SpaceID:       req.SpaceID,
		UserID:        userID,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.BookingUnpaid,
		Note:          req.Note,
	}
	if err := h.bookingRepo.Create(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListForSpace returns a space's bookings; owner only. month/year query
// params narrow to a calendar month.
func (h *BookingHandler) ListForSpace(c *gin.Context) {
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
	var from, to *time.Time
	if m := c.Query("month"); m != "" {
		month, merr := strconv.Atoi(m)
		year, yerr := strconv.Atoi(c.Query("year"))
		if merr != nil || yerr != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12 with a valid year"})
			return
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}
	list, err := h.bookingRepo.ListBySpace(spaceID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.bookingRepo.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// Accept approves a pending booking. Refuses when an accepted booking already
// overlaps the requested window on the same space.
func (h *BookingHandler) Accept(c *gin.Context) {
	b, ok := h.lookupForOwner(c)
	if !ok {
		return
	}
	if _, err := h.bookingRepo.FindAcceptedOverlap(b.SpaceID, b.StartAt, b.EndAt, b.ID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an accepted booking already overlaps this window"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	h.decide(c, b, domain.BookingStatusAccepted)
}

// Reject declines a pending booking.
func (h *BookingHandler) Reject(c *gin.Context) {
	b, ok := h.lookupForOwner(c)
	if !ok {
		return
	}
	h.decide(c, b, domain.BookingStatusRejected)
}

// Cancel lets the requester withdraw a still-pending booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.bookingRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	applied, err := h.bookingRepo.Decide(id, domain.BookingStatusCancelled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "booking already decided"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *BookingHandler) decide(c *gin.Context, b *models.Booking, status string) {
	applied, err := h.bookingRepo.Decide(b.ID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "booking already decided"})
		return
	}
	if h.hub != nil {
		h.hub.NotifyUser(b.UserID, ws.Event{
			Type:    ws.EventBookingUpdated,
			Payload: gin.H{"booking_id": b.ID, "status": status},
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// lookupForOwner resolves the booking and checks the caller owns its space.
func (h *BookingHandler) lookupForOwner(c *gin.Context) (*models.Booking, bool) {
	userID := middleware.GetUserID(c)
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return nil, false
	}
	b, err := h.bookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return nil, false
	}
	s, err := h.spaceRepo.GetByID(b.SpaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil, false
	}
	if s.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your space"})
		return nil, false
	}
	return b, true
}
