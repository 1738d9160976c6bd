package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"schedura/config"
	"schedura/internal/domain"
	"schedura/internal/middleware"
	"schedura/internal/models"

	"schedura/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentStore is the slice of the payment repository the handlers need.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByTransactionID(ctx context.Context, txnID string) (*models.Payment, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Payment, error)
	MarkTerminal(ctx context.Context, txnID, status string, utr *string) (bool, error)
}

// BookingStore is what the payment path needs from bookings.
type BookingStore interface {
	GetByID(id uint) (*models.Booking, error)
	MarkPaid(id uint) error
}

type PaymentHandler struct {
	cfg      *config.Config
	payments PaymentStore
	bookings BookingStore
}

func NewPaymentHandler(cfg *config.Config, payments PaymentStore, bookings BookingStore) *PaymentHandler {
	return &PaymentHandler{cfg: cfg, payments: payments, bookings: bookings}
}

// Create opens a payment intent: one pending row with a fresh transaction ID.
// The caller then completes the transfer in their UPI app; the record only
// leaves pending through the webhook.
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount      int64  `json:"amount" binding:"required,min=1"` // rupees
		UPIID       string `json:"upi_id" binding:"required"`
		Description string `json:"description"`
		BookingID   *uint  `json:"booking_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BookingID != nil {
		b, err := h.bookings.GetByID(*req.BookingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking not found"})
			return
		}
		if b.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
			return
		}
		if !b.IsAccepted() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking must be accepted before payment"})
			return
		}
	}

	p := &models.Payment{
		TransactionID: payment.NewTransactionID(),
		UserID:        userID,
		BookingID:     req.BookingID,
		AmountPaise:   req.Amount * 100,
		Currency:      "INR",
		UPIID:         req.UPIID,
		Description:   req.Description,
		Status:        domain.PaymentStatusPending,
	}
	ctx, cancel := h.storeCtx(c)
	defer cancel()
	if err := h.payments.Create(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"transaction_id": p.TransactionID,
		"upi_id":         p.UPIID,
		"amount":         req.Amount,
		"payment_id":     p.ID,
	})
}

// Get returns one payment by transaction ID for status polling.
func (h *PaymentHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx, cancel := h.storeCtx(c)
	defer cancel()
	p, err := h.payments.GetByTransactionID(ctx, c.Param("transaction_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListMine returns the caller's payments, newest first.
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	ctx, cancel := h.storeCtx(c)
	defer cancel()
	list, err := h.payments.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list})
}

// storeCtx bounds store I/O so a stalled database fails the request instead
// of hanging it.
func (h *PaymentHandler) storeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.cfg.Payment.StoreTimeout)
}
