package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"schedura/config"
	"schedura/internal/domain"
	"schedura/internal/ws"
	"schedura/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Notifier pushes events to a user's live connections.
type Notifier interface {
	NotifyUser(userID uint, ev ws.Event)
}

// webhookPayload is the processor's callback body. Status is restricted to
// the two terminal states; anything else is rejected before any store access.
type webhookPayload struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	UTR           string `json:"utr"`
}

type PaymentWebhookHandler struct {
	cfg      *config.Config
	payments PaymentStore
	bookings BookingStore
	hub      Notifier
}

func NewPaymentWebhookHandler(cfg *config.Config, payments PaymentStore, bookings BookingStore, hub Notifier) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{cfg: cfg, payments: payments, bookings: bookings, hub: hub}
}

// Handle processes the processor's asynchronous status callback.
//
// The HMAC is computed over the raw body bytes exactly as received; the body
// is read once and those bytes go to both the verifier and the JSON decoder.
// A delivery for an already-terminal payment is a 200 no-op, so duplicate and
// racing deliveries are idempotent: the terminal transition itself is a single
// conditional update and only the first writer ever hits a row.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	sig := c.GetHeader("x-webhook-signature")
	if sig == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing signature"})
		return
	}
	if !payment.VerifySignature(body, sig, h.cfg.Payment.WebhookSecret) {
		log.Printf("[payment webhook] signature mismatch from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.TransactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionId required"})
		return
	}
	if payload.Status != domain.PaymentStatusSuccess && payload.Status != domain.PaymentStatusFailed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be success or failed"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Payment.StoreTimeout)
	defer cancel()

	p, err := h.payments.GetByTransactionID(ctx, payload.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown transaction"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p.IsTerminal() {
		// Duplicate delivery; already applied, nothing to mutate.
		log.Printf("[payment webhook] replay for %s (already %s)", p.TransactionID, p.Status)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var utr *string
	if payload.UTR != "" {
		utr = &payload.UTR
	}
	applied, err := h.payments.MarkTerminal(ctx, payload.TransactionID, payload.Status, utr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !applied {
		// Lost the race to a concurrent delivery; the first writer's state
		// stands and this one resolves as a replay.
		log.Printf("[payment webhook] concurrent delivery for %s, treated as replay", p.TransactionID)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	log.Printf("[payment webhook] %s -> %s (utr=%s)", p.TransactionID, payload.Status, payload.UTR)
	if p.BookingID != nil && payload.Status == domain.PaymentStatusSuccess {
		if err := h.bookings.MarkPaid(*p.BookingID); err != nil {
			log.Printf("[payment webhook] booking %d mark paid failed: %v", *p.BookingID, err)
		}
	}
	if h.hub != nil {
		h.hub.NotifyUser(p.UserID, ws.Event{
			Type: ws.EventPaymentUpdated,
			Payload: gin.H{
				"transaction_id": p.TransactionID,
				"status":         payload.Status,
				"utr":            payload.UTR,
			},
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
