package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"schedura/config"
	"schedura/internal/domain"
	"schedura/internal/models"
	"schedura/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "test-webhook-secret"

func webhookTestSetup(t *testing.T) (*gin.Engine, *fakePaymentStore, *fakeBookingStore, *fakeNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Payment.WebhookSecret = webhookSecret
	cfg.Payment.StoreTimeout = 2 * time.Second

	payments := newFakePaymentStore()
	bookings := newFakeBookingStore()
	hub := &fakeNotifier{}
	h := NewPaymentWebhookHandler(cfg, payments, bookings, hub)

	r := gin.New()
	r.POST("/webhooks/payment", h.Handle)
	return r, payments, bookings, hub
}

func postWebhook(r *gin.Engine, body []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("x-webhook-signature", sig)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signedBody(txnID, status, utr string) ([]byte, string) {
	body := []byte(fmt.Sprintf(`{"transactionId":%q,"status":%q,"utr":%q}`, txnID, status, utr))
	return body, payment.Sign(body, webhookSecret)
}

func seedPending(t *testing.T, payments *fakePaymentStore, txnID string, bookingID *uint) {
	t.Helper()
	err := payments.Create(context.Background(), &models.Payment{
		TransactionID: txnID,
		UserID:        7,
		BookingID:     bookingID,
		AmountPaise:   150000,
		Currency:      "INR",
		UPIID:         "schedura@upi",
		Status:        domain.PaymentStatusPending,
	})
	require.NoError(t, err)
}

func TestWebhookMissingSignature(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)

	body, _ := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.PaymentStatusPending, payments.get("TXN1").Status)
}

func TestWebhookBadSignature(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)

	body, _ := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, payment.Sign(body, "some-other-secret"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.PaymentStatusPending, payments.get("TXN1").Status)
}

func TestWebhookMalformedBody(t *testing.T) {
	r, _, _, _ := webhookTestSetup(t)

	body := []byte(`{"transactionId":`)
	w := postWebhook(r, body, payment.Sign(body, webhookSecret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookMissingTransactionID(t *testing.T) {
	r, _, _, _ := webhookTestSetup(t)

	body, sig := signedBody("", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnexpectedStatus(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)

	for _, status := range []string{"pending", "refunded", "SUCCESS", ""} {
		body, sig := signedBody("TXN1", status, "UTR001")
		w := postWebhook(r, body, sig)
		assert.Equal(t, http.StatusBadRequest, w.Code, "status %q", status)
	}
	assert.Equal(t, domain.PaymentStatusPending, payments.get("TXN1").Status)
}

func TestWebhookUnknownTransaction(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)

	body, sig := signedBody("TXN-nope", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, payments.appliedCount())
}

func TestWebhookSuccessAppliesStatusAndUTR(t *testing.T) {
	r, payments, _, hub := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)

	body, sig := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	p := payments.get("TXN1")
	assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
	require.NotNil(t, p.UTR)
	assert.Equal(t, "UTR001", *p.UTR)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, 1, hub.count())
}

func TestWebhookFailureSkipsBooking(t *testing.T) {
	r, payments, bookings, _ := webhookTestSetup(t)
	bookingID := uint(42)
	bookings.byID[bookingID] = &models.Booking{ID: bookingID, PaymentStatus: domain.BookingUnpaid}
	seedPending(t, payments, "TXN1", &bookingID)

	body, sig := signedBody("TXN1", "failed", "")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	p := payments.get("TXN1")
	assert.Equal(t, domain.PaymentStatusFailed, p.Status)
	assert.Nil(t, p.UTR)
	assert.Empty(t, bookings.paid)
}

func TestWebhookSuccessMarksLinkedBookingPaid(t *testing.T) {
	r, payments, bookings, _ := webhookTestSetup(t)
	bookingID := uint(42)
	bookings.byID[bookingID] = &models.Booking{ID: bookingID, PaymentStatus: domain.BookingUnpaid}
	seedPending(t, payments, "TXN1", &bookingID)

	body, sig := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bookings.paid, 1)
	assert.Equal(t, bookingID, bookings.paid[0])
	assert.Equal(t, domain.BookingPaid, bookings.byID[bookingID].PaymentStatus)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	r, payments, bookings, hub := webhookTestSetup(t)
	bookingID := uint(42)
	bookings.byID[bookingID] = &models.Booking{ID: bookingID}
	seedPending(t, payments, "TXN1", &bookingID)

	body, sig := signedBody("TXN1", "success", "UTR001")
	first := postWebhook(r, body, sig)
	require.Equal(t, http.StatusOK, first.Code)
	settled := payments.get("TXN1")

	// Exact duplicate delivery, then a conflicting late delivery.
	replay := postWebhook(r, body, sig)
	assert.Equal(t, http.StatusOK, replay.Code)

	lateBody, lateSig := signedBody("TXN1", "failed", "")
	late := postWebhook(r, lateBody, lateSig)
	assert.Equal(t, http.StatusOK, late.Code)

	after := payments.get("TXN1")
	assert.Equal(t, settled.Status, after.Status)
	assert.Equal(t, settled.UTR, after.UTR)
	assert.Equal(t, settled.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, 1, payments.appliedCount())
	assert.Len(t, bookings.paid, 1)
	assert.Equal(t, 1, hub.count())
}

func TestWebhookConcurrentDeliveriesApplyOnce(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)

	successBody, successSig := signedBody("TXN1", "success", "UTR001")
	failedBody, failedSig := signedBody("TXN1", "failed", "")

	var wg sync.WaitGroup
	codes := make([]int, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		codes[0] = postWebhook(r, successBody, successSig).Code
	}()
	go func() {
		defer wg.Done()
		codes[1] = postWebhook(r, failedBody, failedSig).Code
	}()
	wg.Wait()

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, 1, payments.appliedCount())

	p := payments.get("TXN1")
	assert.Contains(t, []string{domain.PaymentStatusSuccess, domain.PaymentStatusFailed}, p.Status)
}

func TestWebhookStoreLookupError(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)
	payments.getErr = errors.New("connection refused")

	body, sig := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookStoreUpdateError(t *testing.T) {
	r, payments, _, _ := webhookTestSetup(t)
	seedPending(t, payments, "TXN1", nil)
	payments.markErr = errors.New("deadlock")

	body, sig := signedBody("TXN1", "success", "UTR001")
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, domain.PaymentStatusPending, payments.get("TXN1").Status)
}
