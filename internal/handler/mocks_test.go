package handler

import (
	"context"
	"sync"
	"time"

	"schedura/internal/domain"
	"schedura/internal/models"
	"schedura/internal/ws"

	"gorm.io/gorm"
)

// fakePaymentStore implements PaymentStore in memory with the same
// conditional-update semantics the MySQL repository relies on.
type fakePaymentStore struct {
	mu      sync.Mutex
	nextID  uint
	byTxn   map[string]*models.Payment
	applied int // successful MarkTerminal writes

	createErr error
	getErr    error
	markErr   error
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byTxn: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) Create(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byTxn[p.TransactionID] = &cp
	return nil
}

func (f *fakePaymentStore) GetByTransactionID(_ context.Context, txnID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byTxn[txnID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) ListByUser(_ context.Context, userID uint, limit, offset int) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, p := range f.byTxn {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) MarkTerminal(_ context.Context, txnID, status string, utr *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	p, ok := f.byTxn[txnID]
	if !ok || p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	now := time.Now()
	p.Status = status
	p.UTR = utr
	p.CompletedAt = &now
	p.UpdatedAt = now
	f.applied++
	return true, nil
}

func (f *fakePaymentStore) get(txnID string) models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.byTxn[txnID]
}

func (f *fakePaymentStore) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}

type fakeBookingStore struct {
	mu   sync.Mutex
	byID map[uint]*models.Booking
	paid []uint
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{byID: make(map[uint]*models.Booking)}
}

func (f *fakeBookingStore) GetByID(id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) MarkPaid(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.byID[id]; ok {
		b.PaymentStatus = domain.BookingPaid
	}
	f.paid = append(f.paid, id)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeNotifier) NotifyUser(userID uint, ev ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
