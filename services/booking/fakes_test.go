package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	commissionRepo "github.com/Philip2024394/website-massage--sub045/database/repository/commission"
	providerRepo "github.com/Philip2024394/website-massage--sub045/database/repository/provider"
	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// memBookingRepo is an in-memory BookingRepository for tests.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = "generated-id"
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) ListByStatus(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindActiveForCustomer(_ context.Context, userID, providerID string, since time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID != userID || b.ProviderID != providerID {
			continue
		}
		if b.Status.IsTerminal() || !b.CreatedAt.After(since) {
			continue
		}
		clone := *b
		return &clone, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *memBookingRepo) UpdateStatusIf(_ context.Context, id string, from models.BookingStatus, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	applySet(b, set)
	return nil
}

func (r *memBookingRepo) MarkBroadcast(_ context.Context, id string, at time.Time, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Broadcast = true
	b.BroadcastAt = &at
	b.BroadcastCount = count
	return nil
}

func applySet(b *models.Booking, set bson.M) {
	for k, v := range set {
		switch k {
		case "status":
			b.Status = v.(models.BookingStatus)
		case "providerResponseStatus":
			b.ResponseStatus = v.(models.ProviderResponseStatus)
		case "confirmedAt":
			t := v.(time.Time)
			b.ConfirmedAt = &t
		case "completedAt":
			t := v.(time.Time)
			b.CompletedAt = &t
		case "cancelledAt":
			t := v.(time.Time)
			b.CancelledAt = &t
		case "cancellationReason":
			b.CancellationReason = v.(string)
		case "expirationReason":
			b.ExpirationReason = v.(string)
		}
	}
}

// memCommissionRepo is an in-memory CommissionRepository for tests.
type memCommissionRepo struct {
	mu      sync.Mutex
	records []models.CommissionRecord
}

func (r *memCommissionRepo) Create(_ context.Context, record *models.CommissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = "commission-id"
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *memCommissionRepo) FindByBookingID(_ context.Context, bookingID string) (*models.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].BookingID == bookingID {
			clone := r.records[i]
			return &clone, nil
		}
	}
	return nil, commissionRepo.ErrCommissionNotFound
}

func (r *memCommissionRepo) SummarizeRange(_ context.Context, start, end *time.Time) (models.CommissionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summary models.CommissionSummary
	for _, rec := range r.records {
		if start != nil && rec.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && rec.CreatedAt.After(*end) {
			continue
		}
		summary.TotalBookings++
		summary.TotalRevenue += rec.BookingAmount
		summary.TotalAdminCommission += rec.AdminCommission
		summary.TotalProviderPayout += rec.ProviderPayout
	}
	return summary, nil
}

// memProviderRepo is an in-memory ProviderRepository for tests.
type memProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{providers: make(map[string]*models.Provider)}
}

func (r *memProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProviderRepo) ListAvailable(_ context.Context) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Provider
	for _, p := range r.providers {
		if p.Status == models.AvailabilityAvailable {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProviderRepo) Assign(_ context.Context, providerID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrProviderNotFound
	}
	p.Status = models.AvailabilityBusy
	p.CurrentBookingID = bookingID
	return nil
}

func (r *memProviderRepo) ReleaseIfAssigned(_ context.Context, providerID, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return false, providerRepo.ErrProviderNotFound
	}
	if p.CurrentBookingID != bookingID {
		return false, nil
	}
	p.Status = models.AvailabilityAvailable
	p.CurrentBookingID = ""
	return true, nil
}

func newTestService(bookings *memBookingRepo, commissions *memCommissionRepo, providers *memProviderRepo, now func() time.Time) *DefaultLifecycleService {
	return &DefaultLifecycleService{
		Bookings:    bookings,
		Commissions: commissions,
		Providers:   providers,
		Logger:      zap.NewNop(),
		Now:         now,
	}
}
