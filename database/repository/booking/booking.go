package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/Philip2024394/website-massage--sub045/config"
	"github.com/Philip2024394/website-massage--sub045/database"
	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBookingNotFound is returned when no booking matches the given id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrStatusConflict is returned when a conditional status update matched the
// booking id but not its expected current status. The caller lost a race and
// must re-read before retrying.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// BookingRepository is the document-store contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	FindActiveForCustomer(ctx context.Context, userID, providerID string, since time.Time) (*models.Booking, error)
	UpdateStatusIf(ctx context.Context, id string, from models.BookingStatus, set bson.M) error
	MarkBroadcast(ctx context.Context, id string, at time.Time, count int) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection(config.AppConfig.BookingsCollection),
	}
}
