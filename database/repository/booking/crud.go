package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Philip2024394/website-massage--sub045/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", booking.ID, err)
	}
	return nil
}

// GetByID returns a booking by its id field.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListByStatus fetches all bookings currently in the given lifecycle status.
func (r *mongoBookingRepo) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings with status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByProvider fetches all bookings assigned to a provider, newest first.
func (r *mongoBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindActiveForCustomer returns a non-terminal booking between the customer
// and provider created after the given instant, or ErrBookingNotFound.
func (r *mongoBookingRepo) FindActiveForCustomer(ctx context.Context, userID, providerID string, since time.Time) (*models.Booking, error) {
	filter := bson.M{
		"userId":     userID,
		"providerId": providerID,
		"status": bson.M{"$in": []models.BookingStatus{
			models.StatusPending, models.StatusAccepted, models.StatusConfirmed,
		}},
		"createdAt": bson.M{"$gt": since},
	}
	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check active bookings for user %s: %w", userID, err)
	}
	return &booking, nil
}
