package providerRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Philip2024394/website-massage--sub045/config"
	"github.com/Philip2024394/website-massage--sub045/database"
	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProviderNotFound is returned when a provider record does not exist.
var ErrProviderNotFound = errors.New("provider not found")

// ProviderRepository is the document-store contract for provider
// availability records. This core reads and conditionally clears them; the
// records themselves are owned by the provider management flow.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	ListAvailable(ctx context.Context) ([]models.Provider, error)
	Assign(ctx context.Context, providerID, bookingID string) error
	ReleaseIfAssigned(ctx context.Context, providerID, bookingID string) (bool, error)
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo returns a ProviderRepository backed by MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	return &mongoProviderRepo{
		coll: database.DB().Collection(config.AppConfig.ProvidersCollection),
	}
}

// GetByID returns a provider availability record by its id field.
func (r *mongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", id, err)
	}
	return &provider, nil
}

// ListAvailable returns all providers currently marked Available.
func (r *mongoProviderRepo) ListAvailable(ctx context.Context) ([]models.Provider, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.AvailabilityAvailable})
	if err != nil {
		return nil, fmt.Errorf("failed to list available providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Assign marks the provider busy with the given booking.
func (r *mongoProviderRepo) Assign(ctx context.Context, providerID, bookingID string) error {
	update := bson.M{"$set": bson.M{
		"status":           models.AvailabilityBusy,
		"currentBookingId": bookingID,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return fmt.Errorf("failed to assign provider %s: %w", providerID, err)
	}
	if result.MatchedCount == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// ReleaseIfAssigned clears the provider's current booking only while it
// still points at the given booking. Returns false when the provider has
// since moved to a different booking, which must not be undone.
func (r *mongoProviderRepo) ReleaseIfAssigned(ctx context.Context, providerID, bookingID string) (bool, error) {
	filter := bson.M{"id": providerID, "currentBookingId": bookingID}
	update := bson.M{
		"$set":   bson.M{"status": models.AvailabilityAvailable},
		"$unset": bson.M{"currentBookingId": ""},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release provider %s: %w", providerID, err)
	}
	if result.MatchedCount > 0 {
		return true, nil
	}

	err = r.coll.FindOne(ctx, bson.M{"id": providerID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, ErrProviderNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to re-check provider %s: %w", providerID, err)
	}
	return false, nil
}
