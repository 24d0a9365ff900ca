package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateStatusIf applies the given field set only while the booking is still
// in the expected status. Two concurrent writers cannot both win the same
// transition: the second update matches nothing and gets ErrStatusConflict.
func (r *mongoBookingRepo) UpdateStatusIf(ctx context.Context, id string, from models.BookingStatus, set bson.M) error {
	filter := bson.M{"id": id, "status": from}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Distinguish a lost race from a missing document.
	err = r.coll.FindOne(ctx, bson.M{"id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to re-check booking %s: %w", id, err)
	}
	return ErrStatusConflict
}

// MarkBroadcast records that the booking was rebroadcast to the provider
// pool and how many providers were notified.
func (r *mongoBookingRepo) MarkBroadcast(ctx context.Context, id string, at time.Time, count int) error {
	set := bson.M{
		"broadcast":      true,
		"broadcastAt":    at,
		"broadcastCount": count,
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to mark booking %s broadcast: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
