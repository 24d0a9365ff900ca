package commissionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Philip2024394/website-massage--sub045/config"
	"github.com/Philip2024394/website-massage--sub045/database"
	"github.com/Philip2024394/website-massage--sub045/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCommissionNotFound is returned when no record exists for a booking.
var ErrCommissionNotFound = errors.New("commission record not found")

// CommissionRepository is the document-store contract for commission records.
type CommissionRepository interface {
	Create(ctx context.Context, record *models.CommissionRecord) error
	FindByBookingID(ctx context.Context, bookingID string) (*models.CommissionRecord, error)
	SummarizeRange(ctx context.Context, start, end *time.Time) (models.CommissionSummary, error)
}

type mongoCommissionRepo struct {
	coll *mongo.Collection
}

// NewMongoCommissionRepo returns a CommissionRepository backed by MongoDB.
func NewMongoCommissionRepo() CommissionRepository {
	return &mongoCommissionRepo{
		coll: database.DB().Collection(config.AppConfig.CommissionsCollection),
	}
}

// Create inserts a new commission record.
func (r *mongoCommissionRepo) Create(ctx context.Context, record *models.CommissionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert commission record for booking %s: %w", record.BookingID, err)
	}
	return nil
}

// FindByBookingID returns the commission record for a booking, if any.
func (r *mongoCommissionRepo) FindByBookingID(ctx context.Context, bookingID string) (*models.CommissionRecord, error) {
	var record models.CommissionRecord
	err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up commission for booking %s: %w", bookingID, err)
	}
	return &record, nil
}

// SummarizeRange aggregates commission totals over the given creation range.
// Nil bounds leave that side of the range open.
func (r *mongoCommissionRepo) SummarizeRange(ctx context.Context, start, end *time.Time) (models.CommissionSummary, error) {
	var summary models.CommissionSummary

	createdAt := bson.M{}
	if start != nil {
		createdAt["$gte"] = *start
	}
	if end != nil {
		createdAt["$lte"] = *end
	}
	match := bson.M{}
	if len(createdAt) > 0 {
		match["createdAt"] = createdAt
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":                  nil,
			"totalBookings":        bson.M{"$sum": 1},
			"totalRevenue":         bson.M{"$sum": "$bookingAmount"},
			"totalAdminCommission": bson.M{"$sum": "$adminCommission"},
			"totalProviderPayout":  bson.M{"$sum": "$providerPayout"},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate commission records: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalBookings        int   `bson:"totalBookings"`
		TotalRevenue         int64 `bson:"totalRevenue"`
		TotalAdminCommission int64 `bson:"totalAdminCommission"`
		TotalProviderPayout  int64 `bson:"totalProviderPayout"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return summary, err
	}
	if len(results) > 0 {
		summary.TotalBookings = results[0].TotalBookings
		summary.TotalRevenue = results[0].TotalRevenue
		summary.TotalAdminCommission = results[0].TotalAdminCommission
		summary.TotalProviderPayout = results[0].TotalProviderPayout
	}
	return summary, nil
}
