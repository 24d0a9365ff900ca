package models

import "time"

// CommissionStatus is the collection state of a commission record.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "Pending"
	CommissionPaid    CommissionStatus = "Paid"
)

// CommissionRecord is the platform's revenue share for one accepted booking.
// Exactly one record may exist per booking; the amounts are snapshotted from
// the booking at acceptance time and never recomputed.
type CommissionRecord struct {
	ID              string           `bson:"id" json:"id"`
	BookingID       string           `bson:"bookingId" json:"bookingId"`
	ProviderID      string           `bson:"providerId" json:"providerId"`
	ProviderName    string           `bson:"providerName" json:"providerName"`
	ProviderType    ProviderType     `bson:"providerType" json:"providerType"`
	BookingAmount   int64            `bson:"bookingAmount" json:"bookingAmount"`
	AdminCommission int64            `bson:"adminCommission" json:"adminCommission"`
	ProviderPayout  int64            `bson:"providerPayout" json:"providerPayout"`
	CommissionRate  float64          `bson:"commissionRate" json:"commissionRate"`
	Status          CommissionStatus `bson:"status" json:"status"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
}

// CommissionSummary aggregates commission totals over a period.
type CommissionSummary struct {
	TotalBookings        int   `json:"totalBookings"`
	TotalRevenue         int64 `json:"totalRevenue"`
	TotalAdminCommission int64 `json:"totalAdminCommission"`
	TotalProviderPayout  int64 `json:"totalProviderPayout"`
}
