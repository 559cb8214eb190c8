package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single 1–5 score left by a user for a store.
type Rating struct {
	ID        uint      `json:"id"`
	Value     int       `json:"value"`
	UserID    uint      `json:"userId"`
	StoreID   uint      `json:"storeId"`
	User      *UserRef  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateRatingValue enforces the inclusive [MinRating, MaxRating] range.
func ValidateRatingValue(v int) error {
	if v < MinRating || v > MaxRating {
		return NewValidationError(fmt.Sprintf("rating value must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// Average returns the arithmetic mean of values, or nil for an empty slice.
func Average(values []int) *float64 {
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return MeanFrom(sum, int64(len(values)))
}

// MeanFrom computes sum/count as produced by SQL SUM/COUNT aggregates.
// A zero count yields nil rather than zero.
func MeanFrom(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	avg := float64(sum) / float64(count)
	return &avg
}

// RoundForDisplay rounds avg to one decimal place. Storage and aggregation
// keep full precision; only API responses are rounded.
func RoundForDisplay(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	r := math.Round(*avg*10) / 10
	return &r
}

// DashboardStats is a point-in-time snapshot of platform counts. The three
// numbers are read independently and are not guaranteed mutually consistent.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
