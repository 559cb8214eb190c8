package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRating(t *testing.T) {
	before := testutil.ToFloat64(RatingsSubmittedTotal.WithLabelValues("created"))
	ObserveRating("created", 4)
	after := testutil.ToFloat64(RatingsSubmittedTotal.WithLabelValues("created"))

	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
	if n := testutil.CollectAndCount(RatingValue); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}
