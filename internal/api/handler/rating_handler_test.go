package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/storepulse/store-rating/internal/core/domain"
)

func TestRatingHandler_Create(t *testing.T) {
	ratings := &stubRatingService{
		createFn: func(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error) {
			if userID != 2 || storeID != 5 || value != 4 {
				t.Fatalf("unexpected args: %d %d %d", userID, storeID, value)
			}
			return &domain.Rating{ID: 11, UserID: userID, StoreID: storeID, Value: value}, nil
		},
	}
	handler := NewRatingHandler(ratings)

	c, rec := newContext(http.MethodPost, "/rating/createRating", `{"storeId":"5","value":4}`, userClaims(2))

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gjson.Get(rec.Body.String(), "rating.id").Uint() != 11 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestRatingHandler_Create_ZeroValueReachesRangeCheck(t *testing.T) {
	var called bool
	ratings := &stubRatingService{
		createFn: func(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error) {
			called = true
			return nil, domain.ValidateRatingValue(value)
		},
	}
	handler := NewRatingHandler(ratings)

	c, _ := newContext(http.MethodPost, "/rating/createRating", `{"storeId":5,"value":0}`, userClaims(2))

	err := handler.Create(c)
	if !called {
		t.Fatalf("a zero value is present and must reach the service")
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRatingHandler_Create_RejectsFraction(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{})

	c, _ := newContext(http.MethodPost, "/rating/createRating", `{"storeId":5,"value":3.5}`, userClaims(2))

	if err := handler.Create(c); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRatingHandler_Update_ForbiddenPassesThrough(t *testing.T) {
	ratings := &stubRatingService{
		updateFn: func(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error) {
			if ratingID != 3 || value != 2 || callerID != 1 {
				t.Fatalf("unexpected args: %d %d %d", ratingID, value, callerID)
			}
			return nil, domain.ErrForbidden
		},
	}
	handler := NewRatingHandler(ratings)

	c, _ := newContext(http.MethodPost, "/rating/updateRating", `{"ratingId":3,"value":"2"}`, adminClaims(1))

	if err := handler.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRatingHandler_Update(t *testing.T) {
	ratings := &stubRatingService{
		updateFn: func(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error) {
			return &domain.Rating{ID: ratingID, Value: value, UserID: callerID, StoreID: 4}, nil
		},
	}
	handler := NewRatingHandler(ratings)

	c, rec := newContext(http.MethodPut, "/rating/updateRating", `{"ratingId":3,"value":5}`, userClaims(2))

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gjson.Get(rec.Body.String(), "updatedRating.value").Int() != 5 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestRatingHandler_Submit_StatusByOutcome(t *testing.T) {
	cases := []struct {
		name    string
		created bool
		code    int
	}{
		{"created", true, http.StatusCreated},
		{"updated", false, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ratings := &stubRatingService{
				submitFn: func(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error) {
					return &domain.Rating{ID: 1, UserID: userID, StoreID: storeID, Value: value}, tc.created, nil
				},
			}
			handler := NewRatingHandler(ratings)

			c, rec := newContext(http.MethodPost, "/rating/submit", `{"storeId":5,"value":3}`, userClaims(2))

			if err := handler.Submit(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if gjson.Get(rec.Body.String(), "created").Bool() != tc.created {
				t.Fatalf("unexpected created flag: %s", rec.Body.String())
			}
		})
	}
}

func TestRatingHandler_Mine(t *testing.T) {
	ratings := &stubRatingService{
		mineFn: func(ctx context.Context, userID, storeID uint) (*domain.Rating, error) {
			if userID != 2 || storeID != 9 {
				t.Fatalf("unexpected args: %d %d", userID, storeID)
			}
			return nil, domain.ErrRatingNotFound
		},
	}
	handler := NewRatingHandler(ratings)

	c, _ := newContext(http.MethodGet, "/rating/store/9/mine", "", userClaims(2))
	withParam(c, "id", "9")

	if err := handler.Mine(c); !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}
