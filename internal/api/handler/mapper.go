package handler

import (
	"github.com/storepulse/store-rating/internal/core/domain"
)

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    string(u.Role),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toStoreResponse(s *domain.Store) storeResponse {
	return storeResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		Owner:     s.Owner,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// toStoreSummaries rounds averages to one decimal; aggregation upstream keeps
// full precision.
func toStoreSummaries(stores []domain.StoreSummary) []storeSummaryResponse {
	out := make([]storeSummaryResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeSummaryResponse{
			ID:          s.ID,
			Name:        s.Name,
			Email:       s.Email,
			Address:     s.Address,
			Owner:       s.Owner,
			AvgRating:   domain.RoundForDisplay(s.AvgRating),
			RatingCount: s.RatingCount,
		})
	}
	return out
}

func toRatingResponse(r *domain.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		Value:     r.Value,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		User:      r.User,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toRatingResponses(ratings []domain.Rating) []ratingResponse {
	out := make([]ratingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, toRatingResponse(&ratings[i]))
	}
	return out
}
