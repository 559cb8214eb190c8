package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for id := uint(1); id <= r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id uint, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) setRole(id uint, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Role = role
}

// stubStoreRepo shares the user map so that owner promotion is observable.
type stubStoreRepo struct {
	users     *stubUserRepo
	stores    map[uint]*domain.Store
	ratings   *stubRatingRepo
	nextID    uint
	createErr error
}

func newStubStoreRepo(users *stubUserRepo, ratings *stubRatingRepo) *stubStoreRepo {
	return &stubStoreRepo{users: users, ratings: ratings, stores: make(map[uint]*domain.Store)}
}

func (r *stubStoreRepo) CreateWithOwnerPromotion(_ context.Context, s *domain.Store) (domain.Role, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	owner, ok := r.users.users[s.OwnerID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	previous := owner.Role
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.stores[s.ID] = &clone
	r.users.setRole(s.OwnerID, domain.PromoteToOwner(previous))
	return previous, nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uint) (*domain.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubStoreRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.stores[id]
	return ok, nil
}

func (r *stubStoreRepo) summaries(match func(*domain.Store) bool) []domain.StoreSummary {
	var out []domain.StoreSummary
	for id := uint(1); id <= r.nextID; id++ {
		s, ok := r.stores[id]
		if !ok || !match(s) {
			continue
		}
		var values []int
		if r.ratings != nil {
			for _, rt := range r.ratings.ratings {
				if rt.StoreID == id {
					values = append(values, rt.Value)
				}
			}
		}
		out = append(out, domain.StoreSummary{
			Store:       *s,
			AvgRating:   domain.Average(values),
			RatingCount: int64(len(values)),
		})
	}
	return out
}

func (r *stubStoreRepo) List(_ context.Context, search string) ([]domain.StoreSummary, error) {
	return r.summaries(func(s *domain.Store) bool {
		return search == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(search))
	}), nil
}

func (r *stubStoreRepo) ListByOwner(_ context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	return r.summaries(func(s *domain.Store) bool { return s.OwnerID == ownerID }), nil
}

type stubRatingRepo struct {
	ratings map[uint]*domain.Rating
	nextID  uint
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[uint]*domain.Rating)}
}

func (r *stubRatingRepo) Create(_ context.Context, rt *domain.Rating) error {
	r.nextID++
	rt.ID = r.nextID
	clone := *rt
	r.ratings[rt.ID] = &clone
	return nil
}

func (r *stubRatingRepo) FindByID(_ context.Context, id uint) (*domain.Rating, error) {
	rt, ok := r.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	clone := *rt
	return &clone, nil
}

func (r *stubRatingRepo) UpdateValue(_ context.Context, id uint, value int) (*domain.Rating, error) {
	rt, ok := r.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	rt.Value = value
	clone := *rt
	return &clone, nil
}

func (r *stubRatingRepo) ListByStore(_ context.Context, storeID uint) ([]domain.Rating, error) {
	var out []domain.Rating
	for id := uint(1); id <= r.nextID; id++ {
		if rt, ok := r.ratings[id]; ok && rt.StoreID == storeID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) FindLatest(_ context.Context, userID, storeID uint) (*domain.Rating, error) {
	for id := r.nextID; id >= 1; id-- {
		if rt, ok := r.ratings[id]; ok && rt.UserID == userID && rt.StoreID == storeID {
			clone := *rt
			return &clone, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) Upsert(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error) {
	if existing, err := r.FindLatest(ctx, userID, storeID); err == nil {
		updated, err := r.UpdateValue(ctx, existing.ID, value)
		return updated, false, err
	}
	rt := &domain.Rating{UserID: userID, StoreID: storeID, Value: value}
	err := r.Create(ctx, rt)
	return rt, true, err
}

func (r *stubRatingRepo) countFor(userID, storeID uint) int {
	n := 0
	for _, rt := range r.ratings {
		if rt.UserID == userID && rt.StoreID == storeID {
			n++
		}
	}
	return n
}

type stubActivityLog struct {
	mu      sync.Mutex
	entries []domain.Activity
	err     error
}

func (l *stubActivityLog) Record(_ context.Context, e domain.Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, e)
	return nil
}

func (l *stubActivityLog) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Activity, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

func (l *stubActivityLog) actions() []domain.ActivityAction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ActivityAction, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Action
	}
	return out
}

type stubDenylist struct {
	revoked map[string]time.Time
	err     error
}

func (d *stubDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	if d.err != nil {
		return d.err
	}
	if d.revoked == nil {
		d.revoked = make(map[string]time.Time)
	}
	d.revoked[id] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := d.revoked[id]
	return ok, d.err
}

type stubStats struct {
	users, stores, ratings int64
	err                    error
}

func (s stubStats) CountUsers(context.Context) (int64, error)   { return s.users, nil }
func (s stubStats) CountStores(context.Context) (int64, error)  { return s.stores, s.err }
func (s stubStats) CountRatings(context.Context) (int64, error) { return s.ratings, nil }

var errBoom = errors.New("boom")
