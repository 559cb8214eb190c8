package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type storeFixture struct {
	users    *stubUserRepo
	stores   *stubStoreRepo
	ratings  *stubRatingRepo
	activity *stubActivityLog
	svc      *StoreService
}

func newStoreFixture() *storeFixture {
	users := newStubUserRepo()
	ratings := newStubRatingRepo()
	stores := newStubStoreRepo(users, ratings)
	activity := &stubActivityLog{}
	return &storeFixture{
		users:    users,
		stores:   stores,
		ratings:  ratings,
		activity: activity,
		svc:      NewStoreService(stores, users, activity, zerolog.Nop()),
	}
}

func (f *storeFixture) addUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: "User " + email, Email: email, Role: role}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func storeInput(ownerID uint) ports.CreateStoreInput {
	return ports.CreateStoreInput{
		Name:    "Corner Shop",
		Email:   "shop@example.com",
		Address: "12 High Street",
		OwnerID: ownerID,
		ActorID: 1,
	}
}

func TestStoreService_CreateStore_PromotesOwner(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "a@example.com", domain.RoleUser)

	store, err := f.svc.CreateStore(context.Background(), storeInput(owner.ID))
	if err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}
	if store.ID == 0 || store.OwnerID != owner.ID {
		t.Fatalf("unexpected store: %+v", store)
	}
	if store.Owner == nil || store.Owner.Role != domain.RoleOwner {
		t.Fatalf("expected owner ref with OWNER role, got %+v", store.Owner)
	}

	stored, _ := f.users.FindByID(context.Background(), owner.ID)
	if stored.Role != domain.RoleOwner {
		t.Fatalf("expected persisted role OWNER, got %s", stored.Role)
	}

	got := f.activity.actions()
	if len(got) != 2 || got[0] != domain.ActionStoreCreated || got[1] != domain.ActionOwnerPromoted {
		t.Fatalf("unexpected activity: %v", got)
	}
}

func TestStoreService_CreateStore_PromotesAdmin(t *testing.T) {
	f := newStoreFixture()
	admin := f.addUser(t, "root@example.com", domain.RoleAdmin)

	store, err := f.svc.CreateStore(context.Background(), storeInput(admin.ID))
	if err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}
	if store.Owner.Role != domain.RoleOwner {
		t.Fatalf("expected admin to become OWNER, got %s", store.Owner.Role)
	}
	stored, _ := f.users.FindByID(context.Background(), admin.ID)
	if stored.Role != domain.RoleOwner {
		t.Fatalf("expected persisted role OWNER, got %s", stored.Role)
	}
	if got := f.activity.actions(); len(got) != 2 || got[1] != domain.ActionOwnerPromoted {
		t.Fatalf("expected promotion activity, got %v", got)
	}
}

func TestStoreService_CreateStore_ExistingOwner(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "o@example.com", domain.RoleOwner)

	if _, err := f.svc.CreateStore(context.Background(), storeInput(owner.ID)); err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}
	if got := f.activity.actions(); len(got) != 1 || got[0] != domain.ActionStoreCreated {
		t.Fatalf("an existing OWNER is not re-promoted, got %v", got)
	}
}

func TestStoreService_CreateStore_Validation(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "a@example.com", domain.RoleUser)

	cases := map[string]func(*ports.CreateStoreInput){
		"short name":    func(in *ports.CreateStoreInput) { in.Name = "A" },
		"bad email":     func(in *ports.CreateStoreInput) { in.Email = "shop@" },
		"empty address": func(in *ports.CreateStoreInput) { in.Address = "   " },
		"no owner":      func(in *ports.CreateStoreInput) { in.OwnerID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := storeInput(owner.ID)
			mutate(&in)
			if _, err := f.svc.CreateStore(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(f.stores.stores) != 0 {
		t.Fatalf("invalid input must not persist a store")
	}
}

func TestStoreService_CreateStore_UnknownOwner(t *testing.T) {
	f := newStoreFixture()
	if _, err := f.svc.CreateStore(context.Background(), storeInput(77)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStoreService_CreateStore_RepositoryFailure(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "a@example.com", domain.RoleUser)
	f.stores.createErr = errBoom

	if _, err := f.svc.CreateStore(context.Background(), storeInput(owner.ID)); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	stored, _ := f.users.FindByID(context.Background(), owner.ID)
	if stored.Role != domain.RoleUser {
		t.Fatalf("failed create must not promote, got %s", stored.Role)
	}
	if got := f.activity.actions(); len(got) != 0 {
		t.Fatalf("failed create must not record activity, got %v", got)
	}
}

func TestStoreService_GetStoresByOwner(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "a@example.com", domain.RoleUser)
	other := f.addUser(t, "b@example.com", domain.RoleUser)

	if _, err := f.svc.GetStoresByOwner(context.Background(), owner.ID); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for owner without stores, got %v", err)
	}

	store, err := f.svc.CreateStore(context.Background(), storeInput(owner.ID))
	if err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}
	_ = f.ratings.Create(context.Background(), &domain.Rating{UserID: other.ID, StoreID: store.ID, Value: 4})
	_ = f.ratings.Create(context.Background(), &domain.Rating{UserID: other.ID, StoreID: store.ID, Value: 5})

	got, err := f.svc.GetStoresByOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("GetStoresByOwner returned error: %v", err)
	}
	if len(got) != 1 || got[0].AvgRating == nil || *got[0].AvgRating != 4.5 {
		t.Fatalf("unexpected summaries: %+v", got)
	}
}

func TestStoreService_GetStoreDetails(t *testing.T) {
	f := newStoreFixture()
	if _, err := f.svc.GetStoreDetails(context.Background(), 0); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for id 0, got %v", err)
	}
	if _, err := f.svc.GetStoreDetails(context.Background(), 5); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestStoreService_ListStores_NoRatingsHasNilAverage(t *testing.T) {
	f := newStoreFixture()
	owner := f.addUser(t, "a@example.com", domain.RoleUser)
	if _, err := f.svc.CreateStore(context.Background(), storeInput(owner.ID)); err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}

	got, err := f.svc.ListStores(context.Background(), "  corner ")
	if err != nil {
		t.Fatalf("ListStores returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected search to match one store, got %d", len(got))
	}
	if got[0].AvgRating != nil {
		t.Fatalf("expected nil average, got %v", *got[0].AvgRating)
	}
}
