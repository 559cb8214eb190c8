package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/api/middleware"
	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	updatePasswordFn func(ctx context.Context, userID uint, current, next string) error
	logoutFn         func(ctx context.Context, claims *domain.Claims) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, userID uint, current, next string) error {
	return s.updatePasswordFn(ctx, userID, current, next)
}

func (s *stubAuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	return s.logoutFn(ctx, claims)
}

type stubUserService struct {
	listFn func(ctx context.Context, filter ports.UserFilter) ([]domain.User, error)
	getFn  func(ctx context.Context, id uint) (*domain.User, error)
}

func (s *stubUserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	return s.listFn(ctx, filter)
}

func (s *stubUserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.getFn(ctx, id)
}

type stubStoreService struct {
	createFn  func(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error)
	listFn    func(ctx context.Context, search string) ([]domain.StoreSummary, error)
	detailsFn func(ctx context.Context, id uint) (*domain.Store, error)
	byOwnerFn func(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error)
}

func (s *stubStoreService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	return s.createFn(ctx, in)
}

func (s *stubStoreService) ListStores(ctx context.Context, search string) ([]domain.StoreSummary, error) {
	return s.listFn(ctx, search)
}

func (s *stubStoreService) GetStoreDetails(ctx context.Context, id uint) (*domain.Store, error) {
	return s.detailsFn(ctx, id)
}

func (s *stubStoreService) GetStoresByOwner(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	return s.byOwnerFn(ctx, ownerID)
}

type stubRatingService struct {
	createFn       func(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error)
	updateFn       func(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error)
	submitFn       func(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error)
	mineFn         func(ctx context.Context, userID, storeID uint) (*domain.Rating, error)
	storeRatingsFn func(ctx context.Context, storeID uint) ([]domain.Rating, error)
}

func (s *stubRatingService) CreateRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error) {
	return s.createFn(ctx, userID, storeID, value)
}

func (s *stubRatingService) UpdateRating(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error) {
	return s.updateFn(ctx, ratingID, value, callerID)
}

func (s *stubRatingService) SubmitRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error) {
	return s.submitFn(ctx, userID, storeID, value)
}

func (s *stubRatingService) GetMyRating(ctx context.Context, userID, storeID uint) (*domain.Rating, error) {
	return s.mineFn(ctx, userID, storeID)
}

func (s *stubRatingService) GetStoreRatings(ctx context.Context, storeID uint) ([]domain.Rating, error) {
	return s.storeRatingsFn(ctx, storeID)
}

type stubDashboardService struct {
	statsFn    func(ctx context.Context) (*domain.DashboardStats, error)
	activityFn func(ctx context.Context, limit int) ([]domain.Activity, error)
}

func (s *stubDashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.statsFn(ctx)
}

func (s *stubDashboardService) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	return s.activityFn(ctx, limit)
}

// newContext builds an echo context for a JSON request. A non-nil claims
// value stands in for the Auth middleware.
func newContext(method, target, body string, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		middleware.WithClaims(c, claims)
	}
	return c, rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func userClaims(id uint) *domain.Claims {
	return &domain.Claims{UserID: id, Role: domain.RoleUser, TokenID: "jti-user"}
}

func adminClaims(id uint) *domain.Claims {
	return &domain.Claims{UserID: id, Role: domain.RoleAdmin, TokenID: "jti-admin"}
}
