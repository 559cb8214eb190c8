package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/api/metrics"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type StoreHandler struct {
	storeService  ports.StoreService
	ratingService ports.RatingService
}

func NewStoreHandler(storeService ports.StoreService, ratingService ports.RatingService) *StoreHandler {
	return &StoreHandler{storeService: storeService, ratingService: ratingService}
}

// Create opens a store for an existing user and promotes them to OWNER.
//
// @Summary      Create store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  createStoreResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /store/createStore [post]
func (h *StoreHandler) Create(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req createStoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	store, err := h.storeService.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID.asUint(),
		ActorID: claims.UserID,
	})
	if err != nil {
		return err
	}
	metrics.StoresCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, createStoreResponse{
		Message:     "Store created successfully",
		Store:       toStoreResponse(store),
		UpdatedUser: store.Owner,
	})
}

// List returns every store with its average rating.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive substring of the store name"
// @Success      200     {object}  storesEnvelope
// @Failure      401     {object}  errorResponse
// @Router       /store/getAllStores [get]
func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.storeService.ListStores(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storesEnvelope{Stores: toStoreSummaries(stores)})
}

// Details returns one store with its owner.
//
// @Summary      Store details
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Store ID"
// @Success      200  {object}  storeEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /store/getStoreDetails/{id} [get]
func (h *StoreHandler) Details(c echo.Context) error {
	id, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	store, err := h.storeService.GetStoreDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storeEnvelope{Store: toStoreResponse(store)})
}

// Owned returns the stores owned by the caller.
//
// @Summary      Caller's stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  storesEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /store/getStoreDetailsFromUserId [get]
func (h *StoreHandler) Owned(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	stores, err := h.storeService.GetStoresByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storesEnvelope{Stores: toStoreSummaries(stores)})
}

// Ratings lists a store's ratings with the rater's identity.
//
// @Summary      Store ratings
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Store ID"
// @Success      200  {object}  ratingsEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /store/{id}/ratings [get]
func (h *StoreHandler) Ratings(c echo.Context) error {
	id, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	ratings, err := h.ratingService.GetStoreRatings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratingsEnvelope{Ratings: toRatingResponses(ratings)})
}
