package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/api/metrics"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type RatingHandler struct {
	ratingService ports.RatingService
}

func NewRatingHandler(ratingService ports.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Create adds a new rating. Repeated calls for the same store add more rows;
// use Submit to keep a single current rating.
//
// @Summary      Create rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRatingRequest  true  "Store and value (1-5)"
// @Success      201   {object}  ratingEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rating/createRating [post]
func (h *RatingHandler) Create(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req createRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rating, err := h.ratingService.CreateRating(c.Request().Context(), claims.UserID, req.StoreID.asUint(), req.Value.asInt())
	if err != nil {
		return err
	}
	metrics.ObserveRating("created", rating.Value)

	return c.JSON(http.StatusCreated, ratingEnvelope{Message: "Rating created", Rating: toRatingResponse(rating)})
}

// Update amends a rating authored by the caller.
//
// @Summary      Update rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRatingRequest  true  "Rating ID and new value (1-5)"
// @Success      200   {object}  updatedRatingEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rating/updateRating [post]
// @Router       /rating/updateRating [put]
func (h *RatingHandler) Update(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req updateRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rating, err := h.ratingService.UpdateRating(c.Request().Context(), req.RatingID.asUint(), req.Value.asInt(), claims.UserID)
	if err != nil {
		return err
	}
	metrics.ObserveRating("updated", rating.Value)

	return c.JSON(http.StatusOK, updatedRatingEnvelope{Message: "Rating updated", UpdatedRating: toRatingResponse(rating)})
}

// Submit creates the caller's rating for a store or amends the latest one.
//
// @Summary      Create or update rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRatingRequest  true  "Store and value (1-5)"
// @Success      200   {object}  ratingEnvelope  "Existing rating updated"
// @Success      201   {object}  ratingEnvelope  "Rating created"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rating/submit [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req createRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rating, created, err := h.ratingService.SubmitRating(c.Request().Context(), claims.UserID, req.StoreID.asUint(), req.Value.asInt())
	if err != nil {
		return err
	}

	status, kind, msg := http.StatusOK, "updated", "Rating updated"
	if created {
		status, kind, msg = http.StatusCreated, "created", "Rating created"
	}
	metrics.ObserveRating(kind, rating.Value)

	return c.JSON(status, ratingEnvelope{Message: msg, Rating: toRatingResponse(rating), Created: &created})
}

// Mine returns the caller's current rating for a store.
//
// @Summary      Caller's rating for a store
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Store ID"
// @Success      200  {object}  ratingEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /rating/store/{id}/mine [get]
func (h *RatingHandler) Mine(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	storeID, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	rating, err := h.ratingService.GetMyRating(c.Request().Context(), claims.UserID, storeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratingEnvelope{Rating: toRatingResponse(rating)})
}
