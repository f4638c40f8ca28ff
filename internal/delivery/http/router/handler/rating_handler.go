package handler

import (
	"log/slog"
	"net/http"
	"time"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/response"
	"ratehub/internal/domain/entity"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RatingHandler holds dependencies for rating ledger handlers.
type RatingHandler struct {
	uc     usecase.RatingUsecase
	logger *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{uc: uc, logger: logger}
}

type submitRatingRequest struct {
	StoreID string `json:"storeId" validate:"required,uuid"`
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type ratingResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"storeId"`
	UserID    uuid.UUID `json:"userId"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	RaterName string    `json:"raterName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRatingResponse(rating *entity.Rating) ratingResponse {
	return ratingResponse{
		ID:        rating.ID,
		StoreID:   rating.StoreID,
		UserID:    rating.UserID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		RaterName: rating.RaterName,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// Submit records or replaces the caller's rating for a store.
// A new rating answers 201, replacing an earlier one answers 200.
func (h *RatingHandler) Submit(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store id")
	}

	output, err := h.uc.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		Actor:   actor,
		StoreID: storeID,
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	message := "Rating updated successfully"
	if output.Created {
		status = http.StatusCreated
		message = "Rating submitted successfully"
	}

	return response.Success(c, status, toRatingResponse(output.Rating), message)
}

// Delete removes a rating by ID.
func (h *RatingHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid rating id")
	}

	if err := h.uc.DeleteRating(c.Request().Context(), ratingID, actor); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating deleted successfully")
}

// ListByStore returns a store's full rating ledger, newest first.
func (h *RatingHandler) ListByStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store id")
	}

	ratings, err := h.uc.StoreRatings(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]ratingResponse, 0, len(ratings))
	for _, rating := range ratings {
		result = append(result, toRatingResponse(rating))
	}

	return response.Success(c, http.StatusOK, result, "")
}
