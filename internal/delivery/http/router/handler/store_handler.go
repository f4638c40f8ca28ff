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

// StoreHandler holds dependencies for store registry handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{uc: uc, logger: logger}
}

type createStoreRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"max=100"`
	Address     string `json:"address" validate:"max=400"`
	Description string `json:"description" validate:"max=1000"`
	OwnerID     string `json:"ownerId" validate:"omitempty,uuid"`
}

type updateStoreRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"max=100"`
	Address     string `json:"address" validate:"max=400"`
	Description string `json:"description" validate:"max=1000"`
}

// storeResponse is the API projection of a store, optionally carrying the
// calling user's own score.
type storeResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Address       string     `json:"address"`
	Description   string     `json:"description"`
	OwnerID       *uuid.UUID `json:"ownerId"`
	AverageRating float64    `json:"averageRating"`
	TotalRatings  int64      `json:"totalRatings"`
	MyScore       *int       `json:"myScore,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toStoreResponse(store *entity.Store, myScore *int) storeResponse {
	return storeResponse{
		ID:            store.ID,
		Name:          store.Name,
		Category:      store.Category,
		Address:       store.Address,
		Description:   store.Description,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		MyScore:       myScore,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

// List returns all stores matching the optional search query.
func (h *StoreHandler) List(c echo.Context) error {
	input := &usecase.ListStoresInput{Search: c.QueryParam("search")}
	if actor, ok := middleware.ActorFrom(c); ok {
		input.Caller = actor
	}

	views, err := h.uc.ListStores(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	stores := make([]storeResponse, 0, len(views))
	for _, view := range views {
		stores = append(stores, toStoreResponse(view.Store, view.MyScore))
	}

	return response.Success(c, http.StatusOK, stores, "")
}

// Get returns a single store by ID.
func (h *StoreHandler) Get(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store id")
	}

	var caller *usecase.Actor
	if actor, ok := middleware.ActorFrom(c); ok {
		caller = actor
	}

	view, err := h.uc.GetStore(c.Request().Context(), storeID, caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreResponse(view.Store, view.MyScore), "")
}

// MyStores returns the stores owned by the authenticated caller.
func (h *StoreHandler) MyStores(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	stores, err := h.uc.MyStores(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		result = append(result, toStoreResponse(store, nil))
	}

	return response.Success(c, http.StatusOK, result, "")
}

// Create registers a new store.
func (h *StoreHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.CreateStoreInput{
		Actor:       actor,
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Description: req.Description,
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid owner id")
		}
		input.OwnerID = &ownerID
	}

	store, err := h.uc.CreateStore(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toStoreResponse(store, nil), "Store created successfully")
}

// Update modifies a store's descriptive fields.
func (h *StoreHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store id")
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.uc.UpdateStore(c.Request().Context(), &usecase.UpdateStoreInput{
		Actor:       actor,
		StoreID:     storeID,
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreResponse(store, nil), "Store updated successfully")
}

// Delete removes a store and its ratings.
func (h *StoreHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store id")
	}

	if err := h.uc.DeleteStore(c.Request().Context(), storeID, actor); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted successfully")
}
