package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/policy"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager  repository.TransactionManager
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	logger     *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	UserRepo   repository.UserRepository
	Logger     *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:  params.TxManager,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		userRepo:   params.UserRepo,
		logger:     params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListStores returns all stores matching the search term. When a caller is
// known, each store view carries that caller's own score as well.
func (srv *storeService) ListStores(ctx context.Context, input *usecase.ListStoresInput) ([]*usecase.StoreView, error) {
	stores, err := srv.storeRepo.Search(ctx, input.Search)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search stores")
	}

	views := make([]*usecase.StoreView, 0, len(stores))
	for _, store := range stores {
		views = append(views, &usecase.StoreView{Store: store})
	}

	if input.Caller == nil || len(stores) == 0 {
		return views, nil
	}

	storeIDs := make([]uuid.UUID, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}

	scores, err := srv.ratingRepo.ScoresByUser(ctx, input.Caller.ID, storeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load caller scores")
	}

	for _, view := range views {
		if score, ok := scores[view.Store.ID]; ok {
			myScore := score
			view.MyScore = &myScore
		}
	}

	return views, nil
}

// GetStore returns a single store with the caller's own score, if any.
func (srv *storeService) GetStore(ctx context.Context, storeID uuid.UUID, caller *usecase.Actor) (*usecase.StoreView, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to load store")
	}

	view := &usecase.StoreView{Store: store}
	if caller == nil {
		return view, nil
	}

	rating, err := srv.ratingRepo.FindByStoreAndUser(ctx, storeID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return view, nil
		}

		return nil, errors.Wrap(err, "failed to load caller rating")
	}

	score := rating.Score
	view.MyScore = &score

	return view, nil
}

// MyStores lists the stores owned by the calling owner.
func (srv *storeService) MyStores(ctx context.Context, actor *usecase.Actor) ([]*entity.Store, error) {
	if !actor.Role.CanOwnStores() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only store owners have an owned store listing")
	}

	stores, err := srv.storeRepo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owned stores")
	}

	return stores, nil
}

// CreateStore registers a new store. Owners always own the stores they
// create; administrators may assign any owner or leave the store unowned.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	if !policy.CanCreateStore(input.Actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("role cannot create stores")
	}

	ownerID, err := srv.resolveOwner(ctx, input)
	if err != nil {
		return nil, err
	}

	store := &entity.Store{
		Name:        input.Name,
		Category:    input.Category,
		Address:     input.Address,
		Description: input.Description,
		OwnerID:     ownerID,
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		srv.log(ctx).Warn("Failed to create store", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Store created", slog.Any("storeID", store.ID), slog.Any("ownerID", ownerID))

	return store, nil
}

// resolveOwner determines the owner for a new store based on who is creating it.
func (srv *storeService) resolveOwner(ctx context.Context, input *usecase.CreateStoreInput) (*uuid.UUID, error) {
	if input.Actor.Role == entity.RoleOwner {
		ownerID := input.Actor.ID

		return &ownerID, nil
	}

	// Administrator path: an explicit owner must exist and be able to own stores.
	if input.OwnerID == nil {
		return nil, nil
	}

	owner, err := srv.userRepo.FindByID(ctx, *input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("assigned owner does not exist")
		}

		return nil, errors.Wrap(err, "failed to load assigned owner")
	}
	if !owner.Role.CanOwnStores() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("assigned owner must have the OWNER role")
	}

	ownerID := owner.ID

	return &ownerID, nil
}

// UpdateStore modifies a store's descriptive fields.
func (srv *storeService) UpdateStore(ctx context.Context, input *usecase.UpdateStoreInput) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to load store for update")
	}

	if !policy.CanManageStore(input.Actor.Role, store.OwnedBy(input.Actor.ID)) {
		return nil, domainerrors.ErrForbidden.WrapMessage("not allowed to modify this store")
	}

	store.Name = input.Name
	store.Category = input.Category
	store.Address = input.Address
	store.Description = input.Description

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store")
	}

	srv.log(ctx).Info("Store updated", slog.Any("storeID", store.ID))

	return store, nil
}

// DeleteStore removes a store together with its rating ledger.
func (srv *storeService) DeleteStore(ctx context.Context, storeID uuid.UUID, actor *usecase.Actor) error {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}

		return errors.Wrap(err, "failed to load store for deletion")
	}

	if !policy.CanManageStore(actor.Role, store.OwnedBy(actor.ID)) {
		return domainerrors.ErrForbidden.WrapMessage("not allowed to delete this store")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RatingRepo().DeleteByStore(ctx, storeID); err != nil {
			return errors.Wrap(err, "failed to delete ratings with store")
		}

		return repoFactory.StoreRepo().Delete(ctx, storeID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}

		return errors.Wrap(err, "failed to execute store deletion transaction")
	}

	srv.log(ctx).Info("Store deleted", slog.Any("storeID", storeID))

	return nil
}
