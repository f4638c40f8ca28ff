package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/policy"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		hasher:     params.Hasher,
		logger:     params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every account, without password hashes.
func (srv *adminService) ListUsers(ctx context.Context, actor *usecase.Actor) ([]*entity.Summary, error) {
	if !policy.CanManageUsers(actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("user management requires the ADMIN role")
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	summaries := make([]*entity.Summary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}

	return summaries, nil
}

// CreateUser creates an account with any role, including ADMIN.
func (srv *adminService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	if !policy.CanManageUsers(input.Actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("user management requires the ADMIN role")
	}

	role, ok := entity.RoleFromString(string(input.Role))
	if !ok {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("role must be ADMIN, OWNER or USER")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User created by administrator", slog.Any("userID", user.ID), slog.Any("role", role))

	return user, nil
}

// DeleteUser removes an account. The user's ratings are deleted and every
// affected store's aggregates recomputed; owned stores are kept but released
// to an unowned state.
func (srv *adminService) DeleteUser(ctx context.Context, userID uuid.UUID, actor *usecase.Actor) error {
	if !policy.CanManageUsers(actor.Role) {
		return domainerrors.ErrForbidden.WrapMessage("user management requires the ADMIN role")
	}
	if userID == actor.ID {
		return domainerrors.ErrInvalidInput.WrapMessage("administrators cannot delete their own account")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for deletion")
		}

		affectedStores, err := ratingRepo.DeleteByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to delete user ratings")
		}
		for _, storeID := range affectedStores {
			average, count, err := ratingRepo.AggregateByStore(ctx, storeID)
			if err != nil {
				return errors.Wrap(err, "failed to recompute store aggregates")
			}
			if err := storeRepo.UpdateAggregates(ctx, storeID, average, count); err != nil {
				return errors.Wrap(err, "failed to persist store aggregates")
			}
		}

		if err := storeRepo.ReleaseOwner(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to release owned stores")
		}

		if err := repoFactory.RefreshTokenRepo().DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke user sessions")
		}

		return userRepo.Delete(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete user", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", userID))

	return nil
}

// Stats reports platform-wide totals for the admin dashboard.
func (srv *adminService) Stats(ctx context.Context, actor *usecase.Actor) (*usecase.PlatformStats, error) {
	if !policy.CanManageUsers(actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("platform statistics require the ADMIN role")
	}

	users, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	stores, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}
	ratings, err := srv.ratingRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	return &usecase.PlatformStats{
		TotalUsers:   users,
		TotalStores:  stores,
		TotalRatings: ratings,
	}, nil
}
