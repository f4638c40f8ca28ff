// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// hashRefreshToken produces the storage form of a refresh token. Only the
// digest is persisted, never the token itself.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// Register creates a new account and signs it in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Any("role", input.Role))

	role, ok := entity.RoleFromString(string(input.Role))
	if !ok || role == entity.RoleAdmin {
		// Administrator accounts are only created through the admin API.
		return nil, domainerrors.ErrInvalidInput.WrapMessage("role must be USER or OWNER")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		newUser := &entity.User{
			Name:         input.Name,
			Email:        input.Email,
			Address:      input.Address,
			PasswordHash: hashedPassword,
			Role:         role,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.issueTokens(ctx, registeredUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID), slog.Any("role", registeredUser.Role))

	return output, nil
}

// Login verifies credentials and issues a fresh token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load user during login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login password mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	output, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return output, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued in its place.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	token, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	userID, err := subjectUserID(token)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashRefreshToken(input.RefreshToken)

	var user *entity.User
	var accessToken, refreshToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		stored, err := refreshRepo.FindByTokenHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to load refresh token")
		}
		if stored.UserID != userID || stored.Expired(time.Now()) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		user, err = repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to load user during token refresh")
		}

		accessToken, refreshToken, err = srv.tokenService.GenerateTokens(user.ID, string(user.Role))
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens during refresh")
		}

		if err := refreshRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to revoke rotated refresh token")
		}

		return refreshRepo.Create(ctx, &entity.RefreshToken{
			UserID:    user.ID,
			TokenHash: hashRefreshToken(refreshToken),
			ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
		})
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh token rotation failed", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("userID", user.ID))

	return &usecase.TokenPairOutput{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the presented refresh token. Revoking an already unknown
// token is not an error.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	err := srv.refreshTokenRepo.DeleteByTokenHash(ctx, hashRefreshToken(input.RefreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	srv.log(ctx).Debug("Logout completed")

	return nil
}

// Me loads the authenticated user's own record.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}

// UpdatePassword changes the user's password after verifying the current one.
// All refresh tokens are revoked so every other session must sign in again.
func (srv *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, input *usecase.UpdatePasswordInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for password update")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			srv.log(ctx).Warn("Password update rejected, current password mismatch", slog.Any("userID", userID))

			return domainerrors.ErrInvalidCredentials.WrapMessage("current password is incorrect")
		}

		hashedPassword, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		user.PasswordHash = hashedPassword
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to persist new password")
		}

		if err := repoFactory.RefreshTokenRepo().DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions after password update")
		}

		srv.log(ctx).Info("Password updated", slog.Any("userID", userID))

		return nil
	})
}

// issueTokens generates an access/refresh pair for the user and persists the
// refresh token's hash.
func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	err = srv.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// subjectUserID extracts the user ID from a validated token's sub claim.
func subjectUserID(token *jwt.Token) (uuid.UUID, error) {
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "token has no subject")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "token subject is not a valid user id")
	}

	return userID, nil
}
