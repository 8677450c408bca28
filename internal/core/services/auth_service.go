package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

type authServiceImpl struct {
	users  *recordstore.Store[domain.User]
	logger *slog.Logger
}

// NewAuthService creates the authentication service over the user store.
func NewAuthService(users *recordstore.Store[domain.User], logger *slog.Logger) ports.AuthSvc {
	return &authServiceImpl{users: users, logger: logger}
}

var _ ports.AuthSvc = (*authServiceImpl)(nil)

// Login checks the password by direct equality against the stored value.
// Cleartext comparison is kept for parity with the historical data files;
// a wrong password and an unknown user both surface ErrInvalidCredentials
// so the client cannot enumerate valid user IDs.
func (s *authServiceImpl) Login(ctx context.Context, userID int32, password string) (domain.User, error) {
	_, user, err := s.users.FindByKey(int64(userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.User{}, apperrors.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.Password != password {
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.User{}, apperrors.ErrUserInactive
	}
	s.logger.Info("login succeeded",
		slog.Int64("user_id", int64(user.UserID)),
		slog.String("role", user.Role.String()))
	return user, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int32, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("empty password: %w", apperrors.ErrValidation)
	}
	// The on-disk slot holds UserPasswordLen-1 bytes plus a NUL terminator.
	// Anything longer would be truncated on write and never match at login.
	if len(newPassword) > domain.UserPasswordLen-1 {
		return fmt.Errorf("password longer than %d bytes: %w", domain.UserPasswordLen-1, apperrors.ErrValidation)
	}
	err := s.users.Update(int64(userID), func(u *domain.User) error {
		u.Password = newPassword
		return nil
	})
	if err != nil {
		return fmt.Errorf("change password for user %d: %w", userID, err)
	}
	s.logger.Info("password changed", slog.Int64("user_id", int64(userID)))
	return nil
}
