package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

type userServiceImpl struct {
	users  *recordstore.Store[domain.User]
	logger *slog.Logger
}

// NewUserService creates the user management service.
func NewUserService(users *recordstore.Store[domain.User], logger *slog.Logger) ports.UserSvc {
	return &userServiceImpl{users: users, logger: logger}
}

var _ ports.UserSvc = (*userServiceImpl)(nil)

// SeedAdmin appends the default admin login if the user store is empty.
// Called once at startup, before any connection is accepted.
func SeedAdmin(users *recordstore.Store[domain.User], logger *slog.Logger) error {
	unlock := users.LockFile(true)
	defer unlock()

	n, err := users.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	admin := domain.User{
		UserID:   domain.SeedAdminID,
		Name:     domain.SeedAdminName,
		Password: domain.SeedAdminPassword,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if _, err := users.Append(admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("default admin user created", slog.Int64("user_id", domain.SeedAdminID))
	return nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, name, password string, role domain.Role) (domain.User, error) {
	if name == "" || password == "" {
		return domain.User{}, fmt.Errorf("name and password required: %w", apperrors.ErrValidation)
	}
	if len(password) > domain.UserPasswordLen-1 {
		return domain.User{}, fmt.Errorf("password longer than %d bytes: %w", domain.UserPasswordLen-1, apperrors.ErrValidation)
	}
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("role %d: %w", role, apperrors.ErrValidation)
	}
	user, err := s.users.Create(func(id int64) (domain.User, error) {
		return domain.User{
			UserID:   int32(id),
			Name:     name,
			Password: password,
			Role:     role,
			IsActive: true,
		}, nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user created",
		slog.Int64("user_id", int64(user.UserID)),
		slog.String("role", role.String()))
	return user, nil
}

func (s *userServiceImpl) ModifyUser(ctx context.Context, actorRole domain.Role, userID int32, newName, newPassword string) error {
	if len(newPassword) > domain.UserPasswordLen-1 {
		return fmt.Errorf("password longer than %d bytes: %w", domain.UserPasswordLen-1, apperrors.ErrValidation)
	}
	err := s.users.Update(int64(userID), func(u *domain.User) error {
		if actorRole == domain.RoleEmployee && u.Role != domain.RoleCustomer {
			return fmt.Errorf("employees may modify only customers: %w", apperrors.ErrPermissionDenied)
		}
		if newName != "" {
			u.Name = newName
		}
		if newPassword != "" {
			u.Password = newPassword
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("modify user %d: %w", userID, err)
	}
	s.logger.Info("user modified", slog.Int64("user_id", int64(userID)))
	return nil
}

func (s *userServiceImpl) SetUserActive(ctx context.Context, userID int32, active bool) error {
	err := s.users.Update(int64(userID), func(u *domain.User) error {
		u.IsActive = active
		return nil
	})
	if err != nil {
		return fmt.Errorf("set user %d active=%t: %w", userID, active, err)
	}
	s.logger.Info("user activation changed",
		slog.Int64("user_id", int64(userID)), slog.Bool("active", active))
	return nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID int32) (domain.User, error) {
	_, user, err := s.users.FindByKey(int64(userID))
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
