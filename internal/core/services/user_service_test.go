package services_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/services"
)

func TestSeedAdminOnlyWhenEmpty(t *testing.T) {
	_, stores := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, services.SeedAdmin(stores.Users, logger))
	require.NoError(t, services.SeedAdmin(stores.Users, logger), "second seed must be a no-op")

	n, err := stores.Users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, admin, err := stores.Users.FindByKey(domain.SeedAdminID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
}

func TestCreateUserAllocatesAboveFloor(t *testing.T) {
	svcs, _ := newFixture(t)
	ctx := context.Background()

	first, err := svcs.Users.CreateUser(ctx, "First", "pw", domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int32(1001), first.UserID)

	second, err := svcs.Users.CreateUser(ctx, "Second", "pw", domain.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, int32(1002), second.UserID)

	_, err = svcs.Users.CreateUser(ctx, "", "pw", domain.RoleCustomer)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svcs.Users.CreateUser(ctx, "Bad Role", "pw", domain.Role(9))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEmployeeMayModifyOnlyCustomers(t *testing.T) {
	svcs, stores := newFixture(t)
	ctx := context.Background()
	seedCustomer(t, stores, 2000, 0)
	seedEmployee(t, stores, 3000, true)

	require.NoError(t, svcs.Users.ModifyUser(ctx, domain.RoleEmployee, 2000, "Renamed", ""))

	err := svcs.Users.ModifyUser(ctx, domain.RoleEmployee, 3000, "Nope", "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svcs.Users.ModifyUser(ctx, domain.RoleAdmin, 3000, "Renamed Emp", ""))
	user, err := svcs.Users.GetUser(ctx, 3000)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Emp", user.Name)
	assert.Equal(t, "pw", user.Password, "blank password keeps the old one")
}

func TestLoginRules(t *testing.T) {
	svcs, stores := newFixture(t)
	ctx := context.Background()
	seedCustomer(t, stores, 2000, 0)

	user, err := svcs.Auth.Login(ctx, 2000, "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	_, err = svcs.Auth.Login(ctx, 2000, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svcs.Auth.Login(ctx, 9999, "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown user looks like a bad password")

	require.NoError(t, svcs.Users.SetUserActive(ctx, 2000, false))
	_, err = svcs.Auth.Login(ctx, 2000, "pw")
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestChangePassword(t *testing.T) {
	svcs, stores := newFixture(t)
	ctx := context.Background()
	seedCustomer(t, stores, 2000, 0)

	require.NoError(t, svcs.Auth.ChangePassword(ctx, 2000, "newpw"))
	_, err := svcs.Auth.Login(ctx, 2000, "newpw")
	assert.NoError(t, err)

	err = svcs.Auth.ChangePassword(ctx, 2000, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// The password slot stores UserPasswordLen-1 bytes; a longer password
// would be cut short on disk and never match the full string at login.
// Every write path rejects it up front so the old password keeps working.
func TestOverlongPasswordRejected(t *testing.T) {
	svcs, stores := newFixture(t)
	ctx := context.Background()
	seedCustomer(t, stores, 2000, 0)

	long := strings.Repeat("a", domain.UserPasswordLen+5)

	err := svcs.Auth.ChangePassword(ctx, 2000, long)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svcs.Auth.Login(ctx, 2000, "pw")
	assert.NoError(t, err, "rejected change must leave the old password usable")

	_, err = svcs.Users.CreateUser(ctx, "Long", long, domain.RoleCustomer)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	err = svcs.Users.ModifyUser(ctx, domain.RoleAdmin, 2000, "", long)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	longest := strings.Repeat("b", domain.UserPasswordLen-1)
	require.NoError(t, svcs.Auth.ChangePassword(ctx, 2000, longest))
	_, err = svcs.Auth.Login(ctx, 2000, longest)
	assert.NoError(t, err)
}
