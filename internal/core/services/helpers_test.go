package services_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/services"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

func newFixture(t *testing.T) (ports.Container, *recordstore.Stores) {
	t.Helper()
	stores, err := recordstore.OpenAll(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewContainer(stores, 10, logger), stores
}

// seedCustomer appends a customer login with a chosen ID plus a linked
// account, bypassing ID allocation so tests control the numbers.
func seedCustomer(t *testing.T, stores *recordstore.Stores, userID int32, balance float32) {
	t.Helper()
	_, err := stores.Users.Append(domain.User{
		UserID:   userID,
		Name:     "Test Customer",
		Password: "pw",
		Role:     domain.RoleCustomer,
		IsActive: true,
	})
	require.NoError(t, err)
	_, err = stores.Accounts.Append(domain.Account{
		AccountNo: userID,
		Balance:   balance,
		IsActive:  true,
	})
	require.NoError(t, err)
}

func seedEmployee(t *testing.T, stores *recordstore.Stores, userID int32, active bool) {
	t.Helper()
	_, err := stores.Users.Append(domain.User{
		UserID:   userID,
		Name:     "Test Employee",
		Password: "pw",
		Role:     domain.RoleEmployee,
		IsActive: active,
	})
	require.NoError(t, err)
}
