package telnet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/services"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

// A failed read or write against a record store aborts the operation
// with one client-facing line; the menu loop keeps running.
func TestStorageFailureKeepsSessionAlive(t *testing.T) {
	err := fmt.Errorf("deposit to account 2000: %w", apperrors.ErrIO)
	assert.True(t, recoverable(err))

	c := &fakeConn{in: strings.NewReader("")}
	term := newTerminal(c)
	(&Server{}).reportError(term, err)
	assert.Equal(t, "Storage error, operation aborted.\n", c.out.String())
}

func TestAddUserRejectsAdminRole(t *testing.T) {
	stores, err := recordstore.OpenAll(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := &fakeConn{in: strings.NewReader("Eve\nsecret\n2\n")}
	sess := &session{
		Server: NewServer(services.NewContainer(stores, 4, logger), logger),
		ctx:    context.Background(),
		t:      newTerminal(c),
		logger: logger,
	}

	err = sess.addUser(domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	n, err := stores.Users.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
