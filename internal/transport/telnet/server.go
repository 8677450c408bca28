// Package telnet is the line-oriented TCP transport: one goroutine per
// connection, blocking prompts, role menus dispatching into the service
// layer. It owns every byte that reaches the client; services only return
// values and errors.
package telnet

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
)

// Server accepts connections and runs each client session to completion.
type Server struct {
	svcs   ports.Container
	logger *slog.Logger
}

func NewServer(svcs ports.Container, logger *slog.Logger) *Server {
	return &Server{svcs: svcs, logger: logger}
}

// Serve accepts until the listener is closed.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", slog.String("error", err.Error()))
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With(
		slog.String("conn_id", uuid.NewString()),
		slog.String("remote", conn.RemoteAddr().String()),
	)
	logger.Info("connection accepted")
	defer logger.Info("connection closed")

	ctx := context.Background()
	t := newTerminal(conn)
	t.printf("Welcome to IIITB Bank\n")

	user, err := s.login(ctx, t)
	if err != nil {
		return
	}

	slot, err := s.svcs.Sessions.Claim(user.UserID)
	if err != nil {
		s.reportError(t, err)
		logger.Warn("session claim rejected",
			slog.Int64("user_id", int64(user.UserID)),
			slog.String("reason", err.Error()))
		return
	}
	defer s.svcs.Sessions.Release(slot, user.UserID)

	sess := &session{Server: s, ctx: ctx, t: t, user: user, logger: logger}
	switch user.Role {
	case domain.RoleAdmin:
		err = sess.adminMenu()
	case domain.RoleManager:
		err = sess.managerMenu()
	case domain.RoleEmployee:
		err = sess.employeeMenu()
	case domain.RoleCustomer:
		err = sess.customerMenu()
	default:
		t.printf("Unknown role; contact the administrator.\n")
	}
	if err != nil {
		logger.Info("session ended by disconnect")
	}
}

// login runs the credential exchange. A failed login ends the connection,
// as the original server did.
func (s *Server) login(ctx context.Context, t *terminal) (domain.User, error) {
	userID, err := t.promptInt32("Enter UserID: ")
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			t.printf("Login failed: UserID must be a number.\n")
		}
		return domain.User{}, err
	}
	password, err := t.prompt("Enter password: ")
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.svcs.Auth.Login(ctx, userID, password)
	if err != nil {
		s.reportError(t, err)
		return domain.User{}, err
	}
	t.printf("Login successful!\n")
	return user, nil
}

// session is one authenticated client, shared by the menu methods.
type session struct {
	*Server
	ctx    context.Context
	t      *terminal
	user   domain.User
	logger *slog.Logger
}

// reportError turns a service error into one client-facing line. Every
// error stops only the current operation; the menu loop continues.
func (s *Server) reportError(t *terminal, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		t.printf("Invalid input.\n")
	case errors.Is(err, apperrors.ErrNotFound):
		t.printf("Not found.\n")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		t.printf("Invalid login: wrong UserID or password.\n")
	case errors.Is(err, apperrors.ErrUserInactive):
		t.printf("This user login is deactivated.\n")
	case errors.Is(err, apperrors.ErrAccountInactive):
		t.printf("This bank account is deactivated. Please contact a manager.\n")
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		t.printf("Insufficient balance.\n")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		t.printf("Permission denied.\n")
	case errors.Is(err, apperrors.ErrDuplicate):
		t.printf("Already exists.\n")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		t.printf("This loan can no longer be changed that way.\n")
	case errors.Is(err, apperrors.ErrAlreadyLoggedIn):
		t.printf("This user is already logged in elsewhere.\n")
	case errors.Is(err, apperrors.ErrSessionCapacity):
		t.printf("Server is full, try again later.\n")
	case errors.Is(err, apperrors.ErrInconsistency):
		t.printf("CRITICAL: %v\n", err)
	case errors.Is(err, apperrors.ErrIO):
		t.printf("Storage error, operation aborted.\n")
	default:
		t.printf("Server error, operation aborted.\n")
	}
}

// recoverable reports whether the menu loop should continue after err.
// Parse failures, service rejections and storage failures are recoverable;
// terminal read/write errors are a disconnect and unwind the session.
func recoverable(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrPermissionDenied) ||
		errors.Is(err, apperrors.ErrInsufficientFunds) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrUserInactive) ||
		errors.Is(err, apperrors.ErrAccountInactive) ||
		errors.Is(err, apperrors.ErrInvalidTransition) ||
		errors.Is(err, apperrors.ErrInconsistency) ||
		errors.Is(err, apperrors.ErrIO)
}
