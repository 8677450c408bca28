// Package ports defines the service interfaces the transports consume.
// Every operation takes already-parsed primitive arguments and returns
// domain values or errors; prompting, parsing and formatting stay in the
// transport layer.
package ports

import (
	"context"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
)

// AuthSvc authenticates logins against the user store.
type AuthSvc interface {
	// Login verifies userID/password equality and that the login is active.
	Login(ctx context.Context, userID int32, password string) (domain.User, error)
	// ChangePassword overwrites the user's password in place.
	ChangePassword(ctx context.Context, userID int32, newPassword string) error
}

// UserSvc manages login records.
type UserSvc interface {
	CreateUser(ctx context.Context, name, password string, role domain.Role) (domain.User, error)
	// ModifyUser updates name and/or password; blank fields keep the old
	// value. Employees may modify only customers.
	ModifyUser(ctx context.Context, actorRole domain.Role, userID int32, newName, newPassword string) error
	SetUserActive(ctx context.Context, userID int32, active bool) error
	GetUser(ctx context.Context, userID int32) (domain.User, error)
}

// AccountSvc manages customer bank accounts and their balances.
type AccountSvc interface {
	// CreateAccount opens the account linked to ownerUserID; the account
	// number is the owner's user ID.
	CreateAccount(ctx context.Context, ownerUserID int32, initialBalance float32, isJoint bool) (domain.Account, error)
	Deposit(ctx context.Context, accountNo int32, amount float32) (domain.Account, error)
	Withdraw(ctx context.Context, accountNo int32, amount float32) (domain.Account, error)
	Balance(ctx context.Context, accountNo int32) (float32, error)
	Details(ctx context.Context, accountNo int32) (domain.Account, error)
	SetAccountActive(ctx context.Context, accountNo int32, active bool) error
}

// LedgerSvc is the append-only audit log of balance changes.
type LedgerSvc interface {
	Record(ctx context.Context, accountID int32, typ domain.TransactionType, amount, oldBalance, newBalance float32) error
	HistoryForAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error)
}

// LoanSvc drives the loan lifecycle: Pending -> Assigned -> Approved|Rejected.
type LoanSvc interface {
	Apply(ctx context.Context, customerUserID int32, amount float32) (domain.Loan, error)
	// Open lists loans still in flight (pending or assigned).
	Open(ctx context.Context) ([]domain.Loan, error)
	AssignedTo(ctx context.Context, employeeID int32) ([]domain.Loan, error)
	// Assign moves a Pending loan to Assigned for a verified active employee.
	Assign(ctx context.Context, loanID, employeeID int32) error
	// Decide approves or rejects an Assigned loan; only the assigned
	// employee may decide it. Approval credits the customer's account and
	// appends a ledger entry.
	Decide(ctx context.Context, loanID, employeeID int32, approve bool) error
}

// FeedbackSvc stores customer feedback, append-only.
type FeedbackSvc interface {
	Submit(ctx context.Context, accountID int32, message string) error
	List(ctx context.Context) ([]domain.Feedback, error)
}

// SessionRegistry enforces one active session per user across the process.
type SessionRegistry interface {
	// Claim reserves a slot for userID, or fails with ErrAlreadyLoggedIn /
	// ErrSessionCapacity.
	Claim(userID int32) (int, error)
	// Release frees the slot only if it still belongs to userID.
	Release(slot int, userID int32)
	// Active returns the number of live sessions.
	Active() int
}

// Container bundles every service the transports need.
type Container struct {
	Auth     AuthSvc
	Users    UserSvc
	Accounts AccountSvc
	Loans    LoanSvc
	Ledger   LedgerSvc
	Feedback FeedbackSvc
	Sessions SessionRegistry
}
