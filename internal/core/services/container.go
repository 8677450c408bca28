package services

import (
	"log/slog"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

// NewContainer wires every service over the opened stores. sessionCapacity
// bounds concurrent logins across the whole process.
func NewContainer(stores *recordstore.Stores, sessionCapacity int, logger *slog.Logger) ports.Container {
	ledger := NewLedgerService(stores.Transactions, logger)
	return ports.Container{
		Auth:     NewAuthService(stores.Users, logger),
		Users:    NewUserService(stores.Users, logger),
		Accounts: NewAccountService(stores.Accounts, ledger, logger),
		Loans:    NewLoanService(stores.Loans, stores.Accounts, stores.Users, ledger, logger),
		Ledger:   ledger,
		Feedback: NewFeedbackService(stores.Feedback, logger),
		Sessions: NewSessionRegistry(sessionCapacity),
	}
}
