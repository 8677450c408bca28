package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

type ledgerServiceImpl struct {
	transactions *recordstore.Store[domain.Transaction]
	logger       *slog.Logger
	now          func() time.Time
}

// LedgerOption configures the ledger service.
type LedgerOption func(*ledgerServiceImpl)

// WithClock overrides the timestamp source; tests pin it.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerServiceImpl) { s.now = now }
}

// NewLedgerService creates the transaction ledger over its store.
func NewLedgerService(transactions *recordstore.Store[domain.Transaction], logger *slog.Logger, options ...LedgerOption) ports.LedgerSvc {
	svc := &ledgerServiceImpl{
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ ports.LedgerSvc = (*ledgerServiceImpl)(nil)

// Record appends one entry under the whole-file exclusive lock, making the
// {next ID, append} pair atomic against concurrent writers. IDs come out
// strictly increasing with no gaps.
func (s *ledgerServiceImpl) Record(ctx context.Context, accountID int32, typ domain.TransactionType, amount, oldBalance, newBalance float32) error {
	_, err := s.transactions.Create(func(id int64) (domain.Transaction, error) {
		return domain.Transaction{
			TransactionID: id,
			AccountID:     accountID,
			Type:          typ,
			Amount:        amount,
			OldBalance:    oldBalance,
			NewBalance:    newBalance,
			Timestamp:     s.now().Unix(),
		}, nil
	})
	if err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	s.logger.Debug("transaction recorded",
		slog.Int64("account_id", int64(accountID)),
		slog.String("type", typ.String()))
	return nil
}

// HistoryForAccount scans the whole ledger under a shared lock and returns
// the entries for one account in append order.
func (s *ledgerServiceImpl) HistoryForAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := s.transactions.SnapshotScan(func(_ int64, t domain.Transaction) bool {
		if t.AccountID == accountID {
			out = append(out, t)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("ledger history for account %d: %w", accountID, err)
	}
	return out, nil
}
