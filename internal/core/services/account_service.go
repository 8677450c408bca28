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

type accountServiceImpl struct {
	accounts *recordstore.Store[domain.Account]
	ledger   ports.LedgerSvc
	logger   *slog.Logger
}

// NewAccountService creates the account service. Every successful balance
// change appends exactly one ledger entry whose old/new balances match the
// account write, while the account record lock is still held.
func NewAccountService(accounts *recordstore.Store[domain.Account], ledger ports.LedgerSvc, logger *slog.Logger) ports.AccountSvc {
	return &accountServiceImpl{accounts: accounts, ledger: ledger, logger: logger}
}

var _ ports.AccountSvc = (*accountServiceImpl)(nil)

// CreateAccount opens the account for ownerUserID. The account number is
// the owner's user ID: that is the linkage policy for the whole system,
// so a duplicate account number means the customer already has an account.
func (s *accountServiceImpl) CreateAccount(ctx context.Context, ownerUserID int32, initialBalance float32, isJoint bool) (domain.Account, error) {
	if initialBalance < 0 {
		return domain.Account{}, fmt.Errorf("negative initial balance: %w", apperrors.ErrValidation)
	}
	unlock := s.accounts.LockFile(true)
	defer unlock()

	if _, _, err := s.accounts.FindByKey(int64(ownerUserID)); err == nil {
		return domain.Account{}, fmt.Errorf("account %d: %w", ownerUserID, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Account{}, err
	}

	acc := domain.Account{
		AccountNo: ownerUserID,
		Balance:   initialBalance,
		IsJoint:   isJoint,
		IsActive:  true,
	}
	if _, err := s.accounts.Append(acc); err != nil {
		return domain.Account{}, fmt.Errorf("create account %d: %w", ownerUserID, err)
	}
	s.logger.Info("account created",
		slog.Int64("account_no", int64(acc.AccountNo)),
		slog.Bool("joint", isJoint))
	return acc, nil
}

func (s *accountServiceImpl) Deposit(ctx context.Context, accountNo int32, amount float32) (domain.Account, error) {
	return s.mutateBalance(ctx, accountNo, amount, domain.TxDeposit)
}

func (s *accountServiceImpl) Withdraw(ctx context.Context, accountNo int32, amount float32) (domain.Account, error) {
	return s.mutateBalance(ctx, accountNo, amount, domain.TxWithdrawal)
}

// mutateBalance is the one read-modify-write path for balances: locate the
// slot, take its exclusive record lock, re-read, decide, write back, then
// append the ledger entry before the lock is released. A failed ledger
// append does not roll the balance back; it is reported and logged so the
// operator knows the audit trail has a hole.
func (s *accountServiceImpl) mutateBalance(ctx context.Context, accountNo int32, amount float32, typ domain.TransactionType) (domain.Account, error) {
	if amount <= 0 {
		return domain.Account{}, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	offset, _, err := s.accounts.FindByKey(int64(accountNo))
	if err != nil {
		return domain.Account{}, err
	}

	unlock := s.accounts.Lock(offset, true)
	defer unlock()

	acc, err := s.accounts.ReadAt(offset)
	if err != nil {
		return domain.Account{}, err
	}
	if !acc.IsActive {
		return domain.Account{}, apperrors.ErrAccountInactive
	}

	oldBalance := acc.Balance
	switch typ {
	case domain.TxDeposit:
		acc.Balance += amount
	case domain.TxWithdrawal:
		if amount > acc.Balance {
			return domain.Account{}, apperrors.ErrInsufficientFunds
		}
		acc.Balance -= amount
	default:
		return domain.Account{}, fmt.Errorf("transaction type %d: %w", typ, apperrors.ErrValidation)
	}

	if err := s.accounts.WriteAt(offset, acc); err != nil {
		return domain.Account{}, err
	}
	if err := s.ledger.Record(ctx, accountNo, typ, amount, oldBalance, acc.Balance); err != nil {
		s.logger.Error("ledger append failed, balance change not rolled back",
			slog.String("error", err.Error()),
			slog.Int64("account_no", int64(accountNo)),
			slog.String("type", typ.String()))
	}
	s.logger.Info("balance changed",
		slog.Int64("account_no", int64(accountNo)),
		slog.String("type", typ.String()),
		slog.Float64("amount", float64(amount)),
		slog.Float64("new_balance", float64(acc.Balance)))
	return acc, nil
}

// Balance re-reads the record under a shared record lock so a concurrent
// in-place write cannot be observed half done.
func (s *accountServiceImpl) Balance(ctx context.Context, accountNo int32) (float32, error) {
	var balance float32
	err := s.accounts.View(int64(accountNo), func(acc domain.Account) error {
		if !acc.IsActive {
			return apperrors.ErrAccountInactive
		}
		balance = acc.Balance
		return nil
	})
	return balance, err
}

func (s *accountServiceImpl) Details(ctx context.Context, accountNo int32) (domain.Account, error) {
	var out domain.Account
	err := s.accounts.View(int64(accountNo), func(acc domain.Account) error {
		out = acc
		return nil
	})
	return out, err
}

func (s *accountServiceImpl) SetAccountActive(ctx context.Context, accountNo int32, active bool) error {
	err := s.accounts.Update(int64(accountNo), func(acc *domain.Account) error {
		acc.IsActive = active
		return nil
	})
	if err != nil {
		return fmt.Errorf("set account %d active=%t: %w", accountNo, active, err)
	}
	s.logger.Info("account activation changed",
		slog.Int64("account_no", int64(accountNo)), slog.Bool("active", active))
	return nil
}
