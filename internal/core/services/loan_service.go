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

type loanServiceImpl struct {
	loans    *recordstore.Store[domain.Loan]
	accounts *recordstore.Store[domain.Account]
	users    *recordstore.Store[domain.User]
	ledger   ports.LedgerSvc
	logger   *slog.Logger
}

// NewLoanService creates the loan workflow service. It spans three stores:
// loans for the lifecycle itself, users to verify assignees, and accounts
// (plus the ledger) to credit approvals.
func NewLoanService(
	loans *recordstore.Store[domain.Loan],
	accounts *recordstore.Store[domain.Account],
	users *recordstore.Store[domain.User],
	ledger ports.LedgerSvc,
	logger *slog.Logger,
) ports.LoanSvc {
	return &loanServiceImpl{
		loans:    loans,
		accounts: accounts,
		users:    users,
		ledger:   ledger,
		logger:   logger,
	}
}

var _ ports.LoanSvc = (*loanServiceImpl)(nil)

func (s *loanServiceImpl) Apply(ctx context.Context, customerUserID int32, amount float32) (domain.Loan, error) {
	if amount <= 0 {
		return domain.Loan{}, fmt.Errorf("loan amount must be positive: %w", apperrors.ErrValidation)
	}
	loan, err := s.loans.Create(func(id int64) (domain.Loan, error) {
		return domain.Loan{
			LoanID:             int32(id),
			CustomerUserID:     customerUserID,
			Amount:             amount,
			Status:             domain.LoanPending,
			AssignedEmployeeID: domain.UnassignedEmployee,
		}, nil
	})
	if err != nil {
		return domain.Loan{}, fmt.Errorf("apply for loan: %w", err)
	}
	s.logger.Info("loan application submitted",
		slog.Int64("loan_id", int64(loan.LoanID)),
		slog.Int64("customer_id", int64(customerUserID)),
		slog.Float64("amount", float64(amount)))
	return loan, nil
}

func (s *loanServiceImpl) Open(ctx context.Context) ([]domain.Loan, error) {
	return s.list(func(l domain.Loan) bool {
		return l.Status == domain.LoanPending || l.Status == domain.LoanAssigned
	})
}

func (s *loanServiceImpl) AssignedTo(ctx context.Context, employeeID int32) ([]domain.Loan, error) {
	return s.list(func(l domain.Loan) bool {
		return l.AssignedEmployeeID == employeeID && l.Status == domain.LoanAssigned
	})
}

func (s *loanServiceImpl) list(keep func(domain.Loan) bool) ([]domain.Loan, error) {
	var out []domain.Loan
	err := s.loans.SnapshotScan(func(_ int64, l domain.Loan) bool {
		if keep(l) {
			out = append(out, l)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return out, nil
}

// Assign moves a Pending loan to Assigned. The assignee is verified first,
// outside any loan lock: it must exist, hold the Employee role, and be
// active.
func (s *loanServiceImpl) Assign(ctx context.Context, loanID, employeeID int32) error {
	_, emp, err := s.users.FindByKey(int64(employeeID))
	if err != nil {
		return fmt.Errorf("verify employee %d: %w", employeeID, err)
	}
	if emp.Role != domain.RoleEmployee {
		return fmt.Errorf("user %d is not an employee: %w", employeeID, apperrors.ErrValidation)
	}
	if !emp.IsActive {
		return fmt.Errorf("employee %d: %w", employeeID, apperrors.ErrUserInactive)
	}

	err = s.loans.Update(int64(loanID), func(l *domain.Loan) error {
		if l.Status != domain.LoanPending {
			return fmt.Errorf("loan %d is %s, only pending loans can be assigned: %w",
				loanID, l.Status, apperrors.ErrInvalidTransition)
		}
		l.Status = domain.LoanAssigned
		l.AssignedEmployeeID = employeeID
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("loan assigned",
		slog.Int64("loan_id", int64(loanID)),
		slog.Int64("employee_id", int64(employeeID)))
	return nil
}

// Decide approves or rejects an Assigned loan. The status write and the
// account credit are two separately locked sections, loan first, account
// nested inside the loan lock; there is no cross-file transaction. If the
// process dies between the two writes the stores can disagree, and if the
// owner account is missing the loan stays Approved and the inconsistency
// is surfaced loudly instead of silently.
func (s *loanServiceImpl) Decide(ctx context.Context, loanID, employeeID int32, approve bool) error {
	offset, _, err := s.loans.FindByKey(int64(loanID))
	if err != nil {
		return err
	}

	unlock := s.loans.Lock(offset, true)
	defer unlock()

	loan, err := s.loans.ReadAt(offset)
	if err != nil {
		return err
	}
	if loan.AssignedEmployeeID != employeeID {
		return fmt.Errorf("loan %d is not assigned to employee %d: %w",
			loanID, employeeID, apperrors.ErrPermissionDenied)
	}
	if loan.Status != domain.LoanAssigned {
		return fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, apperrors.ErrInvalidTransition)
	}

	if approve {
		loan.Status = domain.LoanApproved
	} else {
		loan.Status = domain.LoanRejected
	}
	if err := s.loans.WriteAt(offset, loan); err != nil {
		return err
	}
	s.logger.Info("loan decided",
		slog.Int64("loan_id", int64(loanID)),
		slog.String("status", loan.Status.String()))

	if !approve {
		return nil
	}
	if err := s.creditApprovedLoan(ctx, loan); err != nil {
		return err
	}
	return nil
}

func (s *loanServiceImpl) creditApprovedLoan(ctx context.Context, loan domain.Loan) error {
	accOffset, _, err := s.accounts.FindByKey(int64(loan.CustomerUserID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("loan approved but customer account not found",
				slog.Int64("loan_id", int64(loan.LoanID)),
				slog.Int64("customer_id", int64(loan.CustomerUserID)))
			return fmt.Errorf("loan %d approved but account %d missing: %w",
				loan.LoanID, loan.CustomerUserID, apperrors.ErrInconsistency)
		}
		return err
	}

	unlock := s.accounts.Lock(accOffset, true)
	defer unlock()

	acc, err := s.accounts.ReadAt(accOffset)
	if err != nil {
		return err
	}
	oldBalance := acc.Balance
	acc.Balance += loan.Amount
	if err := s.accounts.WriteAt(accOffset, acc); err != nil {
		return err
	}
	if err := s.ledger.Record(ctx, acc.AccountNo, domain.TxLoanDeposit, loan.Amount, oldBalance, acc.Balance); err != nil {
		s.logger.Error("ledger append failed for loan deposit",
			slog.String("error", err.Error()),
			slog.Int64("loan_id", int64(loan.LoanID)))
	}
	s.logger.Info("loan funds credited",
		slog.Int64("loan_id", int64(loan.LoanID)),
		slog.Int64("account_no", int64(acc.AccountNo)),
		slog.Float64("new_balance", float64(acc.Balance)))
	return nil
}
