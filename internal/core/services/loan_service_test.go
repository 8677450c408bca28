package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

type LoanServiceTestSuite struct {
	suite.Suite
	svcs   ports.Container
	stores *recordstore.Stores
	ctx    context.Context
}

func (s *LoanServiceTestSuite) SetupTest() {
	s.svcs, s.stores = newFixture(s.T())
	s.ctx = context.Background()
	seedCustomer(s.T(), s.stores, 2000, 150)
	seedEmployee(s.T(), s.stores, 3000, true)
}

func (s *LoanServiceTestSuite) apply(amount float32) domain.Loan {
	loan, err := s.svcs.Loans.Apply(s.ctx, 2000, amount)
	s.Require().NoError(err)
	return loan
}

func (s *LoanServiceTestSuite) TestApplyCreatesPendingLoan() {
	loan := s.apply(500)
	s.Equal(domain.LoanPending, loan.Status)
	s.Equal(domain.UnassignedEmployee, loan.AssignedEmployeeID)
	s.Equal(int32(1), loan.LoanID, "loan IDs start at 1")

	_, err := s.svcs.Loans.Apply(s.ctx, 2000, -1)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LoanServiceTestSuite) TestAssignVerifiesEmployee() {
	loan := s.apply(500)

	err := s.svcs.Loans.Assign(s.ctx, loan.LoanID, 2000)
	s.ErrorIs(err, apperrors.ErrValidation, "customers cannot be assignees")

	err = s.svcs.Loans.Assign(s.ctx, loan.LoanID, 9999)
	s.ErrorIs(err, apperrors.ErrNotFound)

	seedEmployee(s.T(), s.stores, 3001, false)
	err = s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3001)
	s.ErrorIs(err, apperrors.ErrUserInactive)

	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))
	open, err := s.svcs.Loans.AssignedTo(s.ctx, 3000)
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(domain.LoanAssigned, open[0].Status)
}

func (s *LoanServiceTestSuite) TestOnlyPendingLoansAssignable() {
	loan := s.apply(500)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))

	err := s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000)
	s.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *LoanServiceTestSuite) TestDecideOnlyByAssignee() {
	loan := s.apply(500)

	err := s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, true)
	s.ErrorIs(err, apperrors.ErrPermissionDenied, "unassigned loan has no deciding employee")

	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))
	seedEmployee(s.T(), s.stores, 3001, true)
	err = s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3001, true)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *LoanServiceTestSuite) TestApprovalCreditsAccountAndLedger() {
	loan := s.apply(500)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))
	s.Require().NoError(s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, true))

	balance, err := s.svcs.Accounts.Balance(s.ctx, 2000)
	s.Require().NoError(err)
	s.Equal(float32(650), balance)

	history, err := s.svcs.Ledger.HistoryForAccount(s.ctx, 2000)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(domain.TxLoanDeposit, history[0].Type)
	s.Equal(float32(150), history[0].OldBalance)
	s.Equal(float32(650), history[0].NewBalance)
}

func (s *LoanServiceTestSuite) TestRejectionHasNoSideEffects() {
	loan := s.apply(500)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))
	s.Require().NoError(s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, false))

	balance, err := s.svcs.Accounts.Balance(s.ctx, 2000)
	s.Require().NoError(err)
	s.Equal(float32(150), balance)

	history, err := s.svcs.Ledger.HistoryForAccount(s.ctx, 2000)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *LoanServiceTestSuite) TestTerminalStatesImmutable() {
	loan := s.apply(500)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))
	s.Require().NoError(s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, false))

	s.ErrorIs(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000), apperrors.ErrInvalidTransition)
	s.ErrorIs(s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, true), apperrors.ErrInvalidTransition)

	_, rec, err := s.stores.Loans.FindByKey(int64(loan.LoanID))
	s.Require().NoError(err)
	s.Equal(domain.LoanRejected, rec.Status, "failed transition must leave the record unchanged")
}

// A loan whose customer has no account still becomes Approved; the miss is
// surfaced as a critical inconsistency instead of being rolled back.
func (s *LoanServiceTestSuite) TestApprovalWithMissingAccountIsLoudNotRolledBack() {
	_, err := s.stores.Users.Append(domain.User{
		UserID: 2001, Name: "No Account", Password: "pw",
		Role: domain.RoleCustomer, IsActive: true,
	})
	s.Require().NoError(err)

	loan, err := s.svcs.Loans.Apply(s.ctx, 2001, 300)
	s.Require().NoError(err)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, loan.LoanID, 3000))

	err = s.svcs.Loans.Decide(s.ctx, loan.LoanID, 3000, true)
	s.ErrorIs(err, apperrors.ErrInconsistency)

	_, rec, err := s.stores.Loans.FindByKey(int64(loan.LoanID))
	s.Require().NoError(err)
	s.Equal(domain.LoanApproved, rec.Status)
}

func (s *LoanServiceTestSuite) TestOpenListsPendingAndAssigned() {
	first := s.apply(100)
	s.apply(200)
	s.Require().NoError(s.svcs.Loans.Assign(s.ctx, first.LoanID, 3000))

	open, err := s.svcs.Loans.Open(s.ctx)
	s.Require().NoError(err)
	s.Len(open, 2)

	s.Require().NoError(s.svcs.Loans.Decide(s.ctx, first.LoanID, 3000, false))
	open, err = s.svcs.Loans.Open(s.ctx)
	s.Require().NoError(err)
	s.Len(open, 1)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
