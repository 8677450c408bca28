package telnet

import (
	"errors"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
)

func (s *session) customerMenu() error {
	// Linkage policy: the customer's account number is their user ID.
	account, err := s.svcs.Accounts.Details(s.ctx, s.user.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.t.printf("You are a customer but have no bank account. Contact an employee.\n")
			return nil
		}
		s.reportError(s.t, err)
		return nil
	}

	for {
		s.t.printf("\n--- Customer Menu (User: %s, Account: %d) ---\n", s.user.Name, account.AccountNo)
		s.t.printf("1. Deposit\n2. Withdraw\n3. Balance Enquiry\n4. Change Password\n5. View Account Details\n6. Apply for Loan\n7. My Transactions\n8. Submit Feedback\n9. Exit\n")
		choice, err := s.t.promptInt32("Choice: ")
		if err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
		if choice == 9 {
			s.t.printf("Goodbye.\n")
			return nil
		}

		// A deactivated account blocks everything except a password change.
		if choice != 4 {
			fresh, derr := s.svcs.Accounts.Details(s.ctx, account.AccountNo)
			if derr == nil && !fresh.IsActive {
				s.t.printf("Your bank account is deactivated. Please contact a manager.\n")
				continue
			}
		}

		if err := s.customerAction(choice, account.AccountNo); err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
	}
}

func (s *session) customerAction(choice int32, accountNo int32) error {
	switch choice {
	case 1:
		amount, err := s.t.promptFloat32("Enter amount to deposit: ")
		if err != nil {
			return err
		}
		acc, err := s.svcs.Accounts.Deposit(s.ctx, accountNo, amount)
		if err != nil {
			return err
		}
		s.t.printf("Deposit successful. New balance: %.2f\n", acc.Balance)
	case 2:
		amount, err := s.t.promptFloat32("Enter amount to withdraw: ")
		if err != nil {
			return err
		}
		acc, err := s.svcs.Accounts.Withdraw(s.ctx, accountNo, amount)
		if err != nil {
			return err
		}
		s.t.printf("Withdrawal successful. New balance: %.2f\n", acc.Balance)
	case 3:
		balance, err := s.svcs.Accounts.Balance(s.ctx, accountNo)
		if err != nil {
			return err
		}
		s.t.printf("Your current balance: %.2f\n", balance)
	case 4:
		password, err := s.t.prompt("Enter new password: ")
		if err != nil {
			return err
		}
		if err := s.svcs.Auth.ChangePassword(s.ctx, s.user.UserID, password); err != nil {
			return err
		}
		s.t.printf("Password updated.\n")
	case 5:
		acc, err := s.svcs.Accounts.Details(s.ctx, accountNo)
		if err != nil {
			return err
		}
		joint := "No"
		if acc.IsJoint {
			joint = "Yes"
		}
		s.t.printf("Account No: %d\nBalance: %.2f\nJoint: %s\n", acc.AccountNo, acc.Balance, joint)
	case 6:
		amount, err := s.t.promptFloat32("Enter loan amount: ")
		if err != nil {
			return err
		}
		loan, err := s.svcs.Loans.Apply(s.ctx, s.user.UserID, amount)
		if err != nil {
			return err
		}
		s.t.printf("Loan application for %.2f submitted. Loan ID: %d\n", loan.Amount, loan.LoanID)
	case 7:
		return s.printTransactions(accountNo)
	case 8:
		message, err := s.t.prompt("Enter your feedback: ")
		if err != nil {
			return err
		}
		if err := s.svcs.Feedback.Submit(s.ctx, accountNo, message); err != nil {
			return err
		}
		s.t.printf("Thank you for your feedback.\n")
	default:
		s.t.printf("Unknown choice.\n")
	}
	return nil
}

func (s *session) printTransactions(accountNo int32) error {
	history, err := s.svcs.Ledger.HistoryForAccount(s.ctx, accountNo)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		s.t.printf("No transactions on record.\n")
		return nil
	}
	s.t.printf("\nID   | Type         | Amount    | Old Bal   | New Bal\n")
	s.t.printf("------------------------------------------------------\n")
	for _, tx := range history {
		s.t.printf("%-4d | %-12s | %-9.2f | %-9.2f | %-9.2f\n",
			tx.TransactionID, tx.Type, tx.Amount, tx.OldBalance, tx.NewBalance)
	}
	return nil
}
