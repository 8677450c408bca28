package telnet

import (
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
)

func (s *session) employeeMenu() error {
	for {
		s.t.printf("\n--- Employee Menu ---\n1. Add New Customer\n2. Modify Customer Details\n3. Process Assigned Loans\n4. View Customer Transactions\n5. Exit\n")
		choice, err := s.t.promptInt32("Choice: ")
		if err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
		if choice == 5 {
			s.t.printf("Goodbye.\n")
			return nil
		}
		if err := s.employeeAction(choice); err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
	}
}

func (s *session) employeeAction(choice int32) error {
	switch choice {
	case 1:
		return s.addUser(domain.RoleEmployee)
	case 2:
		return s.modifyUser(domain.RoleEmployee)
	case 3:
		return s.processLoans()
	case 4:
		accountNo, err := s.t.promptInt32("Enter Customer Account Number: ")
		if err != nil {
			return err
		}
		return s.printTransactions(accountNo)
	default:
		s.t.printf("Unknown choice.\n")
		return nil
	}
}

// processLoans lists the loans assigned to this employee and walks one of
// them through approve/reject.
func (s *session) processLoans() error {
	loans, err := s.svcs.Loans.AssignedTo(s.ctx, s.user.UserID)
	if err != nil {
		return err
	}
	if len(loans) == 0 {
		s.t.printf("No loans are currently assigned to you.\n")
		return nil
	}

	s.t.printf("\n--- Loans Assigned to You ---\n")
	s.t.printf("ID  | Customer | Amount    | Status\n")
	s.t.printf("----------------------------------------\n")
	for _, l := range loans {
		s.t.printf("%-3d | %-8d | %-9.2f | %s\n", l.LoanID, l.CustomerUserID, l.Amount, l.Status)
	}

	loanID, err := s.t.promptInt32("\nEnter Loan ID to process: ")
	if err != nil {
		return err
	}
	action, err := s.t.promptInt32("Choose action (3=Approve, 4=Reject): ")
	if err != nil {
		return err
	}
	if action != 3 && action != 4 {
		s.t.printf("Invalid action. Must be 3 (Approve) or 4 (Reject).\n")
		return nil
	}

	if err := s.svcs.Loans.Decide(s.ctx, loanID, s.user.UserID, action == 3); err != nil {
		return err
	}
	if action == 3 {
		s.t.printf("Loan approved and funds deposited to the customer's account.\n")
	} else {
		s.t.printf("Loan rejected.\n")
	}
	return nil
}
