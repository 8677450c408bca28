package telnet

func (s *session) managerMenu() error {
	for {
		s.t.printf("\n--- Manager Menu ---\n1. Activate Customer Account\n2. Deactivate Customer Account\n3. View Open Loans\n4. Assign Loan\n5. View Feedback\n6. Exit\n")
		choice, err := s.t.promptInt32("Choice: ")
		if err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
		if choice == 6 {
			s.t.printf("Goodbye.\n")
			return nil
		}
		if err := s.managerAction(choice); err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
	}
}

func (s *session) managerAction(choice int32) error {
	switch choice {
	case 1, 2:
		accountNo, err := s.t.promptInt32("Enter Customer Account Number to modify: ")
		if err != nil {
			return err
		}
		active := choice == 1
		if err := s.svcs.Accounts.SetAccountActive(s.ctx, accountNo, active); err != nil {
			return err
		}
		if active {
			s.t.printf("Bank account activated.\n")
		} else {
			s.t.printf("Bank account deactivated.\n")
		}
	case 3:
		loans, err := s.svcs.Loans.Open(s.ctx)
		if err != nil {
			return err
		}
		if len(loans) == 0 {
			s.t.printf("No pending or assigned loans found.\n")
			return nil
		}
		s.t.printf("\n--- Loan Status Overview ---\n")
		s.t.printf("ID  | Customer | Amount    | Status      | Assigned To\n")
		s.t.printf("-------------------------------------------------------\n")
		for _, l := range loans {
			s.t.printf("%-3d | %-8d | %-9.2f | %-11s | %d\n",
				l.LoanID, l.CustomerUserID, l.Amount, l.Status, l.AssignedEmployeeID)
		}
	case 4:
		loanID, err := s.t.promptInt32("Enter Loan ID to assign: ")
		if err != nil {
			return err
		}
		employeeID, err := s.t.promptInt32("Enter Employee ID to assign this loan to: ")
		if err != nil {
			return err
		}
		if err := s.svcs.Loans.Assign(s.ctx, loanID, employeeID); err != nil {
			return err
		}
		s.t.printf("Loan assigned successfully.\n")
	case 5:
		entries, err := s.svcs.Feedback.List(s.ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			s.t.printf("No feedback on record.\n")
			return nil
		}
		for _, f := range entries {
			s.t.printf("[account %d] %s\n", f.AccountID, f.Message)
		}
	default:
		s.t.printf("Unknown choice.\n")
	}
	return nil
}
