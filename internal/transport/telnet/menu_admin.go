package telnet

import (
	"fmt"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
)

func (s *session) adminMenu() error {
	for {
		s.t.printf("\n--- Admin Menu ---\n1. Add User\n2. Deactivate User Login\n3. Activate User Login\n4. Modify User\n5. Search User\n6. Add Bank Account for Customer\n7. Exit\n")
		choice, err := s.t.promptInt32("Choice: ")
		if err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
		if choice == 7 {
			s.t.printf("Goodbye.\n")
			return nil
		}
		if err := s.adminAction(choice); err != nil {
			if recoverable(err) {
				s.reportError(s.t, err)
				continue
			}
			return err
		}
	}
}

func (s *session) adminAction(choice int32) error {
	switch choice {
	case 1:
		return s.addUser(domain.RoleAdmin)
	case 2:
		return s.setUserActive(false)
	case 3:
		return s.setUserActive(true)
	case 4:
		return s.modifyUser(domain.RoleAdmin)
	case 5:
		userID, err := s.t.promptInt32("Enter UserID to search: ")
		if err != nil {
			return err
		}
		user, err := s.svcs.Users.GetUser(s.ctx, userID)
		if err != nil {
			return err
		}
		active := "No"
		if user.IsActive {
			active = "Yes"
		}
		s.t.printf("UserID: %d\nName: %s\nRole: %s\nActive: %s\n", user.UserID, user.Name, user.Role, active)
		return nil
	case 6:
		userID, err := s.t.promptInt32("Enter Customer UserID to create account for: ")
		if err != nil {
			return err
		}
		return s.addBankAccount(userID)
	default:
		s.t.printf("Unknown choice.\n")
		return nil
	}
}

// addUser prompts for a new login. Admins pick the role; employees only
// ever create customers.
func (s *session) addUser(actorRole domain.Role) error {
	name, err := s.t.prompt("Enter name for new user: ")
	if err != nil {
		return err
	}
	password, err := s.t.prompt("Enter password for new user: ")
	if err != nil {
		return err
	}
	role := domain.RoleCustomer
	if actorRole == domain.RoleAdmin {
		r, err := s.t.promptInt32("Enter role (1=Customer, 3=Employee, 4=Manager): ")
		if err != nil {
			return err
		}
		role = domain.Role(r)
		// Only the seeded admin login exists; the menu never mints another.
		if role == domain.RoleAdmin {
			return fmt.Errorf("admin logins cannot be created here: %w", apperrors.ErrValidation)
		}
	}
	user, err := s.svcs.Users.CreateUser(s.ctx, name, password, role)
	if err != nil {
		return err
	}
	s.t.printf("User %d (%s) added successfully!\n", user.UserID, user.Name)
	if actorRole == domain.RoleEmployee {
		s.t.printf("Now creating bank account for the new customer...\n")
		return s.addBankAccount(user.UserID)
	}
	return nil
}

func (s *session) addBankAccount(ownerUserID int32) error {
	owner, err := s.svcs.Users.GetUser(s.ctx, ownerUserID)
	if err != nil {
		return err
	}
	if owner.Role != domain.RoleCustomer {
		s.t.printf("User %d is not a customer.\n", ownerUserID)
		return nil
	}
	balance, err := s.t.promptFloat32("Enter initial balance for new account: ")
	if err != nil {
		return err
	}
	jointChoice, err := s.t.promptInt32("Is joint account? (0=No / 1=Yes): ")
	if err != nil {
		return err
	}
	acc, err := s.svcs.Accounts.CreateAccount(s.ctx, ownerUserID, balance, jointChoice == 1)
	if err != nil {
		return err
	}
	s.t.printf("Bank account %d created successfully!\n", acc.AccountNo)
	return nil
}

func (s *session) setUserActive(active bool) error {
	userID, err := s.t.promptInt32("Enter UserID to modify: ")
	if err != nil {
		return err
	}
	if err := s.svcs.Users.SetUserActive(s.ctx, userID, active); err != nil {
		return err
	}
	if active {
		s.t.printf("User login activated.\n")
	} else {
		s.t.printf("User login deactivated.\n")
	}
	return nil
}

// modifyUser updates another user's name/password; blank input keeps the
// old value.
func (s *session) modifyUser(actorRole domain.Role) error {
	userID, err := s.t.promptInt32("Enter UserID to modify: ")
	if err != nil {
		return err
	}
	password, err := s.t.prompt("Enter new password (leave blank to keep): ")
	if err != nil {
		return err
	}
	name, err := s.t.prompt("Enter new name (leave blank to keep): ")
	if err != nil {
		return err
	}
	if err := s.svcs.Users.ModifyUser(s.ctx, actorRole, userID, name, password); err != nil {
		return err
	}
	s.t.printf("User updated.\n")
	return nil
}
