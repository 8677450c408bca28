package domain

// LoanStatus is the lifecycle state of a loan application.
// Transitions are one-directional: Pending -> Assigned -> Approved|Rejected.
type LoanStatus int32

const (
	LoanPending  LoanStatus = 1
	LoanAssigned LoanStatus = 2
	LoanApproved LoanStatus = 3
	LoanRejected LoanStatus = 4
)

func (s LoanStatus) String() string {
	switch s {
	case LoanPending:
		return "PENDING"
	case LoanAssigned:
		return "ASSIGNED"
	case LoanApproved:
		return "APPROVED"
	case LoanRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the status permits no further transitions.
func (s LoanStatus) Terminal() bool {
	return s == LoanApproved || s == LoanRejected
}

// UnassignedEmployee marks a loan nobody has been assigned to yet.
const UnassignedEmployee int32 = -1

// Loan is a customer loan application.
type Loan struct {
	LoanID             int32
	CustomerUserID     int32
	Amount             float32
	Status             LoanStatus
	AssignedEmployeeID int32
}
