package domain

// TransactionType classifies a ledger entry.
type TransactionType int32

const (
	TxDeposit     TransactionType = 1
	TxWithdrawal  TransactionType = 2
	TxLoanDeposit TransactionType = 3
)

func (t TransactionType) String() string {
	switch t {
	case TxDeposit:
		return "DEPOSIT"
	case TxWithdrawal:
		return "WITHDRAWAL"
	case TxLoanDeposit:
		return "LOAN_DEPOSIT"
	default:
		return "UNKNOWN"
	}
}

// Transaction is one immutable ledger entry. Exactly one is appended per
// balance-affecting operation, with OldBalance/NewBalance matching the
// account write it accompanies.
type Transaction struct {
	TransactionID int64
	AccountID     int32
	Type          TransactionType
	Amount        float32
	OldBalance    float32
	NewBalance    float32
	Timestamp     int64 // epoch seconds
}
