package domain

// Account is a customer bank account. The account number doubles as the
// link to the owner: AccountNo == owner User.UserID.
//
// Balance is float32 because that is the width of the on-disk slot; all
// arithmetic happens in float32 so that stored balances match what a reader
// of the raw file would compute.
type Account struct {
	AccountNo int32
	Balance   float32
	IsJoint   bool
	IsActive  bool
}
