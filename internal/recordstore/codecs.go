package recordstore

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
)

// On-disk layouts are packed little-endian with no padding and no file
// header. Strings occupy NUL-padded fixed slots, are truncated to one byte
// short of the slot on write, and decode up to the first NUL.

// Record file names inside the data directory.
const (
	UsersFile        = "users.dat"
	AccountsFile     = "accounts.dat"
	LoansFile        = "loans.dat"
	TransactionsFile = "transactions.dat"
	FeedbackFile     = "feedback.dat"
)

// NextID floors per store.
const (
	UserIDFloor        = 1000
	AccountNoFloor     = 5000
	LoanIDFloor        = 0
	TransactionIDFloor = 0
)

func putFixedString(buf []byte, s string) {
	n := copy(buf[:len(buf)-1], s)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
}

func fixedString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func putFloat32(buf []byte, f float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
}

func float32At(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

func putBool(buf []byte, b bool) {
	var v uint32
	if b {
		v = 1
	}
	binary.LittleEndian.PutUint32(buf, v)
}

func boolAt(buf []byte) bool {
	return binary.LittleEndian.Uint32(buf) != 0
}

// UserCodec packs domain.User into its 82-byte slot.
var UserCodec = Codec[domain.User]{
	Size: 4 + domain.UserNameLen + domain.UserPasswordLen + 4 + 4,
	Key:  func(u domain.User) int64 { return int64(u.UserID) },
	Marshal: func(u domain.User, buf []byte) {
		binary.LittleEndian.PutUint32(buf[0:], uint32(u.UserID))
		putFixedString(buf[4:4+domain.UserNameLen], u.Name)
		putFixedString(buf[54:54+domain.UserPasswordLen], u.Password)
		binary.LittleEndian.PutUint32(buf[74:], uint32(u.Role))
		putBool(buf[78:], u.IsActive)
	},
	Unmarshal: func(buf []byte) domain.User {
		return domain.User{
			UserID:   int32(binary.LittleEndian.Uint32(buf[0:])),
			Name:     fixedString(buf[4 : 4+domain.UserNameLen]),
			Password: fixedString(buf[54 : 54+domain.UserPasswordLen]),
			Role:     domain.Role(binary.LittleEndian.Uint32(buf[74:])),
			IsActive: boolAt(buf[78:]),
		}
	},
}

// AccountCodec packs domain.Account into its 16-byte slot.
var AccountCodec = Codec[domain.Account]{
	Size: 16,
	Key:  func(a domain.Account) int64 { return int64(a.AccountNo) },
	Marshal: func(a domain.Account, buf []byte) {
		binary.LittleEndian.PutUint32(buf[0:], uint32(a.AccountNo))
		putFloat32(buf[4:], a.Balance)
		putBool(buf[8:], a.IsJoint)
		putBool(buf[12:], a.IsActive)
	},
	Unmarshal: func(buf []byte) domain.Account {
		return domain.Account{
			AccountNo: int32(binary.LittleEndian.Uint32(buf[0:])),
			Balance:   float32At(buf[4:]),
			IsJoint:   boolAt(buf[8:]),
			IsActive:  boolAt(buf[12:]),
		}
	},
}

// LoanCodec packs domain.Loan into its 20-byte slot.
var LoanCodec = Codec[domain.Loan]{
	Size: 20,
	Key:  func(l domain.Loan) int64 { return int64(l.LoanID) },
	Marshal: func(l domain.Loan, buf []byte) {
		binary.LittleEndian.PutUint32(buf[0:], uint32(l.LoanID))
		binary.LittleEndian.PutUint32(buf[4:], uint32(l.CustomerUserID))
		putFloat32(buf[8:], l.Amount)
		binary.LittleEndian.PutUint32(buf[12:], uint32(l.Status))
		binary.LittleEndian.PutUint32(buf[16:], uint32(l.AssignedEmployeeID))
	},
	Unmarshal: func(buf []byte) domain.Loan {
		return domain.Loan{
			LoanID:             int32(binary.LittleEndian.Uint32(buf[0:])),
			CustomerUserID:     int32(binary.LittleEndian.Uint32(buf[4:])),
			Amount:             float32At(buf[8:]),
			Status:             domain.LoanStatus(binary.LittleEndian.Uint32(buf[12:])),
			AssignedEmployeeID: int32(binary.LittleEndian.Uint32(buf[16:])),
		}
	},
}

// TransactionCodec packs domain.Transaction into its 36-byte slot.
var TransactionCodec = Codec[domain.Transaction]{
	Size: 36,
	Key:  func(t domain.Transaction) int64 { return t.TransactionID },
	Marshal: func(t domain.Transaction, buf []byte) {
		binary.LittleEndian.PutUint64(buf[0:], uint64(t.TransactionID))
		binary.LittleEndian.PutUint32(buf[8:], uint32(t.AccountID))
		binary.LittleEndian.PutUint32(buf[12:], uint32(t.Type))
		putFloat32(buf[16:], t.Amount)
		putFloat32(buf[20:], t.OldBalance)
		putFloat32(buf[24:], t.NewBalance)
		binary.LittleEndian.PutUint64(buf[28:], uint64(t.Timestamp))
	},
	Unmarshal: func(buf []byte) domain.Transaction {
		return domain.Transaction{
			TransactionID: int64(binary.LittleEndian.Uint64(buf[0:])),
			AccountID:     int32(binary.LittleEndian.Uint32(buf[8:])),
			Type:          domain.TransactionType(binary.LittleEndian.Uint32(buf[12:])),
			Amount:        float32At(buf[16:]),
			OldBalance:    float32At(buf[20:]),
			NewBalance:    float32At(buf[24:]),
			Timestamp:     int64(binary.LittleEndian.Uint64(buf[28:])),
		}
	},
}

// FeedbackCodec packs domain.Feedback into its 1038-byte slot. Feedback
// has no real key; the account ID stands in so listings can filter.
var FeedbackCodec = Codec[domain.Feedback]{
	Size: 4 + domain.FeedbackMessageLen,
	Key:  func(f domain.Feedback) int64 { return int64(f.AccountID) },
	Marshal: func(f domain.Feedback, buf []byte) {
		binary.LittleEndian.PutUint32(buf[0:], uint32(f.AccountID))
		putFixedString(buf[4:], f.Message)
	},
	Unmarshal: func(buf []byte) domain.Feedback {
		return domain.Feedback{
			AccountID: int32(binary.LittleEndian.Uint32(buf[0:])),
			Message:   fixedString(buf[4:]),
		}
	},
}

// Stores bundles the five record stores backing the bank.
type Stores struct {
	Users        *Store[domain.User]
	Accounts     *Store[domain.Account]
	Loans        *Store[domain.Loan]
	Transactions *Store[domain.Transaction]
	Feedback     *Store[domain.Feedback]
}

// OpenAll opens every store inside dir, creating missing files.
func OpenAll(dir string) (*Stores, error) {
	users, err := Open(filepath.Join(dir, UsersFile), UserCodec, UserIDFloor)
	if err != nil {
		return nil, err
	}
	accounts, err := Open(filepath.Join(dir, AccountsFile), AccountCodec, AccountNoFloor)
	if err != nil {
		return nil, err
	}
	loans, err := Open(filepath.Join(dir, LoansFile), LoanCodec, LoanIDFloor)
	if err != nil {
		return nil, err
	}
	txns, err := Open(filepath.Join(dir, TransactionsFile), TransactionCodec, TransactionIDFloor)
	if err != nil {
		return nil, err
	}
	feedback, err := Open(filepath.Join(dir, FeedbackFile), FeedbackCodec, 0)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:        users,
		Accounts:     accounts,
		Loans:        loans,
		Transactions: txns,
		Feedback:     feedback,
	}, nil
}

// Close closes every store, returning the first error seen.
func (s *Stores) Close() error {
	var first error
	for _, c := range []interface{ Close() error }{
		s.Users, s.Accounts, s.Loans, s.Transactions, s.Feedback,
	} {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
