package apperrors

import "errors"

// ErrIO indicates that a record store file could not be opened, read or
// written. The failed operation aborts; the connection continues.
var ErrIO = errors.New("storage I/O failure")

// ErrNotFound indicates that a requested record could not be found.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a record that already exists.
var ErrDuplicate = errors.New("record already exists")

// ErrPermissionDenied indicates a role or ownership mismatch for the
// attempted operation.
var ErrPermissionDenied = errors.New("permission denied")

// ErrInsufficientFunds indicates a withdrawal larger than the current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserInactive indicates a login attempt against a deactivated user.
var ErrUserInactive = errors.New("user login is deactivated")

// ErrAccountInactive indicates an operation against a deactivated account.
var ErrAccountInactive = errors.New("account is deactivated")

// ErrAlreadyLoggedIn indicates the user already holds an active session.
var ErrAlreadyLoggedIn = errors.New("user already logged in")

// ErrSessionCapacity indicates the session registry has no free slots.
var ErrSessionCapacity = errors.New("server session capacity reached")

// ErrInvalidTransition indicates a loan state change that the workflow
// does not permit (e.g. deciding a loan that is already terminal).
var ErrInvalidTransition = errors.New("invalid loan state transition")

// ErrInconsistency indicates committed state that disagrees across stores,
// such as a loan marked approved whose owner account cannot be found. The
// partial state is not rolled back; callers must report this loudly.
var ErrInconsistency = errors.New("critical data inconsistency")
