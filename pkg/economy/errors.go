package economy

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can react without matching on messages
type Kind int

// error kinds
const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthorization
	KindResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindAuthorization:
		return "authorization"
	case KindResourceExhausted:
		return "resource exhausted"
	default:
		return "internal"
	}
}

// Error is an error that is safe to return in a response
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, which lets errors carrying
// details still match their sentinel with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Code == e.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// store errors
var (
	ErrDuplicateName      = newError(KindValidation, "duplicate_name", "name already exists")
	ErrInvalidCredentials = newError(KindAuthorization, "invalid_credentials", "invalid credentials")
	ErrUserNotFound       = newError(KindNotFound, "user_not_found", "user not found")
	ErrRoundNotFound      = newError(KindNotFound, "round_not_found", "round not found")
	ErrRoundNotActive     = newError(KindValidation, "round_not_active", "round not active")
	ErrInsufficientFunds  = newError(KindResourceExhausted, "insufficient_funds", "insufficient wallet")
	ErrPoolInsufficient   = newError(KindResourceExhausted, "pool_insufficient", "win pool short")
	ErrInvalidAmount      = newError(KindValidation, "invalid_amount", "amount must not be negative")
)

// round errors
var (
	ErrInvalidName    = newError(KindValidation, "invalid_name", "name must not be empty")
	ErrInvalidAnte    = newError(KindValidation, "invalid_ante", "invalid ante")
	ErrInvalidDiscard = newError(KindValidation, "invalid_discard", "invalid discard indices")
	ErrOwnerMismatch  = newError(KindAuthorization, "owner_mismatch", "user mismatch")
	ErrPoolTooSmall   = newError(KindResourceExhausted, "pool_too_small", "win pool too small")
	ErrPoolShortfall  = newError(KindResourceExhausted, "pool_shortfall", "win pool short, refunded")
)

// PoolTooSmall returns ErrPoolTooSmall naming the largest ante the pool can cover
func PoolTooSmall(maxAnte int64) error {
	return newError(ErrPoolTooSmall.Kind, ErrPoolTooSmall.Code, fmt.Sprintf("win pool too small, max ante allowed %d", maxAnte))
}

// InvalidDiscard returns ErrInvalidDiscard with the reason
func InvalidDiscard(reason string) error {
	return newError(ErrInvalidDiscard.Kind, ErrInvalidDiscard.Code, fmt.Sprintf("invalid discard indices: %s", reason))
}

// KindOf returns the kind of err
// Anything that isn't an *Error is an internal error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// CodeOf returns the code of err, or "internal"
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return "internal"
}
