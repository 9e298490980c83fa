package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Controllers map these onto HTTP
// codes; nothing else about an error is contractual.
var (
	// ErrNotFound covers both a missing entity and an entity the caller
	// does not own, so ownership is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a transition attempted from an incompatible status
	// (terminal-state mutation, stale double writes).
	ErrConflict = errors.New("conflict")

	// ErrAlreadyAccepted distinguishes the idempotent no-op second accept
	// from a real conflict.
	ErrAlreadyAccepted = errors.New("already accepted")

	ErrUserBlocked = errors.New("user blocked")
	ErrEmptyOrder  = errors.New("order has no items")
	ErrEmptyCart   = errors.New("cart is empty")
)

// TooManyRestaurantsError rejects an add that would exceed the
// distinct-restaurant cap without force. The cart is left untouched.
type TooManyRestaurantsError struct {
	CurrentRestaurantIDs []uint
	Max                  int
}

func (e *TooManyRestaurantsError) Error() string {
	return fmt.Sprintf("too many restaurants in cart (max %d)", e.Max)
}

// OptionsRequiredError: fewer options chosen from a group than its
// effective minimum.
type OptionsRequiredError struct {
	GroupID uint
}

func (e *OptionsRequiredError) Error() string {
	return fmt.Sprintf("options required for group %d", e.GroupID)
}

// OptionsExceededError: more options chosen from a group than allowed.
type OptionsExceededError struct {
	GroupID uint
	Max     int
}

func (e *OptionsExceededError) Error() string {
	return fmt.Sprintf("too many options for group %d (max %d)", e.GroupID, e.Max)
}

// BelowMinimumError: delivery order total under the restaurant minimum.
type BelowMinimumError struct {
	Missing int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("add %d more to reach the delivery minimum", e.Missing)
}

// IsValidation reports whether err is a client-input problem rather than
// a missing entity or a state conflict.
func IsValidation(err error) bool {
	var req *OptionsRequiredError
	var exc *OptionsExceededError
	return errors.As(err, &req) || errors.As(err, &exc)
}

// IsPrecondition reports whether err is a refused-but-well-formed request.
func IsPrecondition(err error) bool {
	var tmr *TooManyRestaurantsError
	var min *BelowMinimumError
	return errors.As(err, &tmr) || errors.As(err, &min) ||
		errors.Is(err, ErrUserBlocked)
}
