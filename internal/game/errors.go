package game

import (
	"errors"
	"fmt"
)

// ErrContractViolation is the root of every error caused by a caller breaking
// the engine's contract. None of these are transient; retrying the same call
// fails the same way.
var ErrContractViolation = errors.New("contract violation")

var (
	// ErrActionRejected is returned by SubmitAction for wrong-seat, late or
	// illegal actions. The engine state is unchanged.
	ErrActionRejected = fmt.Errorf("%w: action rejected", ErrContractViolation)

	ErrNotYourTurn       = fmt.Errorf("%w: not the active seat", ErrActionRejected)
	ErrHandComplete      = fmt.Errorf("%w: hand is over", ErrActionRejected)
	ErrIllegalAction     = fmt.Errorf("%w: illegal action", ErrActionRejected)
	ErrInsufficientChips = fmt.Errorf("%w: insufficient chips", ErrContractViolation)
	ErrHandInProgress    = fmt.Errorf("%w: a hand is already in progress", ErrContractViolation)
	ErrNoHand            = fmt.Errorf("%w: no hand has been started", ErrContractViolation)
	ErrInvalidSetup      = fmt.Errorf("%w: invalid hand setup", ErrContractViolation)
	ErrInvalidAward      = fmt.Errorf("%w: invalid award", ErrContractViolation)
)

// ErrResourceExhausted means the hand could not continue because the deck ran
// out of cards. The hand is aborted and contributions are refunded.
var ErrResourceExhausted = errors.New("resource exhausted")

// ErrChipsNotConserved indicates an internal accounting bug. It is never
// caused by caller input.
var ErrChipsNotConserved = errors.New("chip total changed")

func rejectf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
