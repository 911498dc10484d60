package game

import "errors"

var (
	// ErrHandInProgress is returned when dealing while a decision is pending.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrNotAwaitingDecision is returned when acting or resolving outside a pending decision.
	ErrNotAwaitingDecision = errors.New("not awaiting a decision")
	// ErrInvalidDecision is returned for anything other than FOLD or ALL_IN.
	ErrInvalidDecision = errors.New("invalid decision")
	// ErrInvalidSeat is returned for a seat outside CO..BB.
	ErrInvalidSeat = errors.New("invalid seat")
)
