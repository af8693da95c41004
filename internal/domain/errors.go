package domain

import "errors"

// ErrInvariant marks an accounting invariant broken by the planner or a batch.
// A run that returns it is invalid and must be discarded.
var ErrInvariant = errors.New("invariant violation")
