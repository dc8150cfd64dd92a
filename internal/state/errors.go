package state

import "errors"

// ErrInvalidTransition is returned by ValidTransition for a status move that
// would reverse a complaint's lifecycle. Registration and login failures are
// reported as nil results, not errors, matching the reference behavior.
var ErrInvalidTransition = errors.New("state: invalid status transition")
