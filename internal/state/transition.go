package state

// statusRank orders the lifecycle for forward-only checks. Rejected sits as
// an alternate terminal alongside collected.
var statusRank = map[Status]int{
	StatusSubmitted:  0,
	StatusVerified:   1,
	StatusInProgress: 2,
	StatusCollected:  3,
	StatusRejected:   3,
}

// ValidTransition reports whether moving a complaint from one status to
// another only advances the lifecycle. The store's write path deliberately
// does not call this: status updates are open writes, matching the reference
// behavior. Callers wanting strict forward-only semantics check here first.
func ValidTransition(from, to Status) error {
	fr, ok := statusRank[from]
	if !ok {
		return ErrInvalidTransition
	}
	tr, ok := statusRank[to]
	if !ok {
		return ErrInvalidTransition
	}
	if tr < fr {
		return ErrInvalidTransition
	}
	if from == StatusCollected && to != StatusCollected {
		return ErrInvalidTransition
	}
	return nil
}
