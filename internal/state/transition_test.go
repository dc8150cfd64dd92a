package state

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusSubmitted, StatusInProgress, true},
		{StatusSubmitted, StatusCollected, true},
		{StatusVerified, StatusInProgress, true},
		{StatusVerified, StatusCollected, true},
		{StatusInProgress, StatusCollected, true},
		{StatusSubmitted, StatusSubmitted, true},
		{StatusCollected, StatusCollected, true},
		{StatusInProgress, StatusSubmitted, false},
		{StatusCollected, StatusSubmitted, false},
		{StatusCollected, StatusInProgress, false},
		{StatusCollected, StatusRejected, false},
		{Status("unknown"), StatusCollected, false},
		{StatusSubmitted, Status("unknown"), false},
	}
	for _, tc := range cases {
		err := ValidTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && err != ErrInvalidTransition {
			t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}
