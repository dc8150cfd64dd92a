package state

import (
	"encoding/json"

	"go.uber.org/zap"

	"spotgarbage.org/internal/obs"
)

// Outcome classifies a persistence attempt.
type Outcome string

const (
	Persisted         Outcome = "ok"
	PersistedDegraded Outcome = "degraded"
	PersistFailed     Outcome = "failed"
)

// Degradation reasons recorded on a PersistResult.
const (
	ReasonTruncated   = "truncated_to_20"
	ReasonSessionOnly = "session_only"
)

// PersistResult reports how the last state snapshot landed in the backing
// store. Mutating operations never surface persistence errors; tests and
// diagnostics read this instead.
type PersistResult struct {
	Outcome Outcome
	Reason  string
}

// maxDegradedComplaints is the truncation cut used on the second rung of the
// degradation ladder.
const maxDegradedComplaints = 20

// snapshot is the persisted shape under the state key. Image payloads are
// stripped before encoding: they are the dominant size cost and easily blow
// the backing store's quota.
type snapshot struct {
	User       *SessionUser `json:"user"`
	Complaints []Complaint  `json:"complaints"`
}

// Flush re-persists the current state and accounts, returning how the state
// snapshot landed.
func (s *Store) Flush() PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistAccountsLocked()
	return s.persistStateLocked()
}

// LastPersist returns the result of the most recent state snapshot write.
func (s *Store) LastPersist() PersistResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersist
}

// persistStateLocked writes the session+complaints snapshot, degrading in
// steps under quota pressure: full list with images stripped, then the newest
// 20 entries, then the session alone. The final failure is swallowed and
// logged; persistence is best-effort and must never break a caller.
func (s *Store) persistStateLocked() PersistResult {
	stripped := make([]Complaint, len(s.complaints))
	for i, c := range s.complaints {
		c.Image = ""
		c.CollectedImages = nil
		stripped[i] = c
	}

	res := PersistResult{Outcome: Persisted}
	err := s.writeState(snapshot{User: s.user, Complaints: stripped})
	if err != nil {
		small := stripped
		if len(small) > maxDegradedComplaints {
			small = small[:maxDegradedComplaints]
		}
		res = PersistResult{Outcome: PersistedDegraded, Reason: ReasonTruncated}
		err = s.writeState(snapshot{User: s.user, Complaints: small})
	}
	if err != nil {
		res = PersistResult{Outcome: PersistedDegraded, Reason: ReasonSessionOnly}
		err = s.writeState(snapshot{User: s.user, Complaints: []Complaint{}})
	}
	if err != nil {
		res = PersistResult{Outcome: PersistFailed, Reason: err.Error()}
		s.log.Warn("failed to persist app state", zap.Error(err))
	}

	s.lastPersist = res
	obs.CountPersist(string(res.Outcome))
	return res
}

func (s *Store) writeState(snap snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.kvs.Set(s.stateKey, string(raw))
}

// persistAccountsLocked writes the whole account collection. Accounts carry
// no image payloads, so there is no degradation ladder; a failure is logged
// and swallowed.
func (s *Store) persistAccountsLocked() {
	raw, err := json.Marshal(s.accounts)
	if err == nil {
		err = s.kvs.Set(s.accountsKey, string(raw))
	}
	if err != nil {
		s.log.Warn("failed to persist accounts", zap.Error(err))
	}
}

// hydrate loads persisted state, falling back to the seed sets. Malformed or
// unreadable data is treated as absent; hydration never fails.
func (s *Store) hydrate() {
	s.user = nil
	s.complaints = nil

	hydrated := false
	if raw, ok, err := s.kvs.Get(s.stateKey); err == nil && ok {
		var snap snapshot
		if jsonErr := json.Unmarshal([]byte(raw), &snap); jsonErr == nil {
			s.user = snap.User
			s.complaints = snap.Complaints
			hydrated = true
		}
	}
	if !hydrated {
		s.complaints = seedComplaints(s.newID, s.now())
	}

	s.accounts = nil
	if raw, ok, err := s.kvs.Get(s.accountsKey); err == nil && ok {
		var accounts []Account
		if jsonErr := json.Unmarshal([]byte(raw), &accounts); jsonErr == nil {
			s.accounts = accounts
		}
	}
	if s.accounts == nil {
		s.accounts = seedAccounts(s.newID)
		s.persistAccountsLocked()
	}
}
