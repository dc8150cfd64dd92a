// Package state is the single source of truth for accounts, the current
// session, and the complaint collection. Every mutation passes through the
// Store, which persists a snapshot into its key-value backing medium after
// each committed change and hydrates from it on construction.
package state

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"spotgarbage.org/internal/ids"
	"spotgarbage.org/internal/kv"
	"spotgarbage.org/internal/notify"
	"spotgarbage.org/internal/obs"
)

const (
	defaultStateKey    = "spotg_state_v1"
	defaultAccountsKey = "spotg_accounts_v1"
)

// Store owns the three collections and mediates all mutation. Construct one
// per application (or per test); there is no package-level instance.
type Store struct {
	mu sync.RWMutex

	kvs  kv.Store
	sink notify.Sink
	log  *zap.Logger

	now   func() time.Time
	newID func() string

	stateKey    string
	accountsKey string

	user        *SessionUser
	complaints  []Complaint
	accounts    []Account
	lastPersist PersistResult
}

// Option configures a Store.
type Option func(*Store)

// WithSink routes user-visible notifications to the given sink.
func WithSink(s notify.Sink) Option {
	return func(st *Store) {
		if s != nil {
			st.sink = s
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(st *Store) {
		if fn != nil {
			st.now = fn
		}
	}
}

// WithIDSource overrides the unique-id generator (useful for tests).
func WithIDSource(fn func() string) Option {
	return func(st *Store) {
		if fn != nil {
			st.newID = fn
		}
	}
}

// WithStateKey overrides the backing-store key for session+complaints.
func WithStateKey(key string) Option {
	return func(st *Store) {
		if key != "" {
			st.stateKey = key
		}
	}
}

// WithAccountsKey overrides the backing-store key for accounts.
func WithAccountsKey(key string) Option {
	return func(st *Store) {
		if key != "" {
			st.accountsKey = key
		}
	}
}

// WithLogger overrides the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.log = l
		}
	}
}

// New constructs a Store over the given backing medium and hydrates it:
// persisted state when present, the fixed seed set otherwise. Hydration
// never fails; malformed persisted data is treated as absent.
func New(kvs kv.Store, opts ...Option) *Store {
	st := &Store{
		kvs:         kvs,
		sink:        notify.LogSink{Log: obs.Logger()},
		log:         obs.Logger(),
		now:         time.Now,
		newID:       ids.NewUUID,
		stateKey:    defaultStateKey,
		accountsKey: defaultAccountsKey,
	}
	for _, opt := range opts {
		opt(st)
	}
	st.hydrate()
	return st
}

// User returns the current session user, or nil when logged out.
func (s *Store) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Complaints returns a copy of the complaint collection, newest first.
func (s *Store) Complaints() []Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Complaint, len(s.complaints))
	copy(out, s.complaints)
	return out
}

// Accounts returns a copy of the account collection, newest first.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Register creates a new account unless the email is already taken
// (case-sensitive compare). Returns nil when rejected.
func (s *Store) Register(email, password string, role Role, name string) *Account {
	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].Email == email {
			s.mu.Unlock()
			obs.CountOp("register", "rejected")
			return nil
		}
	}
	acc := Account{ID: s.newID(), Email: email, Password: password, Role: role, Name: name}
	s.accounts = append([]Account{acc}, s.accounts...)
	s.persistAccountsLocked()
	s.mu.Unlock()

	obs.CountOp("register", "ok")
	s.sink.Notify(notify.Success, "Registered successfully")
	return &acc
}

// Login matches email and password exactly. On success it derives the
// session user and returns the matched account so the caller can route by
// role; on failure it returns nil and leaves the session untouched.
func (s *Store) Login(email, password string) *Account {
	s.mu.Lock()
	var match *Account
	for i := range s.accounts {
		if s.accounts[i].Email == email && s.accounts[i].Password == password {
			acc := s.accounts[i]
			match = &acc
			break
		}
	}
	if match == nil {
		s.mu.Unlock()
		obs.CountOp("login", "rejected")
		s.sink.Notify(notify.Error, "Invalid credentials")
		return nil
	}
	name := match.Name
	if name == "" {
		name = strings.SplitN(match.Email, "@", 2)[0]
	}
	s.user = &SessionUser{ID: match.ID, Name: name, Email: match.Email, Role: match.Role}
	s.persistStateLocked()
	s.mu.Unlock()

	obs.CountOp("login", "ok")
	s.sink.Notify(notify.Success, "Welcome, "+name)
	return match
}

// Logout clears the session unconditionally. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.persistStateLocked()
	s.mu.Unlock()

	obs.CountOp("logout", "ok")
	s.sink.Notify(notify.Info, "Logged out")
}

// UpdateAccount merges the provided fields into the account with the given
// id. Unknown ids are a silent no-op. Past complaints' denormalized reporter
// name and the live session are left untouched; they refresh on next login.
func (s *Store) UpdateAccount(id string, patch AccountPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.accounts[i].Name = *patch.Name
		}
		if patch.Email != nil {
			s.accounts[i].Email = *patch.Email
		}
		if patch.Phone != nil {
			s.accounts[i].Phone = *patch.Phone
		}
		if patch.DOB != nil {
			s.accounts[i].DOB = *patch.DOB
		}
		s.persistAccountsLocked()
		obs.CountOp("update_account", "ok")
		return
	}
	obs.CountOp("update_account", "not_found")
}

// AddComplaint creates a complaint from the draft: fresh id, current
// timestamp, and status derived from the verification flag. The new entry is
// prepended, keeping the collection newest-first.
func (s *Store) AddComplaint(draft ComplaintDraft) Complaint {
	s.mu.Lock()
	item := Complaint{
		ID:              s.newID(),
		Title:           draft.Title,
		Description:     draft.Description,
		Image:           draft.Image,
		CollectedImages: append([]string(nil), draft.CollectedImages...),
		Lat:             draft.Lat,
		Lng:             draft.Lng,
		WasteType:       draft.WasteType,
		Toxicity:        draft.Toxicity,
		Verified:        draft.Verified,
		Status:          StatusSubmitted,
		CreatedAt:       s.now().UnixMilli(),
		ReporterID:      draft.ReporterID,
		ReporterName:    draft.ReporterName,
	}
	if draft.Verified {
		item.Status = StatusVerified
	}
	s.complaints = append([]Complaint{item}, s.complaints...)
	s.persistStateLocked()
	s.mu.Unlock()

	obs.CountOp("add_complaint", "ok")
	s.sink.Notify(notify.Success, "Complaint submitted")
	return item
}

// UpdateComplaintStatus replaces a complaint's status. Unknown ids are a
// silent no-op. The write is open: transitions are not validated here, see
// ValidTransition for callers wanting the strict check.
func (s *Store) UpdateComplaintStatus(id string, status Status) {
	s.mu.Lock()
	found := false
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints[i].Status = status
			found = true
			break
		}
	}
	if found {
		s.persistStateLocked()
	}
	s.mu.Unlock()

	if !found {
		obs.CountOp("update_status", "not_found")
		return
	}
	obs.CountOp("update_status", "ok")
	if status == StatusCollected {
		s.sink.Notify(notify.Success, "Marked as Collected")
	}
}

// CollectComplaint marks a complaint collected and attaches the worker's
// evidence photos. A no-op when the id is unknown or images is empty.
func (s *Store) CollectComplaint(id string, images []string) {
	if len(images) == 0 {
		return
	}
	s.mu.Lock()
	found := false
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints[i].Status = StatusCollected
			s.complaints[i].CollectedImages = append([]string(nil), images...)
			found = true
			break
		}
	}
	if found {
		s.persistStateLocked()
	}
	s.mu.Unlock()

	if !found {
		obs.CountOp("collect", "not_found")
		return
	}
	obs.CountOp("collect", "ok")
	s.sink.Notify(notify.Success, "Marked as Collected")
}

// DeleteComplaint removes the complaint with the given id. A no-op when
// absent.
func (s *Store) DeleteComplaint(id string) {
	s.mu.Lock()
	found := false
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints = append(s.complaints[:i], s.complaints[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persistStateLocked()
	}
	s.mu.Unlock()

	if found {
		obs.CountOp("delete_complaint", "ok")
	} else {
		obs.CountOp("delete_complaint", "not_found")
	}
}
