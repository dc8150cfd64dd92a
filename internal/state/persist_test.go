package state

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"spotgarbage.org/internal/kv"
	"spotgarbage.org/internal/notify"
)

func TestRoundTripHydration(t *testing.T) {
	mem := kv.NewMemory(0)
	seq := 0
	newID := func() string {
		seq++
		return "rt-" + strconv.Itoa(seq)
	}
	clock := func() time.Time { return time.Unix(1700000000, 0) }

	a := New(mem, WithSink(notify.Discard{}), WithIDSource(newID), WithClock(clock))
	a.Login("user@example.com", "password")
	added := a.AddComplaint(ComplaintDraft{
		Title:       "Roadside tyre pile",
		Description: "Dozens of shredded tyres",
		Image:       strings.Repeat("x", 4096),
		Lat:         11.0168,
		Lng:         76.9558,
		WasteType:   WastePlastic,
		Toxicity:    ToxicityHigh,
		Verified:    true,
	})

	b := New(mem, WithSink(notify.Discard{}), WithIDSource(newID), WithClock(clock))

	if diff := cmp.Diff(a.User(), b.User()); diff != "" {
		t.Fatalf("session user mismatch (-a +b):\n%s", diff)
	}

	wantComplaints := a.Complaints()
	for i := range wantComplaints {
		wantComplaints[i].Image = ""
		wantComplaints[i].CollectedImages = nil
	}
	if diff := cmp.Diff(wantComplaints, b.Complaints()); diff != "" {
		t.Fatalf("complaints mismatch (-a +b):\n%s", diff)
	}
	if b.Complaints()[0].ID != added.ID {
		t.Fatal("hydrated store lost insertion order")
	}
}

func TestHydrationToleratesMalformedData(t *testing.T) {
	mem := kv.NewMemory(0)
	if err := mem.Set("spotg_state_v1", "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := mem.Set("spotg_accounts_v1", "also not json"); err != nil {
		t.Fatal(err)
	}

	s := New(mem, WithSink(notify.Discard{}))
	if len(s.Complaints()) != 2 {
		t.Fatalf("malformed state should fall back to seed, got %d complaints", len(s.Complaints()))
	}
	if len(s.Accounts()) != 2 {
		t.Fatalf("malformed accounts should fall back to seed, got %d", len(s.Accounts()))
	}
	if s.User() != nil {
		t.Fatal("malformed state should leave session unset")
	}
}

// bulkComplaints files n reports with a fat payload each so the encoded
// snapshot grows predictably.
func bulkComplaints(s *Store, n int) {
	for i := 0; i < n; i++ {
		s.AddComplaint(ComplaintDraft{
			Title:       "Report " + strconv.Itoa(i) + " " + strings.Repeat("t", 120),
			Description: strings.Repeat("d", 240),
			Image:       strings.Repeat("i", 2048),
			WasteType:   WasteMixed,
			Toxicity:    ToxicityLow,
		})
	}
}

func TestPersistSucceedsByStrippingImages(t *testing.T) {
	// Far too small for the raw list with its 4KB photos, roomy for the
	// stripped snapshot: the first rung alone must land cleanly.
	mem := kv.NewMemory(6 * 1024)
	s := New(mem, WithSink(notify.Discard{}))

	bulkComplaints(s, 3)

	if last := s.LastPersist(); last.Outcome != Persisted {
		t.Fatalf("stripping images should be enough, got %+v", last)
	}

	rehydrated := New(mem, WithSink(notify.Discard{}))
	got := rehydrated.Complaints()
	if len(got) != 5 { // 3 filed + 2 seed
		t.Fatalf("expected all complaints persisted, got %d", len(got))
	}
	for _, c := range got {
		if c.Image != "" {
			t.Fatalf("persisted complaint %s kept its image payload", c.ID)
		}
	}
}

func TestPersistDegradesToTruncatedList(t *testing.T) {
	// Roomy enough for 20-odd stripped entries, far too small for 60.
	mem := kv.NewMemory(20 * 1024)
	s := New(mem, WithSink(notify.Discard{}))

	bulkComplaints(s, 60)

	last := s.LastPersist()
	if last.Outcome != PersistedDegraded || last.Reason != ReasonTruncated {
		t.Fatalf("expected truncated degradation, got %+v", last)
	}

	rehydrated := New(mem, WithSink(notify.Discard{}))
	if got := len(rehydrated.Complaints()); got != maxDegradedComplaints {
		t.Fatalf("expected %d persisted complaints, got %d", maxDegradedComplaints, got)
	}
	// in-memory state keeps the full collection regardless
	if got := len(s.Complaints()); got != 62 {
		t.Fatalf("in-memory collection must stay whole, got %d", got)
	}
}

func TestPersistDegradesToSessionOnly(t *testing.T) {
	// Too small for even one stripped entry, big enough for the session.
	mem := kv.NewMemory(1024)
	s := New(mem, WithSink(notify.Discard{}))
	s.Login("user@example.com", "password")

	bulkComplaints(s, 3)

	last := s.LastPersist()
	if last.Outcome != PersistedDegraded || last.Reason != ReasonSessionOnly {
		t.Fatalf("expected session-only degradation, got %+v", last)
	}

	rehydrated := New(mem, WithSink(notify.Discard{}))
	if got := len(rehydrated.Complaints()); got != 0 {
		t.Fatalf("expected no persisted complaints, got %d", got)
	}
	if u := rehydrated.User(); u == nil || u.Email != "user@example.com" {
		t.Fatalf("session must survive the session-only rung, got %+v", u)
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	mem := kv.NewMemory(16) // nothing fits
	core, logged := observer.New(zap.WarnLevel)
	s := New(mem, WithSink(notify.Discard{}), WithLogger(zap.New(core)))

	// must not panic or surface an error anywhere
	s.AddComplaint(ComplaintDraft{Title: "doomed"})

	if got := s.LastPersist().Outcome; got != PersistFailed {
		t.Fatalf("expected PersistFailed, got %s", got)
	}
	if len(s.Complaints()) == 0 {
		t.Fatal("in-memory mutation must commit even when persistence fails")
	}
	if logged.FilterMessage("failed to persist app state").Len() == 0 {
		t.Fatal("swallowed failure should be logged, not silent")
	}
}

func TestFlushReportsOutcome(t *testing.T) {
	s := New(kv.NewMemory(0), WithSink(notify.Discard{}))
	if res := s.Flush(); res.Outcome != Persisted {
		t.Fatalf("expected clean persist, got %+v", res)
	}
}
