package calls

import (
	"testing"
	"time"
)

func TestStore_MergeCreatesWhenUnseen(t *testing.T) {
	s := NewStore()
	rec := s.Merge("c1", func(r Record) Record {
		r.Status = StatusRinging
		return r
	})
	if rec.CallID != "c1" || rec.Status != StatusRinging {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", s.Len())
	}
}

func TestStore_MergePreservesDisjointFields(t *testing.T) {
	s := NewStore()
	s.Put(Record{CallID: "c1", Status: StatusInitiated, LeadName: "דנה", Phone: "+972501234567"})

	// A bare status update must not clobber the initiation snapshot.
	rec := s.Merge("c1", func(r Record) Record {
		r.Status = StatusInProgress
		return r
	})
	if rec.LeadName != "דנה" || rec.Phone != "+972501234567" {
		t.Fatalf("snapshot fields lost in merge: %+v", rec)
	}
	if rec.Status != StatusInProgress {
		t.Fatalf("status = %q, want in-progress", rec.Status)
	}
}

func TestStore_MergeOrderIndependentFieldUnion(t *testing.T) {
	applyStatus := func(r Record) Record {
		r.Status = StatusInProgress
		return r
	}
	end := time.Unix(1700000000, 0).UTC()
	applyReport := func(r Record) Record {
		r.Status = StatusEnded
		r.Outcome = "ENROLLED"
		r.DurationSeconds = 185
		r.EndedAt = &end
		return r
	}

	// status-update then report.
	a := NewStore()
	a.Merge("c", applyStatus)
	got := a.Merge("c", applyReport)
	if got.Status != StatusEnded || got.Outcome != "ENROLLED" || got.DurationSeconds != 185 {
		t.Fatalf("report after update: %+v", got)
	}

	// report then status-update: outcome fields survive and ended sticks.
	b := NewStore()
	b.Merge("c", applyReport)
	got = b.Merge("c", applyStatus)
	if got.Status != StatusEnded {
		t.Fatalf("late status update reverted terminal status: %q", got.Status)
	}
	if got.Outcome != "ENROLLED" || got.DurationSeconds != 185 {
		t.Fatalf("outcome fields lost: %+v", got)
	}
}

func TestStore_EndedIsSticky(t *testing.T) {
	s := NewStore()
	s.Put(Record{CallID: "c1", Status: StatusEnded})

	rec := s.Merge("c1", func(r Record) Record {
		r.Status = StatusRinging
		return r
	})
	if rec.Status != StatusEnded {
		t.Fatalf("status regressed out of ended: %q", rec.Status)
	}
}

func TestStore_SweepDropsOnlyExpiredEnded(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	old := now.Add(-48 * time.Hour)
	fresh := now.Add(-1 * time.Hour)

	s := NewStore()
	s.Put(Record{CallID: "expired", Status: StatusEnded, EndedAt: &old})
	s.Put(Record{CallID: "recent", Status: StatusEnded, EndedAt: &fresh})
	s.Put(Record{CallID: "live", Status: StatusInProgress})

	removed := s.Sweep(now, 24*time.Hour)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := s.Get("expired"); ok {
		t.Fatalf("expired record still present")
	}
	if _, ok := s.Get("recent"); !ok {
		t.Fatalf("recent ended record dropped")
	}
	if _, ok := s.Get("live"); !ok {
		t.Fatalf("live record dropped")
	}
}

func TestTranslateProviderStatus(t *testing.T) {
	cases := map[string]Status{
		"queued":      StatusInitiated,
		"ringing":     StatusRinging,
		"in-progress": StatusInProgress,
		"forwarding":  StatusInProgress,
		"ended":       StatusEnded,
		// Unrecognized provider statuses pass through verbatim.
		"escalated": Status("escalated"),
	}
	for in, want := range cases {
		if got := TranslateProviderStatus(in); got != want {
			t.Fatalf("TranslateProviderStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
