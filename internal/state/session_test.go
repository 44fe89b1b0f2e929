package state

import (
	"testing"

	"statusplay/internal/models"
)

func snapshotFixture(total int) *models.Snapshot {
	return &models.Snapshot{
		Teams: []models.Team{
			{Name: "Falcons", Wins: 3},
			{Name: "Kings", Wins: 7},
		},
		Players: []models.Player{
			{Name: "Ana", Status: models.PresenceIn, Points: 120},
		},
		TotalPlayers: total,
	}
}

func TestReconcileFirstSnapshotIsChange(t *testing.T) {
	s := NewSession("Ana")

	result := s.Reconcile(snapshotFixture(4))
	if !result.Changed {
		t.Error("first snapshot must report changed=true")
	}
	if s.Snapshot() == nil {
		t.Error("snapshot should be held after reconcile")
	}
}

func TestReconcileEqualSnapshotsNoChange(t *testing.T) {
	s := NewSession("Ana")
	s.Reconcile(snapshotFixture(4))

	// Distinct value, structurally identical
	result := s.Reconcile(snapshotFixture(4))
	if result.Changed {
		t.Error("deep-equal snapshot must report changed=false")
	}
}

func TestReconcileDifferentSnapshotsChange(t *testing.T) {
	s := NewSession("Ana")
	s.Reconcile(snapshotFixture(4))

	result := s.Reconcile(snapshotFixture(5))
	if !result.Changed {
		t.Error("structurally different snapshot must report changed=true")
	}
	if s.Snapshot().TotalPlayers != 5 {
		t.Errorf("snapshot should be replaced, got totalPlayers=%d", s.Snapshot().TotalPlayers)
	}
}

func TestReconcileOrderSensitive(t *testing.T) {
	s := NewSession("Ana")

	a := snapshotFixture(4)
	s.Reconcile(a)

	b := snapshotFixture(4)
	b.Teams[0], b.Teams[1] = b.Teams[1], b.Teams[0]

	result := s.Reconcile(b)
	if !result.Changed {
		t.Error("sequence order is significant; reordered teams must report changed=true")
	}
}

func TestReconcileStaleSequenceDiscarded(t *testing.T) {
	s := NewSession("Ana")

	// Two requests go out; the older one completes last
	seqOld := s.NextSeq()
	seqNew := s.NextSeq()

	fresh := snapshotFixture(6)
	if result := s.ReconcileSeq(fresh, seqNew); !result.Changed {
		t.Fatal("fresh snapshot should apply")
	}

	late := snapshotFixture(2)
	result := s.ReconcileSeq(late, seqOld)
	if !result.Stale {
		t.Error("late response must be reported stale")
	}
	if s.Snapshot().TotalPlayers != 6 {
		t.Errorf("stale data must not overwrite fresher data, got totalPlayers=%d", s.Snapshot().TotalPlayers)
	}
}

func TestSessionDefaults(t *testing.T) {
	s := NewSession("Ana")

	if s.User() != "Ana" {
		t.Errorf("expected user Ana, got %q", s.User())
	}
	if s.View() != ViewDashboard {
		t.Errorf("default view should be dashboard, got %q", s.View())
	}
	if s.Snapshot() != nil {
		t.Error("fresh session should hold no snapshot")
	}

	s.SetView(ViewCourts)
	if s.View() != ViewCourts {
		t.Errorf("expected courts view, got %q", s.View())
	}
}
