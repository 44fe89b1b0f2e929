package charts

import (
	"reflect"
	"testing"

	"statusplay/internal/models"
)

func TestTeamDistributionWinBased(t *testing.T) {
	snap := &models.Snapshot{
		Teams: []models.Team{
			{Name: "A", Wins: 3},
			{Name: "B", Wins: 7},
		},
	}

	ds := TeamDistribution(snap)

	if !reflect.DeepEqual(ds.Labels, []string{"A", "B"}) {
		t.Errorf("expected labels [A B], got %v", ds.Labels)
	}
	if !reflect.DeepEqual(ds.Values, []int{3, 7}) {
		t.Errorf("expected win-based values [3 7], got %v", ds.Values)
	}
}

func TestTeamDistributionEmpty(t *testing.T) {
	ds := TeamDistribution(&models.Snapshot{})
	if len(ds.Labels) != 0 || len(ds.Values) != 0 {
		t.Errorf("empty snapshot should yield empty dataset, got %+v", ds)
	}
}

func TestCourtStatusBars(t *testing.T) {
	snap := &models.Snapshot{
		CourtStatus: models.CourtStatus{
			Indoor:    models.CourtGroup{Total: 4},
			Outdoor:   models.CourtGroup{Total: 4},
			Total:     8,
			Available: 5,
		},
	}

	ds := CourtStatusBars(snap)

	if !reflect.DeepEqual(ds.Labels, []string{"Indoor", "Outdoor", "Booked", "Free"}) {
		t.Errorf("unexpected labels: %v", ds.Labels)
	}
	if !reflect.DeepEqual(ds.Values, []int{4, 4, 3, 5}) {
		t.Errorf("expected [4 4 3 5], got %v", ds.Values)
	}
}
