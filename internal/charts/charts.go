package charts

import "statusplay/internal/models"

// Dataset is the label/value pairing handed to the charting layer.
// Labels and Values are index-aligned.
type Dataset struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// CourtStatusBars builds the court-status bar chart dataset: indoor and
// outdoor totals alongside booked and free counts
func CourtStatusBars(snap *models.Snapshot) Dataset {
	cs := snap.CourtStatus
	return Dataset{
		Labels: []string{"Indoor", "Outdoor", "Booked", "Free"},
		Values: []int{
			cs.Indoor.Total,
			cs.Outdoor.Total,
			cs.Total - cs.Available,
			cs.Available,
		},
	}
}

// TeamDistribution builds the team donut dataset. Proportions are
// win-based, not member-count-based.
func TeamDistribution(snap *models.Snapshot) Dataset {
	ds := Dataset{
		Labels: make([]string, 0, len(snap.Teams)),
		Values: make([]int, 0, len(snap.Teams)),
	}
	for _, t := range snap.Teams {
		ds.Labels = append(ds.Labels, t.Name)
		ds.Values = append(ds.Values, t.Wins)
	}
	return ds
}
