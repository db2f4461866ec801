// Package services: services/tally_service.go
package services

import (
	"errors"
	"sort"
	"strings"

	"go-holo-council/models"
)

// ErrChartLocked is returned when a non-privileged caller asks for a locked
// chart view. No partial ranking data is ever attached to it.
var ErrChartLocked = errors.New("chart view is locked")

// OutlierDistance is the maximum absolute distance from the first-pass mean
// a rating may have before it is discarded on the rating evening.
const OutlierDistance = 3.0

// topVisible caps how many entries a non-privileged viewer sees on a single
// token evening (1-3). The total and the rating evening are never truncated.
const topVisible = 3

// ChartEntry is one ranked row of a chart view.
type ChartEntry struct {
	SingerID  int     `json:"id"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo,omitempty"`
	Points    float64 `json:"points"`
	Discarded int     `json:"discarded"`
	Hidden    bool    `json:"hidden"`
}

// TallyService computes ranked results from the vote table. It is pure:
// identical input always yields the identical ordered sequence.
type TallyService struct{}

// NewTallyService creates a new TallyService instance.
func NewTallyService() *TallyService {
	return &TallyService{}
}

// Rank computes the ranking for a chart view.
//   - Token evenings score by plain token sum across all operators.
//   - The rating evening scores by a two-pass trimmed mean: ratings farther
//     than OutlierDistance from the first-pass mean are discarded, then the
//     mean is recomputed over the survivors.
//   - The total view sums the token evenings only; the rating evening's
//     scale is incompatible with token sums and contributes nothing.
//
// Privileged callers see every singer on every view; everyone else gets the
// hidden set removed, locked views refused, and single token evenings cut
// to the top entries.
func (t *TallyService) Rank(view models.View, doc *models.ContestDocument, isPrivileged bool) ([]ChartEntry, error) {
	if doc.LockedCharts[view.Key()] && !isPrivileged {
		return nil, ErrChartLocked
	}

	hidden := make(map[int]bool)
	for _, id := range doc.HiddenSingers[int(view)] {
		hidden[id] = true
	}

	entries := make([]ChartEntry, 0, len(doc.SingersList))
	for _, singer := range doc.SingersList {
		if !isPrivileged && hidden[singer.ID] {
			continue
		}

		entry := ChartEntry{
			SingerID: singer.ID,
			Name:     singer.Name,
			Photo:    singer.Photo,
			Hidden:   hidden[singer.ID],
		}

		switch {
		case view == models.ViewTotal:
			for _, evening := range models.Evenings {
				if evening == models.RatingEvening {
					continue
				}
				entry.Points += sum(collectValues(doc.Votes, evening, singer.ID))
			}
		case int(view) == models.RatingEvening:
			entry.Points, entry.Discarded = trimmedMean(collectValues(doc.Votes, models.RatingEvening, singer.ID))
		default:
			entry.Points = sum(collectValues(doc.Votes, int(view), singer.ID))
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})

	// only evenings 1-3 are truncated; evening 5's chart stays full length
	if !isPrivileged && int(view) >= 1 && int(view) <= 3 && len(entries) > topVisible {
		entries = entries[:topVisible]
	}
	return entries, nil
}

// collectValues flattens every value cast for a singer in an evening across
// all operators. Operators who never voted contribute nothing.
func collectValues(votes models.GlobalVotes, evening, singerID int) []float64 {
	var out []float64
	for _, ballot := range votes[evening] {
		out = append(out, ballot[singerID]...)
	}
	return out
}

// trimmedMean implements the rating evening's two-pass scoring: compute the
// mean, discard ratings farther than OutlierDistance from it, recompute over
// the survivors. Returns 0 when nothing was cast or nothing survived.
func trimmedMean(ratings []float64) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	first := sum(ratings) / float64(len(ratings))

	var kept []float64
	for _, r := range ratings {
		if abs(r-first) <= OutlierDistance {
			kept = append(kept, r)
		}
	}
	discarded := len(ratings) - len(kept)
	if len(kept) == 0 {
		return 0, discarded
	}
	return sum(kept) / float64(len(kept)), discarded
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
