package recommend

import (
	"sort"

	"shopsight/domain"
)

// Action weights for category affinity. Flat sums over the full history: a
// purchase from a year ago counts the same as one from today.
const (
	weightView       = 1.0
	weightPurchase   = 10.0
	stayCapMinutes   = 5.0
	secondsPerMinute = 60.0
)

// ScoreCategories accumulates a per-category affinity score from the user's
// activity history. Categories never seen get no entry.
func ScoreCategories(events []domain.CategoryActivity) map[string]float64 {
	scores := make(map[string]float64)

	for _, ev := range events {
		if ev.ProductCategory == "" {
			continue
		}

		switch ev.Action {
		case domain.ActionView:
			scores[ev.ProductCategory] += weightView
		case domain.ActionStay:
			if ev.DurationSeconds == nil {
				continue
			}
			minutes := float64(*ev.DurationSeconds) / secondsPerMinute
			if minutes > stayCapMinutes {
				minutes = stayCapMinutes
			}
			scores[ev.ProductCategory] += minutes
		case domain.ActionPurchase:
			scores[ev.ProductCategory] += weightPurchase
		}
	}

	return scores
}

// TopCategories returns up to n categories by descending score. Equal scores
// are broken by lexicographic category name, so the selection is
// deterministic even when every score is zero.
func TopCategories(scores map[string]float64, n int) []string {
	if n <= 0 || len(scores) == 0 {
		return []string{}
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		si, sj := scores[names[i]], scores[names[j]]
		if si != sj {
			return si > sj
		}
		return names[i] < names[j]
	})

	if n < len(names) {
		names = names[:n]
	}

	return names
}
