package telemetry

import (
	"math"
	"time"
)

// ActivityStats summarizes the activity collection for the admin dashboard.
type ActivityStats struct {
	Total       int `json:"total"`
	Today       int `json:"today"`
	UniqueUsers int `json:"uniqueUsers"`
}

// ReviewStats summarizes the review collection.
type ReviewStats struct {
	Total        int `json:"total"`
	Positive     int `json:"positive"`
	Negative     int `json:"negative"`
	Satisfaction int `json:"satisfaction"`
}

// Aggregator derives counters from the store's current contents. It holds
// no state of its own and recomputes on every call; the collections are
// bounded, so a full scan per call is cheap.
type Aggregator struct {
	store *Store
}

func NewAggregator(store *Store) *Aggregator {
	return &Aggregator{store: store}
}

// ActivityStats counts all activities, today's activities (local midnight
// boundary), and distinct users across the whole collection.
func (g *Aggregator) ActivityStats() ActivityStats {
	activities := g.store.Activities()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	st := ActivityStats{Total: len(activities)}
	users := make(map[string]struct{})
	for _, a := range activities {
		if !a.Timestamp.Before(midnight) {
			st.Today++
		}
		users[a.UserID] = struct{}{}
	}
	st.UniqueUsers = len(users)
	return st
}

// ReviewStats counts ratings and derives the satisfaction percentage,
// rounded to the nearest integer. An empty collection yields 0, never a
// division by zero.
func (g *Aggregator) ReviewStats() ReviewStats {
	reviews := g.store.Reviews()

	st := ReviewStats{Total: len(reviews)}
	for _, r := range reviews {
		switch r.Rating {
		case RatingPositive:
			st.Positive++
		case RatingNegative:
			st.Negative++
		}
	}
	if st.Total > 0 {
		st.Satisfaction = int(math.Round(float64(st.Positive) / float64(st.Total) * 100))
	}
	return st
}
