// Package telemetry keeps the append-only record of user activity and
// feedback and derives the admin dashboard counters from it.
package telemetry

import "time"

// Rating is a feedback verdict. The set is closed: there is no neutral.
type Rating string

const (
	RatingPositive Rating = "positive"
	RatingNegative Rating = "negative"
)

func (r Rating) Valid() bool {
	return r == RatingPositive || r == RatingNegative
}

// Action labels for events the system emits itself. Callers may log
// arbitrary labels; these are the well-known ones.
const (
	ActionUserLogin         = "User Login"
	ActionUserLogout        = "User Logout"
	ActionPriceUpdate       = "Price Update"
	ActionFeedbackSubmitted = "Feedback Submitted"
	ActionPredictionRequest = "Prediction Requested"
)

// PredictionSnapshot captures the forecast attached to a price-related
// activity at the moment it was logged.
type PredictionSnapshot struct {
	CurrentPrice   float64 `json:"currentPrice"`
	PredictedPrice float64 `json:"predictedPrice"`
	Trend          string  `json:"trend"`
}

// Activity is one user- or system-initiated event. Identity fields are a
// snapshot taken at log time, not a live reference to a user profile.
type Activity struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	UserEmail  string              `json:"userEmail"`
	UserName   string              `json:"userName"`
	Action     string              `json:"action"`
	Details    string              `json:"details"`
	Timestamp  time.Time           `json:"timestamp"`
	Prediction *PredictionSnapshot `json:"prediction,omitempty"`
}

// Review is one feedback submission.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	Rating    Rating    `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
