package telemetry

import (
	"path/filepath"
	"testing"
)

func TestLogActivityNewestFirst(t *testing.T) {
	s := New()

	s.LogActivity("u1", "u1@example.com", "User One", ActionUserLogin, "first", nil)
	s.LogActivity("u1", "u1@example.com", "User One", ActionPriceUpdate, "second", nil)
	s.LogActivity("u2", "u2@example.com", "User Two", ActionUserLogin, "third", nil)

	got := s.Activities()
	if len(got) != 3 {
		t.Fatalf("want 3 activities, got %d", len(got))
	}
	if got[0].Details != "third" || got[1].Details != "second" || got[2].Details != "first" {
		t.Fatalf("not newest first: %q %q %q", got[0].Details, got[1].Details, got[2].Details)
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].Timestamp.Before(got[i+1].Timestamp) {
			t.Fatalf("timestamps not non-decreasing toward the front at %d", i)
		}
	}
}

func TestLogActivityReturnsCreatedRecord(t *testing.T) {
	s := New()

	snap := &PredictionSnapshot{CurrentPrice: 2000, PredictedPrice: 2010, Trend: "up"}
	a := s.LogActivity("u1", "u1@example.com", "User One", ActionPriceUpdate, "tick", snap)

	if a.ID == "" {
		t.Fatalf("created activity has empty id")
	}
	if a.Prediction == nil || a.Prediction.PredictedPrice != 2010 {
		t.Fatalf("prediction snapshot not attached: %+v", a.Prediction)
	}
	if a.Timestamp.IsZero() {
		t.Fatalf("timestamp not assigned")
	}

	b := s.LogActivity("u1", "u1@example.com", "User One", ActionUserLogin, "login", nil)
	if b.ID == a.ID {
		t.Fatalf("ids must be unique, both %q", a.ID)
	}
	if b.Prediction != nil {
		t.Fatalf("prediction must be absent for non-price events")
	}
}

func TestActivitiesByUser(t *testing.T) {
	s := New()

	s.LogActivity("a", "a@example.com", "A", ActionUserLogin, "a1", nil)
	s.LogActivity("b", "b@example.com", "B", ActionUserLogin, "b1", nil)
	s.LogActivity("a", "a@example.com", "A", ActionPriceUpdate, "a2", nil)

	got := s.ActivitiesByUser("a")
	if len(got) != 2 {
		t.Fatalf("want 2 activities for a, got %d", len(got))
	}
	if got[0].Details != "a2" || got[1].Details != "a1" {
		t.Fatalf("filter broke ordering: %q %q", got[0].Details, got[1].Details)
	}
	if n := len(s.ActivitiesByUser("missing")); n != 0 {
		t.Fatalf("want 0 activities for unknown user, got %d", n)
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := New()
	s.LogActivity("a", "a@example.com", "A", ActionUserLogin, "original", nil)

	got := s.Activities()
	got[0].Details = "mutated"
	if s.Activities()[0].Details != "original" {
		t.Fatalf("internal state mutated via returned slice")
	}
}

func TestAddReview(t *testing.T) {
	s := New()

	r := s.AddReview("u1", "u1@example.com", "User One", RatingPositive, "helpful")
	if r.ID == "" || r.Rating != RatingPositive || r.Comment != "helpful" {
		t.Fatalf("unexpected review: %+v", r)
	}
	s.AddReview("u2", "u2@example.com", "User Two", RatingNegative, "")

	got := s.Reviews()
	if len(got) != 2 {
		t.Fatalf("want 2 reviews, got %d", len(got))
	}
	if got[0].Rating != RatingNegative || got[1].Rating != RatingPositive {
		t.Fatalf("not newest first: %+v", got)
	}
}

func TestMaxRecordsDropsOldest(t *testing.T) {
	s := New(WithMaxRecords(2))

	s.LogActivity("u", "u@example.com", "U", ActionUserLogin, "one", nil)
	s.LogActivity("u", "u@example.com", "U", ActionUserLogin, "two", nil)
	s.LogActivity("u", "u@example.com", "U", ActionUserLogin, "three", nil)

	got := s.Activities()
	if len(got) != 2 {
		t.Fatalf("want 2 activities after cap, got %d", len(got))
	}
	if got[0].Details != "three" || got[1].Details != "two" {
		t.Fatalf("cap dropped wrong record: %q %q", got[0].Details, got[1].Details)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	actRepo, err := NewFileRepository[Activity](filepath.Join(dir, "activities.json"))
	if err != nil {
		t.Fatalf("init activities repo: %v", err)
	}
	revRepo, err := NewFileRepository[Review](filepath.Join(dir, "reviews.json"))
	if err != nil {
		t.Fatalf("init reviews repo: %v", err)
	}

	s1 := New(WithActivityRepository(actRepo), WithReviewRepository(revRepo))
	s1.LogActivity("a", "a@example.com", "A", ActionUserLogin, "first",
		&PredictionSnapshot{CurrentPrice: 2000, PredictedPrice: 1990, Trend: "down"})
	s1.LogActivity("b", "b@example.com", "B", ActionPriceUpdate, "second", nil)
	s1.AddReview("a", "a@example.com", "A", RatingPositive, "nice")

	s2 := New(WithActivityRepository(actRepo), WithReviewRepository(revRepo))

	want := s1.Activities()
	got := s2.Activities()
	if len(got) != len(want) {
		t.Fatalf("want %d activities after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Details != want[i].Details || got[i].UserID != want[i].UserID {
			t.Fatalf("activity %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Fatalf("activity %d timestamp mismatch: got %v want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
	}
	if got[0].Prediction != nil {
		t.Fatalf("newest activity should carry no snapshot")
	}
	if got[1].Prediction == nil || got[1].Prediction.Trend != "down" {
		t.Fatalf("snapshot lost on reload: %+v", got[1].Prediction)
	}

	reviews := s2.Reviews()
	if len(reviews) != 1 || reviews[0].Comment != "nice" {
		t.Fatalf("reviews lost on reload: %+v", reviews)
	}
}

func TestStoreStartsCleanWithoutRepos(t *testing.T) {
	s := New()
	if len(s.Activities()) != 0 || len(s.Reviews()) != 0 {
		t.Fatalf("fresh store must be empty")
	}
}
