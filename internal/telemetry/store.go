package telemetry

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ActivityRepository persists the full activity sequence. Load must return
// an empty slice (not an error) when nothing usable is persisted yet.
type ActivityRepository interface {
	Load() ([]Activity, error)
	Save([]Activity) error
}

// ReviewRepository persists the full review sequence.
type ReviewRepository interface {
	Load() ([]Review, error)
	Save([]Review) error
}

// Store holds activities and reviews in memory, newest first, and writes
// each collection through to its repository after every append. It is the
// sole writer to persisted storage. Save failures are logged and do not
// roll back the in-memory append.
type Store struct {
	mu         sync.Mutex
	activities []Activity
	reviews    []Review

	activityRepo ActivityRepository
	reviewRepo   ReviewRepository

	// maxRecords caps each collection; 0 means unlimited.
	maxRecords int

	entropy *rand.Rand
}

type Option func(*Store)

// WithActivityRepository sets the persistence backend for activities.
func WithActivityRepository(r ActivityRepository) Option {
	return func(s *Store) { s.activityRepo = r }
}

// WithReviewRepository sets the persistence backend for reviews.
func WithReviewRepository(r ReviewRepository) Option {
	return func(s *Store) { s.reviewRepo = r }
}

// WithMaxRecords caps each collection at n records, dropping the oldest on
// overflow. Zero disables the cap.
func WithMaxRecords(n int) Option {
	return func(s *Store) { s.maxRecords = n }
}

// New builds a store preloaded from the configured repositories. Absent or
// malformed persisted data yields empty collections; a fresh install starts
// clean rather than failing.
func New(opts ...Option) *Store {
	s := &Store{
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	if s.activityRepo != nil {
		if loaded, err := s.activityRepo.Load(); err != nil {
			log.Printf("failed to load persisted activities, starting empty: %v", err)
		} else {
			s.activities = loaded
		}
	}
	if s.reviewRepo != nil {
		if loaded, err := s.reviewRepo.Load(); err != nil {
			log.Printf("failed to load persisted reviews, starting empty: %v", err)
		} else {
			s.reviews = loaded
		}
	}
	return s
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// LogActivity records one event and returns the created record. It never
// fails on well-formed input; persistence errors stay internal.
func (s *Store) LogActivity(userID, userEmail, userName, action, details string, prediction *PredictionSnapshot) Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := Activity{
		ID:         s.newID(),
		UserID:     userID,
		UserEmail:  userEmail,
		UserName:   userName,
		Action:     action,
		Details:    details,
		Timestamp:  time.Now(),
		Prediction: prediction,
	}
	s.activities = append([]Activity{a}, s.activities...)
	if s.maxRecords > 0 && len(s.activities) > s.maxRecords {
		s.activities = s.activities[:s.maxRecords]
	}
	if s.activityRepo != nil {
		if err := s.activityRepo.Save(s.activities); err != nil {
			log.Printf("failed to persist activities: %v", err)
		}
	}
	return a
}

// AddReview records one feedback submission and returns the created record.
func (s *Store) AddReview(userID, userEmail, userName string, rating Rating, comment string) Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := Review{
		ID:        s.newID(),
		UserID:    userID,
		UserEmail: userEmail,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		Timestamp: time.Now(),
	}
	s.reviews = append([]Review{r}, s.reviews...)
	if s.maxRecords > 0 && len(s.reviews) > s.maxRecords {
		s.reviews = s.reviews[:s.maxRecords]
	}
	if s.reviewRepo != nil {
		if err := s.reviewRepo.Save(s.reviews); err != nil {
			log.Printf("failed to persist reviews: %v", err)
		}
	}
	return r
}

// Activities returns all activities, newest first. Callers own display
// limits; the store does not trim reads.
func (s *Store) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Reviews returns all reviews, newest first.
func (s *Store) Reviews() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// ActivitiesByUser returns the activities whose UserID matches exactly,
// preserving overall ordering.
func (s *Store) ActivitiesByUser(userID string) []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Activity
	for _, a := range s.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}
