// Package domain defines the business logic for the activities directory.
package domain

import (
	"context"
	"time"

	"example.com/activities/internal/observability"
)

// ActivityRepository captures persistence operations against the activities collection.
type ActivityRepository interface {
	List(ctx context.Context) ([]Activity, error)
	FindByName(ctx context.Context, name string) (*Activity, error)
	// AddParticipant appends the email to the named activity's roster only if
	// it is not already present. It reports whether a document was modified.
	AddParticipant(ctx context.Context, name, email string) (bool, error)
	// RemoveParticipant removes the email from the named activity's roster.
	// It reports whether a document was modified.
	RemoveParticipant(ctx context.Context, name, email string) (bool, error)
}

// EventPublisher emits enrollment change notifications. Publishing is
// best-effort: implementations log failures instead of returning them.
type EventPublisher interface {
	SignedUp(ctx context.Context, activity, email string)
	Unregistered(ctx context.Context, activity, email string)
}

// NopPublisher discards all events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) SignedUp(context.Context, string, string)     {}
func (NopPublisher) Unregistered(context.Context, string, string) {}

// Service orchestrates catalog reads and enrollment changes.
type Service struct {
	repo      ActivityRepository
	publisher EventPublisher
}

// NewService constructs a Service. A nil publisher disables event emission.
func NewService(repo ActivityRepository, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher}
}

// Catalog returns every activity keyed by name.
func (s *Service) Catalog(ctx context.Context) (map[string]Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]Activity, len(activities))
	for _, activity := range activities {
		catalog[activity.Name] = activity
	}
	return catalog, nil
}

// SignUp adds the email to the named activity's roster.
//
// The membership precondition is checked against a fresh read so the caller
// gets an accurate NotFound/Conflict distinction, but the write itself is a
// single conditional update. Two concurrent signups for the same email can
// both pass the read; the store arbitrates and the loser surfaces as
// ErrEnrollmentConflict.
func (s *Service) SignUp(ctx context.Context, activityName, email string) error {
	activity, err := s.repo.FindByName(ctx, activityName)
	if err != nil {
		return err
	}
	if activity == nil {
		observability.RecordRejection("not_found")
		return ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		observability.RecordRejection("already_enrolled")
		return ErrAlreadyEnrolled
	}

	modified, err := s.repo.AddParticipant(ctx, activityName, email)
	if err != nil {
		return err
	}
	if !modified {
		observability.RecordRejection("write_conflict")
		return ErrEnrollmentConflict
	}

	observability.RecordSignup(activityName, time.Now().UTC())
	s.publisher.SignedUp(ctx, activityName, email)
	return nil
}

// Unregister removes the email from the named activity's roster.
func (s *Service) Unregister(ctx context.Context, activityName, email string) error {
	activity, err := s.repo.FindByName(ctx, activityName)
	if err != nil {
		return err
	}
	if activity == nil {
		observability.RecordRejection("not_found")
		return ErrActivityNotFound
	}
	if !activity.HasParticipant(email) {
		observability.RecordRejection("not_enrolled")
		return ErrNotEnrolled
	}

	modified, err := s.repo.RemoveParticipant(ctx, activityName, email)
	if err != nil {
		return err
	}
	if !modified {
		observability.RecordRejection("write_conflict")
		return ErrEnrollmentConflict
	}

	observability.RecordWithdrawal(activityName, time.Now().UTC())
	s.publisher.Unregistered(ctx, activityName, email)
	return nil
}
