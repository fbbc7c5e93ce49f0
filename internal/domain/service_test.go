package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogKeyedByName(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	catalog, err := service.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	require.Contains(t, catalog, "Chess Club")
	require.Contains(t, catalog, "Programming Class")
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, catalog["Chess Club"].Participants)
}

func TestSignUpAppendsEmailOnce(t *testing.T) {
	repo := newFakeRepo()
	publisher := &recordingPublisher{}
	service := NewService(repo, publisher)

	err := service.SignUp(context.Background(), "Chess Club", "new@mergington.edu")
	require.NoError(t, err)

	require.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu", "new@mergington.edu"},
		repo.participants("Chess Club"))
	require.Equal(t, 1, publisher.signups)
	require.Equal(t, 0, publisher.withdrawals)
}

func TestSignUpDuplicateFailsAndLeavesRosterIntact(t *testing.T) {
	repo := newFakeRepo()
	publisher := &recordingPublisher{}
	service := NewService(repo, publisher)

	err := service.SignUp(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	require.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu"},
		repo.participants("Chess Club"))
	require.Equal(t, 0, publisher.signups)
}

func TestSignUpUnknownActivity(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	err := service.SignUp(context.Background(), "Knitting Circle", "new@mergington.edu")
	require.ErrorIs(t, err, ErrActivityNotFound)
	require.Equal(t, 0, repo.writes)
}

func TestSignUpSurfacesLostRace(t *testing.T) {
	repo := newFakeRepo()
	repo.forceUnmodified = true
	service := NewService(repo, nil)

	err := service.SignUp(context.Background(), "Chess Club", "new@mergington.edu")
	require.ErrorIs(t, err, ErrEnrollmentConflict)
}

func TestUnregisterRemovesOnePreservingOrder(t *testing.T) {
	repo := newFakeRepo()
	publisher := &recordingPublisher{}
	service := NewService(repo, publisher)

	err := service.Unregister(context.Background(), "Programming Class", "emma@mergington.edu")
	require.NoError(t, err)

	require.Equal(t, []string{"sophia@mergington.edu"}, repo.participants("Programming Class"))
	require.Equal(t, 1, publisher.withdrawals)
}

func TestUnregisterAbsentEmail(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	err := service.Unregister(context.Background(), "Chess Club", "stranger@mergington.edu")
	require.ErrorIs(t, err, ErrNotEnrolled)
	require.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu"},
		repo.participants("Chess Club"))
}

func TestUnregisterUnknownActivity(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	err := service.Unregister(context.Background(), "Knitting Circle", "michael@mergington.edu")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestSignUpThenUnregisterRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	before := repo.participants("Chess Club")

	require.NoError(t, service.SignUp(context.Background(), "Chess Club", "transient@mergington.edu"))
	require.NoError(t, service.Unregister(context.Background(), "Chess Club", "transient@mergington.edu"))

	require.Equal(t, before, repo.participants("Chess Club"))
}

func TestChessClubScenario(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, service.SignUp(ctx, "Chess Club", "new@mergington.edu"))
	require.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu", "new@mergington.edu"},
		repo.participants("Chess Club"))

	require.ErrorIs(t, service.SignUp(ctx, "Chess Club", "new@mergington.edu"), ErrAlreadyEnrolled)

	require.NoError(t, service.Unregister(ctx, "Chess Club", "daniel@mergington.edu"))
	require.Equal(t,
		[]string{"michael@mergington.edu", "new@mergington.edu"},
		repo.participants("Chess Club"))
}

func TestStoreUnavailablePassesThrough(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	service := NewService(repo, nil)

	err := service.SignUp(context.Background(), "Chess Club", "new@mergington.edu")
	require.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = service.Catalog(context.Background())
	require.NoError(t, err)
}

type fakeRepo struct {
	rosters map[string][]string
	order   []string

	findErr         error
	forceUnmodified bool
	writes          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rosters: map[string][]string{
			"Chess Club":        {"michael@mergington.edu", "daniel@mergington.edu"},
			"Programming Class": {"emma@mergington.edu", "sophia@mergington.edu"},
		},
		order: []string{"Chess Club", "Programming Class"},
	}
}

func (f *fakeRepo) participants(name string) []string {
	return append([]string(nil), f.rosters[name]...)
}

func (f *fakeRepo) List(ctx context.Context) ([]Activity, error) {
	out := make([]Activity, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, Activity{Name: name, Participants: f.participants(name)})
	}
	return out, nil
}

func (f *fakeRepo) FindByName(ctx context.Context, name string) (*Activity, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	roster, ok := f.rosters[name]
	if !ok {
		return nil, nil
	}
	return &Activity{Name: name, Participants: append([]string(nil), roster...)}, nil
}

func (f *fakeRepo) AddParticipant(ctx context.Context, name, email string) (bool, error) {
	f.writes++
	if f.forceUnmodified {
		return false, nil
	}
	roster, ok := f.rosters[name]
	if !ok {
		return false, nil
	}
	for _, existing := range roster {
		if existing == email {
			return false, nil
		}
	}
	f.rosters[name] = append(roster, email)
	return true, nil
}

func (f *fakeRepo) RemoveParticipant(ctx context.Context, name, email string) (bool, error) {
	f.writes++
	if f.forceUnmodified {
		return false, nil
	}
	roster, ok := f.rosters[name]
	if !ok {
		return false, nil
	}
	for i, existing := range roster {
		if existing == email {
			f.rosters[name] = append(append([]string(nil), roster[:i]...), roster[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type recordingPublisher struct {
	signups     int
	withdrawals int
}

func (p *recordingPublisher) SignedUp(ctx context.Context, activity, email string)     { p.signups++ }
func (p *recordingPublisher) Unregistered(ctx context.Context, activity, email string) { p.withdrawals++ }

var _ ActivityRepository = (*fakeRepo)(nil)
