package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrNoProvider is returned when the service has nothing to fetch from.
var ErrNoProvider = errors.New("no weather provider configured")

// Service fetches from the provider, normalizes, and publishes snapshots.
type Service struct {
	store    Store
	provider Provider
	location Location
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, location Location) *Service {
	return &Service{
		store:    store,
		provider: provider,
		location: location,
		now:      time.Now,
	}
}

// Location returns the configured location.
func (s *Service) Location() Location {
	return s.location
}

// Fetch retrieves and normalizes one snapshot without publishing it.
func (s *Service) Fetch(ctx context.Context) (Snapshot, error) {
	if s.provider == nil {
		return Snapshot{}, ErrNoProvider
	}

	raw, err := s.provider.Fetch(ctx, s.location)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s fetch for %s: %w", s.provider.Name(), s.location.Key(), err)
	}

	snapshot := Normalize(raw, raw.Location.LocaltimeEpoch)
	snapshot.ID = uuid.NewString()
	snapshot.FetchedAt = s.now().UTC()
	if snapshot.Location == "" {
		snapshot.Location = s.location.Key()
	}
	return snapshot, nil
}

// FetchAndPublish fetches a snapshot and publishes it. On failure the
// previously published snapshot is left in place and the failure recorded.
func (s *Service) FetchAndPublish(ctx context.Context) error {
	snapshot, err := s.Fetch(ctx)
	if err != nil {
		s.store.RecordFailure(err, s.now().UTC())
		return err
	}

	log.Printf("DEBUG: publishing snapshot %s for %s with %d forecast points",
		snapshot.ID, snapshot.Location, len(snapshot.Forecast))
	s.store.Publish(snapshot)
	return nil
}
