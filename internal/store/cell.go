package store

import (
	"errors"
	"sync"
	"time"

	"github.com/bassaaaa/home-clock/internal/weather"
)

var (
	// ErrNotFound is returned when no snapshot has been published yet.
	ErrNotFound = errors.New("no weather snapshot published yet")
)

// Status summarizes the fetch history behind the cell.
type Status struct {
	HasSnapshot         bool      `json:"hasSnapshot"`
	SnapshotID          string    `json:"snapshotId,omitempty"`
	LastSuccess         time.Time `json:"lastSuccess,omitempty"`
	LastFailure         time.Time `json:"lastFailure,omitempty"`
	LastError           string    `json:"lastError,omitempty"`
	Successes           int       `json:"successes"`
	Failures            int       `json:"failures"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
}

// Cell is a concurrency-safe single-slot holder for the latest snapshot.
// Publish replaces the slot; readers never block on a fetch.
type Cell struct {
	mu sync.RWMutex

	snapshot *weather.Snapshot
	status   Status
}

// NewCell creates an empty cell.
func NewCell() *Cell {
	return &Cell{}
}

// Publish stores snapshot, superseding whatever was there.
func (c *Cell) Publish(snapshot weather.Snapshot) {
	// Copy the forecast so later mutation by the publisher cannot leak in.
	forecast := make([]weather.ForecastPoint, len(snapshot.Forecast))
	copy(forecast, snapshot.Forecast)
	snapshot.Forecast = forecast

	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = &snapshot
	c.status.HasSnapshot = true
	c.status.SnapshotID = snapshot.ID
	c.status.LastSuccess = snapshot.FetchedAt
	c.status.Successes++
	c.status.ConsecutiveFailures = 0
}

// RecordFailure notes a failed fetch; the current snapshot is untouched.
func (c *Cell) RecordFailure(err error, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.LastFailure = at
	if err != nil {
		c.status.LastError = err.Error()
	}
	c.status.Failures++
	c.status.ConsecutiveFailures++
}

// Latest returns the most recent snapshot and whether one exists.
func (c *Cell) Latest() (weather.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return weather.Snapshot{}, false
	}
	return *c.snapshot, true
}

// GetLatest is Latest with ErrNotFound for the empty state.
func (c *Cell) GetLatest() (weather.Snapshot, error) {
	snap, ok := c.Latest()
	if !ok {
		return weather.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Status returns a copy of the fetch status.
func (c *Cell) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}
