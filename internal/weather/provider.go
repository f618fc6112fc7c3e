package weather

import (
	"context"
	"time"
)

// Provider abstracts the weather data source (WeatherAPI.com in production).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (RawResponse, error)
}

// Store is the contract the snapshot cell must satisfy.
type Store interface {
	Publish(snapshot Snapshot)
	RecordFailure(err error, at time.Time)
}
