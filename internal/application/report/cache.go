package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache stores computed reports per user. Values are opaque to the
// cache; implementations serialize them.
//
// Every Invalidate advances the user's generation. Callers read the
// generation before loading report inputs and put it in the key, so a
// report computed from data older than the last Invalidate is stored under
// a key that is never read again.
type ReportCache interface {
	// Generation returns the user's current cache generation
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	// Get loads the value under key into dest and reports whether it was found
	Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error)
	// Set stores value under key
	Set(ctx context.Context, userID uuid.UUID, key string, value any) error
	// Invalidate advances the generation and drops every cached report of the user
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Metrics receives dashboard activity
type Metrics interface {
	RecordReportComputed(ctx context.Context, kind string, elapsed time.Duration)
	RecordCacheLookup(ctx context.Context, kind string, hit bool)
}
