package port

import (
	"context"
	"time"
)

// CleanupService is service that reclaims abandoned upload sessions
type CleanupService interface {
	CleanupStaleSessions(ctx context.Context, now time.Time) error
}
