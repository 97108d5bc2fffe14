package cleanup

import (
	"context"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"
)

// CleanupStaleSessions aborts sessions idle past the TTL and releases their
// storage-side multipart state. This bounds the storage cost of uploads that
// start but never finish.
func (c *cleanupService) CleanupStaleSessions(ctx context.Context, now time.Time) error {

	cutoff := now.Add(-c.sessionTTL)
	sessions, err := c.uow.SessionRepo().FindAllStale(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, session := range sessions {

		txErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {

			// Abort on the storage side first so the multipart state is
			// never orphaned by a lost session record.
			if session.ProviderUploadID != "" {
				if err := c.storage.AbortMultipartUpload(ctx, session.StorageKey, session.ProviderUploadID); err != nil {
					return err
				}
			}

			return uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted)
		})
		if txErr != nil {
			c.logger.Error("failed to abort stale session", "session_id", session.ID, "error", txErr)
			continue
		}

		// An assembled-but-unfinalized object may exist when the session
		// died between completing and registration.
		if err := c.storage.DeleteObject(ctx, session.StorageKey); err != nil {
			c.logger.Warn("failed to delete partial object", "key", session.StorageKey, "error", err)
		}

		c.logger.Info("aborted stale upload session",
			"session_id", session.ID,
			"last_activity_at", session.LastActivityAt,
		)
	}

	return nil
}
