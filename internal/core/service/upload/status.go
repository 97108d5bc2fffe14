package upload

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// Status returns the next expected offset for a resuming client. It only
// reads the part list and does not contend with an in-flight finalize.
func (s *uploadService) Status(ctx context.Context, sessionID uuid.UUID) (int64, error) {

	if _, err := s.uow.SessionRepo().FindByID(ctx, sessionID); err != nil {
		return 0, err
	}

	parts, err := s.uow.SessionRepo().Parts(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	return domain.NextExpectedOffset(parts), nil
}
