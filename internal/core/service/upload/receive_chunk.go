package upload

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
)

// ReceiveChunk accepts one byte range of an upload. Chunks may arrive out of
// order or be re-sent; re-submitting an already accepted range replaces the
// recorded part and is otherwise a no-op. The chunk whose range ends the
// declared length triggers the finalize sequence.
func (s *uploadService) ReceiveChunk(ctx context.Context, req domain.ChunkRequest) (*domain.ChunkResult, error) {

	// Metadata is validated before any storage I/O so malformed uploads
	// fail with nothing transferred.
	meta, err := domain.ParseLayerFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	if req.ContentLength <= 0 || int64(len(req.Body)) != req.ContentLength {
		return nil, fmt.Errorf("%w: body does not match declared content length", domain.ErrChunkOutOfRange)
	}

	mu := s.sessionLock(req.SessionID)
	mu.Lock()
	defer mu.Unlock()

	repo := s.uow.SessionRepo()

	session, err := repo.FindByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.releaseSessionLock(req.SessionID)
		}
		return nil, err
	}
	if session.Status.Terminal() {
		// Nothing else will touch a finalized or aborted session, so its
		// lock entry can go too.
		s.releaseSessionLock(req.SessionID)
		return nil, fmt.Errorf("%w: session is %s", domain.ErrSessionNotFound, session.Status)
	}

	if req.TotalLength != session.TotalLength {
		return nil, fmt.Errorf("%w: declared length %d does not match session length %d",
			domain.ErrChunkOutOfRange, req.TotalLength, session.TotalLength)
	}
	if req.Offset < 0 || req.Offset+req.ContentLength > session.TotalLength {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds upload length %d",
			domain.ErrChunkOutOfRange, req.Offset, req.Offset+req.ContentLength, session.TotalLength)
	}

	terminal := req.Offset+req.ContentLength == session.TotalLength

	parts, err := repo.Parts(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// A terminal chunk re-sent after a failed finalize: every byte is
	// already stored, so only the finalize sequence is retried.
	if session.Status == domain.UploadSessionStatusCompleting &&
		terminal && domain.PartsCover(parts, session.TotalLength) {
		return s.retryFinalize(ctx, session, meta, parts, req.Overwrite)
	}

	// Part numbering assumes uniform chunk sizes except for the final
	// chunk; anything else is rejected rather than numbered wrongly.
	if !terminal && len(parts) > 0 && req.ContentLength != parts[0].Length {
		return nil, fmt.Errorf("%w: got %d bytes, earlier chunks were %d",
			domain.ErrChunkSizeMismatch, req.ContentLength, parts[0].Length)
	}

	partNumber := partNumberFor(req, parts, terminal)

	etag, err := s.storage.UploadPart(ctx, session.StorageKey, session.ProviderUploadID, partNumber, req.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: part %d: %v", domain.ErrStorageUpload, partNumber, err)
	}

	now := time.Now()
	part := domain.UploadPart{
		PartNumber: partNumber,
		Offset:     req.Offset,
		Length:     req.ContentLength,
		ETag:       etag,
		ReceivedAt: now,
	}
	if err := repo.UpsertPart(ctx, req.SessionID, part); err != nil {
		return nil, err
	}
	if session.DeclaredName != req.Filename {
		if err := repo.SetDeclaredName(ctx, req.SessionID, req.Filename); err != nil {
			return nil, err
		}
		session.DeclaredName = req.Filename
	}
	if err := repo.Touch(ctx, req.SessionID, now); err != nil {
		return nil, err
	}

	parts = mergePart(parts, part)

	if !terminal {
		return &domain.ChunkResult{
			Status:             session.Status,
			PartNumber:         partNumber,
			NextExpectedOffset: domain.NextExpectedOffset(parts),
		}, nil
	}

	if err := repo.UpdateStatus(ctx, req.SessionID, domain.UploadSessionStatusCompleting); err != nil {
		return nil, err
	}
	session.Status = domain.UploadSessionStatusCompleting

	if err := s.assembleObject(ctx, session, parts); err != nil {
		return nil, err
	}

	layer, err := s.finalize(ctx, session, meta, s.overwrite(req.Overwrite))
	if err != nil {
		return nil, err
	}

	return &domain.ChunkResult{
		Status:             domain.UploadSessionStatusFinalized,
		PartNumber:         partNumber,
		NextExpectedOffset: session.TotalLength,
		Layer:              layer,
	}, nil
}

func (s *uploadService) retryFinalize(
	ctx context.Context,
	session *domain.UploadSession,
	meta *domain.LayerMetadata,
	parts []domain.UploadPart,
	overwrite *bool,
) (*domain.ChunkResult, error) {

	if err := s.assembleObject(ctx, session, parts); err != nil {
		return nil, err
	}

	layer, err := s.finalize(ctx, session, meta, s.overwrite(overwrite))
	if err != nil {
		return nil, err
	}

	return &domain.ChunkResult{
		Status:             domain.UploadSessionStatusFinalized,
		PartNumber:         parts[len(parts)-1].PartNumber,
		NextExpectedOffset: session.TotalLength,
		Layer:              layer,
	}, nil
}

// assembleObject completes the multipart upload unless an earlier attempt
// already assembled the object.
func (s *uploadService) assembleObject(ctx context.Context, session *domain.UploadSession, parts []domain.UploadPart) error {
	if _, err := s.storage.StatObject(ctx, session.StorageKey); err == nil {
		return nil
	}

	if err := s.storage.CompleteMultipartUpload(ctx, session.StorageKey, session.ProviderUploadID, parts); err != nil {
		return fmt.Errorf("%w: complete multipart: %v", domain.ErrStorageUpload, err)
	}
	return nil
}

// partNumberFor assigns the multipart part number for a chunk. Parts are
// assumed uniform-size, so the number follows from the offset; a terminal
// chunk of a different size takes the next number after the last recorded
// part.
func partNumberFor(req domain.ChunkRequest, parts []domain.UploadPart, terminal bool) int {
	if terminal && len(parts) > 0 && req.ContentLength != parts[0].Length {
		return parts[len(parts)-1].PartNumber + 1
	}
	return int(req.Offset/req.ContentLength) + 1
}

// mergePart replaces or inserts a part, keeping the list ordered by part
// number like the store does.
func mergePart(parts []domain.UploadPart, part domain.UploadPart) []domain.UploadPart {
	for i, p := range parts {
		if p.PartNumber == part.PartNumber {
			parts[i] = part
			return parts
		}
	}
	parts = append(parts, part)
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].PartNumber < parts[j].PartNumber
	})
	return parts
}

func (s *uploadService) overwrite(requested *bool) bool {
	if requested != nil {
		return *requested
	}
	return s.cfg.OverwriteDuplicates
}
