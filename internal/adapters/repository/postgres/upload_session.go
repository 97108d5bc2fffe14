package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
)

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository creates a new sqlUploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

const sessionColumns = `
	id, owner, declared_name, content_type, total_length, storage_key,
	provider_upload_id, status, created_at, last_activity_at`

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (
			id, owner, declared_name, content_type, total_length, storage_key,
			provider_upload_id, status, created_at, last_activity_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.Owner,
		session.DeclaredName,
		session.ContentType,
		session.TotalLength,
		session.StorageKey,
		session.ProviderUploadID,
		session.Status,
		session.CreatedAt,
		session.LastActivityAt,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *sqlUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM upload_session WHERE id = $1`

	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

func (s *sqlUploadSessionRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM upload_session
		WHERE id = $1 AND status IN ('created', 'receiving', 'completing')`

	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

// SetProviderUploadID records the backend-issued multipart upload identifier
func (s *sqlUploadSessionRepository) SetProviderUploadID(ctx context.Context, id uuid.UUID, providerUploadID string) error {
	query := `UPDATE upload_session SET provider_upload_id = $1 WHERE id = $2`

	return s.execExpectingRow(ctx, query, providerUploadID, id)
}

// SetDeclaredName records the client-supplied filename
func (s *sqlUploadSessionRepository) SetDeclaredName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE upload_session SET declared_name = $1 WHERE id = $2`

	return s.execExpectingRow(ctx, query, name, id)
}

// UpsertPart records a part, replacing any prior record with the same part
// number so chunk re-submission stays idempotent
func (s *sqlUploadSessionRepository) UpsertPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error {
	query := `
		INSERT INTO upload_part (session_id, part_number, byte_offset, byte_length, etag, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, part_number)
		DO UPDATE SET byte_offset = $3, byte_length = $4, etag = $5, received_at = $6`

	_, err := s.db.ExecContext(
		ctx,
		query,
		sessionID,
		part.PartNumber,
		part.Offset,
		part.Length,
		part.ETag,
		part.ReceivedAt,
	)
	return err
}

// Parts returns recorded parts ordered by part number
func (s *sqlUploadSessionRepository) Parts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error) {
	query := `
		SELECT part_number, byte_offset, byte_length, etag, received_at
		FROM upload_part
		WHERE session_id = $1
		ORDER BY part_number`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.UploadPart
	for rows.Next() {
		var p domain.UploadPart
		if err := rows.Scan(&p.PartNumber, &p.Offset, &p.Length, &p.ETag, &p.ReceivedAt); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return parts, nil
}

// Touch updates the last activity timestamp
func (s *sqlUploadSessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE upload_session SET last_activity_at = $1 WHERE id = $2`

	return s.execExpectingRow(ctx, query, at, id)
}

// UpdateStatus updates status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	query := `UPDATE upload_session SET status = $1 WHERE id = $2`

	return s.execExpectingRow(ctx, query, status, id)
}

func (s *sqlUploadSessionRepository) FindAllStale(ctx context.Context, cutoff time.Time) ([]domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM upload_session
		WHERE status IN ('created', 'receiving', 'completing') AND last_activity_at < $1`

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := rows.Scan(
			&row.ID,
			&row.Owner,
			&row.DeclaredName,
			&row.ContentType,
			&row.TotalLength,
			&row.StorageKey,
			&row.ProviderUploadID,
			&row.Status,
			&row.CreatedAt,
			&row.LastActivityAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (s *sqlUploadSessionRepository) scanSession(row *sql.Row) (*domain.UploadSession, error) {
	var r dbUploadSession
	err := row.Scan(
		&r.ID,
		&r.Owner,
		&r.DeclaredName,
		&r.ContentType,
		&r.TotalLength,
		&r.StorageKey,
		&r.ProviderUploadID,
		&r.Status,
		&r.CreatedAt,
		&r.LastActivityAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return r.ToDomain(), nil
}

func (s *sqlUploadSessionRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

type dbUploadSession struct {
	ID               uuid.UUID `db:"id"`
	Owner            uuid.UUID `db:"owner"`
	DeclaredName     string    `db:"declared_name"`
	ContentType      string    `db:"content_type"`
	TotalLength      int64     `db:"total_length"`
	StorageKey       string    `db:"storage_key"`
	ProviderUploadID string    `db:"provider_upload_id"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	LastActivityAt   time.Time `db:"last_activity_at"`
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() *domain.UploadSession {
	return &domain.UploadSession{
		ID:               s.ID,
		Owner:            s.Owner,
		DeclaredName:     s.DeclaredName,
		ContentType:      s.ContentType,
		TotalLength:      s.TotalLength,
		StorageKey:       s.StorageKey,
		ProviderUploadID: s.ProviderUploadID,
		Status:           domain.UploadSessionStatus(s.Status),
		CreatedAt:        s.CreatedAt,
		LastActivityAt:   s.LastActivityAt,
	}
}
