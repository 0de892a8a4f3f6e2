package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

type summaryRepo struct {
	db *sqlx.DB
}

// NewSummaryRepo creates a new PostgreSQL-backed SummaryRepository.
func NewSummaryRepo(db *sqlx.DB) port.SummaryRepository {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) Create(ctx context.Context, s *domain.Summary) error {
	s.CreatedAt = time.Now().UTC()

	query := `INSERT INTO summaries (
		id, visit_id, summary_text, key_findings, generated_by, processing_time, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.VisitID, s.SummaryText, s.KeyFindings, s.GeneratedBy, s.ProcessingTime, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("summaryRepo.Create: %w", err)
	}
	return nil
}

func (r *summaryRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.Summary, error) {
	var s domain.Summary
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM summaries WHERE visit_id = $1 ORDER BY created_at DESC LIMIT 1", visitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("summaryRepo.GetLatestByVisit: %w", err)
	}
	return &s, nil
}

// ListForExport returns the latest summary per visit joined with patient and
// visit details, ordered by visit date.
func (r *summaryRepo) ListForExport(ctx context.Context) ([]domain.SummaryExportRow, error) {
	query := `SELECT DISTINCT ON (s.visit_id)
		p.name AS patient_name,
		v.id AS visit_id,
		v.visit_date AS visit_date,
		v.status AS status,
		s.summary_text AS summary_text,
		s.key_findings AS key_findings,
		s.created_at AS created_at
	FROM summaries s
	JOIN visits v ON v.id = s.visit_id
	JOIN patients p ON p.id = v.patient_id
	ORDER BY s.visit_id, s.created_at DESC`

	var rows []domain.SummaryExportRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("summaryRepo.ListForExport: %w", err)
	}
	return rows, nil
}
