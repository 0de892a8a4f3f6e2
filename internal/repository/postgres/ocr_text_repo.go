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

type ocrTextRepo struct {
	db *sqlx.DB
}

// NewOCRTextRepo creates a new PostgreSQL-backed OCRTextRepository.
func NewOCRTextRepo(db *sqlx.DB) port.OCRTextRepository {
	return &ocrTextRepo{db: db}
}

func (r *ocrTextRepo) Create(ctx context.Context, t *domain.OCRText) error {
	t.CreatedAt = time.Now().UTC()

	query := `INSERT INTO ocr_texts (
		id, visit_id, raw_text, confidence_score, processing_time, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6
	)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.VisitID, t.RawText, t.ConfidenceScore, t.ProcessingTime, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("ocrTextRepo.Create: %w", err)
	}
	return nil
}

func (r *ocrTextRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.OCRText, error) {
	var t domain.OCRText
	err := r.db.GetContext(ctx, &t,
		"SELECT * FROM ocr_texts WHERE visit_id = $1 ORDER BY created_at DESC LIMIT 1", visitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOCRTextNotFound
		}
		return nil, fmt.Errorf("ocrTextRepo.GetLatestByVisit: %w", err)
	}
	return &t, nil
}
