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

type cleanedTextRepo struct {
	db *sqlx.DB
}

// NewCleanedTextRepo creates a new PostgreSQL-backed CleanedTextRepository.
func NewCleanedTextRepo(db *sqlx.DB) port.CleanedTextRepository {
	return &cleanedTextRepo{db: db}
}

func (r *cleanedTextRepo) Create(ctx context.Context, t *domain.CleanedText) error {
	t.CreatedAt = time.Now().UTC()

	query := `INSERT INTO cleaned_texts (
		id, visit_id, cleaned_text, extracted_data, processing_time, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6
	)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.VisitID, t.CleanedText, t.ExtractedData, t.ProcessingTime, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("cleanedTextRepo.Create: %w", err)
	}
	return nil
}

func (r *cleanedTextRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.CleanedText, error) {
	var t domain.CleanedText
	err := r.db.GetContext(ctx, &t,
		"SELECT * FROM cleaned_texts WHERE visit_id = $1 ORDER BY created_at DESC LIMIT 1", visitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCleanedTextNotFound
		}
		return nil, fmt.Errorf("cleanedTextRepo.GetLatestByVisit: %w", err)
	}
	return &t, nil
}
