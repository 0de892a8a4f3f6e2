package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *domain.RawDocument) error {
	d.CreatedAt = time.Now().UTC()

	query := `INSERT INTO raw_documents (
		id, visit_id, filename, file_path, file_type, file_size, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.VisitID, d.Filename, d.FilePath, d.FileType, d.FileSize, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]domain.RawDocument, error) {
	var docs []domain.RawDocument
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM raw_documents WHERE visit_id = $1 ORDER BY created_at DESC", visitID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByVisit: %w", err)
	}
	return docs, nil
}
