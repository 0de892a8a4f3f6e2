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

type visitRepo struct {
	db *sqlx.DB
}

// NewVisitRepo creates a new PostgreSQL-backed VisitRepository.
func NewVisitRepo(db *sqlx.DB) port.VisitRepository {
	return &visitRepo{db: db}
}

func (r *visitRepo) Create(ctx context.Context, v *domain.Visit) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `INSERT INTO visits (
		id, patient_id, visit_date, visit_type, status, notes, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8
	)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.PatientID, v.VisitDate, v.VisitType, v.Status, v.Notes, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("visitRepo.Create: %w", err)
	}
	return nil
}

func (r *visitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	var v domain.Visit
	err := r.db.GetContext(ctx, &v, "SELECT * FROM visits WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, fmt.Errorf("visitRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *visitRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Visit, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM visits WHERE patient_id = $1", patientID)
	if err != nil {
		return nil, 0, fmt.Errorf("visitRepo.ListByPatient count: %w", err)
	}

	var visits []domain.Visit
	err = r.db.SelectContext(ctx, &visits,
		`SELECT * FROM visits WHERE patient_id = $1
		 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("visitRepo.ListByPatient: %w", err)
	}
	return visits, total, nil
}

func (r *visitRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VisitStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE visits SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("visitRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("visitRepo.UpdateStatus rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}
