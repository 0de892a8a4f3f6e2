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

type patientRepo struct {
	db *sqlx.DB
}

// NewPatientRepo creates a new PostgreSQL-backed PatientRepository.
func NewPatientRepo(db *sqlx.DB) port.PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, p *domain.Patient) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO patients (
		id, name, age, gender, contact, medical_history, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8
	)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, p.MedicalHistory, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("patientRepo.Create: %w", err)
	}
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	var p domain.Patient
	err := r.db.GetContext(ctx, &p, "SELECT * FROM patients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("patientRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *patientRepo) List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM patients")
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.List count: %w", err)
	}

	var patients []domain.Patient
	err = r.db.SelectContext(ctx, &patients,
		"SELECT * FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.List: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("patientRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patientRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}
