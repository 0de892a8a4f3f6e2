package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// CreateVisitInput is the DTO for recording a visit.
type CreateVisitInput struct {
	PatientID uuid.UUID
	VisitDate time.Time
	VisitType string
	Notes     string
}

// VisitService defines the visit management contract.
type VisitService interface {
	Create(ctx context.Context, input *CreateVisitInput) (*domain.Visit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Visit, int, error)
}

type visitService struct {
	visitRepo   port.VisitRepository
	patientRepo port.PatientRepository
}

// NewVisitService creates a new VisitService implementation.
func NewVisitService(visitRepo port.VisitRepository, patientRepo port.PatientRepository) VisitService {
	return &visitService{visitRepo: visitRepo, patientRepo: patientRepo}
}

func (s *visitService) Create(ctx context.Context, input *CreateVisitInput) (*domain.Visit, error) {
	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		return nil, err
	}

	visitDate := input.VisitDate
	if visitDate.IsZero() {
		visitDate = time.Now().UTC()
	}

	v := &domain.Visit{
		ID:        uuid.New(),
		PatientID: input.PatientID,
		VisitDate: visitDate,
		VisitType: input.VisitType,
		Status:    domain.VisitStatusPending,
		Notes:     input.Notes,
	}
	if err := s.visitRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("creating visit: %w", err)
	}
	return v, nil
}

func (s *visitService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	return s.visitRepo.GetByID(ctx, id)
}

func (s *visitService) ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Visit, int, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, 0, err
	}
	return s.visitRepo.ListByPatient(ctx, patientID, offset, limit)
}
