package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// CreatePatientInput is the DTO for registering a patient.
type CreatePatientInput struct {
	Name           string
	Age            string
	Gender         string
	Contact        string
	MedicalHistory string
}

// PatientService defines the patient management contract.
type PatientService interface {
	Create(ctx context.Context, input *CreatePatientInput) (*domain.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientService struct {
	patientRepo port.PatientRepository
}

// NewPatientService creates a new PatientService implementation.
func NewPatientService(patientRepo port.PatientRepository) PatientService {
	return &patientService{patientRepo: patientRepo}
}

func (s *patientService) Create(ctx context.Context, input *CreatePatientInput) (*domain.Patient, error) {
	p := &domain.Patient{
		ID:             uuid.New(),
		Name:           input.Name,
		Age:            input.Age,
		Gender:         input.Gender,
		Contact:        input.Contact,
		MedicalHistory: input.MedicalHistory,
	}
	if err := s.patientRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating patient: %w", err)
	}
	return p, nil
}

func (s *patientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

func (s *patientService) List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error) {
	return s.patientRepo.List(ctx, offset, limit)
}

func (s *patientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patientRepo.Delete(ctx, id)
}
