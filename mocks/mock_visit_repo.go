package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/domain"
)

// MockVisitRepo is a mock implementation of port.VisitRepository.
type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) Create(ctx context.Context, v *domain.Visit) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVisitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Visit, int, error) {
	args := m.Called(ctx, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Visit), args.Int(1), args.Error(2)
}

func (m *MockVisitRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VisitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
