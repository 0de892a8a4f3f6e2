package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/domain"
)

// MockSummaryRepo is a mock implementation of port.SummaryRepository.
type MockSummaryRepo struct {
	mock.Mock
}

func (m *MockSummaryRepo) Create(ctx context.Context, s *domain.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSummaryRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.Summary, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockSummaryRepo) ListForExport(ctx context.Context) ([]domain.SummaryExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SummaryExportRow), args.Error(1)
}
