package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/domain"
)

// MockCleanedTextRepo is a mock implementation of port.CleanedTextRepository.
type MockCleanedTextRepo struct {
	mock.Mock
}

func (m *MockCleanedTextRepo) Create(ctx context.Context, t *domain.CleanedText) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockCleanedTextRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.CleanedText, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CleanedText), args.Error(1)
}
