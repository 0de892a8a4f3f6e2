package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/domain"
)

// MockOCRTextRepo is a mock implementation of port.OCRTextRepository.
type MockOCRTextRepo struct {
	mock.Mock
}

func (m *MockOCRTextRepo) Create(ctx context.Context, t *domain.OCRText) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockOCRTextRepo) GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.OCRText, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OCRText), args.Error(1)
}
