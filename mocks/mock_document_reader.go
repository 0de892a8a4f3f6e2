package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// MockDocumentReader is a mock implementation of port.DocumentReader.
type MockDocumentReader struct {
	mock.Mock
}

func (m *MockDocumentReader) Read(ctx context.Context, filePath string, fileType domain.FileType) port.ExtractionResult {
	args := m.Called(ctx, filePath, fileType)
	return args.Get(0).(port.ExtractionResult)
}
