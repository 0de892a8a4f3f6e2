package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mediscribe/internal/domain"
	"mediscribe/internal/service"
	"mediscribe/mocks"
)

func TestExportService_ExportSummariesXLSX(t *testing.T) {
	summaryRepo := new(mocks.MockSummaryRepo)
	visitID := uuid.New()
	summaryRepo.On("ListForExport", context.Background()).Return([]domain.SummaryExportRow{
		{
			PatientName: "Jane Roe",
			VisitID:     visitID,
			VisitDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Status:      domain.VisitStatusCompleted,
			SummaryText: "The patient presented with a migraine.",
			KeyFindings: "- Migraine diagnosed",
			CreatedAt:   time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		},
	}, nil)

	svc := service.NewExportService(summaryRepo)
	data, err := svc.ExportSummariesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summaries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Patient Name", rows[0][0])
	assert.Equal(t, "Jane Roe", rows[1][0])
	assert.Equal(t, visitID.String(), rows[1][1])
	assert.Equal(t, "2025-03-14", rows[1][2])
	assert.Equal(t, "completed", rows[1][3])
}

func TestExportService_ExportSummariesXLSX_EmptyIsValidWorkbook(t *testing.T) {
	summaryRepo := new(mocks.MockSummaryRepo)
	summaryRepo.On("ListForExport", context.Background()).Return([]domain.SummaryExportRow{}, nil)

	svc := service.NewExportService(summaryRepo)
	data, err := svc.ExportSummariesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summaries")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExportService_RepoError(t *testing.T) {
	summaryRepo := new(mocks.MockSummaryRepo)
	summaryRepo.On("ListForExport", context.Background()).Return(nil, errors.New("db down"))

	svc := service.NewExportService(summaryRepo)
	data, err := svc.ExportSummariesXLSX(context.Background())

	assert.Nil(t, data)
	assert.Error(t, err)
}
