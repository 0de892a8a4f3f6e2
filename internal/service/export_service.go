package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"mediscribe/internal/port"
)

// ExportService produces XLSX workbooks from pipeline output.
type ExportService interface {
	ExportSummariesXLSX(ctx context.Context) ([]byte, error)
}

type exportService struct {
	summaryRepo port.SummaryRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(summaryRepo port.SummaryRepository) ExportService {
	return &exportService{summaryRepo: summaryRepo}
}

// ExportSummariesXLSX returns a workbook with one row per summarized visit,
// using the latest summary for each.
func (s *exportService) ExportSummariesXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.summaryRepo.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing summaries for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Summaries"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	headers := []string{
		"Patient Name",
		"Visit ID",
		"Visit Date",
		"Status",
		"Summary",
		"Key Findings",
		"Generated At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		write := func(col int, v interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.PatientName)
		write(2, r.VisitID.String())
		write(3, r.VisitDate.Format("2006-01-02"))
		write(4, string(r.Status))
		write(5, r.SummaryText)
		write(6, r.KeyFindings)
		write(7, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
