package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

const generatedBy = "Groq LLM"

// TextNormalizer corrects OCR artifacts; never fails (degrades to the input).
type TextNormalizer interface {
	Normalize(ctx context.Context, rawText string) string
}

// StructuredExtractor pulls a structured record from cleaned text; never fails.
type StructuredExtractor interface {
	Extract(ctx context.Context, cleanedText string) json.RawMessage
}

// SummaryGenerator produces the clinical summary and its key findings.
type SummaryGenerator interface {
	Summarize(ctx context.Context, cleanedText string) string
	KeyFindings(ctx context.Context, summaryText string) string
}

// VisitSummaryView is the combined read model for a visit's pipeline output.
type VisitSummaryView struct {
	VisitID       uuid.UUID          `json:"visit_id"`
	PatientID     uuid.UUID          `json:"patient_id"`
	VisitDate     time.Time          `json:"visit_date"`
	Status        domain.VisitStatus `json:"status"`
	OCRText       *string            `json:"ocr_text"`
	OCRConfidence *string            `json:"ocr_confidence"`
	CleanedText   *string            `json:"cleaned_text"`
	ExtractedData json.RawMessage    `json:"extracted_data"`
	Summary       *string            `json:"summary"`
	KeyFindings   *string            `json:"key_findings"`
}

// PipelineService runs the document-to-summary pipeline one stage at a time.
// Each stage reads the previous stage's persisted output, records the
// processing status before starting work, and advances or fails the visit's
// status when done. Stages never retry on their own.
type PipelineService interface {
	RunOCR(ctx context.Context, visitID uuid.UUID) (*domain.OCRText, error)
	RunCleaning(ctx context.Context, visitID uuid.UUID) (*domain.CleanedText, error)
	RunSummary(ctx context.Context, visitID uuid.UUID) (*domain.Summary, error)
	GetVisitSummary(ctx context.Context, visitID uuid.UUID) (*VisitSummaryView, error)
}

type pipelineService struct {
	visitRepo   port.VisitRepository
	docRepo     port.DocumentRepository
	ocrRepo     port.OCRTextRepository
	cleanedRepo port.CleanedTextRepository
	summaryRepo port.SummaryRepository
	storage     port.ObjectStorage
	reader      port.DocumentReader
	normalizer  TextNormalizer
	extractor   StructuredExtractor
	summarizer  SummaryGenerator
	locks       visitLocks
}

// NewPipelineService creates the pipeline orchestrator.
func NewPipelineService(
	visitRepo port.VisitRepository,
	docRepo port.DocumentRepository,
	ocrRepo port.OCRTextRepository,
	cleanedRepo port.CleanedTextRepository,
	summaryRepo port.SummaryRepository,
	storage port.ObjectStorage,
	reader port.DocumentReader,
	normalizer TextNormalizer,
	extractor StructuredExtractor,
	summarizer SummaryGenerator,
) PipelineService {
	return &pipelineService{
		visitRepo:   visitRepo,
		docRepo:     docRepo,
		ocrRepo:     ocrRepo,
		cleanedRepo: cleanedRepo,
		summaryRepo: summaryRepo,
		storage:     storage,
		reader:      reader,
		normalizer:  normalizer,
		extractor:   extractor,
		summarizer:  summarizer,
		locks:       visitLocks{held: map[uuid.UUID]*sync.Mutex{}},
	}
}

// RunOCR extracts text from the visit's uploaded document and stores it with
// its confidence score.
func (s *pipelineService) RunOCR(ctx context.Context, visitID uuid.UUID) (*domain.OCRText, error) {
	unlock := s.locks.lock(visitID)
	defer unlock()

	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListByVisit(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("listing documents for visit %s: %w", visitID, err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	doc := docs[0]

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusProcessingOCR); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}

	start := time.Now()
	result, err := s.readDocument(ctx, &doc)
	if err != nil {
		return nil, s.failStage(ctx, visitID, domain.VisitStatusOCRFailed, err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, s.failStage(ctx, visitID, domain.VisitStatusOCRFailed, domain.ErrEmptyExtraction)
	}

	rec := &domain.OCRText{
		ID:              uuid.New(),
		VisitID:         visitID,
		RawText:         result.Text,
		ConfidenceScore: formatConfidence(result.Confidence),
		ProcessingTime:  formatDuration(time.Since(start)),
	}
	if err := s.ocrRepo.Create(ctx, rec); err != nil {
		return nil, s.failStage(ctx, visitID, domain.VisitStatusOCRFailed, fmt.Errorf("saving OCR text: %w", err))
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusOCRCompleted); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}
	return rec, nil
}

// RunCleaning corrects the latest OCR text and extracts structured data from
// it. Capability failures inside the normalizer and extractor degrade rather
// than fail the stage.
func (s *pipelineService) RunCleaning(ctx context.Context, visitID uuid.UUID) (*domain.CleanedText, error) {
	unlock := s.locks.lock(visitID)
	defer unlock()

	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}
	ocrText, err := s.ocrRepo.GetLatestByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusProcessingCleaning); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}

	start := time.Now()
	cleaned := s.normalizer.Normalize(ctx, ocrText.RawText)
	extracted := s.extractor.Extract(ctx, cleaned)

	rec := &domain.CleanedText{
		ID:             uuid.New(),
		VisitID:        visitID,
		CleanedText:    cleaned,
		ExtractedData:  extracted,
		ProcessingTime: formatDuration(time.Since(start)),
	}
	if err := s.cleanedRepo.Create(ctx, rec); err != nil {
		return nil, s.failStage(ctx, visitID, domain.VisitStatusCleaningFailed, fmt.Errorf("saving cleaned text: %w", err))
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusCleaningCompleted); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}
	return rec, nil
}

// RunSummary generates the clinical summary and key findings from the latest
// cleaned text and completes the visit.
func (s *pipelineService) RunSummary(ctx context.Context, visitID uuid.UUID) (*domain.Summary, error) {
	unlock := s.locks.lock(visitID)
	defer unlock()

	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}
	cleaned, err := s.cleanedRepo.GetLatestByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusProcessingSummary); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}

	start := time.Now()
	summaryText := s.summarizer.Summarize(ctx, cleaned.CleanedText)
	keyFindings := s.summarizer.KeyFindings(ctx, summaryText)

	rec := &domain.Summary{
		ID:             uuid.New(),
		VisitID:        visitID,
		SummaryText:    summaryText,
		KeyFindings:    keyFindings,
		GeneratedBy:    generatedBy,
		ProcessingTime: formatDuration(time.Since(start)),
	}
	if err := s.summaryRepo.Create(ctx, rec); err != nil {
		return nil, s.failStage(ctx, visitID, domain.VisitStatusSummaryFailed, fmt.Errorf("saving summary: %w", err))
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusCompleted); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}
	return rec, nil
}

// GetVisitSummary assembles the combined pipeline view of a visit. Missing
// stage outputs appear as nulls, not errors.
func (s *pipelineService) GetVisitSummary(ctx context.Context, visitID uuid.UUID) (*VisitSummaryView, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	view := &VisitSummaryView{
		VisitID:   visit.ID,
		PatientID: visit.PatientID,
		VisitDate: visit.VisitDate,
		Status:    visit.Status,
	}

	if ocrText, err := s.ocrRepo.GetLatestByVisit(ctx, visitID); err == nil {
		view.OCRText = &ocrText.RawText
		view.OCRConfidence = &ocrText.ConfidenceScore
	} else if !errors.Is(err, domain.ErrOCRTextNotFound) {
		return nil, err
	}

	if cleaned, err := s.cleanedRepo.GetLatestByVisit(ctx, visitID); err == nil {
		view.CleanedText = &cleaned.CleanedText
		view.ExtractedData = cleaned.ExtractedData
	} else if !errors.Is(err, domain.ErrCleanedTextNotFound) {
		return nil, err
	}

	if summary, err := s.summaryRepo.GetLatestByVisit(ctx, visitID); err == nil {
		view.Summary = &summary.SummaryText
		view.KeyFindings = &summary.KeyFindings
	} else if !errors.Is(err, domain.ErrSummaryNotFound) {
		return nil, err
	}

	return view, nil
}

// readDocument fetches the document's bytes from object storage, writes them
// to a temporary file, and runs the document reader over it. The temp file
// is removed on every exit path.
func (s *pipelineService) readDocument(ctx context.Context, doc *domain.RawDocument) (port.ExtractionResult, error) {
	data, err := s.storage.Download(ctx, doc.FilePath)
	if err != nil {
		return port.ExtractionResult{}, fmt.Errorf("downloading document %s: %w", doc.ID, err)
	}

	tmp, err := os.CreateTemp("", "mediscribe-doc-*."+string(doc.FileType))
	if err != nil {
		return port.ExtractionResult{}, fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return port.ExtractionResult{}, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return port.ExtractionResult{}, fmt.Errorf("closing temp file: %w", err)
	}

	return s.reader.Read(ctx, tmp.Name(), doc.FileType), nil
}

// failStage marks the visit failed and passes the stage error through. A
// failed status write is logged but does not mask the original error.
func (s *pipelineService) failStage(ctx context.Context, visitID uuid.UUID, status domain.VisitStatus, stageErr error) error {
	if err := s.visitRepo.UpdateStatus(ctx, visitID, status); err != nil {
		log.Printf("pipelineService: marking visit %s as %s: %v", visitID, status, err)
	}
	return stageErr
}

func formatConfidence(confidence float64) string {
	return fmt.Sprintf("%.2f", confidence)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// visitLocks serializes pipeline stages per visit so two concurrent requests
// cannot race the same visit through a stage. Entries are never evicted; the
// map grows with the number of distinct visits processed by this process.
type visitLocks struct {
	mu   sync.Mutex
	held map[uuid.UUID]*sync.Mutex
}

func (l *visitLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.held[id]
	if !ok {
		m = &sync.Mutex{}
		l.held[id] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
