package main

import (
	"fmt"
	"log"

	"mediscribe/internal/config"
	"mediscribe/internal/handler"
	"mediscribe/internal/llm"
	"mediscribe/internal/llm/groq"
	"mediscribe/internal/ocr"
	"mediscribe/internal/ocr/tesseract"
	"mediscribe/internal/port"
	"mediscribe/internal/repository/postgres"
	"mediscribe/internal/router"
	"mediscribe/internal/service"
	localstorage "mediscribe/internal/storage/local"
	s3storage "mediscribe/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	patientRepo := postgres.NewPatientRepo(db)
	visitRepo := postgres.NewVisitRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	ocrRepo := postgres.NewOCRTextRepo(db)
	cleanedRepo := postgres.NewCleanedTextRepo(db)
	summaryRepo := postgres.NewSummaryRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
	default:
		storage, err = localstorage.NewLocalStore(&cfg.Storage)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize text extraction and generation
	engine := tesseract.NewEngine(&cfg.OCR)
	reader := ocr.NewReader(engine, &cfg.OCR)

	generator := groq.NewClient(&cfg.LLM)
	normalizer := llm.NewNormalizer(generator, &cfg.LLM)
	extractor := llm.NewExtractor(generator, &cfg.LLM)
	summarizer := llm.NewSummarizer(generator, &cfg.LLM)

	// Initialize services
	patientSvc := service.NewPatientService(patientRepo)
	visitSvc := service.NewVisitService(visitRepo, patientRepo)
	fileSvc := service.NewFileService(visitRepo, docRepo, storage, cfg.Storage.MaxFileSizeMB)
	exportSvc := service.NewExportService(summaryRepo)
	pipelineSvc := service.NewPipelineService(
		visitRepo, docRepo, ocrRepo, cleanedRepo, summaryRepo,
		storage, reader, normalizer, extractor, summarizer,
	)

	// Initialize handlers
	patientH := handler.NewPatientHandler(patientSvc, visitSvc)
	visitH := handler.NewVisitHandler(visitSvc)
	uploadH := handler.NewUploadHandler(fileSvc)
	pipelineH := handler.NewPipelineHandler(pipelineSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, patientH, visitH, uploadH, pipelineH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
