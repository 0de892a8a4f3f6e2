package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// FileService handles document uploads for visits.
type FileService interface {
	UploadDocument(ctx context.Context, visitID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*domain.RawDocument, error)
}

type fileService struct {
	visitRepo    port.VisitRepository
	docRepo      port.DocumentRepository
	storage      port.ObjectStorage
	maxFileBytes int64
}

// NewFileService creates a new FileService implementation.
func NewFileService(visitRepo port.VisitRepository, docRepo port.DocumentRepository, storage port.ObjectStorage, maxFileSizeMB int64) FileService {
	return &fileService{
		visitRepo:    visitRepo,
		docRepo:      docRepo,
		storage:      storage,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

// UploadDocument validates the file, stores it, records it against the visit
// and marks the visit uploaded.
func (s *fileService) UploadDocument(ctx context.Context, visitID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*domain.RawDocument, error) {
	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if header.Size > s.maxFileBytes {
		return nil, domain.ErrFileTooLarge
	}

	doc := &domain.RawDocument{
		ID:       uuid.New(),
		VisitID:  visitID,
		Filename: header.Filename,
		FilePath: fmt.Sprintf("uploads/%s/%s.%s", visitID, uuid.New(), ext),
		FileType: fileType,
		FileSize: header.Size,
	}

	if err := s.storage.Upload(ctx, doc.FilePath, file, domain.ContentTypes[fileType], header.Size); err != nil {
		log.Printf("fileService: uploading %s for visit %s: %v", header.Filename, visitID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, doc.FilePath); delErr != nil {
			log.Printf("fileService: cleaning up orphaned object %s: %v", doc.FilePath, delErr)
		}
		return nil, fmt.Errorf("recording document: %w", err)
	}

	if err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}
	return doc, nil
}
