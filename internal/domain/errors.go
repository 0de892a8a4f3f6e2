package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrVisitNotFound       = errors.New("visit not found")
	ErrNoDocuments         = errors.New("no documents found for visit")
	ErrOCRTextNotFound     = errors.New("no OCR text found for visit; run OCR first")
	ErrCleanedTextNotFound = errors.New("no cleaned text found for visit; run cleaning first")
	ErrSummaryNotFound     = errors.New("no summary found for visit")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrEmptyExtraction     = errors.New("could not extract text from document")
)
