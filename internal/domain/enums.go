package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
	FileTypeBMP  FileType = "bmp"
	FileTypeTIFF FileType = "tiff"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPEG,
	"png":  FileTypePNG,
	"bmp":  FileTypeBMP,
	"tiff": FileTypeTIFF,
}

// ContentTypes maps FileType to its MIME content type.
var ContentTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypeJPEG: "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeBMP:  "image/bmp",
	FileTypeTIFF: "image/tiff",
}

// VisitStatus tracks a visit's progress through the processing pipeline.
// Happy path: pending -> uploaded -> processing_ocr -> ocr_completed ->
// processing_cleaning -> cleaning_completed -> processing_summary -> completed.
// Each processing_* state has a matching *_failed branch.
type VisitStatus string

const (
	VisitStatusPending            VisitStatus = "pending"
	VisitStatusUploaded           VisitStatus = "uploaded"
	VisitStatusProcessingOCR      VisitStatus = "processing_ocr"
	VisitStatusOCRCompleted       VisitStatus = "ocr_completed"
	VisitStatusOCRFailed          VisitStatus = "ocr_failed"
	VisitStatusProcessingCleaning VisitStatus = "processing_cleaning"
	VisitStatusCleaningCompleted  VisitStatus = "cleaning_completed"
	VisitStatusCleaningFailed     VisitStatus = "cleaning_failed"
	VisitStatusProcessingSummary  VisitStatus = "processing_summary"
	VisitStatusCompleted          VisitStatus = "completed"
	VisitStatusSummaryFailed      VisitStatus = "summary_failed"
)

// ValidVisitStatuses enumerates every status a visit may carry.
var ValidVisitStatuses = map[VisitStatus]bool{
	VisitStatusPending:            true,
	VisitStatusUploaded:           true,
	VisitStatusProcessingOCR:      true,
	VisitStatusOCRCompleted:       true,
	VisitStatusOCRFailed:          true,
	VisitStatusProcessingCleaning: true,
	VisitStatusCleaningCompleted:  true,
	VisitStatusCleaningFailed:     true,
	VisitStatusProcessingSummary:  true,
	VisitStatusCompleted:          true,
	VisitStatusSummaryFailed:      true,
}
