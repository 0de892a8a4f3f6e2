package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient whose visits are processed by the pipeline.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Age            string    `db:"age" json:"age"`
	Gender         string    `db:"gender" json:"gender"`
	Contact        string    `db:"contact" json:"contact"`
	MedicalHistory string    `db:"medical_history" json:"medical_history"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Visit represents one clinical encounter. Its Status advances as the
// visit's document moves through OCR, cleaning and summarization.
type Visit struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	PatientID uuid.UUID   `db:"patient_id" json:"patient_id"`
	VisitDate time.Time   `db:"visit_date" json:"visit_date"`
	VisitType string      `db:"visit_type" json:"visit_type"`
	Status    VisitStatus `db:"status" json:"status"`
	Notes     string      `db:"notes" json:"notes"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// RawDocument represents an uploaded medical document awaiting OCR.
// FilePath is the object storage key, not necessarily a local path.
type RawDocument struct {
	ID        uuid.UUID `db:"id" json:"id"`
	VisitID   uuid.UUID `db:"visit_id" json:"visit_id"`
	Filename  string    `db:"filename" json:"filename"`
	FilePath  string    `db:"file_path" json:"file_path"`
	FileType  FileType  `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OCRText stores the raw text extracted from a visit's document.
// ConfidenceScore and ProcessingTime are formatted at the persistence
// boundary ("0.62", "3.41s"); the pipeline computes both in native types.
type OCRText struct {
	ID              uuid.UUID `db:"id" json:"id"`
	VisitID         uuid.UUID `db:"visit_id" json:"visit_id"`
	RawText         string    `db:"raw_text" json:"raw_text"`
	ConfidenceScore string    `db:"confidence_score" json:"confidence_score"`
	ProcessingTime  string    `db:"processing_time" json:"processing_time"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CleanedText stores the LLM-corrected text and the structured data
// extracted from it.
type CleanedText struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	VisitID        uuid.UUID       `db:"visit_id" json:"visit_id"`
	CleanedText    string          `db:"cleaned_text" json:"cleaned_text"`
	ExtractedData  json.RawMessage `db:"extracted_data" json:"extracted_data"`
	ProcessingTime string          `db:"processing_time" json:"processing_time"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Summary stores the generated clinical summary and its key findings.
type Summary struct {
	ID             uuid.UUID `db:"id" json:"id"`
	VisitID        uuid.UUID `db:"visit_id" json:"visit_id"`
	SummaryText    string    `db:"summary_text" json:"summary_text"`
	KeyFindings    string    `db:"key_findings" json:"key_findings"`
	GeneratedBy    string    `db:"generated_by" json:"generated_by"`
	ProcessingTime string    `db:"processing_time" json:"processing_time"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// StructuredRecord is the fixed-schema clinical fact extraction derived from
// cleaned text. Every field is always present: missing information is an
// explicit null or empty container, never an absent key.
type StructuredRecord struct {
	PatientName *string           `json:"patient_name"`
	Age         *string           `json:"age"`
	Gender      *string           `json:"gender"`
	Symptoms    []string          `json:"symptoms"`
	Diagnosis   *string           `json:"diagnosis"`
	Medications []string          `json:"medications"`
	TestResults []string          `json:"test_results"`
	VitalSigns  map[string]string `json:"vital_signs"`
	DoctorNotes *string           `json:"doctor_notes"`
	DateOfVisit *string           `json:"date_of_visit"`
}

// EmptyStructuredRecord returns the all-null fallback record used when
// structured extraction yields unusable output.
func EmptyStructuredRecord() StructuredRecord {
	return StructuredRecord{
		Symptoms:    []string{},
		Medications: []string{},
		TestResults: []string{},
		VitalSigns:  map[string]string{},
	}
}

// SummaryExportRow is the flattened view of a summarized visit used by the
// XLSX export.
type SummaryExportRow struct {
	PatientName string      `db:"patient_name"`
	VisitID     uuid.UUID   `db:"visit_id"`
	VisitDate   time.Time   `db:"visit_date"`
	Status      VisitStatus `db:"status"`
	SummaryText string      `db:"summary_text"`
	KeyFindings string      `db:"key_findings"`
	CreatedAt   time.Time   `db:"created_at"`
}
