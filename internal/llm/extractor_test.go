package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediscribe/internal/domain"
	"mediscribe/internal/llm"
	"mediscribe/mocks"
)

const validRecord = `{
	"patient_name": "Jane Roe",
	"age": "42",
	"gender": "female",
	"symptoms": ["headache", "nausea"],
	"diagnosis": "migraine",
	"medications": ["sumatriptan 50mg"],
	"test_results": [],
	"vital_signs": {"bp": "120/80", "hr": "72"},
	"doctor_notes": "follow up in two weeks",
	"date_of_visit": "2025-03-14"
}`

func TestExtractor_ValidJSON(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(validRecord, nil)

	e := llm.NewExtractor(gen, llmConfig())
	out := e.Extract(context.Background(), "cleaned text")

	var rec domain.StructuredRecord
	require.NoError(t, json.Unmarshal(out, &rec))
	require.NotNil(t, rec.PatientName)
	assert.Equal(t, "Jane Roe", *rec.PatientName)
	assert.Equal(t, []string{"headache", "nausea"}, rec.Symptoms)
	assert.Equal(t, "120/80", rec.VitalSigns["bp"])
}

func TestExtractor_FencedJSON(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("```json\n"+validRecord+"\n```", nil)

	e := llm.NewExtractor(gen, llmConfig())
	out := e.Extract(context.Background(), "cleaned text")

	var rec domain.StructuredRecord
	require.NoError(t, json.Unmarshal(out, &rec))
	require.NotNil(t, rec.Diagnosis)
	assert.Equal(t, "migraine", *rec.Diagnosis)
}

func TestExtractor_MalformedJSON(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("The patient record is: name=Jane", nil)

	e := llm.NewExtractor(gen, llmConfig())
	out := e.Extract(context.Background(), "cleaned text")

	var rec domain.StructuredRecord
	require.NoError(t, json.Unmarshal(out, &rec))
	assert.Nil(t, rec.PatientName)
	assert.Empty(t, rec.Symptoms)
	assert.NotNil(t, rec.VitalSigns)
}

func TestExtractor_SchemaMismatch(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	// Parses fine but symptoms has the wrong shape and keys are missing.
	gen.On("Generate", mock.Anything, mock.Anything).Return(`{"patient_name": "Jane", "symptoms": "headache"}`, nil)

	e := llm.NewExtractor(gen, llmConfig())
	out := e.Extract(context.Background(), "cleaned text")

	var rec domain.StructuredRecord
	require.NoError(t, json.Unmarshal(out, &rec))
	assert.Nil(t, rec.PatientName)
	assert.Empty(t, rec.Symptoms)
}

func TestExtractor_GenerationError(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	e := llm.NewExtractor(gen, llmConfig())
	out := e.Extract(context.Background(), "cleaned text")

	// A call failure is distinguishable from unusable model output.
	assert.Equal(t, json.RawMessage("{}"), out)
}
