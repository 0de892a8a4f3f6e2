package llm

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"mediscribe/internal/config"
	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// recordSchema is the JSON Schema for the structured clinical record. Parsed
// capability output is validated against it; anything that does not conform
// degrades to the all-null fallback record.
const recordSchema = `{
	"type": "object",
	"properties": {
		"patient_name":  {"type": ["string", "null"]},
		"age":           {"type": ["string", "null"]},
		"gender":        {"type": ["string", "null"]},
		"symptoms":      {"type": "array", "items": {"type": "string"}},
		"diagnosis":     {"type": ["string", "null"]},
		"medications":   {"type": "array", "items": {"type": "string"}},
		"test_results":  {"type": "array", "items": {"type": "string"}},
		"vital_signs":   {"type": "object", "additionalProperties": {"type": "string"}},
		"doctor_notes":  {"type": ["string", "null"]},
		"date_of_visit": {"type": ["string", "null"]}
	},
	"required": [
		"patient_name", "age", "gender", "symptoms", "diagnosis",
		"medications", "test_results", "vital_signs", "doctor_notes",
		"date_of_visit"
	]
}`

// Extractor pulls a fixed-schema structured record out of cleaned text. It
// never fails; its three outcomes are deliberately distinguishable:
//   - conforming JSON: returned as parsed;
//   - malformed JSON or schema mismatch: the all-null fallback record;
//   - capability call error: an empty object, so callers can tell "the model
//     produced garbage" apart from "the model was never reached".
type Extractor struct {
	gen         port.TextGenerator
	schema      *jsonschema.Schema
	temperature float64
	maxTokens   int
}

// NewExtractor creates an Extractor with the record schema pre-compiled.
func NewExtractor(gen port.TextGenerator, cfg *config.LLMConfig) *Extractor {
	return &Extractor{
		gen:         gen,
		schema:      jsonschema.MustCompileString("record.json", recordSchema),
		temperature: cfg.ExtractTemperature,
		maxTokens:   cfg.ExtractMaxTokens,
	}
}

// Extract returns the structured record as raw JSON.
func (e *Extractor) Extract(ctx context.Context, cleanedText string) json.RawMessage {
	out, err := e.gen.Generate(ctx, port.GenerateInput{
		System:      extractSystem,
		Prompt:      buildExtractPrompt(cleanedText),
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		log.Printf("llm.Extractor: extraction call failed: %v", err)
		return json.RawMessage("{}")
	}

	raw := stripCodeFence(strings.TrimSpace(out))

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("llm.Extractor: could not parse JSON response, returning empty structure: %v", err)
		return fallbackRecord()
	}
	if err := e.schema.Validate(parsed); err != nil {
		log.Printf("llm.Extractor: response does not match record schema, returning empty structure: %v", err)
		return fallbackRecord()
	}
	return json.RawMessage(raw)
}

// fallbackRecord marshals the all-null/empty-container record.
func fallbackRecord() json.RawMessage {
	data, err := json.Marshal(domain.EmptyStructuredRecord())
	if err != nil {
		// Marshaling a plain struct of nils and empty containers cannot fail.
		return json.RawMessage("{}")
	}
	return data
}

// stripCodeFence removes a markdown code block wrapper (with an optional
// leading "json" language tag) from a model response.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
