package llm

import (
	"context"
	"log"
	"strings"

	"mediscribe/internal/config"
	"mediscribe/internal/port"
)

// Normalizer corrects OCR artifacts in extracted text via a single
// text-generation round-trip. It never fails: when the capability errors or
// returns nothing usable, the original text is passed through unchanged so
// downstream stages always receive something workable.
type Normalizer struct {
	gen         port.TextGenerator
	temperature float64
	maxTokens   int
}

// NewNormalizer creates a Normalizer using the configured correction policy.
func NewNormalizer(gen port.TextGenerator, cfg *config.LLMConfig) *Normalizer {
	return &Normalizer{
		gen:         gen,
		temperature: cfg.CleanTemperature,
		maxTokens:   cfg.CleanMaxTokens,
	}
}

// Normalize returns the corrected text, or rawText itself on any failure.
func (n *Normalizer) Normalize(ctx context.Context, rawText string) string {
	out, err := n.gen.Generate(ctx, port.GenerateInput{
		System:      cleanSystem,
		Prompt:      buildCleanPrompt(rawText),
		Temperature: n.temperature,
		MaxTokens:   n.maxTokens,
	})
	if err != nil {
		log.Printf("llm.Normalizer: cleaning failed, returning original text: %v", err)
		return rawText
	}
	cleaned := strings.TrimSpace(out)
	if cleaned == "" {
		log.Printf("llm.Normalizer: empty response, returning original text")
		return rawText
	}
	return cleaned
}
