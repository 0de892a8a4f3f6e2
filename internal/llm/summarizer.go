package llm

import (
	"context"
	"log"
	"strings"

	"mediscribe/internal/config"
	"mediscribe/internal/port"
)

// SummaryFailedMessage is returned when summary generation fails. Unlike the
// Normalizer there is no safe passthrough: the input is not a summary, so a
// fixed sentinel replaces it.
const SummaryFailedMessage = "Error generating summary. Please try again."

// Summarizer produces a prose clinical summary and a bullet list of key
// findings from cleaned text.
type Summarizer struct {
	gen                 port.TextGenerator
	summaryTemperature  float64
	summaryMaxTokens    int
	findingsTemperature float64
	findingsMaxTokens   int
}

// NewSummarizer creates a Summarizer using the configured generation policy.
func NewSummarizer(gen port.TextGenerator, cfg *config.LLMConfig) *Summarizer {
	return &Summarizer{
		gen:                 gen,
		summaryTemperature:  cfg.SummaryTemperature,
		summaryMaxTokens:    cfg.SummaryMaxTokens,
		findingsTemperature: cfg.FindingsTemperature,
		findingsMaxTokens:   cfg.FindingsMaxTokens,
	}
}

// Summarize returns a clinical summary of the cleaned text, or
// SummaryFailedMessage if the capability call fails.
func (s *Summarizer) Summarize(ctx context.Context, cleanedText string) string {
	out, err := s.gen.Generate(ctx, port.GenerateInput{
		System:      summarySystem,
		Prompt:      buildSummaryPrompt(cleanedText),
		Temperature: s.summaryTemperature,
		MaxTokens:   s.summaryMaxTokens,
	})
	if err != nil {
		log.Printf("llm.Summarizer: summary generation failed: %v", err)
		return SummaryFailedMessage
	}
	return strings.TrimSpace(out)
}

// KeyFindings derives 3-5 dash-prefixed bullet lines from a generated
// summary. A failure degrades silently to an empty string: a missing
// key-findings list is acceptable, a missing summary is not.
func (s *Summarizer) KeyFindings(ctx context.Context, summaryText string) string {
	out, err := s.gen.Generate(ctx, port.GenerateInput{
		Prompt:      buildFindingsPrompt(summaryText),
		Temperature: s.findingsTemperature,
		MaxTokens:   s.findingsMaxTokens,
	})
	if err != nil {
		log.Printf("llm.Summarizer: key findings extraction failed: %v", err)
		return ""
	}
	return strings.TrimSpace(out)
}
