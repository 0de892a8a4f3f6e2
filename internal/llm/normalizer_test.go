package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/config"
	"mediscribe/internal/llm"
	"mediscribe/mocks"
)

func llmConfig() *config.LLMConfig {
	return &config.LLMConfig{
		CleanTemperature:    0.3,
		CleanMaxTokens:      2048,
		ExtractTemperature:  0.2,
		ExtractMaxTokens:    1024,
		SummaryTemperature:  0.3,
		SummaryMaxTokens:    1024,
		FindingsTemperature: 0.3,
		FindingsMaxTokens:   256,
	}
}

func TestNormalizer_ReturnsCleanedText(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("  Patient complains of headache.  ", nil)

	n := llm.NewNormalizer(gen, llmConfig())
	out := n.Normalize(context.Background(), "Pat1ent c0mplains of headache.")

	assert.Equal(t, "Patient complains of headache.", out)
	gen.AssertExpectations(t)
}

func TestNormalizer_PassthroughOnError(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	n := llm.NewNormalizer(gen, llmConfig())
	raw := "Pat1ent c0mplains of headache."
	out := n.Normalize(context.Background(), raw)

	assert.Equal(t, raw, out)
}

func TestNormalizer_PassthroughOnRateLimit(t *testing.T) {
	// Rate limits degrade the same as any provider failure; they never
	// propagate to callers as errors.
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("", llm.NewRateLimitError("groq", errors.New("429 too many requests"), 0))

	n := llm.NewNormalizer(gen, llmConfig())
	raw := "Pat1ent c0mplains of headache."
	out := n.Normalize(context.Background(), raw)

	assert.Equal(t, raw, out)
}

func TestNormalizer_PassthroughOnEmptyResponse(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("   \n ", nil)

	n := llm.NewNormalizer(gen, llmConfig())
	raw := "BP 120/80, HR 72"
	out := n.Normalize(context.Background(), raw)

	assert.Equal(t, raw, out)
}
