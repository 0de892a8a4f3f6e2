package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediscribe/internal/llm"
	"mediscribe/mocks"
)

func TestSummarizer_Summarize(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("The patient presented with a migraine.\n", nil)

	s := llm.NewSummarizer(gen, llmConfig())
	out := s.Summarize(context.Background(), "cleaned text")

	assert.Equal(t, "The patient presented with a migraine.", out)
}

func TestSummarizer_SummarizeError(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	s := llm.NewSummarizer(gen, llmConfig())
	out := s.Summarize(context.Background(), "cleaned text")

	assert.Equal(t, llm.SummaryFailedMessage, out)
}

func TestSummarizer_KeyFindings(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("- Migraine diagnosed\n- Sumatriptan prescribed", nil)

	s := llm.NewSummarizer(gen, llmConfig())
	out := s.KeyFindings(context.Background(), "summary text")

	assert.Equal(t, "- Migraine diagnosed\n- Sumatriptan prescribed", out)
}

func TestSummarizer_KeyFindingsError(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	s := llm.NewSummarizer(gen, llmConfig())
	out := s.KeyFindings(context.Background(), "summary text")

	assert.Empty(t, out)
}
