package llm_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/llm"
)

func TestRateLimitError(t *testing.T) {
	base := errors.New("status 429")
	err := llm.NewRateLimitError("groq", base, 30)

	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "groq", err.Provider)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "groq rate limited")
}

func TestRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := llm.NewRateLimitError("groq", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, llm.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, llm.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, llm.ParseRetryAfterHeader("Wed, 21 Oct 2015 07:28:00 GMT"))
}
