package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxCounter(t *testing.T) {
	counter := ApproxCounter{}

	assert.Equal(t, 0, counter.Count(""))
	assert.Equal(t, 1, counter.Count("hi"))

	long := "the quick brown fox jumps over the lazy dog"
	count := counter.Count(long)
	// At least one token per word, roughly one per four bytes.
	assert.GreaterOrEqual(t, count, 9)
	assert.LessOrEqual(t, count, len(long))
}
