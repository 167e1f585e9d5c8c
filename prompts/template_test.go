package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptTemplate(t *testing.T) {
	tmpl := NewPromptTemplate("greet", "Greeting", "Says hello", "Hello {name}, welcome to {place}!")

	assert.Equal(t, "greet", tmpl.ID)
	assert.Equal(t, []string{"name", "place"}, tmpl.Variables)
	assert.Equal(t, "1.0", tmpl.Version)
	assert.Equal(t, "general", tmpl.Category)
	assert.False(t, tmpl.CreatedAt.IsZero())
	assert.Equal(t, tmpl.CreatedAt, tmpl.UpdatedAt)
}

func TestHasTag(t *testing.T) {
	tmpl := NewPromptTemplate("x", "X", "", "body")
	tmpl.Tags = []string{"coding", "review"}

	assert.True(t, tmpl.HasTag("coding"))
	assert.False(t, tmpl.HasTag("summary"))
}

func TestValidateStructTemplate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		tmpl := NewPromptTemplate("ok", "OK", "", "Hello {name}")
		assert.NoError(t, ValidateStruct(tmpl))
	})

	t.Run("missing required fields", func(t *testing.T) {
		assert.Error(t, ValidateStruct(&PromptTemplate{Template: "x"}))
	})

	t.Run("broken template syntax", func(t *testing.T) {
		tmpl := NewPromptTemplate("bad", "Bad", "", "{if x}never closed")
		assert.Error(t, ValidateStruct(tmpl))
	})
}

func TestToThinkingPrompt(t *testing.T) {
	t.Run("style and depth select the base prompt", func(t *testing.T) {
		tmpl := &ThinkingTemplate{Style: ThinkingStyleStepByStep, Depth: ThinkingDepthShallow}
		assert.Equal(t, "Think through this step by step:", tmpl.ToThinkingPrompt())

		tmpl = &ThinkingTemplate{Style: ThinkingStyleProsCons, Depth: ThinkingDepthDeep}
		assert.Contains(t, tmpl.ToThinkingPrompt(), "short-term and long-term implications")
	})

	t.Run("unknown style falls back to analytical medium", func(t *testing.T) {
		tmpl := &ThinkingTemplate{Style: ThinkingStyle("mystery"), Depth: ThinkingDepth("odd")}
		assert.Equal(t, "Provide a structured analysis considering key factors:", tmpl.ToThinkingPrompt())
	})

	t.Run("reasoning format suffixes", func(t *testing.T) {
		tmpl := &ThinkingTemplate{
			Style:           ThinkingStyleAnalytical,
			Depth:           ThinkingDepthMedium,
			ShowReasoning:   true,
			ReasoningFormat: ReasoningFormatStructured,
		}
		out := tmpl.ToThinkingPrompt()
		assert.Contains(t, out, "1. Initial assessment")

		tmpl.ReasoningFormat = ReasoningFormatBulletPoints
		assert.Contains(t, tmpl.ToThinkingPrompt(), "bullet points")

		tmpl.ShowReasoning = false
		assert.NotContains(t, tmpl.ToThinkingPrompt(), "bullet points")
	})

	t.Run("confidence scoring suffix", func(t *testing.T) {
		tmpl := &ThinkingTemplate{
			Style:             ThinkingStyleCreative,
			Depth:             ThinkingDepthMedium,
			ConfidenceScoring: true,
		}
		assert.Contains(t, tmpl.ToThinkingPrompt(), "confidence scores (0-100%)")
	})
}

func TestThinkingTemplateValidation(t *testing.T) {
	valid := &ThinkingTemplate{Style: ThinkingStyleCreative, Depth: ThinkingDepthDeep}
	require.NoError(t, ValidateStruct(valid))

	invalid := &ThinkingTemplate{Style: ThinkingStyle("vibes"), Depth: ThinkingDepthDeep}
	assert.Error(t, ValidateStruct(invalid))
}
