package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCounter reports the same count for every non-empty text, which makes
// budget math predictable in tests.
type fixedCounter struct{ per int }

func (c fixedCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return c.per
}

func newTestBuilder(t *testing.T, opts ...BuilderOption) *PromptBuilder {
	t.Helper()
	return NewPromptBuilder(NewTemplateManager(), NewEngine(), opts...)
}

func TestBuildPromptDefaults(t *testing.T) {
	b := newTestBuilder(t)

	built := b.BuildPrompt("Hello there", nil, nil, nil)

	assert.Contains(t, built.SystemMessage, "helpful")
	assert.Equal(t, "Hello there", built.UserMessage)
	assert.Empty(t, built.ThinkingInstructions)
	assert.Greater(t, built.TokenEstimate, 0)
	assert.Equal(t, "none", built.Metadata["thinking_mode"])
	assert.Empty(t, built.TemplateIDs)
}

func TestBuildPromptSystemTemplate(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("explicit template", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.SystemTemplateID = "system_coding"
		built := b.BuildPrompt("write a loop", cfg, nil, nil)
		assert.Contains(t, built.SystemMessage, "programming assistant")
		assert.Equal(t, []string{"system_coding"}, built.TemplateIDs)
	})

	t.Run("unknown id falls back to default", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.SystemTemplateID = "no_such_template"
		built := b.BuildPrompt("hi", cfg, nil, nil)
		assert.Contains(t, built.SystemMessage, "helpful")
	})

	t.Run("custom instructions appended", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.CustomInstructions = "Answer in French."
		built := b.BuildPrompt("hi", cfg, nil, nil)
		assert.True(t, strings.HasSuffix(built.SystemMessage, "\n\nAnswer in French."))
	})
}

func TestBuildPromptThinkingInstructions(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("mode selects default preset", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.ThinkingMode = ThinkingModeStepByStep
		built := b.BuildPrompt("hi", cfg, nil, nil)
		assert.Contains(t, built.ThinkingInstructions, "methodical")
	})

	t.Run("named preset wins over mode default", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.ThinkingMode = ThinkingModeStepByStep
		cfg.ThinkingTemplateName = "creative_exploration"
		built := b.BuildPrompt("hi", cfg, nil, nil)
		assert.Contains(t, built.ThinkingInstructions, "creative")
	})

	t.Run("unknown preset falls back to simple instruction", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.ThinkingMode = ThinkingModeCustom
		cfg.ThinkingTemplateName = "missing_preset"
		built := b.BuildPrompt("hi", cfg, nil, nil)
		assert.Equal(t, "Think carefully before responding.", built.ThinkingInstructions)
	})

	t.Run("none mode yields no instructions", func(t *testing.T) {
		built := b.BuildPrompt("hi", NewPromptConfiguration(), nil, nil)
		assert.Empty(t, built.ThinkingInstructions)
	})
}

func TestBuildPromptContextVariables(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("user message and configured variables render", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.Variables = map[string]any{"topic": "compilers"}
		built := b.BuildPrompt("Explain {topic} using {user_message}", cfg, nil, nil)
		assert.Contains(t, built.UserMessage, "compilers")
		assert.Contains(t, built.UserMessage, "Explain")
	})

	t.Run("user context surfaces as user_ variables", func(t *testing.T) {
		built := b.BuildPrompt("Hi, I am {user_name}", NewPromptConfiguration(), nil,
			map[string]any{"name": "Ada"})
		assert.Equal(t, "Hi, I am Ada", built.UserMessage)
	})

	t.Run("user context excluded when disabled", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.IncludeUserContext = false
		built := b.BuildPrompt("Hi, I am {user_name}", cfg, nil,
			map[string]any{"name": "Ada"})
		assert.Equal(t, "Hi, I am {user_name}", built.UserMessage)
	})

	t.Run("conversation summary variable", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.IncludeConversationSummary = true
		built := b.BuildPrompt("Recap: {conversation_summary}", cfg,
			map[string]any{
				"message_count": 4,
				"topics":        []string{"go", "testing", "parsers", "extra"},
			}, nil)
		assert.Contains(t, built.UserMessage, "Messages exchanged: 4")
		assert.Contains(t, built.UserMessage, "Main topics: go, testing, parsers")
		assert.NotContains(t, built.UserMessage, "extra")
	})
}

func TestBuildPromptBudget(t *testing.T) {
	t.Run("summary dropped when over budget", func(t *testing.T) {
		b := newTestBuilder(t, WithTokenCounter(fixedCounter{per: 100}))
		cfg := NewPromptConfiguration()
		cfg.IncludeConversationSummary = true
		cfg.MaxContextTokens = 150

		built := b.BuildPrompt("Recap: {conversation_summary}", cfg,
			map[string]any{"message_count": 9}, nil)

		assert.Equal(t, true, built.Metadata["trimmed_conversation_summary"])
		assert.Equal(t, "Recap: {conversation_summary}", built.UserMessage)
	})

	t.Run("within budget untouched", func(t *testing.T) {
		b := newTestBuilder(t, WithTokenCounter(fixedCounter{per: 10}))
		cfg := NewPromptConfiguration()
		cfg.IncludeConversationSummary = true
		cfg.MaxContextTokens = 1000

		built := b.BuildPrompt("Recap: {conversation_summary}", cfg,
			map[string]any{"message_count": 9}, nil)

		_, trimmed := built.Metadata["trimmed_conversation_summary"]
		assert.False(t, trimmed)
		assert.Contains(t, built.UserMessage, "Messages exchanged: 9")
	})
}

func TestBuildQuickPrompt(t *testing.T) {
	b := newTestBuilder(t)
	built := b.BuildQuickPrompt("review this", ThinkingModeAnalytical, "system_analysis")

	assert.Contains(t, built.SystemMessage, "analytical")
	assert.NotEmpty(t, built.ThinkingInstructions)
	assert.Equal(t, "review this", built.UserMessage)
}

func TestBuildThinkingPrompt(t *testing.T) {
	b := newTestBuilder(t)
	built, err := b.BuildThinkingPrompt("should we rewrite?", ThinkingStyleProsCons, ThinkingDepthDeep)
	require.NoError(t, err)

	assert.Contains(t, built.ThinkingInstructions, "pros and cons")
	assert.Contains(t, built.ThinkingInstructions, "1. Initial assessment")

	// The ad-hoc preset is registered for reuse.
	_, ok := b.manager.GetThinkingTemplate("temp_pros_cons_deep")
	assert.True(t, ok)
}

func TestConfigForTask(t *testing.T) {
	b := newTestBuilder(t)

	cases := []struct {
		task     string
		mode     ThinkingMode
		systemID string
	}{
		{"coding", ThinkingModeStepByStep, "system_coding"},
		{"analysis", ThinkingModeAnalytical, "system_analysis"},
		{"creative", ThinkingModeCreative, ""},
		{"problem_solving", ThinkingModeStepByStep, ""},
		{"decision_making", ThinkingModeProsCons, ""},
		{"unknown", ThinkingModeNone, ""},
	}
	for _, tc := range cases {
		t.Run(tc.task, func(t *testing.T) {
			cfg := b.ConfigForTask(tc.task)
			assert.Equal(t, tc.mode, cfg.ThinkingMode)
			assert.Equal(t, tc.systemID, cfg.SystemTemplateID)
		})
	}

	t.Run("task configs validate against builtins", func(t *testing.T) {
		for _, task := range []string{"coding", "analysis", "creative", "problem_solving", "decision_making"} {
			assert.Empty(t, b.ValidateConfiguration(b.ConfigForTask(task)), "task %q", task)
		}
	})
}

func TestValidateConfiguration(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("usable configuration", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.SystemTemplateID = "system_default"
		assert.Empty(t, b.ValidateConfiguration(cfg))
	})

	t.Run("missing references reported", func(t *testing.T) {
		cfg := NewPromptConfiguration()
		cfg.SystemTemplateID = "ghost_system"
		cfg.ThinkingTemplateName = "ghost_thinking"
		problems := b.ValidateConfiguration(cfg)
		require.Len(t, problems, 2)
		assert.Contains(t, problems[0], "ghost_system")
		assert.Contains(t, problems[1], "ghost_thinking")
	})
}

func TestSummarizeConversation(t *testing.T) {
	assert.Equal(t, "New conversation", summarizeConversation(map[string]any{}))

	out := summarizeConversation(map[string]any{
		"message_count":      2,
		"topics":             []string{"a", "b"},
		"last_response_time": "noon",
	})
	assert.Equal(t, "Messages exchanged: 2; Main topics: a, b; Last interaction: noon", out)
}
