package chatbotlibrary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatbot "github.com/voidfemme/chatbot-library"
)

func TestPublicAPI(t *testing.T) {
	t.Run("render through root package", func(t *testing.T) {
		engine := chatbot.NewEngine()
		ctx := chatbot.NewContextFromMap(map[string]any{"name": "Ada"})
		assert.Equal(t, "Hello Ada!", engine.Render("Hello {name}!", ctx))
		assert.Equal(t, "Hello {name}!", engine.Render("Hello {name}!", nil))
	})

	t.Run("validate and extract", func(t *testing.T) {
		assert.Empty(t, chatbot.Validate("{if x}ok{endif}"))
		assert.NotEmpty(t, chatbot.Validate("{broken"))
		assert.Equal(t, []string{"name"}, chatbot.ExtractVariables("{name}"))
	})

	t.Run("manager and builder round trip", func(t *testing.T) {
		manager := chatbot.NewTemplateManager()
		builder := chatbot.NewPromptBuilder(manager, chatbot.NewEngine())

		built := builder.BuildQuickPrompt("hello", chatbot.ThinkingModeStepByStep, "system_default")
		require.NotNil(t, built)
		assert.NotEmpty(t, built.SystemMessage)
		assert.NotEmpty(t, built.ThinkingInstructions)
		assert.Equal(t, "hello", built.UserMessage)
	})

	t.Run("custom function registration", func(t *testing.T) {
		engine := chatbot.NewEngine()
		engine.RegisterFunction("shout", func(args ...chatbot.Value) (chatbot.Value, error) {
			return chatbot.StringValue(args[0].String() + "!!!"), nil
		})
		ctx := chatbot.NewContextFromMap(map[string]any{"word": "go"})
		assert.Equal(t, "go!!!", engine.Render("{shout(word)}", ctx))
	})

	t.Run("template schema", func(t *testing.T) {
		assert.NotNil(t, chatbot.TemplateSchema())
	})
}
