package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextVariables(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("name", "Ada")
	ctx.SetVariable("count", 3)

	assert.Equal(t, "Ada", ctx.Variable("name").String())
	assert.True(t, ctx.Variable("missing").IsAbsent())
}

func TestContextResolve(t *testing.T) {
	ctx := NewContextFromMap(map[string]any{
		"user": map[string]any{"name": "Ada"},
	})

	assert.Equal(t, "Ada", ctx.resolve([]string{"user", "name"}).String())
	assert.True(t, ctx.resolve([]string{"user", "role"}).IsAbsent())
	assert.True(t, ctx.resolve([]string{"missing"}).IsAbsent())
	assert.True(t, ctx.resolve(nil).IsAbsent())
}

func TestContextAuxiliaryNamespaces(t *testing.T) {
	ctx := NewContext()
	ctx.SetConversationData("message_count", 5)
	ctx.SetUserData("name", "Ada")

	// Auxiliary namespaces are not reachable from plain references.
	engine := NewEngine()
	assert.Equal(t, "{name}", engine.Render("{name}", ctx))
	assert.Equal(t, "{message_count}", engine.Render("{message_count}", ctx))
}

func TestContextMerge(t *testing.T) {
	base := NewContext()
	base.SetVariable("a", "base-a")
	base.SetVariable("b", "base-b")
	base.SetConversationData("topic", "go")
	base.SetUserData("role", "admin")

	overlay := NewContext()
	overlay.SetVariable("b", "overlay-b")
	overlay.SetVariable("c", "overlay-c")
	overlay.SetUserData("role", "viewer")

	merged := base.Merge(overlay)

	t.Run("overlay wins per key", func(t *testing.T) {
		assert.Equal(t, "base-a", merged.Variable("a").String())
		assert.Equal(t, "overlay-b", merged.Variable("b").String())
		assert.Equal(t, "overlay-c", merged.Variable("c").String())
		assert.Equal(t, "viewer", merged.UserData["role"].String())
		assert.Equal(t, "go", merged.ConversationData["topic"].String())
	})

	t.Run("override is shallow", func(t *testing.T) {
		base := NewContextFromMap(map[string]any{
			"user": map[string]any{"name": "Ada", "role": "admin"},
		})
		overlay := NewContextFromMap(map[string]any{
			"user": map[string]any{"name": "Grace"},
		})
		merged := base.Merge(overlay)

		// The whole mapping is replaced, not merged recursively.
		assert.Equal(t, "Grace", merged.resolve([]string{"user", "name"}).String())
		assert.True(t, merged.resolve([]string{"user", "role"}).IsAbsent())
	})

	t.Run("inputs are untouched", func(t *testing.T) {
		assert.Equal(t, "base-b", base.Variable("b").String())
		assert.True(t, overlay.Variable("a").IsAbsent())
	})

	t.Run("nil overlay copies base", func(t *testing.T) {
		copied := base.Merge(nil)
		assert.Equal(t, "base-a", copied.Variable("a").String())
	})
}

func TestContextWithBinding(t *testing.T) {
	parent := NewContextFromMap(map[string]any{"x": "outer", "y": "kept"})
	child := parent.withBinding("x", StringValue("inner"))

	assert.Equal(t, "inner", child.Variable("x").String())
	assert.Equal(t, "kept", child.Variable("y").String())
	assert.Equal(t, "outer", parent.Variable("x").String())
}
