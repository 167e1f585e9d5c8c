package prompts

import (
	"time"
)

// PromptTemplate is a reusable prompt template record.
type PromptTemplate struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Template    string         `json:"template" validate:"required,template_syntax"`
	Variables   []string       `json:"variables,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Version     string         `json:"version"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags,omitempty"`
}

// NewPromptTemplate creates a template record with timestamps and defaults
// filled in.
func NewPromptTemplate(id, name, description, template string) *PromptTemplate {
	now := time.Now()
	return &PromptTemplate{
		ID:          id,
		Name:        name,
		Description: description,
		Template:    template,
		Variables:   ExtractVariables(template),
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     "1.0",
		Category:    "general",
	}
}

// HasTag reports whether the template carries the given tag.
func (t *PromptTemplate) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// ThinkingStyle selects the flavor of reasoning instructions.
type ThinkingStyle string

const (
	ThinkingStyleStepByStep ThinkingStyle = "step_by_step"
	ThinkingStyleProsCons   ThinkingStyle = "pros_cons"
	ThinkingStyleAnalytical ThinkingStyle = "analytical"
	ThinkingStyleCreative   ThinkingStyle = "creative"
)

// ThinkingDepth selects how thorough the reasoning instructions are.
type ThinkingDepth string

const (
	ThinkingDepthShallow ThinkingDepth = "shallow"
	ThinkingDepthMedium  ThinkingDepth = "medium"
	ThinkingDepthDeep    ThinkingDepth = "deep"
)

// Reasoning output formats.
const (
	ReasoningFormatStructured   = "structured"
	ReasoningFormatNatural      = "natural"
	ReasoningFormatBulletPoints = "bullet_points"
)

// ThinkingTemplate configures the reasoning instructions prepended to a
// prompt in thinking mode.
type ThinkingTemplate struct {
	Style             ThinkingStyle `json:"thinking_style" validate:"required,oneof=step_by_step pros_cons analytical creative"`
	Depth             ThinkingDepth `json:"thinking_depth" validate:"required,oneof=shallow medium deep"`
	ShowReasoning     bool          `json:"show_reasoning"`
	ReasoningFormat   string        `json:"reasoning_format" validate:"omitempty,oneof=structured natural bullet_points"`
	ConfidenceScoring bool          `json:"confidence_scoring"`
}

var thinkingPrompts = map[ThinkingStyle]map[ThinkingDepth]string{
	ThinkingStyleStepByStep: {
		ThinkingDepthShallow: "Think through this step by step:",
		ThinkingDepthMedium:  "Let's approach this systematically. Think through each step carefully:",
		ThinkingDepthDeep:    "Take a deep, methodical approach. Break this down into clear logical steps and analyze each one thoroughly:",
	},
	ThinkingStyleProsCons: {
		ThinkingDepthShallow: "Consider the pros and cons:",
		ThinkingDepthMedium:  "Analyze the advantages and disadvantages of different approaches:",
		ThinkingDepthDeep:    "Conduct a comprehensive analysis weighing all pros and cons, considering short-term and long-term implications:",
	},
	ThinkingStyleAnalytical: {
		ThinkingDepthShallow: "Analyze this systematically:",
		ThinkingDepthMedium:  "Provide a structured analysis considering key factors:",
		ThinkingDepthDeep:    "Perform a comprehensive analytical breakdown, examining all relevant dimensions and their interconnections:",
	},
	ThinkingStyleCreative: {
		ThinkingDepthShallow: "Think creatively about this:",
		ThinkingDepthMedium:  "Explore creative approaches and alternative perspectives:",
		ThinkingDepthDeep:    "Engage in deep creative thinking, exploring unconventional ideas and innovative solutions:",
	},
}

// ToThinkingPrompt produces the instruction prefix for this configuration.
// Unknown styles fall back to analytical.
func (t *ThinkingTemplate) ToThinkingPrompt() string {
	byDepth, ok := thinkingPrompts[t.Style]
	if !ok {
		byDepth = thinkingPrompts[ThinkingStyleAnalytical]
	}
	prompt, ok := byDepth[t.Depth]
	if !ok {
		prompt = byDepth[ThinkingDepthMedium]
	}

	if t.ShowReasoning {
		switch t.ReasoningFormat {
		case ReasoningFormatStructured:
			prompt += "\n\nStructure your reasoning as follows:\n1. Initial assessment\n2. Key considerations\n3. Analysis\n4. Conclusion"
		case ReasoningFormatBulletPoints:
			prompt += "\n\nOrganize your thoughts using clear bullet points for each major point."
		}
	}

	if t.ConfidenceScoring {
		prompt += "\n\nInclude confidence scores (0-100%) for key conclusions."
	}

	return prompt
}
