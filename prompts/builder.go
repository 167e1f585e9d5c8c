package prompts

import (
	"fmt"
	"strings"

	"github.com/voidfemme/chatbot-library/utils"
)

// ThinkingMode selects how much explicit reasoning the model is asked for.
type ThinkingMode string

const (
	ThinkingModeNone       ThinkingMode = "none"
	ThinkingModeStepByStep ThinkingMode = "step_by_step"
	ThinkingModeProsCons   ThinkingMode = "pros_cons"
	ThinkingModeAnalytical ThinkingMode = "analytical"
	ThinkingModeCreative   ThinkingMode = "creative"
	ThinkingModeCustom     ThinkingMode = "custom"
)

// ThinkingModes lists every mode, for configuration surfaces.
func ThinkingModes() []ThinkingMode {
	return []ThinkingMode{
		ThinkingModeNone,
		ThinkingModeStepByStep,
		ThinkingModeProsCons,
		ThinkingModeAnalytical,
		ThinkingModeCreative,
		ThinkingModeCustom,
	}
}

// PromptConfiguration controls how a prompt is assembled.
type PromptConfiguration struct {
	SystemTemplateID           string
	ThinkingMode               ThinkingMode
	ThinkingTemplateName       string
	IncludeConversationSummary bool
	IncludeUserContext         bool
	MaxContextTokens           int
	CustomInstructions         string
	Variables                  map[string]any
}

// NewPromptConfiguration returns the default configuration: no thinking
// mode, user context included.
func NewPromptConfiguration() *PromptConfiguration {
	return &PromptConfiguration{
		ThinkingMode:       ThinkingModeNone,
		IncludeUserContext: true,
	}
}

// BuiltPrompt is a fully assembled prompt ready for model consumption.
type BuiltPrompt struct {
	SystemMessage        string
	UserMessage          string
	ThinkingInstructions string
	TokenEstimate        int
	Metadata             map[string]any
	TemplateIDs          []string
}

// PromptBuilder assembles prompts from templates, thinking instructions,
// and conversation context.
type PromptBuilder struct {
	manager *TemplateManager
	engine  *Engine
	counter TokenCounter
	logger  utils.Logger

	// Default thinking presets per mode, matching the manager's built-ins.
	defaultThinkingTemplates map[ThinkingMode]string
}

type BuilderOption func(*PromptBuilder)

// WithBuilderLogger sets the builder's logger.
func WithBuilderLogger(logger utils.Logger) BuilderOption {
	return func(b *PromptBuilder) {
		b.logger = logger
	}
}

// WithTokenCounter replaces the token counter used for context budgeting.
func WithTokenCounter(counter TokenCounter) BuilderOption {
	return func(b *PromptBuilder) {
		b.counter = counter
	}
}

// NewPromptBuilder creates a builder on top of a template manager and
// engine. The default token counter is the encoding-free ApproxCounter;
// pass WithTokenCounter(NewTiktokenCounter(model)) for exact counts.
func NewPromptBuilder(manager *TemplateManager, engine *Engine, opts ...BuilderOption) *PromptBuilder {
	b := &PromptBuilder{
		manager: manager,
		engine:  engine,
		counter: ApproxCounter{},
		logger:  utils.NewLogger(utils.LogLevelWarn),
		defaultThinkingTemplates: map[ThinkingMode]string{
			ThinkingModeStepByStep: "step_by_step_deep",
			ThinkingModeProsCons:   "analytical_brief",
			ThinkingModeAnalytical: "analytical_brief",
			ThinkingModeCreative:   "creative_exploration",
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildPrompt assembles a complete prompt. Conversation and user context are
// optional; user context entries are surfaced to templates as user_<key>
// variables.
func (b *PromptBuilder) BuildPrompt(
	userMessage string,
	cfg *PromptConfiguration,
	conversationContext map[string]any,
	userContext map[string]any,
) *BuiltPrompt {
	if cfg == nil {
		cfg = NewPromptConfiguration()
	}

	ctx := b.buildTemplateContext(cfg, conversationContext, userContext, userMessage)

	systemMessage := b.buildSystemMessage(cfg, ctx)

	var thinkingInstructions string
	if cfg.ThinkingMode != ThinkingModeNone {
		thinkingInstructions = b.buildThinkingInstructions(cfg, ctx)
	}

	processedMessage := b.engine.Render(userMessage, ctx)

	built := &BuiltPrompt{
		SystemMessage:        systemMessage,
		UserMessage:          processedMessage,
		ThinkingInstructions: thinkingInstructions,
		Metadata: map[string]any{
			"thinking_mode":          string(cfg.ThinkingMode),
			"system_template_id":     cfg.SystemTemplateID,
			"thinking_template_name": cfg.ThinkingTemplateName,
		},
	}
	if cfg.SystemTemplateID != "" {
		built.TemplateIDs = append(built.TemplateIDs, cfg.SystemTemplateID)
	}

	built.TokenEstimate = b.estimate(built)
	if cfg.MaxContextTokens > 0 && built.TokenEstimate > cfg.MaxContextTokens {
		b.trimToBudget(built, cfg, conversationContext, userContext, userMessage)
	}

	b.logger.Debug("built prompt",
		"thinking_mode", string(cfg.ThinkingMode),
		"token_estimate", built.TokenEstimate)
	return built
}

// BuildQuickPrompt assembles a prompt with minimal configuration.
func (b *PromptBuilder) BuildQuickPrompt(userMessage string, mode ThinkingMode, systemTemplateID string) *BuiltPrompt {
	cfg := NewPromptConfiguration()
	cfg.ThinkingMode = mode
	cfg.SystemTemplateID = systemTemplateID
	return b.BuildPrompt(userMessage, cfg, nil, nil)
}

// BuildThinkingPrompt assembles a prompt around an ad-hoc thinking template.
func (b *PromptBuilder) BuildThinkingPrompt(userMessage string, style ThinkingStyle, depth ThinkingDepth) (*BuiltPrompt, error) {
	t := &ThinkingTemplate{
		Style:           style,
		Depth:           depth,
		ShowReasoning:   true,
		ReasoningFormat: ReasoningFormatStructured,
	}
	name := fmt.Sprintf("temp_%s_%s", style, depth)
	if err := b.manager.AddThinkingTemplate(name, t); err != nil {
		return nil, err
	}

	cfg := NewPromptConfiguration()
	cfg.ThinkingMode = ThinkingModeCustom
	cfg.ThinkingTemplateName = name
	return b.BuildPrompt(userMessage, cfg, nil, nil), nil
}

// ConfigForTask returns a configuration tuned for a task type; unknown task
// types get the default configuration.
func (b *PromptBuilder) ConfigForTask(taskType string) *PromptConfiguration {
	switch taskType {
	case "coding":
		return &PromptConfiguration{
			SystemTemplateID:   "system_coding",
			ThinkingMode:       ThinkingModeStepByStep,
			IncludeUserContext: true,
		}
	case "analysis":
		return &PromptConfiguration{
			SystemTemplateID:           "system_analysis",
			ThinkingMode:               ThinkingModeAnalytical,
			IncludeConversationSummary: true,
		}
	case "creative":
		return &PromptConfiguration{
			ThinkingMode:       ThinkingModeCreative,
			IncludeUserContext: true,
		}
	case "problem_solving":
		return &PromptConfiguration{
			ThinkingMode:               ThinkingModeStepByStep,
			IncludeConversationSummary: true,
			CustomInstructions:         "Focus on finding practical solutions.",
		}
	case "decision_making":
		return &PromptConfiguration{
			ThinkingMode:               ThinkingModeProsCons,
			IncludeConversationSummary: true,
			CustomInstructions:         "Weigh all options carefully before recommending.",
		}
	default:
		return NewPromptConfiguration()
	}
}

// ValidateConfiguration reports problems with a configuration as
// human-readable messages, empty when the configuration is usable.
func (b *PromptBuilder) ValidateConfiguration(cfg *PromptConfiguration) []string {
	var problems []string

	if cfg.SystemTemplateID != "" {
		if _, ok := b.manager.GetTemplate(cfg.SystemTemplateID); !ok {
			problems = append(problems, "system template not found: "+cfg.SystemTemplateID)
		}
	}
	if cfg.ThinkingTemplateName != "" {
		if _, ok := b.manager.GetThinkingTemplate(cfg.ThinkingTemplateName); !ok {
			problems = append(problems, "thinking template not found: "+cfg.ThinkingTemplateName)
		}
	}
	if cfg.ThinkingMode != ThinkingModeNone && cfg.ThinkingTemplateName == "" {
		if name, ok := b.defaultThinkingTemplates[cfg.ThinkingMode]; ok {
			if _, found := b.manager.GetThinkingTemplate(name); !found {
				problems = append(problems, "default thinking template missing for mode: "+string(cfg.ThinkingMode))
			}
		}
	}

	return problems
}

func (b *PromptBuilder) buildTemplateContext(
	cfg *PromptConfiguration,
	conversationContext map[string]any,
	userContext map[string]any,
	userMessage string,
) *Context {
	ctx := NewContext()
	for name, value := range cfg.Variables {
		ctx.SetVariable(name, value)
	}
	for name, value := range conversationContext {
		ctx.SetConversationData(name, value)
	}
	for name, value := range userContext {
		ctx.SetUserData(name, value)
	}

	ctx.SetVariable("user_message", userMessage)
	ctx.SetVariable("thinking_mode", string(cfg.ThinkingMode))

	if cfg.IncludeConversationSummary && conversationContext != nil {
		ctx.SetVariable("conversation_summary", summarizeConversation(conversationContext))
	}
	if cfg.IncludeUserContext {
		for key, value := range userContext {
			ctx.SetVariable("user_"+key, value)
		}
	}

	return ctx
}

func (b *PromptBuilder) buildSystemMessage(cfg *PromptConfiguration, ctx *Context) string {
	var systemTemplate *PromptTemplate
	if cfg.SystemTemplateID != "" {
		if t, ok := b.manager.GetTemplate(cfg.SystemTemplateID); ok {
			systemTemplate = t
		}
	}
	if systemTemplate == nil {
		if t, ok := b.manager.GetTemplate("system_default"); ok {
			systemTemplate = t
		}
	}

	var systemMessage string
	if systemTemplate != nil {
		systemMessage = b.engine.RenderTemplate(systemTemplate, ctx)
	}

	if cfg.CustomInstructions != "" {
		if systemMessage != "" {
			systemMessage += "\n\n" + cfg.CustomInstructions
		} else {
			systemMessage = cfg.CustomInstructions
		}
	}

	return systemMessage
}

func (b *PromptBuilder) buildThinkingInstructions(cfg *PromptConfiguration, ctx *Context) string {
	var thinkingTemplate *ThinkingTemplate
	if cfg.ThinkingTemplateName != "" {
		if t, ok := b.manager.GetThinkingTemplate(cfg.ThinkingTemplateName); ok {
			thinkingTemplate = t
		}
	} else if name, ok := b.defaultThinkingTemplates[cfg.ThinkingMode]; ok {
		if t, found := b.manager.GetThinkingTemplate(name); found {
			thinkingTemplate = t
		}
	}

	if thinkingTemplate != nil {
		return b.engine.RenderThinkingPrompt(thinkingTemplate, "", ctx)
	}
	return simpleThinkingInstruction(cfg.ThinkingMode)
}

func simpleThinkingInstruction(mode ThinkingMode) string {
	switch mode {
	case ThinkingModeStepByStep:
		return "Think through this step by step before responding."
	case ThinkingModeProsCons:
		return "Consider the pros and cons before responding."
	case ThinkingModeAnalytical:
		return "Analyze this systematically before responding."
	case ThinkingModeCreative:
		return "Think creatively about this before responding."
	default:
		return "Think carefully before responding."
	}
}

func (b *PromptBuilder) estimate(p *BuiltPrompt) int {
	return b.counter.Count(p.SystemMessage) +
		b.counter.Count(p.ThinkingInstructions) +
		b.counter.Count(p.UserMessage)
}

// trimToBudget rebuilds the prompt without the conversation summary when the
// estimate exceeds the budget, and logs when even that is not enough.
func (b *PromptBuilder) trimToBudget(
	p *BuiltPrompt,
	cfg *PromptConfiguration,
	conversationContext map[string]any,
	userContext map[string]any,
	userMessage string,
) {
	if cfg.IncludeConversationSummary {
		trimmed := *cfg
		trimmed.IncludeConversationSummary = false
		ctx := b.buildTemplateContext(&trimmed, conversationContext, userContext, userMessage)
		p.SystemMessage = b.buildSystemMessage(&trimmed, ctx)
		p.UserMessage = b.engine.Render(userMessage, ctx)
		p.TokenEstimate = b.estimate(p)
		p.Metadata["trimmed_conversation_summary"] = true
	}
	if p.TokenEstimate > cfg.MaxContextTokens {
		b.logger.Warn("built prompt exceeds context budget",
			"estimate", p.TokenEstimate, "budget", cfg.MaxContextTokens)
	}
}

// summarizeConversation produces a one-line summary of conversation
// metadata for the conversation_summary variable.
func summarizeConversation(conversationContext map[string]any) string {
	var parts []string

	if count, ok := conversationContext["message_count"]; ok {
		parts = append(parts, fmt.Sprintf("Messages exchanged: %v", count))
	}
	if topics, ok := conversationContext["topics"].([]string); ok && len(topics) > 0 {
		if len(topics) > 3 {
			topics = topics[:3]
		}
		parts = append(parts, "Main topics: "+strings.Join(topics, ", "))
	}
	if last, ok := conversationContext["last_response_time"]; ok {
		parts = append(parts, fmt.Sprintf("Last interaction: %v", last))
	}

	if len(parts) == 0 {
		return "New conversation"
	}
	return strings.Join(parts, "; ")
}
