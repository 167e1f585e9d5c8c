// Package chatbotlibrary assembles conversational-AI prompts from structured
// data. Its core is a small templating engine supporting variable
// interpolation with dotted paths, function calls, conditional blocks, and
// loops, with the policy that rendering never fails: placeholders that
// cannot be resolved stay in the output verbatim.
//
// This file re-exports the primary types and constructors from the prompts
// package to provide a clean API surface.
package chatbotlibrary

import (
	"github.com/voidfemme/chatbot-library/prompts"
)

// The following types are re-exported from the prompts package. They form
// the core of the prompt system.
type (
	// Engine renders templates against a Context.
	Engine = prompts.Engine

	// EngineOption configures an Engine at construction time.
	EngineOption = prompts.EngineOption

	// Context holds the values a template is rendered against.
	Context = prompts.Context

	// Value is the closed set of runtime values templates operate on.
	Value = prompts.Value

	// TemplateFunc is a custom function callable from templates.
	TemplateFunc = prompts.TemplateFunc

	// FunctionRegistry maps function names to callables.
	FunctionRegistry = prompts.FunctionRegistry

	// PromptTemplate is a reusable prompt template record.
	PromptTemplate = prompts.PromptTemplate

	// ThinkingTemplate configures thinking-mode instruction prefixes.
	ThinkingTemplate = prompts.ThinkingTemplate

	// TemplateManager stores templates and thinking presets.
	TemplateManager = prompts.TemplateManager

	// PromptBuilder assembles complete prompts from templates and context.
	PromptBuilder = prompts.PromptBuilder

	// PromptConfiguration controls how the builder assembles a prompt.
	PromptConfiguration = prompts.PromptConfiguration

	// BuiltPrompt is a fully assembled prompt ready for model consumption.
	BuiltPrompt = prompts.BuiltPrompt

	// ThinkingMode selects how much explicit reasoning is requested.
	ThinkingMode = prompts.ThinkingMode

	// TokenCounter estimates model-token costs for context budgeting.
	TokenCounter = prompts.TokenCounter

	// TemplateError is the error type returned by manager and builder
	// operations.
	TemplateError = prompts.TemplateError
)

// Thinking modes.
const (
	ThinkingModeNone       = prompts.ThinkingModeNone
	ThinkingModeStepByStep = prompts.ThinkingModeStepByStep
	ThinkingModeProsCons   = prompts.ThinkingModeProsCons
	ThinkingModeAnalytical = prompts.ThinkingModeAnalytical
	ThinkingModeCreative   = prompts.ThinkingModeCreative
	ThinkingModeCustom     = prompts.ThinkingModeCustom
)

// Re-exported constructors and engine options.
var (
	// NewEngine creates a template engine with the built-in functions.
	NewEngine = prompts.NewEngine

	// NewEngineFromConfig creates an engine honoring the library Config.
	NewEngineFromConfig = prompts.NewEngineFromConfig

	// WithLogger sets the engine's logger.
	WithLogger = prompts.WithLogger

	// WithRegistry shares a function registry between engines.
	WithRegistry = prompts.WithRegistry

	// WithTemplateCache toggles parsed-template caching.
	WithTemplateCache = prompts.WithTemplateCache

	// Value constructors.
	StringValue = prompts.StringValue
	NumberValue = prompts.NumberValue
	BoolValue   = prompts.BoolValue
	ListValue   = prompts.ListValue
	MapValue    = prompts.MapValue
	FromAny     = prompts.FromAny

	// NewContext creates an empty rendering context.
	NewContext = prompts.NewContext

	// NewContextFromMap creates a context from variable bindings.
	NewContextFromMap = prompts.NewContextFromMap

	// NewFunctionRegistry creates a registry with the built-ins.
	NewFunctionRegistry = prompts.NewFunctionRegistry

	// NewPromptTemplate creates a template record.
	NewPromptTemplate = prompts.NewPromptTemplate

	// NewTemplateManager creates a manager with the built-in catalog.
	NewTemplateManager = prompts.NewTemplateManager

	// NewPromptBuilder creates a prompt builder.
	NewPromptBuilder = prompts.NewPromptBuilder

	// NewPromptConfiguration returns the default builder configuration.
	NewPromptConfiguration = prompts.NewPromptConfiguration

	// NewTiktokenCounter creates a BPE-backed token counter.
	NewTiktokenCounter = prompts.NewTiktokenCounter

	// Validate reports structural defects in a template.
	Validate = prompts.Validate

	// ExtractVariables lists the variables a template references.
	ExtractVariables = prompts.ExtractVariables

	// TemplateSchema returns the JSON Schema of the template record.
	TemplateSchema = prompts.TemplateSchema
)
