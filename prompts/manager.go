package prompts

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/voidfemme/chatbot-library/utils"
)

// TemplateManager holds prompt templates and thinking-template presets in
// memory. Persistence is the caller's concern; ExportJSON and ImportJSON
// provide the interchange format.
type TemplateManager struct {
	mu                sync.RWMutex
	templates         map[string]*PromptTemplate
	thinkingTemplates map[string]*ThinkingTemplate
	logger            utils.Logger
	maxTemplateSize   int
}

type ManagerOption func(*TemplateManager)

// WithManagerLogger sets the manager's logger.
func WithManagerLogger(logger utils.Logger) ManagerOption {
	return func(m *TemplateManager) {
		m.logger = logger
	}
}

// WithMaxTemplateSize bounds the size of templates the manager accepts.
// Zero means unbounded.
func WithMaxTemplateSize(size int) ManagerOption {
	return func(m *TemplateManager) {
		m.maxTemplateSize = size
	}
}

// NewTemplateManager creates a manager pre-loaded with the built-in
// templates and thinking presets.
func NewTemplateManager(opts ...ManagerOption) *TemplateManager {
	m := &TemplateManager{
		templates:         make(map[string]*PromptTemplate),
		thinkingTemplates: make(map[string]*ThinkingTemplate),
		logger:            utils.NewLogger(utils.LogLevelWarn),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.loadBuiltinTemplates()
	return m
}

// AddTemplate validates and stores a template, replacing any existing
// template with the same ID.
func (m *TemplateManager) AddTemplate(t *PromptTemplate) error {
	if m.maxTemplateSize > 0 && len(t.Template) > m.maxTemplateSize {
		return NewTemplateError(ErrorTypeInvalidInput, "template exceeds maximum size", nil)
	}
	if err := ValidateStruct(t); err != nil {
		return NewTemplateError(ErrorTypeValidation, "invalid template record", err)
	}
	t.UpdatedAt = time.Now()

	m.mu.Lock()
	m.templates[t.ID] = t
	m.mu.Unlock()

	m.logger.Debug("added template", "id", t.ID, "name", t.Name)
	return nil
}

// AddThinkingTemplate validates and stores a thinking-template preset under
// the given name.
func (m *TemplateManager) AddThinkingTemplate(name string, t *ThinkingTemplate) error {
	if err := ValidateStruct(t); err != nil {
		return NewTemplateError(ErrorTypeValidation, "invalid thinking template", err)
	}

	m.mu.Lock()
	m.thinkingTemplates[name] = t
	m.mu.Unlock()

	m.logger.Debug("added thinking template", "name", name)
	return nil
}

// GetTemplate returns a template by ID.
func (m *TemplateManager) GetTemplate(id string) (*PromptTemplate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	return t, ok
}

// GetTemplateByName returns the first template whose Name matches exactly.
func (m *TemplateManager) GetTemplateByName(name string) (*PromptTemplate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// GetThinkingTemplate returns a thinking-template preset by name.
func (m *TemplateManager) GetThinkingTemplate(name string) (*ThinkingTemplate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.thinkingTemplates[name]
	return t, ok
}

// TemplatesByCategory returns all templates in a category.
func (m *TemplateManager) TemplatesByCategory(category string) []*PromptTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*PromptTemplate
	for _, t := range m.templates {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// TemplatesByTag returns all templates carrying the given tag.
func (m *TemplateManager) TemplatesByTag(tag string) []*PromptTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*PromptTemplate
	for _, t := range m.templates {
		if t.HasTag(tag) {
			result = append(result, t)
		}
	}
	return result
}

// SearchTemplates matches the query against template names, descriptions,
// and bodies, case-insensitively.
func (m *TemplateManager) SearchTemplates(query string) []*PromptTemplate {
	query = strings.ToLower(query)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*PromptTemplate
	for _, t := range m.templates {
		if strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.Template), query) {
			result = append(result, t)
		}
	}
	return result
}

// UpdateTemplate applies the mutation to the template with the given ID and
// bumps its UpdatedAt timestamp.
func (m *TemplateManager) UpdateTemplate(id string, update func(*PromptTemplate)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return NewTemplateError(ErrorTypeNotFound, "template not found: "+id, nil)
	}
	update(t)
	t.UpdatedAt = time.Now()
	m.logger.Debug("updated template", "id", id)
	return nil
}

// DeleteTemplate removes a template; it reports whether one was removed.
func (m *TemplateManager) DeleteTemplate(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return false
	}
	delete(m.templates, id)
	m.logger.Debug("deleted template", "id", id)
	return true
}

// ListTemplates returns all stored templates.
func (m *TemplateManager) ListTemplates() []*PromptTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*PromptTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		result = append(result, t)
	}
	return result
}

// ListThinkingTemplates returns the names of the stored thinking presets.
func (m *TemplateManager) ListThinkingTemplates() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.thinkingTemplates))
	for name := range m.thinkingTemplates {
		names = append(names, name)
	}
	return names
}

// CreateFromText builds, stores, and returns a new template from raw text,
// generating an ID and extracting its variables.
func (m *TemplateManager) CreateFromText(name, description, text string) (*PromptTemplate, error) {
	t := NewPromptTemplate(uuid.NewString(), name, description, text)
	if err := m.AddTemplate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// templateExport is the JSON interchange envelope.
type templateExport struct {
	Templates  []*PromptTemplate `json:"templates"`
	ExportedAt time.Time         `json:"exported_at"`
	Version    string            `json:"version"`
}

// ExportJSON serializes the given templates, or every template when no IDs
// are passed.
func (m *TemplateManager) ExportJSON(ids ...string) ([]byte, error) {
	m.mu.RLock()
	export := templateExport{ExportedAt: time.Now(), Version: "1.0"}
	if len(ids) == 0 {
		for _, t := range m.templates {
			export.Templates = append(export.Templates, t)
		}
	} else {
		for _, id := range ids {
			if t, ok := m.templates[id]; ok {
				export.Templates = append(export.Templates, t)
			}
		}
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, NewTemplateError(ErrorTypeSerialization, "failed to export templates", err)
	}
	m.logger.Info("exported templates", "count", len(export.Templates))
	return data, nil
}

// ImportJSON loads templates from an export envelope. Existing IDs are kept
// unless overwrite is set. It returns the number of templates imported.
func (m *TemplateManager) ImportJSON(data []byte, overwrite bool) (int, error) {
	var export templateExport
	if err := json.Unmarshal(data, &export); err != nil {
		return 0, NewTemplateError(ErrorTypeSerialization, "failed to parse template export", err)
	}

	imported := 0
	for _, t := range export.Templates {
		if t == nil {
			m.logger.Warn("skipping null template entry on import")
			continue
		}
		if err := ValidateStruct(t); err != nil {
			m.logger.Warn("skipping invalid template on import", "id", t.ID, "error", err)
			continue
		}
		m.mu.Lock()
		if _, exists := m.templates[t.ID]; !exists || overwrite {
			m.templates[t.ID] = t
			imported++
		}
		m.mu.Unlock()
	}

	m.logger.Info("imported templates", "count", imported)
	return imported, nil
}

// TemplateSchema returns the JSON Schema describing the serialized
// PromptTemplate record, for validating interchange files externally.
func TemplateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&PromptTemplate{})
}

func (m *TemplateManager) loadBuiltinTemplates() {
	builtins := []*PromptTemplate{
		{
			ID:          "system_default",
			Name:        "Default System Prompt",
			Description: "Standard system prompt for general conversation",
			Template:    "You are a helpful, harmless, and honest AI assistant. Respond clearly and concisely.",
			Category:    "system",
		},
		{
			ID:          "system_coding",
			Name:        "Coding Assistant",
			Description: "System prompt for coding assistance",
			Template: `You are an expert programming assistant. Help with:
- Writing clean, efficient code
- Debugging and troubleshooting
- Explaining programming concepts
- Code review and best practices

Always provide working code examples and explain your reasoning.`,
			Category: "system",
			Tags:     []string{"coding", "programming"},
		},
		{
			ID:          "system_analysis",
			Name:        "Analytical Assistant",
			Description: "System prompt for analytical tasks",
			Template: `You are an analytical AI assistant specialized in:
- Breaking down complex problems
- Providing structured analysis
- Data interpretation
- Research assistance

Always structure your responses logically and provide evidence for your conclusions.`,
			Category: "system",
			Tags:     []string{"analysis", "research"},
		},
		{
			ID:          "creative_writing",
			Name:        "Creative Writing Assistant",
			Description: "System prompt for creative writing tasks",
			Template: `You are a creative writing assistant with expertise in:
- Storytelling and narrative structure
- Character development
- Dialogue and voice
- Style and tone adaptation

Help bring ideas to life while respecting the writer's vision.`,
			Category: "system",
			Tags:     []string{"creative", "writing"},
		},
		{
			ID:          "summarize_conversation",
			Name:        "Conversation Summary",
			Description: "Template for summarizing conversation history",
			Template: `Please provide a concise summary of our conversation so far, including:
- Main topics discussed: {topics}
- Key decisions or conclusions: {decisions}
- Outstanding questions or next steps: {next_steps}

Keep the summary under {max_length} words.`,
			Variables: []string{"topics", "decisions", "next_steps", "max_length"},
			Category:  "utility",
			Tags:      []string{"summary", "conversation"},
		},
		{
			ID:          "code_review",
			Name:        "Code Review",
			Description: "Template for code review requests",
			Template: `Please review the following {language} code:

` + "```{language}\n{code}\n```" + `

Focus on:
- Code quality and readability
- Potential bugs or issues
- Performance considerations
- Best practices
- Security concerns (if applicable)

Provide specific, actionable feedback.`,
			Variables: []string{"language", "code"},
			Category:  "coding",
			Tags:      []string{"code-review", "programming"},
		},
	}

	now := time.Now()
	for _, t := range builtins {
		t.CreatedAt = now
		t.UpdatedAt = now
		t.Version = "1.0"
		m.templates[t.ID] = t
	}

	m.thinkingTemplates["step_by_step_deep"] = &ThinkingTemplate{
		Style:             ThinkingStyleStepByStep,
		Depth:             ThinkingDepthDeep,
		ShowReasoning:     true,
		ReasoningFormat:   ReasoningFormatStructured,
		ConfidenceScoring: true,
	}
	m.thinkingTemplates["creative_exploration"] = &ThinkingTemplate{
		Style:           ThinkingStyleCreative,
		Depth:           ThinkingDepthMedium,
		ShowReasoning:   true,
		ReasoningFormat: ReasoningFormatNatural,
	}
	m.thinkingTemplates["analytical_brief"] = &ThinkingTemplate{
		Style:           ThinkingStyleAnalytical,
		Depth:           ThinkingDepthShallow,
		ShowReasoning:   true,
		ReasoningFormat: ReasoningFormatBulletPoints,
	}
}
