package prompts

// Context carries the values a template is rendered against. Variables is the
// namespace plain references resolve from; ConversationData and UserData hold
// auxiliary data that callers (such as the PromptBuilder) surface into
// Variables as needed.
type Context struct {
	Variables        map[string]Value
	ConversationData map[string]Value
	UserData         map[string]Value
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{
		Variables:        make(map[string]Value),
		ConversationData: make(map[string]Value),
		UserData:         make(map[string]Value),
	}
}

// NewContextFromMap creates a Context with the given variable bindings.
func NewContextFromMap(variables map[string]any) *Context {
	ctx := NewContext()
	for name, value := range variables {
		ctx.Variables[name] = FromAny(value)
	}
	return ctx
}

// SetVariable adds or replaces a variable binding.
func (c *Context) SetVariable(name string, value any) {
	c.Variables[name] = FromAny(value)
}

// Variable returns a variable binding, or Absent if the name is unbound.
func (c *Context) Variable(name string) Value {
	v, ok := c.Variables[name]
	if !ok {
		return Absent
	}
	return v
}

// SetConversationData adds or replaces a conversation-data entry.
func (c *Context) SetConversationData(name string, value any) {
	c.ConversationData[name] = FromAny(value)
}

// SetUserData adds or replaces a user-data entry.
func (c *Context) SetUserData(name string, value any) {
	c.UserData[name] = FromAny(value)
}

// Merge returns a new Context where overlay keys replace base keys within
// each namespace. The override is shallow: values are replaced whole, never
// merged recursively.
func (c *Context) Merge(overlay *Context) *Context {
	merged := NewContext()
	for k, v := range c.Variables {
		merged.Variables[k] = v
	}
	for k, v := range c.ConversationData {
		merged.ConversationData[k] = v
	}
	for k, v := range c.UserData {
		merged.UserData[k] = v
	}
	if overlay != nil {
		for k, v := range overlay.Variables {
			merged.Variables[k] = v
		}
		for k, v := range overlay.ConversationData {
			merged.ConversationData[k] = v
		}
		for k, v := range overlay.UserData {
			merged.UserData[k] = v
		}
	}
	return merged
}

// withBinding derives a child context for one loop iteration, shadowing
// bindingName without touching the parent's maps.
func (c *Context) withBinding(name string, value Value) *Context {
	child := &Context{
		Variables:        make(map[string]Value, len(c.Variables)+1),
		ConversationData: c.ConversationData,
		UserData:         c.UserData,
	}
	for k, v := range c.Variables {
		child.Variables[k] = v
	}
	child.Variables[name] = value
	return child
}

// resolve evaluates a dotted path against the variable namespace. The first
// segment selects the variable; the rest descend into nested mappings.
func (c *Context) resolve(path []string) Value {
	if len(path) == 0 {
		return Absent
	}
	head, ok := c.Variables[path[0]]
	if !ok {
		return Absent
	}
	return lookupPath(head, path[1:])
}
