package core

// AgentMetadata carries identifying details about an agent: the external
// name, a description of its purpose, a version label and coarse capability
// tags. CustomAttributes is free-form configuration surfaced to hooks via
// ToolContext.Metadata.
type AgentMetadata struct {
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Version          string         `json:"version"`
	Capabilities     []string       `json:"capabilities,omitempty"`
	CustomAttributes map[string]any `json:"custom_attributes,omitempty"`
}
