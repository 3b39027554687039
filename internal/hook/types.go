package hook

// Doc is a Kiro agent-hook document. Only the fields the manager needs to
// template and sanity-check are modeled; unknown fields in a user-edited
// hook are preserved by never rewriting an existing file.
type Doc struct {
	Enabled     bool   `json:"enabled"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	When        When   `json:"when"`
	Then        Then   `json:"then"`
}

// When is the hook trigger.
type When struct {
	Type     string   `json:"type"`
	Patterns []string `json:"patterns,omitempty"`
}

// Then is the hook action. For this hook it always asks the agent.
type Then struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}
