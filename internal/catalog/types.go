package catalog

// ServerDefinition describes one MCP server in the catalog.
//
// A server is either a local-process server (Command + Args) or a
// remote-HTTP server (HTTPURL + Headers). The schema does not enforce
// exclusivity; the doctor reports entries that define both.
type ServerDefinition struct {
	// Command is the executable for local (stdio) servers.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments passed to Command.
	Args []string `json:"args,omitempty"`

	// HTTPURL is the endpoint for remote servers.
	HTTPURL string `json:"httpUrl,omitempty"`

	// Headers contains HTTP request headers for remote servers.
	Headers map[string]string `json:"headers,omitempty"`

	// Env maps environment variable names to default value strings.
	// Defaults may carry a human-readable "Default: " prefix and trailing
	// carriage-return noise; merge strips both before use.
	Env map[string]string `json:"env,omitempty"`

	// Description is free text shown in listings.
	Description string `json:"description,omitempty"`

	// Tags are used for search and filtering.
	Tags []string `json:"tags,omitempty"`
}

// IsLocal returns true if the server launches a local process.
func (s *ServerDefinition) IsLocal() bool {
	return s.Command != ""
}

// IsRemote returns true if the server is reached over HTTP.
func (s *ServerDefinition) IsRemote() bool {
	return s.HTTPURL != ""
}

// Clone returns a deep copy of the definition.
// Catalog definitions are immutable at runtime; any caller that needs to
// modify one (the merger) works on a clone.
func (s *ServerDefinition) Clone() *ServerDefinition {
	if s == nil {
		return nil
	}
	out := &ServerDefinition{
		Command:     s.Command,
		HTTPURL:     s.HTTPURL,
		Description: s.Description,
	}
	if s.Args != nil {
		out.Args = append([]string(nil), s.Args...)
	}
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	if s.Headers != nil {
		out.Headers = make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			out.Headers[k] = v
		}
	}
	if s.Env != nil {
		out.Env = make(map[string]string, len(s.Env))
		for k, v := range s.Env {
			out.Env[k] = v
		}
	}
	return out
}

// Document is the master catalog: a mapping from server ID to definition.
type Document struct {
	Servers map[string]*ServerDefinition `json:"servers"`
}

// GroupTemplate is a curated, named subset of catalog server IDs
// loaded as an atomic replacement unit.
type GroupTemplate struct {
	// Name is the display name of the group.
	Name string `json:"name"`

	// Description is free text shown in listings.
	Description string `json:"description"`

	// Servers is the ordered list of catalog server IDs in the group.
	Servers []string `json:"servers"`

	// Icon is a display icon identifier.
	Icon string `json:"icon"`
}

// TemplatesDocument is the bundled group-templates file.
type TemplatesDocument struct {
	Version   string                   `json:"version"`
	Templates map[string]GroupTemplate `json:"templates"`
}
