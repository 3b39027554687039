package catalog

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcpdeck/mcpdeck/pkg/fileutil"
)

//go:embed assets/mcp-servers.json
var bundledCatalog []byte

//go:embed assets/group-templates.json
var bundledTemplates []byte

// Sentinel errors for catalog loading.
var (
	// ErrInvalidCatalog indicates the catalog document is structurally invalid.
	ErrInvalidCatalog = errors.New("invalid catalog document")

	// ErrInvalidTemplates indicates the group-templates document is structurally invalid.
	ErrInvalidTemplates = errors.New("invalid group templates document")

	// ErrServerNotFound indicates the requested server ID is not in the catalog.
	ErrServerNotFound = errors.New("server not found in catalog")

	// ErrGroupNotFound indicates the requested group key is not in the templates.
	ErrGroupNotFound = errors.New("group not found")
)

// Store provides read-only access to the master server catalog and the
// grouped-server templates. Documents are loaded fresh on each access;
// definitions are treated as immutable once returned.
type Store struct {
	catalogPath   string
	templatesPath string
}

// Option configures a Store.
type Option func(*Store)

// WithCatalogPath overrides the bundled catalog with an external file.
func WithCatalogPath(path string) Option {
	return func(s *Store) {
		s.catalogPath = path
	}
}

// WithTemplatesPath overrides the bundled group templates with an external file.
func WithTemplatesPath(path string) Option {
	return func(s *Store) {
		s.templatesPath = path
	}
}

// NewStore creates a catalog Store. With no options it serves the
// catalog and templates bundled into the binary.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Raw returns the raw catalog document bytes.
// Used by the hook manager to copy the catalog into the workspace.
func (s *Store) Raw() ([]byte, error) {
	if s.catalogPath == "" {
		return bundledCatalog, nil
	}
	data, err := fileutil.ReadFileWithLimit(s.catalogPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog override")
	}
	return data, nil
}

// Load parses and validates the catalog document.
// The top-level "servers" key must be present and must be an object;
// absence or wrong type is a load error.
func (s *Store) Load() (*Document, error) {
	data, err := s.Raw()
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(ErrInvalidCatalog, err.Error())
	}

	serversData, ok := raw["servers"]
	if !ok {
		return nil, errors.Wrap(ErrInvalidCatalog, "missing top-level servers key")
	}

	var servers map[string]*ServerDefinition
	if err := json.Unmarshal(serversData, &servers); err != nil {
		return nil, errors.Wrap(ErrInvalidCatalog, "servers key is not an object of server definitions")
	}
	if servers == nil {
		servers = make(map[string]*ServerDefinition)
	}

	return &Document{Servers: servers}, nil
}

// LoadTemplates parses and validates the group-templates document.
func (s *Store) LoadTemplates() (*TemplatesDocument, error) {
	data := bundledTemplates
	if s.templatesPath != "" {
		var err error
		data, err = fileutil.ReadFileWithLimit(s.templatesPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading templates override")
		}
	}

	var doc TemplatesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrInvalidTemplates, err.Error())
	}
	if doc.Templates == nil {
		return nil, errors.Wrap(ErrInvalidTemplates, "missing templates key")
	}

	return &doc, nil
}

// Get returns a single server definition by ID.
// Returns ErrServerNotFound if the ID is not in the catalog.
func (s *Store) Get(id string) (*ServerDefinition, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	def, ok := doc.Servers[id]
	if !ok {
		return nil, errors.Wrapf(ErrServerNotFound, "%q", id)
	}
	return def, nil
}

// Group returns a single group template by key.
// Returns ErrGroupNotFound if the key is not in the templates document.
func (s *Store) Group(key string) (*GroupTemplate, error) {
	doc, err := s.LoadTemplates()
	if err != nil {
		return nil, err
	}
	tpl, ok := doc.Templates[key]
	if !ok {
		return nil, errors.Wrapf(ErrGroupNotFound, "%q", key)
	}
	return &tpl, nil
}

// IDs returns all server IDs in the catalog, sorted for deterministic output.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.Servers))
	for id := range d.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Match describes a catalog search hit.
type Match struct {
	ID     string
	Server *ServerDefinition
}

// Search returns servers whose ID, description, or tags contain term
// (case-insensitive). An empty term matches everything.
// Results are sorted by ID.
func (d *Document) Search(term string) []Match {
	term = strings.ToLower(strings.TrimSpace(term))

	var matches []Match
	for _, id := range d.IDs() {
		server := d.Servers[id]
		if term == "" || matchesTerm(id, server, term) {
			matches = append(matches, Match{ID: id, Server: server})
		}
	}
	return matches
}

// FilterByTag returns servers carrying the given tag exactly (case-insensitive).
func (d *Document) FilterByTag(tag string) []Match {
	tag = strings.ToLower(strings.TrimSpace(tag))

	var matches []Match
	for _, id := range d.IDs() {
		server := d.Servers[id]
		for _, t := range server.Tags {
			if strings.ToLower(t) == tag {
				matches = append(matches, Match{ID: id, Server: server})
				break
			}
		}
	}
	return matches
}

func matchesTerm(id string, server *ServerDefinition, term string) bool {
	if strings.Contains(strings.ToLower(id), term) {
		return true
	}
	if strings.Contains(strings.ToLower(server.Description), term) {
		return true
	}
	for _, t := range server.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}
