package workspace

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/pkg/fileutil"
)

// Sentinel errors for workspace document operations.
var (
	// ErrInvalidMCPConfig indicates the in-memory document has an invalid shape
	// and must not be written.
	ErrInvalidMCPConfig = errors.New("invalid MCP configuration document")

	// ErrCorruptMCPConfig indicates the on-disk document could not be parsed.
	ErrCorruptMCPConfig = errors.New("corrupt MCP configuration document")
)

// Store is the narrow read/write interface over the two workspace documents.
// Every component receives the workspace through this interface rather than
// touching files directly, so tests can substitute an in-memory fake.
type Store interface {
	// ReadMCPConfig returns the active configuration.
	// A missing document reads as an empty configuration.
	ReadMCPConfig() (*MCPConfig, error)

	// WriteMCPConfig replaces the active configuration wholesale.
	WriteMCPConfig(cfg *MCPConfig) error

	// ReadEnvVars returns the environment-variables document.
	// A missing or corrupt document degrades to empty variables.
	ReadEnvVars() (*EnvVarsDoc, error)

	// EnsureEnvVars writes the first-run template if no document exists.
	// Returns true if a document was created. An existing document is
	// never overwritten.
	EnsureEnvVars() (bool, error)
}

// FileStore is the file-backed Store over a workspace directory.
type FileStore struct {
	workspace string
	logger    *slog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at the given workspace directory.
// If logger is nil, slog.Default is used.
func NewFileStore(workspace string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		workspace: workspace,
		logger:    logger,
	}
}

// MCPConfigPath returns the path of the active configuration document.
func (s *FileStore) MCPConfigPath() string {
	return paths.MCPConfigPath(s.workspace)
}

// EnvVarsPath returns the path of the environment-variables document.
func (s *FileStore) EnvVarsPath() string {
	return paths.EnvVarsPath(s.workspace)
}

// ReadMCPConfig reads the active MCP configuration from disk.
// A missing file means "no servers configured" and reads as an empty config.
func (s *FileStore) ReadMCPConfig() (*MCPConfig, error) {
	data, err := os.ReadFile(s.MCPConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewMCPConfig(), nil
		}
		return nil, errors.Wrap(err, "reading MCP config")
	}

	var cfg MCPConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(ErrCorruptMCPConfig, err.Error())
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]*catalog.ServerDefinition)
	}

	return &cfg, nil
}

// WriteMCPConfig atomically replaces the active configuration document.
//
// The document shape is validated before any I/O. After the write the file
// is read back and the entry count compared; a mismatch is logged as a
// warning, not escalated to failure, since the atomic rename already
// guarantees the file is never left in a partial state.
func (s *FileStore) WriteMCPConfig(cfg *MCPConfig) error {
	if cfg == nil || cfg.MCPServers == nil {
		return ErrInvalidMCPConfig
	}

	path := s.MCPConfigPath()
	if err := paths.EnsureDir(paths.SettingsDir(s.workspace), 0o755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}

	if err := fileutil.AtomicWriteJSON(path, cfg); err != nil {
		return errors.Wrap(err, "writing MCP config")
	}

	// Write-verify: detection only, never prevention.
	verified, err := s.ReadMCPConfig()
	if err != nil {
		s.logger.Warn("post-write verification failed to read config back",
			"path", path, "error", err)
		return nil
	}
	if len(verified.MCPServers) != len(cfg.MCPServers) {
		s.logger.Warn("post-write verification found unexpected server count",
			"path", path,
			"expected", len(cfg.MCPServers),
			"actual", len(verified.MCPServers))
	}

	return nil
}

// ReadEnvVars reads the environment-variables document.
// A missing document is normal on first use and a corrupt one must not
// abort configuration loading, so both degrade to empty variables; the
// corrupt case is logged as a warning.
func (s *FileStore) ReadEnvVars() (*EnvVarsDoc, error) {
	data, err := fileutil.ReadFileWithLimit(s.EnvVarsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &EnvVarsDoc{Variables: map[string]string{}}, nil
		}
		s.logger.Warn("environment variables document unreadable, using empty values",
			"path", s.EnvVarsPath(), "error", err)
		return &EnvVarsDoc{Variables: map[string]string{}}, nil
	}

	var doc EnvVarsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("environment variables document corrupt, using empty values",
			"path", s.EnvVarsPath(), "error", err)
		return &EnvVarsDoc{Variables: map[string]string{}}, nil
	}
	if doc.Variables == nil {
		doc.Variables = map[string]string{}
	}

	return &doc, nil
}

// EnsureEnvVars writes the first-run environment-variables template if the
// document does not exist yet. An existing document is never touched.
func (s *FileStore) EnsureEnvVars() (bool, error) {
	path := s.EnvVarsPath()
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrap(err, "checking env vars document")
	}

	if err := paths.EnsureDir(paths.SettingsDir(s.workspace), 0o755); err != nil {
		return false, errors.Wrap(err, "creating settings directory")
	}

	// 0600: the document holds secrets in plaintext.
	if err := fileutil.AtomicWriteJSONWithPerm(path, DefaultEnvVars(), 0o600); err != nil {
		return false, errors.Wrap(err, "writing env vars template")
	}

	return true, nil
}
