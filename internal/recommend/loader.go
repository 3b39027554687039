package recommend

import (
	"log/slog"
	"sort"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/merge"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

// Loader drives a single recommendation-load attempt from raw bytes to a
// persisted configuration. One linear pass, no retries.
type Loader struct {
	catalog *catalog.Store
	store   workspace.Store
	logger  *slog.Logger
}

// NewLoader creates a Loader.
// If logger is nil, slog.Default is used.
func NewLoader(cat *catalog.Store, store workspace.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		catalog: cat,
		store:   store,
		logger:  logger,
	}
}

// Load validates raw recommendation input and, when at least one record
// survives filtering, replaces the active configuration with the effective
// configurations of the recommended servers.
//
// The prior document is read before the write attempt; if the write fails,
// Load makes a best-effort attempt to restore it. A failed rollback is
// logged, but the original write error is what the outcome carries.
func (l *Loader) Load(data []byte) *Outcome {
	recs, dropped, err := Parse(data, l.logger)
	if err != nil {
		return &Outcome{Kind: KindInvalidFormat, Err: err}
	}
	if len(recs) == 0 && dropped == 0 {
		l.logger.Info("recommendation input is empty, nothing to do")
		return &Outcome{Kind: KindEmpty}
	}

	doc, err := l.catalog.Load()
	if err != nil {
		return &Outcome{Kind: KindCatalogError, Dropped: dropped, Err: err}
	}

	valid, unknown := FilterKnown(recs, doc, l.logger)
	if len(valid) == 0 {
		return &Outcome{Kind: KindNoValidServers, UnknownIDs: unknown, Dropped: dropped}
	}

	vars, err := l.store.ReadEnvVars()
	if err != nil {
		return &Outcome{Kind: KindCatalogError, UnknownIDs: unknown, Dropped: dropped, Err: err}
	}

	cfg := workspace.NewMCPConfig()
	reasons := make(map[string]string, len(valid))
	for _, rec := range valid {
		def := merge.Effective(doc.Servers[rec.ServerID], vars.Variables, l.logger)
		if def == nil {
			l.logger.Warn("skipping server with unusable definition", "server", rec.ServerID)
			continue
		}
		cfg.MCPServers[rec.ServerID] = def
		reasons[rec.ServerID] = rec.Reason
	}
	if len(cfg.MCPServers) == 0 {
		return &Outcome{Kind: KindNoValidServers, UnknownIDs: unknown, Dropped: dropped}
	}

	snapshot, err := l.store.ReadMCPConfig()
	if err != nil {
		l.logger.Warn("cannot read current configuration, rollback unavailable", "error", err)
		snapshot = nil
	}

	if err := l.store.WriteMCPConfig(cfg); err != nil {
		if snapshot != nil {
			if rbErr := l.store.WriteMCPConfig(snapshot); rbErr != nil {
				l.logger.Error("rollback failed", "error", rbErr)
			} else {
				l.logger.Info("restored previous configuration after failed write")
			}
		}
		return &Outcome{Kind: KindWriteError, UnknownIDs: unknown, Dropped: dropped, Err: err}
	}

	loaded := make([]string, 0, len(cfg.MCPServers))
	for id := range cfg.MCPServers {
		loaded = append(loaded, id)
	}
	sort.Strings(loaded)

	l.logger.Info("loaded recommended servers", "count", len(loaded))
	return &Outcome{
		Kind:       KindSuccess,
		LoadedIDs:  loaded,
		Reasons:    reasons,
		UnknownIDs: unknown,
		Dropped:    dropped,
	}
}
