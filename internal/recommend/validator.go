package recommend

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
)

// Recommendation is one externally produced suggestion to activate a
// catalog server, with a human-readable justification.
type Recommendation struct {
	ServerID string `json:"serverId"`
	Reason   string `json:"reason"`
}

// rawRecord decodes one untrusted array element. Pointer fields let a
// missing key be told apart from an empty value, and a non-string value
// fails the element's decode instead of the whole array's.
type rawRecord struct {
	ServerID *string `json:"serverId"`
	Reason   *string `json:"reason"`
}

// Parse decodes untrusted recommendation input.
//
// Input that is not a JSON array at the top level returns
// [errors.ErrInvalidRecommendation]. Within the array, each record is
// inspected individually: elements that are not objects, are missing
// serverId or reason, or carry a non-string or blank serverId are dropped
// and logged. Dropped reports how many records were discarded this way.
func Parse(data []byte, logger *slog.Logger) (recs []Recommendation, dropped int, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, 0, errors.Wrap(errors.ErrInvalidRecommendation, "input is not a JSON array")
	}

	for i, element := range elements {
		var record rawRecord
		if err := json.Unmarshal(element, &record); err != nil {
			logger.Warn("dropping malformed recommendation record", "index", i, "error", err)
			dropped++
			continue
		}
		if record.ServerID == nil || record.Reason == nil {
			logger.Warn("dropping recommendation record with missing fields", "index", i)
			dropped++
			continue
		}
		id := strings.TrimSpace(*record.ServerID)
		if id == "" {
			logger.Warn("dropping recommendation record with blank serverId", "index", i)
			dropped++
			continue
		}
		recs = append(recs, Recommendation{ServerID: id, Reason: *record.Reason})
	}

	return recs, dropped, nil
}

// FilterKnown splits structurally valid records by catalog membership.
// Unknown IDs are aggregated into a single warning, not one per ID.
// Duplicate IDs keep their first occurrence.
func FilterKnown(recs []Recommendation, doc *catalog.Document, logger *slog.Logger) (valid []Recommendation, unknown []string) {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if seen[rec.ServerID] {
			continue
		}
		seen[rec.ServerID] = true

		if _, ok := doc.Servers[rec.ServerID]; !ok {
			unknown = append(unknown, rec.ServerID)
			continue
		}
		valid = append(valid, rec)
	}

	if len(unknown) > 0 {
		logger.Warn("recommendations reference servers unknown to the catalog",
			"servers", strings.Join(unknown, ", "))
	}
	return valid, unknown
}
