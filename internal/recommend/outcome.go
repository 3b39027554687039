package recommend

// Kind classifies the terminal state of a recommendation-load attempt.
type Kind int

const (
	// KindSuccess means at least one server was written.
	KindSuccess Kind = iota

	// KindInvalidFormat means the input was not a JSON array: a user
	// input error, nothing was written.
	KindInvalidFormat

	// KindEmpty means the input was a valid empty list. Informational,
	// not an error; the existing configuration is untouched.
	KindEmpty

	// KindNoValidServers means every record was dropped or unknown.
	// Nothing is written over the existing configuration.
	KindNoValidServers

	// KindCatalogError means the catalog could not be loaded. This is an
	// environment error, distinct from bad user input.
	KindCatalogError

	// KindWriteError means persisting the new document failed after
	// validation succeeded. A rollback was attempted.
	KindWriteError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalidFormat:
		return "invalid-format"
	case KindEmpty:
		return "empty"
	case KindNoValidServers:
		return "no-valid-servers"
	case KindCatalogError:
		return "catalog-error"
	case KindWriteError:
		return "write-error"
	default:
		return "unknown"
	}
}

// Outcome reports everything the user-facing layer needs to notify the
// user about one load attempt.
type Outcome struct {
	Kind Kind

	// LoadedIDs holds the server IDs written, sorted. Empty unless
	// Kind is KindSuccess.
	LoadedIDs []string

	// Reasons maps each loaded server ID to its recommendation reason,
	// echoed back to the user for review.
	Reasons map[string]string

	// UnknownIDs holds well-formed serverIds that were not in the
	// catalog, in input order.
	UnknownIDs []string

	// Dropped counts structurally malformed records discarded before
	// catalog lookup.
	Dropped int

	// Err carries the underlying cause for the error kinds.
	Err error
}

// Failed reports whether the attempt ended in an error state.
// Empty input is informational, not a failure.
func (o *Outcome) Failed() bool {
	switch o.Kind {
	case KindInvalidFormat, KindNoValidServers, KindCatalogError, KindWriteError:
		return true
	default:
		return false
	}
}
