package valuation

import "fmt"

// SchemaUnavailableError means the serving context could not be built from
// the stored artifacts. It is permanent for the life of the process:
// valuations stay disabled until training has been run and the service
// restarted.
type SchemaUnavailableError struct {
	Artifact string // empty when no load was ever attempted
	Err      error
}

func (e *SchemaUnavailableError) Error() string {
	if e.Artifact == "" {
		return fmt.Sprintf("schema unavailable: %v", e.Err)
	}
	return fmt.Sprintf("schema unavailable: %s: %v", e.Artifact, e.Err)
}

func (e *SchemaUnavailableError) Unwrap() error { return e.Err }
