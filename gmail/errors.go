package gmail

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ProviderError wraps a failed Gmail API call with the operation that failed
// and the HTTP status, when the transport reported one. The orchestrator
// treats "get" failures as recoverable and everything else as fatal.
type ProviderError struct {
	Op        string // "list", "get" or "profile"
	MessageID string // set for per-message operations
	Status    int    // HTTP status, 0 when unknown
	Err       error
}

func (e *ProviderError) Error() string {
	switch {
	case e.MessageID != "" && e.Status != 0:
		return fmt.Sprintf("gmail %s %s: status %d: %v", e.Op, e.MessageID, e.Status, e.Err)
	case e.MessageID != "":
		return fmt.Sprintf("gmail %s %s: %v", e.Op, e.MessageID, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("gmail %s: status %d: %v", e.Op, e.Status, e.Err)
	default:
		return fmt.Sprintf("gmail %s: %v", e.Op, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

func statusOf(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
