package deepl

import (
	"errors"
	"fmt"
)

// ErrCredentialMissing is returned when no authentication key was supplied.
var ErrCredentialMissing = errors.New("DeepL API key not found; set DEEPL_API_KEY or enter it in the settings")

// TranslationError wraps any failure of a text batch. No partial results accompany it.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Document workflow phases reported by DocumentError.
const (
	PhaseUpload   = "upload"
	PhasePoll     = "status"
	PhaseDownload = "download"
)

// DocumentError reports a transport or protocol failure in one phase of a
// document translation.
type DocumentError struct {
	Phase string
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s failed: %v", e.Phase, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// DocumentJobError is the service reporting status "error" for a document job.
type DocumentJobError struct {
	DocumentID string
	Message    string
}

func (e *DocumentJobError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("document translation error: %s", msg)
}
