package normalize

import (
	"fmt"

	"github.com/comalice/microstepc/internal/core"
)

// ErrorSource tags the static origin of a ConversionError. Unlike a free-form
// string this is a closed set, matching the `ConversionErrorSource` the
// original thot sources tag their two error kinds with.
type ErrorSource string

const (
	SourceDuplicateID    ErrorSource = "normalize.duplicate_id"
	SourceMissingTarget  ErrorSource = "normalize.missing_target"
)

// ConversionError is one of the two fatal, accumulated errors the normalizer
// can report: a duplicate textual state id, or a transition target that does
// not resolve. Normalization never returns a partial graph alongside errors.
type ConversionError struct {
	Message string        `json:"message"`
	Fatal   bool          `json:"fatal"`
	Source  ErrorSource   `json:"source"`
	Loc     core.Location `json:"loc"`
}

func (e ConversionError) Error() string {
	return e.Message
}

func duplicateIDError(id string, loc core.Location) ConversionError {
	return ConversionError{
		Message: fmt.Sprintf("Duplicate target: %q", id),
		Fatal:   true,
		Source:  SourceDuplicateID,
		Loc:     loc,
	}
}

func missingTargetError(id string, loc core.Location) ConversionError {
	return ConversionError{
		Message: fmt.Sprintf("Missing target: %q", id),
		Fatal:   true,
		Source:  SourceMissingTarget,
		Loc:     loc,
	}
}
