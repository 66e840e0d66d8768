package session

import (
	"errors"
	"fmt"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
)

// ErrorKind represents the category of a failed command
type ErrorKind int

const (
	// KindRejection indicates blank comment or message text. Nothing changed and the
	// draft is still there for correction.
	KindRejection ErrorKind = iota
	// KindInvalidTransition indicates a command issued before its stage was unlocked
	KindInvalidTransition
	// KindUnknownPost indicates a post id that is not in the catalog
	KindUnknownPost
	// KindUnknownCommand indicates a serialised command with an unrecognised type
	KindUnknownCommand
	// KindCompletion indicates the completion handler failed
	KindCompletion
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindRejection:
		return "Rejected"
	case KindInvalidTransition:
		return "Invalid Transition"
	case KindUnknownPost:
		return "Unknown Post"
	case KindUnknownCommand:
		return "Unknown Command"
	case KindCompletion:
		return "Completion Failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

var (
	// ErrUnknownCommand is wrapped when Apply receives an unrecognised command type
	ErrUnknownCommand = errors.New("unknown command")
	// ErrCompletion is wrapped when the completion handler returns an error
	ErrCompletion = errors.New("completion handler failed")
)

// CommandError describes why a session command did not apply.
// The session state is never modified when a CommandError is returned.
type CommandError struct {
	Kind    ErrorKind
	Command CommandType
	Stage   flow.Stage // stage at the time of the command
	Err     error
}

// Error implements the error interface
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s (stage %s): %v", e.Kind, e.Command, e.Stage, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsRejection reports whether err is a blank-text rejection, which callers may treat as a no-op.
func IsRejection(err error) bool {
	return errors.Is(err, catalog.ErrBlankText)
}

// IsInvalidTransition reports whether err comes from a command issued too early.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, flow.ErrInvalidTransition)
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrCompletion):
		return KindCompletion
	case errors.Is(err, catalog.ErrBlankText):
		return KindRejection
	case errors.Is(err, flow.ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, catalog.ErrPostNotFound):
		return KindUnknownPost
	case errors.Is(err, ErrUnknownCommand):
		return KindUnknownCommand
	default:
		return KindCompletion
	}
}
