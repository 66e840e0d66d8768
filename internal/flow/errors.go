package flow

import "errors"

// ErrInvalidTransition is returned when a stage is advanced before it is unlocked.
// The presentation layer is expected to withhold the control until then.
var ErrInvalidTransition = errors.New("invalid stage transition")
