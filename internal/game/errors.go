package game

import (
	"errors"
	"fmt"
)

// ActionError is a user action rejected by validation. State is unchanged when one is returned.
type ActionError struct {
	Action string
	Reason string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Reason)
}

func reject(action, format string, args ...any) error {
	return &ActionError{Action: action, Reason: fmt.Sprintf(format, args...)}
}

// IsRejected reports whether err is an ActionError.
func IsRejected(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae)
}
