package shortcut

import (
	"fmt"
	"strings"
)

// UnknownActionError reports an operation on actions that are not registered.
type UnknownActionError struct {
	Actions []Action
}

func (e *UnknownActionError) Error() string {
	names := make([]string, 0, len(e.Actions))
	for _, a := range e.Actions {
		names = append(names, a.String())
	}
	return fmt.Sprintf("unknown shortcut action: %s", strings.Join(names, ", "))
}

// ActionAlreadyRegisteredError reports a second registration of an action.
type ActionAlreadyRegisteredError struct {
	Action Action
}

func (e *ActionAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("shortcut action already registered: %s", e.Action)
}
