// Package shortcut defines the commands a user can bind to key combinations.
//
// Actions are fixed at compile time. Each one carries a default key
// combination, a display label, a group and a sort order used to present
// bindings in a stable way.
package shortcut

import (
	"fmt"
	"slices"
	"strings"
)

// Action identifies a user command that can be bound to zero or more key
// combinations.
type Action int

const (
	OpenFile            Action = 1
	OpenDevice          Action = 2
	TogglePlay          Action = 1001
	ToggleFullscreen    Action = 2001
	ToggleResizable     Action = 2002
	ConfigureShortcuts  Action = 3001
	ConfigureDetector   Action = 10001
	ToggleDetection     Action = 10002
	ConfigureClassifier Action = 20001
	Classify            Action = 20002
)

// Group names used by the default action table.
const (
	GroupFile           = "File"
	GroupVideo          = "Video"
	GroupDisplay        = "Display"
	GroupSettings       = "Settings"
	GroupDetection      = "Detection"
	GroupClassification = "Classification"
)

type actionInfo struct {
	name  string
	label string
	group string
	keys  string
}

// Declaration order of this table is the sort order of the actions.
var actionTable = []struct {
	action Action
	info   actionInfo
}{
	{OpenFile, actionInfo{"OPEN_FILE", "Open file", GroupFile, "Ctrl+O"}},
	{OpenDevice, actionInfo{"OPEN_DEVICE", "Open device", GroupFile, "Ctrl+D"}},
	{TogglePlay, actionInfo{"TOGGLE_PLAY", "Play/pause", GroupVideo, "P"}},
	{ToggleFullscreen, actionInfo{"TOGGLE_FULLSCREEN", "Toggle fullscreen", GroupDisplay, "F"}},
	{ToggleResizable, actionInfo{"TOGGLE_RESIZABLE", "Toggle resizable", GroupDisplay, "R"}},
	{ConfigureShortcuts, actionInfo{"CONFIGURE_SHORTCUTS", "Configure shortcuts", GroupSettings, "Alt+S"}},
	{ConfigureDetector, actionInfo{"CONFIGURE_DETECTOR", "Next detector configuration", GroupDetection, "Alt+D"}},
	{ToggleDetection, actionInfo{"TOGGLE_DETECTION", "Toggle detection", GroupDetection, "D"}},
	{ConfigureClassifier, actionInfo{"CONFIGURE_CLASSIFIER", "Next classifier configuration", GroupClassification, "Alt+C"}},
	{Classify, actionInfo{"CLASSIFY", "Classify current frame", GroupClassification, "C"}},
}

var (
	infoByAction = make(map[Action]actionInfo, len(actionTable))
	orderOf      = make(map[Action]int, len(actionTable))
)

func init() {
	for i, entry := range actionTable {
		infoByAction[entry.action] = entry.info
		orderOf[entry.action] = i
	}
}

// Actions returns every declared action in sort order.
func Actions() []Action {
	out := make([]Action, 0, len(actionTable))
	for _, entry := range actionTable {
		out = append(out, entry.action)
	}
	return out
}

// Valid reports whether a is a declared action.
func (a Action) Valid() bool {
	_, ok := infoByAction[a]
	return ok
}

// String returns the persisted name of the action, e.g. "OPEN_FILE".
func (a Action) String() string {
	if info, ok := infoByAction[a]; ok {
		return info.name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Label returns the human readable description.
func (a Action) Label() string {
	return infoByAction[a].label
}

// Group returns the group the action is displayed under.
func (a Action) Group() string {
	return infoByAction[a].group
}

// Order returns the sort position of the action. Unknown actions sort last.
func (a Action) Order() int {
	if i, ok := orderOf[a]; ok {
		return i
	}
	return len(actionTable) + int(a)
}

// DefaultKeys returns the default key combinations of the action.
func (a Action) DefaultKeys() []string {
	info, ok := infoByAction[a]
	if !ok || info.keys == "" {
		return nil
	}
	return []string{info.keys}
}

// ParseAction resolves a persisted action name. Matching ignores case.
func ParseAction(name string) (Action, bool) {
	trimmed := strings.TrimSpace(name)
	for _, entry := range actionTable {
		if strings.EqualFold(entry.info.name, trimmed) {
			return entry.action, true
		}
	}
	return 0, false
}

// Groups returns the group names of the given actions ordered by the first
// action of each group.
func Groups(actions []Action) []string {
	sorted := slices.Clone(actions)
	SortActions(sorted)

	var groups []string
	for _, a := range sorted {
		if !slices.Contains(groups, a.Group()) {
			groups = append(groups, a.Group())
		}
	}
	return groups
}

// SortActions sorts actions in place by declared order.
func SortActions(actions []Action) {
	slices.SortFunc(actions, func(x, y Action) int {
		return x.Order() - y.Order()
	})
}
