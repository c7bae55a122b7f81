package status

// Size is a window size in pixels or cells.
type Size struct {
	Width  int
	Height int
}

// DefaultWindowSize is the window size NewDisplayStatus starts with.
var DefaultWindowSize = Size{Width: 800, Height: 600}

// DisplayStatus holds window level UI state.
type DisplayStatus struct {
	WindowSize    *Property[Size]
	Fullscreen    *Property[bool]
	Resizable     *Property[bool]
	StatusMessage *Property[string]
}

// DisplayOption customizes the initial display state.
type DisplayOption func(*DisplayStatus)

// WithWindowSize sets the initial window size.
func WithWindowSize(size Size) DisplayOption {
	return func(d *DisplayStatus) { d.WindowSize.value = size }
}

// WithStatusMessage sets the initial status message.
func WithStatusMessage(msg string) DisplayOption {
	return func(d *DisplayStatus) { d.StatusMessage.value = msg }
}

// WithFullscreen sets the initial fullscreen flag.
func WithFullscreen(on bool) DisplayOption {
	return func(d *DisplayStatus) { d.Fullscreen.value = on }
}

// NewDisplayStatus returns a display status at its defaults: 800x600,
// windowed, resizable, empty status message.
func NewDisplayStatus(opts ...DisplayOption) *DisplayStatus {
	d := &DisplayStatus{}
	d.WindowSize = NewProperty[Size](d, DefaultWindowSize)
	d.Fullscreen = NewProperty(d, false)
	d.Resizable = NewProperty(d, true)
	d.StatusMessage = NewProperty(d, "")
	for _, opt := range opts {
		opt(d)
	}
	return d
}
