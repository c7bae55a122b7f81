package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/keybind"
	"github.com/five82/livia/internal/prefs"
	"github.com/five82/livia/internal/shortcut"
	"github.com/five82/livia/internal/status"
)

// PatternInput is the input name of the built-in test pattern device.
const PatternInput = "pattern:"

// commands maps each action to what the shell does when it is triggered.
func (m *Model) commands() map[shortcut.Action]func() {
	return map[shortcut.Action]func(){
		shortcut.OpenFile:            m.openPrompt,
		shortcut.OpenDevice:          m.openDevice,
		shortcut.TogglePlay:          m.togglePlay,
		shortcut.ToggleFullscreen:    m.toggleFullscreen,
		shortcut.ToggleResizable:     m.toggleResizable,
		shortcut.ConfigureShortcuts:  m.toggleShortcuts,
		shortcut.ConfigureDetector:   func() { m.cycleConfiguration(status.KindLive) },
		shortcut.ToggleDetection:     m.toggleDetection,
		shortcut.ConfigureClassifier: func() { m.cycleConfiguration(status.KindStatic) },
		shortcut.Classify:            m.classify,
	}
}

// bindCommand registers the command of a with the key manager. Bindings
// dropped and re-added in the shortcut status lose their listeners, so this
// also runs on every ShortcutAdded.
func (m *Model) bindCommand(a shortcut.Action) {
	fn, ok := m.commands()[a]
	if !ok || m.manager == nil {
		return
	}
	if old, ok := m.triggers[a]; ok {
		old.Unsubscribe()
	}
	sub, err := m.manager.AddTriggerListener(a, keybind.TriggerFunc(func(keybind.TriggerEvent) { fn() }))
	if err != nil {
		m.logger.Debug("action not bound", "action", a.String(), "error", err)
		delete(m.triggers, a)
		return
	}
	m.triggers[a] = sub
}

func (m *Model) bindCommands() {
	for _, a := range shortcut.Actions() {
		m.bindCommand(a)
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.status.Display.StatusMessage.Set(fmt.Sprintf(format, args...))
}

func (m *Model) openPrompt() {
	m.prompting = true
	m.prompt.SetValue(m.status.FrameProcessing.Input.Get())
	m.prompt.CursorEnd()
	m.pending = append(m.pending, m.prompt.Focus())
}

func (m *Model) openInput(input string) {
	m.status.FrameProcessing.Input.Set(input)
	m.status.FrameProcessing.Playing.Set(true)
	m.setStatus("Opened %s", input)
	if m.prefsPath != "" {
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.LastInput = input }); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
	}
}

func (m *Model) openDevice() {
	m.openInput(PatternInput)
}

func (m *Model) togglePlay() {
	playing := m.status.FrameProcessing.Playing
	playing.Set(!playing.Get())
	if playing.Get() {
		m.setStatus("Playing")
	} else {
		m.setStatus("Paused")
	}
}

func (m *Model) toggleFullscreen() {
	fs := m.status.Display.Fullscreen
	fs.Set(!fs.Get())
}

func (m *Model) toggleResizable() {
	r := m.status.Display.Resizable
	r.Set(!r.Get())
	if r.Get() {
		m.status.Display.WindowSize.Set(status.Size{Width: m.width, Height: m.height})
		m.setStatus("Window follows terminal size")
	} else {
		m.setStatus("Window size pinned at %dx%d", m.status.Display.WindowSize.Get().Width, m.status.Display.WindowSize.Get().Height)
	}
}

func (m *Model) toggleShortcuts() {
	show := !m.showShortcuts
	m.closeOverlays()
	m.showShortcuts = show
}

func (m *Model) toggleDetection() {
	fp := m.status.FrameProcessing
	if fp.IsActive() {
		fp.Deactivate()
		m.setStatus("Detection off")
		return
	}
	fp.Activate()
	if c, ok := fp.ActiveConfiguration(status.KindLive); ok {
		m.setStatus("Detection on: %s", c.Name)
	} else {
		m.setStatus("Detection on, no configuration selected")
	}
}

// cycleConfiguration selects the configuration after the active one,
// wrapping to the first.
func (m *Model) cycleConfiguration(kind status.Kind) {
	fp := m.status.FrameProcessing
	list := fp.Configurations(kind)
	if len(list) == 0 {
		m.setStatus("No %s configurations", kind)
		return
	}
	next := 0
	if idx := fp.ActiveIndex(kind); idx >= 0 {
		next = (idx + 1) % len(list)
	}
	if err := fp.SetActiveIndex(kind, next); err != nil {
		m.setStatus("Cannot select %q: %v", list[next].Name, err)
		return
	}
	m.setStatus("%s configuration: %s", kind, list[next].Name)
}

func (m *Model) classify() {
	if m.frames == nil {
		m.setStatus("No frame to classify")
		return
	}
	frame := m.frames()
	if frame == nil {
		m.setStatus("No frame to classify")
		return
	}
	fp := m.status.FrameProcessing
	c, ok := fp.ActiveConfiguration(status.KindStatic)
	if !ok {
		m.setStatus("No classifier configuration selected")
		return
	}
	start := time.Now()
	if _, err := fp.Analyze(status.KindStatic, frame); err != nil {
		m.setStatus("Classification with %s failed: %v", c.Name, err)
		return
	}
	m.setStatus("Classified with %s in %s", c.Name, time.Since(start).Round(time.Millisecond))
}

// tunable returns the first visible numeric property of the active detector.
func (m *Model) tunable() (analyzer.Property, bool) {
	fp := m.status.FrameProcessing
	c, ok := fp.ActiveConfiguration(status.KindLive)
	if !ok {
		return analyzer.Property{}, false
	}
	meta, err := fp.Registry().Lookup(c.Analyzer)
	if err != nil {
		return analyzer.Property{}, false
	}
	for _, p := range meta.Properties {
		if !p.Hidden && (p.Type == analyzer.TypeInt || p.Type == analyzer.TypeFloat) {
			return p, true
		}
	}
	return analyzer.Property{}, false
}

// tune moves the tunable detector property one step in direction, clamped to
// its hinted range. The value is kept as an override of the configuration.
func (m *Model) tune(direction float64) {
	p, ok := m.tunable()
	if !ok {
		m.setStatus("Nothing to tune")
		return
	}
	fp := m.status.FrameProcessing
	current, _ := fp.Property(status.KindLive, p.ID)
	step := p.Hints.Step
	if step <= 0 {
		step = 1
	}

	var next any
	switch v := current.(type) {
	case int:
		n := float64(v) + direction*math.Max(1, math.Round(step))
		next = int(clampHint(p.Hints, n))
	case float64:
		n := v + direction*step
		// Round to the step to keep repeated presses from drifting.
		n = math.Round(n/step) * step
		next = clampHint(p.Hints, n)
	default:
		m.setStatus("Cannot tune %s", p.Name)
		return
	}
	if err := fp.SetProperty(status.KindLive, p.ID, next); err != nil {
		m.setStatus("Cannot tune %s: %v", p.Name, err)
		return
	}
	stored, _ := fp.Property(status.KindLive, p.ID)
	m.setStatus("%s: %v", p.Name, stored)
}

func clampHint(h analyzer.Hints, v float64) float64 {
	if h.Max <= h.Min {
		return v
	}
	return math.Min(h.Max, math.Max(h.Min, v))
}
