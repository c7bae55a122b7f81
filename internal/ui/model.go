package ui

import (
	"context"
	"image"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/livia/internal/keybind"
	"github.com/five82/livia/internal/logtail"
	"github.com/five82/livia/internal/pipeline"
	"github.com/five82/livia/internal/prefs"
	"github.com/five82/livia/internal/shortcut"
	"github.com/five82/livia/internal/status"
)

const problemLines = 20

// Options configures the shell.
type Options struct {
	Context context.Context
	Status  *status.Livia
	Manager *keybind.Manager
	Router  *KeyRouter
	Queue   *Queue
	// Frames returns the most recent frame for on-demand classification.
	Frames    func() image.Image
	Logger    *slog.Logger
	LogPath   string
	ThemeName string
	PrefsPath string
	ShowHelp  bool
}

// Model is the root Bubble Tea model. Its methods run on the control
// thread, so it reads and writes status objects directly.
type Model struct {
	ctx       context.Context
	status    *status.Livia
	manager   *keybind.Manager
	router    *KeyRouter
	queue     *Queue
	frames    func() image.Image
	logger    *slog.Logger
	logPath   string
	prefsPath string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	showHelp      bool
	showShortcuts bool
	showProblems  bool
	problems      []string
	prompting     bool
	prompt        textinput.Model

	stats    pipeline.Stats
	triggers map[shortcut.Action]status.Subscription
	subs     status.Subscriptions
	pending  []tea.Cmd
}

// New creates the shell model and registers its commands with the key
// manager.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	router := opts.Router
	if router == nil {
		router = NewKeyRouter()
	}
	queue := opts.Queue
	if queue == nil {
		queue = NewQueue(0)
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prompt := textinput.New()
	prompt.Placeholder = "path/to/image.png"
	prompt.Prompt = "Open: "
	prompt.CharLimit = 4096

	m := &Model{
		ctx:       ctx,
		status:    opts.Status,
		manager:   opts.Manager,
		router:    router,
		queue:     queue,
		frames:    opts.Frames,
		logger:    logger,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(themeName),
		keys:      defaultKeyMap(),
		showHelp:  opts.ShowHelp,
		prompt:    prompt,
		triggers:  make(map[shortcut.Action]status.Subscription),
	}

	m.bindCommands()
	m.subs = append(m.subs, m.status.Shortcuts.AddListener(status.ShortcutListenerFuncs{
		Added: func(e status.ShortcutEvent) { m.bindCommand(e.Action) },
	}))
	return m
}

// Close releases the model's listeners.
func (m *Model) Close() {
	for _, sub := range m.triggers {
		sub.Unsubscribe()
	}
	clear(m.triggers)
	m.subs.Unsubscribe()
	m.subs = nil
}

// SetStats records the latest pipeline statistics. Call it through the
// queue from other goroutines.
func (m *Model) SetStats(s pipeline.Stats) {
	m.stats = s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.queue.Wait())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.status.Display.Resizable.Get() {
			m.status.Display.WindowSize.Set(status.Size{Width: msg.Width, Height: msg.Height})
		}
		return m, nil

	case taskMsg:
		if msg != nil {
			msg()
		}
		return m, tea.Batch(append(m.flush(), m.queue.Wait())...)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch {
	case m.showHelp:
		return m.renderHelp()
	case m.showShortcuts:
		return m.renderShortcuts()
	case m.showProblems:
		return m.renderProblems()
	}
	return m.renderMain()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if m.overlay() {
		if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Help) {
			m.closeOverlays()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		show := !m.showHelp
		m.closeOverlays()
		m.showHelp = show
		return m, nil
	case key.Matches(msg, m.keys.Problems):
		m.toggleProblems()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.TuneUp):
		m.tune(1)
		return m, nil
	case key.Matches(msg, m.keys.TuneDown):
		m.tune(-1)
		return m, nil
	}

	m.router.Dispatch(msg)
	return m, tea.Batch(m.flush()...)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.prompting = false
		m.prompt.Blur()
		if input := m.prompt.Value(); input != "" {
			m.openInput(input)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) overlay() bool {
	return m.showHelp || m.showShortcuts || m.showProblems
}

func (m *Model) closeOverlays() {
	m.showHelp = false
	m.showShortcuts = false
	m.showProblems = false
}

func (m *Model) toggleProblems() {
	if m.showProblems {
		m.showProblems = false
		return
	}
	m.closeOverlays()
	m.showProblems = true
	m.problems = nil
	if m.logPath == "" {
		return
	}
	problems, err := logtail.Problems(m.logPath, problemLines)
	if err != nil {
		m.setStatus("Cannot read log: %v", err)
		return
	}
	m.problems = problems
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	name := m.theme.Name
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

func (m *Model) flush() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// model's context is cancelled.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.queue.Close()
	m.Close()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
