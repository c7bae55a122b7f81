package storage

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/analyzer/builtin"
	"github.com/five82/livia/internal/pipeline"
	"github.com/five82/livia/internal/shortcut"
	"github.com/five82/livia/internal/status"
)

type fixture struct {
	livia    *status.Livia
	pipeline *pipeline.Processor
	store    *Store
	logs     *bytes.Buffer
	path     string
}

func newFixture(t *testing.T, name string) *fixture {
	t.Helper()
	registry, err := analyzer.NewRegistry(builtin.Types()...)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := pipeline.New()
	l := status.New(p, registry, status.WithLogger(logger))
	path := filepath.Join(t.TempDir(), name)
	return &fixture{
		livia:    l,
		pipeline: p,
		store:    New(l, registry, analyzer.NewConverters(), WithTarget(path), WithLogger(logger)),
		logs:     &logs,
		path:     path,
	}
}

// reload builds a fresh fixture reading the document written by f.
func (f *fixture) reload(t *testing.T) *fixture {
	t.Helper()
	g := newFixture(t, filepath.Base(f.path))
	g.path = f.path
	g.store.SetTarget(f.path)
	if err := g.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return g
}

func (f *fixture) write(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(f.path, []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
}

func liveConfigs() []status.AnalyzerConfiguration {
	return []status.AnalyzerConfiguration{
		status.NewAnalyzerConfiguration("soft", builtin.GrayscaleID, status.Override{Property: "gain", Value: 1.5}),
		status.NewAnalyzerConfiguration("strict", builtin.ThresholdID,
			status.Override{Property: "level", Value: 200},
			status.Override{Property: "foreground", Value: analyzer.Color{R: 255}},
			status.Override{Property: "labels", Value: []string{"off", "on"}},
		),
	}
}

func TestStore_MissingTarget(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.store.SetTarget("")
	if err := f.store.Load(); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("Load error = %v, want ErrMissingTarget", err)
	}
	if err := f.store.Save(); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("Save error = %v, want ErrMissingTarget", err)
	}
}

func TestStore_MissingFileKeepsDefaults(t *testing.T) {
	f := newFixture(t, "config.toml")
	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !f.livia.Shortcuts.IsDefault(shortcut.OpenFile) {
		t.Fatalf("OpenFile changed by loading a missing file")
	}
	if !strings.Contains(f.logs.String(), "configuration file not found") {
		t.Fatalf("missing file not logged: %q", f.logs.String())
	}
}

func TestStore_ShortcutRoundTrip(t *testing.T) {
	f := newFixture(t, "config.toml")
	if err := f.livia.Shortcuts.SetKeys(shortcut.OpenFile, "Ctrl+Shift+O"); err != nil {
		t.Fatalf("SetKeys returned error: %v", err)
	}
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	doc := f.store.Document()
	if len(doc.Shortcuts) != 1 || !slices.Equal(doc.Shortcuts["OPEN_FILE"], []string{"Ctrl+Shift+O"}) {
		t.Fatalf("shortcuts section = %v, want only OPEN_FILE", doc.Shortcuts)
	}

	g := f.reload(t)
	if got := g.livia.Shortcuts.Keys(shortcut.OpenFile); !slices.Equal(got, []string{"Ctrl+Shift+O"}) {
		t.Fatalf("Keys(OpenFile) = %v, want [Ctrl+Shift+O]", got)
	}
	for _, a := range shortcut.Actions() {
		if a != shortcut.OpenFile && !g.livia.Shortcuts.IsDefault(a) {
			t.Fatalf("%s = %v after reload, want default", a, g.livia.Shortcuts.Keys(a))
		}
	}
}

func TestStore_EmptyBindingRoundTrip(t *testing.T) {
	f := newFixture(t, "config.toml")
	if err := f.livia.Shortcuts.SetKeys(shortcut.Classify); err != nil {
		t.Fatalf("SetKeys returned error: %v", err)
	}
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	g := f.reload(t)
	if !g.livia.Shortcuts.Has(shortcut.Classify) || len(g.livia.Shortcuts.Keys(shortcut.Classify)) != 0 {
		t.Fatalf("Keys(Classify) = %v, want registered and empty", g.livia.Shortcuts.Keys(shortcut.Classify))
	}
}

func TestStore_AnalyzerRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, name)
			fp := f.livia.FrameProcessing
			if err := fp.SetConfigurationsAt(status.KindLive, liveConfigs(), 1); err != nil {
				t.Fatalf("SetConfigurationsAt returned error: %v", err)
			}
			if err := fp.SetConfigurationsAt(status.KindStatic, liveConfigs()[:1], status.NoConfiguration); err != nil {
				t.Fatalf("SetConfigurationsAt returned error: %v", err)
			}
			if err := f.store.Save(); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}

			g := f.reload(t)
			gfp := g.livia.FrameProcessing
			if got := gfp.Configurations(status.KindLive); !equalLists(got, liveConfigs()) {
				t.Fatalf("live configurations = %+v, want %+v", got, liveConfigs())
			}
			if gfp.ActiveIndex(status.KindLive) != 1 {
				t.Fatalf("live ActiveIndex = %d, want 1", gfp.ActiveIndex(status.KindLive))
			}
			if gfp.ActiveIndex(status.KindStatic) != status.NoConfiguration {
				t.Fatalf("static ActiveIndex = %d, want none", gfp.ActiveIndex(status.KindStatic))
			}
			wired := g.pipeline.Analyzer()
			if wired.TypeID() != builtin.ThresholdID {
				t.Fatalf("pipeline analyzer = %q, want threshold", wired.TypeID())
			}
			if v, _ := wired.Get("level"); v != 200 {
				t.Fatalf("level = %v, want 200", v)
			}
		})
	}
}

func equalLists(a, b []status.AnalyzerConfiguration) bool {
	return slices.EqualFunc(a, b, status.AnalyzerConfiguration.Equal)
}

func TestStore_SaveIsByteIdentical(t *testing.T) {
	f := newFixture(t, "config.toml")
	if err := f.livia.FrameProcessing.SetConfigurationsAt(status.KindLive, liveConfigs(), 0); err != nil {
		t.Fatalf("SetConfigurationsAt returned error: %v", err)
	}
	_ = f.livia.Shortcuts.SetKeys(shortcut.TogglePlay, "Space", "P")
	_ = f.livia.Shortcuts.SetKeys(shortcut.OpenDevice, "Ctrl+Alt+D")

	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	first, _ := os.ReadFile(f.path)
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, _ := os.ReadFile(f.path)
	if !bytes.Equal(first, second) {
		t.Fatalf("documents differ:\n%s\n---\n%s", first, second)
	}

	// A reloaded status writes the same document again.
	g := f.reload(t)
	if err := g.store.SaveTo(f.path + ".again.toml"); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}
	third, _ := os.ReadFile(f.path + ".again.toml")
	if !bytes.Equal(first, third) {
		t.Fatalf("reloaded document differs:\n%s\n---\n%s", first, third)
	}
}

func TestStore_SparseAndHidden(t *testing.T) {
	f := newFixture(t, "config.toml")
	list := []status.AnalyzerConfiguration{status.NewAnalyzerConfiguration("plain", builtin.GrayscaleID,
		status.Override{Property: "gain", Value: 1.0},
		status.Override{Property: "revision", Value: 7},
		status.Override{Property: "invert", Value: true},
	)}
	if err := f.livia.FrameProcessing.SetConfigurationsAt(status.KindLive, list, 0); err != nil {
		t.Fatalf("SetConfigurationsAt returned error: %v", err)
	}

	entry := f.store.Document().Analyzers.Live.Configurations[0]
	if len(entry.Properties) != 1 || entry.Properties[0].ID != "invert" || entry.Properties[0].Value != "true" {
		t.Fatalf("properties = %+v, want only invert=true", entry.Properties)
	}
}

func TestStore_MalformedDocument(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.write(t, "this is [not toml")

	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	problems := f.store.Problems()
	var perr *ParseError
	if len(problems) != 1 || !errors.As(problems[0], &perr) {
		t.Fatalf("problems = %v, want one ParseError", problems)
	}
	if !f.livia.Shortcuts.IsDefault(shortcut.OpenFile) {
		t.Fatalf("status changed by malformed document")
	}
}

func TestStore_PartialDocument(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.write(t, `
[shortcuts]
OPEN_FILE = ["Ctrl+Shift+O"]
NOT_AN_ACTION = ["X"]
CLASSIFY = 5

[analyzers.live]
active = 0

[[analyzers.live.configurations]]
name = "strict"
analyzer = "threshold"

[[analyzers.live.configurations.properties]]
id = "level"
value = "abc"

[[analyzers.live.configurations.properties]]
id = "foreground"
value = "255,0,0"

[[analyzers.live.configurations.properties]]
id = "bogus"
value = "1"

[[analyzers.live.configurations.properties]]
id = "background"
value = 7

[[analyzers.live.configurations]]
name = "untyped"
`)

	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := f.livia.Shortcuts.Keys(shortcut.OpenFile); !slices.Equal(got, []string{"Ctrl+Shift+O"}) {
		t.Fatalf("Keys(OpenFile) = %v", got)
	}
	if !f.livia.Shortcuts.IsDefault(shortcut.Classify) {
		t.Fatalf("malformed CLASSIFY entry was applied")
	}

	list := f.livia.FrameProcessing.Configurations(status.KindLive)
	if len(list) != 1 || list[0].Name != "strict" {
		t.Fatalf("live configurations = %+v, want only strict", list)
	}
	if v, _ := list[0].Override("foreground"); v != (analyzer.Color{R: 255}) {
		t.Fatalf("foreground = %v, want 255,0,0", v)
	}
	if _, ok := list[0].Override("level"); ok {
		t.Fatalf("invalid level override was kept")
	}

	wired := f.pipeline.Analyzer()
	if v, _ := wired.Get("level"); v != 128 {
		t.Fatalf("level = %v, want default 128", v)
	}

	// CLASSIFY, level, background and the untyped configuration.
	if got := len(f.store.Problems()); got != 4 {
		t.Fatalf("problems = %d (%v), want 4", got, f.store.Problems())
	}
	if !strings.Contains(f.logs.String(), "NOT_AN_ACTION") {
		t.Fatalf("unknown action not logged")
	}
}

func TestStore_UnknownAnalyzerTypeSurvives(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.write(t, `
[analyzers.static]
active = 1

[[analyzers.static.configurations]]
name = "gray"
analyzer = "grayscale"

[[analyzers.static.configurations]]
name = "later"
analyzer = "sharpen"

[[analyzers.static.configurations.properties]]
id = "amount"
value = "3"
`)
	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	fp := f.livia.FrameProcessing
	if got := len(fp.Configurations(status.KindStatic)); got != 2 {
		t.Fatalf("static configurations = %d, want 2", got)
	}
	var resErr *status.AnalyzerResolutionError
	problems := f.store.Problems()
	if len(problems) != 1 || !errors.As(problems[0], &resErr) {
		t.Fatalf("problems = %v, want one AnalyzerResolutionError", problems)
	}
	if fp.ActiveIndex(status.KindStatic) != status.NoConfiguration {
		t.Fatalf("ActiveIndex = %d, want none", fp.ActiveIndex(status.KindStatic))
	}

	entry := f.store.Document().Analyzers.Static.Configurations[1]
	if entry.Analyzer != "sharpen" || len(entry.Properties) != 1 || entry.Properties[0].Value != "3" {
		t.Fatalf("unknown configuration written as %+v", entry)
	}
}

func TestStore_ActiveFollowsSkippedEntries(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.write(t, `
[analyzers.live]
active = 1

[[analyzers.live.configurations]]
name = "broken"

[[analyzers.live.configurations]]
name = "wanted"
analyzer = "grayscale"

[[analyzers.live.configurations]]
name = "other"
analyzer = "threshold"
`)
	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	fp := f.livia.FrameProcessing
	cfg, ok := fp.ActiveConfiguration(status.KindLive)
	if !ok || cfg.Name != "wanted" {
		t.Fatalf("active configuration = %+v (%v), want wanted", cfg, ok)
	}
	if got := f.pipeline.Analyzer().TypeID(); got != builtin.GrayscaleID {
		t.Fatalf("wired analyzer = %q, want grayscale", got)
	}
	if got := len(f.store.Problems()); got != 1 {
		t.Fatalf("problems = %d (%v), want the broken entry only", got, f.store.Problems())
	}
}

func TestStore_SkippedActiveEntryDeactivates(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.write(t, `
[analyzers.live]
active = 0

[[analyzers.live.configurations]]
name = "broken"

[[analyzers.live.configurations]]
name = "other"
analyzer = "threshold"
`)
	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	fp := f.livia.FrameProcessing
	if fp.ActiveIndex(status.KindLive) != status.NoConfiguration {
		t.Fatalf("ActiveIndex = %d, want none", fp.ActiveIndex(status.KindLive))
	}
	if got := len(fp.Configurations(status.KindLive)); got != 1 {
		t.Fatalf("live configurations = %d, want 1", got)
	}
	problems := f.store.Problems()
	if len(problems) != 2 {
		t.Fatalf("problems = %v, want the broken entry and the active index", problems)
	}
	var parseErr *ParseError
	if !errors.As(problems[1], &parseErr) || parseErr.Section != "analyzers.live.active" {
		t.Fatalf("problems[1] = %v, want a ParseError for analyzers.live.active", problems[1])
	}
}

func TestStore_FileProperty(t *testing.T) {
	f := newFixture(t, "config.toml")
	maskPath := filepath.Join(t.TempDir(), "mask.png")
	if err := os.WriteFile(maskPath, []byte("mask"), 0o644); err != nil {
		t.Fatalf("write mask: %v", err)
	}
	mask, err := os.Open(maskPath)
	if err != nil {
		t.Fatalf("open mask: %v", err)
	}
	defer mask.Close()

	list := []status.AnalyzerConfiguration{status.NewAnalyzerConfiguration("masked", builtin.ThresholdID,
		status.Override{Property: "mask", Value: mask})}
	if err := f.livia.FrameProcessing.SetConfigurationsAt(status.KindLive, list, 0); err != nil {
		t.Fatalf("SetConfigurationsAt returned error: %v", err)
	}
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	g := f.reload(t)
	v, _ := g.livia.FrameProcessing.Configurations(status.KindLive)[0].Override("mask")
	reopened, ok := v.(analyzer.File)
	if !ok {
		t.Fatalf("mask = %T, want analyzer.File", v)
	}
	if reopened.Path != maskPath {
		t.Fatalf("mask path = %q, want %q", reopened.Path, maskPath)
	}
}

func TestStore_AtomicSaveLeavesNoTempFiles(t *testing.T) {
	f := newFixture(t, filepath.Join("nested", "dir", "config.toml"))
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := f.store.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(f.path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.toml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want only config.toml", names)
	}
}

func TestStore_AutoSave(t *testing.T) {
	f := newFixture(t, "config.toml")
	f.store.EnableAutoSave()

	if err := f.livia.Shortcuts.SetKeys(shortcut.OpenFile, "Ctrl+Shift+O"); err != nil {
		t.Fatalf("SetKeys returned error: %v", err)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatalf("auto-save did not write the document: %v", err)
	}
	if !strings.Contains(string(data), "Ctrl+Shift+O") {
		t.Fatalf("document = %q, want the new binding", data)
	}

	if err := f.livia.FrameProcessing.SetConfigurationsAt(status.KindLive, liveConfigs(), 0); err != nil {
		t.Fatalf("SetConfigurationsAt returned error: %v", err)
	}
	data, _ = os.ReadFile(f.path)
	if !strings.Contains(string(data), "strict") {
		t.Fatalf("document = %q, want the live configurations", data)
	}

	f.store.DisableAutoSave()
	if err := os.Remove(f.path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_ = f.livia.Shortcuts.SetKeys(shortcut.OpenFile, "Ctrl+O")
	if _, err := os.Stat(f.path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("document written after DisableAutoSave")
	}
}

func TestStore_LoadDoesNotAutoSave(t *testing.T) {
	f := newFixture(t, "config.toml")
	hand := "[shortcuts]\nOPEN_FILE = [ \"Ctrl+Shift+O\" ]   # edited by hand\n"
	f.write(t, hand)
	f.store.EnableAutoSave()

	if err := f.store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	data, _ := os.ReadFile(f.path)
	if string(data) != hand {
		t.Fatalf("document rewritten during load:\n%s", data)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.toml", TOML},
		{"config.YAML", YAML},
		{"config.yml", YAML},
		{"config", TOML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFor(tt.path); got != tt.want {
				t.Fatalf("FormatFor(%q) = %s, want %s", tt.path, got.Name(), tt.want.Name())
			}
		})
	}
}
