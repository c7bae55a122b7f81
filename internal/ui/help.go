package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

// helpSections lists the fixed keys followed by every bound action,
// grouped the way the shortcut status orders them.
func (m *Model) helpSections() []helpSection {
	general := helpSection{title: "General"}
	for _, b := range m.keys.fixed() {
		general.items = append(general.items, helpItem{b.Help().Key, b.Help().Desc})
	}
	sections := []helpSection{general}

	sc := m.status.Shortcuts
	for _, group := range sc.Groups() {
		section := helpSection{title: group}
		for _, a := range sc.ActionsByGroup(group) {
			keys := strings.Join(sc.Keys(a), ", ")
			if keys == "" {
				keys = "unbound"
			}
			section.items = append(section.items, helpItem{keys, a.Label()})
		}
		sections = append(sections, section)
	}
	return sections
}

func (m *Model) renderHelp() string {
	sections := m.helpSections()
	return m.place(m.renderSections("Keyboard Shortcuts", sections[:1], sections[1:]))
}

// renderShortcuts shows the rebindable actions with a marker on customized
// bindings.
func (m *Model) renderShortcuts() string {
	styles := m.theme.Styles()
	sc := m.status.Shortcuts

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	for _, group := range sc.Groups() {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(group))
		b.WriteString("\n")
		for _, a := range sc.ActionsByGroup(group) {
			keys := strings.Join(sc.Keys(a), ", ")
			if keys == "" {
				keys = "unbound"
			}
			b.WriteString(styles.Key.Width(16).Render(keys))
			b.WriteString(styles.Text.Render(a.Label()))
			if !sc.IsDefault(a) {
				b.WriteString(styles.WarningText.Render(" *"))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("* customized  esc to close"))
	return m.place(styles.Modal.Render(b.String()))
}

func (m *Model) renderSections(title string, groups ...[]helpSection) string {
	styles := m.theme.Styles()
	columns := make([]string, 0, len(groups))
	for _, sections := range groups {
		var b strings.Builder
		for i, section := range sections {
			b.WriteString(styles.AccentText.Bold(true).Render(section.title))
			b.WriteString("\n")
			for _, item := range section.items {
				b.WriteString(styles.Key.Width(14).Render(item.key))
				b.WriteString(styles.Text.Render(item.desc))
				b.WriteString("\n")
			}
			if i < len(sections)-1 {
				b.WriteString("\n")
			}
		}
		columns = append(columns, lipgloss.NewStyle().PaddingRight(4).Render(b.String()))
	}

	var out strings.Builder
	out.WriteString(styles.Text.Bold(true).Render(title))
	out.WriteString("\n")
	out.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	out.WriteString("\n\n")
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	out.WriteString("\n")
	out.WriteString(styles.FaintText.Render("Press ? or esc to close"))
	return styles.Modal.Render(out.String())
}

func (m *Model) renderProblems() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Recent Problems"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	if len(m.problems) == 0 {
		b.WriteString(styles.SuccessText.Render("No warnings or errors logged"))
		b.WriteString("\n")
	}
	width := max(m.width-12, 20)
	for _, line := range m.problems {
		b.WriteString(styles.WarningText.Width(width).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(m.logPath))
	return m.place(styles.Modal.Render(b.String()))
}
