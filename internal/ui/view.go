package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/livia/internal/status"
)

func (m *Model) renderMain() string {
	styles := m.theme.Styles()
	fullscreen := m.status.Display.Fullscreen.Get()

	panelWidth := max((m.width-4)/2, 24)
	live := m.renderKind(styles, status.KindLive, "Detection", panelWidth)
	static := m.renderKind(styles, status.KindStatic, "Classification", panelWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, live, " ", static)

	if fullscreen {
		return body
	}

	parts := []string{m.renderHeader(styles), body, m.renderStats(styles)}
	if m.prompting {
		parts = append(parts, m.prompt.View())
	}
	parts = append(parts, m.renderFooter(styles))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderHeader(styles Styles) string {
	fp := m.status.FrameProcessing
	input := fp.Input.Get()
	if input == "" {
		input = "no input"
	}
	state := styles.MutedText.Render("paused")
	if fp.Playing.Get() {
		state = styles.SuccessText.Render("playing")
	}
	line := fmt.Sprintf("%s  %s  %s  %s",
		styles.Logo.Render("LIVIA"),
		styles.Text.Render(input),
		state,
		styles.FaintText.Render(m.theme.Name),
	)
	return styles.Header.Width(max(m.width, 1)).Render(line)
}

func (m *Model) renderKind(styles Styles, kind status.Kind, title string, width int) string {
	fp := m.status.FrameProcessing
	var b strings.Builder

	heading := styles.Title.Render(title)
	if kind == status.KindLive {
		if fp.IsActive() {
			heading += " " + styles.SuccessText.Render("on")
		} else {
			heading += " " + styles.MutedText.Render("off")
		}
	}
	b.WriteString(heading)
	b.WriteString("\n")

	list := fp.Configurations(kind)
	if len(list) == 0 {
		b.WriteString(styles.FaintText.Render("no configurations"))
	}
	active := fp.ActiveIndex(kind)
	for i, c := range list {
		row := fmt.Sprintf("%d. %s (%s)", i+1, c.Name, c.Analyzer)
		if i == active {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString(styles.Text.Render("  " + row))
		}
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}

	return styles.Panel.Width(width).Render(b.String())
}

func (m *Model) renderStats(styles Styles) string {
	s := m.stats
	if !s.HasFrames() && s.Dropped == 0 {
		return styles.FaintText.Render("no frames processed")
	}
	line := fmt.Sprintf("%s  frames %d  dropped %d  last %s",
		s.Analyzer, s.Frames, s.Dropped, s.LastLatency.Round(time.Microsecond))
	if s.IsFailing() && s.LastError != nil {
		return styles.DangerText.Render(line + "  error: " + s.LastError.Error())
	}
	return styles.MutedText.Render(line)
}

func (m *Model) renderFooter(styles Styles) string {
	msg := m.status.Display.StatusMessage.Get()
	hint := styles.FaintText.Render("? help")
	gap := max(m.width-lipgloss.Width(msg)-lipgloss.Width(hint)-2, 1)
	return styles.Footer.Width(max(m.width, 1)).Render(msg + strings.Repeat(" ", gap) + hint)
}

func (m *Model) place(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
