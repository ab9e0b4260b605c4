package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tubeget/tubeget/internal/ytdlp"
)

// View renders the whole screen: tool status, the request form, the
// resolved preview, live progress and the transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{
		m.styles.Title.Render("tubeget"),
		m.provisionLine(),
		m.formPanel(),
	}

	if preview := m.previewPanel(); preview != "" {
		sections = append(sections, preview)
	}
	if progress := m.progressPanel(); progress != "" {
		sections = append(sections, progress)
	}
	if msg := m.messageLine(); msg != "" {
		sections = append(sections, msg)
	}

	sections = append(sections,
		m.transcriptPanel(),
		m.styles.Status.Render(m.help.View(m.keys)),
	)

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) provisionLine() string {
	return m.styles.Status.Render(
		m.toolStatus("yt-dlp", m.ytdlpStatus) + "   " + m.toolStatus("ffmpeg", m.ffmpegStatus),
	)
}

func (m Model) toolStatus(name string, st ytdlp.Status) string {
	if !st.Installed {
		return m.styles.Error.Render("✗ " + name + " missing")
	}
	return m.styles.Success.Render("✓ "+name) +
		m.styles.Subtext.Render(fmt.Sprintf(" (%s)", st.Source))
}

func (m Model) formPanel() string {
	rows := []string{
		m.formRow(FocusURL, "URL", m.urlInput.View()),
		m.formRow(FocusDir, "Folder", m.dirInput.View()),
		m.formRow(FocusMode, "Mode", m.optionValue(FocusMode, string(m.mode))),
		m.formRow(FocusBrowser, "Cookies", m.optionValue(FocusBrowser, orNone(Browsers[m.browserIdx]))),
		m.formRow(FocusQuality, "Quality", m.optionValue(FocusQuality, orBest(Qualities[m.qualityIdx]))),
	}

	style := m.styles.Panel
	if m.focus <= FocusDir {
		style = m.styles.Focused
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) formRow(focus int, label, value string) string {
	l := m.styles.Label.Render(label + ":")
	if m.focus == focus {
		l = m.styles.Selected.Width(10).Render(label + ":")
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, l, value)
}

func (m Model) optionValue(focus int, value string) string {
	if m.focus == focus {
		return m.styles.Selected.Render("‹ " + value + " ›")
	}
	return m.styles.Value.Render(value)
}

func (m Model) previewPanel() string {
	if m.resolving {
		return m.styles.Status.Render("Resolving metadata...")
	}
	if m.previewErr != "" {
		return m.styles.Error.Render(m.previewErr)
	}
	if m.preview == nil {
		return ""
	}

	p := m.preview
	lines := []string{
		m.styles.Value.Bold(true).Render(p.Title),
		m.styles.Subtext.Render(strings.TrimSpace(fmt.Sprintf(
			"%s  %s  %s", p.Uploader, formatDuration(p.Duration), p.Extractor,
		))),
	}
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) progressPanel() string {
	snap, ok := m.orch.Snapshot()
	if !ok {
		return ""
	}

	stats := []string{}
	if snap.PercentText != "" {
		stats = append(stats, snap.PercentText)
	}
	if snap.Total != "" {
		stats = append(stats, "of "+snap.Total)
	}
	if snap.Speed != "" {
		stats = append(stats, "at "+snap.Speed)
	}
	if snap.ETA != "" {
		stats = append(stats, "ETA "+snap.ETA)
	}
	if snap.Status != "" {
		stats = append(stats, snap.Status)
	}

	line := m.styles.Subtext.Render(strings.Join(stats, "  "))
	if sess := m.orch.Active(); sess != nil {
		line += m.styles.Subtext.Render("  started " + humanize.Time(sess.CreatedAt))
	}

	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, m.bar.View(), line))
}

func (m Model) messageLine() string {
	if msg := m.orch.ErrorMessage(); msg != "" {
		return m.styles.Error.Render(msg)
	}
	if msg := m.orch.ResultMessage(); msg != "" {
		return m.styles.Success.Render(msg)
	}
	return ""
}

func (m Model) transcriptPanel() string {
	title := m.styles.Subtext.Render("Log")
	if !m.follow.Following() {
		title += m.styles.Warning.Render("  (scrolled; ↓ to bottom resumes follow)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.styles.Panel.Render(m.vp.View()),
	)
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}

func orBest(v string) string {
	if v == "" {
		return "best"
	}
	return v + "p"
}
