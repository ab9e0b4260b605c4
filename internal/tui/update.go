package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/messages"
	"github.com/tubeget/tubeget/internal/utils"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

// transcriptOverhead is the vertical space the header, form and progress
// panels take away from the transcript viewport.
const transcriptOverhead = 19

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		m.vp.Width = max(msg.Width-6, 20)
		m.vp.Height = max(msg.Height-transcriptOverhead, MinTranscriptHeight)
		m.bar.Width = max(msg.Width-12, 10)
		m.ready = true
		m.refreshTranscript()
		return m, nil

	case messages.DownloadEventMsg:
		if m.orch.Route(msg.Envelope) {
			switch msg.Envelope.Name {
			case events.LogEventName:
				m.refreshTranscript()
			case events.ProgressEventName:
				if snap, ok := m.orch.Snapshot(); ok && snap.HasPercent {
					cmds = append(cmds, m.bar.SetPercent(snap.Percent/100))
				}
			}
		}
		cmds = append(cmds, m.listenForActivity())

	case messages.ProvisionMsg:
		m.ytdlpStatus = msg.YTDLP
		m.ffmpegStatus = msg.FFmpeg
		cmds = append(cmds, m.listenForActivity())

	case messages.DownloadDoneMsg:
		if m.orch.Settle(msg.SessionID, msg.Result, msg.Err) {
			m.refreshTranscript()
		}

	case messages.PreviewMsg:
		m.resolving = false
		if msg.Err != nil {
			m.previewErr = msg.Err.Error()
			break
		}
		m.preview = msg.Preview
		m.previewURL = msg.URL
		m.previewErr = ""

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.deriveFollow()
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// View teardown: the event subscription dies with the program, the
		// runner keeps its own lifetime.
		return m, tea.Quit

	case key.Matches(msg, m.keys.Paste):
		if !m.settings.General.ClipboardPaste {
			return m, nil
		}
		if text, err := clipboard.ReadAll(); err == nil {
			m.setURL(strings.TrimSpace(text))
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearLog):
		m.orch.Transcript().Clear()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.OpenDir):
		if err := utils.OpenDirectory(m.outputDir()); err != nil {
			utils.Debug("open directory: %v", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.keys.Cycle) && m.focus >= FocusMode:
		m.cycleOption(msg.String() == "right")
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.deriveFollow()
		return m, cmd
	}

	// Everything else edits the focused text input.
	switch m.focus {
	case FocusURL:
		before := m.urlInput.Value()
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		if m.urlInput.Value() != before {
			// A changed target invalidates the resolved preview.
			m.preview = nil
			m.previewErr = ""
		}
		return m, cmd
	case FocusDir:
		var cmd tea.Cmd
		m.dirInput, cmd = m.dirInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit is the primary action: resolve the metadata preview first, then
// start the download once a preview for the current URL is in hand.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.resolving {
		return m, nil
	}

	url := strings.TrimSpace(m.urlInput.Value())
	if m.preview != nil && m.previewURL == url {
		return m.startDownload(url)
	}

	if url == "" {
		// Route the validation through the orchestrator so the message
		// surfaces the same way session failures do.
		_, _ = m.orch.Begin(ytdlp.Request{})
		return m, nil
	}

	m.resolving = true
	m.previewErr = ""
	inv := m.invoker
	return m, func() tea.Msg {
		preview, err := inv.FetchPreview(context.Background(), url)
		return messages.PreviewMsg{URL: url, Preview: preview, Err: err}
	}
}

func (m Model) startDownload(url string) (tea.Model, tea.Cmd) {
	req := ytdlp.Request{
		URL:       url,
		Mode:      m.mode,
		Browser:   Browsers[m.browserIdx],
		OutputDir: strings.TrimSpace(m.dirInput.Value()),
		Quality:   Qualities[m.qualityIdx],
	}

	sess, err := m.orch.Begin(req)
	if err != nil {
		return m, nil
	}
	m.orch.Dispatch()

	m.follow.Reset()
	m.refreshTranscript()

	inv := m.invoker
	request := sess.Request
	id := sess.ID
	return m, tea.Batch(
		m.bar.SetPercent(0),
		func() tea.Msg {
			res, err := inv.DownloadMedia(context.Background(), request)
			return messages.DownloadDoneMsg{SessionID: id, Result: res, Err: err}
		},
	)
}

func (m *Model) setURL(url string) {
	m.urlInput.SetValue(url)
	m.preview = nil
	m.previewErr = ""
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	m.urlInput.Blur()
	m.dirInput.Blur()
	switch focus {
	case FocusURL:
		m.urlInput.Focus()
	case FocusDir:
		m.dirInput.Focus()
	}
}

func (m *Model) cycleOption(forward bool) {
	step := func(idx, size int) int {
		if forward {
			return (idx + 1) % size
		}
		return (idx + size - 1) % size
	}
	switch m.focus {
	case FocusMode:
		if m.mode == ytdlp.ModeVideo {
			m.mode = ytdlp.ModeAudio
		} else {
			m.mode = ytdlp.ModeVideo
		}
	case FocusBrowser:
		m.browserIdx = step(m.browserIdx, len(Browsers))
	case FocusQuality:
		m.qualityIdx = step(m.qualityIdx, len(Qualities))
	}
}

// refreshTranscript pushes the buffer into the viewport and applies the
// follow policy: only a following view snaps to the bottom on new content.
func (m *Model) refreshTranscript() {
	m.vp.SetContent(m.orch.Transcript().String())
	if m.follow.Following() {
		m.vp.GotoBottom()
	}
}

// deriveFollow recomputes the follow state from the live scroll position
// after every scroll interaction.
func (m *Model) deriveFollow() {
	dist := m.vp.TotalLineCount() - (m.vp.YOffset + m.vp.Height)
	if dist < 0 {
		dist = 0
	}
	m.follow.OnScroll(dist)
}

func (m Model) outputDir() string {
	if dir := strings.TrimSpace(m.dirInput.Value()); dir != "" {
		return dir
	}
	return m.invoker.DefaultDownloadDir()
}
