package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tubeget/tubeget/internal/config"
	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/messages"
	"github.com/tubeget/tubeget/internal/session"
	"github.com/tubeget/tubeget/internal/transcript"
	"github.com/tubeget/tubeget/internal/utils"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

// Focusable form fields, cycled with tab.
const (
	FocusURL = iota
	FocusDir
	FocusMode
	FocusBrowser
	FocusQuality
	focusCount
)

// Model is the single bubbletea view: a request form on top, the live
// progress and transcript of the active session below. All session state
// lives on the orchestrator; the model only holds presentation concerns.
type Model struct {
	settings *config.Settings
	styles   Styles
	keys     KeyMap

	orch    *session.Orchestrator
	invoker ytdlp.Invoker

	// eventCh is the subscription to the runner's notifications. It lives
	// for the whole view lifetime, not per session; a nil channel means the
	// subscription failed and the view degrades to post-hoc output only.
	eventCh chan tea.Msg

	urlInput   textinput.Model
	dirInput   textinput.Model
	focus      int
	mode       ytdlp.Mode
	browserIdx int
	qualityIdx int

	preview    *ytdlp.Preview
	previewURL string
	previewErr string
	resolving  bool

	bar    progress.Model
	vp     viewport.Model
	follow transcript.FollowState
	help   help.Model

	ytdlpStatus  ytdlp.Status
	ffmpegStatus ytdlp.Status

	width  int
	height int
	ready  bool
}

// NewModel wires the view to a runner and the saved settings. The runner's
// notifications are published into the model's event channel; the settled
// hook re-checks tool availability after every session.
func NewModel(settings *config.Settings) Model {
	eventCh := make(chan tea.Msg, EventChannelBuffer)

	runner := ytdlp.NewRunner(func(env events.Envelope) {
		// Never block the runner's pipe goroutines; a stalled UI just
		// loses notifications, the terminal result still arrives.
		select {
		case eventCh <- messages.DownloadEventMsg{Envelope: env}:
		default:
		}
	})

	orch := session.NewOrchestrator()
	orch.SetSettledHook(func() {
		select {
		case eventCh <- messages.ProvisionMsg{YTDLP: ytdlp.CheckYTDLP(), FFmpeg: ytdlp.CheckFFmpeg()}:
		default:
		}
	})

	return newModel(settings, orch, runner, eventCh)
}

// newModel is the test seam: any Invoker and channel can stand in.
func newModel(settings *config.Settings, orch *session.Orchestrator, invoker ytdlp.Invoker, eventCh chan tea.Msg) Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://youtube.com/watch?v=..."
	urlInput.Width = InputWidth
	urlInput.Prompt = ""
	urlInput.Focus()

	dirInput := textinput.New()
	dirInput.Placeholder = settings.Download.DefaultDir
	dirInput.Width = InputWidth
	dirInput.Prompt = ""
	dirInput.SetValue(settings.Download.DefaultDir)

	mode := ytdlp.ModeVideo
	if settings.Download.Mode == string(ytdlp.ModeAudio) {
		mode = ytdlp.ModeAudio
	}

	return Model{
		settings:   settings,
		styles:     NewStyles(settings.General.Theme),
		keys:       DefaultKeys,
		orch:       orch,
		invoker:    invoker,
		eventCh:    eventCh,
		urlInput:   urlInput,
		dirInput:   dirInput,
		mode:       mode,
		browserIdx: indexOf(Browsers, settings.Download.CookieBrowser),
		qualityIdx: indexOf(Qualities, settings.Download.Quality),
		bar:        progress.New(progress.WithDefaultGradient()),
		vp:         viewport.New(InputWidth, MinTranscriptHeight),
		follow:     transcript.NewFollowState(),
		help:       help.New(),
	}
}

// Init establishes the notification subscription and the initial
// provisioning check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenForActivity(), m.queueProvisionCheck())
}

// queueProvisionCheck runs the startup tool check. The result is delivered
// through the event channel so the subscription keeps exactly one armed
// receive; only a failed subscription falls back to direct delivery.
func (m Model) queueProvisionCheck() tea.Cmd {
	ch := m.eventCh
	return func() tea.Msg {
		msg := messages.ProvisionMsg{YTDLP: ytdlp.CheckYTDLP(), FFmpeg: ytdlp.CheckFFmpeg()}
		if ch == nil {
			return msg
		}
		select {
		case ch <- msg:
		default:
		}
		return nil
	}
}

// listenForActivity arms one receive on the event channel. It is re-armed
// after every delivered message, for the whole view lifetime. A nil
// channel means subscribing failed; that is logged and the view still works
// off terminal results.
func (m Model) listenForActivity() tea.Cmd {
	if m.eventCh == nil {
		utils.Debug("event subscription unavailable; realtime updates disabled")
		return nil
	}
	sub := m.eventCh
	return func() tea.Msg {
		return <-sub
	}
}

func indexOf(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return 0
}
