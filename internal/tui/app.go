// Package tui renders the overlay: the currently playing track and the
// previous / play-pause / next controls. The model is the single owner of all
// view state; background goroutines deliver results through the events
// channel and never touch the model directly.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halverson/overtone/internal/core"
	"github.com/halverson/overtone/internal/spotify/auth"
	"github.com/halverson/overtone/internal/spotify/player"
	"github.com/halverson/overtone/internal/spotify/poller"
	"github.com/halverson/overtone/internal/tui/styles"

	apperr "github.com/halverson/overtone/internal/errors"
)

// Messages delivered from background goroutines.
type (
	// UpdateMsg is one poll result.
	UpdateMsg poller.Update
	// ControlMsg is the outcome of a playback command.
	ControlMsg player.Result
	// AuthMsg reports the authorization flow's terminal state.
	AuthMsg struct {
		State  auth.State
		Reason string
	}
)

// Controller is the playback side the overlay drives.
type Controller interface {
	Execute(intent core.PlaybackIntent)
	SetPlaying(playing bool)
}

// Model is the overlay's bubbletea model.
type Model struct {
	controller Controller
	events     <-chan tea.Msg
	theme      styles.Theme
	keys       keyMap

	width int

	title    string
	artist   string
	artwork  string
	playing  bool
	errText  string
	quitting bool
}

// NewModel creates the overlay model. events carries UpdateMsg, ControlMsg
// and AuthMsg values from the poller, controller and auth session.
func NewModel(controller Controller, events <-chan tea.Msg, themeName string) Model {
	return Model{
		controller: controller,
		events:     events,
		theme:      styles.New(themeName),
		keys:       defaultKeyMap(),
		title:      "Connecting to Spotify...",
	}
}

// Init starts draining the events channel.
func (m Model) Init() tea.Cmd {
	return m.waitEvent()
}

// waitEvent blocks on the events channel and hands the next message to
// Update. This is the only bridge from background goroutines into the model.
func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.events
		if !ok {
			return nil
		}
		return msg
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case UpdateMsg:
		m.applyUpdate(poller.Update(msg))
		return m, m.waitEvent()

	case ControlMsg:
		r := player.Result(msg)
		if r.Err != nil {
			m.errText = r.Err.Detail
		} else {
			m.errText = ""
			if r.Intent.Kind == core.IntentToggle {
				m.playing = r.Playing
			}
		}
		return m, m.waitEvent()

	case AuthMsg:
		switch msg.State {
		case auth.StateAuthenticated:
			m.title = "Connected!"
			m.artist = "Ready to control Spotify"
			m.errText = ""
		case auth.StateFailed:
			m.title = "Auth Error"
			m.artist = ""
			m.errText = msg.Reason
		}
		return m, m.waitEvent()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Previous):
		m.controller.Execute(core.Previous())
	case key.Matches(msg, m.keys.Next):
		m.controller.Execute(core.Next())
	case key.Matches(msg, m.keys.Toggle):
		m.controller.Execute(core.Toggle(m.playing))
	}
	return m, nil
}

// applyUpdate folds one poll result into the view state and feeds the
// playing indicator back to the controller for its next toggle decision.
func (m *Model) applyUpdate(u poller.Update) {
	if u.Err != nil {
		m.title = errorTitle(u.Err.Kind)
		m.artist = u.Err.Detail
		m.errText = ""
		return
	}

	m.title = u.Track.Title
	m.artist = u.Track.Artist
	m.artwork = u.Track.ArtworkURL
	m.playing = u.Track.IsPlaying
	m.errText = ""
	m.controller.SetPlaying(u.Track.IsPlaying)
}

// errorTitle maps an error kind to the overlay's headline, mirroring the
// labels the poll table produces.
func errorTitle(kind apperr.Kind) string {
	switch kind {
	case apperr.KindAuth:
		return "Auth Error"
	case apperr.KindAPI:
		return "API Error"
	case apperr.KindNetwork:
		return "Network Error"
	case apperr.KindNotAuthenticated:
		return "Not Authenticated"
	default:
		return "Error"
	}
}

// View renders the overlay panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme

	glyph := t.Paused.Render("▶")
	if m.playing {
		glyph = t.Playing.Render("⏸")
	}

	controls := t.Dim.Render("⏮  ") + glyph + t.Dim.Render("  ⏭")

	lines := []string{
		t.Title.Render(m.title),
		t.Subtitle.Render(m.artist),
		"",
		controls,
	}

	if m.errText != "" {
		lines = append(lines, t.ErrorText.Render(m.errText))
	} else if m.artwork != "" {
		lines = append(lines, t.Dim.Render(truncateLine(m.artwork, 40)))
	}

	lines = append(lines, t.Muted.Render("←/→ skip · space play/pause · q quit"))

	return t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
