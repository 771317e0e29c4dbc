package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/chatterbot/internal"
	"github.com/iksnae/chatterbot/internal/export"
)

// snapshotMsg carries the final state of a controller action into the view.
type snapshotMsg internal.Snapshot

// watchMsg carries a snapshot delivered through the session's watch
// channel. Only these re-arm the watcher, so exactly one watch command is
// outstanding at a time.
type watchMsg internal.Snapshot

// savedMsg reports the outcome of a transcript save.
type savedMsg struct {
	path string
	err  error
}

// Model is the chat view. It renders whatever Snapshot the session
// controller last published and translates key presses into the three
// controller actions; it holds no conversation state of its own.
type Model struct {
	session   *internal.Session
	serverURL string

	snap  internal.Snapshot
	input textinput.Model
	wait  spinner.Model

	width  int
	height int
	offset int // scrollback offset in lines from the bottom

	// The error banner is dismissible locally; the controller clears the
	// underlying LastError itself on the next send.
	bannerDismissed bool

	saveNotice string
	quitting   bool
}

// New builds the chat view over an existing session controller.
func New(session *internal.Session, serverURL string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:   session,
		serverURL: serverURL,
		snap:      session.Snapshot(),
		input:     ti,
		wait:      sp,
		width:     100,
		height:    30,
	}
}

// Init kicks off the snapshot watcher, the startup health probe, and the
// cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.wait.Tick,
		watchSession(m.session),
		probeSession(m.session),
	)
}

// watchSession waits for the next published snapshot.
func watchSession(session *internal.Session) tea.Cmd {
	return func() tea.Msg {
		return watchMsg(<-session.Watch())
	}
}

// probeSession runs one connectivity check.
func probeSession(session *internal.Session) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(session.CheckConnectivity(context.Background()))
	}
}

// sendMessage submits one message; intermediate state (the optimistic
// append, the pending flag) arrives through the watcher while this runs.
func sendMessage(session *internal.Session, content string) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(session.Send(context.Background(), content))
	}
}

// clearConversation resets the conversation to a fresh greeting.
func clearConversation(session *internal.Session) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(session.Clear(context.Background()))
	}
}

// saveTranscript exports the current conversation as Markdown next to the
// working directory.
func saveTranscript(snap internal.Snapshot, serverURL string) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		path := fmt.Sprintf("chatterbot-%s.md", now.Format("20060102-150405"))
		err := export.WriteFile(internal.NewTranscript(snap, serverURL, now), "md", path)
		return savedMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.applySnapshot(internal.Snapshot(msg))
		return m, nil

	case watchMsg:
		m.applySnapshot(internal.Snapshot(msg))
		return m, watchSession(m.session)

	case savedMsg:
		if msg.err != nil {
			m.saveNotice = "save failed: " + msg.err.Error()
		} else {
			m.saveNotice = "transcript saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.wait, cmd = m.wait.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) applySnapshot(snap internal.Snapshot) {
	prev := m.snap
	m.snap = snap
	if m.snap.LastError != prev.LastError {
		m.bannerDismissed = false
	}
	// New content: snap the scrollback to the bottom.
	if len(m.snap.Conversation) != len(prev.Conversation) {
		m.offset = 0
		m.saveNotice = ""
	}
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.snap.LastError != "" && !m.bannerDismissed {
			m.bannerDismissed = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "enter":
		content := m.input.Value()
		if internal.IsBlank(content) || m.snap.Pending {
			// Mirrors the controller's own no-op rules: nothing is sent,
			// nothing is typed-over.
			return m, nil
		}
		m.input.Reset()
		return m, sendMessage(m.session, content)

	case "ctrl+l":
		return m, clearConversation(m.session)

	case "ctrl+r":
		return m, probeSession(m.session)

	case "ctrl+s":
		return m, saveTranscript(m.snap, m.serverURL)

	case "up":
		m.offset++
		m.clampOffset()
		return m, nil

	case "down":
		if m.offset > 0 {
			m.offset--
		}
		return m, nil

	case "pgup":
		m.offset += m.chatHeight()
		m.clampOffset()
		return m, nil

	case "pgdown":
		m.offset -= m.chatHeight()
		if m.offset < 0 {
			m.offset = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// clampOffset keeps the scrollback within the rendered conversation.
func (m *Model) clampOffset() {
	lines := len(m.conversationLines())
	maxOffset := lines - m.chatHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	lines := m.conversationLines()
	visible := m.chatHeight()
	end := len(lines) - m.offset
	if end > len(lines) {
		end = len(lines)
	}
	start := end - visible
	if start < 0 {
		start = 0
	}
	for i := start; i < end; i++ {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	for i := end - start; i < visible; i++ {
		b.WriteString("\n")
	}

	if m.snap.Pending {
		b.WriteString(m.wait.View())
		b.WriteString(typingStyle.Render("ChatterBot is typing..."))
		b.WriteString("\n")
	} else if m.snap.LastError != "" && !m.bannerDismissed {
		b.WriteString(errorBannerStyle.Render("✗ " + m.snap.LastError))
		b.WriteString(helpStyle.Render("  (esc to dismiss)"))
		b.WriteString("\n")
	} else if m.saveNotice != "" {
		b.WriteString(saveNoticeStyle.Render(m.saveNotice))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  Enter: send  Ctrl+L: clear  Ctrl+S: save  Ctrl+R: probe  Esc: quit"))

	return b.String()
}

// renderStatusBar shows the title, the server, and the connectivity state.
func (m Model) renderStatusBar() string {
	title := titleStyle.Render("ChatterBot")
	server := statusBarStyle.Render(m.serverURL)

	var conn string
	switch m.snap.Connectivity {
	case internal.ConnectivityReachable:
		conn = reachableStyle.Render("● online")
	case internal.ConnectivityUnreachable:
		conn = unreachableStyle.Render("● offline")
	default:
		conn = unknownStyle.Render("● checking...")
	}

	left := title + " " + server
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(conn) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + conn
}

// conversationLines flattens the conversation into rendered terminal lines.
func (m Model) conversationLines() []string {
	wrap := lipgloss.NewStyle().Width(m.contentWidth())

	var lines []string
	for _, msg := range m.snap.Conversation {
		lines = append(lines, m.renderMessageHeader(msg))
		body := messageStyle.Render(wrap.Render(msg.Content))
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderMessageHeader(msg internal.Message) string {
	var label string
	switch msg.Role {
	case internal.RoleUser:
		label = userRoleStyle.Render("You")
	case internal.RoleAssistant:
		name := "ChatterBot"
		if msg.Model != "" {
			name = "ChatterBot · " + msg.Model
		}
		label = assistantRoleStyle.Render(name)
	default:
		label = string(msg.Role)
	}

	ts := formatTimestamp(msg.Timestamp)
	if ts != "" {
		return label + " " + timestampStyle.Render(ts)
	}
	return label
}

// formatTimestamp shortens an RFC3339-ish timestamp for display; anything
// unparseable is shown as-is.
func formatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if parsed, err := time.Parse(layout, ts); err == nil {
			return parsed.Format("15:04")
		}
	}
	return ts
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// chatHeight is the number of lines available for the conversation after
// the status bar, notice line, input, and help line.
func (m Model) chatHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}
