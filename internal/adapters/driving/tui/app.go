package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	modelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	citationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// replyMsg carries an assistant reply back into the update loop.
type replyMsg struct {
	reply *driving.ChatReply
}

// replyErrMsg carries a failed chat turn back into the update loop.
type replyErrMsg struct {
	err error
}

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	// modelName is shown in the header so the user knows which
	// backend is answering.
	modelName string

	input    textinput.Model
	viewport viewport.Model

	// history is the conversation as sent to the chat service.
	history []driven.ChatMessage

	// transcript is the rendered conversation shown in the viewport.
	transcript []string

	waiting bool
	err     error
	width   int
	height  int
	ready   bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat TUI with the given ports.
func NewApp(ports *Ports, modelName string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your journal anything"
	ti.Focus()
	ti.CharLimit = 0

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		modelName: modelName,
		input:     ti,
		viewport:  viewport.New(0, 0),
	}, nil
}

// WithContext sets the context used for chat requests.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Header, input box frame and status line surround the viewport
		_, frameHeight := inputBoxStyle.GetFrameSize()
		reserved := 2 + frameHeight + 2
		a.viewport.Width = msg.Width
		a.viewport.Height = maxInt(3, msg.Height-reserved)
		a.refreshViewport()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			return a, a.submit()
		default:
		}
		if msg.String() == "q" && a.input.Value() == "" {
			return a, tea.Quit
		}

	case replyMsg:
		a.waiting = false
		a.history = append(a.history, driven.ChatMessage{
			Role:    "assistant",
			Content: msg.reply.Content,
		})
		a.appendReply(msg.reply)
		return a, nil

	case replyErrMsg:
		a.waiting = false
		a.err = msg.err
		// Drop the failed turn so a transient error does not poison
		// the conversation history
		if n := len(a.history); n > 0 && a.history[n-1].Role == "user" {
			a.history = a.history[:n-1]
		}
		a.refreshViewport()
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// submit sends the current input as a user message.
func (a *App) submit() tea.Cmd {
	if a.waiting {
		return nil
	}

	message := strings.TrimSpace(a.input.Value())
	if message == "" {
		return nil
	}

	a.input.Reset()
	a.err = nil
	a.waiting = true
	a.history = append(a.history, driven.ChatMessage{Role: "user", Content: message})
	a.transcript = append(a.transcript, userStyle.Render("You")+"\n"+message)
	a.refreshViewport()

	history := append([]driven.ChatMessage(nil), a.history...)
	ctx := a.ctx
	chat := a.ports.Chat

	return func() tea.Msg {
		reply, err := chat.Reply(ctx, history)
		if err != nil {
			return replyErrMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
}

// appendReply renders an assistant reply into the transcript.
func (a *App) appendReply(reply *driving.ChatReply) {
	var sb strings.Builder
	sb.WriteString(assistantStyle.Render("Journal"))
	sb.WriteString("\n")
	sb.WriteString(reply.Content)
	if len(reply.Citations) > 0 {
		sb.WriteString("\n")
		sb.WriteString(citationStyle.Render("Sources: " + strings.Join(reply.Citations, ", ")))
	}
	a.transcript = append(a.transcript, sb.String())
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	content := strings.Join(a.transcript, "\n\n")
	if content == "" {
		content = statusStyle.Render("Ask a question about your journal to get started.")
	}
	a.viewport.SetContent(content)
	a.viewport.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := titleStyle.Render("JournalKit") + " " + modelStyle.Render(a.modelName)

	status := statusStyle.Render("Enter to send, Esc to quit")
	if a.waiting {
		status = statusStyle.Render("Thinking...")
	}
	if a.err != nil {
		status = errorStyle.Render("Error: " + a.err.Error())
	}

	return header + "\n" +
		a.viewport.View() + "\n" +
		inputBoxStyle.Width(maxInt(20, a.width-2)).Render(a.input.View()) + "\n" +
		status
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
