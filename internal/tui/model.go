package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulsecx/internal/agent"
)

// ChatPort is the TUI-facing subset of the agent.
type ChatPort interface {
	HandleMessage(ctx context.Context, userID, message string, lat, lon float64) agent.Response
}

// Model is the Bubble Tea model for the interactive chat client.
type Model struct {
	port       ChatPort
	userID     string
	lat, lon   float64
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	digest     string
	status     string
	ready      bool
}

// New creates a chat model bound to one customer identity and location.
// digest is an optional one-line summary of the loaded knowledge corpus.
func New(port ChatPort, userID string, lat, lon float64, digest string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		port:     port,
		userID:   userID,
		lat:      lat,
		lon:      lon,
		input:    ti,
		viewport: vp,
		digest:   digest,
		status:   fmt.Sprintf("Chatting as %s. Ctrl+C to quit.", userID),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and input boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                     // header + digest
		totalFooterLines := 1                                     // status
		reserved := totalHeaderLines + totalFooterLines + ih + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.transcript = append(m.transcript, youStyle.Render("you: ")+text)
				resp := m.port.HandleMessage(context.Background(), m.userID, text, m.lat, m.lon)
				m.transcript = append(m.transcript, botStyle.Render("pulsecx: ")+resp.Reply)
				if hint := renderHint(resp); hint != "" {
					m.transcript = append(m.transcript, hintStyle.Render(hint))
				}
				m.status = fmt.Sprintf("%d message(s) sent", len(m.transcript)/2)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and conversation so far.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PulseCX Chat")
	digest := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.digest)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + digest + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n")
}

func renderHint(resp agent.Response) string {
	var parts []string
	if resp.Store != nil {
		parts = append(parts, fmt.Sprintf("store: %s (open %d-%d)",
			resp.Store.Name, resp.Store.OpenHour, resp.Store.CloseHour))
	}
	if resp.Coupon != nil {
		parts = append(parts, fmt.Sprintf("coupon: %s, %d%% off",
			resp.Coupon.ID, resp.Coupon.DiscountPercent))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, "; ") + "]"
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	youStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
