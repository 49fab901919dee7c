package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
)

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	feelingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	userStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("110")).Padding(0, 1)
	aiStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("114")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("203")).Foreground(lipgloss.Color("203")).Padding(0, 1)
	thinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Chat is the transient chat state the detail screen shows on top of the
// stored post.
type Chat struct {
	// Pending is a sent message not yet reflected in the stored post.
	Pending  string
	Thinking string
	Error    string
	Hint     string
}

type Model struct {
	viewport viewport.Model
	view     render.DetailView
	chat     Chat
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetPost shows a newly opened post from the top.
func (m *Model) SetPost(v render.DetailView, chat Chat) {
	m.view = v
	m.chat = chat
	m.refresh()
	m.viewport.GotoTop()
}

// Show redraws the post, scrolling to the end when the conversation moved.
func (m *Model) Show(v render.DetailView, chat Chat) {
	moved := len(v.Turns) != len(m.view.Turns) ||
		chat.Pending != m.chat.Pending ||
		chat.Error != m.chat.Error ||
		(chat.Thinking != "") != (m.chat.Thinking != "")
	m.view = v
	m.chat = chat
	m.refresh()
	if moved {
		m.viewport.GotoBottom()
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(Render(m.view, m.chat, m.viewport.Width))
}

func (m Model) Scroll(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

// Render lays out a post, its feeling toggle, chat transcript and memos.
func Render(d render.DetailView, chat Chat, width int) string {
	bubbleWidth := width - 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var b strings.Builder
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · %s", d.CategoryLabel, d.Date)))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(render.SanitizeTerminal(d.Title)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(bubbleWidth).Render(render.SanitizeTerminal(d.Content)))
	b.WriteString("\n\n")
	if d.FeelingBetter {
		b.WriteString(feelingStyle.Render(d.FeelingLabel))
	} else {
		b.WriteString(promptStyle.Render(d.FeelingLabel + " (f)"))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("AI chat"))
	b.WriteString("\n")
	if !d.HasChat && chat.Pending == "" && chat.Thinking == "" && chat.Error == "" {
		b.WriteString(promptStyle.Render("Press c to start a chat about this post."))
		b.WriteString("\n")
	}
	for _, t := range d.Turns {
		b.WriteString(bubble(t.Role, render.SanitizeTerminal(t.Content), bubbleWidth))
		b.WriteString("\n")
	}
	if chat.Pending != "" {
		b.WriteString(bubble(models.RoleUser, render.SanitizeTerminal(chat.Pending), bubbleWidth))
		b.WriteString("\n")
	}
	if chat.Thinking != "" {
		b.WriteString(thinkingStyle.Render(chat.Thinking))
		b.WriteString("\n")
	}
	if chat.Error != "" {
		b.WriteString(errorStyle.Width(bubbleWidth).Render(chat.Error))
		b.WriteString("\n")
	}
	if chat.Hint != "" {
		b.WriteString(hintStyle.Render(chat.Hint))
		b.WriteString("\n")
	}

	if len(d.Replies) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Memos (%d)", len(d.Replies))))
		b.WriteString("\n")
		for _, r := range d.Replies {
			b.WriteString(metaStyle.Render(r.Date))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(bubbleWidth).Render(render.SanitizeTerminal(r.Content)))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func bubble(role models.Role, content string, width int) string {
	if role == models.RoleAssistant {
		return aiStyle.Width(width).Render(content)
	}
	return lipgloss.PlaceHorizontal(width+4, lipgloss.Right, userStyle.Width(width*3/4).Render(content))
}
