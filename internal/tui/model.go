package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/journal"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
	"github.com/julianstephens/omayami/internal/tui/components/detail"
	"github.com/julianstephens/omayami/internal/tui/components/postlist"
)

const localHint = "To use AI: settings (s) → choose OpenAI → enter API key, or choose Ollama."

type Model struct {
	journal       *journal.Controller
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	postList      postlist.Model
	detail        detail.Model
	input         textarea.Model
	spinner       spinner.Model
	form          *huh.Form
	postForm      *PostFormModel
	replyForm     *ReplyFormModel
	settingsForm  *SettingsFormModel
	accessForm    *AccessCodeFormModel
	filter        models.Category
	currentID     string
	busy          bool
	pending       string
	chatErr       string
	notice        string
	formError     string
	width         int
	height        int
	quitting      bool
}

func NewModel(j *journal.Controller) Model {
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Write a message..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = keys.Newline

	m := Model{
		journal:  j,
		state:    constants.StateList,
		keys:     keys,
		help:     help.New(),
		postList: postlist.New(0, 0),
		detail:   detail.New(0, 0),
		input:    ta,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.refreshList()

	if j.NeedsAccessCode() {
		m.openAccessCode()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m *Model) refreshList() {
	m.postList.SetView(render.BuildList(m.journal.ListPosts(""), m.filter, m.journal.Now()))
}

// refreshDetail redraws the open post with the current chat state.
func (m *Model) refreshDetail() {
	post, ok := m.journal.GetPost(m.currentID)
	if !ok {
		return
	}
	m.detail.Show(render.BuildDetail(post, m.journal.Now()), m.chatState())
}

func (m Model) chatState() detail.Chat {
	c := detail.Chat{Pending: m.pending, Error: m.chatErr}
	if m.busy {
		c.Thinking = m.spinner.View() + " thinking..."
	}
	if m.showLocalHint() {
		c.Hint = localHint
	}
	return c
}

// showLocalHint is true while the openai provider has no key.
func (m Model) showLocalHint() bool {
	return m.journal.Settings().NeedsAPIKey()
}

func (m *Model) openAccessCode() {
	if m.state != constants.StateAccessCode {
		m.previousState = m.state
	}
	m.accessForm = &AccessCodeFormModel{}
	m.form = NewAccessCodeForm(m.accessForm)
	m.state = constants.StateAccessCode
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateDetail:
		return []key.Binding{m.keys.Back, m.keys.Feel, m.keys.Reply, m.keys.Chat, m.keys.Quit}
	case constants.StateChatInput:
		return []key.Binding{m.keys.Send, m.keys.Newline, m.keys.Back}
	case constants.StateSettings:
		return []key.Binding{m.keys.Edit, m.keys.AccessCode, m.keys.Back, m.keys.Quit}
	}
	return []key.Binding{m.keys.Open, m.keys.New, m.keys.NextFilter, m.keys.Settings, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Back},
		{m.keys.New, m.keys.NextFilter, m.keys.PrevFilter, m.keys.Settings},
		{m.keys.Feel, m.keys.Reply, m.keys.Chat, m.keys.Send, m.keys.Newline},
		{m.keys.Help, m.keys.Quit},
	}
}
