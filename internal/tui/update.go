package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/journal"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
)

// adviceDoneMsg carries the result of a background advice request.
type adviceDoneMsg struct {
	postID string
	post   models.Post
	err    error
}

func requestAdvice(j *journal.Controller, postID, message string) tea.Cmd {
	return func() tea.Msg {
		post, err := j.RequestAdvice(context.Background(), postID, message)
		return adviceDoneMsg{postID: postID, post: post, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.postList.SetSize(msg.Width-h, msg.Height-v-4)
		m.detail.SetSize(msg.Width-h, msg.Height-v-9)
		m.input.SetWidth(msg.Width - h)
		return m, nil

	case adviceDoneMsg:
		return m.handleAdviceDone(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.currentID != "" {
			m.refreshDetail()
		}
		return m, cmd
	}

	switch m.state {
	case constants.StateNewPost, constants.StateReply, constants.StateEditSettings, constants.StateAccessCode:
		return m.updateForm(msg)
	case constants.StateChatInput:
		return m.updateChatInput(msg)
	case constants.StateDetail:
		return m.updateDetail(msg)
	case constants.StateSettings:
		return m.updateSettings(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Open):
			if id, ok := m.postList.SelectedID(); ok {
				m.openDetail(id)
			}
			return m, nil
		case key.Matches(msg, m.keys.New):
			m.postForm = &PostFormModel{Category: models.CategoryWork}
			if m.filter != "" {
				m.postForm.Category = m.filter
			}
			m.form = NewPostForm(m.postForm)
			m.formError = ""
			m.previousState = m.state
			m.state = constants.StateNewPost
			return m, m.form.Init()
		case key.Matches(msg, m.keys.NextFilter):
			m.filter = cycleFilter(m.filter, 1)
			m.refreshList()
			return m, nil
		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = cycleFilter(m.filter, -1)
			m.refreshList()
			return m, nil
		case key.Matches(msg, m.keys.Settings):
			m.previousState = m.state
			m.state = constants.StateSettings
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.postList, cmd = m.postList.Update(msg)
	return m, cmd
}

// cycleFilter steps through "all" followed by every category.
func cycleFilter(current models.Category, step int) models.Category {
	options := append([]models.Category{""}, models.Categories...)
	idx := 0
	for i, c := range options {
		if c == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

func (m *Model) openDetail(id string) {
	post, ok := m.journal.GetPost(id)
	if !ok {
		return
	}
	m.currentID = id
	m.chatErr = ""
	m.pending = ""
	m.state = constants.StateDetail
	m.detail.SetPost(render.BuildDetail(post, m.journal.Now()), m.chatState())
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.state = constants.StateList
			m.refreshList()
			return m, nil
		case key.Matches(msg, m.keys.Feel):
			m.journal.ToggleFeeling(m.currentID)
			m.refreshDetail()
			return m, nil
		case key.Matches(msg, m.keys.Reply):
			m.replyForm = &ReplyFormModel{}
			m.form = NewReplyForm(m.replyForm)
			m.previousState = m.state
			m.state = constants.StateReply
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Chat):
			return m.startChat()
		case key.Matches(msg, m.keys.Settings):
			m.previousState = m.state
			m.state = constants.StateSettings
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Scroll(msg)
	return m, cmd
}

// startChat opens a conversation on a post without one, or focuses the
// input to continue an existing one.
func (m Model) startChat() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	post, ok := m.journal.GetPost(m.currentID)
	if !ok {
		return m, nil
	}
	if !post.HasChat() {
		return m.send("")
	}
	m.state = constants.StateChatInput
	return m, m.input.Focus()
}

func (m Model) updateChatInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.input.Blur()
			m.state = constants.StateDetail
			return m, nil
		case key.Matches(msg, m.keys.Send):
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m.send(text)
		}
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send starts an advice request. Input stays disabled until it completes.
func (m Model) send(text string) (tea.Model, tea.Cmd) {
	m.busy = true
	m.pending = text
	m.chatErr = ""
	m.input.Blur()
	m.refreshDetail()
	return m, tea.Batch(requestAdvice(m.journal, m.currentID, text), m.spinner.Tick)
}

func (m Model) handleAdviceDone(msg adviceDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.pending = ""

	var cmd tea.Cmd
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, journal.ErrAccessCodeRequired):
			m.chatErr = msg.err.Error()
			m.openAccessCode()
			cmd = m.form.Init()
		case errors.Is(msg.err, journal.ErrAPIKeyRequired):
			m.chatErr = msg.err.Error()
		default:
			m.chatErr = "Error: " + msg.err.Error()
		}
	} else {
		m.chatErr = ""
	}

	if msg.postID == m.currentID {
		m.refreshDetail()
	}
	if m.state == constants.StateChatInput {
		cmd = m.input.Focus()
	}
	return m, cmd
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.notice = ""
			m.state = m.previousState
			if m.state == constants.StateSettings {
				m.state = constants.StateList
			}
			m.refreshDetail()
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			s := m.journal.Settings()
			m.settingsForm = &SettingsFormModel{Provider: s.Provider, APIKey: s.APIKey, AccessCode: s.AccessCode}
			m.form = NewSettingsForm(m.settingsForm, m.journal.HostedAvailable())
			m.state = constants.StateEditSettings
			return m, m.form.Init()
		case key.Matches(msg, m.keys.AccessCode):
			if !m.journal.HostedAvailable() {
				return m, nil
			}
			m.openAccessCode()
			return m, m.form.Init()
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if !m.completeForm() {
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeForm()
	case huh.StateAborted:
		m.formError = ""
		m.closeForm()
	}
	return m, cmd
}

// completeForm applies the finished form. It returns false to keep the
// form open.
func (m *Model) completeForm() bool {
	switch m.state {
	case constants.StateNewPost:
		post, ok := m.journal.CreatePost(m.postForm.Category, m.postForm.Title, m.postForm.Content)
		if !ok {
			m.formError = "Category, title and content are required."
			return false
		}
		m.formError = ""
		m.refreshList()
		m.notice = "Posted " + render.SanitizeTerminal(post.Title)
	case constants.StateReply:
		if _, ok := m.journal.AddReply(m.currentID, m.replyForm.Content); !ok {
			m.formError = "Memo cannot be empty."
			return false
		}
		m.formError = ""
	case constants.StateEditSettings:
		m.journal.SaveSettings(models.AISettings{
			Provider:   m.settingsForm.Provider,
			APIKey:     m.settingsForm.APIKey,
			AccessCode: m.settingsForm.AccessCode,
		})
		m.notice = "Settings saved."
	case constants.StateAccessCode:
		if m.journal.SetAccessCode(m.accessForm.Code) {
			m.notice = "Access code saved."
			m.chatErr = ""
		}
	}
	return true
}

func (m *Model) closeForm() {
	m.form = nil
	switch m.state {
	case constants.StateEditSettings:
		m.state = constants.StateSettings
	case constants.StateReply:
		m.state = constants.StateDetail
	default:
		m.state = m.previousState
	}
	if m.state == constants.StateChatInput {
		m.state = constants.StateDetail
	}
	m.refreshList()
	if m.currentID != "" {
		m.refreshDetail()
	}
}
