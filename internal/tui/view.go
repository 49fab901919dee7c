package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDetail, constants.StateChatInput:
		content = m.viewDetail()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateNewPost, constants.StateReply, constants.StateEditSettings:
		content = m.viewForm()
	case constants.StateAccessCode:
		content = m.viewAccessCode()
	default:
		content = m.viewList()
	}

	var status string
	switch {
	case m.formError != "":
		status = errorStyle.Render(m.formError)
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(constants.AppName),
		content,
		status,
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	tabs := []string{}
	options := append([]models.Category{""}, models.Categories...)
	for _, c := range options {
		label := "All"
		if c != "" {
			label = c.Label()
		}
		if c == m.filter {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewList() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.viewTabs(), "", m.postList.View())
}

func (m Model) viewDetail() string {
	parts := []string{m.detail.View()}
	if m.state == constants.StateChatInput {
		parts = append(parts, m.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewSettings() string {
	s := m.journal.Settings()
	var b strings.Builder
	b.WriteString("Settings\n\n")
	fmt.Fprintf(&b, "  Provider:    %s\n", s.Provider.Label())
	switch s.Provider {
	case models.ProviderOpenAI:
		fmt.Fprintf(&b, "  API key:     %s\n", models.MaskedKey(s.APIKey))
	case models.ProviderHosted:
		fmt.Fprintf(&b, "  Access code: %s\n", models.MaskedKey(s.AccessCode))
	}
	if s.NeedsAPIKey() {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(localHint))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}

func (m Model) viewAccessCode() string {
	if m.form == nil {
		return ""
	}
	box := modalStyle.Render(m.form.View())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width-4, m.height-6, lipgloss.Center, lipgloss.Center, box)
}
