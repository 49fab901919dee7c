package postlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/omayami/internal/render"
)

type Item struct {
	Card render.PostCard
}

func (i Item) Title() string {
	return render.SanitizeTerminal(i.Card.Title)
}

func (i Item) Description() string {
	meta := []string{i.Card.CategoryLabel, i.Card.Date, fmt.Sprintf("%d memos", i.Card.ReplyCount)}
	if i.Card.HasChat {
		meta = append(meta, render.ChatBadge)
	}
	if i.Card.FeelingBetter {
		meta = append(meta, render.FeelingBetterLabel)
	}
	return strings.Join(meta, " · ") + "\n" + render.SanitizeTerminal(i.Card.Preview)
}

func (i Item) FilterValue() string { return i.Card.Title }

type Model struct {
	list  list.Model
	empty bool
}

func New(width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(3)

	l := list.New(nil, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{list: l, empty: true}
}

// SetView replaces the items, keeping the cursor on the same post when it
// is still listed.
func (m *Model) SetView(v render.ListView) {
	selected, _ := m.SelectedID()

	items := make([]list.Item, len(v.Cards))
	cursor := 0
	for i, c := range v.Cards {
		items[i] = Item{Card: c}
		if c.ID == selected {
			cursor = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
	m.empty = v.Empty
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// SelectedID returns the post under the cursor.
func (m Model) SelectedID() (string, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return "", false
	}
	return item.Card.ID, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.empty {
		return "No posts yet. Press n to write one."
	}
	return m.list.View()
}
