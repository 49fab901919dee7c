// Package render turns posts into view models and renders them for the
// terminal and for static HTML. Nothing here touches storage.
package render

import (
	"fmt"
	"time"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

const (
	FeelingBetterLabel = "✓ Feeling a bit better"
	FeelingPromptLabel = "💚 Mark when you feel a bit better"
	ChatBadge          = "🤖 Chat"
)

// PostCard is the summary of a post shown in the list.
type PostCard struct {
	ID            string
	Category      models.Category
	CategoryLabel string
	Date          string
	Title         string
	Preview       string
	ReplyCount    int
	HasChat       bool
	FeelingBetter bool
}

// ListView is the rendered post list. Empty is set when no card survives
// the filter.
type ListView struct {
	Filter models.Category
	Cards  []PostCard
	Empty  bool
}

type TurnView struct {
	Role    models.Role
	Content string
	Date    string
}

type ReplyView struct {
	Content string
	Date    string
}

// DetailView is everything the detail screen shows for one post.
type DetailView struct {
	ID            string
	Category      models.Category
	CategoryLabel string
	Date          string
	Title         string
	Content       string
	FeelingBetter bool
	FeelingLabel  string
	HasChat       bool
	Turns         []TurnView
	Replies       []ReplyView
}

// BuildList sorts posts newest first, applies the category filter and maps
// each post to a card.
func BuildList(posts []models.Post, filter models.Category, now time.Time) ListView {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	models.SortNewestFirst(sorted)
	sorted = models.FilterByCategory(sorted, filter)

	view := ListView{Filter: filter, Cards: make([]PostCard, 0, len(sorted))}
	for _, p := range sorted {
		view.Cards = append(view.Cards, PostCard{
			ID:            p.ID,
			Category:      p.Category,
			CategoryLabel: p.Category.Label(),
			Date:          formatStamp(p.CreatedAt, now),
			Title:         p.Title,
			Preview:       Preview(p.Content),
			ReplyCount:    len(p.Replies),
			HasChat:       p.HasChat(),
			FeelingBetter: p.FeelingBetter,
		})
	}
	view.Empty = len(view.Cards) == 0
	return view
}

// BuildDetail maps one post to its detail view.
func BuildDetail(p models.Post, now time.Time) DetailView {
	view := DetailView{
		ID:            p.ID,
		Category:      p.Category,
		CategoryLabel: p.Category.Label(),
		Date:          formatStamp(p.CreatedAt, now),
		Title:         p.Title,
		Content:       p.Content,
		FeelingBetter: p.FeelingBetter,
		FeelingLabel:  FeelingPromptLabel,
		HasChat:       len(p.AIChat) > 0,
		Turns:         make([]TurnView, 0, len(p.AIChat)),
		Replies:       make([]ReplyView, 0, len(p.Replies)),
	}
	if p.FeelingBetter {
		view.FeelingLabel = FeelingBetterLabel
	}
	for _, t := range p.AIChat {
		date := ""
		if t.CreatedAt != "" {
			date = formatStamp(t.CreatedAt, now)
		}
		view.Turns = append(view.Turns, TurnView{Role: t.Role, Content: t.Content, Date: date})
	}
	for _, r := range p.Replies {
		view.Replies = append(view.Replies, ReplyView{Content: r.Content, Date: formatStamp(r.CreatedAt, now)})
	}
	return view
}

// Preview truncates content to the card preview length, counting runes.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.PreviewMaxRunes {
		return content
	}
	return string(runes[:constants.PreviewMaxRunes]) + "..."
}

// FormatRelative renders t relative to now: minutes, hours and days up to a
// week, then a calendar date.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < constants.RecentThreshold:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour") + " ago"
	case diff < constants.WeekThreshold:
		return plural(int(diff/(24*time.Hour)), "day") + " ago"
	}
	return t.In(now.Location()).Format(constants.DateFormat)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func formatStamp(stamp string, now time.Time) string {
	t, err := models.ParseTimestamp(stamp)
	if err != nil {
		return stamp
	}
	return FormatRelative(t, now)
}
