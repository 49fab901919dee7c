package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/omayami/internal/models"
)

var now = time.Date(2025, 5, 20, 18, 0, 0, 0, time.UTC)

func TestFormatRelative(t *testing.T) {
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "seconds", ago: 30 * time.Second, want: "just now"},
		{name: "future", ago: -time.Minute, want: "just now"},
		{name: "one minute", ago: time.Minute, want: "1 min ago"},
		{name: "minutes", ago: 59 * time.Minute, want: "59 min ago"},
		{name: "one hour", ago: time.Hour, want: "1 hour ago"},
		{name: "hours", ago: 23*time.Hour + 59*time.Minute, want: "23 hours ago"},
		{name: "one day", ago: 24 * time.Hour, want: "1 day ago"},
		{name: "days", ago: 6 * 24 * time.Hour, want: "6 days ago"},
		{name: "calendar date", ago: 7 * 24 * time.Hour, want: "May 13, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelative(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("FormatRelative(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	short := strings.Repeat("a", 80)
	if got := Preview(short); got != short {
		t.Errorf("80 runes should not be truncated, got %q", got)
	}

	long := strings.Repeat("b", 81)
	if got := Preview(long); got != strings.Repeat("b", 80)+"..." {
		t.Errorf("Preview(81 runes) = %q", got)
	}

	multibyte := strings.Repeat("悩", 100)
	got := Preview(multibyte)
	if []rune(got)[79] != '悩' || !strings.HasSuffix(got, "...") || len([]rune(got)) != 83 {
		t.Errorf("multibyte preview cut incorrectly: %q", got)
	}
}

func post(id string, cat models.Category, created time.Time) models.Post {
	p := models.NewPost(cat, "title "+id, "content "+id, created)
	p.ID = id
	return p
}

func TestBuildListSortsNewestFirst(t *testing.T) {
	posts := []models.Post{
		post("old", models.CategoryWork, now.Add(-48*time.Hour)),
		post("new", models.CategoryWork, now.Add(-time.Minute)),
		post("mid", models.CategoryLove, now.Add(-3*time.Hour)),
	}

	view := BuildList(posts, "", now)
	if view.Empty {
		t.Fatal("list should not be empty")
	}
	order := []string{view.Cards[0].ID, view.Cards[1].ID, view.Cards[2].ID}
	if strings.Join(order, ",") != "new,mid,old" {
		t.Errorf("order = %v", order)
	}
	if posts[0].ID != "old" {
		t.Error("BuildList must not reorder its input")
	}
	if view.Cards[1].Date != "3 hours ago" || view.Cards[1].CategoryLabel != "Love" {
		t.Errorf("card = %#v", view.Cards[1])
	}
}

func TestBuildListFilterAndEmpty(t *testing.T) {
	posts := []models.Post{post("a", models.CategoryWork, now)}

	if view := BuildList(posts, models.CategoryMoney, now); !view.Empty || len(view.Cards) != 0 {
		t.Errorf("filtered list should be empty: %#v", view)
	}
	if view := BuildList(nil, "", now); !view.Empty {
		t.Error("nil input should render empty state")
	}
}

func TestBuildListIndicators(t *testing.T) {
	p := post("a", models.CategoryHealth, now)
	p.AddReply("r1", now)
	p.AddReply("r2", now)
	p.FeelingBetter = true
	legacy := post("b", models.CategoryHealth, now.Add(-time.Second))
	legacy.AIResponse = &models.LegacyResponse{Content: "x"}

	view := BuildList([]models.Post{p, legacy}, "", now)
	if c := view.Cards[0]; c.ReplyCount != 2 || c.HasChat || !c.FeelingBetter {
		t.Errorf("card a = %#v", c)
	}
	if !view.Cards[1].HasChat {
		t.Error("legacy advice should count as a chat")
	}
}

func TestBuildDetail(t *testing.T) {
	p := post("a", models.CategoryMoney, now.Add(-2*time.Minute))
	p.AppendTurn(models.RoleUser, "help", now.Add(-time.Minute))
	p.AppendTurn(models.RoleAssistant, "sure", now)
	p.AIChat = append(p.AIChat, models.ChatTurn{Role: models.RoleAssistant, Content: "undated"})
	p.AddReply("note", now)

	view := BuildDetail(p, now)
	if !view.HasChat || len(view.Turns) != 3 {
		t.Fatalf("turns = %#v", view.Turns)
	}
	if view.Turns[0].Role != models.RoleUser || view.Turns[0].Date != "1 min ago" {
		t.Errorf("turn 0 = %#v", view.Turns[0])
	}
	if view.Turns[2].Date != "" {
		t.Errorf("undated turn should have no date, got %q", view.Turns[2].Date)
	}
	if len(view.Replies) != 1 || view.Replies[0].Content != "note" {
		t.Errorf("replies = %#v", view.Replies)
	}
	if view.FeelingLabel != FeelingPromptLabel {
		t.Errorf("FeelingLabel = %q", view.FeelingLabel)
	}

	p.ToggleFeeling()
	if BuildDetail(p, now).FeelingLabel != FeelingBetterLabel {
		t.Error("label should change once feeling better")
	}
}
