package models

import (
	"testing"
	"time"
)

var baseTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNewPost(t *testing.T) {
	p := NewPost(CategoryWork, "Deadline", "Too many tickets", baseTime)

	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.CreatedAt != "2025-03-14T09:30:00.000Z" {
		t.Errorf("CreatedAt = %q", p.CreatedAt)
	}
	if p.Replies == nil || len(p.Replies) != 0 {
		t.Errorf("Replies = %#v, want empty non-nil slice", p.Replies)
	}
	if p.FeelingBetter {
		t.Error("new post should not be marked feeling better")
	}
	if p.HasChat() {
		t.Error("new post should not have a chat")
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestToggleFeelingTwice(t *testing.T) {
	for _, start := range []bool{false, true} {
		p := Post{FeelingBetter: start}
		p.ToggleFeeling()
		if p.FeelingBetter == start {
			t.Errorf("first toggle from %v did not flip", start)
		}
		p.ToggleFeeling()
		if p.FeelingBetter != start {
			t.Errorf("two toggles from %v ended at %v", start, p.FeelingBetter)
		}
	}
}

func TestAddReplyPreservesOrder(t *testing.T) {
	p := NewPost(CategoryFamily, "t", "c", baseTime)
	p.AddReply("first", baseTime.Add(time.Minute))
	p.AddReply("second", baseTime.Add(2*time.Minute))
	r := p.AddReply("third", baseTime.Add(3*time.Minute))

	want := []string{"first", "second", "third"}
	if len(p.Replies) != len(want) {
		t.Fatalf("got %d replies, want %d", len(p.Replies), len(want))
	}
	for i, w := range want {
		if p.Replies[i].Content != w {
			t.Errorf("reply %d = %q, want %q", i, p.Replies[i].Content, w)
		}
	}
	if p.Replies[2].ID != r.ID {
		t.Error("returned reply should be the last one appended")
	}
}

func TestNormalizeLegacy(t *testing.T) {
	p := Post{
		ID:         "legacy",
		AIResponse: &LegacyResponse{Content: "Take a walk.", CreatedAt: "2024-01-02T03:04:05.000Z"},
	}

	if !p.NormalizeLegacy() {
		t.Fatal("expected legacy response to be migrated")
	}
	if p.AIResponse != nil {
		t.Error("legacy field should be cleared")
	}
	if len(p.AIChat) != 1 {
		t.Fatalf("AIChat len = %d, want 1", len(p.AIChat))
	}
	turn := p.AIChat[0]
	if turn.Role != RoleAssistant || turn.Content != "Take a walk." || turn.CreatedAt != "2024-01-02T03:04:05.000Z" {
		t.Errorf("unexpected migrated turn %#v", turn)
	}
	if p.NormalizeLegacy() {
		t.Error("second normalization should be a no-op")
	}
}

func TestNormalizeAll(t *testing.T) {
	posts := []Post{
		{ID: "a"},
		{ID: "b", AIResponse: &LegacyResponse{Content: "x"}},
	}
	if !NormalizeAll(posts) {
		t.Error("expected a change")
	}
	if posts[0].Replies == nil {
		t.Error("nil replies should be filled")
	}
	if NormalizeAll(posts) {
		t.Error("second pass should report no change")
	}
}

func TestSortNewestFirst(t *testing.T) {
	posts := []Post{
		{ID: "middle", CreatedAt: Timestamp(baseTime)},
		{ID: "oldest", CreatedAt: Timestamp(baseTime.Add(-time.Hour))},
		{ID: "newest", CreatedAt: Timestamp(baseTime.Add(time.Hour))},
		{ID: "broken", CreatedAt: "not a time"},
	}
	SortNewestFirst(posts)

	want := []string{"newest", "middle", "oldest", "broken"}
	for i, id := range want {
		if posts[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, posts[i].ID, id)
		}
	}
}

func TestSortNewestFirstMixedPrecision(t *testing.T) {
	posts := []Post{
		{ID: "seconds", CreatedAt: "2025-03-14T09:30:00Z"},
		{ID: "millis", CreatedAt: "2025-03-14T09:30:00.500Z"},
	}
	SortNewestFirst(posts)
	if posts[0].ID != "millis" {
		t.Errorf("expected millisecond timestamp first, got %s", posts[0].ID)
	}
}

func TestFilterByCategory(t *testing.T) {
	posts := []Post{
		{ID: "1", Category: CategoryWork},
		{ID: "2", Category: CategoryLove},
		{ID: "3", Category: CategoryWork},
	}

	if got := FilterByCategory(posts, ""); len(got) != 3 {
		t.Errorf("empty filter returned %d posts", len(got))
	}
	got := FilterByCategory(posts, CategoryWork)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("work filter = %#v", got)
	}
	if got := FilterByCategory(posts, CategoryMoney); len(got) != 0 {
		t.Errorf("money filter returned %d posts", len(got))
	}
}

func TestIndexOf(t *testing.T) {
	posts := []Post{{ID: "a"}, {ID: "b"}}
	if IndexOf(posts, "b") != 1 {
		t.Error("expected index 1")
	}
	if IndexOf(posts, "zzz") != -1 {
		t.Error("expected -1 for missing id")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "work", want: CategoryWork},
		{in: " Health ", want: CategoryHealth},
		{in: "", want: ""},
		{in: "hobby", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if CategoryOther.Label() != "Other" {
		t.Errorf("label = %q", CategoryOther.Label())
	}
	if Category("mystery").Label() != "mystery" {
		t.Error("unknown category should render raw")
	}
}
