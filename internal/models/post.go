package models

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/omayami/internal/constants"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reply is a free-text note the author appends to their own post.
type Reply struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// ChatTurn is one message of the advice conversation attached to a post.
type ChatTurn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LegacyResponse is the single-shot advice format older records carry.
type LegacyResponse struct {
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type Post struct {
	ID            string          `json:"id"`
	Category      Category        `json:"category"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	CreatedAt     string          `json:"createdAt"`
	FeelingBetter bool            `json:"feelingBetter"`
	Replies       []Reply         `json:"replies"`
	AIChat        []ChatTurn      `json:"aiChat,omitzero"`
	AIResponse    *LegacyResponse `json:"aiResponse,omitempty"`
}

// NewID returns a time-ordered identifier. Uniqueness against existing
// records is not checked.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Timestamp formats t the way createdAt fields are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// ParseTimestamp parses a stored createdAt value.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// NewPost builds a post with a fresh id and empty thread.
func NewPost(category Category, title, content string, now time.Time) Post {
	return Post{
		ID:        NewID(),
		Category:  category,
		Title:     title,
		Content:   content,
		CreatedAt: Timestamp(now),
		Replies:   []Reply{},
	}
}

// Created returns the parsed creation time, or the zero time if the stored
// value is malformed.
func (p Post) Created() time.Time {
	t, err := ParseTimestamp(p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HasChat reports whether the post carries any advice, current or legacy.
func (p Post) HasChat() bool {
	return len(p.AIChat) > 0 || p.AIResponse != nil
}

func (p *Post) ToggleFeeling() {
	p.FeelingBetter = !p.FeelingBetter
}

// AddReply appends a reply after every existing one.
func (p *Post) AddReply(content string, now time.Time) Reply {
	r := Reply{ID: NewID(), Content: content, CreatedAt: Timestamp(now)}
	p.Replies = append(p.Replies, r)
	return r
}

// AppendTurn appends one message to the advice conversation.
func (p *Post) AppendTurn(role Role, content string, now time.Time) {
	p.AIChat = append(p.AIChat, ChatTurn{Role: role, Content: content, CreatedAt: Timestamp(now)})
}

// NormalizeLegacy folds a single-shot aiResponse into the conversation as its
// opening assistant turn and clears the legacy field. It reports whether the
// post changed.
func (p *Post) NormalizeLegacy() bool {
	if p.AIResponse == nil {
		return false
	}
	p.AIChat = []ChatTurn{{
		Role:      RoleAssistant,
		Content:   p.AIResponse.Content,
		CreatedAt: p.AIResponse.CreatedAt,
	}}
	p.AIResponse = nil
	return true
}

// NormalizeAll applies NormalizeLegacy to every post and fills nil reply
// slices. It reports whether any post changed.
func NormalizeAll(posts []Post) bool {
	changed := false
	for i := range posts {
		if posts[i].NormalizeLegacy() {
			changed = true
		}
		if posts[i].Replies == nil {
			posts[i].Replies = []Reply{}
		}
	}
	return changed
}

// SortNewestFirst orders posts by createdAt descending. Posts with equal
// timestamps keep their relative order.
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Created().After(posts[j].Created())
	})
}

// FilterByCategory returns the posts in category c. An empty category
// returns the input unchanged.
func FilterByCategory(posts []Post, c Category) []Post {
	if c == "" {
		return posts
	}
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// IndexOf returns the position of the post with the given id, or -1.
func IndexOf(posts []Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
