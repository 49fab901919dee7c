package storage

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func samplePosts() []models.Post {
	p1 := models.NewPost(models.CategoryWork, "Boss", "Unclear expectations", now)
	p1.AddReply("wrote it down", now.Add(time.Minute))
	p1.AppendTurn(models.RoleUser, "what should I do?", now.Add(2*time.Minute))
	p1.AppendTurn(models.RoleAssistant, "talk to them", now.Add(3*time.Minute))
	p1.FeelingBetter = true

	p2 := models.NewPost(models.CategoryHealth, "Sleep", "Waking at 4am", now.Add(time.Hour))

	p3 := models.NewPost(models.CategoryMoney, "Rent", "Due Friday", now.Add(2*time.Hour))
	p3.AIChat = []models.ChatTurn{}
	return []models.Post{p1, p2, p3}
}

func TestLoadEmpty(t *testing.T) {
	repo := NewPostRepository(NewMemoryKV())
	posts := repo.Load()
	if posts == nil || len(posts) != 0 {
		t.Errorf("Load on empty store = %#v, want empty slice", posts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := NewPostRepository(NewMemoryKV())
	want := samplePosts()

	repo.Save(want)
	got := repo.Load()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\n got: %#v\nwant: %#v", got, want)
	}
	if got[1].AIChat != nil {
		t.Error("absent thread should stay absent")
	}
	if got[2].AIChat == nil {
		t.Error("empty thread should load back as an empty slice")
	}
}

func TestEmptyThreadKeptInJSON(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewPostRepository(kv)
	repo.Save(samplePosts())

	raw, _, err := kv.Get(constants.PostsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var records []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("stored posts are not a JSON array: %v", err)
	}
	if _, ok := records[1]["aiChat"]; ok {
		t.Error("post without a thread should not carry aiChat")
	}
	if got := string(records[2]["aiChat"]); got != "[]" {
		t.Errorf("aiChat = %s, want []", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(constants.PostsKey, "{definitely not an array")

	posts := NewPostRepository(kv).Load()
	if len(posts) != 0 {
		t.Errorf("Load on corrupt data returned %d posts", len(posts))
	}
}

func TestLoadNullArray(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(constants.PostsKey, "null")

	if posts := NewPostRepository(kv).Load(); posts == nil {
		t.Error("Load on null should return an empty slice")
	}
}

func TestSaveFailureKeepsPreviousState(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewPostRepository(kv)
	before := samplePosts()
	repo.Save(before)

	kv.SetErr = errors.New("quota exceeded")
	repo.Save(append(before, models.NewPost(models.CategoryOther, "x", "y", now)))
	kv.SetErr = nil

	if got := repo.Load(); !reflect.DeepEqual(got, before) {
		t.Errorf("failed save changed stored posts: got %d posts", len(got))
	}
}

func TestLoadNormalizesLegacyAdvice(t *testing.T) {
	kv := NewMemoryKV()
	raw := `[{"id":"old","category":"love","title":"t","content":"c","createdAt":"2023-02-01T10:00:00.000Z","replies":[],"feelingBetter":false,"aiResponse":{"content":"be kind to yourself","createdAt":"2023-02-01T10:05:00.000Z"}}]`
	_ = kv.Set(constants.PostsKey, raw)

	posts := NewPostRepository(kv).Load()
	if len(posts) != 1 {
		t.Fatalf("got %d posts", len(posts))
	}
	p := posts[0]
	if p.AIResponse != nil {
		t.Error("legacy field should be cleared on load")
	}
	if len(p.AIChat) != 1 || p.AIChat[0].Role != models.RoleAssistant || p.AIChat[0].Content != "be kind to yourself" {
		t.Errorf("unexpected chat %#v", p.AIChat)
	}

	stored, _, _ := kv.Get(constants.PostsKey)
	var persisted []map[string]any
	if err := json.Unmarshal([]byte(stored), &persisted); err != nil {
		t.Fatal(err)
	}
	if _, ok := persisted[0]["aiResponse"]; ok {
		t.Error("normalized collection should be persisted without aiResponse")
	}
}

func TestLoadAcceptsBrowserRecords(t *testing.T) {
	kv := NewMemoryKV()
	raw := `[{"id":"lq3k9x2abcd","category":"money","title":"Rent","content":"Due soon","createdAt":"2024-04-01T08:00:00.000Z","replies":[{"id":"r1","content":"paid half","createdAt":"2024-04-02T08:00:00.000Z"}],"feelingBetter":true}]`
	_ = kv.Set(constants.PostsKey, raw)

	posts := NewPostRepository(kv).Load()
	if len(posts) != 1 || posts[0].ID != "lq3k9x2abcd" || len(posts[0].Replies) != 1 || !posts[0].FeelingBetter {
		t.Errorf("unexpected posts %#v", posts)
	}
}

func TestPrependAndGet(t *testing.T) {
	repo := NewPostRepository(NewMemoryKV())
	first := models.NewPost(models.CategoryWork, "a", "a", now)
	second := models.NewPost(models.CategoryWork, "b", "b", now)
	repo.Prepend(first)
	repo.Prepend(second)

	posts := repo.Load()
	if len(posts) != 2 || posts[0].ID != second.ID {
		t.Fatalf("Prepend should put the newest first, got %#v", posts)
	}
	if got, ok := repo.Get(first.ID); !ok || got.Title != "a" {
		t.Errorf("Get(%s) = (%#v, %v)", first.ID, got, ok)
	}
	if _, ok := repo.Get("missing"); ok {
		t.Error("Get on missing id should report false")
	}
}

func TestUpdate(t *testing.T) {
	repo := NewPostRepository(NewMemoryKV())
	posts := samplePosts()
	repo.Save(posts)

	updated, ok := repo.Update(posts[1].ID, func(p *models.Post) { p.ToggleFeeling() })
	if !ok {
		t.Fatal("Update reported missing post")
	}
	if !updated.FeelingBetter {
		t.Error("returned post should reflect the mutation")
	}
	if stored, _ := repo.Get(posts[1].ID); !stored.FeelingBetter {
		t.Error("mutation was not persisted")
	}

	called := false
	if _, ok := repo.Update("nope", func(*models.Post) { called = true }); ok || called {
		t.Error("Update on missing id should not run fn")
	}
}
