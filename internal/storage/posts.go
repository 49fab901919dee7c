package storage

import (
	"encoding/json"
	"sync"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/models"
)

// PostRepository loads and saves the whole post collection under a single
// key. Reads never fail: absent or corrupt data yields an empty collection.
// Writes that fail are logged and leave the previous value in place.
type PostRepository struct {
	kv KV
	mu sync.Mutex
}

func NewPostRepository(kv KV) *PostRepository {
	return &PostRepository{kv: kv}
}

// Load returns every stored post with legacy advice normalized.
func (r *PostRepository) Load() []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Save overwrites the stored collection.
func (r *PostRepository) Save(posts []models.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.save(posts)
}

// Get returns a single post by id.
func (r *PostRepository) Get(id string) (models.Post, bool) {
	posts := r.Load()
	i := models.IndexOf(posts, id)
	if i < 0 {
		return models.Post{}, false
	}
	return posts[i], true
}

// Prepend stores p ahead of every existing post.
func (r *PostRepository) Prepend(p models.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := r.load()
	r.save(append([]models.Post{p}, posts...))
}

// Update runs fn against the stored post with the given id and saves the
// collection. It returns the post as mutated and false if no such post exists.
func (r *PostRepository) Update(id string, fn func(*models.Post)) (models.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := r.load()
	i := models.IndexOf(posts, id)
	if i < 0 {
		return models.Post{}, false
	}
	fn(&posts[i])
	r.save(posts)
	return posts[i], true
}

func (r *PostRepository) load() []models.Post {
	raw, ok, err := r.kv.Get(constants.PostsKey)
	if err != nil {
		logger.Error("Failed to read posts", "error", err)
		return []models.Post{}
	}
	if !ok || raw == "" {
		return []models.Post{}
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		logger.Error("Failed to parse posts", "error", err)
		return []models.Post{}
	}
	if posts == nil {
		return []models.Post{}
	}

	if models.NormalizeAll(posts) {
		logger.Info("Migrated legacy advice into chat threads")
		r.save(posts)
	}
	return posts
}

func (r *PostRepository) save(posts []models.Post) {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		logger.Error("Failed to encode posts", "error", err)
		return
	}
	if err := r.kv.Set(constants.PostsKey, string(data)); err != nil {
		logger.Error("Failed to save posts", "error", err)
	}
}
