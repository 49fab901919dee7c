package render

import (
	"html/template"
	"io"
	"time"
)

var pageTemplate = template.Must(template.New("journal").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>omayami journal</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; color: #333; }
.post-card { border: 1px solid #e4dcd3; border-radius: 12px; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
.category-badge { background: #f3ece4; border-radius: 999px; padding: 0.1rem 0.6rem; font-size: 0.85rem; }
.post-date, .meta { color: #888; font-size: 0.85rem; }
.chat-msg { border-radius: 10px; padding: 0.5rem 0.75rem; margin: 0.4rem 0; white-space: pre-wrap; }
.chat-msg-user { background: #e8f1fb; margin-left: 3rem; }
.chat-msg-assistant { background: #f4f4f4; margin-right: 3rem; }
.reply-item { border-left: 3px solid #d9cfc4; padding-left: 0.75rem; margin: 0.5rem 0; white-space: pre-wrap; }
.feeling-badge.active { color: #2e8b57; }
</style>
</head>
<body>
<h1>omayami</h1>
<p class="meta">Exported {{.Exported}}{{if .Filter}} · {{.Filter}}{{end}}</p>
{{if .Empty}}<p class="empty-state">No posts yet.</p>{{end}}
{{range .Posts}}
<article class="post-card" id="post-{{.ID}}">
  <div class="post-card-header">
    <span class="category-badge category-{{.Category}}">{{.CategoryLabel}}</span>
    <span class="post-date">{{.Date}}</span>
  </div>
  <h2 class="post-title">{{.Title}}</h2>
  <div class="detail-content">{{.Content}}</div>
  <p class="feeling-badge{{if .FeelingBetter}} active{{end}}">{{if .FeelingBetter}}{{.FeelingLabel}}{{else}}—{{end}}</p>
  {{if .Turns}}<section class="chat-container">
  {{range .Turns}}<div class="chat-msg chat-msg-{{.Role}}"><div class="chat-msg-content">{{.Content}}</div><div class="post-date">{{.Date}}</div></div>
  {{end}}</section>{{end}}
  {{if .Replies}}<section class="reply-list">
  {{range .Replies}}<div class="reply-item"><div class="reply-content">{{.Content}}</div><div class="post-date">{{.Date}}</div></div>
  {{end}}</section>{{end}}
</article>
{{end}}
</body>
</html>
`))

type page struct {
	Exported string
	Filter   string
	Empty    bool
	Posts    []DetailView
}

// WriteHTML writes a standalone HTML page of the given posts. Every user
// supplied string passes through html/template's contextual escaping.
func WriteHTML(w io.Writer, list ListView, details []DetailView, now time.Time) error {
	filter := ""
	if list.Filter != "" {
		filter = list.Filter.Label()
	}
	return pageTemplate.Execute(w, page{
		Exported: now.Format("Jan 2, 2006 15:04"),
		Filter:   filter,
		Empty:    len(details) == 0,
		Posts:    details,
	})
}
