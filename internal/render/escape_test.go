package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/omayami/internal/models"
)

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<script>alert("x")</script> & more`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("script tag survived escaping: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "&amp;") {
		t.Errorf("unexpected escaping: %q", got)
	}
}

func TestSanitizeTerminal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "keeps newlines and tabs", in: "a\n\tb", want: "a\n\tb"},
		{name: "strips colour", in: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "strips osc title", in: "\x1b]0;pwned\x07text", want: "text"},
		{name: "strips bell and nul", in: "a\x07b\x00c", want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminal(tt.in); got != tt.want {
				t.Errorf("SanitizeTerminal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteHTMLEscapesUserText(t *testing.T) {
	p := models.NewPost(models.CategoryOther, "<script>alert(1)</script>", "<b>bold</b>", now)
	p.AppendTurn(models.RoleAssistant, "<img src=x onerror=alert(1)>", now)
	p.AddReply("</div><script>", now)

	var buf bytes.Buffer
	list := BuildList([]models.Post{p}, "", now)
	if err := WriteHTML(&buf, list, []DetailView{BuildDetail(p, now)}, now); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	for _, raw := range []string{"<script>", "<b>bold</b>", "<img src=x"} {
		if strings.Contains(out, raw) {
			t.Errorf("output contains unescaped %q", raw)
		}
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("title should appear as literal text")
	}
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, ListView{Filter: models.CategoryLove, Empty: true}, nil, time.Now()); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No posts yet.") || !strings.Contains(buf.String(), "Love") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
