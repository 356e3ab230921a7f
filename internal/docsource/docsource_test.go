package docsource

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInference(t *testing.T) {
	tests := []struct {
		name  string
		kind  ingest.Kind
		scope string
	}{
		{"youtube_tasks.md", ingest.KindRoadmap, ingest.ScopeYouTube},
		{"TikTok-Roadmap.txt", ingest.KindRoadmap, ingest.ScopeTikTok},
		{"twitch_templates.md", ingest.KindTemplates, ingest.ScopeTwitch},
		{"strategy_guide.html", ingest.KindGuide, ingest.ScopeAll},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, InferKind(tt.name), tt.name)
		assert.Equal(t, tt.scope, InferScope(tt.name), tt.name)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "youtube_tasks.md", "\ufeffDay 1\r\n- Upload\r\n")

	doc, err := LoadFile(path, Options{Niche: "gaming"})
	require.NoError(t, err)
	assert.Equal(t, "youtube_tasks.md", doc.Name)
	assert.Equal(t, ingest.KindRoadmap, doc.Kind)
	assert.Equal(t, ingest.ScopeYouTube, doc.Scope)
	assert.Equal(t, "gaming", doc.Niche)
	assert.Equal(t, "Day 1\n- Upload\n", doc.Text)
	assert.NoError(t, doc.Validate())

	doc, err = LoadFile(path, Options{Kind: ingest.KindGuide, Scope: ingest.ScopeAll})
	require.NoError(t, err)
	assert.Equal(t, ingest.KindGuide, doc.Kind)
	assert.Equal(t, ingest.ScopeAll, doc.Scope)
}

func TestLoadFileUnreadable(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	require.Error(t, err)

	var inErr *ingest.InputError
	require.True(t, errors.As(err, &inErr))
	assert.ErrorIs(t, err, internalerr.ErrUnreadable)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_guide.md", "Tip: something useful to remember")
	writeFile(t, dir, "a_youtube_tasks.md", "Day 1\n- Upload")
	writeFile(t, dir, "notes.pdf", "binary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	docs, err := Load(dir, Options{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a_youtube_tasks.md", docs[0].Name)
	assert.Equal(t, "b_guide.md", docs[1].Name)

	_, err = Load(filepath.Join(dir, "nope"), Options{})
	assert.ErrorIs(t, err, internalerr.ErrUnreadable)

	_, err = Load(filepath.Join(dir, "nested"), Options{})
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestLoadDirectorySkipsBadEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_youtube_tasks.md", "Day 1\n- Upload")
	bad := writeFile(t, dir, "b_bundle.jsonl", "{not json\n")
	writeFile(t, dir, "c_guide.md", "Tip: something useful to remember")

	core, logs := observer.New(zap.WarnLevel)
	docs, err := Load(dir, Options{Logger: zap.New(core)})

	require.Len(t, docs, 2)
	assert.Equal(t, "a_youtube_tasks.md", docs[0].Name)
	assert.Equal(t, "c_guide.md", docs[1].Name)

	require.Error(t, err)
	assert.ErrorIs(t, err, internalerr.ErrUnreadable)
	assert.NotErrorIs(t, err, internalerr.ErrNotFound)
	var inErr *ingest.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, bad, inErr.Name)
	assert.Equal(t, 1, logs.FilterMessage("skipping unreadable document").Len())
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bundle.jsonl", strings.Join([]string{
		`{"name":"twitch_tasks.md","text":"Day 1\n- Go live"}`,
		`not json`,
		``,
		`{"kind":"guide","scope":"youtube","niche":"tech","text":"Note: keep it short and clear"}`,
	}, "\n"))

	core, logs := observer.New(zap.WarnLevel)
	docs, err := Load(path, Options{Logger: zap.New(core)})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, ingest.KindRoadmap, docs[0].Kind)
	assert.Equal(t, ingest.ScopeTwitch, docs[0].Scope)

	assert.Equal(t, "bundle.jsonl#4", docs[1].Name)
	assert.Equal(t, ingest.KindGuide, docs[1].Kind)
	assert.Equal(t, ingest.ScopeYouTube, docs[1].Scope)
	assert.Equal(t, "tech", docs[1].Niche)

	assert.Equal(t, 1, logs.FilterMessage("skipping malformed bundle line").Len())

	empty := writeFile(t, dir, "empty.jsonl", "garbage\n")
	_, err = LoadJSONL(empty, Options{})
	assert.ErrorIs(t, err, internalerr.ErrUnreadable)
}

func TestHTMLToText(t *testing.T) {
	const page = `<html><head><title>ignored</title><style>p { color: red }</style></head><body>
<h2>Week 1</h2>
<p>Day 1</p>
<ul><li>Upload your first video (2 hours)</li><li>Reply to comments<ul><li>Be kind</li></ul></li></ul>
<script>var x = 1;</script>
<ol><li>First</li><li>Second</li></ol>
</body></html>`

	text, err := HTMLToText(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "## Week 1\n\nDay 1\n- Upload your first video (2 hours)\n- Reply to comments\n  - Be kind\n1. First\n2. Second\n", text)

	sections := ingest.Segment(text)
	require.Len(t, sections, 2)
	assert.Equal(t, ingest.MarkerDay, sections[1].Marker)
}

func TestLoadHTMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiktok_roadmap.html", "<h3>Day 2</h3><ul><li>Post a duet</li></ul>")

	doc, err := LoadFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, ingest.ScopeTikTok, doc.Scope)
	assert.Equal(t, "### Day 2\n\n- Post a duet\n", doc.Text)
}
