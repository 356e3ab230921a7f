package playbook

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/internalerr"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

const youtubeRoadmap = `# YouTube Creator Roadmap

## Phase 1: Launch

### Week 1

Day 1
- Upload your first video (2 hours)
- Respond to every comment (15 minutes)

Day 2-3
- Set up channel analytics

Goals:
- Reach 100 subscribers
- Complete your channel branding

Pro Tip: Consistency beats intensity when you are starting out.
`

const creatorTemplates = `# Script Templates

## Hooks
1. **Question Hook**: "Did you know [fact]?"
2. **Outro**: Thanks for watching, see you next time
`

const strategyGuide = `# Growth Guide

By the end of the month:
- Hit 1,000 followers across platforms

Important: Reply to comments within the first hour to lift engagement.
`

func testDocs() []ingest.Doc {
	return []ingest.Doc{
		{Name: "youtube_tasks.md", Kind: ingest.KindRoadmap, Scope: ingest.ScopeYouTube, Niche: "gaming", Text: youtubeRoadmap},
		{Name: "creator_tasks.md", Kind: ingest.KindRoadmap, Scope: ingest.ScopeAll, Text: "Day 1\n- Post a short video\n"},
		{Name: "templates.md", Kind: ingest.KindTemplates, Scope: ingest.ScopeYouTube, Text: creatorTemplates},
		{Name: "strategy.md", Kind: ingest.KindGuide, Scope: ingest.ScopeAll, Text: strategyGuide},
	}
}

func TestParseAll(t *testing.T) {
	p := New(Options{})
	res, err := p.ParseAll(context.Background(), testDocs())
	require.NoError(t, err)

	// 3 youtube tasks + 3 niche variants of the cross-platform task.
	require.Len(t, res.Tasks, 6)
	require.Len(t, res.Milestones, 3)
	// Two numbered templates plus the quoted hook under "Hooks".
	require.Len(t, res.Templates, 3)
	require.Len(t, res.Tips, 2)
	assert.Equal(t, 14, res.Len())
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, "task_youtube_1", res.Tasks[0].ID)
	assert.Equal(t, "task_youtube_6", res.Tasks[5].ID)
	for i, task := range res.Tasks {
		assert.Equal(t, i, task.OrderIndex)
		assert.NoError(t, task.Validate())
	}

	assert.Equal(t, "milestone_youtube_1", res.Milestones[0].ID)
	assert.Equal(t, "milestone_all_3", res.Milestones[2].ID)
	assert.Nil(t, res.Milestones[2].Platform)

	assert.Equal(t, "template_youtube_1", res.Templates[0].ID)
	assert.Equal(t, "tip_youtube_1", res.Tips[0].ID)
	assert.Equal(t, "tip_all_2", res.Tips[1].ID)

	for _, m := range res.Milestones {
		assert.NoError(t, m.Validate())
	}
	for _, tpl := range res.Templates {
		assert.NoError(t, tpl.Validate())
	}
	for _, tip := range res.Tips {
		assert.NoError(t, tip.Validate())
	}
}

func TestIDsUniquePerKind(t *testing.T) {
	res, err := New(Options{}).ParseAll(context.Background(), testDocs())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, task := range res.Tasks {
		assert.False(t, seen[task.ID], task.ID)
		seen[task.ID] = true
	}
	for _, m := range res.Milestones {
		assert.False(t, seen[m.ID], m.ID)
		seen[m.ID] = true
	}
}

func TestOutputIndependentOfConcurrency(t *testing.T) {
	ctx := context.Background()
	var docs []ingest.Doc
	for i := 0; i < 8; i++ {
		for _, d := range testDocs() {
			d.Name = fmt.Sprintf("%d_%s", i, d.Name)
			docs = append(docs, d)
		}
	}

	serial, err := New(Options{Concurrency: 1}).ParseAll(ctx, docs)
	require.NoError(t, err)
	parallel, err := New(Options{Concurrency: 8}).ParseAll(ctx, docs)
	require.NoError(t, err)

	// Run IDs differ between runs; everything else must match.
	serial.RunID, parallel.RunID = "", ""
	assert.Equal(t, serial, parallel)
}

func TestKindOverride(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	docs := []ingest.Doc{{Name: "notes.md", Kind: ingest.KindGuide, Scope: ingest.ScopeYouTube, Text: youtubeRoadmap}}

	guide, err := p.ParseGuides(ctx, docs)
	require.NoError(t, err)
	assert.Empty(t, guide.Tasks)
	assert.Len(t, guide.Milestones, 2)

	roadmap, err := p.ParseRoadmaps(ctx, docs)
	require.NoError(t, err)
	assert.Len(t, roadmap.Tasks, 3)

	tpls, err := p.ParseTemplates(ctx, []ingest.Doc{{Name: "t.md", Scope: ingest.ScopeTikTok, Text: creatorTemplates}})
	require.NoError(t, err)
	assert.Len(t, tpls.Templates, 3)
	assert.Equal(t, "template_tiktok_1", tpls.Templates[0].ID)
	assert.Empty(t, tpls.Milestones)

	// The caller's slice is left untouched.
	assert.Equal(t, ingest.KindGuide, docs[0].Kind)
}

func TestInvalidDocumentSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := New(Options{Logger: zap.New(core)})

	docs := testDocs()
	docs = append(docs, ingest.Doc{Name: "bad.md", Kind: ingest.KindRoadmap, Scope: "myspace", Text: "Day 1\n- x"})

	res, err := p.ParseAll(context.Background(), docs)
	require.Error(t, err)

	var inErr *ingest.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "bad.md", inErr.Name)

	require.NotNil(t, res)
	assert.Len(t, res.Tasks, 6)
	assert.Equal(t, 1, logs.FilterMessage("skipping document").Len())
}

func TestZeroPhaseAndWeekMarkers(t *testing.T) {
	doc := ingest.Doc{
		Name:  "youtube_tasks.md",
		Kind:  ingest.KindRoadmap,
		Scope: ingest.ScopeYouTube,
		Text:  "## Phase 0: Prep\n### Week 0\nDay 1\n- Upload your first video\n",
	}

	res, err := New(Options{}).ParseAll(context.Background(), []ingest.Doc{doc})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)

	task := res.Tasks[0]
	assert.Equal(t, 1, task.Phase)
	assert.Equal(t, 1, task.Week)
	assert.Equal(t, "youtube_phase1_week1", task.RoadmapID)
	assert.NoError(t, task.Validate())
}

func TestInvalidRecordsDropped(t *testing.T) {
	res, err := New(Options{}).ParseAll(context.Background(), testDocs()[:1])
	require.NoError(t, err)
	valid := res.Tasks[0]
	valid.ID = ""

	broken := valid
	broken.Title = ""

	core, logs := observer.New(zap.WarnLevel)
	p := New(Options{Logger: zap.New(core)})
	out, invalid := p.assemble([]*draft{{name: "youtube_tasks.md", tasks: []records.Task{broken, valid}}})

	require.Len(t, invalid, 1)
	assert.ErrorIs(t, invalid[0], internalerr.ErrInvalidInput)
	assert.Contains(t, invalid[0].Error(), "youtube_tasks.md")

	require.Len(t, out.Tasks, 1)
	assert.Equal(t, valid.Title, out.Tasks[0].Title)
	assert.Equal(t, 0, out.Tasks[0].OrderIndex)
	assert.Equal(t, 1, logs.FilterMessage("dropping invalid record").Len())
}

func TestEmptyInput(t *testing.T) {
	res, err := New(Options{}).ParseAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
	assert.NotNil(t, res.Tasks)
	assert.NotNil(t, res.Tips)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).ParseAll(ctx, testDocs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSynthesizedProvenance(t *testing.T) {
	res, err := New(Options{}).ParseAll(context.Background(), testDocs()[:1])
	require.NoError(t, err)

	upload := res.Tasks[0]
	assert.Equal(t, 120, upload.TimeEstimate)
	assert.False(t, upload.IsSynthesized(records.FieldTimeEstimate))
	assert.True(t, upload.IsSynthesized(records.FieldSuccessMetrics))

	analytics := res.Tasks[2]
	assert.Equal(t, records.CategoryTechnical, analytics.Category)
	assert.True(t, analytics.IsSynthesized(records.FieldTimeEstimate))
}
