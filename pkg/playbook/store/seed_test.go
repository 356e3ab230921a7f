package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/playbook/pkg/playbook"
	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/store"
	"github.com/cognicore/playbook/pkg/playbook/store/memstore"
)

const roadmap = `Day 1
- Upload your first video (2 hours)
- Respond to comments

Goals:
- Reach 100 subscribers

Pro Tip: Keep your intro under ten seconds so viewers stay.
`

func result(t *testing.T) *playbook.Result {
	t.Helper()
	res, err := playbook.New(playbook.Options{}).ParseAll(context.Background(), []ingest.Doc{
		{Name: "youtube_tasks.md", Kind: ingest.KindRoadmap, Scope: ingest.ScopeYouTube, Text: roadmap},
	})
	require.NoError(t, err)
	return res
}

func TestSeedReplacesContents(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, st.InsertTask(ctx, records.Task{ID: "task_youtube_99"}))

	res := result(t)
	report, err := store.Seed(ctx, st, res, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Inserted[records.KindTask])
	assert.Equal(t, 1, report.Inserted[records.KindMilestone])
	assert.Equal(t, 1, report.Inserted[records.KindTip])
	assert.Equal(t, 4, report.Total())

	_, ok, err := st.GetTask(ctx, "task_youtube_99")
	require.NoError(t, err)
	assert.False(t, ok)

	// Seeding the same result again is idempotent.
	_, err = store.Seed(ctx, st, res, nil)
	require.NoError(t, err)
	n, err := st.Count(ctx, records.KindTask)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSeedContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	st.FailOn["task_youtube_1"] = errors.New("disk full")

	core, logs := observer.New(zap.WarnLevel)
	report, err := store.Seed(ctx, st, result(t), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed[records.KindTask])
	assert.Equal(t, 1, report.Inserted[records.KindTask])
	assert.Equal(t, 1, report.Inserted[records.KindTip])

	entries := logs.FilterMessage("insert failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "task_youtube_1", entries[0].ContextMap()["id"])
}
