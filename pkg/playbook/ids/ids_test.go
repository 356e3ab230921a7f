package ids

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/playbook/pkg/playbook/records"
)

func TestAssignerCountersPerKind(t *testing.T) {
	a := NewAssigner()

	assert.Equal(t, "youtube_task_1", a.Next(records.KindTask, "youtube"))
	assert.Equal(t, "tiktok_task_2", a.Next(records.KindTask, "tiktok"))
	assert.Equal(t, "all_milestone_1", a.Next(records.KindMilestone, ""))
	assert.Equal(t, "youtube_tip_1", a.Next(records.KindTip, "youtube"))
	assert.Equal(t, "youtube_task_3", a.Next(records.KindTask, "youtube"))

	assert.Equal(t, 3, a.Count(records.KindTask))
	assert.Equal(t, 0, a.Count(records.KindTemplate))
}

func TestAssignersAreIndependent(t *testing.T) {
	a := NewAssigner()
	b := NewAssigner()

	a.Next(records.KindTask, "youtube")
	a.Next(records.KindTask, "youtube")

	assert.Equal(t, "youtube_task_1", b.Next(records.KindTask, "youtube"))
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestRunIDIsULID(t *testing.T) {
	_, err := ulid.Parse(NewAssigner().RunID())
	require.NoError(t, err)
}

func TestUniqueWithinRun(t *testing.T) {
	a := NewAssigner()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		for _, kind := range records.AllKinds {
			id := a.Next(kind, "twitch")
			require.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}

func TestRoadmapID(t *testing.T) {
	assert.Equal(t, "youtube_phase2_week3", RoadmapID("youtube", 2, 3))
	assert.Equal(t, "all_phase1_week1", RoadmapID("", 1, 1))
}
