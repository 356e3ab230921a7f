package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/playbook/pkg/playbook/config"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

func TestTimeEstimate(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"Upload your first video (2 hours)", 120, true},
		{"Reply to comments (45 minutes)", 45, true},
		{"Plan the week (1.5 hrs)", 90, true},
		{"Edit the intro (30 mins)", 30, true},
		{"Write a script", DefaultTimeEstimate, false},
		{"Record (0 hours)", DefaultTimeEstimate, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := TimeEstimate(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Upload your first video", Title("Upload your first video (2 hours)", 60))
	assert.Equal(t, "Film the intro", Title("(30 minutes) Film the intro. Keep it short.", 60))
	assert.Equal(t, "Use v1.2 settings", Title("Use v1.2 settings", 60))
	assert.Equal(t, "Set up OBS", Title("**Set up OBS**", 60))

	long := Title(strings.Repeat("word ", 30), 60)
	assert.LessOrEqual(t, len([]rune(long)), 60)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestCategoryPrecedence(t *testing.T) {
	tests := []struct {
		text   string
		want   records.Category
		wantOK bool
	}{
		{"Upload the video, then analyze retention", records.CategoryContent, true},
		{"Install OBS and configure scenes", records.CategoryTechnical, true},
		{"Respond to every comment", records.CategoryCommunity, true},
		{"Analyze last week's metrics", records.CategoryAnalytics, true},
		{"Pitch a sponsor for revenue", records.CategoryMonetization, true},
		{"Think about your brand", records.CategoryContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Category(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCategoryRuleOrder(t *testing.T) {
	var names []string
	for _, r := range CategoryRules.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"content", "technical", "community", "analytics", "monetization"}, names)
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		phase, week int
		want        records.Difficulty
	}{
		{1, 1, records.Beginner},
		{1, 2, records.Beginner},
		{1, 3, records.Intermediate},
		{2, 1, records.Intermediate},
		{2, 3, records.Advanced},
		{3, 1, records.Advanced},
		{4, 9, records.Advanced},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Difficulty(tt.phase, tt.week), "phase %d week %d", tt.phase, tt.week)
	}
}

func TestInstructions(t *testing.T) {
	assert.Equal(t, uploadChecklist, Instructions("Upload your first video"))
	assert.Equal(t, engageChecklist, Instructions("Engage with viewers"))
	assert.Equal(t, analyzeChecklist, Instructions("Analyze your retention graph"))
	assert.Equal(t, genericChecklist, Instructions("Brainstorm ten ideas"))

	for _, list := range [][]string{uploadChecklist, engageChecklist, analyzeChecklist, genericChecklist} {
		assert.Len(t, list, 5)
	}

	steps := Instructions("upload")
	steps[0] = "changed"
	assert.NotEqual(t, "changed", uploadChecklist[0])
}

func TestPlatformSpecific(t *testing.T) {
	cat := config.Default()

	ps := PlatformSpecific(cat, "youtube", "Tip: reply within an hour. Avoid: buying subscribers.")
	assert.Len(t, ps.Tips, 4)
	assert.Equal(t, cat.Platform("youtube").Tips, ps.Tips[:3])
	assert.Equal(t, "reply within an hour", ps.Tips[3])
	assert.Len(t, ps.BestPractices, MaxListItems)
	assert.Len(t, ps.CommonMistakes, MaxListItems)
}

func TestPlatformSpecificCapsTips(t *testing.T) {
	text := "Tip: one. Tip: two. Tip: three. Tip: four."
	ps := PlatformSpecific(config.Default(), "tiktok", text)
	assert.Len(t, ps.Tips, MaxListItems)
	assert.Equal(t, "two", ps.Tips[4])
}

func TestPlatformSpecificUnknownPlatform(t *testing.T) {
	ps := PlatformSpecific(config.Default(), "vine", "Recommend: keep it short")
	assert.Equal(t, []string{"keep it short"}, ps.Tips)
}

func TestSuccessMetrics(t *testing.T) {
	metrics, ok := SuccessMetrics("Reach 1,000 subscribers and 4000 hours of watch time with a 5% CTR and 10k views")
	require.True(t, ok)

	got := make(map[string]string)
	for _, m := range metrics {
		got[m.Metric] = m.Target
		assert.False(t, m.Synthesized)
	}
	assert.Equal(t, "1,000", got["subscribers"])
	assert.Equal(t, "10k", got["views"])
	assert.Equal(t, "5%", got["ctr"])
	assert.Equal(t, "4000 hours", got["watch_time"])
}

func TestSuccessMetricsFallback(t *testing.T) {
	metrics, ok := SuccessMetrics("Write a script")
	assert.False(t, ok)
	require.Len(t, metrics, 1)
	assert.Equal(t, "completion", metrics[0].Metric)
	assert.Equal(t, "100%", metrics[0].Target)
	assert.True(t, metrics[0].Synthesized)
}

func TestSuccessMetricsFollowers(t *testing.T) {
	metrics, _ := SuccessMetrics("Get to 500 followers, then 500 followers again")
	require.Len(t, metrics, 1)
	assert.Equal(t, "followers", metrics[0].Metric)
}

func TestResources(t *testing.T) {
	res := Resources("Design the thumbnail using Canva and record with OBS Studio. Grab the template from the guide.")
	require.Len(t, res, 4)
	assert.Equal(t, records.Resource{Type: "tool", Title: "Canva"}, res[0])
	assert.Equal(t, "OBS Studio", res[1].Title)
	assert.Equal(t, "template", res[2].Type)
	assert.Equal(t, "guide", res[3].Type)
}

func TestResourcesCap(t *testing.T) {
	text := "use Alpha, use Bravo, use Charlie, use Delta, use Echo, use Foxtrot, template"
	res := Resources(text)
	assert.Len(t, res, MaxResources)
}

func TestResourcesLongCapitalizedRun(t *testing.T) {
	res := Resources("Record with OBS Studio And Some Other Words")
	require.Len(t, res, 1)
	assert.Equal(t, "OBS Studio", res[0].Title)

	res = Resources("Edit using Adobe Premiere Pro Creative Cloud Edition")
	require.Len(t, res, 1)
	assert.Equal(t, "Adobe Premiere Pro", res[0].Title)

	assert.Empty(t, Resources("use Supercalifragilisticexpialidociouslylong"))
}

func TestResourcesIgnoresLowercase(t *testing.T) {
	assert.Empty(t, Resources("use your phone with good light"))
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"algorithm", "engagement", "audience"}, Tags("The algorithm rewards audience engagement"))
	assert.Empty(t, Tags("nothing relevant"))

	all := Tags(strings.Join(TagVocabulary, " "))
	assert.Equal(t, TagVocabulary[:MaxTags], all)
}

func TestVariables(t *testing.T) {
	assert.Equal(t, []string{"name"}, Variables("[name] and [name]"))
	assert.Equal(t, []string{"name"}, Variables(strings.Repeat("[name] and [name] ", 2)))

	got := Variables("Hi [Viewer Name], watch {{video-title}} on <Channel> or insert topic here")
	assert.Equal(t, []string{"viewer_name", "video_title", "channel", "topic"}, got)
}

func TestVariablesLengthBounds(t *testing.T) {
	got := Variables("[ab] [abc] [" + strings.Repeat("x", 30) + "]")
	assert.Equal(t, []string{"abc"}, got)
}

func TestNormalizeCount(t *testing.T) {
	tests := map[string]string{
		"1,000": "1000",
		"1.5k":  "1500",
		"10K":   "10000",
		"2M":    "2000000",
		" 250 ": "250",
		"5 k":   "5000",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCount(in), in)
	}
}
