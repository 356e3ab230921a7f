package synth

import (
	"regexp"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/rules"
)

type metricSpec struct {
	metric string
	how    string
}

// MetricPatterns recognizes numeric goals inside task text.
var MetricPatterns = rules.NewCaptureTable(
	rules.Capture[metricSpec]{
		Name:   "audience",
		Regex:  regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?[km]?)\+?\s*(subscribers|subs|followers)\b`),
		Result: metricSpec{metric: "audience", how: "Check the follower or subscriber count on your dashboard"},
	},
	rules.Capture[metricSpec]{
		Name:   "views",
		Regex:  regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?[km]?)\+?\s*views\b`),
		Result: metricSpec{metric: "views", how: "Check total views in your analytics"},
	},
	rules.Capture[metricSpec]{
		Name:   "engagement",
		Regex:  regexp.MustCompile(`(?i)(\d+(?:\.\d+)?%)\s*(engagement|ctr|click[- ]through(?:\s+rate)?|retention)`),
		Result: metricSpec{metric: "engagement", how: "Compare the rate in your analytics overview"},
	},
	rules.Capture[metricSpec]{
		Name:   "watch_time",
		Regex:  regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(hours?|minutes?|mins?)\s+(?:of\s+)?watch[- ]?(?:time|hours)`),
		Result: metricSpec{metric: "watch_time", how: "Check watch time in your analytics"},
	},
)

// CompletionMetric is emitted when a task states no measurable goal.
var CompletionMetric = records.SuccessMetric{
	Metric:       "completion",
	Target:       "100%",
	HowToMeasure: "Mark the task as complete",
	Synthesized:  true,
}

// SuccessMetrics extracts one metric per numeric goal found in text. It never
// returns an empty list; ok is false when CompletionMetric was used.
func SuccessMetrics(text string) ([]records.SuccessMetric, bool) {
	var out []records.SuccessMetric
	seen := make(map[string]bool)

	for _, m := range MetricPatterns.All(text) {
		kind := m.Pattern.Result
		metric := kind.metric
		target := m.Groups[1]
		switch kind.metric {
		case "audience":
			metric = normalizeAudience(m.Groups[2])
		case "engagement":
			metric = normalizeRate(m.Groups[2])
		case "watch_time":
			target = target + " " + strings.ToLower(m.Groups[2])
		}
		key := metric + "|" + target
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, records.SuccessMetric{
			Metric:       metric,
			Target:       target,
			HowToMeasure: kind.how,
		})
	}

	if len(out) == 0 {
		return []records.SuccessMetric{CompletionMetric}, false
	}
	return out, true
}

func normalizeAudience(unit string) string {
	if strings.EqualFold(unit, "followers") {
		return "followers"
	}
	return "subscribers"
}

func normalizeRate(unit string) string {
	u := strings.ToLower(unit)
	switch {
	case u == "ctr" || strings.HasPrefix(u, "click"):
		return "ctr"
	case u == "retention":
		return "retention"
	}
	return "engagement_rate"
}
