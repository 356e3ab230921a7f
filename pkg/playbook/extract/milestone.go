package extract

import (
	"regexp"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/rules"
	"github.com/cognicore/playbook/pkg/playbook/synth"
)

const (
	// MinMilestoneLen discards list items that are too short to be goals.
	MinMilestoneLen = 10
	// MaxMilestoneNameLen bounds names taken verbatim from item text.
	MaxMilestoneNameLen = 50
	// DefaultRequirementValue is used when an item names no count.
	DefaultRequirementValue = "10"
)

// milestoneTriggers open a milestone list. They are matched per line
// against the whole document, independent of phase and week context.
var milestoneTriggers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[#*_\s]*goals\s*[*_]*\s*:`),
	regexp.MustCompile(`(?i)^[#*_\s]*milestones\s*[*_]*\s*:`),
	regexp.MustCompile(`(?i)^[#*_\s]*by the end of (?:this|the)\s+(?:week|month|phase)\b[^:\n]*:`),
	regexp.MustCompile(`(?i)^[#*_\s]*success metrics\s*[*_]*\s*:`),
	regexp.MustCompile(`(?i)^#+\s*(?:goals|milestones|success metrics)\b`),
}

var (
	dayLine           = regexp.MustCompile(`(?i)^(?:#+\s*)?(?:\*\*|__)?\s*(?:day\s+\d+|daily\s+tasks?)\b`)
	milestoneBoundary = regexp.MustCompile(`(?i)^(?:#+\s|(?:\*\*|__)?\s*(?:phase|week|day)\s+\d+\b|(?:\*\*|__)?\s*daily\s+tasks?\b)`)
	reachPattern      = regexp.MustCompile(`(?i)\d[\d,]*(?:\.\d+)?\s*[km]?\+?\s*(?:subscribers|followers|views|hours)\b`)
)

// RequirementPatterns decide the requirement of a milestone; first match wins.
var RequirementPatterns = rules.NewCaptureTable(
	rules.Capture[records.RequirementType]{
		Name:   "audience",
		Regex:  regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?\s*[km]?)\+?\s*(?:subscribers|subs|followers)\b`),
		Result: records.RequirementMetricAchievement,
	},
	rules.Capture[records.RequirementType]{
		Name:   "views",
		Regex:  regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?\s*[km]?)\+?\s*views\b`),
		Result: records.RequirementMetricAchievement,
	},
	rules.Capture[records.RequirementType]{
		Name:   "output",
		Regex:  regexp.MustCompile(`(?i)(\d+)\s*(?:videos?|posts?|streams?|shorts|uploads?)\b`),
		Result: records.RequirementTaskCompletion,
	},
	rules.Capture[records.RequirementType]{
		Name:   "duration",
		Regex:  regexp.MustCompile(`(?i)(\d+)\s*(?:days?|weeks?|months?)\b`),
		Result: records.RequirementTimeBased,
	},
)

type reward struct {
	typ   records.RewardType
	value string
}

// RewardRules pick the reward for a milestone.
var RewardRules = rules.NewTable(reward{records.RewardBadge, "Achievement Badge"},
	rules.Rule[reward]{Name: "monetization", Match: rules.Keywords("monetiz", "monetis", "revenue"), Result: reward{records.RewardFeatureUnlock, "Monetization Features"}},
	rules.Rule[reward]{Name: "advanced", Match: rules.Regex(`(?i)\b(?:advanced|pro)\b`), Result: reward{records.RewardFeatureUnlock, "Advanced Features"}},
)

// CelebrationRules pick how a milestone is celebrated. A three-digit number
// outranks the "first"/"complete" keywords.
var CelebrationRules = rules.NewTable(records.CelebrationNotification,
	rules.Rule[records.CelebrationType]{Name: "magnitude", Match: rules.Regex(`\d{3,}`), Result: records.CelebrationConfetti},
	rules.Rule[records.CelebrationType]{Name: "first_or_complete", Match: rules.Regex(`(?i)\b(?:first|complete)`), Result: records.CelebrationModal},
)

// Milestones scans the whole document for goal lists and turns each list
// item of at least MinMilestoneLen characters into a milestone.
func (e *Extractor) Milestones(doc ingest.Doc) []records.Milestone {
	var out []records.Milestone
	for _, body := range milestoneBodies(ingest.Normalize(doc.Text)) {
		for _, it := range listItems(body) {
			text := synth.Clean(it.Text)
			if len([]rune(text)) < MinMilestoneLen {
				continue
			}
			out = append(out, buildMilestone(doc, text))
		}
	}
	return out
}

// milestoneBodies returns the text following each trigger line up to the
// next heading, context marker or trigger.
func milestoneBodies(text string) []string {
	var bodies []string
	var cur []string
	inBody := false

	flush := func() {
		if inBody {
			bodies = append(bodies, strings.Join(cur, "\n"))
		}
		cur = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isMilestoneTrigger(trimmed) {
			flush()
			inBody = true
			continue
		}
		if milestoneBoundary.MatchString(trimmed) {
			flush()
			inBody = false
			continue
		}
		if inBody {
			cur = append(cur, line)
		}
	}
	flush()

	return bodies
}

// isMilestoneTrigger also accepts labels after other words, such as
// "**Week 1 Goals:**" or "Your Goals:". Day lines stay task boundaries.
func isMilestoneTrigger(line string) bool {
	for _, re := range milestoneTriggers {
		if re.MatchString(line) {
			return true
		}
	}
	return !dayLine.MatchString(line) && ingest.IsGoalsLine(line)
}

func buildMilestone(doc ingest.Doc, text string) records.Milestone {
	name := synth.Truncate(text, MaxMilestoneNameLen)
	if m := reachPattern.FindString(text); m != "" {
		name = "Reach " + strings.TrimSpace(m)
	}

	req := records.Requirement{
		Type:        records.RequirementTaskCompletion,
		Value:       DefaultRequirementValue,
		Synthesized: true,
	}
	if p, groups, ok := RequirementPatterns.First(text); ok {
		req = records.Requirement{Type: p.Result, Value: synth.NormalizeCount(groups[1])}
	}

	rw, _ := RewardRules.Classify(text)
	celebration, _ := CelebrationRules.Classify(text)

	c := records.Celebration{
		Type:    celebration,
		Message: "Congratulations! You've achieved: " + name,
	}
	if celebration != records.CelebrationNotification {
		c.SharePrompt = "I just hit a new milestone: " + name + "!"
	}

	return records.Milestone{
		Name:        name,
		Description: text,
		Requirement: req,
		Reward:      records.Reward{Type: rw.typ, Value: rw.value},
		Celebration: c,
		Platform:    scopedPlatform(doc),
	}
}
