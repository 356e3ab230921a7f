package synth

import (
	"regexp"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/config"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

// MaxListItems caps tips, best practices and common mistakes.
const MaxListItems = 5

var (
	tipSentence      = regexp.MustCompile(`(?i)\b(?:tips?|advice|recommend(?:ation|ed)?s?)\s*:\s*([^\n.!?]+)`)
	practiceSentence = regexp.MustCompile(`(?i)\b(?:best practices?|should|always)\s*:\s*([^\n.!?]+)`)
	mistakeSentence  = regexp.MustCompile(`(?i)(?:\bmistakes?|\bavoid|\bdon't|\bdo not)\s*:\s*([^\n.!?]+)`)
)

// PlatformSpecific seeds the three advice lists from the catalog and appends
// advice sentences found in text, each capped at MaxListItems.
func PlatformSpecific(cat *config.Catalog, platform, text string) records.PlatformSpecific {
	return records.PlatformSpecific{
		Tips:           appendMatches(cat.Platform(platform).Tips, tipSentence, text),
		BestPractices:  appendMatches(cat.BestPractices, practiceSentence, text),
		CommonMistakes: appendMatches(cat.CommonMistakes, mistakeSentence, text),
	}
}

func appendMatches(seed []string, re *regexp.Regexp, text string) []string {
	out := make([]string, 0, MaxListItems)
	seen := make(map[string]bool)
	add := func(s string) {
		s = Clean(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] || len(out) >= MaxListItems {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, s := range seed {
		add(s)
	}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return out
}
