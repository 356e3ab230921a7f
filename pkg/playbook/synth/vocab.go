package synth

import (
	"regexp"
	"strings"
)

// MaxTags caps the tags attached to a tip.
const MaxTags = 5

// TagVocabulary is the fixed set of tip tags, in assignment order.
var TagVocabulary = []string{
	"algorithm", "growth", "engagement", "viral", "trending",
	"audience", "content", "optimization", "analytics", "monetization",
}

// Tags returns vocabulary terms found in text, in vocabulary order, at most MaxTags.
func Tags(text string) []string {
	lower := strings.ToLower(text)
	tags := make([]string, 0, MaxTags)
	for _, term := range TagVocabulary {
		if len(tags) == MaxTags {
			break
		}
		if strings.Contains(lower, term) {
			tags = append(tags, term)
		}
	}
	return tags
}

var (
	placeholderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\[([^\[\]\n]+)\]`),
		regexp.MustCompile(`\{\{?\s*([^{}\n]+?)\s*\}?\}`),
		regexp.MustCompile(`<([^<>\n]+)>`),
		regexp.MustCompile(`(?i)\b(?:your|insert|add)\s+([A-Za-z][\w-]*)`),
	}
	nonIdent = regexp.MustCompile(`[^a-z0-9]+`)
)

// Variables returns the placeholder names in text, normalized to
// lower_snake_case, deduplicated in first-seen order. Names shorter than 3
// or longer than 29 characters are dropped.
func Variables(text string) []string {
	vars := []string{}
	seen := make(map[string]bool)
	for _, re := range placeholderPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := VariableName(m[1])
			if len(name) < 3 || len(name) >= 30 || seen[name] {
				continue
			}
			seen[name] = true
			vars = append(vars, name)
		}
	}
	return vars
}

// VariableName normalizes a placeholder to lower_snake_case.
func VariableName(raw string) string {
	name := nonIdent.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "_")
	return strings.Trim(name, "_")
}
