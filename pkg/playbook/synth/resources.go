package synth

import (
	"regexp"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/rules"
)

// MaxResources caps the resources attached to one task.
const MaxResources = 5

// maxToolWords bounds how much of a capitalized run is taken as a tool name.
const maxToolWords = 3

// toolStopWords end a tool name even when capitalized ("OBS Studio And ...").
var toolStopWords = map[string]bool{
	"and": true, "or": true, "to": true, "for": true, "the": true,
	"then": true, "on": true, "in": true, "of": true,
}

var toolMention = regexp.MustCompile(`\b(?i:use|using|with)\s+([A-Z][A-Za-z0-9'+-]*(?:[ \t]+[A-Z][A-Za-z0-9'+-]*)*)`)

// ResourceRules attach reference material when the text asks for it.
var ResourceRules = []rules.Rule[records.Resource]{
	{
		Name:  "template",
		Match: rules.Keywords("template"),
		Result: records.Resource{
			Type:    "template",
			Title:   "Content Template",
			Content: "Start from a matching template in the template library.",
		},
	},
	{
		Name:  "guide",
		Match: rules.Keywords("guide"),
		Result: records.Resource{
			Type:    "guide",
			Title:   "Step-by-Step Guide",
			Content: "Follow the related guide for a detailed walkthrough.",
		},
	},
}

// Resources collects tool mentions ("use Canva", "with OBS Studio") and
// keyword-triggered template and guide resources.
func Resources(text string) []records.Resource {
	var out []records.Resource
	seen := make(map[string]bool)
	add := func(r records.Resource) {
		key := strings.ToLower(r.Title)
		if seen[key] || len(out) >= MaxResources {
			return
		}
		seen[key] = true
		out = append(out, r)
	}

	for _, m := range toolMention.FindAllStringSubmatch(text, -1) {
		name := toolName(m[1])
		if n := len(name); n < 2 || n > 30 {
			continue
		}
		add(records.Resource{Type: "tool", Title: name})
	}
	for _, r := range ResourceRules {
		if r.Match(text) {
			add(r.Result)
		}
	}
	return out
}

// toolName keeps the leading words of a capitalized run, stopping at a
// connector word or after maxToolWords.
func toolName(run string) string {
	var kept []string
	for _, w := range strings.Fields(run) {
		if len(kept) == maxToolWords || toolStopWords[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	return strings.TrimRight(strings.Join(kept, " "), "-'")
}
