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
	// MinTipLen discards matches too short to be useful advice.
	MinTipLen = 20
	// MaxTipTitleLen bounds tip titles.
	MaxTipTitleLen = 50
	tipTitleWords  = 5
)

// TipPatterns recognize advice sentences. The captured group is the tip text;
// it is empty when the label opens a list of tips.
var TipPatterns = rules.NewCaptureTable(
	rules.Capture[string]{Name: "tip", Regex: regexp.MustCompile(`(?i)\b(?:pro\s+)?tips?\s*:\s*(.*)$`), Result: "tip"},
	rules.Capture[string]{Name: "insight", Regex: regexp.MustCompile(`(?i)\b(?:key\s+)?insights?\s*:\s*(.*)$`), Result: "insight"},
	rules.Capture[string]{Name: "important", Regex: regexp.MustCompile(`(?i)\bimportant\s*:\s*(.*)$`), Result: "important"},
	rules.Capture[string]{Name: "note", Regex: regexp.MustCompile(`(?i)\bnote\s*:\s*(.*)$`), Result: "note"},
)

// TipCategoryRules infer a tip's category from its section heading.
var TipCategoryRules = rules.NewTable("general",
	rules.Rule[string]{Name: "analytics", Match: rules.Keywords("analytic", "metric", "data"), Result: "analytics"},
	rules.Rule[string]{Name: "engagement", Match: rules.Keywords("engag", "comment", "community"), Result: "engagement"},
	rules.Rule[string]{Name: "monetization", Match: rules.Keywords("monetiz", "monetis", "revenue", "sponsor"), Result: "monetization"},
	rules.Rule[string]{Name: "growth", Match: rules.Keywords("grow", "subscriber", "follower"), Result: "growth"},
	rules.Rule[string]{Name: "algorithm", Match: rules.Keywords("algorithm", "seo", "discover"), Result: "algorithm"},
	rules.Rule[string]{Name: "content", Match: rules.Keywords("content", "video", "script", "thumbnail"), Result: "content"},
)

var emphasisOnly = regexp.MustCompile(`^[*_\s]*$`)

// Tips extracts advice sentences labelled Tip, Insight, Important or Note
// from every section of doc. A label with nothing after it turns each list
// item directly below it into a tip.
func (e *Extractor) Tips(doc ingest.Doc, sections []ingest.Section) []records.Tip {
	var out []records.Tip

	for _, sec := range sections {
		category := e.tipCategory(sec)
		listMode := false

		for _, line := range strings.Split(sec.Body, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}

			item := trimmed
			isItem := false
			if m := listLine.FindStringSubmatch(line); m != nil {
				item = m[3]
				isItem = true
			}

			if _, groups, ok := TipPatterns.First(item); ok {
				rest := groups[1]
				if emphasisOnly.MatchString(rest) {
					listMode = true
					continue
				}
				listMode = false
				if tip, ok := buildTip(doc, sec, category, rest); ok {
					out = append(out, tip)
				}
				continue
			}

			if listMode && isItem {
				if tip, ok := buildTip(doc, sec, category, item); ok {
					out = append(out, tip)
				}
				continue
			}
			listMode = false
		}
	}

	return out
}

func (e *Extractor) tipCategory(sec ingest.Section) string {
	category, ok := TipCategoryRules.Classify(sec.Heading)
	if !ok && sec.Header != sec.Heading {
		category, _ = TipCategoryRules.Classify(sec.Header)
	}
	return category
}

func buildTip(doc ingest.Doc, sec ingest.Section, category, raw string) (records.Tip, bool) {
	content := synth.Clean(raw)
	if len([]rune(content)) < MinTipLen {
		return records.Tip{}, false
	}

	return records.Tip{
		Title:      TipTitle(content),
		Content:    content,
		Category:   category,
		Platform:   scopedPlatform(doc),
		Niche:      records.StringPtr(doc.Niche),
		Difficulty: synth.Difficulty(sec.Phase, sec.Week),
		Tags:       synth.Tags(content),
		Source:     doc.Name,
		IsActive:   true,
	}, true
}

// TipTitle takes the shorter of the first five words and the first sentence,
// capped at MaxTipTitleLen.
func TipTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > tipTitleWords {
		words = words[:tipTitleWords]
	}
	byWords := strings.Join(words, " ")
	bySentence := synth.FirstSentence(content)

	title := byWords
	if bySentence != "" && len(bySentence) < len(byWords) {
		title = bySentence
	}
	return synth.Truncate(title, MaxTipTitleLen)
}
