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
	// MaxTemplateTitleLen bounds template titles.
	MaxTemplateTitleLen = 80
	maxHookTitleLen     = 50
	minHookLen          = 10
	maxHookLen          = 200
)

// TemplateCategoryRules normalize a section heading into the template
// category vocabulary.
var TemplateCategoryRules = rules.NewTable(records.TemplateVideoScript,
	rules.Rule[records.TemplateCategory]{Name: "video_script", Match: rules.Keywords("script", "video"), Result: records.TemplateVideoScript},
	rules.Rule[records.TemplateCategory]{Name: "thumbnail", Match: rules.Keywords("thumbnail"), Result: records.TemplateThumbnail},
	rules.Rule[records.TemplateCategory]{Name: "description", Match: rules.Keywords("description", "bio"), Result: records.TemplateDescription},
	rules.Rule[records.TemplateCategory]{Name: "social_media", Match: rules.Keywords("social"), Result: records.TemplateSocialMedia},
	rules.Rule[records.TemplateCategory]{Name: "channel_assets", Match: rules.Keywords("channel", "profile"), Result: records.TemplateChannelAssets},
)

// TemplateTypeRules classify a template by its title.
var TemplateTypeRules = rules.NewTable(records.TemplateGeneral,
	rules.Rule[records.TemplateType]{Name: "hook", Match: rules.Regex(`(?i)\b(?:hook|intro)`), Result: records.TemplateHook},
	rules.Rule[records.TemplateType]{Name: "outro", Match: rules.Regex(`(?i)\b(?:outro|end)`), Result: records.TemplateOutro},
	rules.Rule[records.TemplateType]{Name: "structure", Match: rules.Regex(`(?i)\b(?:structure|format)`), Result: records.TemplateStructure},
	rules.Rule[records.TemplateType]{Name: "call_to_action", Match: rules.Regex(`(?i)\b(?:cta|call)\b|call[- ]to[- ]action`), Result: records.TemplateCallToAction},
)

var (
	boldTitle    = regexp.MustCompile(`^\*\*(.+?)\*\*\s*[:\-–—]?\s*(.*)$`)
	splitTitle   = regexp.MustCompile(`^(.+?)\s*(?::|\s[-–—])\s+(.+)$`)
	quotedPhrase = regexp.MustCompile(`"([^"\n]+)"|“([^”\n]+)”`)
)

// Templates extracts one template per numbered item under each sub-heading of
// doc. Sections whose heading mentions hooks also yield a hook template for
// every quoted phrase of 10 to 200 characters.
func (e *Extractor) Templates(doc ingest.Doc, sections []ingest.Section) []records.Template {
	var out []records.Template

	for _, sec := range sections {
		heading := sec.Heading
		if heading == "" {
			heading = sec.Header
		}
		category, _ := TemplateCategoryRules.Classify(heading)

		for _, it := range listItems(sec.Body) {
			if !it.Numbered {
				continue
			}
			out = append(out, e.buildTemplate(doc, category, it))
		}

		if strings.Contains(strings.ToLower(heading), "hook") {
			out = append(out, e.hookTemplates(doc, category, sec.Body)...)
		}
	}

	return out
}

func (e *Extractor) buildTemplate(doc ingest.Doc, category records.TemplateCategory, it listItem) records.Template {
	title, structure := splitTemplateItem(it.Text)

	sections := make([]string, 0, len(it.Sub))
	for _, s := range it.Sub {
		if s = synth.Clean(s); s != "" {
			sections = append(sections, s)
		}
	}

	typ, _ := TemplateTypeRules.Classify(title)

	return records.Template{
		Category: category,
		Type:     typ,
		Title:    synth.Truncate(title, MaxTemplateTitleLen),
		Content: records.TemplateContent{
			Structure: structure,
			Sections:  sections,
			Examples:  quotedPhrases(it.FullText(), 1, maxHookLen),
		},
		Variables: synth.Variables(it.FullText()),
		Platform:  doc.Scope,
		Niche:     docNiche(doc),
		IsPublic:  true,
	}
}

func (e *Extractor) hookTemplates(doc ingest.Doc, category records.TemplateCategory, body string) []records.Template {
	var out []records.Template
	for _, phrase := range quotedPhrases(body, minHookLen, maxHookLen) {
		out = append(out, records.Template{
			Category: category,
			Type:     records.TemplateHook,
			Title:    synth.Truncate(phrase, maxHookTitleLen),
			Content: records.TemplateContent{
				Structure: phrase,
				Sections:  []string{},
				Examples:  []string{phrase},
			},
			Variables: synth.Variables(phrase),
			Platform:  doc.Scope,
			Niche:     docNiche(doc),
			IsPublic:  true,
		})
	}
	return out
}

// splitTemplateItem separates "**Title**: body", "Title: body" or
// "Title - body". Without a separator the whole text is both title and
// structure.
func splitTemplateItem(text string) (title, structure string) {
	text = strings.TrimSpace(text)
	if m := boldTitle.FindStringSubmatch(text); m != nil {
		title = synth.Clean(strings.TrimRight(m[1], ":"))
		structure = synth.Clean(m[2])
	} else if m := splitTitle.FindStringSubmatch(text); m != nil {
		title = synth.Clean(m[1])
		structure = synth.Clean(m[2])
	} else {
		title = synth.Clean(text)
	}
	if structure == "" {
		structure = title
	}
	return title, structure
}

// quotedPhrases returns deduplicated quoted strings whose length is within
// [lo, hi] runes.
func quotedPhrases(text string, lo, hi int) []string {
	phrases := []string{}
	seen := make(map[string]bool)
	for _, m := range quotedPhrase.FindAllStringSubmatch(text, -1) {
		p := m[1]
		if p == "" {
			p = m[2]
		}
		p = strings.TrimSpace(p)
		n := len([]rune(p))
		if n < lo || n > hi || seen[p] {
			continue
		}
		seen[p] = true
		phrases = append(phrases, p)
	}
	return phrases
}
