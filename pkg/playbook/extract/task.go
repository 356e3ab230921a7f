package extract

import (
	"regexp"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/ids"
	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/synth"
)

// MaxTitleLen bounds task titles.
const MaxTitleLen = 60

var dayHeader = regexp.MustCompile(`(?i)^(?:\*\*|__)?\s*(?:day\s+\d+(?:\s*[-–]\s*\d+)?|daily\s+tasks?)\s*(?:\*\*|__)?\s*[:\-–]?\s*(?:\*\*|__)?\s*`)

// Tasks extracts tasks from every Day / Daily Tasks section of doc. Each list
// item becomes a task; a body without list markers becomes exactly one task.
// Tasks from cross-platform documents are expanded into niche variants.
func (e *Extractor) Tasks(doc ingest.Doc, sections []ingest.Section) []records.Task {
	var tasks []records.Task
	platform := e.taskPlatform(doc)

	for _, sec := range sections {
		if sec.Marker != ingest.MarkerDay && sec.Marker != ingest.MarkerDaily {
			continue
		}

		body := sec.Body
		if strings.TrimSpace(body) == "" {
			body = strings.TrimSpace(dayHeader.ReplaceAllString(sec.Header, ""))
		}
		if strings.TrimSpace(body) == "" {
			continue
		}

		items := listItems(body)
		if len(items) == 0 {
			items = []listItem{{Text: flatten(body)}}
		}

		for _, it := range items {
			task := e.buildTask(doc, sec, platform, body, it)
			if doc.Scope == ingest.ScopeAll {
				tasks = append(tasks, e.ExpandVariants(task)...)
				continue
			}
			tasks = append(tasks, task)
		}
	}

	return tasks
}

func (e *Extractor) buildTask(doc ingest.Doc, sec ingest.Section, platform, body string, it listItem) records.Task {
	text := synth.Clean(it.Text)
	full := synth.Clean(it.FullText())

	task := records.Task{
		RoadmapID:        ids.RoadmapID(platform, sec.Phase, sec.Week),
		Platform:         platform,
		Niche:            docNiche(doc),
		Phase:            sec.Phase,
		Week:             sec.Week,
		DayRange:         sec.DayRange,
		Title:            synth.Title(text, MaxTitleLen),
		Description:      synth.StripTimeAnnotation(text),
		Difficulty:       synth.Difficulty(sec.Phase, sec.Week),
		PlatformSpecific: synth.PlatformSpecific(e.cat, platform, body),
		Resources:        synth.Resources(it.FullText()),
	}
	if task.DayRange == "" {
		task.DayRange = "Daily"
	}
	if task.Title == "" {
		task.Title = synth.Truncate(sec.Header, MaxTitleLen)
	}

	var ok bool
	if task.TimeEstimate, ok = synth.TimeEstimate(it.Text); !ok {
		task.Synthesized = append(task.Synthesized, records.FieldTimeEstimate)
	}

	if len(it.Sub) > 0 {
		for _, s := range it.Sub {
			if s = synth.Clean(s); s != "" {
				task.Instructions = append(task.Instructions, s)
			}
		}
	}
	if len(task.Instructions) == 0 {
		task.Instructions = synth.Instructions(text)
		task.Synthesized = append(task.Synthesized, records.FieldInstructions)
	}

	if task.Category, ok = synth.Category(text); !ok {
		task.Synthesized = append(task.Synthesized, records.FieldCategory)
	}

	if task.SuccessMetrics, ok = synth.SuccessMetrics(full); !ok {
		task.Synthesized = append(task.Synthesized, records.FieldSuccessMetrics)
	}

	return task
}
