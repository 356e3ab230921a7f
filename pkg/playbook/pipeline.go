package playbook

import (
	"go.uber.org/zap"

	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

// draft holds one document's records before identifiers are assigned.
type draft struct {
	name       string
	tasks      []records.Task
	milestones []records.Milestone
	templates  []records.Template
	tips       []records.Tip
}

// stages lists which extractors run for each document kind.
var stages = map[ingest.Kind][]records.Kind{
	ingest.KindRoadmap:   {records.KindTask, records.KindMilestone, records.KindTip},
	ingest.KindTemplates: {records.KindTemplate, records.KindTip},
	ingest.KindGuide:     {records.KindMilestone, records.KindTip},
}

// extractDoc runs a document through the full flow:
// text → sections → extractors (→ variant expansion for tasks)
func (p *Pipeline) extractDoc(doc ingest.Doc) *draft {
	sections := ingest.Segment(doc.Text)
	d := &draft{name: doc.Name}

	for _, kind := range stages[doc.Kind] {
		switch kind {
		case records.KindTask:
			d.tasks = p.ex.Tasks(doc, sections)
		case records.KindMilestone:
			d.milestones = p.ex.Milestones(doc)
		case records.KindTemplate:
			d.templates = p.ex.Templates(doc, sections)
		case records.KindTip:
			d.tips = p.ex.Tips(doc, sections)
		}
	}

	p.log.Debug("extracted document",
		zap.String("doc", doc.Name),
		zap.String("kind", string(doc.Kind)),
		zap.String("scope", doc.Scope),
		zap.Int("sections", len(sections)),
		zap.Int("tasks", len(d.tasks)),
		zap.Int("milestones", len(d.milestones)),
		zap.Int("templates", len(d.templates)),
		zap.Int("tips", len(d.tips)),
	)

	return d
}
