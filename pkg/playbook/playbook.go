// Package playbook runs the extraction pipeline over a batch of documents:
// segmentation, the four entity extractors, variant expansion, identifier
// assignment and aggregation.
package playbook

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/playbook/pkg/playbook/config"
	"github.com/cognicore/playbook/pkg/playbook/extract"
	"github.com/cognicore/playbook/pkg/playbook/ids"
	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/internalerr"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

// Options configures a Pipeline
type Options struct {
	Catalog     *config.Catalog // nil selects config.Default()
	Logger      *zap.Logger     // nil disables logging
	Concurrency int             // documents extracted in parallel; <= 0 means 1
}

// Pipeline is the extraction facade
type Pipeline struct {
	ex          *extract.Extractor
	log         *zap.Logger
	concurrency int
}

// New creates a Pipeline with the given options
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pipeline{
		ex:          extract.New(opts.Catalog),
		log:         log,
		concurrency: concurrency,
	}
}

// Result holds the four flat record collections of one run.
type Result struct {
	RunID      string              `json:"runId"`
	Tasks      []records.Task      `json:"tasks"`
	Milestones []records.Milestone `json:"milestones"`
	Templates  []records.Template  `json:"templates"`
	Tips       []records.Tip       `json:"tips"`
}

// Len is the total number of records.
func (r *Result) Len() int {
	return len(r.Tasks) + len(r.Milestones) + len(r.Templates) + len(r.Tips)
}

// ParseRoadmaps parses docs as roadmap documents.
func (p *Pipeline) ParseRoadmaps(ctx context.Context, docs []ingest.Doc) (*Result, error) {
	return p.run(ctx, withKind(docs, ingest.KindRoadmap))
}

// ParseTemplates parses docs as template catalogues.
func (p *Pipeline) ParseTemplates(ctx context.Context, docs []ingest.Doc) (*Result, error) {
	return p.run(ctx, withKind(docs, ingest.KindTemplates))
}

// ParseGuides parses docs as strategy guides.
func (p *Pipeline) ParseGuides(ctx context.Context, docs []ingest.Doc) (*Result, error) {
	return p.run(ctx, withKind(docs, ingest.KindGuide))
}

// ParseAll parses every document according to its own kind and concatenates
// the results in document order.
//
// A document that fails validation is skipped and reported in the returned
// error; the Result still holds everything extracted from the other documents.
func (p *Pipeline) ParseAll(ctx context.Context, docs []ingest.Doc) (*Result, error) {
	return p.run(ctx, docs)
}

func withKind(docs []ingest.Doc, kind ingest.Kind) []ingest.Doc {
	out := make([]ingest.Doc, len(docs))
	for i, d := range docs {
		d.Kind = kind
		out[i] = d
	}
	return out
}

func (p *Pipeline) run(ctx context.Context, docs []ingest.Doc) (*Result, error) {
	drafts := make([]*draft, len(docs))
	inputErrs := make([]error, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := docs[i].Validate(); err != nil {
				inputErrs[i] = err
				p.log.Warn("skipping document", zap.String("doc", docs[i].Name), zap.Error(err))
				return nil
			}
			drafts[i] = p.extractDoc(docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract documents: %w", err)
	}

	res, invalid := p.assemble(drafts)
	p.log.Info("extraction complete",
		zap.String("run_id", res.RunID),
		zap.Int("documents", len(docs)),
		zap.Int("tasks", len(res.Tasks)),
		zap.Int("milestones", len(res.Milestones)),
		zap.Int("templates", len(res.Templates)),
		zap.Int("tips", len(res.Tips)),
	)

	return res, errors.Join(append(inputErrs, invalid...)...)
}

// assemble assigns identifiers in document order so the output does not
// depend on how extraction was scheduled. Records that fail validation are
// left out and returned as errors.
func (p *Pipeline) assemble(drafts []*draft) (*Result, []error) {
	a := ids.NewAssigner()
	res := &Result{
		RunID:      a.RunID(),
		Tasks:      []records.Task{},
		Milestones: []records.Milestone{},
		Templates:  []records.Template{},
		Tips:       []records.Tip{},
	}

	var invalid []error
	keep := func(d *draft, err error) bool {
		if err == nil {
			return true
		}
		p.log.Warn("dropping invalid record", zap.String("doc", d.name), zap.Error(err))
		invalid = append(invalid, fmt.Errorf("%s: %w: %w", d.name, internalerr.ErrInvalidInput, err))
		return false
	}

	for _, d := range drafts {
		if d == nil {
			continue
		}
		for _, t := range d.tasks {
			t.ID = a.Next(records.KindTask, t.Platform)
			if !keep(d, t.Validate()) {
				continue
			}
			t.OrderIndex = len(res.Tasks)
			res.Tasks = append(res.Tasks, t)
		}
		for _, m := range d.milestones {
			m.ID = a.Next(records.KindMilestone, deref(m.Platform))
			if !keep(d, m.Validate()) {
				continue
			}
			m.OrderIndex = len(res.Milestones)
			res.Milestones = append(res.Milestones, m)
		}
		for _, t := range d.templates {
			t.ID = a.Next(records.KindTemplate, t.Platform)
			if !keep(d, t.Validate()) {
				continue
			}
			res.Templates = append(res.Templates, t)
		}
		for _, t := range d.tips {
			t.ID = a.Next(records.KindTip, deref(t.Platform))
			if !keep(d, t.Validate()) {
				continue
			}
			res.Tips = append(res.Tips, t)
		}
	}

	return res, invalid
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
