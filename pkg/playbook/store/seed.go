package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/playbook/pkg/playbook"
	"github.com/cognicore/playbook/pkg/playbook/records"
)

// SeedReport counts what a Seed call stored and what it skipped, per kind.
type SeedReport struct {
	Inserted map[records.Kind]int
	Failed   map[records.Kind]int
}

// Total is the number of records inserted.
func (r SeedReport) Total() int {
	n := 0
	for _, c := range r.Inserted {
		n += c
	}
	return n
}

// Seed replaces the stored catalogue with res. Every kind is cleared first,
// since identifiers are reassigned on each extraction run. A record that
// fails to insert is logged and skipped; only clearing errors abort.
func Seed(ctx context.Context, st Store, res *playbook.Result, log *zap.Logger) (SeedReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	report := SeedReport{
		Inserted: make(map[records.Kind]int),
		Failed:   make(map[records.Kind]int),
	}

	for _, kind := range records.AllKinds {
		if err := st.Clear(ctx, kind); err != nil {
			return report, fmt.Errorf("clear %s: %w", kind, err)
		}
	}

	record := func(kind records.Kind, id string, err error) {
		if err != nil {
			report.Failed[kind]++
			log.Warn("insert failed", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
			return
		}
		report.Inserted[kind]++
	}

	for _, t := range res.Tasks {
		record(records.KindTask, t.ID, st.InsertTask(ctx, t))
	}
	for _, m := range res.Milestones {
		record(records.KindMilestone, m.ID, st.InsertMilestone(ctx, m))
	}
	for _, t := range res.Templates {
		record(records.KindTemplate, t.ID, st.InsertTemplate(ctx, t))
	}
	for _, t := range res.Tips {
		record(records.KindTip, t.ID, st.InsertTip(ctx, t))
	}

	log.Info("seed complete",
		zap.String("run_id", res.RunID),
		zap.Int("inserted", report.Total()),
		zap.Int("tasks", report.Inserted[records.KindTask]),
		zap.Int("milestones", report.Inserted[records.KindMilestone]),
		zap.Int("templates", report.Inserted[records.KindTemplate]),
		zap.Int("tips", report.Inserted[records.KindTip]),
	)
	return report, ctx.Err()
}
