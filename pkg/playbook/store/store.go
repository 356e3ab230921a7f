package store

import (
	"context"

	"github.com/cognicore/playbook/pkg/playbook/records"
)

// Store is the persistence collaborator for extracted records. Records are
// stored as-is and keyed by ID; inserting an existing ID fails with
// internalerr.ErrDuplicate.
type Store interface {
	Close() error

	// Clear removes every record of kind, ahead of a full reseed.
	Clear(ctx context.Context, kind records.Kind) error
	Count(ctx context.Context, kind records.Kind) (int, error)

	InsertTask(ctx context.Context, t records.Task) error
	InsertMilestone(ctx context.Context, m records.Milestone) error
	InsertTemplate(ctx context.Context, t records.Template) error
	InsertTip(ctx context.Context, t records.Tip) error

	GetTask(ctx context.Context, id string) (records.Task, bool, error)
	ListTasks(ctx context.Context, roadmapID string) ([]records.Task, error)
	ListTips(ctx context.Context, category string) ([]records.Tip, error)
}
