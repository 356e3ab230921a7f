package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/playbook/pkg/playbook/internalerr"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// tables maps each record kind to its table.
var tables = map[records.Kind]string{
	records.KindTask:      "tasks",
	records.KindMilestone: "milestones",
	records.KindTemplate:  "templates",
	records.KindTip:       "tips",
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	roadmap_id TEXT NOT NULL,
	platform TEXT NOT NULL,
	niche TEXT,
	phase INTEGER NOT NULL,
	week INTEGER NOT NULL,
	order_index INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_roadmap ON tasks(roadmap_id, order_index);

CREATE TABLE IF NOT EXISTS milestones (
	id TEXT PRIMARY KEY,
	platform TEXT,
	order_index INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS templates (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	type TEXT NOT NULL,
	platform TEXT,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tips (
	id TEXT PRIMARY KEY,
	category TEXT,
	platform TEXT,
	seq INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tips_category ON tips(category, seq);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Clear removes all records of a kind
func (s *sqliteStore) Clear(ctx context.Context, kind records.Kind) error {
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("%w: unknown record kind %q", internalerr.ErrInvalidInput, kind)
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM "+table)
	return err
}

// Count returns the number of stored records of a kind
func (s *sqliteStore) Count(ctx context.Context, kind records.Kind) (int, error) {
	table, ok := tables[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown record kind %q", internalerr.ErrInvalidInput, kind)
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

// InsertTask stores a task keyed by its ID
func (s *sqliteStore) InsertTask(ctx context.Context, t records.Task) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO tasks (id, roadmap_id, platform, niche, phase, week, order_index, data)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(ctx, stmt, t.ID, t.RoadmapID, t.Platform, t.Niche, t.Phase, t.Week, t.OrderIndex, string(data))
	return insertErr(t.ID, err)
}

// InsertMilestone stores a milestone keyed by its ID
func (s *sqliteStore) InsertMilestone(ctx context.Context, m records.Milestone) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO milestones (id, platform, order_index, data)
VALUES (?, ?, ?, ?)
`
	_, err = s.db.ExecContext(ctx, stmt, m.ID, nullable(m.Platform), m.OrderIndex, string(data))
	return insertErr(m.ID, err)
}

// InsertTemplate stores a template keyed by its ID
func (s *sqliteStore) InsertTemplate(ctx context.Context, t records.Template) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO templates (id, category, type, platform, data)
VALUES (?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(ctx, stmt, t.ID, string(t.Category), string(t.Type), t.Platform, string(data))
	return insertErr(t.ID, err)
}

// InsertTip stores a tip keyed by its ID
func (s *sqliteStore) InsertTip(ctx context.Context, t records.Tip) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO tips (id, category, platform, seq, data)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tips), ?)
`
	_, err = s.db.ExecContext(ctx, stmt, t.ID, t.Category, nullable(t.Platform), string(data))
	return insertErr(t.ID, err)
}

// GetTask returns a task by ID
func (s *sqliteStore) GetTask(ctx context.Context, id string) (records.Task, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM tasks WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return records.Task{}, false, nil
	}
	if err != nil {
		return records.Task{}, false, err
	}
	var t records.Task
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return records.Task{}, false, fmt.Errorf("decode task %s: %w", id, err)
	}
	return t, true, nil
}

// ListTasks returns the tasks of a roadmap in order; all tasks when roadmapID is empty
func (s *sqliteStore) ListTasks(ctx context.Context, roadmapID string) ([]records.Task, error) {
	query := "SELECT data FROM tasks ORDER BY order_index"
	args := []any{}
	if roadmapID != "" {
		query = "SELECT data FROM tasks WHERE roadmap_id = ? ORDER BY order_index"
		args = append(args, roadmapID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []records.Task
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var t records.Task
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListTips returns tips in insertion order; all tips when category is empty
func (s *sqliteStore) ListTips(ctx context.Context, category string) ([]records.Tip, error) {
	query := "SELECT data FROM tips ORDER BY seq"
	args := []any{}
	if category != "" {
		query = "SELECT data FROM tips WHERE category = ? ORDER BY seq"
		args = append(args, category)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []records.Tip
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var t records.Tip
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, fmt.Errorf("decode tip: %w", err)
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

func insertErr(id string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", internalerr.ErrDuplicate, id)
	}
	return err
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
