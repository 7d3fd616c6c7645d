package sqlite

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	idx         INTEGER NOT NULL DEFAULT 0,
	due_date    TEXT,
	assignees   TEXT NOT NULL DEFAULT '[]',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
	id             TEXT PRIMARY KEY,
	task_id        TEXT NOT NULL,
	task_name      TEXT NOT NULL,
	title          TEXT NOT NULL,
	date           TEXT NOT NULL,
	time           TEXT NOT NULL,
	duration       INTEGER NOT NULL,
	agenda         TEXT NOT NULL DEFAULT '',
	type           TEXT NOT NULL,
	join_url       TEXT NOT NULL,
	organizer_id   TEXT NOT NULL,
	organizer_name TEXT NOT NULL,
	recipients     TEXT NOT NULL DEFAULT '[]',
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meetings_created_at ON meetings (created_at);
`

// SQLite is a file-backed repository for single-node deployments
type SQLite struct {
	db      *sql.DB
	task    *taskRepository
	meeting *meetingRepository
}

var _ interfaces.Repository = &SQLite{}

// New opens (and if needed initializes) a SQLite database at the given path
func New(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to initialize sqlite schema", goerr.V("path", path))
	}

	return &SQLite{
		db:      db,
		task:    &taskRepository{db: db},
		meeting: &meetingRepository{db: db},
	}, nil
}

func (s *SQLite) Task() interfaces.TaskRepository {
	return s.task
}

func (s *SQLite) Meeting() interfaces.MeetingRepository {
	return s.meeting
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
