package stats

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS latency_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	mode        TEXT    NOT NULL,
	trial_id    TEXT    NOT NULL,
	reaction_ms INTEGER NOT NULL,
	movement_ms INTEGER NOT NULL DEFAULT 0,
	recorded_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS error_counters (
	mode  TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);`

// SQLitePersister keeps the snapshot in a SQLite database. Records are read
// back in insertion order.
type SQLitePersister struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLitePersister, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite", goerr.V("path", path))
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create stats schema", goerr.V("path", path))
	}
	return &SQLitePersister{db: db}, nil
}

func (p *SQLitePersister) Close() error {
	return p.db.Close()
}

func (p *SQLitePersister) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Modes: map[string]ModeSnapshot{}}

	rows, err := p.db.QueryContext(ctx,
		`SELECT mode, trial_id, reaction_ms, movement_ms, recorded_at FROM latency_records ORDER BY id`)
	if err != nil {
		return Snapshot{}, goerr.Wrap(err, "failed to query records")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mode string
			rec  reactiontime.LatencyRecord
			at   int64
		)
		if err := rows.Scan(&mode, &rec.TrialID, &rec.ReactionMs, &rec.MovementMs, &at); err != nil {
			return Snapshot{}, goerr.Wrap(err, "failed to scan record")
		}
		rec.RecordedAt = time.Unix(0, at).UTC()
		ms := snap.Modes[mode]
		ms.Records = append(ms.Records, rec)
		snap.Modes[mode] = ms
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, goerr.Wrap(err, "failed to read records")
	}

	errRows, err := p.db.QueryContext(ctx, `SELECT mode, count FROM error_counters`)
	if err != nil {
		return Snapshot{}, goerr.Wrap(err, "failed to query error counters")
	}
	defer errRows.Close()

	for errRows.Next() {
		var (
			mode  string
			count int
		)
		if err := errRows.Scan(&mode, &count); err != nil {
			return Snapshot{}, goerr.Wrap(err, "failed to scan error counter")
		}
		ms := snap.Modes[mode]
		ms.Errors = count
		snap.Modes[mode] = ms
	}
	if err := errRows.Err(); err != nil {
		return Snapshot{}, goerr.Wrap(err, "failed to read error counters")
	}
	return snap, nil
}

// Save replaces the stored contents with snap in one transaction.
func (p *SQLitePersister) Save(ctx context.Context, snap Snapshot) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM latency_records`, `DELETE FROM error_counters`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to clear stats")
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO latency_records (mode, trial_id, reaction_ms, movement_ms, recorded_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare insert")
	}
	defer ins.Close()

	for _, mode := range reactiontime.Modes() {
		ms, ok := snap.Modes[mode.String()]
		if !ok {
			continue
		}
		for _, r := range ms.Records {
			if _, err = ins.ExecContext(ctx, mode.String(), r.TrialID, r.ReactionMs, r.MovementMs, r.RecordedAt.UnixNano()); err != nil {
				return goerr.Wrap(err, "failed to insert record", goerr.V("trial", r.TrialID))
			}
		}
		if ms.Errors > 0 {
			if _, err = tx.ExecContext(ctx, `INSERT INTO error_counters (mode, count) VALUES (?, ?)`, mode.String(), ms.Errors); err != nil {
				return goerr.Wrap(err, "failed to write error counter", goerr.V("mode", mode.String()))
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit stats")
	}
	return nil
}
