// Package store archives aggregation runs in a local SQLite database so
// experiment campaigns can be compared after the raw CSVs are gone.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coherence-eval/coherence-eval/perf"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS group_stats (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	packet_size INTEGER NOT NULL,
	mean REAL NOT NULL,
	std REAL NOT NULL,
	min REAL NOT NULL,
	max REAL NOT NULL,
	median REAL NOT NULL,
	count INTEGER NOT NULL,
	q25 REAL NOT NULL,
	q75 REAL NOT NULL,
	cv REAL NOT NULL,
	PRIMARY KEY (run_id, packet_size)
);
`

// DB is a handle on the run archive.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if necessary) the archive at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize archive schema: %w", err)
	}
	return &DB{sql: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.sql.Close() }

// Run identifies one archived aggregation.
type Run struct {
	ID        int64
	Label     string
	Source    string
	CreatedAt time.Time
	Groups    int
}

// SaveRun archives one aggregation result and returns its run ID.
func (d *DB) SaveRun(label, source string, table []perf.GroupStatistics) (int64, error) {
	tx, err := d.sql.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (label, source, created_at) VALUES (?, ?, ?)`,
		label, source, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, g := range table {
		_, err := tx.Exec(
			`INSERT INTO group_stats
			 (run_id, packet_size, mean, std, min, max, median, count, q25, q75, cv)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, g.PacketSize, g.Mean, g.Std, g.Min, g.Max, g.Median, g.Count, g.Q25, g.Q75, g.CV,
		)
		if err != nil {
			return 0, fmt.Errorf("insert group stats for size %d: %w", g.PacketSize, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive transaction: %w", err)
	}
	return id, nil
}

// ListRuns returns every archived run, newest first.
func (d *DB) ListRuns() ([]Run, error) {
	rows, err := d.sql.Query(`
		SELECT r.id, r.label, r.source, r.created_at, COUNT(g.packet_size)
		FROM runs r
		LEFT JOIN group_stats g ON g.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.Source, &r.CreatedAt, &r.Groups); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun returns the archived statistics for one run, ascending by
// packet size, suitable to feed straight back into perf.Compare.
func (d *DB) LoadRun(id int64) ([]perf.GroupStatistics, error) {
	rows, err := d.sql.Query(`
		SELECT packet_size, mean, std, min, max, median, count, q25, q75, cv
		FROM group_stats WHERE run_id = ? ORDER BY packet_size ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}
	defer rows.Close()

	var table []perf.GroupStatistics
	for rows.Next() {
		var g perf.GroupStatistics
		err := rows.Scan(&g.PacketSize, &g.Mean, &g.Std, &g.Min, &g.Max,
			&g.Median, &g.Count, &g.Q25, &g.Q75, &g.CV)
		if err != nil {
			return nil, fmt.Errorf("scan group stats: %w", err)
		}
		g.Degenerate = g.Count == 1
		table = append(table, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("run %d not found in archive", id)
	}
	return table, nil
}
