package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/five82/lanes/internal/trace"

	_ "modernc.org/sqlite"
)

const eventsQuery = `
	SELECT thread_id, thread_name, start_ns, duration_ns, depth, label, kind
	FROM events
	ORDER BY thread_id, start_ns, duration_ns DESC`

// openDB opens a trace database read-only.
func openDB(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}
	return db, nil
}

func readSQLite(ctx context.Context, path string, syms *trace.Symbols) ([]trace.RawEvent, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, eventsQuery)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var raw []trace.RawEvent
	for rows.Next() {
		var (
			threadID          int64
			start, duration   int64
			threadName, label sql.NullString
			kind              sql.NullString
			depth             sql.NullInt64
		)
		if err := rows.Scan(&threadID, &threadName, &start, &duration, &depth, &label, &kind); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		d := -1
		if depth.Valid && depth.Int64 >= 0 {
			d = int(depth.Int64)
		}
		raw = append(raw, trace.RawEvent{
			ThreadID:   threadID,
			ThreadName: threadName.String,
			Start:      start,
			Duration:   max(duration, 0),
			Depth:      d,
			Label:      syms.Intern(label.String),
			Kind:       syms.Intern(kind.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return raw, nil
}
