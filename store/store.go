package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Email is one synced message. MessageID is the provider-assigned identifier
// and the primary key; re-syncing the same ID replaces the row.
type Email struct {
	MessageID   string
	ThreadID    string
	FromEmail   string
	ToEmail     string
	Counterpart string
	Date        time.Time
	Subject     string
	Body        string
	Direction   string // "outbound" or "inbound"
}

// CounterpartCount is one entry of the per-counterpart breakdown.
type CounterpartCount struct {
	Counterpart string `db:"counterpart"`
	Count       int    `db:"count"`
}

// Stats is the aggregate read-back over the whole table.
type Stats struct {
	Total                int
	Outbound             int
	Inbound              int
	DistinctCounterparts int
	Earliest             time.Time // zero when the table is empty
	Latest               time.Time
	PerCounterpart       []CounterpartCount // ordered by count descending
}

const schema = `
CREATE TABLE IF NOT EXISTS emails (
	message_id  TEXT PRIMARY KEY,
	thread_id   TEXT,
	from_email  TEXT,
	to_email    TEXT,
	counterpart TEXT,
	date        INTEGER,
	subject     TEXT,
	body        TEXT,
	direction   TEXT
)`

// Store persists synced emails in a local SQLite database. Timestamps are
// stored as milliseconds since epoch, matching the provider's internal date.
type Store struct {
	db *sqlx.DB
}

// New opens (or creates) the database at dbPath, enables WAL mode, and makes
// sure the schema exists.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// SQLite allows one writer, and in-memory databases are per-connection,
	// so keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset drops all synced rows and recreates the table. Every sync run calls
// this once at the start, so a run is always a full refresh.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS emails"); err != nil {
		return fmt.Errorf("dropping emails table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("recreating emails table: %w", err)
	}
	return nil
}

// Upsert inserts the email, replacing any existing row with the same
// message ID. The store performs no validation.
func (s *Store) Upsert(ctx context.Context, e Email) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO emails (
			message_id, thread_id, from_email, to_email,
			counterpart, date, subject, body, direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.MessageID, e.ThreadID, e.FromEmail, e.ToEmail,
		e.Counterpart, e.Date.UnixMilli(), e.Subject, e.Body, e.Direction,
	)
	if err != nil {
		return fmt.Errorf("upserting email %s: %w", e.MessageID, err)
	}
	return nil
}

// Aggregate computes the summary statistics over all stored rows.
func (s *Store) Aggregate(ctx context.Context) (Stats, error) {
	var agg struct {
		Total    int    `db:"total"`
		Outbound int    `db:"outbound"`
		Inbound  int    `db:"inbound"`
		Distinct int    `db:"distinct_counterparts"`
		Earliest *int64 `db:"earliest"`
		Latest   *int64 `db:"latest"`
	}
	err := s.db.GetContext(ctx, &agg, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN direction = 'outbound' THEN 1 ELSE 0 END), 0) AS outbound,
			COALESCE(SUM(CASE WHEN direction = 'inbound' THEN 1 ELSE 0 END), 0) AS inbound,
			COUNT(DISTINCT counterpart) AS distinct_counterparts,
			MIN(date) AS earliest,
			MAX(date) AS latest
		FROM emails`)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregating emails: %w", err)
	}

	stats := Stats{
		Total:                agg.Total,
		Outbound:             agg.Outbound,
		Inbound:              agg.Inbound,
		DistinctCounterparts: agg.Distinct,
	}
	if agg.Earliest != nil {
		stats.Earliest = time.UnixMilli(*agg.Earliest)
	}
	if agg.Latest != nil {
		stats.Latest = time.UnixMilli(*agg.Latest)
	}

	err = s.db.SelectContext(ctx, &stats.PerCounterpart, `
		SELECT counterpart, COUNT(*) AS count
		FROM emails
		GROUP BY counterpart
		ORDER BY count DESC, counterpart ASC`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting per counterpart: %w", err)
	}
	return stats, nil
}

// List returns all stored emails in chronological order.
func (s *Store) List(ctx context.Context) ([]Email, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT message_id, thread_id, from_email, to_email,
		       counterpart, date, subject, body, direction
		FROM emails
		ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying emails: %w", err)
	}
	defer rows.Close()

	var emails []Email
	for rows.Next() {
		var (
			e      Email
			dateMS int64
		)
		err := rows.Scan(
			&e.MessageID, &e.ThreadID, &e.FromEmail, &e.ToEmail,
			&e.Counterpart, &dateMS, &e.Subject, &e.Body, &e.Direction,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning email row: %w", err)
		}
		e.Date = time.UnixMilli(dateMS)
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
