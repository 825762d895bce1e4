package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS digest_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			ticker_count   INTEGER,
			index_count    INTEGER,
			quotes_ok      INTEGER,
			summarized     INTEGER,
			message_length INTEGER,
			delivered      INTEGER,
			delivery_error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON digest_runs(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO digest_runs
		(timestamp, ticker_count, index_count, quotes_ok, summarized, message_length, delivered, delivery_error)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.TickerCount, rec.IndexCount,
		boolToInt(rec.QuotesOK), boolToInt(rec.Summarized),
		rec.MessageLength, boolToInt(rec.Delivered), rec.DeliveryError,
	)
	return err
}

func (r *SQLiteRecorder) LastRun() (*RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRow(`SELECT ticker_count, index_count, quotes_ok, summarized,
		message_length, delivered, delivery_error
		FROM digest_runs ORDER BY timestamp DESC, id DESC LIMIT 1`)

	var rec RunRecord
	var quotesOK, summarized, delivered int
	err := row.Scan(&rec.TickerCount, &rec.IndexCount, &quotesOK, &summarized,
		&rec.MessageLength, &delivered, &rec.DeliveryError)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.QuotesOK = quotesOK != 0
	rec.Summarized = summarized != 0
	rec.Delivered = delivered != 0
	return &rec, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
