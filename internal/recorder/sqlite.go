package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockSentry/internal/model"
)

// SQLiteRecorder appends run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external tools can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS comparisons (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			analysis_date  TEXT NOT NULL,
			symbol         TEXT NOT NULL,
			closing_price  REAL,
			sma_value      REAL,
			sma_period     INTEGER,
			comparison     TEXT,
			pct_difference REAL,
			trend_signal   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_ts ON comparisons(timestamp)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			analysis_date TEXT NOT NULL,
			action        TEXT NOT NULL,
			rule          TEXT,
			spy_pct       REAL,
			qqq_pct       REAL,
			rationale     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_ts ON recommendations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordComparison(res *model.ComparisonResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO comparisons
		(timestamp, analysis_date, symbol, closing_price, sma_value, sma_period, comparison, pct_difference, trend_signal)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.Date.Format("2006-01-02"), res.Symbol,
		res.ClosingPrice, res.SMAValue, res.SMAPeriod,
		string(res.Comparison), res.PercentageDifference, string(res.TrendSignal),
	)
	return err
}

func (r *SQLiteRecorder) RecordRecommendation(rec *model.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO recommendations
		(timestamp, analysis_date, action, rule, spy_pct, qqq_pct, rationale)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Date.Format("2006-01-02"), string(rec.Action),
		rec.TriggeringRule, rec.SPYPct, rec.QQQPct, rec.Rationale,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Debug().Msg("closing sqlite recorder")
	return r.db.Close()
}
