package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"go-shelter-triage-board/internal/config"
	"go-shelter-triage-board/internal/predictions"
	"go-shelter-triage-board/internal/schema"
)

// ServiceStats holds reachability and table-size data for the status
// dashboard.
type ServiceStats struct {
	PingMS   int64  `json:"ping_ms"`
	Table    string `json:"table"`
	RowCount int64  `json:"row_count"`
}

// Store reads the prediction table from a warehouse MySQL database. Some
// deployments land the scoring pipeline's output in a table instead of the
// blob store; the logical columns are the same and the mapping applies
// unchanged.
type Store struct {
	db           *sql.DB
	table        string
	mapping      schema.Mapping
	queryTimeout time.Duration
}

// NewStore creates a MySQL-backed snapshot source.
func NewStore(cfg config.Config, mapping schema.Mapping) (*Store, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	table := strings.TrimSpace(cfg.DBTable)
	if table == "" {
		_ = db.Close()
		return nil, fmt.Errorf("prediction table name is required")
	}

	return &Store{
		db:           db,
		table:        table,
		mapping:      mapping,
		queryTimeout: cfg.DBQueryTimeout,
	}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name identifies the source in snapshot metadata and metrics.
func (s *Store) Name() string {
	return "mysql"
}

// Fetch selects the full current snapshot. The projection is resolved against
// the table's actual columns first so a configured column that does not exist
// fails fast with a MissingColumnError naming it.
func (s *Store) Fetch(ctx context.Context) ([]predictions.PredictionRow, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	present, err := s.tableColumns(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: describe %s: %v", predictions.ErrUnavailable, s.table, err)
	}
	if err := s.mapping.Validate(func(col string) bool {
		_, ok := present[col]
		return ok
	}); err != nil {
		return nil, 0, err
	}

	cols := s.mapping.Columns(func(col string) bool {
		_, ok := present[col]
		return ok
	})
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM `%s`", strings.Join(quoted, ", "), s.table))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: query %s: %v", predictions.ErrUnavailable, s.table, err)
	}
	defer rows.Close()

	var (
		out     []predictions.PredictionRow
		skipped int
	)
	cells := make([]sql.NullString, len(cols))
	scan := make([]any, len(cols))
	for i := range cells {
		scan[i] = &cells[i]
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, 0, fmt.Errorf("%w: scan %s: %v", predictions.ErrUnavailable, s.table, err)
		}
		rec := func(col string) (string, bool) {
			i, ok := index[col]
			if !ok || !cells[i].Valid {
				return "", false
			}
			return cells[i].String, true
		}
		row, ok := predictions.RowFromRecord(rec, s.mapping)
		if !ok {
			skipped++
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterate %s: %v", predictions.ErrUnavailable, s.table, err)
	}
	return out, skipped, nil
}

func (s *Store) tableColumns(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT COLUMN_NAME
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?;
`, s.table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{}, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("table %s not found", s.table)
	}
	return out, nil
}

// ServiceStats returns database reachability and row count.
func (s *Store) ServiceStats(ctx context.Context) (*ServiceStats, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return nil, err
	}
	out := &ServiceStats{
		PingMS: time.Since(start).Milliseconds(),
		Table:  s.table,
	}

	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM `%s`", s.table)).Scan(&out.RowCount); err != nil {
		return nil, err
	}
	return out, nil
}
