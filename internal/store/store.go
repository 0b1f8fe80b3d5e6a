package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/benchlab/benchreport/internal/retry"
)

// connectRetry covers a results database that is still starting when the
// report job kicks off, which happens routinely in CI.
var connectRetry = retry.Config{
	MaxRetries:     5,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
	Jitter:         0.1,
}

// Store runs all queries of one report generation on a single database
// session, so setup statements (temporary tables and the like) stay
// visible to the report queries that follow them.
type Store struct {
	conn *sql.Conn
	log  zerolog.Logger
}

// New checks a dedicated connection out of the pool, waiting for the
// database to come up if it has to.
func New(ctx context.Context, db *sql.DB, log zerolog.Logger) (*Store, error) {
	var conn *sql.Conn
	err := retry.Do(ctx, connectRetry, func() error {
		var err error
		if conn, err = db.Conn(ctx); err != nil {
			return err
		}
		if err = conn.PingContext(ctx); err != nil {
			_ = conn.Close()
			conn = nil
		}
		return err
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &Store{conn: conn, log: log}, nil
}

// Close returns the session to the pool.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Environment is one row of the environments table.
type Environment struct {
	ID   int64
	Name string
}

// Environments resolves environment name LIKE patterns to ids, ordered
// by name.
func (s *Store) Environments(ctx context.Context, patterns []string) ([]Environment, error) {
	constraints := make([]string, len(patterns))
	for i, pattern := range patterns {
		constraints[i] = "name LIKE " + Literal(pattern)
	}
	query := "SELECT id, name FROM environments"
	if len(constraints) > 0 {
		query += " WHERE " + strings.Join(constraints, " OR ")
	}
	query += " ORDER BY name"

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query environments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var envs []Environment
	for rows.Next() {
		var env Environment
		if err := rows.Scan(&env.ID, &env.Name); err != nil {
			return nil, fmt.Errorf("scan environment: %w", err)
		}
		envs = append(envs, env)
	}
	return envs, rows.Err()
}

// RunIDs lists the ids of finished benchmark runs in the given
// environments, ordered by id.
func (s *Store) RunIDs(ctx context.Context, envIDs []int64) ([]int64, error) {
	query := "SELECT id FROM benchmark_runs WHERE status = 'ENDED' AND environment_id IN " +
		Literal(envIDs) + " ORDER BY id"

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query benchmark runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exec runs a statement for its side effects only (setup queries).
func (s *Store) Exec(ctx context.Context, query string) error {
	_, err := s.conn.ExecContext(ctx, query)
	return err
}

// Query executes a report query and returns its column names, in result
// order, plus all rows with values normalized to nil, int64, float64,
// bool or string.
func (s *Store) Query(ctx context.Context, query string) ([]string, []map[string]any, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns: %w", err)
	}

	var result []map[string]any
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, name := range columns {
			row[name] = normalize(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	s.log.Debug().
		Int("rows", len(result)).
		Dur("elapsed", time.Since(start)).
		Msg("query executed")
	return columns, result, nil
}

// normalize widens driver values to the small set the report engine
// understands. Byte slices become strings; timestamps format as RFC3339.
func normalize(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
