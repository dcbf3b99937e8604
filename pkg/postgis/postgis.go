// Package postgis stores points in a PostGIS table so quadtree answers can be
// checked against an independent, database-backed spatial index.
package postgis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/kass/go-quadtree/pkg/config"
	"github.com/kass/go-quadtree/pkg/geo"
)

const (
	tableName = "quadtree_points"
	batchSize = 10000
)

// ErrEmptyBatch is returned when BulkInsertPoints is called without points.
var ErrEmptyBatch = errors.New("no points to insert")

// Store is a PostGIS-backed point table
type Store struct {
	db *sql.DB
}

// DSN builds a lib/pq connection URL from the postgis config section
func DSN(cfg config.PostGISConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Open connects using the postgis config section
func Open(ctx context.Context, cfg config.PostGISConfig) (*Store, error) {
	store, err := OpenDSN(ctx, DSN(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.MaxConnections > 0 {
		store.db.SetMaxOpenConns(cfg.MaxConnections)
		store.db.SetMaxIdleConns(cfg.MaxConnections)
	}
	return store, nil
}

// OpenDSN connects to the database and verifies the connection
func OpenDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// InitSchema recreates the points table
func (s *Store) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS ` + tableName + `;`,
		`CREATE TABLE ` + tableName + ` (
			id BIGSERIAL PRIMARY KEY,
			location GEOMETRY(POINT, 0) NOT NULL
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// CreateSpatialIndex creates a GIST index on the geometry column
func (s *Store) CreateSpatialIndex(ctx context.Context) error {
	query := `CREATE INDEX IF NOT EXISTS idx_` + tableName + `_location ON ` + tableName + ` USING GIST(location);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `ANALYZE `+tableName+`;`); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}
	return nil
}

// BulkInsertPoints inserts points in transactional batches. progress, when
// not nil, is called after every committed batch.
func (s *Store) BulkInsertPoints(ctx context.Context, points []geo.Point, progress func(loaded, total int)) error {
	if len(points) == 0 {
		return ErrEmptyBatch
	}

	for start := 0; start < len(points); start += batchSize {
		end := start + batchSize
		if end > len(points) {
			end = len(points)
		}
		if err := s.insertBatch(ctx, points[start:end]); err != nil {
			return fmt.Errorf("failed to insert points %d-%d: %w", start, end, err)
		}
		if progress != nil {
			progress(end, len(points))
		}
	}
	return nil
}

func (s *Store) insertBatch(ctx context.Context, points []geo.Point) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+tableName+` (location) VALUES (ST_SetSRID(ST_MakePoint($1, $2), 0))`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.X, p.Y); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert point %v: %w", p, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// QueryRange returns the stored points contained in b. The database filters
// on the envelope; containment is re-checked with b itself.
func (s *Store) QueryRange(ctx context.Context, b geo.Boundary) ([]geo.Point, error) {
	env := b.Bounds()
	rows, err := s.db.QueryContext(ctx, `
		SELECT ST_X(location), ST_Y(location)
		FROM `+tableName+`
		WHERE location && ST_MakeEnvelope($1, $2, $3, $4, 0)`,
		env.Left(), env.Top(), env.Right(), env.Bottom())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var results []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if b.ContainsPoint(p) {
			results = append(results, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// Count returns the number of stored points
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tableName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Searcher adapts the store to the error-free query signature used by the
// benchmark helpers. The first query error is kept and reported by Err;
// later queries return nil.
type Searcher struct {
	ctx   context.Context
	store *Store

	mu  sync.Mutex
	err error
}

// Searcher returns an adapter whose queries run under ctx
func (s *Store) Searcher(ctx context.Context) *Searcher {
	return &Searcher{ctx: ctx, store: s}
}

func (s *Searcher) QueryRange(b geo.Boundary) []geo.Point {
	s.mu.Lock()
	failed := s.err != nil
	s.mu.Unlock()
	if failed {
		return nil
	}

	points, err := s.store.QueryRange(s.ctx, b)
	if err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
		return nil
	}
	return points
}

// Err returns the first query error, if any
func (s *Searcher) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
