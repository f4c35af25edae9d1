// Package graphstore persists finished conversion graphs to PostgreSQL so
// that runs can be inspected after the fact. Persistence is optional; the
// Turtle output never depends on it.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
)

// DBPool abstracts the pgxpool.Pool methods the store needs, so tests can
// substitute a mock pool.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ schemas.GraphStore = (*Postgres)(nil)

// Postgres stores conversion graphs in two tables: one row per run and one
// row per triple.
type Postgres struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a store and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Postgres, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{
		pool: pool,
		log:  logger.Named("graphstore"),
	}, nil
}

const insertRunSQL = `
		INSERT INTO kg_runs (id, created_at, triples)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING;
	`

const insertTripleSQL = `
		INSERT INTO kg_triples (run_id, subject, predicate, object, object_kind)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING;
	`

// SaveGraph writes one finished graph under the given run ID in a single
// transaction. ON CONFLICT DO NOTHING mirrors the graph's set semantics.
func (p *Postgres) SaveGraph(ctx context.Context, runID string, g *rdf.Graph) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr != pgx.ErrTxClosed {
			p.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if _, err := tx.Exec(ctx, insertRunSQL, runID, time.Now(), g.Len()); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", runID, err)
	}

	for _, t := range g.Triples() {
		if _, err := tx.Exec(ctx, insertTripleSQL,
			runID, t.Subject.String(), t.Predicate.String(), t.Object.String(), objectKind(t.Object),
		); err != nil {
			return fmt.Errorf("failed to insert triple for run %s: %w", runID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	p.log.Info("Graph persisted", zap.String("run_id", runID), zap.Int("triples", g.Len()))
	return nil
}

// Stats reads aggregate counts across all persisted runs.
func (p *Postgres) Stats(ctx context.Context) (schemas.GraphStats, error) {
	var stats schemas.GraphStats

	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM kg_runs;`).Scan(&stats.Runs)
	if err != nil {
		return schemas.GraphStats{}, fmt.Errorf("failed to count runs: %w", err)
	}

	err = p.pool.QueryRow(ctx, `SELECT count(*), count(DISTINCT subject) FROM kg_triples;`).
		Scan(&stats.Triples, &stats.Subjects)
	if err != nil {
		return schemas.GraphStats{}, fmt.Errorf("failed to count triples: %w", err)
	}

	return stats, nil
}

func objectKind(t rdf.Term) string {
	switch t.Kind {
	case rdf.TermIRI:
		return "iri"
	case rdf.TermBlank:
		return "blank"
	default:
		return "literal"
	}
}
