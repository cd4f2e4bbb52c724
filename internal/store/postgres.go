package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// schema creates the problems table. Enum values are constrained here too,
// but the application coerces before it writes, so the checks are a backstop.
const schema = `
CREATE TABLE IF NOT EXISTS problems (
	id           UUID PRIMARY KEY,
	user_id      TEXT NOT NULL,
	title        TEXT NOT NULL,
	platform     TEXT NOT NULL,
	difficulty   TEXT NOT NULL CHECK (difficulty IN ('Easy', 'Medium', 'Hard')),
	topic        TEXT NOT NULL,
	status       TEXT NOT NULL CHECK (status IN ('Todo', 'In Progress', 'Solved', 'Reviewed')),
	problem_url  TEXT,
	solution_url TEXT,
	notes        TEXT,
	solved_at    TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_problems_user_id ON problems (user_id);
CREATE INDEX IF NOT EXISTS idx_problems_user_solved ON problems (user_id, solved_at);
`

const problemColumns = `id, user_id, title, platform, difficulty, topic, status,
	problem_url, solution_url, notes, solved_at, created_at, updated_at`

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the problems table and indexes if they do not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, userID string, f Filter) ([]domain.Problem, error) {
	wb := newWhereBuilder()
	wb.add("user_id = $%d", userID)
	if f.Status != "" {
		wb.add("status = $%d", f.Status)
	}
	if f.Difficulty != "" {
		wb.add("difficulty = $%d", f.Difficulty)
	}
	if f.Topic != "" {
		wb.add("topic = $%d", f.Topic)
	}
	if f.Search != "" {
		wb.add("(title ILIKE $%d OR platform ILIKE $%d OR topic ILIKE $%d)",
			"%"+f.Search+"%")
	}

	where, args := wb.build()
	query := fmt.Sprintf(
		"SELECT %s FROM problems%s ORDER BY created_at DESC, id",
		problemColumns, where,
	)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer rows.Close()

	var out []domain.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	return out, nil
}

func (s *Postgres) Get(ctx context.Context, userID string, id uuid.UUID) (domain.Problem, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM problems WHERE user_id = $1 AND id = $2",
		problemColumns,
	)
	row := s.pool.QueryRow(ctx, query, userID, id)

	p, err := scanProblem(row)
	if err == pgx.ErrNoRows {
		return domain.Problem{}, ErrNotFound
	}
	if err != nil {
		return domain.Problem{}, fmt.Errorf("get problem: %w", err)
	}
	return p, nil
}

func (s *Postgres) Insert(ctx context.Context, p *domain.Problem) error {
	stampNew(p, time.Now())
	if err := insertOne(ctx, s.pool, p); err != nil {
		return fmt.Errorf("insert problem: %w", err)
	}
	return nil
}

func (s *Postgres) InsertBatch(ctx context.Context, ps []*domain.Problem) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	now := time.Now()
	for _, p := range ps {
		stampNew(p, now)
		if err := insertOne(ctx, tx, p); err != nil {
			return 0, fmt.Errorf("insert imported problem %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import transaction: %w", err)
	}
	return len(ps), nil
}

func (s *Postgres) Update(ctx context.Context, p *domain.Problem) error {
	p.UpdatedAt = time.Now()

	tag, err := s.pool.Exec(ctx, `
		UPDATE problems SET
			title = $3, platform = $4, difficulty = $5, topic = $6,
			status = $7, problem_url = $8, solution_url = $9, notes = $10,
			solved_at = $11, updated_at = $12
		WHERE user_id = $1 AND id = $2`,
		p.UserID, p.ID,
		p.Title, p.Platform, p.Difficulty, p.Topic,
		p.Status, p.ProblemURL, p.SolutionURL, p.Notes,
		p.SolvedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM problems WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// execer covers *pgxpool.Pool and pgx.Tx for the insert helper.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertOne(ctx context.Context, db execer, p *domain.Problem) error {
	_, err := db.Exec(ctx, `
		INSERT INTO problems (`+problemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.UserID, p.Title, p.Platform, p.Difficulty, p.Topic,
		p.Status, p.ProblemURL, p.SolutionURL, p.Notes,
		p.SolvedAt, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// stampNew assigns an ID when absent and sets both timestamps.
func stampNew(p *domain.Problem, now time.Time) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
}

// scanProblem reads one row into a Problem. Nullable columns scan through
// pointer fields directly; pgx maps SQL NULL to nil.
func scanProblem(row pgx.Row) (domain.Problem, error) {
	var p domain.Problem
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Platform, &p.Difficulty, &p.Topic,
		&p.Status, &p.ProblemURL, &p.SolutionURL, &p.Notes,
		&p.SolvedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// whereBuilder accumulates AND-joined conditions with positional args.
// Conditions use $%d placeholders filled with consecutive indices; a
// condition with several placeholders reuses one arg for all of them.
type whereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{argIndex: 1}
}

func (wb *whereBuilder) add(cond string, arg any) {
	n := strings.Count(cond, "$%d")
	idx := make([]any, n)
	for i := range idx {
		idx[i] = wb.argIndex
		wb.argIndex++
		wb.args = append(wb.args, arg)
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf(cond, idx...))
}

func (wb *whereBuilder) build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}
