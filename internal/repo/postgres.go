package repo

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrorNotFound = errors.New("not found")

var _ Store = (*PostgresRepo)(nil)

type PostgresRepo struct { // Репозиторий для работы непосредственно с БД
	pool   *pgxpool.Pool
	dsn    string
	logger *zap.Logger
}

// NewPostgresRepo connects to dsn and pings the server once.
func NewPostgresRepo(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return &PostgresRepo{pool: pool, dsn: dsn, logger: logger}, nil
}

// NewPostgresRepoFromPool wraps an existing pool. The caller keeps ownership of
// the pool unless it calls Close on the returned repo.
func NewPostgresRepoFromPool(pool *pgxpool.Pool, dsn string, logger *zap.Logger) *PostgresRepo {
	return &PostgresRepo{pool: pool, dsn: dsn, logger: logger}
}

func (r *PostgresRepo) Bootstrap(ctx context.Context) (bool, error) {
	var existing *string
	if err := r.pool.QueryRow(ctx, `SELECT to_regclass('public.todos')::text`).Scan(&existing); err != nil {
		return false, fmt.Errorf("check todos table: %w", err)
	}

	db, err := goose.OpenDBWithDriver("pgx", r.dsn)
	if err != nil {
		return false, fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(r.logger.Named("goose")))
	if err := goose.SetDialect("postgres"); err != nil {
		return false, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return false, fmt.Errorf("goose up: %w", err)
	}

	if existing != nil {
		r.logger.Info("todos table already exists")
		return false, nil
	}
	r.logger.Info("todos table created")
	return true, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, completed, created_at
		FROM todos
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	id := uuid.New()
	// timestamptz хранит микросекунды
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (id, text, completed, created_at)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id, text, completed, created_at
	`, id, t.Text, createdAt)

	return scanTask(row)
}

func (r *PostgresRepo) SetCompleted(ctx context.Context, id string, completed bool) (model.Task, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.Task{}, ErrorNotFound
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET completed = $2
		WHERE id = $1
		RETURNING id, text, completed, created_at
	`, uid, completed)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrorNotFound
	}

	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func scanTask(row pgx.Row) (model.Task, error) {
	var (
		t  model.Task
		id uuid.UUID
	)
	if err := row.Scan(&id, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
		return t, err
	}
	t.ID = id.String()
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
