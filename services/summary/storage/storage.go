package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

// Dialect doubles as the database/sql driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectSQLite, DialectPostgres, DialectMySQL:
		return d, nil
	case "sqlite3":
		return DialectSQLite, nil
	case "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

type storage struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

type Storage interface {
	InitSchema(ctx context.Context) error

	InsertTranscript(ctx context.Context, id string, filename *string, content string) (*entity.Transcript, error)
	GetTranscript(ctx context.Context, id string) (*entity.Transcript, error)

	InsertPrompt(ctx context.Context, id, transcriptID, prompt string) (*entity.Prompt, error)
	GetPrompt(ctx context.Context, id, transcriptID string) (*entity.Prompt, error)
	GetLatestPromptForTranscript(ctx context.Context, transcriptID string) (*entity.Prompt, error)

	InsertSummary(ctx context.Context, id, transcriptID string, promptID *string, rawOutput string) (*entity.Summary, error)
	GetSummary(ctx context.Context, id string) (*entity.Summary, error)
	UpdateSummaryEditedOutput(ctx context.Context, id, edited string) (*entity.Summary, error)

	Close() error
}

type Option func(*storage)

// WithClock overrides the clock used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *storage) {
		s.now = now
	}
}

func New(db *sql.DB, dialect Dialect, opts ...Option) Storage {
	s := &storage{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// one writer; avoids "database is locked" and keeps :memory: databases shared
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	return db, nil
}

func (s *storage) Close() error {
	return s.db.Close()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rebind rewrites ? placeholders into the dialect's form.
func (s *storage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withTx runs fn in a transaction, committing on success and rolling back on error or panic.
func (s *storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = apperr.Storage(fmt.Errorf("failed to commit transaction: %w", cerr))
		}
	}()

	return fn(tx)
}

func (s *storage) timestamp() int64 {
	return s.now().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
