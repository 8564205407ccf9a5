// Package storage opens the relational database behind the rating store and
// brings its schema up to date.
//
// The backend is chosen from a single DATABASE_URL style value:
//
//	""  "sqlite::memory:"  ":memory:"   in-memory SQLite
//	"sqlite://path"  "sqlite:path"        SQLite file
//	"postgres://..."  "postgresql://..."  PostgreSQL (pgx)
package storage

import (
	"context"
	"io/fs"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Config struct {
	URL          string `yaml:"url" envconfig:"DATABASE_URL"`
	SeedFixtures bool   `yaml:"seedFixtures" envconfig:"RATING_SEED_FIXTURES"`
}

// MemoryURL selects the in-process store instead of a database.
const MemoryURL = "memory://"

func IsMemory(url string) bool {
	return strings.TrimSpace(url) == MemoryURL
}

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

type DB struct {
	*sqlx.DB
	Dialect Dialect
}

func (db *DB) StatementBuilder() sq.StatementBuilderType {
	if db.Dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

type source struct {
	driver   string
	dsn      string
	dialect  Dialect
	inMemory bool
}

var ErrUnsupportedURL = errors.New("unsupported database url")

func parseURL(raw string) (source, error) {
	url := strings.TrimSpace(raw)
	switch {
	case url == "", url == "sqlite::memory:", url == ":memory:":
		return source{driver: "sqlite", dsn: ":memory:", dialect: DialectSQLite, inMemory: true}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return source{driver: "pgx", dsn: url, dialect: DialectPostgres}, nil
	case strings.HasPrefix(url, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite:"), "//")
		if path == "" {
			return source{}, errors.Wrap(ErrUnsupportedURL, "empty sqlite path")
		}
		dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		return source{driver: "sqlite", dsn: dsn, dialect: DialectSQLite}, nil
	default:
		return source{}, errors.Wrapf(ErrUnsupportedURL, "%q", url)
	}
}

// Open connects to the configured database and applies the goose migrations
// found under a directory named after the dialect ("postgres" or "sqlite3")
// in migrations.
func Open(ctx context.Context, cfg *Config, migrations fs.FS, log *zap.Logger) (*DB, error) {
	src, err := parseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, src.driver, src.dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if src.inMemory {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if err := migrate(db, src.dialect, migrations, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, Dialect: src.dialect}, nil
}

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

func migrate(db *sqlx.DB, dialect Dialect, migrations fs.FS, log *zap.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(zap.NewStdLog(log.Named("goose")))
	if err := goose.SetDialect(string(dialect)); err != nil {
		return errors.Wrap(err, "goose dialect")
	}
	if err := goose.Up(db.DB, string(dialect)); err != nil {
		return errors.Wrap(err, "goose up")
	}
	return nil
}
