package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/dbx"
	"github.com/dmitrijs2005/landlease/internal/filex"
	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

const (
	getRecordQuery   = `SELECT value FROM records WHERE kind = ? AND id = ?`
	scanRecordsQuery = `SELECT id, value FROM records WHERE kind = ? ORDER BY id`
	upsertQuery      = `INSERT INTO records (kind, id, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLStore keeps records in a single "records" table of a SQLite or
// PostgreSQL database. Each Update is one database transaction run through
// dbx.WithTx; PostgreSQL transactions use SERIALIZABLE isolation.
type SQLStore struct {
	db      *sql.DB
	dialect dbx.Dialect
	now     func() time.Time
}

// NewSQLStore wraps an open database whose schema is already migrated.
func NewSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, now: time.Now}
}

// OpenSQL opens the database for dialect, applies migrations and returns
// the store. For SQLite the parent directory of the file is created.
func OpenSQL(ctx context.Context, dialect dbx.Dialect, dsn string, log logging.Logger) (*SQLStore, error) {
	if dialect == dbx.DialectSQLite {
		if p := filex.SQLitePath(dsn); p != "" {
			if _, err := filex.EnsureParentDir(p); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == dbx.DialectSQLite {
		// one writer at a time; keeps in-memory databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := RunMigrations(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dialect, err)
	}

	return NewSQLStore(db, dialect), nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrationLogger routes goose output into the application logger.
type migrationLogger struct {
	log logging.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrationLogger) Fatalf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// RunMigrations applies the embedded goose migrations for dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect, log logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	goose.SetLogger(migrationLogger{log: log.With("module", "migrations")})
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.Dir(dialect.GooseDialect()))
}

func (s *SQLStore) txOptions(readOnly bool) *sql.TxOptions {
	if s.dialect != dbx.DialectPostgres {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: readOnly}
}

func (s *SQLStore) Update(ctx context.Context, fn TxFunc) error {
	err := dbx.WithTx(ctx, s.db, s.txOptions(false), func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &sqlTxn{tx: tx, dialect: s.dialect, now: s.now})
	})
	return translateSQLError(err)
}

func (s *SQLStore) View(ctx context.Context, fn TxFunc) error {
	err := dbx.WithTx(ctx, s.db, s.txOptions(true), func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &sqlTxn{tx: tx, dialect: s.dialect, readOnly: true})
	})
	return translateSQLError(err)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

type sqlTxn struct {
	tx       dbx.DBTX
	dialect  dbx.Dialect
	readOnly bool
	now      func() time.Time
}

func (t *sqlTxn) Get(ctx context.Context, key Key) ([]byte, error) {
	var value []byte
	err := t.tx.QueryRowContext(ctx, t.dialect.Rebind(getRecordQuery), string(key.Kind), sortableID(key.ID)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (t *sqlTxn) Set(ctx context.Context, key Key, value []byte) error {
	if t.readOnly {
		return fmt.Errorf("set %s: read-only transaction", key)
	}
	_, err := t.tx.ExecContext(ctx, t.dialect.Rebind(upsertQuery),
		string(key.Kind), sortableID(key.ID), value, t.now().UTC())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (t *sqlTxn) Scan(ctx context.Context, kind Kind, fn func(Key, []byte) error) error {
	rows, err := t.tx.QueryContext(ctx, t.dialect.Rebind(scanRecordsQuery), string(kind))
	if err != nil {
		return fmt.Errorf("scan %s: %w", kind, err)
	}
	defer rows.Close()

	type row struct {
		key   Key
		value []byte
	}
	// drain first so fn may issue further queries on the same transaction
	var all []row
	for rows.Next() {
		var (
			id    string
			value []byte
		)
		if err := rows.Scan(&id, &value); err != nil {
			return fmt.Errorf("scan %s: %w", kind, err)
		}
		n, err := parseSortableID(id)
		if err != nil {
			return fmt.Errorf("%w: %s record with id %q", common.ErrInvariantViolation, kind, id)
		}
		all = append(all, row{key: Key{Kind: kind, ID: n}, value: value})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", kind, err)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, r := range all {
		if err := fn(r.key, r.value); err != nil {
			return err
		}
	}
	return nil
}

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	sqliteBusy             = 5
	sqliteLocked           = 6
)

// translateSQLError maps lost-race errors of both dialects to common.ErrConflict.
func translateSQLError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected) {
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return fmt.Errorf("%w: %v", common.ErrConflict, err)
		}
	}

	return err
}
