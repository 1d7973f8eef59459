package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrLockTimeout is returned when a row lock could not be acquired in time.
// The whole scope has been rolled back and the request may be retried.
var ErrLockTimeout = errors.New("lock wait timeout exceeded")

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Txを開始して fn を実行。fn が nil を返せば COMMIT、エラーなら ROLLBACK。
func RunInTx(ctx context.Context, db *DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return translate(fmt.Errorf("beginning transaction: %w", err))
	}

	if db.Dialect.Name == DriverMySQL && db.LockWait > 0 {
		secs := int(db.LockWait.Seconds())
		if secs < 1 {
			secs = 1
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET SESSION innodb_lock_wait_timeout = %d", secs)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("setting lock wait timeout: %w", err)
		}
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return translate(err)
	}
	if err := tx.Commit(); err != nil {
		return translate(fmt.Errorf("committing transaction: %w", err))
	}
	return nil
}

// 読み取り専用Tx
func ReadOnly(ctx context.Context, db *DB, fn func(ctx context.Context, tx DBTX) error) error {
	// SQLite のドライバは ReadOnly オプションを受け付けないので通常Txで代用
	if db.Dialect.Name == DriverSQLite {
		return RunInTx(ctx, db, nil, fn)
	}
	return RunInTx(ctx, db, &sql.TxOptions{ReadOnly: true}, fn)
}

func translate(err error) error {
	if IsLockTimeout(err) && !errors.Is(err, ErrLockTimeout) {
		return fmt.Errorf("%w: %v", ErrLockTimeout, err)
	}
	return err
}

// IsLockTimeout reports whether err is a lock-wait expiry from either driver.
func IsLockTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrLockTimeout) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1205
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(se.Error(), "UNIQUE")
		}
	}
	return false
}
