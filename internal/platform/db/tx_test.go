package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
)

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func TestRunInTxCommits(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	err := RunInTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, password_hash) VALUES (?, ?)`, "op1", "x")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
	if n := countRows(t, db, "accounts"); n != 1 {
		t.Errorf("expected 1 account, got %d", n)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := RunInTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, password_hash) VALUES (?, ?)`, "op1", "x"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n := countRows(t, db, "accounts"); n != 0 {
		t.Errorf("expected rollback to leave 0 accounts, got %d", n)
	}
}

func TestQuantityCheckConstraint(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO consumable_items (code, name, quantity, created_at)
		VALUES ('K-1', 'Kertas', -1, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected CHECK constraint to reject negative quantity")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	db := NewTestDB(t)

	insert := `INSERT INTO consumable_items (code, name, created_at) VALUES ('K-1', 'Kertas', CURRENT_TIMESTAMP)`
	if _, err := db.Exec(insert); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := db.Exec(insert)
	if !IsDuplicateKey(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}

	if !IsDuplicateKey(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1062})) {
		t.Error("expected MySQL 1062 to be a duplicate key")
	}
}

func TestIsLockTimeout(t *testing.T) {
	if !IsLockTimeout(&mysql.MySQLError{Number: 1205}) {
		t.Error("expected MySQL 1205 to be a lock timeout")
	}
	if IsLockTimeout(&mysql.MySQLError{Number: 1062}) {
		t.Error("1062 is not a lock timeout")
	}
	if !IsLockTimeout(fmt.Errorf("%w: x", ErrLockTimeout)) {
		t.Error("expected wrapped ErrLockTimeout to match")
	}
	if IsLockTimeout(nil) {
		t.Error("nil is not a lock timeout")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "mode: dev\ndatabase:\n  driver: sqlite\n  path: /tmp/x.sqlite3\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8443" {
		t.Errorf("expected default addr :8443, got %q", cfg.Addr)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("expected default token ttl 24, got %d", cfg.Auth.TokenTTLHours)
	}
}

func TestTimestampScan(t *testing.T) {
	var ts Timestamp
	for _, in := range []any{
		"2024-08-17 09:30:00+07:00",
		"2024-08-17T02:30:00Z",
		[]byte("2024-08-17 02:30:00"),
	} {
		if err := ts.Scan(in); err != nil {
			t.Fatalf("Scan(%v): %v", in, err)
		}
		if ts.UTC().Hour() != 2 || ts.Minute() != 30 {
			t.Errorf("Scan(%v) = %v", in, ts.Time)
		}
	}
	if err := ts.Scan(42); err == nil {
		t.Error("expected error for int input")
	}
}
