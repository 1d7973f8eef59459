package db

import (
	"context"
	"fmt"
	"strings"
)

// quantity の CHECK は最後の防波堤。負数チェックは ledger が COMMIT 前に行う。
const schemaMySQL = `
CREATE TABLE IF NOT EXISTS accounts (
    id            VARCHAR(64)  NOT NULL PRIMARY KEY,
    password_hash VARCHAR(255) NOT NULL,
    is_disabled   TINYINT(1)   NOT NULL DEFAULT 0,
    created_at    DATETIME(6)  NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
);

CREATE TABLE IF NOT EXISTS equipment_items (
    id               BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    code             VARCHAR(50)  NOT NULL,
    name             VARCHAR(200) NOT NULL,
    unit             VARCHAR(50)  NOT NULL DEFAULT 'Unit',
    quantity         INT          NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    item_condition   VARCHAR(100) NOT NULL DEFAULT '',
    acquisition_year INT          NOT NULL DEFAULT 0,
    room             VARCHAR(200) NULL,
    created_at       DATETIME(6)  NOT NULL,
    UNIQUE KEY uq_equipment_items_code (code)
);

CREATE TABLE IF NOT EXISTS loans (
    id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    loan_ulid   CHAR(26)     NOT NULL,
    item_id     BIGINT       NOT NULL,
    borrower    VARCHAR(200) NOT NULL,
    quantity    INT          NOT NULL CHECK (quantity > 0),
    status      VARCHAR(20)  NOT NULL DEFAULT 'borrowed',
    loaned_at   DATETIME(6)  NOT NULL,
    due_on      DATE         NULL,
    returned_at DATETIME(6)  NULL,
    lent_by     VARCHAR(64)  NULL,
    returned_by VARCHAR(64)  NULL,
    note        TEXT         NULL,
    UNIQUE KEY uq_loans_ulid (loan_ulid),
    KEY idx_loans_item (item_id),
    KEY idx_loans_status (status),
    CONSTRAINT fk_loans_item FOREIGN KEY (item_id) REFERENCES equipment_items (id)
);

CREATE TABLE IF NOT EXISTS consumable_items (
    id         BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    code       VARCHAR(50)  NOT NULL,
    name       VARCHAR(200) NOT NULL,
    unit       VARCHAR(50)  NOT NULL DEFAULT 'Unit',
    quantity   INT          NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    created_at DATETIME(6)  NOT NULL,
    UNIQUE KEY uq_consumable_items_code (code)
);

CREATE TABLE IF NOT EXISTS consumable_inbound (
    id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    tx_ulid     CHAR(26)     NOT NULL,
    item_id     BIGINT       NOT NULL,
    quantity    INT          NOT NULL CHECK (quantity > 0),
    occurred_at DATETIME(6)  NOT NULL,
    source      VARCHAR(200) NOT NULL,
    note        TEXT         NULL,
    recorded_by VARCHAR(64)  NULL,
    UNIQUE KEY uq_consumable_inbound_ulid (tx_ulid),
    KEY idx_consumable_inbound_item (item_id),
    CONSTRAINT fk_consumable_inbound_item FOREIGN KEY (item_id) REFERENCES consumable_items (id)
);

CREATE TABLE IF NOT EXISTS consumable_outbound (
    id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    tx_ulid     CHAR(26)     NOT NULL,
    item_id     BIGINT       NOT NULL,
    quantity    INT          NOT NULL CHECK (quantity > 0),
    occurred_at DATETIME(6)  NOT NULL,
    requester   VARCHAR(200) NOT NULL,
    purpose     VARCHAR(200) NOT NULL,
    note        TEXT         NULL,
    recorded_by VARCHAR(64)  NULL,
    UNIQUE KEY uq_consumable_outbound_ulid (tx_ulid),
    KEY idx_consumable_outbound_item (item_id),
    CONSTRAINT fk_consumable_outbound_item FOREIGN KEY (item_id) REFERENCES consumable_items (id)
)
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS accounts (
    id            TEXT     PRIMARY KEY,
    password_hash TEXT     NOT NULL,
    is_disabled   INTEGER  NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS equipment_items (
    id               INTEGER PRIMARY KEY,
    code             TEXT     NOT NULL UNIQUE,
    name             TEXT     NOT NULL,
    unit             TEXT     NOT NULL DEFAULT 'Unit',
    quantity         INTEGER  NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    item_condition   TEXT     NOT NULL DEFAULT '',
    acquisition_year INTEGER  NOT NULL DEFAULT 0,
    room             TEXT,
    created_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id          INTEGER PRIMARY KEY,
    loan_ulid   TEXT     NOT NULL UNIQUE,
    item_id     INTEGER  NOT NULL REFERENCES equipment_items(id),
    borrower    TEXT     NOT NULL,
    quantity    INTEGER  NOT NULL CHECK (quantity > 0),
    status      TEXT     NOT NULL DEFAULT 'borrowed' CHECK (status IN ('borrowed', 'returned')),
    loaned_at   DATETIME NOT NULL,
    due_on      DATE,
    returned_at DATETIME,
    lent_by     TEXT,
    returned_by TEXT,
    note        TEXT
);

CREATE INDEX IF NOT EXISTS idx_loans_item ON loans(item_id);
CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status);

CREATE TABLE IF NOT EXISTS consumable_items (
    id         INTEGER PRIMARY KEY,
    code       TEXT     NOT NULL UNIQUE,
    name       TEXT     NOT NULL,
    unit       TEXT     NOT NULL DEFAULT 'Unit',
    quantity   INTEGER  NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS consumable_inbound (
    id          INTEGER PRIMARY KEY,
    tx_ulid     TEXT     NOT NULL UNIQUE,
    item_id     INTEGER  NOT NULL REFERENCES consumable_items(id),
    quantity    INTEGER  NOT NULL CHECK (quantity > 0),
    occurred_at DATETIME NOT NULL,
    source      TEXT     NOT NULL,
    note        TEXT,
    recorded_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_consumable_inbound_item ON consumable_inbound(item_id);

CREATE TABLE IF NOT EXISTS consumable_outbound (
    id          INTEGER PRIMARY KEY,
    tx_ulid     TEXT     NOT NULL UNIQUE,
    item_id     INTEGER  NOT NULL REFERENCES consumable_items(id),
    quantity    INTEGER  NOT NULL CHECK (quantity > 0),
    occurred_at DATETIME NOT NULL,
    requester   TEXT     NOT NULL,
    purpose     TEXT     NOT NULL,
    note        TEXT,
    recorded_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_consumable_outbound_item ON consumable_outbound(item_id)
`

// EnsureSchema creates all tables and indexes if they don't already exist.
// Statements are sent one at a time because the MySQL DSN does not enable multiStatements.
func EnsureSchema(ctx context.Context, db *DB) error {
	schema := schemaMySQL
	if db.Dialect.Name == DriverSQLite {
		schema = schemaSQLite
	}
	for i, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
