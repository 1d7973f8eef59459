package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultLockWait = 5 * time.Second
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	// sqlite のみ
	Path string `yaml:"path"`
	// 行ロック待ちの上限秒数（0 なら既定値）
	LockWaitSeconds int `yaml:"lock_wait_seconds"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	AdminID       string `yaml:"admin_id"`
	AdminPassword string `yaml:"admin_password"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type Config struct {
	Version     string         `yaml:"version"`
	Mode        string         `yaml:"mode"`
	Addr        string         `yaml:"addr"`
	DB          DatabaseConfig `yaml:"database"`
	Certificate Certs          `yaml:"certificate"`
	Auth        AuthConfig     `yaml:"auth"`
	CORS        CORSConfig     `yaml:"cors"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8443"
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverMySQL
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	return &cfg, nil
}

// Dialect hides the few places where MySQL and SQLite disagree.
type Dialect struct {
	Name string
	// LockClause is appended to a SELECT to take an exclusive row lock.
	// SQLite has no row locks; its transactions start with BEGIN IMMEDIATE instead.
	LockClause string
}

var (
	MySQL  = Dialect{Name: DriverMySQL, LockClause: " FOR UPDATE"}
	SQLite = Dialect{Name: DriverSQLite, LockClause: ""}
)

// DB is a connection pool plus the dialect it speaks.
type DB struct {
	*sql.DB
	Dialect  Dialect
	LockWait time.Duration
}

func Connect(c DatabaseConfig) (*DB, error) {
	lockWait := defaultLockWait
	if c.LockWaitSeconds > 0 {
		lockWait = time.Duration(c.LockWaitSeconds) * time.Second
	}

	switch c.Driver {
	case DriverMySQL, "":
		return connectMySQL(c, lockWait)
	case DriverSQLite:
		return OpenSQLite(c.Path, lockWait)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func connectMySQL(c DatabaseConfig, lockWait time.Duration) (*DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
		c.Username, c.Password, c.Host, c.Port, c.DBName)

	db, err := sql.Open(DriverMySQL, dsn)
	if err != nil {
		return nil, fmt.Errorf("preparing connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// 接続プール（合算がMySQLの max_connections を超えないよう配分する）
	db.SetMaxOpenConns(80)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{DB: db, Dialect: MySQL, LockWait: lockWait}, nil
}

// OpenSQLite opens a file-backed SQLite database. Every transaction is started
// with BEGIN IMMEDIATE so the write lock is held before the first read.
func OpenSQLite(path string, lockWait time.Duration) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", lockWait.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	// 時刻は文字列比較で並ぶ形式で書く
	q.Set("_time_format", "sqlite")
	dsn := "file:" + path + "?" + q.Encode()

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &DB{DB: db, Dialect: SQLite, LockWait: lockWait}, nil
}
