package data

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // Register the PostgreSQL driver with database/sql.
	_ "modernc.org/sqlite" // Register the pure-Go SQLite driver with database/sql.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect captures what differs between the supported store technologies:
// driver name, placeholder syntax, schema and how dates are encoded.
type Dialect struct {
	Name       string // Short name used in configuration ("postgres" or "sqlite")
	DriverName string // Name registered with database/sql
	schemaFile string
	numbered   bool     // Placeholders are $1, $2, ... instead of ?
	textTime   bool     // Dates are stored as fixed-width RFC 3339 text
	pragmas    []string // Applied by the driver to every new connection
	maxConns   int      // Upper bound on open connections, zero for none
}

// textTimeLayout is RFC 3339 with a fixed nine-digit fraction, so stored
// dates compare correctly as text.
const textTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Postgres stores rows through github.com/lib/pq.
var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "postgres",
	schemaFile: "migrations/postgres.sql",
	numbered:   true,
}

// SQLite stores rows through modernc.org/sqlite.
var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	schemaFile: "migrations/sqlite.sql",
	textTime:   true,
	pragmas: []string{
		"busy_timeout(5000)",
		"journal_mode(WAL)",
		"synchronous(NORMAL)",
	},
	maxConns: 4,
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case Postgres.Name, "postgresql", "pg":
		return Postgres, nil
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
}

// rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// timeArg converts t into the value handed to the driver.
func (d Dialect) timeArg(t time.Time) any {
	if d.textTime {
		return t.UTC().Format(textTimeLayout)
	}
	return t
}

// dsn appends the dialect's connection pragmas to base using the
// modernc.org/sqlite "_pragma" query parameter. busy_timeout comes first so
// the remaining pragmas wait on a locked database instead of failing.
func (d Dialect) dsn(base string) string {
	if len(d.pragmas) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	for _, p := range d.pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// scanTime wraps t so it can be scanned from either a native timestamp
// or its text encoding.
func scanTime(t *time.Time) any {
	return &timeScanner{t: t}
}

type timeScanner struct {
	t *time.Time
}

// Scan implements sql.Scanner.
func (s *timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.t = time.Time{}
		return nil
	case time.Time:
		*s.t = v
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into time.Time", src)
	}
}

func (s *timeScanner) parse(v string) error {
	if v == "" {
		*s.t = time.Time{}
		return nil
	}
	for _, layout := range []string{textTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as time", v)
}

// DBConfig holds connection pool settings.
type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Open opens a connection pool for the dialect, then pings the database with
// a 5-second timeout to confirm it is reachable. The dialect's connection
// cap wins over a larger cfg.MaxOpenConns.
func Open(d Dialect, cfg DBConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open(d.DriverName, d.dsn(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	if d.maxConns > 0 && (cfg.MaxOpenConns <= 0 || cfg.MaxOpenConns > d.maxConns) {
		cfg.MaxOpenConns = d.maxConns
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	schema, err := migrations.ReadFile(d.schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}
