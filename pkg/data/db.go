package data

import (
	"database/sql"
	"embed"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	// DataFileName is the default history database file name.
	DataFileName string = "history.db"

	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

var (
	//go:embed sql/*
	f embed.FS

	errDBNotInitialized = errors.New("database not initialized")
)

// Driver returns the database/sql driver name for the DSN.
// postgres:// and postgresql:// URLs use postgres, anything else is
// treated as a sqlite file path.
func Driver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres
	}
	return driverSQLite
}

// Init creates the history schema for dsn. It is safe to call repeatedly.
func Init(dsn string) error {
	if dsn == "" {
		return errors.New("dsn not specified")
	}

	db, err := GetDB(dsn)
	if err != nil {
		return errors.Wrap(err, "error opening database")
	}
	defer db.Close()

	driver := Driver(dsn)
	b, err := f.ReadFile("sql/" + driver + ".sql")
	if err != nil {
		return errors.Wrapf(err, "failed to read the %s schema file", driver)
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Wrapf(err, "failed to create %s schema", driver)
	}

	slog.Debug("db schema ready", "driver", driver)
	return nil
}

// GetDB opens the database for dsn.
func GetDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("dsn not specified")
	}
	conn, err := sql.Open(Driver(dsn), dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", Driver(dsn))
	}
	return conn, nil
}

// Store is an open history database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open initializes the schema for dsn and returns a store ready for use.
func Open(dsn string) (*Store, error) {
	if err := Init(dsn); err != nil {
		return nil, err
	}

	db, err := GetDB(dsn)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, driver: Driver(dsn)}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for postgres.
func rebind(driver, query string) string {
	if driver != driverPostgres {
		return query
	}

	var b strings.Builder
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
