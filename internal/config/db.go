package config

// DBDriver selects the database backend.
type DBDriver string

const (
	// DBDriverMySQL uses a MySQL server for users and the key-value stores.
	DBDriverMySQL DBDriver = "mysql"
	// DBDriverPostgres uses a PostgreSQL server for users and the key-value stores.
	DBDriverPostgres DBDriver = "postgres"
	// DBDriverSQLite uses an embedded sqlite file; the key-value stores fall
	// back to process memory. Intended for development only.
	DBDriverSQLite DBDriver = "sqlite"
)

// DB implements the database settings.
type DB struct {
	Driver   DBDriver
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Extras   string // driver specific DSN suffix, e.g. "parseTime=true"
	Path     string // sqlite file path, ":memory:" for in-memory
}
