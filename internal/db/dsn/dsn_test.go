package dsn_test

import (
	"testing"

	"github.com/authgate-io/authgate/internal/config"
	"github.com/authgate-io/authgate/internal/db/dsn"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				Driver:   config.DBDriverMySQL,
				Host:     "db.local",
				Port:     3306,
				User:     "authgate",
				Password: "secret",
				Name:     "authgate",
				Extras:   "parseTime=true",
			},
			want: "authgate:secret@tcp(db.local:3306)/authgate?parseTime=true",
		},
		{
			name: "postgres",
			db: config.DB{
				Driver:   config.DBDriverPostgres,
				Host:     "db.local",
				Port:     5432,
				User:     "authgate",
				Password: "secret",
				Name:     "authgate",
				Extras:   "sslmode=disable",
			},
			want: "host=db.local user=authgate password=secret dbname=authgate port=5432 sslmode=disable",
		},
		{
			name: "sqlite",
			db: config.DB{
				Driver: config.DBDriverSQLite,
				Path:   "/tmp/authgate.db",
			},
			want: "/tmp/authgate.db",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{DB: tc.db}

			if got := dsn.Create(cfg); got != tc.want {
				t.Errorf("Create() = %q, want %q", got, tc.want)
			}
		})
	}
}
