package database

import "testing"

func TestDialectBasics(t *testing.T) {
	tests := []struct {
		name                 string
		dialect              Dialect
		driverName           string
		supportsLastInsertID bool
		migrationsSubdir     string
	}{
		{
			name:                 "sqlite",
			dialect:              NewSQLiteDialect(),
			driverName:           "sqlite3",
			supportsLastInsertID: true,
			migrationsSubdir:     "sqlite",
		},
		{
			name:                 "postgres",
			dialect:              NewPostgresDialect(),
			driverName:           "postgres",
			supportsLastInsertID: false,
			migrationsSubdir:     "postgres",
		},
		{
			name:                 "mysql",
			dialect:              NewMySQLDialect(),
			driverName:           "mysql",
			supportsLastInsertID: true,
			migrationsSubdir:     "mysql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.supportsLastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.supportsLastInsertID)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	query := "INSERT INTO games (user_id, current_level) VALUES (?, ?)"

	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{name: "sqlite keeps placeholders", dialect: NewSQLiteDialect(), want: query},
		{name: "mysql keeps placeholders", dialect: NewMySQLDialect(), want: query},
		{
			name:    "postgres numbers placeholders",
			dialect: NewPostgresDialect(),
			want:    "INSERT INTO games (user_id, current_level) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(query); got != tt.want {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}
