package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/stickerdiary/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{
			name: "mysql connection with valid config",
			cfg: config.DatabaseConfig{
				Driver:   DriverMySQL,
				Host:     "localhost",
				Port:     3306,
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
		},
		{
			name: "mysql connection with pool settings",
			cfg: config.DatabaseConfig{
				Driver:          DriverMySQL,
				Host:            "localhost",
				Port:            3306,
				Database:        "testdb",
				Username:        "testuser",
				Password:        "testpass",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
		},
		{
			name: "sqlite connection",
			cfg: config.DatabaseConfig{
				Driver: DriverSQLite,
				Path:   "stickerdiary.db",
			},
		},
		{
			name: "postgres connection",
			cfg: config.DatabaseConfig{
				Driver:   DriverPostgres,
				Host:     "localhost",
				Port:     5432,
				Database: "stickerdiary",
				Username: "diary",
				SSLMode:  "disable",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.cfg.Driver, got.DriverName())
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name: "mysql",
			cfg: config.DatabaseConfig{
				Driver:   DriverMySQL,
				Host:     "db.example.com",
				Port:     3307,
				Database: "diary",
				Username: "admin",
				Password: "secret",
			},
			want: "admin:secret@tcp(db.example.com:3307)/diary?parseTime=true",
		},
		{
			name: "sqlite with params",
			cfg: config.DatabaseConfig{
				Driver: DriverSQLite,
				Path:   "data/diary.db",
				Params: map[string]string{"_foreign_keys": "on"},
			},
			want: "file:data/diary.db?_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name: "postgres",
			cfg: config.DatabaseConfig{
				Driver:   DriverPostgres,
				Host:     "localhost",
				Port:     5432,
				Database: "diary",
				Username: "diary",
				Password: "pw",
				SSLMode:  "disable",
			},
			want: "postgres://diary:pw@localhost:5432/diary?sslmode=disable",
		},
		{
			name:    "sqlite without path",
			cfg:     config.DatabaseConfig{Driver: DriverSQLite},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     config.DatabaseConfig{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSN(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name      string
		attempts  uint
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:     "succeeds first time",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
		},
		{
			name:     "succeeds after a failure",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
				mock.ExpectPing()
			},
		},
		{
			name:     "gives up after all attempts",
			attempts: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			err = Ping(context.Background(), sqlx.NewDb(db, "sqlmock"), tt.attempts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
