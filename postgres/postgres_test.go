package postgres_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/postgres"
	pgdriver "gorm.io/driver/postgres"
)

// newMock opens a *gorm.DB over a mocked connection.
func newMock(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.Nil(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := postgres.Open(pgdriver.New(pgdriver.Config{Conn: conn}), meadowlark.Production)
	require.Nil(t, err)

	return postgres.NewStore(db), mock
}

func TestNewConfig(t *testing.T) {
	tcs := []struct {
		name     string
		env      meadowlark.Environment
		vars     map[string]string
		expected string
		err      error
	}{
		{"Dev-Default", meadowlark.Development, nil, postgres.DefaultDevURL, nil},
		{
			"Dev-Override",
			meadowlark.Development,
			map[string]string{postgres.DatabaseDevURLEnvVar: "postgres://db:5432/dev"},
			"postgres://db:5432/dev",
			nil,
		},
		{"Prod-Missing", meadowlark.Production, nil, "", meadowlark.ErrBadConfig},
		{
			"Prod",
			meadowlark.Production,
			map[string]string{postgres.DatabaseURLEnvVar: "postgres://db:5432/prod"},
			"postgres://db:5432/prod",
			nil,
		},
		{"Unknown", meadowlark.Environment("STAGING"), nil, "", meadowlark.ErrUnknownEnvironment},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv(postgres.DatabaseURLEnvVar, "")
			t.Setenv(postgres.DatabaseDevURLEnvVar, "")
			for k, v := range tc.vars {
				t.Setenv(k, v)
			}

			// Act
			cfg, err := postgres.NewConfig(tc.env)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				require.Nil(t, cfg)
				return
			}

			require.Equal(t, tc.expected, cfg.URL)
		})
	}
}

func TestConnectNoConfig(t *testing.T) {
	// Act
	db, err := postgres.Connect(nil, nil, meadowlark.Development)

	// Assert
	require.ErrorIs(t, err, meadowlark.ErrBadConfig)
	require.Nil(t, db)
}
