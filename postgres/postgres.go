package postgres

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/meadowlark"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
	cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

	DatabaseURLEnvVar    = "DATABASE_URL"
	DatabaseDevURLEnvVar = "DATABASE_DEV_URL"
	DefaultDevURL        = "postgres://localhost:5432/meadowlark_dev?sslmode=disable"
)

// CxnConfig holds connection information used to connect to a PostgreSQL database.
// A non-empty URL wins over the individual fields.
type CxnConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// NewConfig selects the database for env.
//
// Development falls back to DefaultDevURL; production requires DATABASE_URL.
func NewConfig(env meadowlark.Environment) (*CxnConfig, error) {
	switch env {
	case meadowlark.Development:
		return &CxnConfig{URL: meadowlark.EnvVarOrString(DatabaseDevURLEnvVar, DefaultDevURL)}, nil

	case meadowlark.Production:
		url := os.Getenv(DatabaseURLEnvVar)
		if url == "" {
			return nil, fmt.Errorf("%w: %s is required in %s", meadowlark.ErrBadConfig, DatabaseURLEnvVar, env)
		}

		return &CxnConfig{URL: url}, nil

	default:
		return nil, fmt.Errorf("%w: %q", meadowlark.ErrUnknownEnvironment, env)
	}
}

// Connect opens a connection to the database config describes and runs all migrations.
func Connect(config *CxnConfig, migrations []Migration, env meadowlark.Environment) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: no connection config", meadowlark.ErrBadConfig)
	}

	db, err := Open(postgres.Open(buildCxnStr(config)), env)
	if err != nil {
		return nil, err
	}

	if err := MigrateUp(db, "public", migrations); err != nil {
		return nil, err
	}

	return db, nil
}

// Open opens a *gorm.DB over dialector, logging slow queries and errors.
func Open(dialector gorm.Dialector, env meadowlark.Environment) (*gorm.DB, error) {
	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %s", meadowlark.ErrUnexpected, err)
	}

	return db, nil
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	sslMode := config.SSLMode
	if sslMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		sslMode,
	)
}
