package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// A Migration changes the schema once, identified by Key.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

// execute runs the Migration and records it in one transaction.
func (m Migration) execute(db *gorm.DB, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return fmt.Errorf("%w: migration %s: %s", ErrMigration, m.Key, err)
		}

		err := tx.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, now.Unix()).Error
		if err != nil {
			return fmt.Errorf("%w: recording migration %s: %s", ErrMigration, m.Key, err)
		}

		return nil
	})
}

// MigrateUp runs every Migration not yet recorded in the migrations table, in order.
// MigrateUp stops at the first Migration to fail.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("%w: creating %s schema: %s", ErrMigration, schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("%w: creating migrations table: %s", ErrMigration, err)
	}

	pending, err := pendingMigrations(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := m.execute(db, time.Now()); err != nil {
			return err
		}
	}

	return nil
}

// pendingMigrations filters out the migrations already run.
func pendingMigrations(db *gorm.DB, all []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Raw("SELECT key FROM migrations").Scan(&ran).Error; err != nil {
		return nil, fmt.Errorf("%w: fetching ran migrations: %s", ErrMigration, err)
	}

	done := make(map[string]bool, len(ran))
	for _, key := range ran {
		done[key] = true
	}

	pending := make([]Migration, 0, len(all))
	for _, m := range all {
		if !done[m.Key] {
			pending = append(pending, m)
		}
	}

	return pending, nil
}
