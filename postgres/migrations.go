package postgres

import (
	"github.com/xy-planning-network/meadowlark"
	"gorm.io/gorm"
)

// Migrations lists the schema changes for the storefront, oldest first.
func Migrations() []Migration {
	return []Migration{
		{Key: "20240301_create_vacations", Executor: autoMigrate(new(meadowlark.Vacation))},
		{Key: "20240301_create_users", Executor: autoMigrate(new(meadowlark.User))},
		{Key: "20240315_create_attractions", Executor: autoMigrate(new(meadowlark.Attraction), new(meadowlark.AttractionEvent))},
	}
}

func autoMigrate(models ...any) func(*gorm.DB) error {
	return func(tx *gorm.DB) error { return tx.AutoMigrate(models...) }
}
