package sqlite

import (
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/internal/market/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4/database/sqlite"
)

// ApplyMigrations creates the users and offers tables.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "sqlite", driver)
}
