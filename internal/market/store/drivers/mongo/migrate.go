package mongo

import (
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/internal/market/store/drivers/mongo/migrations"

	"github.com/golang-migrate/migrate/v4/database/mongodb"
)

// ApplyMigrations creates the collections' indexes. The unique indexes are
// what enforce email, username and token uniqueness.
func (s *Store) ApplyMigrations() error {
	driver, err := mongodb.WithInstance(s.client, &mongodb.Config{
		DatabaseName: s.db.Name(),
	})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "mongodb", driver)
}
