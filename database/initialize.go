package database

import (
	"errors"

	"invite.link/configs/configslog"
	"invite.link/database/migrations"
	"invite.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs the migrations and/or seeders in one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return nil
	}

	configslog.SLog.Info("Database initialization starting...")

	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not set, skipping migrations.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not set, skipping seeders.")
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrInvalidTransaction) {
			configslog.Log.Warn("Database initialization rolled back.", zap.Error(err))
		}
		return err
	}

	configslog.SLog.Info("Database initialization completed")
	return nil
}

// RunMigrationsInOrder creates the tables, parents first.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Group migrations running...")
	if err := migrations.MigrateGroupTables(db); err != nil {
		return err
	}
	configslog.SLog.Info(" -> Group migrations done.")
	return nil
}

// CheckAndRunSeeders inserts the demo data that is missing.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Group seeder running...")
	if err := seeders.SeedGroups(db); err != nil {
		return err
	}
	configslog.SLog.Info(" -> Group seeder done.")
	return nil
}
