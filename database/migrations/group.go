package migrations

import (
	"invite.link/configs/configslog"
	"invite.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateGroupTables creates groups, wedding_guests and henna_guests.
func MigrateGroupTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating groups, wedding_guests & henna_guests tables...")
	err := db.AutoMigrate(&models.InvitationGroup{}, &models.WeddingGuest{}, &models.HennaGuest{})
	if err != nil {
		configslog.Log.Error("Failed to migrate group tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Group tables migrated successfully")
	return nil
}
