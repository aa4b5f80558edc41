package seeders

import (
	"errors"

	"invite.link/configs/configslog"
	"invite.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoGroups covers every invitation combination the site renders.
var DemoGroups = []models.InvitationGroup{
	{Name: "The Smith Family", InvitedToNikkah: true, InvitedToWedding: true, InvitedToHenna: true, MaxGuestsWedding: 3, MaxGuestsHenna: 2},
	{Name: "John Doe", InvitedToWedding: true, MaxGuestsWedding: models.NoExtraGuests, MaxGuestsHenna: models.NoExtraGuests},
	{Name: "Sarah", InvitedToHenna: true, MaxGuestsWedding: models.NoExtraGuests, MaxGuestsHenna: 5},
	{Name: "Friends", InvitedToNikkah: true, InvitedToWedding: true, MaxGuestsWedding: 10, MaxGuestsHenna: models.NoExtraGuests},
	{Name: "Open House", InvitedToWedding: true, InvitedToHenna: true, MaxGuestsWedding: models.UnlimitedGuests, MaxGuestsHenna: models.UnlimitedGuests},
}

// SeedGroups inserts the demo groups that are not present yet, matched by name.
func SeedGroups(db *gorm.DB) error {
	var createdCount int
	var errorOccurred bool

	configslog.SLog.Info("Seeding demo groups...")

	for _, demo := range DemoGroups {
		var existing models.InvitationGroup
		result := db.Where("name = ?", demo.Name).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Group '%s' already exists, skipping.", demo.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Group lookup failed", zap.String("name", demo.Name), zap.Error(result.Error))
			errorOccurred = true
			continue
		}

		group := demo
		if err := db.Create(&group).Error; err != nil {
			configslog.Log.Error("Group could not be created", zap.String("name", demo.Name), zap.Error(err))
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Group '%s' created (ID: %d, token: %s).", group.Name, group.ID, group.Token)
		createdCount++
	}

	if errorOccurred {
		return errors.New("at least one demo group could not be seeded")
	}
	if createdCount == 0 {
		configslog.SLog.Info("All demo groups already exist.")
	}
	return nil
}
