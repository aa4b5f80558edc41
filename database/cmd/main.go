package main

import (
	"flag"

	"invite.link/configs"
	"invite.link/configs/configsdatabase"
	"invite.link/configs/configslog"
	"invite.link/database"

	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Create or update the database tables")
	seedFlag := flag.Bool("seed", false, "Insert the demo invitation groups")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Error("Database initialization failed", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database initialization finished.")
}
