package main

import (
	"context"
	"fmt"
	"os"

	"invite.link/configs"
	"invite.link/configs/configsdatabase"
	"invite.link/configs/configslog"
	"invite.link/services"
)

func main() {
	cfg := configs.LoadConfig()
	configslog.InitLogger()
	defer configslog.SyncLogger()
	defer configsdatabase.CloseDB()

	newService := func() services.IGroupService {
		configsdatabase.InitDB()
		return services.NewGroupService()
	}

	if err := newRootCmd(cfg, newService).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		configslog.SyncLogger()
		configsdatabase.CloseDB()
		os.Exit(1)
	}
}
