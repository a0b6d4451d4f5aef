package main

import (
	"context"

	"github.com/lasse00042-cmyk/HandUp/config"
	"github.com/lasse00042-cmyk/HandUp/models"
	"github.com/lasse00042-cmyk/HandUp/routes"
	"github.com/lasse00042-cmyk/HandUp/services"
	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{})
	userStore := store.NewGormStore(db)
	clock := services.SystemClock{}

	// Warm up the Redis connection used for caching and token revocation.
	utils.GetRedis()

	r := routes.SetupRouter(userStore, clock)

	// Nightly rollover + archive dump at the configured local hour.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	archiver := &services.FileArchiveWriter{Dir: cfg.DataDir}
	scheduler := services.NewArchiveScheduler(userStore, archiver, clock, cfg.RolloverHour, utils.Sugar)
	scheduler.Start(ctx)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
