package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/genesishub/checkout/app/repository"
	"github.com/genesishub/checkout/internal/pkg/cache"
	"github.com/genesishub/checkout/internal/pkg/database"
	"github.com/genesishub/checkout/internal/pkg/env"
	"github.com/genesishub/checkout/internal/pkg/heartbeat"
	"github.com/genesishub/checkout/internal/pkg/router"
)

func main() {
	app, reconciler := NewApplication()
	reconciler.Start()

	// Stop the reconciler cleanly on SIGINT/SIGTERM before the listener dies.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		reconciler.Stop()
		_ = app.Shutdown()
	}()

	// Listen returns nil after a graceful Shutdown; that is not a failure.
	if err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))); err != nil {
		log.Fatal(err)
	}
}

func NewApplication() (*fiber.App, *heartbeat.Reconciler) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		AppName: "genesishub-checkout",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// ROUTER
	router.InstallRouter(app)

	reconciler := heartbeat.NewReconciler(
		repository.GetGlobalFactory().GetInstanceRepository(),
		heartbeat.DefaultInterval,
		heartbeat.DefaultStaleAfter,
	)

	return app, reconciler
}
