package router

import (
	"github.com/genesishub/checkout/app/controllers"
	"github.com/genesishub/checkout/app/repository"
	"github.com/genesishub/checkout/internal/pkg/affiliate"
	"github.com/genesishub/checkout/internal/pkg/database"
	"github.com/genesishub/checkout/internal/pkg/middleware"
	"github.com/genesishub/checkout/internal/pkg/payments"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Genesis Hub checkout API",
		})
	})

	v1 := api.Group("/v1")

	// Checkout routes are rate limited; the status route is polled by the
	// checkout page, so the webhook route below stays outside the limiter
	// to never push gateways into retry loops.
	checkout := v1.Group("/checkout", limiter.New())
	checkout.Post("/", controllers.HandleCreateCheckout)
	checkout.Get("/:code/status", controllers.HandleCheckoutStatus)

	webhooks := controllers.NewWebhookController(
		controllers.NewSettingsSecretProvider(),
		payments.NewServiceFromDB(database.GetDB()),
		affiliate.NewServiceFromDB(database.GetDB()),
	)
	v1.Post("/webhooks/payments", webhooks.HandlePaymentWebhook)

	factory := repository.GetGlobalFactory()
	instances := controllers.NewInstanceController(factory.GetInstanceRepository())
	v1.Post("/instances/heartbeat", instances.HandleHeartbeat)
	v1.Get("/instances/:key/status", instances.HandleStatus)

	settings := controllers.NewAdminSettingsController(factory.GetSettingRepository())
	affiliates := controllers.NewAdminAffiliateController(factory.GetAffiliateRepository())

	admin := v1.Group("/admin", middleware.AdminAPIKeyMiddleware())
	admin.Get("/payments", controllers.HandleAdminListPayments)
	admin.Get("/payments/:id/events", controllers.HandleAdminPaymentEvents)
	admin.Get("/stats", controllers.HandleAdminStats)
	admin.Get("/settings", settings.HandleGetSettings)
	admin.Put("/settings", settings.HandleUpdateSettings)
	admin.Get("/affiliates/:ref_code/commissions", affiliates.HandleListCommissions)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
