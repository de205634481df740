package main

import (
	"log"

	"facturatie-backend/internal/admin"
	"facturatie-backend/internal/audit"
	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/config"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/facturatie"
	"facturatie-backend/internal/grootboek"
	"facturatie-backend/internal/inkoop"
	"facturatie-backend/internal/jobs"
	"facturatie-backend/internal/models"
	"facturatie-backend/internal/verkoop"
	"facturatie-backend/internal/voorraad"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	database.Init(cfg)

	scheduler := jobs.Start(database.DB)
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName: "Facturatie.sr API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Onverwachte serverfout"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	api := app.Group("/api")

	// Publiek
	api.Post("/auth/setup", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Alles hieronder vereist een geldig JWT
	api.Use(auth.JWTMiddleware(cfg))
	api.Get("/auth/me", auth.MeHandler())

	// Workspacebeheer: alleen super admin
	adminGroup := api.Group("/admin", auth.RequireRole(models.RoleSuperAdmin))
	adminGroup.Post("/workspaces", admin.CreateWorkspaceHandler())
	adminGroup.Get("/workspaces", admin.ListWorkspacesHandler())
	adminGroup.Get("/workspaces/:id", admin.GetWorkspaceHandler())
	adminGroup.Put("/workspaces/:id", admin.UpdateWorkspaceHandler())
	adminGroup.Delete("/workspaces/:id", admin.DeleteWorkspaceHandler())
	adminGroup.Post("/workspaces/:id/users", admin.CreateWorkspaceUserHandler())
	adminGroup.Get("/workspaces/:id/users", admin.ListWorkspaceUsersHandler())

	// Artikelen en voorraad
	api.Get("/artikelen", voorraad.ListArtikelenHandler())
	api.Post("/artikelen", voorraad.CreateArtikelHandler())
	api.Get("/artikelen/:id", voorraad.GetArtikelHandler())
	api.Put("/artikelen/:id", voorraad.UpdateArtikelHandler())
	api.Delete("/artikelen/:id", voorraad.DeleteArtikelHandler())
	api.Post("/artikelen/:id/correctie", voorraad.CorrectieHandler())
	api.Get("/voorraad/mutaties", voorraad.ListMutatiesHandler())
	api.Get("/voorraad/mutaties/export", voorraad.ExportMutatiesHandler())

	// Verkoop
	api.Post("/verkoop/orders", verkoop.CreateOrderHandler())
	api.Get("/verkoop/orders", verkoop.ListOrdersHandler())
	api.Get("/verkoop/orders/:id", verkoop.GetOrderHandler())
	api.Put("/verkoop/orders/:id/status", verkoop.UpdateOrderStatusHandler())
	api.Delete("/verkoop/orders/:id", verkoop.DeleteOrderHandler())

	// Inkoop
	api.Post("/inkoop/orders", inkoop.CreateInkooporderHandler())
	api.Get("/inkoop/orders", inkoop.ListInkooporderHandler())
	api.Put("/inkoop/orders/:id/status", inkoop.UpdateInkooporderStatusHandler())
	api.Post("/inkoop/ontvangsten", inkoop.CreateOntvangstHandler())
	api.Get("/inkoop/ontvangsten", inkoop.ListOntvangstenHandler())
	api.Get("/leveranciers", inkoop.ListLeveranciersHandler())
	api.Post("/leveranciers", inkoop.CreateLeverancierHandler())
	api.Put("/leveranciers/:id", inkoop.UpdateLeverancierHandler())
	api.Delete("/leveranciers/:id", inkoop.DeleteLeverancierHandler())

	// Klanten en facturatie
	api.Get("/klanten", facturatie.ListKlantenHandler())
	api.Post("/klanten", facturatie.CreateKlantHandler())
	api.Put("/klanten/:id", facturatie.UpdateKlantHandler())
	api.Delete("/klanten/:id", facturatie.DeleteKlantHandler())
	api.Get("/klanten/:id/openstaand", facturatie.KlantOpenstaandHandler())
	api.Get("/facturen", facturatie.ListFacturenHandler())
	api.Post("/facturen", facturatie.CreateFactuurHandler())
	api.Get("/facturen/:id", facturatie.GetFactuurHandler())
	api.Delete("/facturen/:id", facturatie.DeleteFactuurHandler())
	api.Post("/facturen/:id/verzenden", facturatie.VerzendFactuurHandler())
	api.Post("/betalingen", facturatie.CreateBetalingHandler())
	api.Get("/betalingen", facturatie.ListBetalingenHandler())
	api.Get("/facturatie/overzicht", facturatie.MaandOverzichtHandler())

	// Grootboek
	api.Get("/grootboek/rekeningen", grootboek.ListRekeningenHandler())
	api.Post("/grootboek/rekeningen", grootboek.CreateRekeningHandler())
	api.Get("/grootboek/journaalposten", grootboek.ListJournaalpostenHandler())
	api.Get("/grootboek/instellingen", grootboek.GetInstellingenHandler())
	api.Put("/grootboek/instellingen", grootboek.UpdateInstellingenHandler())

	// Auditlog
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Printf("Server gestart op poort %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("[FATAL] server gestopt: %v", err)
	}
}
