package FiberConfig

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"Checklist/Config"
	"Checklist/Controllers"
	"Checklist/middleware"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Config   *Config.Config
	Log      *zap.Logger
	Drafts   Controllers.DraftStore
	Renderer Controllers.PDFRenderer
	Uploader Controllers.Submitter
}

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg Config.ServerConfig, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "checklist",
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(middleware.LoggingMiddleware(middleware.DefaultLogConfig(log)))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))
	return app
}

func SetupRoutes(app *fiber.App, d Deps) {
	authController := Controllers.NewAuthController(d.Config.Auth.JWTSecret, d.Config.Auth.SessionTTL)
	draftController := Controllers.NewDraftController(d.Drafts, d.Log)
	checklistController := Controllers.NewChecklistController(d.Renderer, d.Uploader, d.Log)
	verify := middleware.Verify(d.Config.Auth.JWTSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Get("/session", verify, authController.Session)

	// Export is registered before the key route to avoid conflicts
	drafts := api.Group("/drafts", verify)
	drafts.Post("/", draftController.SaveDraft)
	drafts.Get("/", draftController.ListDrafts)
	drafts.Get("/export", draftController.ExportDrafts)
	drafts.Get("/:key", draftController.GetDraft)
	drafts.Delete("/:key", draftController.DeleteDraft)

	checklists := api.Group("/checklists", verify)
	checklists.Post("/preview", checklistController.Preview)
	checklists.Post("/", checklistController.Submit)
}

// Serve listens until ctx is cancelled, then shuts the app down.
func Serve(ctx context.Context, app *fiber.App, port int, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server Up...", zap.Int("port", port))
		errCh <- app.Listen(fmt.Sprintf(":%d", port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return app.Shutdown()
	}
}
