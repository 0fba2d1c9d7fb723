package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"shiphaus-platform/config"
	"shiphaus-platform/handlers"
	"shiphaus-platform/middleware"
	"shiphaus-platform/models"
	"shiphaus-platform/services"
	"shiphaus-platform/store"
	"shiphaus-platform/utils"
	"shiphaus-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024, // uploads are capped at 5MB; leave headroom for the form envelope
	})

	// CORS for the web frontend(s)
	allowedOriginsList := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Cookie",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	st := store.NewGormStore(db)
	if err := st.AutoMigrate(); err != nil {
		log.Fatal("failed to migrate database:", err)
	}
	if err := st.SeedChapters(models.SeedChapters); err != nil {
		log.Fatal("failed to seed chapters:", err)
	}

	blob, err := utils.NewBlobClient(utils.BlobConfig{
		AccountID:       cfg.CloudflareAccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		Bucket:          cfg.R2Bucket,
		CDNBaseURL:      cfg.CDNBaseURL,
	})
	if err != nil {
		log.Fatal("failed to initialize blob client:", err)
	}

	sessions := services.NewAuthSessionClient(cfg.AuthBaseURL)

	submissionService := services.NewSubmissionService(st)
	projectService := services.NewProjectService(st)
	eventService := services.NewEventService(st)
	cliService := services.NewCliService(st, cfg.PublicBaseURL)
	leadService := services.NewLeadService(st)

	// 🔒 Everything admin-prefixed goes through the access gate —
	// admin session or nothing, fail closed. Browser /admin paths get
	// redirects, /api/admin gets 401s.
	app.Use("/admin", middleware.AccessGate(sessions))
	admin := app.Group("/api/admin", middleware.AccessGate(sessions))

	handlers.SetupProjectRoutes(app, admin, projectService, sessions)
	handlers.SetupSubmissionRoutes(app, admin, submissionService)
	handlers.SetupEventRoutes(app, admin, eventService)
	handlers.SetupCliRoutes(app, cliService, blob, sessions)
	handlers.SetupUploadRoutes(app, blob, sessions)
	handlers.SetupLeadRoutes(app, admin, leadService, cliService)

	workers.StartTokenReaper(st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.ListenAddr)
	log.Println("✅ Token reaper running (every 1m)")
	log.Printf("✅ Access gate enforced on /api/admin via %s", cfg.AuthBaseURL)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
