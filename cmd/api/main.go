package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/erpcrm-api/internal/application/analytics"
	"github.com/jhoicas/erpcrm-api/internal/application/auth"
	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/erpcrm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/erpcrm-api/internal/infrastructure/postgres"
	infraubl "github.com/jhoicas/erpcrm-api/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/erpcrm-api/internal/interfaces/http"
	"github.com/jhoicas/erpcrm-api/pkg/config"
	"github.com/jhoicas/erpcrm-api/pkg/logger"
	"github.com/jhoicas/erpcrm-api/pkg/password"

	_ "github.com/jhoicas/erpcrm-api/docs"
)

// @title                       ERP-CRM API
// @version                     1.0
// @description                 API multi-firma de ERP/CRM/POS. Las rutas de firma requieren el header X-Tenant-Id.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("require_token", cfg.Auth.RequireToken).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Named("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	cariRepo := postgres.NewCariRepository(pool)
	stokRepo := postgres.NewStokRepository(pool)
	faturaRepo := postgres.NewFaturaRepository(pool)
	masaRepo := postgres.NewMasaRepository(pool)
	adisyonRepo := postgres.NewAdisyonRepository(pool)
	musteriRepo := postgres.NewCrmMusteriRepository(pool)
	aktiviteRepo := postgres.NewCrmAktiviteRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hasher := password.FromName(cfg.Auth.PasswordHasher)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, moduleRepo, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Exportaciones: representación gráfica (PDF) y UBL-TR con digest canónico
	exportUC := billing.NewExportUseCase(faturaRepo, tenantRepo, cariRepo,
		infrapdf.NewMarotoPDFGenerator(), infraubl.NewBuilder())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderTenantID,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: fiber.HeaderContentDisposition + ", " + httpRouter.HeaderDocumentDigest,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP-CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("health: ping DB")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CariUC:        usecase.NewCariUseCase(cariRepo),
		StokUC:        usecase.NewStokUseCase(stokRepo),
		FaturaUC:      billing.NewFaturaUseCase(txRunner, faturaRepo),
		ExportUC:      exportUC,
		MasaUC:        pos.NewMasaUseCase(masaRepo),
		AdisyonUC:     pos.NewAdisyonUseCase(txRunner, adisyonRepo),
		CrmUC:         usecase.NewCrmUseCase(musteriRepo, aktiviteRepo),
		DashboardUC:   appanalytics.NewDashboardUseCase(dashboardRepo),
		AdminUC:       usecase.NewAdminUseCase(tenantRepo, moduleRepo, subRepo, userRepo, hasher),
		ModuleService: usecase.NewModuleService(moduleRepo),
		JWTSecret:     cfg.JWT.Secret,
		RequireToken:  cfg.Auth.RequireToken,
		HideInternal:  cfg.App.IsProduction(),
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
