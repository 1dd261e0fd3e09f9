package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/erpcrm-api/internal/application/analytics"
	"github.com/jhoicas/erpcrm-api/internal/application/auth"
	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CariUC        *usecase.CariUseCase
	StokUC        *usecase.StokUseCase
	FaturaUC      *billing.FaturaUseCase
	ExportUC      *billing.ExportUseCase
	MasaUC        *pos.MasaUseCase
	AdisyonUC     *pos.AdisyonUseCase
	CrmUC         *usecase.CrmUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	AdminUC       *usecase.AdminUseCase
	ModuleService *usecase.ModuleService

	JWTSecret    string
	RequireToken bool // AUTH_REQUIRE_TOKEN
	HideInternal bool // producción: sin detalle en los 500
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := NewErrorWriter(deps.Log, deps.HideInternal)
	val := NewRequestValidator()

	api := app.Group("/api")

	// Auth (público, salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, errs, val)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/validate", authHandler.Validate)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Administración de la plataforma: token + SuperAdmin
	adminHandler := NewAdminHandler(deps.AdminUC, errs, val)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleSuperAdmin))
	admin.Get("/tenants", adminHandler.ListTenants)
	admin.Post("/tenants", adminHandler.CreateTenant)
	admin.Get("/tenants/:id", adminHandler.GetTenant)
	admin.Put("/tenants/:id/durum", adminHandler.UpdateTenantDurum)
	admin.Get("/tenants/:id/moduller", adminHandler.ListTenantModules)
	admin.Put("/tenants/:id/moduller", adminHandler.SetTenantModule)
	admin.Get("/tenants/:id/abonelikler", adminHandler.ListSubscriptions)
	admin.Get("/tenants/:id/kullanicilar", adminHandler.ListUsers)
	admin.Post("/tenants/:id/kullanicilar", adminHandler.CreateUser)
	admin.Get("/moduller", adminHandler.ListModules)
	admin.Get("/planlar", adminHandler.ListPlans)
	admin.Post("/planlar", adminHandler.CreatePlan)

	// Rutas de la firma (X-Tenant-Id obligatorio)
	tenant := TenantContext(deps.JWTSecret, deps.RequireToken)
	module := func(code entity.ModuleCode) fiber.Handler { return RequireModule(code, deps.ModuleService) }

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	api.Get("/dashboard/stats", tenant, dashboardHandler.GetStats)

	// Cari
	cariHandler := NewCariHandler(deps.CariUC, errs, val)
	cari := api.Group("/cari", tenant, module(entity.ModuleCari))
	cari.Get("/", cariHandler.List)
	cari.Get("/search", cariHandler.Search)
	cari.Get("/tip/:tip", cariHandler.ListByTip)
	cari.Get("/:id", cariHandler.GetByID)
	cari.Post("/", cariHandler.Create)
	cari.Put("/:id", cariHandler.Update)
	cari.Delete("/:id", cariHandler.Delete)

	// Stok
	stokHandler := NewStokHandler(deps.StokUC, errs, val)
	stok := api.Group("/stok", tenant, module(entity.ModuleStok))
	stok.Get("/", stokHandler.List)
	stok.Get("/search", stokHandler.Search)
	stok.Get("/lowstock", stokHandler.LowStock)
	stok.Get("/kategori/:kategori", stokHandler.ListByKategori)
	stok.Get("/barkod/:barkod", stokHandler.GetByBarkod)
	stok.Get("/:id", stokHandler.GetByID)
	stok.Post("/", stokHandler.Create)
	stok.Put("/:id", stokHandler.Update)
	stok.Delete("/:id", stokHandler.Delete)

	// Fatura
	faturaHandler := NewFaturaHandler(deps.FaturaUC, deps.ExportUC, errs, val)
	fatura := api.Group("/fatura", tenant, module(entity.ModuleFatura))
	fatura.Get("/", faturaHandler.List)
	fatura.Get("/search", faturaHandler.Search)
	fatura.Get("/:id", faturaHandler.GetByID)
	fatura.Post("/", faturaHandler.Create)
	fatura.Put("/:id", faturaHandler.Update)
	fatura.Delete("/:id", faturaHandler.Delete)
	fatura.Post("/:id/onayla", faturaHandler.Onayla)
	fatura.Post("/:id/iptal", faturaHandler.Iptal)
	fatura.Get("/:id/pdf", faturaHandler.PDF)
	fatura.Get("/:id/ubl", faturaHandler.UBL)

	// POS: mesas y comandas
	masaHandler := NewMasaHandler(deps.MasaUC, errs, val)
	masa := api.Group("/masa", tenant, module(entity.ModulePOS))
	masa.Get("/", masaHandler.List)
	masa.Get("/bos", masaHandler.ListBos)
	masa.Get("/:id", masaHandler.GetByID)
	masa.Post("/", masaHandler.Create)
	masa.Put("/:id", masaHandler.Update)
	masa.Delete("/:id", masaHandler.Delete)

	adisyonHandler := NewAdisyonHandler(deps.AdisyonUC, errs, val)
	adisyon := api.Group("/adisyon", tenant, module(entity.ModulePOS))
	adisyon.Get("/", adisyonHandler.List)
	adisyon.Get("/acik", adisyonHandler.ListAcik)
	adisyon.Get("/:id", adisyonHandler.GetByID)
	adisyon.Post("/", adisyonHandler.Ac)
	adisyon.Post("/:id/satir", adisyonHandler.SatirEkle)
	adisyon.Delete("/:id/satir/:satirId", adisyonHandler.SatirSil)
	adisyon.Post("/:id/kapat", adisyonHandler.Kapat)
	adisyon.Post("/:id/iptal", adisyonHandler.Iptal)
	adisyon.Delete("/:id", adisyonHandler.Delete)

	// CRM
	crmHandler := NewCrmHandler(deps.CrmUC, errs, val)
	crm := api.Group("/crm", tenant, module(entity.ModuleCRM))
	crm.Get("/musteri", crmHandler.ListMusteri)
	crm.Get("/musteri/search", crmHandler.SearchMusteri)
	crm.Get("/musteri/:id", crmHandler.GetMusteri)
	crm.Post("/musteri", crmHandler.CreateMusteri)
	crm.Put("/musteri/:id", crmHandler.UpdateMusteri)
	crm.Delete("/musteri/:id", crmHandler.DeleteMusteri)
	crm.Get("/musteri/:id/aktivite", crmHandler.ListAktivite)
	crm.Post("/musteri/:id/aktivite", crmHandler.CreateAktivite)
	crm.Get("/aktivite/bekleyen", crmHandler.ListBekleyen)
	crm.Get("/aktivite/:id", crmHandler.GetAktivite)
	crm.Put("/aktivite/:id", crmHandler.UpdateAktivite)
	crm.Delete("/aktivite/:id", crmHandler.DeleteAktivite)
	crm.Post("/aktivite/:id/tamamla", crmHandler.Tamamla)
}
