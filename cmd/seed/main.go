// seed prepara una base nueva: aplica las migraciones, crea la firma DEMO con todos los
// módulos durante 14 días, un SuperAdmin y un TenantAdmin, y datos de ejemplo.
//
// Uso: go run ./cmd/seed
// Es idempotente: lo que ya existe no se vuelve a crear.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/jhoicas/erpcrm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/erpcrm-api/pkg/config"
	"github.com/jhoicas/erpcrm-api/pkg/logger"
	"github.com/jhoicas/erpcrm-api/pkg/password"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoFirmaKodu     = "DEMO"
	demoGun           = 14
	demoAdminEmail    = "demo@demo.local"
	demoAdminPassword = "Demo123!"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Named("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	s := &seeder{
		admin: usecase.NewAdminUseCase(tenantRepo, moduleRepo, postgres.NewSubscriptionRepository(pool), userRepo,
			password.NewBcrypt(bcrypt.DefaultCost)),
		tenants: tenantRepo,
		users:   userRepo,
		cari:    usecase.NewCariUseCase(postgres.NewCariRepository(pool)),
		stok:    usecase.NewStokUseCase(postgres.NewStokRepository(pool)),
		masa:    pos.NewMasaUseCase(postgres.NewMasaRepository(pool)),
		adisyon: pos.NewAdisyonUseCase(txRunner, postgres.NewAdisyonRepository(pool)),
		log:     log.Named("seed"),
	}
	if err := s.run(ctx, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("seed completado")
}

type seeder struct {
	admin   *usecase.AdminUseCase
	tenants repository.TenantRepository
	users   repository.UserRepository
	cari    *usecase.CariUseCase
	stok    *usecase.StokUseCase
	masa    *pos.MasaUseCase
	adisyon *pos.AdisyonUseCase
	log     *logger.Logger
}

func (s *seeder) run(ctx context.Context, cfg config.SeedConfig) error {
	tenant, created, err := s.demoTenant(ctx)
	if err != nil {
		return err
	}
	for _, code := range entity.KnownModules {
		if _, err := s.admin.SetTenantModule(ctx, tenant.ID, dto.TenantModuleRequest{ModulKodu: string(code), Aktif: true}); err != nil {
			return fmt.Errorf("habilitar módulo %s: %w", code, err)
		}
	}

	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}
	superCreated, err := s.ensureUser(ctx, tenant.ID, dto.UserRequest{
		Email: cfg.AdminEmail, Password: adminPassword, AdSoyad: "Sistem Yöneticisi", Rol: string(entity.RoleSuperAdmin),
	})
	if err != nil {
		return err
	}
	if superCreated && cfg.AdminPassword == "" {
		// Solo se muestra una vez; SEED_ADMIN_PASSWORD evita la contraseña aleatoria.
		s.log.Warn().Str("email", cfg.AdminEmail).Str("password", adminPassword).Msg("SuperAdmin creado con contraseña generada")
	}
	if _, err := s.ensureUser(ctx, tenant.ID, dto.UserRequest{
		Email: demoAdminEmail, Password: demoAdminPassword, AdSoyad: "Demo Yönetici", Rol: string(entity.RoleTenantAdmin),
	}); err != nil {
		return err
	}

	if created {
		return s.sampleData(ctx, tenant.ID)
	}
	return nil
}

// demoTenant devuelve la firma DEMO, creándola si no existe.
func (s *seeder) demoTenant(ctx context.Context) (*entity.Tenant, bool, error) {
	t, err := s.tenants.GetByFirmaKodu(ctx, demoFirmaKodu)
	if err != nil {
		return nil, false, fmt.Errorf("buscar firma demo: %w", err)
	}
	if t != nil {
		s.log.Info().Int64("tenant_id", t.ID).Msg("firma demo existente")
		return t, false, nil
	}
	resp, err := s.admin.CreateTenant(ctx, dto.TenantRequest{
		FirmaKodu: demoFirmaKodu,
		FirmaAdi:  "Demo Firma",
		Email:     demoAdminEmail,
		DemoGun:   demoGun,
	})
	if err != nil {
		return nil, false, fmt.Errorf("crear firma demo: %w", err)
	}
	s.log.Info().Int64("tenant_id", resp.ID).Int("demo_gun", demoGun).Msg("firma demo creada")
	return &entity.Tenant{ID: resp.ID, FirmaKodu: resp.FirmaKodu}, true, nil
}

func (s *seeder) ensureUser(ctx context.Context, tenantID int64, in dto.UserRequest) (bool, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return false, fmt.Errorf("buscar usuario %s: %w", in.Email, err)
	}
	if u != nil {
		return false, nil
	}
	if _, err := s.admin.CreateUser(ctx, tenantID, in); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("crear usuario %s: %w", in.Email, err)
	}
	s.log.Info().Str("email", in.Email).Str("rol", in.Rol).Msg("usuario creado")
	return true, nil
}

// sampleData una cuenta, una ficha, una mesa y una comanda abierta.
func (s *seeder) sampleData(ctx context.Context, tenantID int64) error {
	if _, err := s.cari.Create(ctx, tenantID, dto.CariRequest{
		CariKodu: "C001", CariAdi: "Örnek Müşteri A.Ş.", CariTip: int(entity.CariMusteri), Il: "İstanbul",
	}); err != nil {
		return fmt.Errorf("cari de ejemplo: %w", err)
	}
	kdv := 10
	stok, err := s.stok.Create(ctx, tenantID, dto.StokRequest{
		StokKodu: "S001", StokAdi: "Çay", Birim: "Adet", Kategori: "İçecek",
		AlisFiyati: decimal.NewFromInt(8), SatisFiyati: decimal.NewFromInt(25), KdvOrani: &kdv,
		StokMiktari: decimal.NewFromInt(500), MinStokMiktari: decimal.NewFromInt(50),
	})
	if err != nil {
		return fmt.Errorf("stok de ejemplo: %w", err)
	}
	masa, err := s.masa.Create(ctx, tenantID, dto.MasaRequest{MasaNo: "M1", MasaAdi: "Bahçe 1", Bolum: "Bahçe"})
	if err != nil {
		return fmt.Errorf("masa de ejemplo: %w", err)
	}
	ad, err := s.adisyon.Ac(ctx, tenantID, dto.AdisyonAcRequest{
		MasaID:    masa.ID,
		AdisyonNo: "DEMO-" + strings.ToUpper(uuid.NewString()[:8]),
	})
	if err != nil {
		return fmt.Errorf("adisyon de ejemplo: %w", err)
	}
	if _, err := s.adisyon.SatirEkle(ctx, tenantID, ad.ID, dto.AdisyonSatirRequest{
		StokID: stok.ID, Miktar: decimal.NewFromInt(2),
	}); err != nil {
		return fmt.Errorf("línea de ejemplo: %w", err)
	}
	s.log.Info().Int64("tenant_id", tenantID).Str("adisyon_no", ad.AdisyonNo).Msg("datos de ejemplo creados")
	return nil
}
