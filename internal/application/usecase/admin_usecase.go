package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/jhoicas/erpcrm-api/pkg/password"
	"github.com/jhoicas/erpcrm-api/pkg/textnorm"
)

var (
	errTenantNotFound = domain.NotFound("Firma bulunamadı.")
	errModuleNotFound = domain.NotFound("Modül bulunamadı.")
)

// AdminUseCase panel del SuperAdmin: firmas, módulos, planes y usuarios.
type AdminUseCase struct {
	tenantRepo repository.TenantRepository
	moduleRepo repository.ModuleRepository
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	hasher     password.Hasher
	now        func() time.Time
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(
	tenantRepo repository.TenantRepository,
	moduleRepo repository.ModuleRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	hasher password.Hasher,
) *AdminUseCase {
	return &AdminUseCase{
		tenantRepo: tenantRepo,
		moduleRepo: moduleRepo,
		subRepo:    subRepo,
		userRepo:   userRepo,
		hasher:     hasher,
		now:        time.Now,
	}
}

// ── Firmas ──────────────────────────────────────────────────────────────────

func (uc *AdminUseCase) ListTenants(ctx context.Context) ([]dto.TenantResponse, error) {
	list, err := uc.tenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTenantResponse(t))
	}
	return out, nil
}

func (uc *AdminUseCase) GetTenant(ctx context.Context, id int64) (*dto.TenantResponse, error) {
	t, err := uc.getTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func (uc *AdminUseCase) getTenant(ctx context.Context, id int64) (*entity.Tenant, error) {
	t, err := uc.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errTenantNotFound
	}
	return t, nil
}

// CreateTenant da de alta una firma activa, o en demo si DemoGun > 0.
func (uc *AdminUseCase) CreateTenant(ctx context.Context, in dto.TenantRequest) (*dto.TenantResponse, error) {
	kod := strings.ToUpper(strings.TrimSpace(in.FirmaKodu))
	if kod == "" {
		return nil, domain.Required("firmaKodu", "Firma kodu gereklidir.")
	}
	if blank(in.FirmaAdi) {
		return nil, domain.Required("firmaAdi", "Firma adı gereklidir.")
	}
	existing, err := uc.tenantRepo.GetByFirmaKodu(ctx, kod)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("firmaKodu", "Bu firma kodu zaten kullanılıyor.")
	}
	t := &entity.Tenant{
		FirmaKodu: kod,
		FirmaAdi:  strings.TrimSpace(in.FirmaAdi),
		VergiNo:   strings.TrimSpace(in.VergiNo),
		Telefon:   strings.TrimSpace(in.Telefon),
		Email:     textnorm.Email(in.Email),
		Adres:     strings.TrimSpace(in.Adres),
		Durum:     entity.TenantAktif,
	}
	if in.DemoGun > 0 {
		end := uc.now().AddDate(0, 0, in.DemoGun)
		t.Durum = entity.TenantDemo
		t.DemoMu = true
		t.DemoBitisTarihi = &end
	}
	if err := uc.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// UpdateTenantDurum cambia el estado comercial. Pasar a Demo exige fecha de fin; salir de Demo la borra.
func (uc *AdminUseCase) UpdateTenantDurum(ctx context.Context, id int64, in dto.TenantDurumRequest) (*dto.TenantResponse, error) {
	durum := entity.TenantDurum(in.Durum)
	if !durum.Valid() {
		return nil, &domain.ValidationError{Field: "durum", Message: "Geçersiz firma durumu."}
	}
	t, err := uc.getTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Durum = durum
	if durum == entity.TenantDemo {
		if in.DemoBitisTarihi == nil && t.DemoBitisTarihi == nil {
			return nil, domain.Required("demoBitisTarihi", "Demo bitiş tarihi gereklidir.")
		}
		t.DemoMu = true
		if in.DemoBitisTarihi != nil {
			t.DemoBitisTarihi = in.DemoBitisTarihi
		}
	} else {
		t.DemoMu = false
		t.DemoBitisTarihi = nil
	}
	now := uc.now()
	t.GuncellemeTarihi = &now
	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// ── Módulos ─────────────────────────────────────────────────────────────────

func (uc *AdminUseCase) ListModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	list, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ModuleResponse{
			ID:          m.ID,
			ModulKodu:   string(m.ModulKodu),
			ModulAdi:    m.ModulAdi,
			Aciklama:    m.Aciklama,
			AylikUcret:  m.AylikUcret,
			YillikUcret: m.YillikUcret,
			Kategori:    m.Kategori,
			Aktif:       m.Aktif,
		})
	}
	return out, nil
}

func (uc *AdminUseCase) ListTenantModules(ctx context.Context, tenantID int64) ([]dto.TenantModuleResponse, error) {
	if _, err := uc.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	list, err := uc.moduleRepo.ListTenantModules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantModuleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.TenantModuleResponse{
			ModuleID:    v.ModuleID,
			ModulKodu:   string(v.ModulKodu),
			ModulAdi:    v.ModulAdi,
			Aktif:       v.Aktif,
			ModuleAktif: v.ModuleAktif,
		})
	}
	return out, nil
}

// SetTenantModule habilita o deshabilita un módulo para la firma y devuelve el estado resultante.
func (uc *AdminUseCase) SetTenantModule(ctx context.Context, tenantID int64, in dto.TenantModuleRequest) ([]dto.TenantModuleResponse, error) {
	if _, err := uc.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	m, err := uc.moduleRepo.GetByCode(ctx, entity.ModuleCode(strings.ToUpper(strings.TrimSpace(in.ModulKodu))))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errModuleNotFound
	}
	if err := uc.moduleRepo.SetTenantModule(ctx, tenantID, m.ID, in.Aktif); err != nil {
		return nil, err
	}
	return uc.ListTenantModules(ctx, tenantID)
}

// ── Planes y suscripciones ──────────────────────────────────────────────────

func (uc *AdminUseCase) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := uc.subRepo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlanResponse(p))
	}
	return out, nil
}

// CreatePlan registra un plan con los módulos indicados por código.
func (uc *AdminUseCase) CreatePlan(ctx context.Context, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if blank(in.PlanKodu) {
		return nil, domain.Required("planKodu", "Plan kodu gereklidir.")
	}
	if blank(in.PlanAdi) {
		return nil, domain.Required("planAdi", "Plan adı gereklidir.")
	}
	p := &entity.SubscriptionPlan{
		PlanKodu:     strings.ToUpper(strings.TrimSpace(in.PlanKodu)),
		PlanAdi:      strings.TrimSpace(in.PlanAdi),
		Aciklama:     strings.TrimSpace(in.Aciklama),
		AylikUcret:   in.AylikUcret,
		YillikUcret:  in.YillikUcret,
		MaxKullanici: in.MaxKullanici,
		Aktif:        true,
		ModuleIDs:    make([]int64, 0, len(in.Moduller)),
	}
	for _, code := range in.Moduller {
		m, err := uc.moduleRepo.GetByCode(ctx, entity.ModuleCode(strings.ToUpper(strings.TrimSpace(code))))
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, &domain.ValidationError{Field: "moduller", Message: "Bilinmeyen modül: " + code}
		}
		p.ModuleIDs = append(p.ModuleIDs, m.ID)
	}
	if err := uc.subRepo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}
	return toPlanResponse(p), nil
}

func (uc *AdminUseCase) ListSubscriptions(ctx context.Context, tenantID int64) ([]dto.SubscriptionResponse, error) {
	if _, err := uc.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	list, err := uc.subRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubscriptionResponse{
			ID:                 s.ID,
			SubscriptionPlanID: s.SubscriptionPlanID,
			BaslangicTarihi:    s.BaslangicTarihi,
			BitisTarihi:        s.BitisTarihi,
			OdemeTipi:          int(s.OdemeTipi),
			Durum:              int(s.Durum),
		})
	}
	return out, nil
}

// ── Usuarios ────────────────────────────────────────────────────────────────

func (uc *AdminUseCase) ListUsers(ctx context.Context, tenantID int64) ([]dto.UserResponse, error) {
	if _, err := uc.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	list, err := uc.userRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// CreateUser da de alta un usuario en la firma. El email es único en todo el sistema.
func (uc *AdminUseCase) CreateUser(ctx context.Context, tenantID int64, in dto.UserRequest) (*dto.UserResponse, error) {
	if _, err := uc.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	email := textnorm.Email(in.Email)
	if email == "" {
		return nil, domain.Required("email", "E-posta gereklidir.")
	}
	rol := entity.RoleUser
	if in.Rol != "" {
		r, ok := entity.ParseRole(in.Rol)
		if !ok {
			return nil, &domain.ValidationError{Field: "rol", Message: "Geçersiz rol."}
		}
		rol = r
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("email", "Bu e-posta adresi zaten kayıtlı.")
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		AdSoyad:      strings.TrimSpace(in.AdSoyad),
		Telefon:      strings.TrimSpace(in.Telefon),
		Rol:          rol,
		Aktif:        true,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:               t.ID,
		FirmaKodu:        t.FirmaKodu,
		FirmaAdi:         t.FirmaAdi,
		VergiNo:          t.VergiNo,
		Telefon:          t.Telefon,
		Email:            t.Email,
		Adres:            t.Adres,
		Durum:            int(t.Durum),
		DurumText:        t.Durum.String(),
		DemoMu:           t.DemoMu,
		DemoBitisTarihi:  t.DemoBitisTarihi,
		OlusturmaTarihi:  t.OlusturmaTarihi,
		GuncellemeTarihi: t.GuncellemeTarihi,
	}
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	ids := p.ModuleIDs
	if ids == nil {
		ids = []int64{}
	}
	return &dto.PlanResponse{
		ID:           p.ID,
		PlanKodu:     p.PlanKodu,
		PlanAdi:      p.PlanAdi,
		Aciklama:     p.Aciklama,
		AylikUcret:   p.AylikUcret,
		YillikUcret:  p.YillikUcret,
		MaxKullanici: p.MaxKullanici,
		Aktif:        p.Aktif,
		ModuleIDs:    ids,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             u.ID,
		TenantID:       u.TenantID,
		Email:          u.Email,
		AdSoyad:        u.AdSoyad,
		Telefon:        u.Telefon,
		Rol:            string(u.Rol),
		Aktif:          u.Aktif,
		SonGirisTarihi: u.SonGirisTarihi,
	}
}
