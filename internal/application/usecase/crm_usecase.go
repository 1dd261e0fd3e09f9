package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var (
	errMusteriNotFound  = domain.NotFound("Müşteri bulunamadı.")
	errAktiviteNotFound = domain.NotFound("Aktivite bulunamadı.")
)

// CrmUseCase clientes potenciales del CRM y sus actividades.
// Borrar un cliente borra sus actividades (ON DELETE CASCADE).
type CrmUseCase struct {
	musteriRepo  repository.CrmMusteriRepository
	aktiviteRepo repository.CrmAktiviteRepository
	now          func() time.Time
}

// NewCrmUseCase construye el caso de uso.
func NewCrmUseCase(musteriRepo repository.CrmMusteriRepository, aktiviteRepo repository.CrmAktiviteRepository) *CrmUseCase {
	return &CrmUseCase{musteriRepo: musteriRepo, aktiviteRepo: aktiviteRepo, now: time.Now}
}

// ── Müşteri ─────────────────────────────────────────────────────────────────

func (uc *CrmUseCase) ListMusteri(ctx context.Context, tenantID int64) ([]dto.CrmMusteriResponse, error) {
	return toMusteriResponses(uc.musteriRepo.List(ctx, tenantID))
}

// SearchMusteri busca por código, nombre, empresa, teléfono o email.
func (uc *CrmUseCase) SearchMusteri(ctx context.Context, tenantID int64, q string) ([]dto.CrmMusteriResponse, error) {
	pattern := searchPattern(q)
	if pattern == "" {
		return []dto.CrmMusteriResponse{}, nil
	}
	return toMusteriResponses(uc.musteriRepo.Search(ctx, tenantID, pattern, dto.SearchLimit))
}

func (uc *CrmUseCase) GetMusteri(ctx context.Context, tenantID, id int64) (*dto.CrmMusteriResponse, error) {
	m, err := uc.getMusteri(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toMusteriResponse(m), nil
}

func (uc *CrmUseCase) getMusteri(ctx context.Context, tenantID, id int64) (*entity.CrmMusteri, error) {
	m, err := uc.musteriRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errMusteriNotFound
	}
	return m, nil
}

func validateMusteri(in dto.CrmMusteriRequest) error {
	if blank(in.MusteriKodu) {
		return domain.Required("musteriKodu", "Müşteri kodu gereklidir.")
	}
	if blank(in.MusteriAdi) {
		return domain.Required("musteriAdi", "Müşteri adı gereklidir.")
	}
	return nil
}

func (uc *CrmUseCase) checkMusteriKod(ctx context.Context, tenantID, selfID int64, kod string) error {
	existing, err := uc.musteriRepo.GetByKod(ctx, tenantID, kod)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("musteriKodu", "Bu müşteri kodu zaten kullanılıyor.")
	}
	return nil
}

// CreateMusteri da de alta el cliente con estado "Yeni" si no se indica otro.
func (uc *CrmUseCase) CreateMusteri(ctx context.Context, tenantID int64, in dto.CrmMusteriRequest) (*dto.CrmMusteriResponse, error) {
	if err := validateMusteri(in); err != nil {
		return nil, err
	}
	m := &entity.CrmMusteri{TenantID: tenantID, Aktif: true}
	applyMusteri(m, in)
	if err := uc.checkMusteriKod(ctx, tenantID, 0, m.MusteriKodu); err != nil {
		return nil, err
	}
	if err := uc.musteriRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMusteriResponse(m), nil
}

func (uc *CrmUseCase) UpdateMusteri(ctx context.Context, tenantID, id int64, in dto.CrmMusteriRequest) (*dto.CrmMusteriResponse, error) {
	if err := validateMusteri(in); err != nil {
		return nil, err
	}
	m, err := uc.getMusteri(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkMusteriKod(ctx, tenantID, id, strings.TrimSpace(in.MusteriKodu)); err != nil {
		return nil, err
	}
	applyMusteri(m, in)
	now := uc.now()
	m.GuncellemeTarihi = &now
	if err := uc.musteriRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMusteriResponse(m), nil
}

func (uc *CrmUseCase) DeleteMusteri(ctx context.Context, tenantID, id int64) error {
	if _, err := uc.getMusteri(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.musteriRepo.Delete(ctx, tenantID, id)
}

func applyMusteri(m *entity.CrmMusteri, in dto.CrmMusteriRequest) {
	m.MusteriKodu = strings.TrimSpace(in.MusteriKodu)
	m.MusteriAdi = strings.TrimSpace(in.MusteriAdi)
	m.FirmaAdi = strings.TrimSpace(in.FirmaAdi)
	m.Telefon = strings.TrimSpace(in.Telefon)
	m.Email = strings.TrimSpace(in.Email)
	m.Adres = strings.TrimSpace(in.Adres)
	m.Il = strings.TrimSpace(in.Il)
	m.Ilce = strings.TrimSpace(in.Ilce)
	m.Sektor = strings.TrimSpace(in.Sektor)
	m.MusteriKaynagi = strings.TrimSpace(in.MusteriKaynagi)
	m.MusteriDurumu = strings.TrimSpace(in.MusteriDurumu)
	if m.MusteriDurumu == "" {
		m.MusteriDurumu = entity.DefaultMusteriDurumu
	}
	m.AtananKullaniciID = in.AtananKullaniciID
	m.Not = strings.TrimSpace(in.Not)
	m.Aktif = boolOr(in.Aktif, m.Aktif)
}

// ── Aktivite ────────────────────────────────────────────────────────────────

// ListAktivite actividades de un cliente.
func (uc *CrmUseCase) ListAktivite(ctx context.Context, tenantID, musteriID int64) ([]dto.CrmAktiviteResponse, error) {
	if _, err := uc.getMusteri(ctx, tenantID, musteriID); err != nil {
		return nil, err
	}
	return toAktiviteResponses(uc.aktiviteRepo.ListByMusteri(ctx, tenantID, musteriID))
}

// ListBekleyen actividades sin completar de toda la firma, la más próxima primero.
func (uc *CrmUseCase) ListBekleyen(ctx context.Context, tenantID int64) ([]dto.CrmAktiviteResponse, error) {
	return toAktiviteResponses(uc.aktiviteRepo.ListBekleyen(ctx, tenantID))
}

func (uc *CrmUseCase) GetAktivite(ctx context.Context, tenantID, id int64) (*dto.CrmAktiviteResponse, error) {
	a, err := uc.getAktivite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAktiviteResponse(a), nil
}

func (uc *CrmUseCase) getAktivite(ctx context.Context, tenantID, id int64) (*entity.CrmAktivite, error) {
	a, err := uc.aktiviteRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errAktiviteNotFound
	}
	return a, nil
}

func validateAktivite(in dto.CrmAktiviteRequest) error {
	if blank(in.AktiviteTipi) {
		return domain.Required("aktiviteTipi", "Aktivite tipi gereklidir.")
	}
	if blank(in.Baslik) {
		return domain.Required("baslik", "Başlık gereklidir.")
	}
	return nil
}

// CreateAktivite agrega una actividad al cliente; estado "Planlandı" y prioridad media por defecto.
func (uc *CrmUseCase) CreateAktivite(ctx context.Context, tenantID, musteriID int64, in dto.CrmAktiviteRequest) (*dto.CrmAktiviteResponse, error) {
	if err := validateAktivite(in); err != nil {
		return nil, err
	}
	m, err := uc.getMusteri(ctx, tenantID, musteriID)
	if err != nil {
		return nil, err
	}
	a := &entity.CrmAktivite{TenantID: tenantID, CrmMusteriID: musteriID, Oncelik: entity.DefaultOncelik}
	applyAktivite(a, in)
	if err := uc.aktiviteRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	a.MusteriAdi = m.MusteriAdi
	return toAktiviteResponse(a), nil
}

func (uc *CrmUseCase) UpdateAktivite(ctx context.Context, tenantID, id int64, in dto.CrmAktiviteRequest) (*dto.CrmAktiviteResponse, error) {
	if err := validateAktivite(in); err != nil {
		return nil, err
	}
	a, err := uc.getAktivite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	applyAktivite(a, in)
	now := uc.now()
	a.GuncellemeTarihi = &now
	if err := uc.aktiviteRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAktiviteResponse(a), nil
}

// Tamamla marca la actividad como completada ahora. Repetirlo no cambia la fecha original.
func (uc *CrmUseCase) Tamamla(ctx context.Context, tenantID, id int64) (*dto.CrmAktiviteResponse, error) {
	a, err := uc.getAktivite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a.TamamlanmaTarihi != nil {
		return toAktiviteResponse(a), nil
	}
	now := uc.now()
	a.Durum = entity.TamamlandiAktiviteDurum
	a.TamamlanmaTarihi = &now
	a.GuncellemeTarihi = &now
	if err := uc.aktiviteRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAktiviteResponse(a), nil
}

func (uc *CrmUseCase) DeleteAktivite(ctx context.Context, tenantID, id int64) error {
	if _, err := uc.getAktivite(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.aktiviteRepo.Delete(ctx, tenantID, id)
}

func applyAktivite(a *entity.CrmAktivite, in dto.CrmAktiviteRequest) {
	a.AktiviteTipi = strings.TrimSpace(in.AktiviteTipi)
	a.Baslik = strings.TrimSpace(in.Baslik)
	a.Aciklama = strings.TrimSpace(in.Aciklama)
	a.PlanlananTarih = in.PlanlananTarih
	a.Durum = strings.TrimSpace(in.Durum)
	if a.Durum == "" {
		a.Durum = entity.DefaultAktiviteDurum
	}
	a.SorumluKullaniciID = in.SorumluKullaniciID
	a.Oncelik = intOr(in.Oncelik, a.Oncelik)
}

func toMusteriResponses(list []*entity.CrmMusteri, err error) ([]dto.CrmMusteriResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.CrmMusteriResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMusteriResponse(m))
	}
	return out, nil
}

func toMusteriResponse(m *entity.CrmMusteri) *dto.CrmMusteriResponse {
	return &dto.CrmMusteriResponse{
		ID:                m.ID,
		TenantID:          m.TenantID,
		MusteriKodu:       m.MusteriKodu,
		MusteriAdi:        m.MusteriAdi,
		FirmaAdi:          m.FirmaAdi,
		Telefon:           m.Telefon,
		Email:             m.Email,
		Adres:             m.Adres,
		Il:                m.Il,
		Ilce:              m.Ilce,
		Sektor:            m.Sektor,
		MusteriKaynagi:    m.MusteriKaynagi,
		MusteriDurumu:     m.MusteriDurumu,
		AtananKullaniciID: m.AtananKullaniciID,
		Not:               m.Not,
		Aktif:             m.Aktif,
		OlusturmaTarihi:   m.OlusturmaTarihi,
		GuncellemeTarihi:  m.GuncellemeTarihi,
	}
}

func toAktiviteResponses(list []*entity.CrmAktivite, err error) ([]dto.CrmAktiviteResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.CrmAktiviteResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAktiviteResponse(a))
	}
	return out, nil
}

func toAktiviteResponse(a *entity.CrmAktivite) *dto.CrmAktiviteResponse {
	return &dto.CrmAktiviteResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		CrmMusteriID:       a.CrmMusteriID,
		MusteriAdi:         a.MusteriAdi,
		AktiviteTipi:       a.AktiviteTipi,
		Baslik:             a.Baslik,
		Aciklama:           a.Aciklama,
		PlanlananTarih:     a.PlanlananTarih,
		TamamlanmaTarihi:   a.TamamlanmaTarihi,
		Durum:              a.Durum,
		SorumluKullaniciID: a.SorumluKullaniciID,
		Oncelik:            a.Oncelik,
		OlusturmaTarihi:    a.OlusturmaTarihi,
		GuncellemeTarihi:   a.GuncellemeTarihi,
	}
}
