package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var (
	errStokNotFound   = domain.NotFound("Stok kartı bulunamadı.")
	errStokReferenced = domain.Referenced("Bu stok kartına ait işlemler bulunduğu için silinemez.")
)

// StokUseCase CRUD de fichas de stock. La existencia solo se fija al crear.
type StokUseCase struct {
	repo repository.StokRepository
}

// NewStokUseCase construye el caso de uso.
func NewStokUseCase(repo repository.StokRepository) *StokUseCase {
	return &StokUseCase{repo: repo}
}

func (uc *StokUseCase) List(ctx context.Context, tenantID int64) ([]dto.StokResponse, error) {
	return toStokResponses(uc.repo.List(ctx, tenantID))
}

func (uc *StokUseCase) ListByKategori(ctx context.Context, tenantID int64, kategori string) ([]dto.StokResponse, error) {
	return toStokResponses(uc.repo.ListByKategori(ctx, tenantID, strings.TrimSpace(kategori)))
}

// ListLowStock fichas activas en o por debajo del mínimo.
func (uc *StokUseCase) ListLowStock(ctx context.Context, tenantID int64) ([]dto.StokResponse, error) {
	return toStokResponses(uc.repo.ListLowStock(ctx, tenantID))
}

// Search busca por código, nombre, barkod o categoría.
func (uc *StokUseCase) Search(ctx context.Context, tenantID int64, q string) ([]dto.StokResponse, error) {
	pattern := searchPattern(q)
	if pattern == "" {
		return []dto.StokResponse{}, nil
	}
	return toStokResponses(uc.repo.Search(ctx, tenantID, pattern, dto.SearchLimit))
}

func (uc *StokUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.StokResponse, error) {
	s, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toStokResponse(s), nil
}

// GetByBarkod lectura de escáner en el punto de venta.
func (uc *StokUseCase) GetByBarkod(ctx context.Context, tenantID int64, barkod string) (*dto.StokResponse, error) {
	s, err := uc.repo.GetByBarkod(ctx, tenantID, strings.TrimSpace(barkod))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errStokNotFound
	}
	return toStokResponse(s), nil
}

func (uc *StokUseCase) get(ctx context.Context, tenantID, id int64) (*entity.StokKarti, error) {
	s, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errStokNotFound
	}
	return s, nil
}

func validateStok(in dto.StokRequest) error {
	if blank(in.StokKodu) {
		return domain.Required("stokKodu", "Stok kodu gereklidir.")
	}
	if blank(in.StokAdi) {
		return domain.Required("stokAdi", "Stok adı gereklidir.")
	}
	if in.SatisFiyati.IsNegative() || in.AlisFiyati.IsNegative() {
		return &domain.ValidationError{Field: "satisFiyati", Message: "Fiyat negatif olamaz."}
	}
	return nil
}

// checkUnique código y barkod (si lo hay) no pueden repetirse en la firma.
func (uc *StokUseCase) checkUnique(ctx context.Context, s *entity.StokKarti) error {
	byKod, err := uc.repo.GetByKod(ctx, s.TenantID, s.StokKodu)
	if err != nil {
		return err
	}
	if byKod != nil && byKod.ID != s.ID {
		return domain.Duplicate("stokKodu", "Bu stok kodu zaten kullanılıyor.")
	}
	if s.Barkod == "" {
		return nil
	}
	byBarkod, err := uc.repo.GetByBarkod(ctx, s.TenantID, s.Barkod)
	if err != nil {
		return err
	}
	if byBarkod != nil && byBarkod.ID != s.ID {
		return domain.Duplicate("barkod", "Bu barkod zaten kullanılıyor.")
	}
	return nil
}

// Create da de alta la ficha con la existencia inicial indicada.
func (uc *StokUseCase) Create(ctx context.Context, tenantID int64, in dto.StokRequest) (*dto.StokResponse, error) {
	if err := validateStok(in); err != nil {
		return nil, err
	}
	s := &entity.StokKarti{TenantID: tenantID, Aktif: true, KdvOrani: entity.DefaultKdvOrani, StokMiktari: in.StokMiktari}
	applyStok(s, in)
	if err := uc.checkUnique(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStokResponse(s), nil
}

// Update reemplaza los campos editables; StokMiktari no se toca.
func (uc *StokUseCase) Update(ctx context.Context, tenantID, id int64, in dto.StokRequest) (*dto.StokResponse, error) {
	if err := validateStok(in); err != nil {
		return nil, err
	}
	s, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	applyStok(s, in)
	if err := uc.checkUnique(ctx, s); err != nil {
		return nil, err
	}
	now := time.Now()
	s.GuncellemeTarihi = &now
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStokResponse(s), nil
}

// Delete borra la ficha si no aparece en facturas ni comandas.
func (uc *StokUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return err
	}
	used, err := uc.repo.HasReferences(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return errStokReferenced
	}
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return errStokReferenced
		}
		return err
	}
	return nil
}

func applyStok(s *entity.StokKarti, in dto.StokRequest) {
	s.StokKodu = strings.TrimSpace(in.StokKodu)
	s.StokAdi = strings.TrimSpace(in.StokAdi)
	s.Barkod = strings.TrimSpace(in.Barkod)
	s.Birim = strings.TrimSpace(in.Birim)
	if s.Birim == "" {
		s.Birim = entity.DefaultBirim
	}
	s.Kategori = strings.TrimSpace(in.Kategori)
	s.AltKategori = strings.TrimSpace(in.AltKategori)
	s.AlisFiyati = in.AlisFiyati
	s.SatisFiyati = in.SatisFiyati
	s.KdvOrani = intOr(in.KdvOrani, s.KdvOrani)
	s.MinStokMiktari = in.MinStokMiktari
	s.Aciklama = strings.TrimSpace(in.Aciklama)
	s.Aktif = boolOr(in.Aktif, s.Aktif)
}

func toStokResponses(list []*entity.StokKarti, err error) ([]dto.StokResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.StokResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStokResponse(s))
	}
	return out, nil
}

func toStokResponse(s *entity.StokKarti) *dto.StokResponse {
	return &dto.StokResponse{
		ID:               s.ID,
		TenantID:         s.TenantID,
		StokKodu:         s.StokKodu,
		StokAdi:          s.StokAdi,
		Barkod:           s.Barkod,
		Birim:            s.Birim,
		Kategori:         s.Kategori,
		AltKategori:      s.AltKategori,
		AlisFiyati:       s.AlisFiyati,
		SatisFiyati:      s.SatisFiyati,
		KdvOrani:         s.KdvOrani,
		StokMiktari:      s.StokMiktari,
		MinStokMiktari:   s.MinStokMiktari,
		Aciklama:         s.Aciklama,
		Aktif:            s.Aktif,
		OlusturmaTarihi:  s.OlusturmaTarihi,
		GuncellemeTarihi: s.GuncellemeTarihi,
	}
}
