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
	errCariNotFound   = domain.NotFound("Cari bulunamadı.")
	errCariReferenced = domain.Referenced("Bu cariye ait faturalar bulunduğu için silinemez.")
)

// CariUseCase CRUD de cuentas corrientes de la firma.
type CariUseCase struct {
	repo repository.CariRepository
}

// NewCariUseCase construye el caso de uso.
func NewCariUseCase(repo repository.CariRepository) *CariUseCase {
	return &CariUseCase{repo: repo}
}

// List todas las cuentas de la firma, por nombre.
func (uc *CariUseCase) List(ctx context.Context, tenantID int64) ([]dto.CariResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toCariResponses(list), nil
}

// ListByTip cuentas del tipo pedido; HerIkisi aparece tanto en clientes como en proveedores.
func (uc *CariUseCase) ListByTip(ctx context.Context, tenantID int64, tip entity.CariTip) ([]dto.CariResponse, error) {
	list, err := uc.repo.ListByTip(ctx, tenantID, tip)
	if err != nil {
		return nil, err
	}
	return toCariResponses(list), nil
}

// Search busca por código, nombre, teléfono o email. Un término vacío devuelve lista vacía.
func (uc *CariUseCase) Search(ctx context.Context, tenantID int64, q string) ([]dto.CariResponse, error) {
	pattern := searchPattern(q)
	if pattern == "" {
		return []dto.CariResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, tenantID, pattern, dto.SearchLimit)
	if err != nil {
		return nil, err
	}
	return toCariResponses(list), nil
}

// GetByID obtiene una cuenta de la firma.
func (uc *CariUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.CariResponse, error) {
	c, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toCariResponse(c), nil
}

func (uc *CariUseCase) get(ctx context.Context, tenantID, id int64) (*entity.Cari, error) {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errCariNotFound
	}
	return c, nil
}

func validateCari(in dto.CariRequest) error {
	if blank(in.CariKodu) {
		return domain.Required("cariKodu", "Cari kodu gereklidir.")
	}
	if blank(in.CariAdi) {
		return domain.Required("cariAdi", "Cari adı gereklidir.")
	}
	if !entity.CariTip(in.CariTip).Valid() {
		return &domain.ValidationError{Field: "cariTip", Message: "Geçersiz cari tipi."}
	}
	return nil
}

// checkKod rechaza un código ya usado por otra cuenta de la firma.
func (uc *CariUseCase) checkKod(ctx context.Context, tenantID, selfID int64, kod string) error {
	existing, err := uc.repo.GetByKod(ctx, tenantID, kod)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("cariKodu", "Bu cari kodu zaten kullanılıyor.")
	}
	return nil
}

// Create da de alta una cuenta. El código es único dentro de la firma.
func (uc *CariUseCase) Create(ctx context.Context, tenantID int64, in dto.CariRequest) (*dto.CariResponse, error) {
	if err := validateCari(in); err != nil {
		return nil, err
	}
	c := &entity.Cari{TenantID: tenantID, Aktif: true}
	applyCari(c, in)
	if err := uc.checkKod(ctx, tenantID, 0, c.CariKodu); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCariResponse(c), nil
}

// Update reemplaza los campos editables. Sin control de versión: gana la última escritura.
func (uc *CariUseCase) Update(ctx context.Context, tenantID, id int64, in dto.CariRequest) (*dto.CariResponse, error) {
	if err := validateCari(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if kod := strings.TrimSpace(in.CariKodu); kod != c.CariKodu {
		if err := uc.checkKod(ctx, tenantID, id, kod); err != nil {
			return nil, err
		}
	}
	applyCari(c, in)
	now := time.Now()
	c.GuncellemeTarihi = &now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCariResponse(c), nil
}

// Delete borra la cuenta si ninguna factura la referencia.
func (uc *CariUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return err
	}
	used, err := uc.repo.HasFatura(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return errCariReferenced
	}
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return errCariReferenced
		}
		return err
	}
	return nil
}

func applyCari(c *entity.Cari, in dto.CariRequest) {
	c.CariKodu = strings.TrimSpace(in.CariKodu)
	c.CariAdi = strings.TrimSpace(in.CariAdi)
	c.CariTip = entity.CariTip(in.CariTip)
	c.VergiDairesi = strings.TrimSpace(in.VergiDairesi)
	c.VergiNo = strings.TrimSpace(in.VergiNo)
	c.Telefon = strings.TrimSpace(in.Telefon)
	c.Email = strings.TrimSpace(in.Email)
	c.Adres = strings.TrimSpace(in.Adres)
	c.Il = strings.TrimSpace(in.Il)
	c.Ilce = strings.TrimSpace(in.Ilce)
	c.Bakiye = in.Bakiye
	c.AlacakLimiti = in.AlacakLimiti
	c.Aktif = boolOr(in.Aktif, c.Aktif)
}

func toCariResponses(list []*entity.Cari) []dto.CariResponse {
	out := make([]dto.CariResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCariResponse(c))
	}
	return out
}

func toCariResponse(c *entity.Cari) *dto.CariResponse {
	return &dto.CariResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		CariKodu:         c.CariKodu,
		CariAdi:          c.CariAdi,
		CariTip:          int(c.CariTip),
		VergiDairesi:     c.VergiDairesi,
		VergiNo:          c.VergiNo,
		Telefon:          c.Telefon,
		Email:            c.Email,
		Adres:            c.Adres,
		Il:               c.Il,
		Ilce:             c.Ilce,
		Bakiye:           c.Bakiye,
		AlacakLimiti:     c.AlacakLimiti,
		Aktif:            c.Aktif,
		OlusturmaTarihi:  c.OlusturmaTarihi,
		GuncellemeTarihi: c.GuncellemeTarihi,
	}
}
