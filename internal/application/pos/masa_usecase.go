package pos

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var (
	errMasaNotFound   = domain.NotFound("Masa bulunamadı.")
	errMasaReferenced = domain.Referenced("Bu masaya ait adisyonlar bulunduğu için silinemez.")
)

// MasaUseCase CRUD de mesas. El estado lo mueven las comandas, aunque PUT permite corregirlo.
type MasaUseCase struct {
	repo repository.MasaRepository
}

// NewMasaUseCase construye el caso de uso.
func NewMasaUseCase(repo repository.MasaRepository) *MasaUseCase {
	return &MasaUseCase{repo: repo}
}

func (uc *MasaUseCase) List(ctx context.Context, tenantID int64) ([]dto.MasaResponse, error) {
	return toMasaResponses(uc.repo.List(ctx, tenantID))
}

// ListBos mesas activas libres.
func (uc *MasaUseCase) ListBos(ctx context.Context, tenantID int64) ([]dto.MasaResponse, error) {
	return toMasaResponses(uc.repo.ListByDurum(ctx, tenantID, entity.MasaBos))
}

func (uc *MasaUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.MasaResponse, error) {
	m, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toMasaResponse(m), nil
}

func (uc *MasaUseCase) get(ctx context.Context, tenantID, id int64) (*entity.Masa, error) {
	m, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errMasaNotFound
	}
	return m, nil
}

func (uc *MasaUseCase) checkNo(ctx context.Context, tenantID, selfID int64, no string) error {
	existing, err := uc.repo.GetByNo(ctx, tenantID, no)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("masaNo", "Bu masa numarası zaten kullanılıyor.")
	}
	return nil
}

func (uc *MasaUseCase) Create(ctx context.Context, tenantID int64, in dto.MasaRequest) (*dto.MasaResponse, error) {
	if blank(in.MasaNo) {
		return nil, domain.Required("masaNo", "Masa numarası gereklidir.")
	}
	m := &entity.Masa{TenantID: tenantID, Kapasite: entity.DefaultKapasite, Durum: entity.MasaBos, Aktif: true}
	applyMasa(m, in)
	if err := uc.checkNo(ctx, tenantID, 0, m.MasaNo); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMasaResponse(m), nil
}

func (uc *MasaUseCase) Update(ctx context.Context, tenantID, id int64, in dto.MasaRequest) (*dto.MasaResponse, error) {
	if blank(in.MasaNo) {
		return nil, domain.Required("masaNo", "Masa numarası gereklidir.")
	}
	m, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	applyMasa(m, in)
	if err := uc.checkNo(ctx, tenantID, id, m.MasaNo); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMasaResponse(m), nil
}

// Delete borra la mesa si ninguna comanda (abierta o histórica) la usa.
func (uc *MasaUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return err
	}
	used, err := uc.repo.HasAdisyon(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return errMasaReferenced
	}
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return errMasaReferenced
		}
		return err
	}
	return nil
}

func applyMasa(m *entity.Masa, in dto.MasaRequest) {
	m.MasaNo = strings.TrimSpace(in.MasaNo)
	m.MasaAdi = strings.TrimSpace(in.MasaAdi)
	m.Bolum = strings.TrimSpace(in.Bolum)
	if in.Kapasite != nil {
		m.Kapasite = *in.Kapasite
	}
	if in.Durum != nil {
		m.Durum = entity.MasaDurum(*in.Durum)
	}
	if in.Aktif != nil {
		m.Aktif = *in.Aktif
	}
}

func toMasaResponses(list []*entity.Masa, err error) ([]dto.MasaResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.MasaResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMasaResponse(m))
	}
	return out, nil
}

func toMasaResponse(m *entity.Masa) *dto.MasaResponse {
	return &dto.MasaResponse{
		ID:              m.ID,
		TenantID:        m.TenantID,
		MasaNo:          m.MasaNo,
		MasaAdi:         m.MasaAdi,
		Kapasite:        m.Kapasite,
		Bolum:           m.Bolum,
		Durum:           int(m.Durum),
		DurumText:       m.Durum.Display(),
		Aktif:           m.Aktif,
		OlusturmaTarihi: m.OlusturmaTarihi,
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
