package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/jhoicas/erpcrm-api/pkg/textnorm"
)

var errFaturaNotFound = domain.NotFound("Fatura bulunamadı.")

// FaturaUseCase alta, edición y ciclo de vida de facturas (Taslak → Onaylandi → Iptal).
// Cabecera y líneas se escriben siempre en la misma transacción.
type FaturaUseCase struct {
	txRunner   TxRunner
	faturaRepo repository.FaturaRepository
	now        func() time.Time
}

// NewFaturaUseCase construye el caso de uso.
func NewFaturaUseCase(txRunner TxRunner, faturaRepo repository.FaturaRepository) *FaturaUseCase {
	return &FaturaUseCase{txRunner: txRunner, faturaRepo: faturaRepo, now: time.Now}
}

// List facturas de la firma, la más reciente primero.
func (uc *FaturaUseCase) List(ctx context.Context, tenantID int64) ([]dto.FaturaListItem, error) {
	list, err := uc.faturaRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toFaturaListItems(list), nil
}

// Search por número de factura o nombre de la cuenta.
func (uc *FaturaUseCase) Search(ctx context.Context, tenantID int64, q string) ([]dto.FaturaListItem, error) {
	pattern := textnorm.LikePattern(q)
	if pattern == "" {
		return []dto.FaturaListItem{}, nil
	}
	list, err := uc.faturaRepo.Search(ctx, tenantID, pattern, dto.SearchLimit)
	if err != nil {
		return nil, err
	}
	return toFaturaListItems(list), nil
}

// GetByID factura con sus líneas.
func (uc *FaturaUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.FaturaResponse, error) {
	f, err := getFatura(ctx, uc.faturaRepo, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toFaturaResponse(f), nil
}

func getFatura(ctx context.Context, repo repository.FaturaRepository, tenantID, id int64) (*entity.Fatura, error) {
	f, err := repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errFaturaNotFound
	}
	return f, nil
}

func validateFatura(in dto.FaturaRequest) error {
	if blank(in.FaturaNo) {
		return domain.Required("faturaNo", "Fatura numarası gereklidir.")
	}
	if !entity.FaturaTipi(in.FaturaTipi).Valid() {
		return &domain.ValidationError{Field: "faturaTipi", Message: "Geçersiz fatura tipi."}
	}
	if len(in.Satirlar) == 0 {
		return domain.Required("satirlar", "Fatura en az bir satır içermelidir.")
	}
	for i, s := range in.Satirlar {
		field := fmt.Sprintf("satirlar[%d]", i)
		if !s.Miktar.IsPositive() {
			return &domain.ValidationError{Field: field + ".miktar", Message: "Miktar sıfırdan büyük olmalıdır."}
		}
		if s.BirimFiyat.IsNegative() {
			return &domain.ValidationError{Field: field + ".birimFiyat", Message: "Birim fiyat negatif olamaz."}
		}
		if s.IndirimOrani.IsNegative() || s.IndirimOrani.GreaterThan(decimal.NewFromInt(100)) {
			return &domain.ValidationError{Field: field + ".indirimOrani", Message: "İndirim oranı 0 ile 100 arasında olmalıdır."}
		}
	}
	return nil
}

// build completa cabecera y líneas validando la cuenta y las fichas dentro de la transacción.
// Con BirimFiyat cero se toma el precio de la ficha (compra o venta según el tipo) y sin
// KdvOrani la tasa de la ficha.
func (uc *FaturaUseCase) build(
	ctx context.Context,
	f *entity.Fatura,
	in dto.FaturaRequest,
	cariRepo repository.CariRepository,
	stokRepo repository.StokRepository,
) error {
	f.FaturaNo = strings.TrimSpace(in.FaturaNo)
	f.FaturaTipi = entity.FaturaTipi(in.FaturaTipi)
	if in.FaturaTarihi != nil {
		f.FaturaTarihi = *in.FaturaTarihi
	} else if f.FaturaTarihi.IsZero() {
		f.FaturaTarihi = uc.now()
	}
	f.VadeTarihi = in.VadeTarihi
	f.Aciklama = strings.TrimSpace(in.Aciklama)

	f.CariID = in.CariID
	f.CariAdi = ""
	if in.CariID != nil {
		c, err := cariRepo.GetByID(ctx, f.TenantID, *in.CariID)
		if err != nil {
			return err
		}
		if c == nil {
			return &domain.ValidationError{Field: "cariId", Message: "Cari bulunamadı."}
		}
		f.CariAdi = c.CariAdi
	}

	f.Satirlar = make([]*entity.FaturaSatiri, 0, len(in.Satirlar))
	for i, s := range in.Satirlar {
		stok, err := stokRepo.GetByID(ctx, f.TenantID, s.StokID)
		if err != nil {
			return err
		}
		if stok == nil {
			return &domain.ValidationError{Field: fmt.Sprintf("satirlar[%d].stokId", i), Message: "Stok kartı bulunamadı."}
		}
		fiyat := s.BirimFiyat
		if fiyat.IsZero() {
			fiyat = stok.SatisFiyati
			if f.FaturaTipi == entity.FaturaAlis {
				fiyat = stok.AlisFiyati
			}
		}
		kdv := stok.KdvOrani
		if s.KdvOrani != nil {
			kdv = *s.KdvOrani
		}
		f.Satirlar = append(f.Satirlar, &entity.FaturaSatiri{
			StokID:       s.StokID,
			Miktar:       s.Miktar,
			BirimFiyat:   fiyat,
			KdvOrani:     kdv,
			IndirimOrani: s.IndirimOrani,
			Aciklama:     strings.TrimSpace(s.Aciklama),
			StokKodu:     stok.StokKodu,
			StokAdi:      stok.StokAdi,
			Birim:        stok.Birim,
		})
	}
	f.HesaplaToplamlar()
	return nil
}

func checkFaturaNo(ctx context.Context, repo repository.FaturaRepository, f *entity.Fatura) error {
	existing, err := repo.GetByNo(ctx, f.TenantID, f.FaturaNo)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != f.ID {
		return domain.Duplicate("faturaNo", "Bu fatura numarası zaten kullanılıyor.")
	}
	return nil
}

// Create registra la factura en estado Taslak.
func (uc *FaturaUseCase) Create(ctx context.Context, tenantID int64, userID *int64, in dto.FaturaRequest) (*dto.FaturaResponse, error) {
	if err := validateFatura(in); err != nil {
		return nil, err
	}
	f := &entity.Fatura{TenantID: tenantID, Durum: entity.FaturaTaslak, OlusturanKullaniciID: userID}
	err := uc.txRunner.RunFatura(ctx, func(faturaRepo repository.FaturaRepository, cariRepo repository.CariRepository, stokRepo repository.StokRepository) error {
		if err := uc.build(ctx, f, in, cariRepo, stokRepo); err != nil {
			return err
		}
		if err := checkFaturaNo(ctx, faturaRepo, f); err != nil {
			return err
		}
		return faturaRepo.Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFaturaResponse(f), nil
}

// Update reemplaza cabecera y líneas. Solo se permite mientras la factura es Taslak.
func (uc *FaturaUseCase) Update(ctx context.Context, tenantID, id int64, in dto.FaturaRequest) (*dto.FaturaResponse, error) {
	if err := validateFatura(in); err != nil {
		return nil, err
	}
	var f *entity.Fatura
	err := uc.txRunner.RunFatura(ctx, func(faturaRepo repository.FaturaRepository, cariRepo repository.CariRepository, stokRepo repository.StokRepository) error {
		var err error
		if f, err = getFatura(ctx, faturaRepo, tenantID, id); err != nil {
			return err
		}
		if f.Durum != entity.FaturaTaslak {
			return domain.InvalidState("Sadece taslak faturalar güncellenebilir.")
		}
		if err := uc.build(ctx, f, in, cariRepo, stokRepo); err != nil {
			return err
		}
		if err := checkFaturaNo(ctx, faturaRepo, f); err != nil {
			return err
		}
		now := uc.now()
		f.GuncellemeTarihi = &now
		return faturaRepo.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFaturaResponse(f), nil
}

// Delete borra la factura y sus líneas. Las facturas aprobadas no se borran.
func (uc *FaturaUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	f, err := getFatura(ctx, uc.faturaRepo, tenantID, id)
	if err != nil {
		return err
	}
	if !f.Deletable() {
		return domain.InvalidState("Onaylanmış faturalar silinemez.")
	}
	return uc.faturaRepo.Delete(ctx, tenantID, id)
}

// Onayla Taslak → Onaylandi.
func (uc *FaturaUseCase) Onayla(ctx context.Context, tenantID, id int64) (*dto.FaturaResponse, error) {
	return uc.transition(ctx, tenantID, id, entity.FaturaOnaylandi, (*entity.Fatura).CanApprove,
		"Sadece taslak faturalar onaylanabilir.")
}

// Iptal Taslak|Onaylandi → Iptal.
func (uc *FaturaUseCase) Iptal(ctx context.Context, tenantID, id int64) (*dto.FaturaResponse, error) {
	return uc.transition(ctx, tenantID, id, entity.FaturaIptal, (*entity.Fatura).CanCancel,
		"Fatura zaten iptal edilmiş.")
}

func (uc *FaturaUseCase) transition(
	ctx context.Context,
	tenantID, id int64,
	to entity.FaturaDurum,
	allowed func(*entity.Fatura) bool,
	rejectMsg string,
) (*dto.FaturaResponse, error) {
	f, err := getFatura(ctx, uc.faturaRepo, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !allowed(f) {
		return nil, domain.InvalidState(rejectMsg)
	}
	changed, err := uc.faturaRepo.UpdateDurum(ctx, tenantID, id, f.Durum, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.InvalidState(rejectMsg)
	}
	now := uc.now()
	f.Durum = to
	f.GuncellemeTarihi = &now
	return toFaturaResponse(f), nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func toFaturaListItems(list []*entity.Fatura) []dto.FaturaListItem {
	out := make([]dto.FaturaListItem, 0, len(list))
	for _, f := range list {
		out = append(out, dto.FaturaListItem{
			ID:           f.ID,
			FaturaNo:     f.FaturaNo,
			FaturaTarihi: f.FaturaTarihi,
			FaturaTipi:   f.FaturaTipi.String(),
			CariAdi:      f.CariAdi,
			GenelToplam:  f.GenelToplam,
			Durum:        f.Durum.String(),
		})
	}
	return out
}

func toFaturaResponse(f *entity.Fatura) *dto.FaturaResponse {
	satirlar := make([]dto.FaturaSatiriResponse, 0, len(f.Satirlar))
	for _, s := range f.Satirlar {
		satirlar = append(satirlar, dto.FaturaSatiriResponse{
			ID:           s.ID,
			StokID:       s.StokID,
			StokKodu:     s.StokKodu,
			StokAdi:      s.StokAdi,
			Birim:        s.Birim,
			Miktar:       s.Miktar,
			BirimFiyat:   s.BirimFiyat,
			KdvOrani:     s.KdvOrani,
			KdvTutar:     s.KdvTutar,
			IndirimOrani: s.IndirimOrani,
			IndirimTutar: s.IndirimTutar,
			ToplamTutar:  s.ToplamTutar,
			Aciklama:     s.Aciklama,
			SiraNo:       s.SiraNo,
		})
	}
	return &dto.FaturaResponse{
		ID:                   f.ID,
		TenantID:             f.TenantID,
		FaturaNo:             f.FaturaNo,
		FaturaTarihi:         f.FaturaTarihi,
		VadeTarihi:           f.VadeTarihi,
		FaturaTipi:           f.FaturaTipi.String(),
		CariID:               f.CariID,
		CariAdi:              f.CariAdi,
		AraToplam:            f.AraToplam,
		KdvToplam:            f.KdvToplam,
		IndirimToplam:        f.IndirimToplam,
		GenelToplam:          f.GenelToplam,
		Durum:                f.Durum.String(),
		Aciklama:             f.Aciklama,
		OlusturanKullaniciID: f.OlusturanKullaniciID,
		OlusturmaTarihi:      f.OlusturmaTarihi,
		GuncellemeTarihi:     f.GuncellemeTarihi,
		Satirlar:             satirlar,
	}
}
