package pos

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
)

var (
	errAdisyonNotFound = domain.NotFound("Adisyon bulunamadı.")
	errSatirNotFound   = domain.NotFound("Adisyon satırı bulunamadı.")
	errAdisyonKapali   = domain.InvalidState("Adisyon açık değil.")
)

// AdisyonUseCase ciclo de vida de la comanda: abrir sobre una mesa, cargar líneas, cerrar o anular.
// Toda operación que cambia la comanda y la mesa corre en una sola transacción.
type AdisyonUseCase struct {
	txRunner    TxRunner
	adisyonRepo repository.AdisyonRepository
	now         func() time.Time
}

// NewAdisyonUseCase construye el caso de uso.
func NewAdisyonUseCase(txRunner TxRunner, adisyonRepo repository.AdisyonRepository) *AdisyonUseCase {
	return &AdisyonUseCase{txRunner: txRunner, adisyonRepo: adisyonRepo, now: time.Now}
}

func (uc *AdisyonUseCase) List(ctx context.Context, tenantID int64) ([]dto.AdisyonResponse, error) {
	return toAdisyonResponses(uc.adisyonRepo.List(ctx, tenantID))
}

// ListAcik comandas abiertas.
func (uc *AdisyonUseCase) ListAcik(ctx context.Context, tenantID int64) ([]dto.AdisyonResponse, error) {
	return toAdisyonResponses(uc.adisyonRepo.ListByDurum(ctx, tenantID, entity.AdisyonAcik))
}

func (uc *AdisyonUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.AdisyonResponse, error) {
	a, err := getAdisyon(ctx, uc.adisyonRepo, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAdisyonResponse(a), nil
}

func getAdisyon(ctx context.Context, repo repository.AdisyonRepository, tenantID, id int64) (*entity.Adisyon, error) {
	a, err := repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errAdisyonNotFound
	}
	return a, nil
}

// nextNo genera A-<yyyymmdd>-<seq>: la mayor secuencia del día dentro de la firma más uno.
// Los huecos que dejan las comandas borradas no se reutilizan.
func nextNo(ctx context.Context, repo repository.AdisyonRepository, tenantID int64, now time.Time) (string, error) {
	prefix := "A-" + now.Format("20060102") + "-"
	n, err := repo.MaxSeqByPrefix(ctx, tenantID, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}

// Ac abre una comanda sobre la mesa y la marca Dolu. Una mesa admite una sola comanda abierta.
func (uc *AdisyonUseCase) Ac(ctx context.Context, tenantID int64, in dto.AdisyonAcRequest) (*dto.AdisyonResponse, error) {
	now := uc.now()
	a := &entity.Adisyon{
		TenantID:     tenantID,
		MasaID:       in.MasaID,
		AdisyonNo:    strings.TrimSpace(in.AdisyonNo),
		AcilisTarihi: now,
		GarsonID:     in.GarsonID,
		Durum:        entity.AdisyonAcik,
		Aciklama:     strings.TrimSpace(in.Aciklama),
		Satirlar:     []*entity.AdisyonSatiri{},
	}
	err := uc.txRunner.RunAdisyon(ctx, func(adisyonRepo repository.AdisyonRepository, masaRepo repository.MasaRepository, _ repository.StokRepository) error {
		masa, err := masaRepo.GetByID(ctx, tenantID, in.MasaID)
		if err != nil {
			return err
		}
		if masa == nil {
			return &domain.ValidationError{Field: "masaId", Message: "Masa bulunamadı."}
		}
		if !masa.Aktif {
			return domain.InvalidState("Masa aktif değil.")
		}
		open, err := adisyonRepo.GetAcikByMasa(ctx, tenantID, masa.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.InvalidState("Bu masada zaten açık bir adisyon var.")
		}
		if a.AdisyonNo == "" {
			if a.AdisyonNo, err = nextNo(ctx, adisyonRepo, tenantID, now); err != nil {
				return err
			}
		} else {
			dup, err := adisyonRepo.GetByNo(ctx, tenantID, a.AdisyonNo)
			if err != nil {
				return err
			}
			if dup != nil {
				return domain.Duplicate("adisyonNo", "Bu adisyon numarası zaten kullanılıyor.")
			}
		}
		if err := adisyonRepo.Create(ctx, a); err != nil {
			return err
		}
		a.MasaNo = masa.MasaNo
		return masaRepo.UpdateDurum(ctx, tenantID, masa.ID, entity.MasaDolu)
	})
	if err != nil {
		return nil, err
	}
	return toAdisyonResponse(a), nil
}

// SatirEkle agrega una línea a una comanda abierta y recalcula los totales.
// BirimFiyat cero toma el precio de venta de la ficha.
func (uc *AdisyonUseCase) SatirEkle(ctx context.Context, tenantID, id int64, in dto.AdisyonSatirRequest) (*dto.AdisyonResponse, error) {
	if !in.Miktar.IsPositive() {
		return nil, &domain.ValidationError{Field: "miktar", Message: "Miktar sıfırdan büyük olmalıdır."}
	}
	if in.BirimFiyat.IsNegative() {
		return nil, &domain.ValidationError{Field: "birimFiyat", Message: "Birim fiyat negatif olamaz."}
	}
	if in.IndirimOrani.IsNegative() || in.IndirimOrani.GreaterThan(decimal.NewFromInt(100)) {
		return nil, &domain.ValidationError{Field: "indirimOrani", Message: "İndirim oranı 0 ile 100 arasında olmalıdır."}
	}
	var a *entity.Adisyon
	err := uc.txRunner.RunAdisyon(ctx, func(adisyonRepo repository.AdisyonRepository, _ repository.MasaRepository, stokRepo repository.StokRepository) error {
		var err error
		if a, err = getAdisyon(ctx, adisyonRepo, tenantID, id); err != nil {
			return err
		}
		if !a.Acik() {
			return errAdisyonKapali
		}
		stok, err := stokRepo.GetByID(ctx, tenantID, in.StokID)
		if err != nil {
			return err
		}
		if stok == nil {
			return &domain.ValidationError{Field: "stokId", Message: "Stok kartı bulunamadı."}
		}
		s := &entity.AdisyonSatiri{
			AdisyonID:    a.ID,
			StokID:       stok.ID,
			Miktar:       in.Miktar,
			BirimFiyat:   in.BirimFiyat,
			IndirimOrani: in.IndirimOrani,
			Not:          strings.TrimSpace(in.Not),
			StokAdi:      stok.StokAdi,
		}
		if s.BirimFiyat.IsZero() {
			s.BirimFiyat = stok.SatisFiyati
		}
		s.Hesapla()
		if err := adisyonRepo.AddSatir(ctx, s); err != nil {
			return err
		}
		a.Satirlar = append(a.Satirlar, s)
		a.HesaplaToplamlar()
		return adisyonRepo.UpdateHeader(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toAdisyonResponse(a), nil
}

// SatirSil quita una línea de una comanda abierta y recalcula los totales.
func (uc *AdisyonUseCase) SatirSil(ctx context.Context, tenantID, id, satirID int64) (*dto.AdisyonResponse, error) {
	var a *entity.Adisyon
	err := uc.txRunner.RunAdisyon(ctx, func(adisyonRepo repository.AdisyonRepository, _ repository.MasaRepository, _ repository.StokRepository) error {
		var err error
		if a, err = getAdisyon(ctx, adisyonRepo, tenantID, id); err != nil {
			return err
		}
		if !a.Acik() {
			return errAdisyonKapali
		}
		deleted, err := adisyonRepo.DeleteSatir(ctx, a.ID, satirID)
		if err != nil {
			return err
		}
		if !deleted {
			return errSatirNotFound
		}
		kept := a.Satirlar[:0]
		for _, s := range a.Satirlar {
			if s.ID != satirID {
				kept = append(kept, s)
			}
		}
		a.Satirlar = kept
		a.HesaplaToplamlar()
		return adisyonRepo.UpdateHeader(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toAdisyonResponse(a), nil
}

// Kapat cobra la comanda y libera la mesa. Sin OdenenTutar se cobra el total.
func (uc *AdisyonUseCase) Kapat(ctx context.Context, tenantID, id int64, in dto.AdisyonKapatRequest) (*dto.AdisyonResponse, error) {
	if in.OdenenTutar != nil && in.OdenenTutar.IsNegative() {
		return nil, &domain.ValidationError{Field: "odenenTutar", Message: "Ödenen tutar negatif olamaz."}
	}
	return uc.finish(ctx, tenantID, id, entity.AdisyonKapali, func(a *entity.Adisyon) {
		a.OdenenTutar = a.GenelToplam
		if in.OdenenTutar != nil {
			a.OdenenTutar = *in.OdenenTutar
		}
	})
}

// Iptal anula la comanda y libera la mesa.
func (uc *AdisyonUseCase) Iptal(ctx context.Context, tenantID, id int64) (*dto.AdisyonResponse, error) {
	return uc.finish(ctx, tenantID, id, entity.AdisyonIptal, nil)
}

func (uc *AdisyonUseCase) finish(ctx context.Context, tenantID, id int64, to entity.AdisyonDurum, apply func(*entity.Adisyon)) (*dto.AdisyonResponse, error) {
	var a *entity.Adisyon
	err := uc.txRunner.RunAdisyon(ctx, func(adisyonRepo repository.AdisyonRepository, masaRepo repository.MasaRepository, _ repository.StokRepository) error {
		var err error
		if a, err = getAdisyon(ctx, adisyonRepo, tenantID, id); err != nil {
			return err
		}
		if !a.Acik() {
			return errAdisyonKapali
		}
		now := uc.now()
		a.Durum = to
		a.KapanisTarihi = &now
		if apply != nil {
			apply(a)
		}
		if err := adisyonRepo.UpdateHeader(ctx, a); err != nil {
			return err
		}
		return masaRepo.UpdateDurum(ctx, tenantID, a.MasaID, entity.MasaBos)
	})
	if err != nil {
		return nil, err
	}
	return toAdisyonResponse(a), nil
}

// Delete borra una comanda abierta o anulada; las cerradas (cobradas) se conservan.
// Borrar una comanda abierta libera la mesa.
func (uc *AdisyonUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	return uc.txRunner.RunAdisyon(ctx, func(adisyonRepo repository.AdisyonRepository, masaRepo repository.MasaRepository, _ repository.StokRepository) error {
		a, err := getAdisyon(ctx, adisyonRepo, tenantID, id)
		if err != nil {
			return err
		}
		if a.Durum == entity.AdisyonKapali {
			return domain.InvalidState("Kapatılmış adisyonlar silinemez.")
		}
		if err := adisyonRepo.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		if a.Acik() {
			return masaRepo.UpdateDurum(ctx, tenantID, a.MasaID, entity.MasaBos)
		}
		return nil
	})
}

func toAdisyonResponses(list []*entity.Adisyon, err error) ([]dto.AdisyonResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdisyonResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAdisyonResponse(a))
	}
	return out, nil
}

func toAdisyonResponse(a *entity.Adisyon) *dto.AdisyonResponse {
	satirlar := make([]dto.AdisyonSatiriResponse, 0, len(a.Satirlar))
	for _, s := range a.Satirlar {
		satirlar = append(satirlar, dto.AdisyonSatiriResponse{
			ID:           s.ID,
			StokID:       s.StokID,
			StokAdi:      s.StokAdi,
			Miktar:       s.Miktar,
			BirimFiyat:   s.BirimFiyat,
			IndirimOrani: s.IndirimOrani,
			IndirimTutar: s.IndirimTutar,
			ToplamTutar:  s.ToplamTutar,
			Not:          s.Not,
			SiraNo:       s.SiraNo,
		})
	}
	return &dto.AdisyonResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		MasaID:          a.MasaID,
		MasaNo:          a.MasaNo,
		AdisyonNo:       a.AdisyonNo,
		AcilisTarihi:    a.AcilisTarihi,
		KapanisTarihi:   a.KapanisTarihi,
		GarsonID:        a.GarsonID,
		AraToplam:       a.AraToplam,
		IndirimToplam:   a.IndirimToplam,
		GenelToplam:     a.GenelToplam,
		OdenenTutar:     a.OdenenTutar,
		Durum:           a.Durum.String(),
		Aciklama:        a.Aciklama,
		OlusturmaTarihi: a.OlusturmaTarihi,
		Satirlar:        satirlar,
	}
}
