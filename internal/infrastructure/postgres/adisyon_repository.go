package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.AdisyonRepository = (*AdisyonRepo)(nil)

// AdisyonRepo implementación del puerto AdisyonRepository sobre PostgreSQL.
type AdisyonRepo struct {
	q Querier
}

// NewAdisyonRepository construye el adaptador de persistencia para comandas.
func NewAdisyonRepository(q Querier) *AdisyonRepo {
	return &AdisyonRepo{q: q}
}

const adisyonSelect = `
	SELECT a.id, a.tenant_id, a.masa_id, a.adisyon_no, a.acilis_tarihi, a.kapanis_tarihi, a.garson_id,
		a.ara_toplam, a.indirim_toplam, a.genel_toplam, a.odenen_tutar, a.durum, a.aciklama,
		a.olusturma_tarihi, m.masa_no
	FROM adisyonlar a
	JOIN masalar m ON m.id = a.masa_id`

func scanAdisyon(row pgx.Row) (*entity.Adisyon, error) {
	var a entity.Adisyon
	var aciklama *string
	err := row.Scan(&a.ID, &a.TenantID, &a.MasaID, &a.AdisyonNo, &a.AcilisTarihi, &a.KapanisTarihi, &a.GarsonID,
		&a.AraToplam, &a.IndirimToplam, &a.GenelToplam, &a.OdenenTutar, &a.Durum, &aciklama,
		&a.OlusturmaTarihi, &a.MasaNo)
	if err != nil {
		return nil, err
	}
	a.Aciklama = fromNull(aciklama)
	return &a, nil
}

func (r *AdisyonRepo) list(ctx context.Context, op, tail string, args ...any) ([]*entity.Adisyon, error) {
	rows, err := r.q.Query(ctx, adisyonSelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Adisyon, 0)
	for rows.Next() {
		a, err := scanAdisyon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adisyon: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AdisyonRepo) get(ctx context.Context, op, tail string, args ...any) (*entity.Adisyon, error) {
	a, err := scanAdisyon(r.q.QueryRow(ctx, adisyonSelect+tail, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a.Satirlar, err = r.satirlar(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AdisyonRepo) satirlar(ctx context.Context, adisyonID int64) ([]*entity.AdisyonSatiri, error) {
	query := `
		SELECT s.id, s.adisyon_id, s.stok_id, s.miktar, s.birim_fiyat, s.indirim_orani, s.indirim_tutar,
			s.toplam_tutar, s."not", s.sira_no, s.olusturma_tarihi, k.stok_adi
		FROM adisyon_satirlari s
		JOIN stok_kartlari k ON k.id = s.stok_id
		WHERE s.adisyon_id = $1
		ORDER BY s.sira_no, s.id`
	rows, err := r.q.Query(ctx, query, adisyonID)
	if err != nil {
		return nil, fmt.Errorf("list adisyon satirlari: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AdisyonSatiri, 0)
	for rows.Next() {
		var s entity.AdisyonSatiri
		var not *string
		if err := rows.Scan(&s.ID, &s.AdisyonID, &s.StokID, &s.Miktar, &s.BirimFiyat, &s.IndirimOrani,
			&s.IndirimTutar, &s.ToplamTutar, &not, &s.SiraNo, &s.OlusturmaTarihi, &s.StokAdi); err != nil {
			return nil, fmt.Errorf("scan adisyon satiri: %w", err)
		}
		s.Not = fromNull(not)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create abre la comanda. uq_adisyonlar_masa_acik rechaza una segunda comanda abierta en la mesa.
func (r *AdisyonRepo) Create(ctx context.Context, a *entity.Adisyon) error {
	query := `
		INSERT INTO adisyonlar (tenant_id, masa_id, adisyon_no, acilis_tarihi, garson_id, ara_toplam,
			indirim_toplam, genel_toplam, odenen_tutar, durum, aciklama)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		a.TenantID, a.MasaID, a.AdisyonNo, a.AcilisTarihi, a.GarsonID, a.AraToplam, a.IndirimToplam,
		a.GenelToplam, a.OdenenTutar, a.Durum, nullString(a.Aciklama),
	).Scan(&a.ID, &a.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert adisyon: %w", err)
	}
	return nil
}

// GetByID carga cabecera, MasaNo y líneas.
func (r *AdisyonRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.Adisyon, error) {
	return r.get(ctx, "get adisyon", ` WHERE a.tenant_id = $1 AND a.id = $2`, tenantID, id)
}

// GetByNo obtiene una comanda por número.
func (r *AdisyonRepo) GetByNo(ctx context.Context, tenantID int64, adisyonNo string) (*entity.Adisyon, error) {
	return r.get(ctx, "get adisyon by no", ` WHERE a.tenant_id = $1 AND a.adisyon_no = $2`, tenantID, adisyonNo)
}

// GetAcikByMasa comanda abierta de la mesa, si existe.
func (r *AdisyonRepo) GetAcikByMasa(ctx context.Context, tenantID, masaID int64) (*entity.Adisyon, error) {
	return r.get(ctx, "get acik adisyon",
		` WHERE a.tenant_id = $1 AND a.masa_id = $2 AND a.durum = $3`, tenantID, masaID, entity.AdisyonAcik)
}

// List comandas de la firma, la más reciente primero.
func (r *AdisyonRepo) List(ctx context.Context, tenantID int64) ([]*entity.Adisyon, error) {
	return r.list(ctx, "list adisyon", ` WHERE a.tenant_id = $1 ORDER BY a.acilis_tarihi DESC, a.id DESC`, tenantID)
}

// ListByDurum comandas en un estado.
func (r *AdisyonRepo) ListByDurum(ctx context.Context, tenantID int64, durum entity.AdisyonDurum) ([]*entity.Adisyon, error) {
	return r.list(ctx, "list adisyon by durum",
		` WHERE a.tenant_id = $1 AND a.durum = $2 ORDER BY a.acilis_tarihi DESC, a.id DESC`, tenantID, durum)
}

// MaxSeqByPrefix mayor secuencia de los números prefix+dígitos. Los números manuales que no
// terminan en dígitos se ignoran.
func (r *AdisyonRepo) MaxSeqByPrefix(ctx context.Context, tenantID int64, prefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CASE WHEN substring(adisyon_no FROM length($2) + 1) ~ '^[0-9]{1,9}$'
			THEN substring(adisyon_no FROM length($2) + 1)::int END), 0)
		FROM adisyonlar
		WHERE tenant_id = $1 AND starts_with(adisyon_no, $2)`
	var n int
	if err := r.q.QueryRow(ctx, query, tenantID, prefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("max seq adisyon: %w", err)
	}
	return n, nil
}

// AddSatir inserta una línea; SiraNo continúa la numeración de la comanda.
func (r *AdisyonRepo) AddSatir(ctx context.Context, s *entity.AdisyonSatiri) error {
	query := `
		INSERT INTO adisyon_satirlari (adisyon_id, stok_id, miktar, birim_fiyat, indirim_orani, indirim_tutar,
			toplam_tutar, "not", sira_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(sira_no), 0) + 1 FROM adisyon_satirlari WHERE adisyon_id = $1))
		RETURNING id, sira_no, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		s.AdisyonID, s.StokID, s.Miktar, s.BirimFiyat, s.IndirimOrani, s.IndirimTutar, s.ToplamTutar, nullString(s.Not),
	).Scan(&s.ID, &s.SiraNo, &s.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert adisyon satiri: %w", err)
	}
	return nil
}

// DeleteSatir borra una línea de la comanda. false si la línea no pertenece a ella.
func (r *AdisyonRepo) DeleteSatir(ctx context.Context, adisyonID, satirID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM adisyon_satirlari WHERE adisyon_id = $1 AND id = $2`, adisyonID, satirID)
	if err != nil {
		return false, fmt.Errorf("delete adisyon satiri: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateHeader persiste totales, estado y cierre.
func (r *AdisyonRepo) UpdateHeader(ctx context.Context, a *entity.Adisyon) error {
	query := `
		UPDATE adisyonlar SET ara_toplam = $3, indirim_toplam = $4, genel_toplam = $5, odenen_tutar = $6,
			durum = $7, kapanis_tarihi = $8, aciklama = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		a.TenantID, a.ID, a.AraToplam, a.IndirimToplam, a.GenelToplam, a.OdenenTutar, a.Durum,
		a.KapanisTarihi, nullString(a.Aciklama))
	if err != nil {
		return fmt.Errorf("update adisyon: %w", err)
	}
	return nil
}

// Delete borra la comanda y sus líneas.
func (r *AdisyonRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM adisyonlar WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete adisyon: %w", err)
	}
	return nil
}
