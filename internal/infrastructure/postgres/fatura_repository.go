package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.FaturaRepository = (*FaturaRepo)(nil)

// FaturaRepo implementación del puerto FaturaRepository sobre PostgreSQL.
// Create y Update escriben varias tablas: usarlo con la tx de TxRunner.RunFatura.
type FaturaRepo struct {
	q Querier
}

// NewFaturaRepository construye el adaptador de persistencia para facturas.
func NewFaturaRepository(q Querier) *FaturaRepo {
	return &FaturaRepo{q: q}
}

const faturaSelect = `
	SELECT f.id, f.tenant_id, f.fatura_no, f.fatura_tarihi, f.vade_tarihi, f.fatura_tipi, f.cari_id,
		f.ara_toplam, f.kdv_toplam, f.indirim_toplam, f.genel_toplam, f.durum, f.aciklama,
		f.olusturan_kullanici_id, f.olusturma_tarihi, f.guncelleme_tarihi, COALESCE(c.cari_adi, '')
	FROM faturalar f
	LEFT JOIN cariler c ON c.id = f.cari_id`

func scanFatura(row pgx.Row) (*entity.Fatura, error) {
	var f entity.Fatura
	var aciklama *string
	err := row.Scan(&f.ID, &f.TenantID, &f.FaturaNo, &f.FaturaTarihi, &f.VadeTarihi, &f.FaturaTipi, &f.CariID,
		&f.AraToplam, &f.KdvToplam, &f.IndirimToplam, &f.GenelToplam, &f.Durum, &aciklama,
		&f.OlusturanKullaniciID, &f.OlusturmaTarihi, &f.GuncellemeTarihi, &f.CariAdi)
	if err != nil {
		return nil, err
	}
	f.Aciklama = fromNull(aciklama)
	return &f, nil
}

func (r *FaturaRepo) list(ctx context.Context, op, tail string, args ...any) ([]*entity.Fatura, error) {
	rows, err := r.q.Query(ctx, faturaSelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Fatura, 0)
	for rows.Next() {
		f, err := scanFatura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fatura: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Create inserta cabecera y líneas; completa los IDs generados.
func (r *FaturaRepo) Create(ctx context.Context, f *entity.Fatura) error {
	query := `
		INSERT INTO faturalar (tenant_id, fatura_no, fatura_tarihi, vade_tarihi, fatura_tipi, cari_id, ara_toplam,
			kdv_toplam, indirim_toplam, genel_toplam, durum, aciklama, olusturan_kullanici_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		f.TenantID, f.FaturaNo, f.FaturaTarihi, f.VadeTarihi, f.FaturaTipi, f.CariID, f.AraToplam,
		f.KdvToplam, f.IndirimToplam, f.GenelToplam, f.Durum, nullString(f.Aciklama), f.OlusturanKullaniciID,
	).Scan(&f.ID, &f.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert fatura: %w", err)
	}
	return r.insertSatirlar(ctx, f)
}

func (r *FaturaRepo) insertSatirlar(ctx context.Context, f *entity.Fatura) error {
	query := `
		INSERT INTO fatura_satirlari (fatura_id, stok_id, miktar, birim_fiyat, kdv_orani, kdv_tutar,
			indirim_orani, indirim_tutar, toplam_tutar, aciklama, sira_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	for _, s := range f.Satirlar {
		s.FaturaID = f.ID
		err := r.q.QueryRow(ctx, query,
			s.FaturaID, s.StokID, s.Miktar, s.BirimFiyat, s.KdvOrani, s.KdvTutar, s.IndirimOrani,
			s.IndirimTutar, s.ToplamTutar, nullString(s.Aciklama), s.SiraNo,
		).Scan(&s.ID)
		if err != nil {
			if mapped := mapWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert fatura satiri: %w", err)
		}
	}
	return nil
}

// GetByID carga cabecera, CariAdi y líneas ordenadas por SiraNo.
func (r *FaturaRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.Fatura, error) {
	f, err := scanFatura(r.q.QueryRow(ctx, faturaSelect+` WHERE f.tenant_id = $1 AND f.id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fatura: %w", err)
	}
	if f.Satirlar, err = r.satirlar(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FaturaRepo) satirlar(ctx context.Context, faturaID int64) ([]*entity.FaturaSatiri, error) {
	query := `
		SELECT s.id, s.fatura_id, s.stok_id, s.miktar, s.birim_fiyat, s.kdv_orani, s.kdv_tutar, s.indirim_orani,
			s.indirim_tutar, s.toplam_tutar, s.aciklama, s.sira_no, k.stok_kodu, k.stok_adi, k.birim
		FROM fatura_satirlari s
		JOIN stok_kartlari k ON k.id = s.stok_id
		WHERE s.fatura_id = $1
		ORDER BY s.sira_no, s.id`
	rows, err := r.q.Query(ctx, query, faturaID)
	if err != nil {
		return nil, fmt.Errorf("list fatura satirlari: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.FaturaSatiri, 0)
	for rows.Next() {
		var s entity.FaturaSatiri
		var aciklama *string
		if err := rows.Scan(&s.ID, &s.FaturaID, &s.StokID, &s.Miktar, &s.BirimFiyat, &s.KdvOrani, &s.KdvTutar,
			&s.IndirimOrani, &s.IndirimTutar, &s.ToplamTutar, &aciklama, &s.SiraNo, &s.StokKodu, &s.StokAdi, &s.Birim); err != nil {
			return nil, fmt.Errorf("scan fatura satiri: %w", err)
		}
		s.Aciklama = fromNull(aciklama)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetByNo obtiene la cabecera (sin líneas) por número de factura.
func (r *FaturaRepo) GetByNo(ctx context.Context, tenantID int64, faturaNo string) (*entity.Fatura, error) {
	f, err := scanFatura(r.q.QueryRow(ctx, faturaSelect+` WHERE f.tenant_id = $1 AND f.fatura_no = $2`, tenantID, faturaNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fatura by no: %w", err)
	}
	return f, nil
}

// List cabeceras de la firma, la más reciente primero.
func (r *FaturaRepo) List(ctx context.Context, tenantID int64) ([]*entity.Fatura, error) {
	return r.list(ctx, "list fatura", ` WHERE f.tenant_id = $1 ORDER BY f.fatura_tarihi DESC, f.id DESC`, tenantID)
}

// Search por número de factura o nombre de la cuenta.
func (r *FaturaRepo) Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.Fatura, error) {
	return r.list(ctx, "search fatura",
		` WHERE f.tenant_id = $1 AND (f.fatura_no ILIKE $2 OR c.cari_adi ILIKE $2)
		ORDER BY f.fatura_tarihi DESC, f.id DESC LIMIT $3`, tenantID, pattern, limit)
}

// Update reescribe la cabecera y reemplaza todas las líneas.
func (r *FaturaRepo) Update(ctx context.Context, f *entity.Fatura) error {
	query := `
		UPDATE faturalar SET fatura_no = $3, fatura_tarihi = $4, vade_tarihi = $5, fatura_tipi = $6, cari_id = $7,
			ara_toplam = $8, kdv_toplam = $9, indirim_toplam = $10, genel_toplam = $11, aciklama = $12,
			guncelleme_tarihi = $13
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		f.TenantID, f.ID, f.FaturaNo, f.FaturaTarihi, f.VadeTarihi, f.FaturaTipi, f.CariID, f.AraToplam,
		f.KdvToplam, f.IndirimToplam, f.GenelToplam, nullString(f.Aciklama), f.GuncellemeTarihi,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update fatura: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM fatura_satirlari WHERE fatura_id = $1`, f.ID); err != nil {
		return fmt.Errorf("delete fatura satirlari: %w", err)
	}
	return r.insertSatirlar(ctx, f)
}

// UpdateDurum cambia solo el estado, condicionado al estado leído.
func (r *FaturaRepo) UpdateDurum(ctx context.Context, tenantID, id int64, from, to entity.FaturaDurum) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE faturalar SET durum = $4, guncelleme_tarihi = now()
		 WHERE tenant_id = $1 AND id = $2 AND durum = $3`,
		tenantID, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update fatura durum: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borra la factura; sus líneas caen en cascada.
func (r *FaturaRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM faturalar WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete fatura: %w", err)
	}
	return nil
}
