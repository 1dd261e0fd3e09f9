package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.StokRepository = (*StokRepo)(nil)

// StokRepo implementación del puerto StokRepository sobre PostgreSQL (usable con pool o tx).
type StokRepo struct {
	q Querier
}

// NewStokRepository construye el adaptador de persistencia para fichas de stock.
func NewStokRepository(q Querier) *StokRepo {
	return &StokRepo{q: q}
}

const stokColumns = `id, tenant_id, stok_kodu, stok_adi, barkod, birim, kategori, alt_kategori, alis_fiyati,
	satis_fiyati, kdv_orani, stok_miktari, min_stok_miktari, aciklama, aktif, olusturma_tarihi, guncelleme_tarihi`

func scanStok(row pgx.Row) (*entity.StokKarti, error) {
	var s entity.StokKarti
	var barkod, kategori, altKategori, aciklama *string
	err := row.Scan(&s.ID, &s.TenantID, &s.StokKodu, &s.StokAdi, &barkod, &s.Birim, &kategori, &altKategori,
		&s.AlisFiyati, &s.SatisFiyati, &s.KdvOrani, &s.StokMiktari, &s.MinStokMiktari, &aciklama, &s.Aktif,
		&s.OlusturmaTarihi, &s.GuncellemeTarihi)
	if err != nil {
		return nil, err
	}
	s.Barkod, s.Kategori, s.AltKategori, s.Aciklama = fromNull(barkod), fromNull(kategori), fromNull(altKategori), fromNull(aciklama)
	return &s, nil
}

func (r *StokRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.StokKarti, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stokColumns+` FROM stok_kartlari WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.StokKarti, 0)
	for rows.Next() {
		s, err := scanStok(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stok: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StokRepo) get(ctx context.Context, op, where string, args ...any) (*entity.StokKarti, error) {
	s, err := scanStok(r.q.QueryRow(ctx, `SELECT `+stokColumns+` FROM stok_kartlari WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Create persiste una nueva ficha. Barkod vacío se guarda como NULL.
func (r *StokRepo) Create(ctx context.Context, s *entity.StokKarti) error {
	query := `
		INSERT INTO stok_kartlari (tenant_id, stok_kodu, stok_adi, barkod, birim, kategori, alt_kategori,
			alis_fiyati, satis_fiyati, kdv_orani, stok_miktari, min_stok_miktari, aciklama, aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		s.TenantID, s.StokKodu, s.StokAdi, nullString(s.Barkod), s.Birim, nullString(s.Kategori),
		nullString(s.AltKategori), s.AlisFiyati, s.SatisFiyati, s.KdvOrani, s.StokMiktari, s.MinStokMiktari,
		nullString(s.Aciklama), s.Aktif,
	).Scan(&s.ID, &s.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert stok: %w", err)
	}
	return nil
}

// GetByID obtiene una ficha de la firma por ID.
func (r *StokRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.StokKarti, error) {
	return r.get(ctx, "get stok", `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByKod obtiene una ficha de la firma por código.
func (r *StokRepo) GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.StokKarti, error) {
	return r.get(ctx, "get stok by kod", `tenant_id = $1 AND stok_kodu = $2`, tenantID, kod)
}

// GetByBarkod obtiene una ficha de la firma por código de barras.
func (r *StokRepo) GetByBarkod(ctx context.Context, tenantID int64, barkod string) (*entity.StokKarti, error) {
	return r.get(ctx, "get stok by barkod", `tenant_id = $1 AND barkod = $2`, tenantID, barkod)
}

// List fichas de la firma ordenadas por nombre.
func (r *StokRepo) List(ctx context.Context, tenantID int64) ([]*entity.StokKarti, error) {
	return r.list(ctx, "list stok", `tenant_id = $1 ORDER BY stok_adi`, tenantID)
}

// ListByKategori fichas de una categoría ordenadas por nombre.
func (r *StokRepo) ListByKategori(ctx context.Context, tenantID int64, kategori string) ([]*entity.StokKarti, error) {
	return r.list(ctx, "list stok by kategori", `tenant_id = $1 AND kategori = $2 ORDER BY stok_adi`, tenantID, kategori)
}

// ListLowStock fichas activas en o por debajo del mínimo.
func (r *StokRepo) ListLowStock(ctx context.Context, tenantID int64) ([]*entity.StokKarti, error) {
	return r.list(ctx, "list low stock",
		`tenant_id = $1 AND aktif AND stok_miktari <= min_stok_miktari ORDER BY stok_miktari, stok_adi`, tenantID)
}

// Search coincidencia parcial en código, nombre, barkod y categoría.
func (r *StokRepo) Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.StokKarti, error) {
	return r.list(ctx, "search stok", `tenant_id = $1 AND (
			stok_kodu ILIKE $2 OR stok_adi ILIKE $2 OR barkod ILIKE $2 OR kategori ILIKE $2
		) ORDER BY stok_adi LIMIT $3`, tenantID, pattern, limit)
}

// Update reescribe los campos editables. StokMiktari no se toca aquí.
func (r *StokRepo) Update(ctx context.Context, s *entity.StokKarti) error {
	query := `
		UPDATE stok_kartlari SET stok_kodu = $3, stok_adi = $4, barkod = $5, birim = $6, kategori = $7,
			alt_kategori = $8, alis_fiyati = $9, satis_fiyati = $10, kdv_orani = $11, min_stok_miktari = $12,
			aciklama = $13, aktif = $14, guncelleme_tarihi = $15
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		s.TenantID, s.ID, s.StokKodu, s.StokAdi, nullString(s.Barkod), s.Birim, nullString(s.Kategori),
		nullString(s.AltKategori), s.AlisFiyati, s.SatisFiyati, s.KdvOrani, s.MinStokMiktari,
		nullString(s.Aciklama), s.Aktif, s.GuncellemeTarihi,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update stok: %w", err)
	}
	return nil
}

// Delete borra la ficha. Las líneas que la referencian lo impiden (ON DELETE RESTRICT).
func (r *StokRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stok_kartlari WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete stok: %w", err)
	}
	return nil
}

// HasReferences true si alguna línea de factura o de comanda usa la ficha.
func (r *StokRepo) HasReferences(ctx context.Context, tenantID, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM fatura_satirlari fs JOIN faturalar f ON f.id = fs.fatura_id
			WHERE f.tenant_id = $1 AND fs.stok_id = $2
		) OR EXISTS (
			SELECT 1 FROM adisyon_satirlari s JOIN adisyonlar a ON a.id = s.adisyon_id
			WHERE a.tenant_id = $1 AND s.stok_id = $2
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, tenantID, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check stok references: %w", err)
	}
	return ok, nil
}
