package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.CariRepository = (*CariRepo)(nil)

// CariRepo implementación del puerto CariRepository sobre PostgreSQL (usable con pool o tx).
type CariRepo struct {
	q Querier
}

// NewCariRepository construye el adaptador de persistencia para cuentas corrientes.
func NewCariRepository(q Querier) *CariRepo {
	return &CariRepo{q: q}
}

const cariColumns = `id, tenant_id, cari_kodu, cari_adi, cari_tip, vergi_dairesi, vergi_no, telefon, email,
	adres, il, ilce, bakiye, alacak_limiti, aktif, olusturma_tarihi, guncelleme_tarihi`

func scanCari(row pgx.Row) (*entity.Cari, error) {
	var c entity.Cari
	var vergiDairesi, vergiNo, telefon, email, adres, il, ilce *string
	err := row.Scan(&c.ID, &c.TenantID, &c.CariKodu, &c.CariAdi, &c.CariTip, &vergiDairesi, &vergiNo,
		&telefon, &email, &adres, &il, &ilce, &c.Bakiye, &c.AlacakLimiti, &c.Aktif,
		&c.OlusturmaTarihi, &c.GuncellemeTarihi)
	if err != nil {
		return nil, err
	}
	c.VergiDairesi, c.VergiNo = fromNull(vergiDairesi), fromNull(vergiNo)
	c.Telefon, c.Email, c.Adres = fromNull(telefon), fromNull(email), fromNull(adres)
	c.Il, c.Ilce = fromNull(il), fromNull(ilce)
	return &c, nil
}

func (r *CariRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Cari, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cariColumns+` FROM cariler WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Cari, 0)
	for rows.Next() {
		c, err := scanCari(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cari: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CariRepo) get(ctx context.Context, op, where string, args ...any) (*entity.Cari, error) {
	c, err := scanCari(r.q.QueryRow(ctx, `SELECT `+cariColumns+` FROM cariler WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Create persiste una nueva cuenta y completa ID y OlusturmaTarihi.
func (r *CariRepo) Create(ctx context.Context, c *entity.Cari) error {
	query := `
		INSERT INTO cariler (tenant_id, cari_kodu, cari_adi, cari_tip, vergi_dairesi, vergi_no, telefon, email,
			adres, il, ilce, bakiye, alacak_limiti, aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		c.TenantID, c.CariKodu, c.CariAdi, c.CariTip, nullString(c.VergiDairesi), nullString(c.VergiNo),
		nullString(c.Telefon), nullString(c.Email), nullString(c.Adres), nullString(c.Il), nullString(c.Ilce),
		c.Bakiye, c.AlacakLimiti, c.Aktif,
	).Scan(&c.ID, &c.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert cari: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta de la firma por ID.
func (r *CariRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.Cari, error) {
	return r.get(ctx, "get cari", `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByKod obtiene una cuenta de la firma por código.
func (r *CariRepo) GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.Cari, error) {
	return r.get(ctx, "get cari by kod", `tenant_id = $1 AND cari_kodu = $2`, tenantID, kod)
}

// List cuentas de la firma ordenadas por nombre.
func (r *CariRepo) List(ctx context.Context, tenantID int64) ([]*entity.Cari, error) {
	return r.list(ctx, "list cari", `tenant_id = $1 ORDER BY cari_adi`, tenantID)
}

// ListByTip cuentas de un tipo. HerIkisi aparece también al filtrar clientes o proveedores.
func (r *CariRepo) ListByTip(ctx context.Context, tenantID int64, tip entity.CariTip) ([]*entity.Cari, error) {
	return r.list(ctx, "list cari by tip",
		`tenant_id = $1 AND (cari_tip = $2 OR cari_tip = $3) ORDER BY cari_adi`,
		tenantID, tip, entity.CariHerIkisi)
}

// Search coincidencia parcial sin distinguir mayúsculas en código, nombre, teléfono y email.
func (r *CariRepo) Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.Cari, error) {
	return r.list(ctx, "search cari", `tenant_id = $1 AND (
			cari_kodu ILIKE $2 OR cari_adi ILIKE $2 OR telefon ILIKE $2 OR email ILIKE $2
		) ORDER BY cari_adi LIMIT $3`, tenantID, pattern, limit)
}

// Update reescribe los campos editables. ID y TenantID no cambian.
func (r *CariRepo) Update(ctx context.Context, c *entity.Cari) error {
	query := `
		UPDATE cariler SET cari_kodu = $3, cari_adi = $4, cari_tip = $5, vergi_dairesi = $6, vergi_no = $7,
			telefon = $8, email = $9, adres = $10, il = $11, ilce = $12, bakiye = $13, alacak_limiti = $14,
			aktif = $15, guncelleme_tarihi = $16
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		c.TenantID, c.ID, c.CariKodu, c.CariAdi, c.CariTip, nullString(c.VergiDairesi), nullString(c.VergiNo),
		nullString(c.Telefon), nullString(c.Email), nullString(c.Adres), nullString(c.Il), nullString(c.Ilce),
		c.Bakiye, c.AlacakLimiti, c.Aktif, c.GuncellemeTarihi,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update cari: %w", err)
	}
	return nil
}

// Delete borra la cuenta. Una factura que la referencia lo impide (ON DELETE RESTRICT).
func (r *CariRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cariler WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete cari: %w", err)
	}
	return nil
}

// HasFatura true si alguna factura de la firma apunta a la cuenta.
func (r *CariRepo) HasFatura(ctx context.Context, tenantID, id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM faturalar WHERE tenant_id = $1 AND cari_id = $2)`, tenantID, id,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check cari references: %w", err)
	}
	return ok, nil
}
