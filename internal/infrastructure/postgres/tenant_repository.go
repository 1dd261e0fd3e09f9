package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para firmas.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, firma_kodu, firma_adi, vergi_no, telefon, email, adres, durum, demo_mu,
	demo_bitis_tarihi, olusturma_tarihi, guncelleme_tarihi`

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var vergiNo, telefon, email, adres *string
	err := row.Scan(&t.ID, &t.FirmaKodu, &t.FirmaAdi, &vergiNo, &telefon, &email, &adres, &t.Durum,
		&t.DemoMu, &t.DemoBitisTarihi, &t.OlusturmaTarihi, &t.GuncellemeTarihi)
	if err != nil {
		return nil, err
	}
	t.VergiNo, t.Telefon, t.Email, t.Adres = fromNull(vergiNo), fromNull(telefon), fromNull(email), fromNull(adres)
	return &t, nil
}

// Create persiste la firma y completa ID y OlusturmaTarihi.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (firma_kodu, firma_adi, vergi_no, telefon, email, adres, durum, demo_mu, demo_bitis_tarihi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		t.FirmaKodu, t.FirmaAdi, nullString(t.VergiNo), nullString(t.Telefon), nullString(t.Email),
		nullString(t.Adres), t.Durum, t.DemoMu, t.DemoBitisTarihi,
	).Scan(&t.ID, &t.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene una firma por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// GetByFirmaKodu obtiene una firma por su código.
func (r *TenantRepo) GetByFirmaKodu(ctx context.Context, kod string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE firma_kodu = $1`, kod))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant by kod: %w", err)
	}
	return t, nil
}

// List todas las firmas ordenadas por nombre.
func (r *TenantRepo) List(ctx context.Context) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY firma_adi`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la firma.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET firma_adi = $2, vergi_no = $3, telefon = $4, email = $5, adres = $6,
			durum = $7, demo_mu = $8, demo_bitis_tarihi = $9, guncelleme_tarihi = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.FirmaAdi, nullString(t.VergiNo), nullString(t.Telefon), nullString(t.Email),
		nullString(t.Adres), t.Durum, t.DemoMu, t.DemoBitisTarihi, t.GuncellemeTarihi,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}
