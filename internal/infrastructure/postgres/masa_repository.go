package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.MasaRepository = (*MasaRepo)(nil)

// MasaRepo implementación del puerto MasaRepository sobre PostgreSQL.
type MasaRepo struct {
	q Querier
}

// NewMasaRepository construye el adaptador de persistencia para mesas.
func NewMasaRepository(q Querier) *MasaRepo {
	return &MasaRepo{q: q}
}

const masaColumns = `id, tenant_id, masa_no, masa_adi, kapasite, bolum, durum, aktif, olusturma_tarihi`

func scanMasa(row pgx.Row) (*entity.Masa, error) {
	var m entity.Masa
	var masaAdi, bolum *string
	if err := row.Scan(&m.ID, &m.TenantID, &m.MasaNo, &masaAdi, &m.Kapasite, &bolum, &m.Durum, &m.Aktif,
		&m.OlusturmaTarihi); err != nil {
		return nil, err
	}
	m.MasaAdi, m.Bolum = fromNull(masaAdi), fromNull(bolum)
	return &m, nil
}

func (r *MasaRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Masa, error) {
	rows, err := r.q.Query(ctx, `SELECT `+masaColumns+` FROM masalar WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Masa, 0)
	for rows.Next() {
		m, err := scanMasa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan masa: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MasaRepo) get(ctx context.Context, op, where string, args ...any) (*entity.Masa, error) {
	m, err := scanMasa(r.q.QueryRow(ctx, `SELECT `+masaColumns+` FROM masalar WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// Create persiste una nueva mesa.
func (r *MasaRepo) Create(ctx context.Context, m *entity.Masa) error {
	query := `
		INSERT INTO masalar (tenant_id, masa_no, masa_adi, kapasite, bolum, durum, aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		m.TenantID, m.MasaNo, nullString(m.MasaAdi), m.Kapasite, nullString(m.Bolum), m.Durum, m.Aktif,
	).Scan(&m.ID, &m.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert masa: %w", err)
	}
	return nil
}

// GetByID obtiene una mesa de la firma.
func (r *MasaRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.Masa, error) {
	return r.get(ctx, "get masa", `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByNo obtiene una mesa por número.
func (r *MasaRepo) GetByNo(ctx context.Context, tenantID int64, masaNo string) (*entity.Masa, error) {
	return r.get(ctx, "get masa by no", `tenant_id = $1 AND masa_no = $2`, tenantID, masaNo)
}

// List mesas ordenadas por sección y número.
func (r *MasaRepo) List(ctx context.Context, tenantID int64) ([]*entity.Masa, error) {
	return r.list(ctx, "list masa", `tenant_id = $1 ORDER BY bolum NULLS FIRST, masa_no`, tenantID)
}

// ListByDurum mesas activas en un estado.
func (r *MasaRepo) ListByDurum(ctx context.Context, tenantID int64, durum entity.MasaDurum) ([]*entity.Masa, error) {
	return r.list(ctx, "list masa by durum",
		`tenant_id = $1 AND durum = $2 AND aktif ORDER BY bolum NULLS FIRST, masa_no`, tenantID, durum)
}

// Update reescribe los datos de la mesa (el estado lo gestionan las comandas).
func (r *MasaRepo) Update(ctx context.Context, m *entity.Masa) error {
	query := `
		UPDATE masalar SET masa_no = $3, masa_adi = $4, kapasite = $5, bolum = $6, durum = $7, aktif = $8
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		m.TenantID, m.ID, m.MasaNo, nullString(m.MasaAdi), m.Kapasite, nullString(m.Bolum), m.Durum, m.Aktif)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update masa: %w", err)
	}
	return nil
}

// UpdateDurum cambia solo la ocupación.
func (r *MasaRepo) UpdateDurum(ctx context.Context, tenantID, id int64, durum entity.MasaDurum) error {
	if _, err := r.q.Exec(ctx, `UPDATE masalar SET durum = $3 WHERE tenant_id = $1 AND id = $2`, tenantID, id, durum); err != nil {
		return fmt.Errorf("update masa durum: %w", err)
	}
	return nil
}

// Delete borra la mesa. Una comanda que la referencia lo impide.
func (r *MasaRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM masalar WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete masa: %w", err)
	}
	return nil
}

// HasAdisyon true si alguna comanda usa la mesa.
func (r *MasaRepo) HasAdisyon(ctx context.Context, tenantID, id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM adisyonlar WHERE tenant_id = $1 AND masa_id = $2)`, tenantID, id,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check masa references: %w", err)
	}
	return ok, nil
}
