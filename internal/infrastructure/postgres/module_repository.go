package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var (
	_ repository.ModuleRepository       = (*ModuleRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
)

// ModuleRepo catálogo de módulos y su habilitación por firma.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador del catálogo de módulos.
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

const moduleColumns = `id, modul_kodu, modul_adi, aciklama, aylik_ucret, yillik_ucret, kategori, aktif, olusturma_tarihi`

func scanModule(row pgx.Row) (*entity.Module, error) {
	var m entity.Module
	var kod string
	var aciklama, kategori *string
	if err := row.Scan(&m.ID, &kod, &m.ModulAdi, &aciklama, &m.AylikUcret, &m.YillikUcret, &kategori,
		&m.Aktif, &m.OlusturmaTarihi); err != nil {
		return nil, err
	}
	m.ModulKodu = entity.ModuleCode(kod)
	m.Aciklama, m.Kategori = fromNull(aciklama), fromNull(kategori)
	return &m, nil
}

// List catálogo completo ordenado por código.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moduleColumns+` FROM modules ORDER BY modul_kodu`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetByCode obtiene un módulo por código.
func (r *ModuleRepo) GetByCode(ctx context.Context, code entity.ModuleCode) (*entity.Module, error) {
	m, err := scanModule(r.q.QueryRow(ctx, `SELECT `+moduleColumns+` FROM modules WHERE modul_kodu = $1`, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return m, nil
}

// ActiveCodes códigos habilitados para la firma y activos en el catálogo.
func (r *ModuleRepo) ActiveCodes(ctx context.Context, tenantID int64) ([]entity.ModuleCode, error) {
	query := `
		SELECT m.modul_kodu
		FROM tenant_modules tm
		JOIN modules m ON m.id = tm.module_id
		WHERE tm.tenant_id = $1 AND tm.aktif AND m.aktif
		ORDER BY m.modul_kodu`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("active modules: %w", err)
	}
	defer rows.Close()
	var codes []entity.ModuleCode
	for rows.Next() {
		var kod string
		if err := rows.Scan(&kod); err != nil {
			return nil, fmt.Errorf("scan module code: %w", err)
		}
		codes = append(codes, entity.ModuleCode(kod))
	}
	return codes, rows.Err()
}

// HasActiveModule la firma tiene el módulo habilitado. Sin fila en tenant_modules => false.
func (r *ModuleRepo) HasActiveModule(ctx context.Context, tenantID int64, code entity.ModuleCode) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tenant_modules tm
			JOIN modules m ON m.id = tm.module_id
			WHERE tm.tenant_id = $1 AND m.modul_kodu = $2 AND tm.aktif AND m.aktif
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, tenantID, string(code)).Scan(&ok); err != nil {
		return false, fmt.Errorf("check module: %w", err)
	}
	return ok, nil
}

// ListTenantModules filas de tenant_modules con los datos del catálogo.
func (r *ModuleRepo) ListTenantModules(ctx context.Context, tenantID int64) ([]*entity.TenantModuleView, error) {
	query := `
		SELECT tm.id, tm.tenant_id, tm.module_id, tm.aktif, tm.olusturma_tarihi, m.modul_kodu, m.modul_adi, m.aktif
		FROM tenant_modules tm
		JOIN modules m ON m.id = tm.module_id
		WHERE tm.tenant_id = $1
		ORDER BY m.modul_kodu`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.TenantModuleView
	for rows.Next() {
		var v entity.TenantModuleView
		var kod string
		if err := rows.Scan(&v.ID, &v.TenantID, &v.ModuleID, &v.Aktif, &v.OlusturmaTarihi, &kod, &v.ModulAdi, &v.ModuleAktif); err != nil {
			return nil, fmt.Errorf("scan tenant module: %w", err)
		}
		v.ModulKodu = entity.ModuleCode(kod)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// SetTenantModule upsert del par (firma, módulo).
func (r *ModuleRepo) SetTenantModule(ctx context.Context, tenantID, moduleID int64, aktif bool) error {
	query := `
		INSERT INTO tenant_modules (tenant_id, module_id, aktif)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, module_id) DO UPDATE SET aktif = EXCLUDED.aktif`
	if _, err := r.q.Exec(ctx, query, tenantID, moduleID, aktif); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("set tenant module: %w", err)
	}
	return nil
}

// SubscriptionRepo planes comerciales y suscripciones por firma.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador de planes y suscripciones.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// ListPlans planes con los IDs de sus módulos.
func (r *SubscriptionRepo) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	query := `
		SELECT p.id, p.plan_kodu, p.plan_adi, p.aciklama, p.aylik_ucret, p.yillik_ucret, p.max_kullanici,
			p.aktif, p.olusturma_tarihi,
			COALESCE(array_agg(pm.module_id ORDER BY pm.module_id) FILTER (WHERE pm.module_id IS NOT NULL), '{}')
		FROM subscription_plans p
		LEFT JOIN plan_modules pm ON pm.subscription_plan_id = p.id
		GROUP BY p.id
		ORDER BY p.aylik_ucret, p.plan_kodu`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		var p entity.SubscriptionPlan
		var aciklama *string
		if err := rows.Scan(&p.ID, &p.PlanKodu, &p.PlanAdi, &aciklama, &p.AylikUcret, &p.YillikUcret,
			&p.MaxKullanici, &p.Aktif, &p.OlusturmaTarihi, &p.ModuleIDs); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Aciklama = fromNull(aciklama)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreatePlan inserta el plan y sus módulos.
func (r *SubscriptionRepo) CreatePlan(ctx context.Context, p *entity.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (plan_kodu, plan_adi, aciklama, aylik_ucret, yillik_ucret, max_kullanici, aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		p.PlanKodu, p.PlanAdi, nullString(p.Aciklama), p.AylikUcret, p.YillikUcret, p.MaxKullanici, p.Aktif,
	).Scan(&p.ID, &p.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	for _, moduleID := range p.ModuleIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO plan_modules (subscription_plan_id, module_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.ID, moduleID)
		if err != nil {
			if mapped := mapWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert plan module: %w", err)
		}
	}
	return nil
}

// ListByTenant suscripciones de la firma, la más reciente primero.
func (r *SubscriptionRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*entity.TenantSubscription, error) {
	query := `
		SELECT id, tenant_id, subscription_plan_id, baslangic_tarihi, bitis_tarihi, odeme_tipi, durum, olusturma_tarihi
		FROM tenant_subscriptions
		WHERE tenant_id = $1
		ORDER BY baslangic_tarihi DESC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TenantSubscription
	for rows.Next() {
		var s entity.TenantSubscription
		if err := rows.Scan(&s.ID, &s.TenantID, &s.SubscriptionPlanID, &s.BaslangicTarihi, &s.BitisTarihi,
			&s.OdemeTipi, &s.Durum, &s.OlusturmaTarihi); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
