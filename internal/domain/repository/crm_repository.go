package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// CrmMusteriRepository define el puerto de persistencia para CrmMusteri.
type CrmMusteriRepository interface {
	Create(ctx context.Context, m *entity.CrmMusteri) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.CrmMusteri, error)
	GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.CrmMusteri, error)
	List(ctx context.Context, tenantID int64) ([]*entity.CrmMusteri, error)
	Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.CrmMusteri, error)
	Update(ctx context.Context, m *entity.CrmMusteri) error
	// Delete borra el cliente; sus actividades caen en cascada.
	Delete(ctx context.Context, tenantID, id int64) error
}

// CrmAktiviteRepository define el puerto de persistencia para CrmAktivite.
type CrmAktiviteRepository interface {
	Create(ctx context.Context, a *entity.CrmAktivite) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.CrmAktivite, error)
	ListByMusteri(ctx context.Context, tenantID, musteriID int64) ([]*entity.CrmAktivite, error)
	// ListBekleyen actividades no completadas ordenadas por fecha planificada.
	ListBekleyen(ctx context.Context, tenantID int64) ([]*entity.CrmAktivite, error)
	Update(ctx context.Context, a *entity.CrmAktivite) error
	Delete(ctx context.Context, tenantID, id int64) error
}
