package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// ModuleRepository catálogo de módulos y habilitaciones por firma.
type ModuleRepository interface {
	List(ctx context.Context) ([]*entity.Module, error)
	GetByCode(ctx context.Context, code entity.ModuleCode) (*entity.Module, error)
	// ActiveCodes devuelve los códigos con TenantModule.Aktif y Module.Aktif.
	ActiveCodes(ctx context.Context, tenantID int64) ([]entity.ModuleCode, error)
	HasActiveModule(ctx context.Context, tenantID int64, code entity.ModuleCode) (bool, error)
	ListTenantModules(ctx context.Context, tenantID int64) ([]*entity.TenantModuleView, error)
	// SetTenantModule crea o actualiza la fila TenantModule del par (tenant, módulo).
	SetTenantModule(ctx context.Context, tenantID, moduleID int64, aktif bool) error
}

// SubscriptionRepository planes y suscripciones. Solo lectura/alta: nada los hace cumplir.
type SubscriptionRepository interface {
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	ListByTenant(ctx context.Context, tenantID int64) ([]*entity.TenantSubscription, error)
}
