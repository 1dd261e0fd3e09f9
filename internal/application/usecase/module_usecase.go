package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// ModuleService verifica qué módulos tiene activos una firma.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	moduleRepo repository.ModuleRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(moduleRepo repository.ModuleRepository) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo}
}

// HasActiveModule informa si la firma tiene el módulo habilitado y el módulo sigue activo en el catálogo.
// Devuelve false (sin error) si la firma no lo tiene.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, tenantID int64, code entity.ModuleCode) (bool, error) {
	if tenantID <= 0 || code == "" {
		return false, fmt.Errorf("module: tenantID y code son obligatorios")
	}
	return s.moduleRepo.HasActiveModule(ctx, tenantID, code)
}

// ActiveModules conjunto tipado de módulos activos de la firma.
func (s *ModuleService) ActiveModules(ctx context.Context, tenantID int64) (entity.ModuleSet, error) {
	codes, err := s.moduleRepo.ActiveCodes(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return entity.NewModuleSet(codes...), nil
}
