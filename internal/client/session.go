package client

import (
	"sync"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// Session estado de la sesión del usuario en el cliente de escritorio.
// Se pasa explícitamente a quien lo necesita; no hay estado global.
type Session struct {
	mu      sync.RWMutex
	user    *dto.LoginResponse
	role    entity.Role
	modules entity.ModuleSet
}

// NewSession crea una sesión vacía (sin usuario).
func NewSession() *Session {
	return &Session{modules: entity.NewModuleSet()}
}

// Start guarda el resultado de un login. Los módulos y el rol desconocidos se ignoran.
func (s *Session) Start(resp *dto.LoginResponse) {
	cp := *resp
	codes := make([]entity.ModuleCode, 0, len(resp.AktifModuller))
	for _, m := range resp.AktifModuller {
		codes = append(codes, entity.ModuleCode(m))
	}
	role, _ := entity.ParseRole(resp.Rol)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &cp
	s.role = role
	s.modules = entity.NewModuleSet(codes...)
}

// Clear cierra la sesión.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.role = ""
	s.modules = entity.NewModuleSet()
}

// Active hay un usuario autenticado.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token JWT de la sesión, vacío sin login.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

// TenantID firma de la sesión, 0 sin login.
func (s *Session) TenantID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.TenantID
}

// User copia de los datos del login.
func (s *Session) User() (dto.LoginResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return dto.LoginResponse{}, false
	}
	return *s.user, true
}

func (s *Session) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Modules conjunto de módulos activos de la firma.
func (s *Session) Modules() entity.ModuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.NewModuleSet(s.modules.Codes()...)
}

// DemoDaysLeft días restantes de demo. ok es false si la firma no está en demo.
func (s *Session) DemoDaysLeft(now time.Time) (days int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || !s.user.DemoMu || s.user.DemoBitisTarihi == nil {
		return 0, false
	}
	t := entity.Tenant{DemoMu: true, DemoBitisTarihi: s.user.DemoBitisTarihi}
	return t.DemoDaysLeft(now), true
}
