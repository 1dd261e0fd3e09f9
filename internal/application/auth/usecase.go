package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/jhoicas/erpcrm-api/pkg/jwt"
	"github.com/jhoicas/erpcrm-api/pkg/password"
	"github.com/jhoicas/erpcrm-api/pkg/textnorm"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y validación de token.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	moduleRepo repository.ModuleRepository
	hasher     password.Hasher
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	moduleRepo repository.ModuleRepository,
	hasher password.Hasher,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		moduleRepo: moduleRepo,
		hasher:     hasher,
		jwtCfg:     jwtCfg,
		now:        time.Now,
	}
}

// Login verifica email/password y el estado de la firma, genera JWT y devuelve la sesión.
// Cualquier rechazo (usuario inexistente, contraseña, usuario inactivo, firma suspendida,
// demo vencida) es domain.ErrInvalidCredentials: el cliente no puede distinguir la causa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := textnorm.Email(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: buscar usuario: %w", err)
	}
	if user == nil || !user.Aktif {
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Verify(user.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("login: obtener firma: %w", err)
	}
	now := uc.now()
	if tenant == nil || !tenant.CanSignIn(now) {
		return nil, domain.ErrInvalidCredentials
	}

	codes, err := uc.moduleRepo.ActiveCodes(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("login: módulos activos: %w", err)
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("login: último acceso: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, string(user.Rol), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	moduller := make([]string, 0, len(codes))
	for _, c := range codes {
		moduller = append(moduller, string(c))
	}
	return &dto.LoginResponse{
		UserID:          user.ID,
		AdSoyad:         user.AdSoyad,
		Email:           user.Email,
		Rol:             string(user.Rol),
		TenantID:        user.TenantID,
		FirmaAdi:        tenant.FirmaAdi,
		Token:           token,
		AktifModuller:   moduller,
		DemoMu:          tenant.DemoMu,
		DemoBitisTarihi: tenant.DemoBitisTarihi,
	}, nil
}

// ValidateToken devuelve el ID de usuario del token, o false si no es válido por cualquier motivo.
func (uc *AuthUseCase) ValidateToken(token string) (int64, bool) {
	if strings.TrimSpace(token) == "" {
		return 0, false
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// HashPassword expone el hasher configurado para el alta de usuarios.
func (uc *AuthUseCase) HashPassword(plain string) (string, error) {
	return uc.hasher.Hash(plain)
}
