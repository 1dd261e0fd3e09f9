package dto

import "time"

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=100"`
	Password string `json:"password" validate:"max=200"`
}

// LoginResponse sesión devuelta al cliente de escritorio.
type LoginResponse struct {
	UserID          int64      `json:"userId"`
	AdSoyad         string     `json:"adSoyad"`
	Email           string     `json:"email"`
	Rol             string     `json:"rol"`
	TenantID        int64      `json:"tenantId"`
	FirmaAdi        string     `json:"firmaAdi"`
	Token           string     `json:"token"`
	AktifModuller   []string   `json:"aktifModuller"`
	DemoMu          bool       `json:"demoMu"`
	DemoBitisTarihi *time.Time `json:"demoBitisTarihi"`
}

// ValidateTokenResponse respuesta de GET /api/auth/validate.
type ValidateTokenResponse struct {
	Valid  bool  `json:"valid"`
	UserID int64 `json:"userId,omitempty"`
}

// MeResponse identidad del token en curso.
type MeResponse struct {
	UserID   int64  `json:"userId"`
	TenantID int64  `json:"tenantId"`
	Rol      string `json:"rol"`
}
