package entity

import "time"

// Role rol del usuario. Se persiste como texto.
type Role string

const (
	RoleSuperAdmin  Role = "SuperAdmin"
	RoleTenantAdmin Role = "TenantAdmin"
	RoleUser        Role = "User"
	RoleGarson      Role = "Garson"
	RoleKasiyer     Role = "Kasiyer"
)

var allRoles = []Role{RoleSuperAdmin, RoleTenantAdmin, RoleUser, RoleGarson, RoleKasiyer}

// ParseRole valida un rol recibido como texto. Devuelve false si no existe.
func ParseRole(s string) (Role, bool) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// IsAdmin roles con acceso a la configuración de la firma.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleTenantAdmin
}

// Display texto para la interfaz.
func (r Role) Display() string {
	switch r {
	case RoleSuperAdmin:
		return "Süper Yönetici"
	case RoleTenantAdmin:
		return "Firma Yöneticisi"
	case RoleUser:
		return "Kullanıcı"
	case RoleGarson:
		return "Garson"
	case RoleKasiyer:
		return "Kasiyer"
	}
	return string(r)
}

// User usuario del sistema; pertenece a un Tenant. Email es único globalmente.
type User struct {
	ID               int64
	TenantID         int64
	Email            string
	PasswordHash     string
	AdSoyad          string
	Telefon          string
	Rol              Role
	Aktif            bool
	SonGirisTarihi   *time.Time
	OlusturmaTarihi  time.Time
	GuncellemeTarihi *time.Time
}
