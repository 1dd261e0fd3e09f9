package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes son los que ve el usuario final.
var (
	ErrNotFound           = errors.New("kayıt bulunamadı")
	ErrInvalidInput       = errors.New("geçersiz giriş")
	ErrDuplicate          = errors.New("kayıt zaten mevcut")
	ErrInvalidCredentials = errors.New("e-posta veya şifre hatalı")
	ErrUnauthorized       = errors.New("yetkisiz erişim")
	ErrForbidden          = errors.New("erişim reddedildi")
	ErrTenantRequired     = errors.New("X-Tenant-Id header'ı gereklidir.")
	ErrReferenced         = errors.New("kayıt başka kayıtlar tarafından kullanılıyor")
	ErrInvalidState       = errors.New("kayıt bu işlem için uygun durumda değil")
)

// ValidationError error de validación atado a un campo concreto.
// Err es la causa genérica (ErrInvalidInput o ErrDuplicate) para errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// Required construye el error de campo obligatorio vacío.
func Required(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidInput}
}

// Duplicate construye el error de clave natural repetida dentro del tenant.
func Duplicate(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrDuplicate}
}

// RuleError violación de regla de negocio (borrado con referencias, transición de estado inválida).
type RuleError struct {
	Message string
	Err     error
}

func (e *RuleError) Error() string { return e.Message }
func (e *RuleError) Unwrap() error { return e.Err }

// Referenced construye el error de borrado bloqueado por referencias vivas.
func Referenced(message string) error {
	return &RuleError{Message: message, Err: ErrReferenced}
}

// InvalidState construye el error de transición de estado no permitida.
func InvalidState(message string) error {
	return &RuleError{Message: message, Err: ErrInvalidState}
}

// NotFound construye el error 404 con el mensaje propio de cada entidad.
func NotFound(message string) error {
	return &RuleError{Message: message, Err: ErrNotFound}
}
