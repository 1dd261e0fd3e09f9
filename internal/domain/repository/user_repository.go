package repository

import (
	"context"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail busca por email normalizado (minúsculas, sin espacios).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*entity.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}
