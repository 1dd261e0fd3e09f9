package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, tenant_id, email, password_hash, ad_soyad, telefon, rol, aktif,
	son_giris_tarihi, olusturma_tarihi, guncelleme_tarihi`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var telefon *string
	var rol string
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.AdSoyad, &telefon, &rol, &u.Aktif,
		&u.SonGirisTarihi, &u.OlusturmaTarihi, &u.GuncellemeTarihi)
	if err != nil {
		return nil, err
	}
	u.Telefon = fromNull(telefon)
	u.Rol = entity.Role(rol)
	return &u, nil
}

// Create persiste un nuevo usuario. El email debe llegar ya normalizado.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (tenant_id, email, password_hash, ad_soyad, telefon, rol, aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		u.TenantID, u.Email, u.PasswordHash, u.AdSoyad, nullString(u.Telefon), string(u.Rol), u.Aktif,
	).Scan(&u.ID, &u.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (cualquier firma).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByTenant usuarios de una firma ordenados por nombre.
func (r *UserRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY ad_soyad`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateLastLogin registra la fecha del último login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET son_giris_tarihi = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
