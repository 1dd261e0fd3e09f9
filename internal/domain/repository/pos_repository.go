package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// MasaRepository define el puerto de persistencia para Masa.
type MasaRepository interface {
	Create(ctx context.Context, masa *entity.Masa) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Masa, error)
	GetByNo(ctx context.Context, tenantID int64, masaNo string) (*entity.Masa, error)
	List(ctx context.Context, tenantID int64) ([]*entity.Masa, error)
	ListByDurum(ctx context.Context, tenantID int64, durum entity.MasaDurum) ([]*entity.Masa, error)
	Update(ctx context.Context, masa *entity.Masa) error
	UpdateDurum(ctx context.Context, tenantID, id int64, durum entity.MasaDurum) error
	Delete(ctx context.Context, tenantID, id int64) error
	HasAdisyon(ctx context.Context, tenantID, id int64) (bool, error)
}

// AdisyonRepository define el puerto de persistencia para Adisyon y sus líneas.
type AdisyonRepository interface {
	Create(ctx context.Context, adisyon *entity.Adisyon) error
	// GetByID carga cabecera, MasaNo y líneas.
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Adisyon, error)
	GetByNo(ctx context.Context, tenantID int64, adisyonNo string) (*entity.Adisyon, error)
	GetAcikByMasa(ctx context.Context, tenantID, masaID int64) (*entity.Adisyon, error)
	List(ctx context.Context, tenantID int64) ([]*entity.Adisyon, error)
	ListByDurum(ctx context.Context, tenantID int64, durum entity.AdisyonDurum) ([]*entity.Adisyon, error)
	// MaxSeqByPrefix mayor secuencia numérica tras prefix (numeración diaria); 0 si no hay ninguna.
	MaxSeqByPrefix(ctx context.Context, tenantID int64, prefix string) (int, error)
	AddSatir(ctx context.Context, satir *entity.AdisyonSatiri) error
	DeleteSatir(ctx context.Context, adisyonID, satirID int64) (bool, error)
	// UpdateHeader persiste totales, estado y fechas de cierre.
	UpdateHeader(ctx context.Context, adisyon *entity.Adisyon) error
	Delete(ctx context.Context, tenantID, id int64) error
}
