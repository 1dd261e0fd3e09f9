// Package pos casos de uso del punto de venta de restaurante: mesas y comandas.
package pos

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de comandas.
// Abrir y cerrar una comanda cambia también el estado de la mesa: ambas escrituras van juntas.
type TxRunner interface {
	RunAdisyon(ctx context.Context, fn func(
		adisyonRepo repository.AdisyonRepository,
		masaRepo repository.MasaRepository,
		stokRepo repository.StokRepository,
	) error) error
}
