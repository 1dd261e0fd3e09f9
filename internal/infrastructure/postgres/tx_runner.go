package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.TxRunner and pos.TxRunner.
var (
	_ billing.TxRunner = (*TxRunner)(nil)
	_ pos.TxRunner     = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFatura inicia una transacción con los repos de facturación (cabecera + líneas).
func (r *TxRunner) RunFatura(ctx context.Context, fn func(
	faturaRepo repository.FaturaRepository,
	cariRepo repository.CariRepository,
	stokRepo repository.StokRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewFaturaRepository(q), NewCariRepository(q), NewStokRepository(q))
	})
}

// RunAdisyon inicia una transacción con los repos de POS (comanda + mesa).
func (r *TxRunner) RunAdisyon(ctx context.Context, fn func(
	adisyonRepo repository.AdisyonRepository,
	masaRepo repository.MasaRepository,
	stokRepo repository.StokRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewAdisyonRepository(q), NewMasaRepository(q), NewStokRepository(q))
	})
}
