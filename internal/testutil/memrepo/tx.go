package memrepo

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// TxRunner emula la transacción: si el callback falla se restaura el estado previo.
type TxRunner struct{ s *Store }

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

type snapshot struct {
	cariler    map[int64]*entity.Cari
	stoklar    map[int64]*entity.StokKarti
	faturalar  map[int64]*entity.Fatura
	masalar    map[int64]*entity.Masa
	adisyonlar map[int64]*entity.Adisyon
}

func cloneMap[T any](in map[int64]*T, cp func(*T) *T) map[int64]*T {
	out := make(map[int64]*T, len(in))
	for k, v := range in {
		out[k] = cp(v)
	}
	return out
}

func shallow[T any](v *T) *T {
	c := *v
	return &c
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		cariler:    cloneMap(s.cariler, shallow[entity.Cari]),
		stoklar:    cloneMap(s.stoklar, shallow[entity.StokKarti]),
		faturalar:  cloneMap(s.faturalar, copyFatura),
		masalar:    cloneMap(s.masalar, shallow[entity.Masa]),
		adisyonlar: cloneMap(s.adisyonlar, copyAdisyon),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cariler, s.stoklar, s.faturalar = sn.cariler, sn.stoklar, sn.faturalar
	s.masalar, s.adisyonlar = sn.masalar, sn.adisyonlar
}

func (r *TxRunner) run(fn func() error) error {
	sn := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(sn)
		return err
	}
	return nil
}

// RunFatura ejecuta fn con los repos de facturación del store.
func (r *TxRunner) RunFatura(_ context.Context, fn func(
	faturaRepo repository.FaturaRepository,
	cariRepo repository.CariRepository,
	stokRepo repository.StokRepository,
) error) error {
	return r.run(func() error { return fn(r.s.Faturas(), r.s.Cariler(), r.s.Stoklar()) })
}

// RunAdisyon ejecuta fn con los repos de POS del store.
func (r *TxRunner) RunAdisyon(_ context.Context, fn func(
	adisyonRepo repository.AdisyonRepository,
	masaRepo repository.MasaRepository,
	stokRepo repository.StokRepository,
) error) error {
	return r.run(func() error { return fn(r.s.Adisyonlar(), r.s.Masalar(), r.s.Stoklar()) })
}
