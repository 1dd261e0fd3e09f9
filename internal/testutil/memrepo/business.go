package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// ── Cari ────────────────────────────────────────────────────────────────────

// Cariler repo de cuentas corrientes.
func (s *Store) Cariler() repository.CariRepository { return cariRepo{s} }

type cariRepo struct{ s *Store }

func (r cariRepo) dupKod(c *entity.Cari) bool {
	for _, o := range r.s.cariler {
		if o.ID != c.ID && o.TenantID == c.TenantID && o.CariKodu == c.CariKodu {
			return true
		}
	}
	return false
}

func (r cariRepo) Create(_ context.Context, c *entity.Cari) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dupKod(c) {
		return domain.Duplicate("cariKodu", "Bu cari kodu zaten kullanılıyor.")
	}
	c.ID = r.s.id()
	c.OlusturmaTarihi = time.Now()
	cp := *c
	r.s.cariler[c.ID] = &cp
	return nil
}

func (r cariRepo) find(tenantID int64, pred func(*entity.Cari) bool) []*entity.Cari {
	list := make([]*entity.Cari, 0)
	for _, c := range r.s.cariler {
		if c.TenantID == tenantID && pred(c) {
			cp := *c
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CariAdi < list[j].CariAdi })
	return list
}

func (r cariRepo) first(tenantID int64, pred func(*entity.Cari) bool) (*entity.Cari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	if list := r.find(tenantID, pred); len(list) > 0 {
		return list[0], nil
	}
	return nil, nil
}

func (r cariRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.Cari, error) {
	return r.first(tenantID, func(c *entity.Cari) bool { return c.ID == id })
}

func (r cariRepo) GetByKod(_ context.Context, tenantID int64, kod string) (*entity.Cari, error) {
	return r.first(tenantID, func(c *entity.Cari) bool { return c.CariKodu == kod })
}

func (r cariRepo) List(_ context.Context, tenantID int64) ([]*entity.Cari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	return r.find(tenantID, func(*entity.Cari) bool { return true }), nil
}

func (r cariRepo) ListByTip(_ context.Context, tenantID int64, tip entity.CariTip) ([]*entity.Cari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	return r.find(tenantID, func(c *entity.Cari) bool { return c.CariTip == tip || c.CariTip == entity.CariHerIkisi }), nil
}

func (r cariRepo) Search(_ context.Context, tenantID int64, pattern string, n int) ([]*entity.Cari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	return limit(r.find(tenantID, func(c *entity.Cari) bool {
		return matches(pattern, c.CariKodu, c.CariAdi, c.Telefon, c.Email)
	}), n), nil
}

func (r cariRepo) Update(_ context.Context, c *entity.Cari) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dupKod(c) {
		return domain.Duplicate("cariKodu", "Bu cari kodu zaten kullanılıyor.")
	}
	if old, ok := r.s.cariler[c.ID]; ok && old.TenantID == c.TenantID {
		cp := *c
		r.s.cariler[c.ID] = &cp
	}
	return nil
}

func (r cariRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.hasFatura(tenantID, id) {
		return domain.ErrReferenced
	}
	if c, ok := r.s.cariler[id]; ok && c.TenantID == tenantID {
		delete(r.s.cariler, id)
	}
	return nil
}

func (r cariRepo) hasFatura(tenantID, id int64) bool {
	for _, f := range r.s.faturalar {
		if f.TenantID == tenantID && f.CariID != nil && *f.CariID == id {
			return true
		}
	}
	return false
}

func (r cariRepo) HasFatura(_ context.Context, tenantID, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return false, err
	}
	return r.hasFatura(tenantID, id), nil
}

// ── Stok ────────────────────────────────────────────────────────────────────

// Stoklar repo de fichas de stock.
func (s *Store) Stoklar() repository.StokRepository { return stokRepo{s} }

type stokRepo struct{ s *Store }

func (r stokRepo) checkUnique(st *entity.StokKarti) error {
	for _, o := range r.s.stoklar {
		if o.ID == st.ID || o.TenantID != st.TenantID {
			continue
		}
		if o.StokKodu == st.StokKodu {
			return domain.Duplicate("stokKodu", "Bu stok kodu zaten kullanılıyor.")
		}
		if st.Barkod != "" && o.Barkod == st.Barkod {
			return domain.Duplicate("barkod", "Bu barkod zaten kullanılıyor.")
		}
	}
	return nil
}

func (r stokRepo) Create(_ context.Context, st *entity.StokKarti) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if err := r.checkUnique(st); err != nil {
		return err
	}
	st.ID = r.s.id()
	st.OlusturmaTarihi = time.Now()
	cp := *st
	r.s.stoklar[st.ID] = &cp
	return nil
}

func (r stokRepo) find(tenantID int64, pred func(*entity.StokKarti) bool) []*entity.StokKarti {
	list := make([]*entity.StokKarti, 0)
	for _, st := range r.s.stoklar {
		if st.TenantID == tenantID && pred(st) {
			cp := *st
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StokAdi < list[j].StokAdi })
	return list
}

func (r stokRepo) query(pred func(*entity.StokKarti) bool, tenantID int64) ([]*entity.StokKarti, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	return r.find(tenantID, pred), nil
}

func (r stokRepo) first(tenantID int64, pred func(*entity.StokKarti) bool) (*entity.StokKarti, error) {
	list, err := r.query(pred, tenantID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r stokRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.StokKarti, error) {
	return r.first(tenantID, func(st *entity.StokKarti) bool { return st.ID == id })
}

func (r stokRepo) GetByKod(_ context.Context, tenantID int64, kod string) (*entity.StokKarti, error) {
	return r.first(tenantID, func(st *entity.StokKarti) bool { return st.StokKodu == kod })
}

func (r stokRepo) GetByBarkod(_ context.Context, tenantID int64, barkod string) (*entity.StokKarti, error) {
	return r.first(tenantID, func(st *entity.StokKarti) bool { return barkod != "" && st.Barkod == barkod })
}

func (r stokRepo) List(_ context.Context, tenantID int64) ([]*entity.StokKarti, error) {
	return r.query(func(*entity.StokKarti) bool { return true }, tenantID)
}

func (r stokRepo) ListByKategori(_ context.Context, tenantID int64, kategori string) ([]*entity.StokKarti, error) {
	return r.query(func(st *entity.StokKarti) bool { return st.Kategori == kategori }, tenantID)
}

func (r stokRepo) ListLowStock(_ context.Context, tenantID int64) ([]*entity.StokKarti, error) {
	list, err := r.query(func(st *entity.StokKarti) bool { return st.Aktif && st.LowStock() }, tenantID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].StokMiktari.LessThan(list[j].StokMiktari) })
	return list, nil
}

func (r stokRepo) Search(_ context.Context, tenantID int64, pattern string, n int) ([]*entity.StokKarti, error) {
	list, err := r.query(func(st *entity.StokKarti) bool {
		return matches(pattern, st.StokKodu, st.StokAdi, st.Barkod, st.Kategori)
	}, tenantID)
	return limit(list, n), err
}

func (r stokRepo) Update(_ context.Context, st *entity.StokKarti) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if err := r.checkUnique(st); err != nil {
		return err
	}
	old, ok := r.s.stoklar[st.ID]
	if !ok || old.TenantID != st.TenantID {
		return nil
	}
	cp := *st
	cp.StokMiktari = old.StokMiktari
	r.s.stoklar[st.ID] = &cp
	return nil
}

func (r stokRepo) hasReferences(tenantID, id int64) bool {
	for _, f := range r.s.faturalar {
		if f.TenantID != tenantID {
			continue
		}
		for _, l := range f.Satirlar {
			if l.StokID == id {
				return true
			}
		}
	}
	for _, a := range r.s.adisyonlar {
		if a.TenantID != tenantID {
			continue
		}
		for _, l := range a.Satirlar {
			if l.StokID == id {
				return true
			}
		}
	}
	return false
}

func (r stokRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.hasReferences(tenantID, id) {
		return domain.ErrReferenced
	}
	if st, ok := r.s.stoklar[id]; ok && st.TenantID == tenantID {
		delete(r.s.stoklar, id)
	}
	return nil
}

func (r stokRepo) HasReferences(_ context.Context, tenantID, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return false, err
	}
	return r.hasReferences(tenantID, id), nil
}

// ── Fatura ──────────────────────────────────────────────────────────────────

// Faturas repo de facturas.
func (s *Store) Faturas() repository.FaturaRepository { return faturaRepo{s} }

type faturaRepo struct{ s *Store }

func copyFatura(f *entity.Fatura) *entity.Fatura {
	cp := *f
	cp.Satirlar = make([]*entity.FaturaSatiri, len(f.Satirlar))
	for i, l := range f.Satirlar {
		lc := *l
		cp.Satirlar[i] = &lc
	}
	return &cp
}

// withJoins completa CariAdi y los datos de stock de las líneas, como los JOIN de PostgreSQL.
func (r faturaRepo) withJoins(f *entity.Fatura) *entity.Fatura {
	cp := copyFatura(f)
	cp.CariAdi = ""
	if f.CariID != nil {
		if c, ok := r.s.cariler[*f.CariID]; ok {
			cp.CariAdi = c.CariAdi
		}
	}
	for _, l := range cp.Satirlar {
		if st, ok := r.s.stoklar[l.StokID]; ok {
			l.StokKodu, l.StokAdi, l.Birim = st.StokKodu, st.StokAdi, st.Birim
		}
	}
	return cp
}

func (r faturaRepo) write(f *entity.Fatura, create bool) error {
	for _, o := range r.s.faturalar {
		if o.ID != f.ID && o.TenantID == f.TenantID && o.FaturaNo == f.FaturaNo {
			return domain.Duplicate("faturaNo", "Bu fatura numarası zaten kullanılıyor.")
		}
	}
	if f.CariID != nil {
		if c, ok := r.s.cariler[*f.CariID]; !ok || c.TenantID != f.TenantID {
			return domain.ErrReferenced
		}
	}
	for _, l := range f.Satirlar {
		if _, ok := r.s.stoklar[l.StokID]; !ok {
			return domain.ErrReferenced
		}
	}
	if create {
		f.ID = r.s.id()
		f.OlusturmaTarihi = time.Now()
	}
	for _, l := range f.Satirlar {
		l.FaturaID = f.ID
		if l.ID == 0 {
			l.ID = r.s.id()
		}
	}
	r.s.faturalar[f.ID] = copyFatura(f)
	return nil
}

func (r faturaRepo) Create(_ context.Context, f *entity.Fatura) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	return r.write(f, true)
}

func (r faturaRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.Fatura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	if f, ok := r.s.faturalar[id]; ok && f.TenantID == tenantID {
		return r.withJoins(f), nil
	}
	return nil, nil
}

func (r faturaRepo) GetByNo(_ context.Context, tenantID int64, no string) (*entity.Fatura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	for _, f := range r.s.faturalar {
		if f.TenantID == tenantID && f.FaturaNo == no {
			cp := r.withJoins(f)
			cp.Satirlar = nil
			return cp, nil
		}
	}
	return nil, nil
}

func (r faturaRepo) find(tenantID int64, pred func(*entity.Fatura) bool) ([]*entity.Fatura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.Fatura, 0)
	for _, f := range r.s.faturalar {
		if f.TenantID != tenantID {
			continue
		}
		cp := r.withJoins(f)
		cp.Satirlar = nil
		if pred(cp) {
			list = append(list, cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].FaturaTarihi.Equal(list[j].FaturaTarihi) {
			return list[i].FaturaTarihi.After(list[j].FaturaTarihi)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r faturaRepo) List(_ context.Context, tenantID int64) ([]*entity.Fatura, error) {
	return r.find(tenantID, func(*entity.Fatura) bool { return true })
}

func (r faturaRepo) Search(_ context.Context, tenantID int64, pattern string, n int) ([]*entity.Fatura, error) {
	list, err := r.find(tenantID, func(f *entity.Fatura) bool { return matches(pattern, f.FaturaNo, f.CariAdi) })
	return limit(list, n), err
}

func (r faturaRepo) Update(_ context.Context, f *entity.Fatura) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	old, ok := r.s.faturalar[f.ID]
	if !ok || old.TenantID != f.TenantID {
		return nil
	}
	for _, l := range f.Satirlar {
		l.ID = 0
	}
	return r.write(f, false)
}

func (r faturaRepo) UpdateDurum(_ context.Context, tenantID, id int64, from, to entity.FaturaDurum) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return false, err
	}
	f, ok := r.s.faturalar[id]
	if !ok || f.TenantID != tenantID || f.Durum != from {
		return false, nil
	}
	now := time.Now()
	f.Durum = to
	f.GuncellemeTarihi = &now
	return true, nil
}

func (r faturaRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if f, ok := r.s.faturalar[id]; ok && f.TenantID == tenantID {
		delete(r.s.faturalar, id)
	}
	return nil
}

// ── CRM ─────────────────────────────────────────────────────────────────────

// Musteriler repo de clientes del CRM.
func (s *Store) Musteriler() repository.CrmMusteriRepository { return musteriRepo{s} }

type musteriRepo struct{ s *Store }

func (r musteriRepo) dup(m *entity.CrmMusteri) bool {
	for _, o := range r.s.musteriler {
		if o.ID != m.ID && o.TenantID == m.TenantID && o.MusteriKodu == m.MusteriKodu {
			return true
		}
	}
	return false
}

func (r musteriRepo) Create(_ context.Context, m *entity.CrmMusteri) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dup(m) {
		return domain.Duplicate("musteriKodu", "Bu müşteri kodu zaten kullanılıyor.")
	}
	m.ID = r.s.id()
	m.OlusturmaTarihi = time.Now()
	cp := *m
	r.s.musteriler[m.ID] = &cp
	return nil
}

func (r musteriRepo) find(tenantID int64, pred func(*entity.CrmMusteri) bool) ([]*entity.CrmMusteri, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.CrmMusteri, 0)
	for _, m := range r.s.musteriler {
		if m.TenantID == tenantID && pred(m) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MusteriAdi < list[j].MusteriAdi })
	return list, nil
}

func (r musteriRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.CrmMusteri, error) {
	list, err := r.find(tenantID, func(m *entity.CrmMusteri) bool { return m.ID == id })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r musteriRepo) GetByKod(_ context.Context, tenantID int64, kod string) (*entity.CrmMusteri, error) {
	list, err := r.find(tenantID, func(m *entity.CrmMusteri) bool { return m.MusteriKodu == kod })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r musteriRepo) List(_ context.Context, tenantID int64) ([]*entity.CrmMusteri, error) {
	return r.find(tenantID, func(*entity.CrmMusteri) bool { return true })
}

func (r musteriRepo) Search(_ context.Context, tenantID int64, pattern string, n int) ([]*entity.CrmMusteri, error) {
	list, err := r.find(tenantID, func(m *entity.CrmMusteri) bool {
		return matches(pattern, m.MusteriKodu, m.MusteriAdi, m.FirmaAdi, m.Telefon, m.Email)
	})
	return limit(list, n), err
}

func (r musteriRepo) Update(_ context.Context, m *entity.CrmMusteri) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dup(m) {
		return domain.Duplicate("musteriKodu", "Bu müşteri kodu zaten kullanılıyor.")
	}
	if old, ok := r.s.musteriler[m.ID]; ok && old.TenantID == m.TenantID {
		cp := *m
		r.s.musteriler[m.ID] = &cp
	}
	return nil
}

func (r musteriRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if m, ok := r.s.musteriler[id]; ok && m.TenantID == tenantID {
		delete(r.s.musteriler, id)
		for aid, a := range r.s.aktiviteler {
			if a.CrmMusteriID == id {
				delete(r.s.aktiviteler, aid)
			}
		}
	}
	return nil
}

// Aktiviteler repo de actividades del CRM.
func (s *Store) Aktiviteler() repository.CrmAktiviteRepository { return aktiviteRepo{s} }

type aktiviteRepo struct{ s *Store }

func (r aktiviteRepo) Create(_ context.Context, a *entity.CrmAktivite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if m, ok := r.s.musteriler[a.CrmMusteriID]; !ok || m.TenantID != a.TenantID {
		return domain.ErrReferenced
	}
	a.ID = r.s.id()
	a.OlusturmaTarihi = time.Now()
	cp := *a
	r.s.aktiviteler[a.ID] = &cp
	return nil
}

func (r aktiviteRepo) find(tenantID int64, pred func(*entity.CrmAktivite) bool) ([]*entity.CrmAktivite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.CrmAktivite, 0)
	for _, a := range r.s.aktiviteler {
		if a.TenantID == tenantID && pred(a) {
			cp := *a
			if m, ok := r.s.musteriler[a.CrmMusteriID]; ok {
				cp.MusteriAdi = m.MusteriAdi
			}
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r aktiviteRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.CrmAktivite, error) {
	list, err := r.find(tenantID, func(a *entity.CrmAktivite) bool { return a.ID == id })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r aktiviteRepo) ListByMusteri(_ context.Context, tenantID, musteriID int64) ([]*entity.CrmAktivite, error) {
	return r.find(tenantID, func(a *entity.CrmAktivite) bool { return a.CrmMusteriID == musteriID })
}

func (r aktiviteRepo) ListBekleyen(_ context.Context, tenantID int64) ([]*entity.CrmAktivite, error) {
	return r.find(tenantID, func(a *entity.CrmAktivite) bool {
		return a.TamamlanmaTarihi == nil && !strings.EqualFold(a.Durum, entity.TamamlandiAktiviteDurum)
	})
}

func (r aktiviteRepo) Update(_ context.Context, a *entity.CrmAktivite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if old, ok := r.s.aktiviteler[a.ID]; ok && old.TenantID == a.TenantID {
		cp := *a
		r.s.aktiviteler[a.ID] = &cp
	}
	return nil
}

func (r aktiviteRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if a, ok := r.s.aktiviteler[id]; ok && a.TenantID == tenantID {
		delete(r.s.aktiviteler, id)
	}
	return nil
}
