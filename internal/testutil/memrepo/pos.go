package memrepo

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// ── Masa ────────────────────────────────────────────────────────────────────

// Masalar repo de mesas.
func (s *Store) Masalar() repository.MasaRepository { return masaRepo{s} }

type masaRepo struct{ s *Store }

func (r masaRepo) dup(m *entity.Masa) bool {
	for _, o := range r.s.masalar {
		if o.ID != m.ID && o.TenantID == m.TenantID && o.MasaNo == m.MasaNo {
			return true
		}
	}
	return false
}

func (r masaRepo) Create(_ context.Context, m *entity.Masa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dup(m) {
		return domain.Duplicate("masaNo", "Bu masa numarası zaten kullanılıyor.")
	}
	m.ID = r.s.id()
	m.OlusturmaTarihi = time.Now()
	cp := *m
	r.s.masalar[m.ID] = &cp
	return nil
}

func (r masaRepo) find(tenantID int64, pred func(*entity.Masa) bool) ([]*entity.Masa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.Masa, 0)
	for _, m := range r.s.masalar {
		if m.TenantID == tenantID && pred(m) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Bolum != list[j].Bolum {
			return list[i].Bolum < list[j].Bolum
		}
		return list[i].MasaNo < list[j].MasaNo
	})
	return list, nil
}

func (r masaRepo) first(tenantID int64, pred func(*entity.Masa) bool) (*entity.Masa, error) {
	list, err := r.find(tenantID, pred)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r masaRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.Masa, error) {
	return r.first(tenantID, func(m *entity.Masa) bool { return m.ID == id })
}

func (r masaRepo) GetByNo(_ context.Context, tenantID int64, masaNo string) (*entity.Masa, error) {
	return r.first(tenantID, func(m *entity.Masa) bool { return m.MasaNo == masaNo })
}

func (r masaRepo) List(_ context.Context, tenantID int64) ([]*entity.Masa, error) {
	return r.find(tenantID, func(*entity.Masa) bool { return true })
}

func (r masaRepo) ListByDurum(_ context.Context, tenantID int64, durum entity.MasaDurum) ([]*entity.Masa, error) {
	return r.find(tenantID, func(m *entity.Masa) bool { return m.Aktif && m.Durum == durum })
}

func (r masaRepo) Update(_ context.Context, m *entity.Masa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.dup(m) {
		return domain.Duplicate("masaNo", "Bu masa numarası zaten kullanılıyor.")
	}
	if old, ok := r.s.masalar[m.ID]; ok && old.TenantID == m.TenantID {
		cp := *m
		cp.OlusturmaTarihi = old.OlusturmaTarihi
		r.s.masalar[m.ID] = &cp
	}
	return nil
}

func (r masaRepo) UpdateDurum(_ context.Context, tenantID, id int64, durum entity.MasaDurum) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if m, ok := r.s.masalar[id]; ok && m.TenantID == tenantID {
		m.Durum = durum
	}
	return nil
}

func (r masaRepo) hasAdisyon(tenantID, id int64) bool {
	for _, a := range r.s.adisyonlar {
		if a.TenantID == tenantID && a.MasaID == id {
			return true
		}
	}
	return false
}

func (r masaRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if r.hasAdisyon(tenantID, id) {
		return domain.ErrReferenced
	}
	if m, ok := r.s.masalar[id]; ok && m.TenantID == tenantID {
		delete(r.s.masalar, id)
	}
	return nil
}

func (r masaRepo) HasAdisyon(_ context.Context, tenantID, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return false, err
	}
	return r.hasAdisyon(tenantID, id), nil
}

// ── Adisyon ─────────────────────────────────────────────────────────────────

// Adisyonlar repo de comandas.
func (s *Store) Adisyonlar() repository.AdisyonRepository { return adisyonRepo{s} }

type adisyonRepo struct{ s *Store }

func copyAdisyon(a *entity.Adisyon) *entity.Adisyon {
	cp := *a
	cp.Satirlar = make([]*entity.AdisyonSatiri, len(a.Satirlar))
	for i, l := range a.Satirlar {
		lc := *l
		cp.Satirlar[i] = &lc
	}
	return &cp
}

func (r adisyonRepo) withJoins(a *entity.Adisyon) *entity.Adisyon {
	cp := copyAdisyon(a)
	if m, ok := r.s.masalar[a.MasaID]; ok {
		cp.MasaNo = m.MasaNo
	}
	for _, l := range cp.Satirlar {
		if st, ok := r.s.stoklar[l.StokID]; ok {
			l.StokAdi = st.StokAdi
		}
	}
	return cp
}

func (r adisyonRepo) Create(_ context.Context, a *entity.Adisyon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if m, ok := r.s.masalar[a.MasaID]; !ok || m.TenantID != a.TenantID {
		return domain.ErrReferenced
	}
	for _, o := range r.s.adisyonlar {
		if o.TenantID != a.TenantID {
			continue
		}
		if o.AdisyonNo == a.AdisyonNo {
			return domain.Duplicate("adisyonNo", "Bu adisyon numarası zaten kullanılıyor.")
		}
		if a.Durum == entity.AdisyonAcik && o.MasaID == a.MasaID && o.Acik() {
			return domain.InvalidState("Bu masada zaten açık bir adisyon var.")
		}
	}
	a.ID = r.s.id()
	a.OlusturmaTarihi = time.Now()
	r.s.adisyonlar[a.ID] = copyAdisyon(a)
	return nil
}

func (r adisyonRepo) first(tenantID int64, pred func(*entity.Adisyon) bool) (*entity.Adisyon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	for _, a := range r.s.adisyonlar {
		if a.TenantID == tenantID && pred(a) {
			return r.withJoins(a), nil
		}
	}
	return nil, nil
}

func (r adisyonRepo) GetByID(_ context.Context, tenantID, id int64) (*entity.Adisyon, error) {
	return r.first(tenantID, func(a *entity.Adisyon) bool { return a.ID == id })
}

func (r adisyonRepo) GetByNo(_ context.Context, tenantID int64, no string) (*entity.Adisyon, error) {
	return r.first(tenantID, func(a *entity.Adisyon) bool { return a.AdisyonNo == no })
}

func (r adisyonRepo) GetAcikByMasa(_ context.Context, tenantID, masaID int64) (*entity.Adisyon, error) {
	return r.first(tenantID, func(a *entity.Adisyon) bool { return a.MasaID == masaID && a.Acik() })
}

func (r adisyonRepo) find(tenantID int64, pred func(*entity.Adisyon) bool) ([]*entity.Adisyon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.Adisyon, 0)
	for _, a := range r.s.adisyonlar {
		if a.TenantID == tenantID && pred(a) {
			cp := r.withJoins(a)
			cp.Satirlar = nil
			list = append(list, cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].AcilisTarihi.Equal(list[j].AcilisTarihi) {
			return list[i].AcilisTarihi.After(list[j].AcilisTarihi)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r adisyonRepo) List(_ context.Context, tenantID int64) ([]*entity.Adisyon, error) {
	return r.find(tenantID, func(*entity.Adisyon) bool { return true })
}

func (r adisyonRepo) ListByDurum(_ context.Context, tenantID int64, durum entity.AdisyonDurum) ([]*entity.Adisyon, error) {
	return r.find(tenantID, func(a *entity.Adisyon) bool { return a.Durum == durum })
}

func (r adisyonRepo) MaxSeqByPrefix(_ context.Context, tenantID int64, prefix string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return 0, err
	}
	top := 0
	for _, a := range r.s.adisyonlar {
		if a.TenantID != tenantID || !strings.HasPrefix(a.AdisyonNo, prefix) {
			continue
		}
		rest := strings.TrimPrefix(a.AdisyonNo, prefix)
		if len(rest) == 0 || len(rest) > 9 || strings.TrimLeft(rest, "0123456789") != "" {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > top {
			top = n
		}
	}
	return top, nil
}

func (r adisyonRepo) AddSatir(_ context.Context, l *entity.AdisyonSatiri) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	a, ok := r.s.adisyonlar[l.AdisyonID]
	if !ok {
		return domain.ErrReferenced
	}
	if _, ok := r.s.stoklar[l.StokID]; !ok {
		return domain.ErrReferenced
	}
	sira := 0
	for _, o := range a.Satirlar {
		if o.SiraNo > sira {
			sira = o.SiraNo
		}
	}
	l.ID = r.s.id()
	l.SiraNo = sira + 1
	l.OlusturmaTarihi = time.Now()
	cp := *l
	a.Satirlar = append(a.Satirlar, &cp)
	return nil
}

func (r adisyonRepo) DeleteSatir(_ context.Context, adisyonID, satirID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return false, err
	}
	a, ok := r.s.adisyonlar[adisyonID]
	if !ok {
		return false, nil
	}
	for i, l := range a.Satirlar {
		if l.ID == satirID {
			a.Satirlar = append(a.Satirlar[:i:i], a.Satirlar[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r adisyonRepo) UpdateHeader(_ context.Context, a *entity.Adisyon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	old, ok := r.s.adisyonlar[a.ID]
	if !ok || old.TenantID != a.TenantID {
		return nil
	}
	old.AraToplam, old.IndirimToplam, old.GenelToplam = a.AraToplam, a.IndirimToplam, a.GenelToplam
	old.OdenenTutar, old.Durum, old.KapanisTarihi, old.Aciklama = a.OdenenTutar, a.Durum, a.KapanisTarihi, a.Aciklama
	return nil
}

func (r adisyonRepo) Delete(_ context.Context, tenantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if a, ok := r.s.adisyonlar[id]; ok && a.TenantID == tenantID {
		delete(r.s.adisyonlar, id)
	}
	return nil
}
