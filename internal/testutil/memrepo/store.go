// Package memrepo implementa los puertos de repositorio en memoria para tests de casos de uso
// y handlers. Reproduce las restricciones únicas y las FK RESTRICT del esquema PostgreSQL.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store base de datos en memoria compartida por todos los repos que crea.
type Store struct {
	mu     sync.Mutex
	nextID int64

	tenants       map[int64]*entity.Tenant
	users         map[int64]*entity.User
	modules       map[int64]*entity.Module
	tenantModules map[[2]int64]*entity.TenantModule
	plans         map[int64]*entity.SubscriptionPlan
	subscriptions map[int64]*entity.TenantSubscription
	cariler       map[int64]*entity.Cari
	stoklar       map[int64]*entity.StokKarti
	faturalar     map[int64]*entity.Fatura
	masalar       map[int64]*entity.Masa
	adisyonlar    map[int64]*entity.Adisyon
	musteriler    map[int64]*entity.CrmMusteri
	aktiviteler   map[int64]*entity.CrmAktivite

	// Fail fuerza un error de infraestructura en cualquier operación.
	Fail error
}

// New crea un store vacío con el catálogo de módulos base.
func New() *Store {
	s := &Store{
		tenants:       map[int64]*entity.Tenant{},
		users:         map[int64]*entity.User{},
		modules:       map[int64]*entity.Module{},
		tenantModules: map[[2]int64]*entity.TenantModule{},
		plans:         map[int64]*entity.SubscriptionPlan{},
		subscriptions: map[int64]*entity.TenantSubscription{},
		cariler:       map[int64]*entity.Cari{},
		stoklar:       map[int64]*entity.StokKarti{},
		faturalar:     map[int64]*entity.Fatura{},
		masalar:       map[int64]*entity.Masa{},
		adisyonlar:    map[int64]*entity.Adisyon{},
		musteriler:    map[int64]*entity.CrmMusteri{},
		aktiviteler:   map[int64]*entity.CrmAktivite{},
	}
	for _, code := range entity.KnownModules {
		id := s.id()
		s.modules[id] = &entity.Module{ID: id, ModulKodu: code, ModulAdi: string(code), Aktif: true}
	}
	return s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// matches reproduce `col ILIKE pattern` para patrones generados por textnorm.LikePattern.
func matches(pattern string, values ...string) bool {
	term := strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")
	term = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(term)
	term = strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func limit[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}

// ── Tenants / usuarios / módulos ────────────────────────────────────────────

// AddTenant inserta una firma activa con los módulos indicados habilitados.
func (s *Store) AddTenant(kod, adi string, codes ...entity.ModuleCode) *entity.Tenant {
	t := &entity.Tenant{FirmaKodu: kod, FirmaAdi: adi, Durum: entity.TenantAktif}
	_ = s.Tenants().Create(context.Background(), t)
	for _, c := range codes {
		s.EnableModule(t.ID, c)
	}
	return t
}

// EnableModule habilita un módulo del catálogo para la firma.
func (s *Store) EnableModule(tenantID int64, code entity.ModuleCode) {
	m, _ := s.Modules().GetByCode(context.Background(), code)
	if m != nil {
		_ = s.Modules().SetTenantModule(context.Background(), tenantID, m.ID, true)
	}
}

// Tenants repo de firmas.
func (s *Store) Tenants() repository.TenantRepository { return tenantRepo{s} }

type tenantRepo struct{ s *Store }

func (r tenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	for _, o := range r.s.tenants {
		if o.FirmaKodu == t.FirmaKodu {
			return domain.Duplicate("firmaKodu", "Bu firma kodu zaten kullanılıyor.")
		}
	}
	t.ID = r.s.id()
	t.OlusturmaTarihi = time.Now()
	cp := *t
	r.s.tenants[t.ID] = &cp
	return nil
}

func (r tenantRepo) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	if t, ok := r.s.tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r tenantRepo) GetByFirmaKodu(_ context.Context, kod string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	for _, t := range r.s.tenants {
		if t.FirmaKodu == kod {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r tenantRepo) List(_ context.Context) ([]*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		cp := *t
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FirmaAdi < list[j].FirmaAdi })
	return list, nil
}

func (r tenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	cp := *t
	r.s.tenants[t.ID] = &cp
	return nil
}

// Users repo de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	for _, o := range r.s.users {
		if o.Email == u.Email {
			return domain.Duplicate("email", "Bu e-posta adresi zaten kayıtlı.")
		}
	}
	u.ID = r.s.id()
	u.OlusturmaTarihi = time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByTenant(_ context.Context, tenantID int64) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.TenantID == tenantID {
			cp := *u
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AdSoyad < list[j].AdSoyad })
	return list, nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	if u, ok := r.s.users[id]; ok {
		u.SonGirisTarihi = &at
	}
	return nil
}

// Modules repo del catálogo de módulos.
func (s *Store) Modules() repository.ModuleRepository { return moduleRepo{s} }

type moduleRepo struct{ s *Store }

func (r moduleRepo) List(_ context.Context) ([]*entity.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.Module, 0, len(r.s.modules))
	for _, m := range r.s.modules {
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ModulKodu < list[j].ModulKodu })
	return list, nil
}

func (r moduleRepo) GetByCode(_ context.Context, code entity.ModuleCode) (*entity.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	for _, m := range r.s.modules {
		if m.ModulKodu == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r moduleRepo) ActiveCodes(_ context.Context, tenantID int64) ([]entity.ModuleCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	set := entity.NewModuleSet()
	for key, tm := range r.s.tenantModules {
		if key[0] != tenantID || !tm.Aktif {
			continue
		}
		if m := r.s.modules[key[1]]; m != nil && m.Aktif {
			set[m.ModulKodu] = struct{}{}
		}
	}
	return set.Codes(), nil
}

func (r moduleRepo) HasActiveModule(ctx context.Context, tenantID int64, code entity.ModuleCode) (bool, error) {
	codes, err := r.ActiveCodes(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return entity.NewModuleSet(codes...).Has(code), nil
}

func (r moduleRepo) ListTenantModules(_ context.Context, tenantID int64) ([]*entity.TenantModuleView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.TenantModuleView, 0)
	for key, tm := range r.s.tenantModules {
		if key[0] != tenantID {
			continue
		}
		m := r.s.modules[key[1]]
		list = append(list, &entity.TenantModuleView{TenantModule: *tm, ModulKodu: m.ModulKodu, ModulAdi: m.ModulAdi, ModuleAktif: m.Aktif})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ModulKodu < list[j].ModulKodu })
	return list, nil
}

func (r moduleRepo) SetTenantModule(_ context.Context, tenantID, moduleID int64, aktif bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	key := [2]int64{tenantID, moduleID}
	if tm, ok := r.s.tenantModules[key]; ok {
		tm.Aktif = aktif
		return nil
	}
	r.s.tenantModules[key] = &entity.TenantModule{ID: r.s.id(), TenantID: tenantID, ModuleID: moduleID, Aktif: aktif, OlusturmaTarihi: time.Now()}
	return nil
}

// Subscriptions repo de planes y suscripciones.
func (s *Store) Subscriptions() repository.SubscriptionRepository { return subscriptionRepo{s} }

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) ListPlans(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.SubscriptionPlan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PlanKodu < list[j].PlanKodu })
	return list, nil
}

func (r subscriptionRepo) CreatePlan(_ context.Context, p *entity.SubscriptionPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return err
	}
	for _, o := range r.s.plans {
		if o.PlanKodu == p.PlanKodu {
			return domain.Duplicate("planKodu", "Bu plan kodu zaten kullanılıyor.")
		}
	}
	p.ID = r.s.id()
	p.OlusturmaTarihi = time.Now()
	cp := *p
	r.s.plans[p.ID] = &cp
	return nil
}

func (r subscriptionRepo) ListByTenant(_ context.Context, tenantID int64) ([]*entity.TenantSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return nil, err
	}
	list := make([]*entity.TenantSubscription, 0)
	for _, sub := range r.s.subscriptions {
		if sub.TenantID == tenantID {
			cp := *sub
			list = append(list, &cp)
		}
	}
	return list, nil
}

// AddSubscription inserta una suscripción (solo tests).
func (s *Store) AddSubscription(sub *entity.TenantSubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = s.id()
	cp := *sub
	s.subscriptions[sub.ID] = &cp
}

// ── Dashboard ───────────────────────────────────────────────────────────────

// Dashboard repo de agregados del tablero.
func (s *Store) Dashboard() repository.DashboardRepository { return dashboardRepo{s} }

type dashboardRepo struct{ s *Store }

func (r dashboardRepo) CountActiveCari(_ context.Context, tenantID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return 0, err
	}
	n := 0
	for _, c := range r.s.cariler {
		if c.TenantID == tenantID && c.Aktif {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) CountActiveStok(_ context.Context, tenantID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return 0, err
	}
	n := 0
	for _, st := range r.s.stoklar {
		if st.TenantID == tenantID && st.Aktif {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) CountFatura(_ context.Context, tenantID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return 0, err
	}
	n := 0
	for _, f := range r.s.faturalar {
		if f.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) SumSatis(_ context.Context, tenantID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, f := range r.s.faturalar {
		if f.TenantID == tenantID && f.FaturaTipi == entity.FaturaSatis {
			total = total.Add(f.GenelToplam)
		}
	}
	return total, nil
}

func (r dashboardRepo) CountLowStock(_ context.Context, tenantID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.Fail; err != nil {
		return 0, err
	}
	n := 0
	for _, st := range r.s.stoklar {
		if st.TenantID == tenantID && st.Aktif && st.LowStock() {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) RecentFaturas(ctx context.Context, tenantID int64, n int) ([]*entity.Fatura, error) {
	list, err := r.s.Faturas().List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return limit(list, n), nil
}
