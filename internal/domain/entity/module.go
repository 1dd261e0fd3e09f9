package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ModuleCode código de un área funcional licenciable.
type ModuleCode string

const (
	ModuleCari      ModuleCode = "CARI"
	ModuleStok      ModuleCode = "STOK"
	ModuleFatura    ModuleCode = "FATURA"
	ModulePOS       ModuleCode = "POS"
	ModuleCRM       ModuleCode = "CRM"
	ModuleRaporlama ModuleCode = "RAPORLAMA"
)

// KnownModules catálogo base sembrado por las migraciones.
var KnownModules = []ModuleCode{ModuleCari, ModuleStok, ModuleFatura, ModulePOS, ModuleCRM, ModuleRaporlama}

// ModuleSet conjunto tipado de módulos activos.
type ModuleSet map[ModuleCode]struct{}

// NewModuleSet construye el conjunto a partir de códigos.
func NewModuleSet(codes ...ModuleCode) ModuleSet {
	s := make(ModuleSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has pertenencia al conjunto.
func (s ModuleSet) Has(code ModuleCode) bool {
	_, ok := s[code]
	return ok
}

// Codes códigos ordenados alfabéticamente.
func (s ModuleSet) Codes() []ModuleCode {
	out := make([]ModuleCode, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Module entrada del catálogo global.
type Module struct {
	ID              int64
	ModulKodu       ModuleCode
	ModulAdi        string
	Aciklama        string
	AylikUcret      decimal.Decimal
	YillikUcret     decimal.Decimal
	Kategori        string
	Aktif           bool
	OlusturmaTarihi time.Time
}

// TenantModule habilita (o no) un módulo para una firma. La ausencia de fila equivale a no habilitado.
type TenantModule struct {
	ID              int64
	TenantID        int64
	ModuleID        int64
	Aktif           bool
	OlusturmaTarihi time.Time
}

// TenantModuleView fila de TenantModule con los datos del catálogo, para el panel de administración.
type TenantModuleView struct {
	TenantModule
	ModulKodu   ModuleCode
	ModulAdi    string
	ModuleAktif bool
}
