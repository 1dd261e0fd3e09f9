package entity

import "time"

// TenantDurum estado comercial de la firma.
type TenantDurum int

const (
	TenantPasif  TenantDurum = 0
	TenantAktif  TenantDurum = 1
	TenantDemo   TenantDurum = 2
	TenantAskida TenantDurum = 3
)

func (d TenantDurum) String() string {
	switch d {
	case TenantPasif:
		return "Pasif"
	case TenantAktif:
		return "Aktif"
	case TenantDemo:
		return "Demo"
	case TenantAskida:
		return "Askida"
	}
	return "Bilinmiyor"
}

// Valid indica si el valor pertenece al enum.
func (d TenantDurum) Valid() bool { return d >= TenantPasif && d <= TenantAskida }

// Tenant firma cuyos datos están aislados del resto. Entidad global (sin TenantID).
type Tenant struct {
	ID               int64
	FirmaKodu        string
	FirmaAdi         string
	VergiNo          string
	Telefon          string
	Email            string
	Adres            string
	Durum            TenantDurum
	DemoMu           bool
	DemoBitisTarihi  *time.Time
	OlusturmaTarihi  time.Time
	GuncellemeTarihi *time.Time
}

// Suspended devuelve true para firmas Pasif o Askida.
func (t *Tenant) Suspended() bool {
	return t.Durum == TenantPasif || t.Durum == TenantAskida
}

// DemoExpired devuelve true si la firma está en demo y la fecha de fin ya pasó.
func (t *Tenant) DemoExpired(now time.Time) bool {
	return t.DemoMu && t.DemoBitisTarihi != nil && now.After(*t.DemoBitisTarihi)
}

// CanSignIn agrupa las condiciones de acceso a nivel de firma.
func (t *Tenant) CanSignIn(now time.Time) bool {
	return !t.Suspended() && !t.DemoExpired(now)
}

// DemoDaysLeft días completos restantes de demo (0 si no aplica o ya venció).
func (t *Tenant) DemoDaysLeft(now time.Time) int {
	if !t.DemoMu || t.DemoBitisTarihi == nil || now.After(*t.DemoBitisTarihi) {
		return 0
	}
	return int(t.DemoBitisTarihi.Sub(now).Hours() / 24)
}
