package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantRequest body de POST /api/admin/tenants.
type TenantRequest struct {
	FirmaKodu string `json:"firmaKodu" validate:"required,max=50"`
	FirmaAdi  string `json:"firmaAdi" validate:"required,max=200"`
	VergiNo   string `json:"vergiNo" validate:"max=20"`
	Telefon   string `json:"telefon" validate:"max=20"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Adres     string `json:"adres" validate:"max=500"`
	// DemoGun > 0 crea la firma en demo por ese número de días.
	DemoGun int `json:"demoGun" validate:"min=0,max=365"`
}

// TenantDurumRequest body de PUT /api/admin/tenants/:id/durum.
type TenantDurumRequest struct {
	Durum           int        `json:"durum" validate:"min=0,max=3"`
	DemoBitisTarihi *time.Time `json:"demoBitisTarihi"`
}

// TenantResponse firma.
type TenantResponse struct {
	ID               int64      `json:"id"`
	FirmaKodu        string     `json:"firmaKodu"`
	FirmaAdi         string     `json:"firmaAdi"`
	VergiNo          string     `json:"vergiNo,omitempty"`
	Telefon          string     `json:"telefon,omitempty"`
	Email            string     `json:"email,omitempty"`
	Adres            string     `json:"adres,omitempty"`
	Durum            int        `json:"durum"`
	DurumText        string     `json:"durumText"`
	DemoMu           bool       `json:"demoMu"`
	DemoBitisTarihi  *time.Time `json:"demoBitisTarihi"`
	OlusturmaTarihi  time.Time  `json:"olusturmaTarihi"`
	GuncellemeTarihi *time.Time `json:"guncellemeTarihi"`
}

// ModuleResponse entrada del catálogo.
type ModuleResponse struct {
	ID          int64           `json:"id"`
	ModulKodu   string          `json:"modulKodu"`
	ModulAdi    string          `json:"modulAdi"`
	Aciklama    string          `json:"aciklama,omitempty"`
	AylikUcret  decimal.Decimal `json:"aylikUcret"`
	YillikUcret decimal.Decimal `json:"yillikUcret"`
	Kategori    string          `json:"kategori,omitempty"`
	Aktif       bool            `json:"aktif"`
}

// TenantModuleResponse habilitación de un módulo para la firma.
type TenantModuleResponse struct {
	ModuleID    int64  `json:"moduleId"`
	ModulKodu   string `json:"modulKodu"`
	ModulAdi    string `json:"modulAdi"`
	Aktif       bool   `json:"aktif"`
	ModuleAktif bool   `json:"moduleAktif"`
}

// TenantModuleRequest body de PUT /api/admin/tenants/:id/moduller.
type TenantModuleRequest struct {
	ModulKodu string `json:"modulKodu" validate:"required,max=50"`
	Aktif     bool   `json:"aktif"`
}

// PlanRequest body de POST /api/admin/planlar.
type PlanRequest struct {
	PlanKodu     string          `json:"planKodu" validate:"required,max=50"`
	PlanAdi      string          `json:"planAdi" validate:"required,max=100"`
	Aciklama     string          `json:"aciklama" validate:"max=500"`
	AylikUcret   decimal.Decimal `json:"aylikUcret"`
	YillikUcret  decimal.Decimal `json:"yillikUcret"`
	MaxKullanici int             `json:"maxKullanici" validate:"min=0,max=10000"`
	Moduller     []string        `json:"moduller" validate:"dive,max=50"`
}

// PlanResponse plan comercial.
type PlanResponse struct {
	ID           int64           `json:"id"`
	PlanKodu     string          `json:"planKodu"`
	PlanAdi      string          `json:"planAdi"`
	Aciklama     string          `json:"aciklama,omitempty"`
	AylikUcret   decimal.Decimal `json:"aylikUcret"`
	YillikUcret  decimal.Decimal `json:"yillikUcret"`
	MaxKullanici int             `json:"maxKullanici"`
	Aktif        bool            `json:"aktif"`
	ModuleIDs    []int64         `json:"moduleIds"`
}

// SubscriptionResponse suscripción de la firma.
type SubscriptionResponse struct {
	ID                 int64     `json:"id"`
	SubscriptionPlanID int64     `json:"subscriptionPlanId"`
	BaslangicTarihi    time.Time `json:"baslangicTarihi"`
	BitisTarihi        time.Time `json:"bitisTarihi"`
	OdemeTipi          int       `json:"odemeTipi"`
	Durum              int       `json:"durum"`
}

// UserRequest body de POST /api/admin/tenants/:id/kullanicilar.
type UserRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=200"`
	AdSoyad  string `json:"adSoyad" validate:"required,max=100"`
	Telefon  string `json:"telefon" validate:"max=20"`
	Rol      string `json:"rol" validate:"omitempty,oneof=SuperAdmin TenantAdmin User Garson Kasiyer"`
}

// UserResponse usuario sin hash de contraseña.
type UserResponse struct {
	ID             int64      `json:"id"`
	TenantID       int64      `json:"tenantId"`
	Email          string     `json:"email"`
	AdSoyad        string     `json:"adSoyad"`
	Telefon        string     `json:"telefon,omitempty"`
	Rol            string     `json:"rol"`
	Aktif          bool       `json:"aktif"`
	SonGirisTarihi *time.Time `json:"sonGirisTarihi"`
}
