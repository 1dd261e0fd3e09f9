package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OdemeTipi periodicidad de cobro de la suscripción.
type OdemeTipi int

const (
	OdemeAylik  OdemeTipi = 1
	OdemeYillik OdemeTipi = 2
)

func (o OdemeTipi) Valid() bool { return o == OdemeAylik || o == OdemeYillik }

// SubscriptionDurum estado de la suscripción.
type SubscriptionDurum int

const (
	SubscriptionPasif        SubscriptionDurum = 0
	SubscriptionAktif        SubscriptionDurum = 1
	SubscriptionSuresiDolmus SubscriptionDurum = 2
)

// SubscriptionPlan plan comercial (global). Solo informativo: ninguna operación lo hace cumplir.
type SubscriptionPlan struct {
	ID              int64
	PlanKodu        string
	PlanAdi         string
	Aciklama        string
	AylikUcret      decimal.Decimal
	YillikUcret     decimal.Decimal
	MaxKullanici    int
	Aktif           bool
	ModuleIDs       []int64 // PlanModule
	OlusturmaTarihi time.Time
}

// TenantSubscription suscripción de una firma a un plan.
type TenantSubscription struct {
	ID                 int64
	TenantID           int64
	SubscriptionPlanID int64
	BaslangicTarihi    time.Time
	BitisTarihi        time.Time
	OdemeTipi          OdemeTipi
	Durum              SubscriptionDurum
	OlusturmaTarihi    time.Time
}
