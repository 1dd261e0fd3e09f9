package viewmodel

import (
	"fmt"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/client"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// Pantallas fuera del catálogo de módulos.
const (
	ScreenHome     = "HOME"
	ScreenSettings = "SETTINGS"
)

// MenuItem entrada del menú lateral. Screen es el código de módulo o una pantalla fija.
type MenuItem struct {
	Title  string
	Screen string
}

var moduleMenu = []struct {
	code  entity.ModuleCode
	title string
}{
	{entity.ModuleCari, "Cari Yönetimi"},
	{entity.ModuleStok, "Stok Yönetimi"},
	{entity.ModuleFatura, "Faturalar"},
	{entity.ModulePOS, "POS Sistemi"},
	{entity.ModuleCRM, "CRM"},
	{entity.ModuleRaporlama, "Raporlar"},
}

// Main ventana principal: cabecera de la sesión, menú según módulos y rol, y navegación.
type Main struct {
	state
	session  *client.Session
	onLogout func()

	firmaAdi     string
	kullaniciAdi string
	demoBilgisi  string
	menu         []MenuItem
	current      string
}

// NewMain construye la ventana a partir de la sesión abierta. now permite fijar el reloj en tests.
func NewMain(session *client.Session, now func() time.Time, onLogout func()) *Main {
	if now == nil {
		now = time.Now
	}
	m := &Main{session: session, onLogout: onLogout, current: ScreenHome}
	if u, ok := session.User(); ok {
		m.firmaAdi = u.FirmaAdi
		m.kullaniciAdi = u.AdSoyad
	}
	if days, ok := session.DemoDaysLeft(now()); ok {
		m.demoBilgisi = fmt.Sprintf("Demo - %d gün kaldı", days)
	}
	m.menu = buildMenu(session.Modules(), session.Role())
	return m
}

func buildMenu(modules entity.ModuleSet, role entity.Role) []MenuItem {
	menu := []MenuItem{{Title: "Ana Sayfa", Screen: ScreenHome}}
	for _, it := range moduleMenu {
		if modules.Has(it.code) {
			menu = append(menu, MenuItem{Title: it.title, Screen: string(it.code)})
		}
	}
	if role.IsAdmin() {
		menu = append(menu, MenuItem{Title: "Ayarlar", Screen: ScreenSettings})
	}
	return menu
}

func (m *Main) FirmaAdi() string { return m.firmaAdi }
func (m *Main) KullaniciAdi() string { return m.kullaniciAdi }

// DemoBilgisi texto del banner de demo, vacío si la firma no está en demo.
func (m *Main) DemoBilgisi() string { return m.demoBilgisi }

// Menu entradas visibles para la sesión.
func (m *Main) Menu() []MenuItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]MenuItem(nil), m.menu...)
}

// Current pantalla activa.
func (m *Main) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Navigate cambia de pantalla. Solo acepta pantallas presentes en el menú.
func (m *Main) Navigate(screen string) bool {
	m.mu.Lock()
	ok := false
	for _, it := range m.menu {
		if it.Screen == screen {
			ok = true
			m.current = screen
			break
		}
	}
	m.mu.Unlock()
	if ok {
		m.changed(PropCurrent)
	}
	return ok
}

// Logout cierra la sesión y avisa a la vista.
func (m *Main) Logout() {
	m.session.Clear()
	m.mu.Lock()
	m.menu = nil
	m.current = ""
	m.mu.Unlock()
	m.changed(PropMenu, PropCurrent, PropLoggedIn)
	if m.onLogout != nil {
		m.onLogout()
	}
}
