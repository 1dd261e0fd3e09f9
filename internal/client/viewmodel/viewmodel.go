// Package viewmodel estado y comandos de las pantallas del cliente de escritorio,
// independiente del toolkit gráfico. Las vistas leen el estado con los getters y
// se suscriben a los cambios con OnChange.
package viewmodel

import "sync"

// Confirmer pregunta al usuario y devuelve true si acepta. Un Confirmer nil equivale a "no".
type Confirmer func(title, message string) bool

// Notifier recibe el nombre de la propiedad que cambió.
type Notifier func(property string)

// Propiedades notificadas.
const (
	PropItems    = "Items"
	PropSelected = "Selected"
	PropLoading  = "IsLoading"
	PropError    = "ErrorMessage"
	PropInfo     = "InfoMessage"
	PropStats    = "Stats"
	PropMenu     = "Menu"
	PropCurrent  = "Current"
	PropLoggedIn = "LoggedIn"
	PropSearch   = "SearchText"
)

// state indicadores comunes: carga en curso, error y mensaje informativo.
type state struct {
	mu      sync.RWMutex
	loading bool
	errMsg  string
	info    string
	notify  Notifier
}

// OnChange registra el callback de cambios (reemplaza al anterior).
func (s *state) OnChange(fn Notifier) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

func (s *state) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *state) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *state) InfoMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *state) changed(props ...string) {
	s.mu.RLock()
	fn := s.notify
	s.mu.RUnlock()
	if fn == nil {
		return
	}
	for _, p := range props {
		fn(p)
	}
}

// begin marca el inicio de una operación: carga activa y mensajes limpios.
func (s *state) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.info = ""
	s.mu.Unlock()
	s.changed(PropLoading, PropError, PropInfo)
}

func (s *state) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.changed(PropLoading)
}

func (s *state) fail(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.changed(PropError)
}

func (s *state) inform(msg string) {
	s.mu.Lock()
	s.info = msg
	s.mu.Unlock()
	s.changed(PropInfo)
}
