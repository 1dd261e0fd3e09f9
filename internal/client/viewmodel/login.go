package viewmodel

import (
	"context"
	"net/http"
	"strings"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/client"
)

// Authenticator abre la sesión contra la API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
}

const (
	msgLoginRequired = "E-posta ve şifre gereklidir."
	msgLoginFailed   = "E-posta veya şifre hatalı."
	msgLoginError    = "Sunucuya bağlanılamadı."
)

// Login pantalla de acceso.
type Login struct {
	state
	api Authenticator

	email    string
	password string
}

func NewLogin(api Authenticator) *Login {
	return &Login{api: api}
}

func (l *Login) SetEmail(v string) {
	l.mu.Lock()
	l.email = v
	l.mu.Unlock()
}

func (l *Login) SetPassword(v string) {
	l.mu.Lock()
	l.password = v
	l.mu.Unlock()
}

// CanLogin habilita el botón con ambos campos completos y sin una petición en curso.
func (l *Login) CanLogin() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return !l.loading && strings.TrimSpace(l.email) != "" && l.password != ""
}

// Submit intenta el login. Devuelve la respuesta si la sesión quedó abierta.
func (l *Login) Submit(ctx context.Context) (*dto.LoginResponse, bool) {
	l.mu.RLock()
	email, password := strings.TrimSpace(l.email), l.password
	l.mu.RUnlock()

	if email == "" || password == "" {
		l.fail(msgLoginRequired)
		return nil, false
	}

	l.begin()
	defer l.end()

	resp, err := l.api.Login(ctx, email, password)
	switch {
	case err == nil:
		l.mu.Lock()
		l.password = ""
		l.mu.Unlock()
		l.changed(PropLoggedIn)
		return resp, true
	case client.IsStatus(err, http.StatusUnauthorized):
		l.fail(msgLoginFailed)
	default:
		l.fail(msgLoginError)
	}
	return nil, false
}
