// Package password abstrae el hash de contraseñas detrás de Hasher para poder
// convivir con cuentas importadas (SHA-256 sin sal) mientras se migra a bcrypt.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch la contraseña no coincide con el hash almacenado.
var ErrMismatch = errors.New("password: no coincide")

// Hasher calcula y verifica hashes de contraseñas.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

// Bcrypt hasher con sal por usuario y coste configurable.
type Bcrypt struct {
	Cost int
}

// NewBcrypt construye el hasher con bcrypt.DefaultCost si cost <= 0.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{Cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(hash, plain string) error {
	if !strings.HasPrefix(hash, "$2") {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}

// LegacySHA256 reproduce el formato heredado: base64(SHA-256(plain)).
// Determinista y sin sal; solo para verificar cuentas importadas.
type LegacySHA256 struct{}

func (LegacySHA256) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (l LegacySHA256) Verify(hash, plain string) error {
	want, _ := l.Hash(plain)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(want)) != 1 {
		return ErrMismatch
	}
	return nil
}

// Chain hashea con el primer Hasher y verifica contra todos en orden.
type Chain []Hasher

func (c Chain) Hash(plain string) (string, error) {
	if len(c) == 0 {
		return "", errors.New("password: cadena vacía")
	}
	return c[0].Hash(plain)
}

func (c Chain) Verify(hash, plain string) error {
	for _, h := range c {
		if err := h.Verify(hash, plain); err == nil {
			return nil
		}
	}
	return ErrMismatch
}

// FromName devuelve el hasher configurado. "legacy" hashea en SHA-256 para
// instalaciones que aún comparten la base con el sistema anterior.
func FromName(name string) Hasher {
	if name == "legacy" {
		return Chain{LegacySHA256{}, NewBcrypt(0)}
	}
	return Chain{NewBcrypt(0), LegacySHA256{}}
}
