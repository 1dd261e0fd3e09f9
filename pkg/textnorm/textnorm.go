// Package textnorm normaliza texto de entrada (búsquedas, emails) y de salida (PDF).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email normaliza un email para comparación: sin espacios y en minúsculas.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LikePattern escapa los comodines de LIKE/ILIKE y envuelve el término en %...%.
// Devuelve "" si el término queda vacío.
func LikePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// dotless convierte las letras turcas sin descomposición canónica.
var dotless = runes.Map(func(r rune) rune {
	switch r {
	case 'ı':
		return 'i'
	}
	return r
})

// PDFSafe pliega diacríticos a ASCII (ş→s, ğ→g, İ→I, ı→i, ü→u, ...).
// Las fuentes estándar del PDF solo cubren Latin-1 y pierden los caracteres turcos.
func PDFSafe(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), dotless, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
