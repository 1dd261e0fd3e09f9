package usecase

import (
	"strings"

	"github.com/jhoicas/erpcrm-api/pkg/textnorm"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// searchPattern devuelve el patrón ILIKE del término, o "" si la búsqueda está vacía.
func searchPattern(q string) string { return textnorm.LikePattern(q) }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
