package inventory

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken limpia un código leído por escáner (lote, serie o etiqueta de paquete):
// recorta espacios y lo lleva a forma NFC para que "Ñ" compuesta y descompuesta
// identifiquen el mismo registro.
func NormalizeToken(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
