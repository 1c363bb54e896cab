// Package namestore persists extracted name records per chapter and
// exposes previously found names as an exclusion set.
package namestore

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases a name and strips combining marks so diacritic
// variants collide: "Vāsudeva", "vasudeva" and "VĀSUDEVA" all normalize
// to "vasudeva". Used as the dedup key at store-write time.
func Normalize(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
