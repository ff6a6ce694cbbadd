package codegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// exportName turns a schema name such as "max_hp" or "position" into an
// exported Go identifier ("MaxHp", "Position"). Names already in PascalCase
// are kept as they are.
func exportName(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(caser.String(p))
	}
	return b.String()
}
