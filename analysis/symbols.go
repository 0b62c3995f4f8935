package analysis

import (
	"regexp"
	"strings"
)

// valDeclPattern matches a value declaration anywhere on a line. The
// right-hand side runs to the next semicolon or end of line.
var valDeclPattern = regexp.MustCompile(`\bval\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*([^;]+)`)

// ExtractSymbols scans document text for value declarations and
// returns a mapping from name to symbol. Declarations inside nested
// blocks are included; no scoping is modeled, so a redeclaration
// overwrites the prior entry (last occurrence in document order wins).
//
// The result is recomputed fresh from the given text; nothing is
// cached across calls.
func ExtractSymbols(text string) map[string]*UserSymbol {
	symbols := make(map[string]*UserSymbol)

	for lineNumber, line := range strings.Split(text, "\n") {
		// Strip line comments so commented-out declarations are ignored.
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}

		for _, m := range valDeclPattern.FindAllStringSubmatch(line, -1) {
			name := m[1]
			expr := strings.TrimSpace(m[2])

			if expr == "" {
				continue
			}

			symbols[name] = &UserSymbol{
				Name:       name,
				Expression: expr,
				Line:       lineNumber,
			}
		}
	}

	return symbols
}
