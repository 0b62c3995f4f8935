package analysis

import (
	"fmt"

	"github.com/mkerr/ergols"
)

// DescribeSymbol composes hover info for a user-defined symbol whose
// type resolved to typ. The declaration line is reported 1-indexed in
// the prose even though UserSymbol stores it 0-indexed.
func DescribeSymbol(sym *UserSymbol, typ Type) HoverInfo {
	return HoverInfo{
		Signature: fmt.Sprintf("val %s: %s", sym.Name, typ),
		Description: fmt.Sprintf("Declared on line %d with inferred type `%s`.\n\nDefinition: `%s`",
			sym.Line+1, typ, sym.Expression),
		Category: "Variable",
	}
}

// DescribeBuiltin composes hover info for a vocabulary catalog entry.
func DescribeBuiltin(item ergols.Item) HoverInfo {
	return HoverInfo{
		Signature:   item.Detail,
		Description: item.Doc,
		Category:    ergols.KindName(item.Kind),
	}
}

// HoverAt resolves the identifier at the given 0-indexed position and
// composes hover info for it. ok is false when nothing resolvable is
// at that position; this is an expected outcome, not an error.
func HoverAt(text string, line, character int) (HoverInfo, bool) {
	offset, okPos := OffsetAt(text, line, character)
	if !okPos {
		return HoverInfo{}, false
	}

	word, _, _ := WordAt(text, offset)
	if word == "" {
		return HoverInfo{}, false
	}

	symbols := ExtractSymbols(text)

	if sym, ok := symbols[word]; ok {
		typ, ok := InferType(sym.Expression, symbols)
		if !ok {
			// Unknown type means no annotation should be shown.
			return HoverInfo{}, false
		}

		return DescribeSymbol(sym, typ), true
	}

	if item, ok := ergols.LookupItem(word); ok {
		return DescribeBuiltin(item), true
	}

	return HoverInfo{}, false
}
