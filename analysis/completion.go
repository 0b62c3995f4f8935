package analysis

import (
	"strings"

	"github.com/mkerr/ergols"
)

// CompletionResult is the outcome of a completion request.
type CompletionResult struct {
	Items []ergols.Item

	// IsIncomplete is false whenever the full static catalog for the
	// context was returned; no pagination is modeled.
	IsIncomplete bool
}

// Complete classifies the position and returns the candidate catalog
// for it. It never fails: empty or out-of-range input yields the
// general catalog.
func Complete(text string, line, character int, trigger string) CompletionResult {
	ctx := ClassifyContext(text, line, character, trigger)

	var items []ergols.Item

	switch ctx.Kind {
	case ContextMemberAccess:
		items = memberItems(text, ctx.Receiver)
	case ContextRegisterGetter:
		items = ergols.OptionMethods
	case ContextCallArgument:
		items = ergols.Functions
	default:
		items = generalItems()
	}

	if ctx.Prefix != "" {
		items = filterByPrefix(items, ctx.Prefix)
	}

	return CompletionResult{Items: items, IsIncomplete: false}
}

// generalItems is the union of the keyword, global constant, and
// function catalogs.
func generalItems() []ergols.Item {
	items := make([]ergols.Item, 0, len(ergols.Keywords)+len(ergols.Globals)+len(ergols.Functions))
	items = append(items, ergols.Keywords...)
	items = append(items, ergols.Globals...)
	items = append(items, ergols.Functions...)

	return items
}

// memberItems selects the member catalog for a dotted access on the
// given receiver. An unresolvable receiver still gets the box-member
// catalog as a best guess rather than falling back to general.
func memberItems(text, receiver string) []ergols.Item {
	symbols := ExtractSymbols(text)

	rt, ok := InferType(receiver, symbols)

	switch {
	case !ok, rt == TypeBox:
		return ergols.BoxMembers

	case rt == TypeCollBox:
		// Box collections are commonly indexed straight into a member
		// access, so offer both catalogs.
		items := make([]ergols.Item, 0, len(ergols.CollMethods)+len(ergols.BoxMembers))
		items = append(items, ergols.CollMethods...)
		items = append(items, ergols.BoxMembers...)

		return items

	case rt.IsColl():
		return ergols.CollMethods

	case rt.IsOption():
		return ergols.OptionMethods

	default:
		return ergols.BoxMembers
	}
}

// filterByPrefix keeps items whose label starts with prefix,
// case-insensitively.
func filterByPrefix(items []ergols.Item, prefix string) []ergols.Item {
	prefix = strings.ToLower(prefix)
	filtered := make([]ergols.Item, 0, len(items))

	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), prefix) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
