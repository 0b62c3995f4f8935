package analysis

import (
	"regexp"
	"strings"

	"github.com/mkerr/ergols"
)

// InferType infers the semantic type of an expression against a symbol
// environment, best-effort. symbols may be nil. The second result is
// false when no rule matched; this is an expected outcome (the type is
// unknown), not an error.
//
// Resolution proceeds through ordered rule classes; the first match
// wins. Recursive symbol references are bounded by a visited set, so a
// cyclic definition resolves to unknown rather than looping.
func InferType(expression string, symbols map[string]*UserSymbol) (Type, bool) {
	inf := &inferencer{
		symbols: symbols,
		visited: make(map[string]bool),
	}

	return inf.infer(strings.TrimSpace(expression))
}

// inferencer holds per-call inference state. A fresh one is built for
// every top-level InferType call, so the engine stays safely callable
// from concurrent requests.
type inferencer struct {
	symbols map[string]*UserSymbol
	visited map[string]bool
}

// Literal and access patterns, ordered most-specific first where they
// overlap.
var (
	intLiteralPattern  = regexp.MustCompile(`^[0-9]+$`)
	longLiteralPattern = regexp.MustCompile(`^[0-9]+[Ll]$`)
	identPattern       = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	registerGetPattern       = regexp.MustCompile(`^(.+)\.R[0-9]\[(.+)\]\.get$`)
	registerGetOrElsePattern = regexp.MustCompile(`^(.+)\.R[0-9]\[(.+)\]\.getOrElse\((.*)\)$`)
	registerIsDefinedPattern = regexp.MustCompile(`^(.+)\.R[0-9]\[(.+)\]\.isDefined$`)
	registerOptionPattern    = regexp.MustCompile(`^(.+)\.R[0-9]\[(.+)\]$`)

	callPattern = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\((.*)\)$`)
)

func (inf *inferencer) infer(expr string) (Type, bool) {
	if expr == "" {
		return "", false
	}

	// Rule 1: literals.
	switch {
	case intLiteralPattern.MatchString(expr):
		return TypeInt, true
	case longLiteralPattern.MatchString(expr):
		return TypeLong, true
	case expr == "true" || expr == "false":
		return TypeBoolean, true
	}

	// Rule 2: global identifiers.
	if t, ok := ergols.GlobalTypes[expr]; ok {
		return Type(t), true
	}

	// Rules 3-4: register access. The declared type parameter is taken
	// verbatim from the bracket text, not re-inferred.
	if m := registerGetPattern.FindStringSubmatch(expr); m != nil {
		return Type(m[2]), true
	}

	if m := registerGetOrElsePattern.FindStringSubmatch(expr); m != nil {
		return Type(m[2]), true
	}

	if registerIsDefinedPattern.MatchString(expr) {
		return TypeBoolean, true
	}

	if m := registerOptionPattern.FindStringSubmatch(expr); m != nil {
		return OptionOf(Type(m[2])), true
	}

	// Rule 5: built-in function calls. Unknown function names fall
	// through to the remaining rules.
	if m := callPattern.FindStringSubmatch(expr); m != nil && balancedCall(expr, len(m[1])) {
		name := m[1]

		if t, ok := ergols.FunctionReturns[name]; ok {
			return Type(t), true
		}

		// Hash-like names hash to bytes even when uncataloged.
		if strings.Contains(strings.ToLower(name), "hash") {
			return TypeCollByte, true
		}
	}

	// Rule 6: a comparison or boolean combinator at the outermost
	// level makes the whole expression Boolean, independent of the
	// operand types.
	if hasTopLevelBooleanOp(expr) {
		return TypeBoolean, true
	}

	// Rules 3 and 7: member access chains, resolved left-to-right. The
	// receiver is typed recursively; each method's output becomes the
	// receiver type for the next link.
	if recv, tail, ok := splitLastTopLevelDot(expr); ok {
		if t, ok := inf.memberType(recv, tail); ok {
			return t, true
		}
	}

	// Indexing into a collection yields its element type, e.g.
	// INPUTS(0) is a Box.
	if recv, ok := indexReceiver(expr); ok {
		if rt, ok := inf.infer(recv); ok && rt.IsColl() {
			return rt.Elem(), true
		}
	}

	// Rule 8: bare identifier bound by the symbol environment.
	if identPattern.MatchString(expr) {
		if sym, ok := inf.symbols[expr]; ok && !inf.visited[expr] {
			inf.visited[expr] = true

			return inf.infer(strings.TrimSpace(sym.Expression))
		}
	}

	// Rule 9: no match.
	return "", false
}

// memberType resolves a dotted member on a typed receiver.
func (inf *inferencer) memberType(recv, tail string) (Type, bool) {
	method := leadingIdent(tail)
	if method == "" {
		return "", false
	}

	rt, ok := inf.infer(strings.TrimSpace(recv))
	if !ok {
		return "", false
	}

	switch {
	case rt == TypeBox:
		if t, ok := ergols.BoxMemberTypes[method]; ok {
			return Type(t), true
		}

	case rt.IsColl():
		return collMethodType(rt, method)

	case rt.IsOption():
		switch method {
		case "get", "getOrElse":
			return rt.Elem(), true
		case "isDefined":
			return TypeBoolean, true
		}
	}

	return "", false
}

// collMethodType applies the collection method table. map, flatMap and
// fold intentionally lose the element type: without a real type
// checker the lambda's result type is unknowable, so the unresolved
// sentinel is returned instead of guessing.
func collMethodType(recv Type, method string) (Type, bool) {
	switch method {
	case "size":
		return TypeInt, true
	case "isEmpty", "exists", "forall":
		return TypeBoolean, true
	case "filter":
		return recv, true
	case "map", "flatMap":
		return CollOf(TypeUnresolved), true
	case "fold":
		return TypeUnresolved, true
	case "zip":
		return Type("Coll[(" + recv.Elem() + ", " + TypeUnresolved + ")]"), true
	default:
		return "", false
	}
}

// balancedCall reports whether the parenthesis opening at index open
// closes at the end of expr. Rejects shapes like "f(a) && g(b)" that
// the call pattern alone would accept.
func balancedCall(expr string, open int) bool {
	depth := 0

	for i := open; i < len(expr); i++ {
		switch expr[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i == len(expr)-1
			}
		}
	}

	return false
}

// hasTopLevelBooleanOp scans for a comparison or boolean combinator
// outside any bracket or string.
func hasTopLevelBooleanOp(expr string) bool {
	depth := 0
	inString := false

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		if inString {
			if c == '"' && (i == 0 || expr[i-1] != '\\') {
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}

		if depth != 0 {
			continue
		}

		if i+1 < len(expr) {
			switch expr[i : i+2] {
			case "&&", "||", "==", "!=", ">=", "<=":
				return true
			case "=>":
				i++

				continue
			}
		}

		if c == '<' || (c == '>' && (i == 0 || expr[i-1] != '=')) {
			return true
		}
	}

	return false
}

// splitLastTopLevelDot splits expr at the last dot outside any bracket
// or string, scanning from the right.
func splitLastTopLevelDot(expr string) (recv, tail string, ok bool) {
	depth := 0

	for i := len(expr) - 1; i >= 0; i-- {
		switch expr[i] {
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			depth--
		case '.':
			if depth == 0 && i > 0 && i < len(expr)-1 {
				return expr[:i], expr[i+1:], true
			}
		}
	}

	return "", "", false
}

// indexReceiver returns the receiver of a trailing application, e.g.
// "INPUTS" for "INPUTS(0)".
func indexReceiver(expr string) (string, bool) {
	if !strings.HasSuffix(expr, ")") {
		return "", false
	}

	depth := 0

	for i := len(expr) - 1; i >= 0; i-- {
		switch expr[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				if i == 0 {
					return "", false
				}

				return expr[:i], true
			}
		}
	}

	return "", false
}

// leadingIdent returns the identifier prefix of s, if any.
func leadingIdent(s string) string {
	end := 0

	for end < len(s) {
		c := s[end]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || end > 0 && c >= '0' && c <= '9' {
			end++

			continue
		}

		break
	}

	return s[:end]
}
