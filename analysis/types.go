// Package analysis provides heuristic semantic analysis for ErgoScript
// documents: symbol extraction, best-effort type inference, completion
// context classification, and hover composition.
//
// The engine is deliberately not a type checker. It applies ordered
// pattern rules over raw expression text and degrades to "unknown"
// rather than failing, since it runs interactively as a user types.
package analysis

import "strings"

// Type is a semantic type descriptor: a primitive name (Int, Long,
// Boolean, Box, SigmaProp), a parametric form (Coll[T], Option[T],
// tuple (T1, T2)), or the unresolved-generic sentinel TypeUnresolved.
//
// The empty Type is never a valid descriptor; absence of a type is
// reported separately ("unknown", not "untyped").
type Type string

// Well-known type descriptors.
const (
	TypeInt       Type = "Int"
	TypeLong      Type = "Long"
	TypeBoolean   Type = "Boolean"
	TypeBox       Type = "Box"
	TypeSigmaProp Type = "SigmaProp"
	TypeCollBox   Type = "Coll[Box]"
	TypeCollByte  Type = "Coll[Byte]"

	// TypeUnresolved is the explicit unresolved-generic marker, used
	// when a collection transform's element type cannot be determined
	// from local context.
	TypeUnresolved Type = "T"
)

// CollOf returns the collection type with the given element type.
func CollOf(elem Type) Type {
	return "Coll[" + elem + "]"
}

// OptionOf returns the option type with the given element type.
func OptionOf(elem Type) Type {
	return "Option[" + elem + "]"
}

// IsColl reports whether t is a collection type.
func (t Type) IsColl() bool {
	return strings.HasPrefix(string(t), "Coll[") && strings.HasSuffix(string(t), "]")
}

// IsOption reports whether t is an option type.
func (t Type) IsOption() bool {
	return strings.HasPrefix(string(t), "Option[") && strings.HasSuffix(string(t), "]")
}

// Elem returns the element type of a Coll[...] or Option[...]
// descriptor, or the empty string for any other type.
func (t Type) Elem() Type {
	s := string(t)

	switch {
	case t.IsColl():
		return Type(s[len("Coll[") : len(s)-1])
	case t.IsOption():
		return Type(s[len("Option[") : len(s)-1])
	default:
		return ""
	}
}

// UserSymbol is a user-declared value extracted from document text.
type UserSymbol struct {
	// Name is the declared identifier.
	Name string

	// Expression is the raw right-hand side text of the declaration.
	Expression string

	// Line is the 0-indexed line the declaration begins on.
	Line int
}

// HoverInfo is a structured hover payload.
type HoverInfo struct {
	// Signature is a short signature line, e.g. "val total: Long".
	// May be empty.
	Signature string

	// Description is the prose body.
	Description string

	// Category is the tag shown alongside the hover, e.g. "Variable".
	// May be empty.
	Category string
}

// ContextKind enumerates completion contexts.
type ContextKind int

// Completion context constants.
const (
	// ContextGeneral is the fallback context: keywords, globals and
	// functions are offered.
	ContextGeneral ContextKind = iota

	// ContextMemberAccess is a dotted access on some receiver.
	ContextMemberAccess

	// ContextRegisterGetter is a dotted access on a register access
	// expression, offering the option methods.
	ContextRegisterGetter

	// ContextCallArgument is a position inside a call's argument list.
	ContextCallArgument
)

// Context is the classification of a completion position.
type Context struct {
	Kind ContextKind

	// Receiver is the expression text before the dot for member-access
	// and register-getter contexts.
	Receiver string

	// Function is the head identifier of the enclosing call for
	// call-argument contexts.
	Function string

	// Prefix is the in-progress partial identifier at the cursor, used
	// for filtering candidates.
	Prefix string
}
