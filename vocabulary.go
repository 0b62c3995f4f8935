// Package ergols provides the ErgoScript vocabulary, token lexing, and
// contract declaration parsing shared by the analysis and template
// subsystems.
package ergols

// ItemKind categorizes a vocabulary entry.
type ItemKind int

// Item kind constants.
const (
	KindKeyword ItemKind = iota
	KindConstant
	KindFunction
	KindProperty
	KindMethod
	KindVariable
)

// Item is a single entry in a static catalog. Every surfaced item
// carries all of Detail, Doc and Insert so hover and completion can
// share the same data.
type Item struct {
	Label  string
	Kind   ItemKind
	Detail string // short signature
	Doc    string // prose documentation
	Insert string // insert text; may contain snippet placeholders
}

// Keywords are the ErgoScript keywords offered in general completion.
var Keywords = []Item{
	{Label: "val", Kind: KindKeyword, Detail: "val <name> = <expr>", Doc: "Declares an immutable value.", Insert: "val ${1:name} = $0"},
	{Label: "if", Kind: KindKeyword, Detail: "if (<cond>) <then> else <else>", Doc: "Conditional expression. Both branches are required.", Insert: "if (${1:condition}) ${2} else ${3}"},
	{Label: "else", Kind: KindKeyword, Detail: "else <expr>", Doc: "Alternative branch of an if expression.", Insert: "else "},
	{Label: "true", Kind: KindKeyword, Detail: "Boolean", Doc: "Boolean literal true.", Insert: "true"},
	{Label: "false", Kind: KindKeyword, Detail: "Boolean", Doc: "Boolean literal false.", Insert: "false"},
}

// Globals are the built-in context values available in every script.
var Globals = []Item{
	{Label: "HEIGHT", Kind: KindConstant, Detail: "HEIGHT: Int", Doc: "Height of the block currently being validated.", Insert: "HEIGHT"},
	{Label: "SELF", Kind: KindConstant, Detail: "SELF: Box", Doc: "The box whose script is currently executing.", Insert: "SELF"},
	{Label: "INPUTS", Kind: KindConstant, Detail: "INPUTS: Coll[Box]", Doc: "Boxes spent by the current transaction.", Insert: "INPUTS"},
	{Label: "OUTPUTS", Kind: KindConstant, Detail: "OUTPUTS: Coll[Box]", Doc: "Boxes created by the current transaction.", Insert: "OUTPUTS"},
	{Label: "CONTEXT", Kind: KindConstant, Detail: "CONTEXT: Context", Doc: "Full validation context: data inputs, headers, pre-header.", Insert: "CONTEXT"},
}

// GlobalTypes maps a global identifier to its type descriptor.
var GlobalTypes = map[string]string{
	"HEIGHT":  "Int",
	"SELF":    "Box",
	"INPUTS":  "Coll[Box]",
	"OUTPUTS": "Coll[Box]",
	"CONTEXT": "Context",
}

// BoxMembers are the properties of a Box, including the register
// accessors R4..R9.
var BoxMembers = []Item{
	{Label: "value", Kind: KindProperty, Detail: "value: Long", Doc: "Amount of nanoErgs held by the box.", Insert: "value"},
	{Label: "propositionBytes", Kind: KindProperty, Detail: "propositionBytes: Coll[Byte]", Doc: "Serialized bytes of the box guarding script.", Insert: "propositionBytes"},
	{Label: "bytes", Kind: KindProperty, Detail: "bytes: Coll[Byte]", Doc: "Serialized bytes of the whole box.", Insert: "bytes"},
	{Label: "bytesWithoutRef", Kind: KindProperty, Detail: "bytesWithoutRef: Coll[Byte]", Doc: "Serialized box bytes excluding the transaction reference.", Insert: "bytesWithoutRef"},
	{Label: "id", Kind: KindProperty, Detail: "id: Coll[Byte]", Doc: "Blake2b-256 identifier of the box.", Insert: "id"},
	{Label: "tokens", Kind: KindProperty, Detail: "tokens: Coll[(Coll[Byte], Long)]", Doc: "Secondary tokens held by the box as (tokenId, amount) pairs.", Insert: "tokens"},
	{Label: "creationInfo", Kind: KindProperty, Detail: "creationInfo: (Int, Coll[Byte])", Doc: "Creation height and transaction identifier of the box.", Insert: "creationInfo"},
	{Label: "R4", Kind: KindProperty, Detail: "R4[T]: Option[T]", Doc: "First non-mandatory register. Access as R4[T] with the expected type.", Insert: "R4[${1:Int}]"},
	{Label: "R5", Kind: KindProperty, Detail: "R5[T]: Option[T]", Doc: "Non-mandatory register R5.", Insert: "R5[${1:Int}]"},
	{Label: "R6", Kind: KindProperty, Detail: "R6[T]: Option[T]", Doc: "Non-mandatory register R6.", Insert: "R6[${1:Int}]"},
	{Label: "R7", Kind: KindProperty, Detail: "R7[T]: Option[T]", Doc: "Non-mandatory register R7.", Insert: "R7[${1:Int}]"},
	{Label: "R8", Kind: KindProperty, Detail: "R8[T]: Option[T]", Doc: "Non-mandatory register R8.", Insert: "R8[${1:Int}]"},
	{Label: "R9", Kind: KindProperty, Detail: "R9[T]: Option[T]", Doc: "Non-mandatory register R9.", Insert: "R9[${1:Int}]"},
}

// BoxMemberTypes maps a box property name to its type descriptor.
// Register accessors are not here; they carry their element type in
// the access expression itself.
var BoxMemberTypes = map[string]string{
	"value":            "Long",
	"propositionBytes": "Coll[Byte]",
	"bytes":            "Coll[Byte]",
	"bytesWithoutRef":  "Coll[Byte]",
	"id":               "Coll[Byte]",
	"tokens":           "Coll[(Coll[Byte], Long)]",
	"creationInfo":     "(Int, Coll[Byte])",
}

// OptionMethods are the methods offered after a register access.
var OptionMethods = []Item{
	{Label: "get", Kind: KindMethod, Detail: "get: T", Doc: "Value of the register. Fails at evaluation time when the register is empty.", Insert: "get"},
	{Label: "getOrElse", Kind: KindMethod, Detail: "getOrElse(default: T): T", Doc: "Value of the register, or the given default when the register is empty.", Insert: "getOrElse(${1:default})"},
	{Label: "isDefined", Kind: KindMethod, Detail: "isDefined: Boolean", Doc: "True when the register holds a value.", Insert: "isDefined"},
}

// CollMethods are the methods offered on collection receivers.
var CollMethods = []Item{
	{Label: "size", Kind: KindMethod, Detail: "size: Int", Doc: "Number of elements in the collection.", Insert: "size"},
	{Label: "isEmpty", Kind: KindMethod, Detail: "isEmpty: Boolean", Doc: "True when the collection has no elements.", Insert: "isEmpty"},
	{Label: "exists", Kind: KindMethod, Detail: "exists(p: T => Boolean): Boolean", Doc: "True when at least one element satisfies the predicate.", Insert: "exists { (${1:x}) => $0 }"},
	{Label: "forall", Kind: KindMethod, Detail: "forall(p: T => Boolean): Boolean", Doc: "True when every element satisfies the predicate.", Insert: "forall { (${1:x}) => $0 }"},
	{Label: "filter", Kind: KindMethod, Detail: "filter(p: T => Boolean): Coll[T]", Doc: "Elements satisfying the predicate, in order.", Insert: "filter { (${1:x}) => $0 }"},
	{Label: "map", Kind: KindMethod, Detail: "map(f: T => R): Coll[R]", Doc: "Collection of the results of applying f to each element.", Insert: "map { (${1:x}) => $0 }"},
	{Label: "flatMap", Kind: KindMethod, Detail: "flatMap(f: T => Coll[R]): Coll[R]", Doc: "Concatenation of the collections produced by f.", Insert: "flatMap { (${1:x}) => $0 }"},
	{Label: "fold", Kind: KindMethod, Detail: "fold(zero: R, op: (R, T) => R): R", Doc: "Left fold over the collection starting from zero.", Insert: "fold(${1:zero}, { (${2:acc}, ${3:x}) => $0 })"},
	{Label: "zip", Kind: KindMethod, Detail: "zip(other: Coll[U]): Coll[(T, U)]", Doc: "Pairs of elements from this collection and other.", Insert: "zip(${1:other})"},
}

// Functions are the global built-in functions.
var Functions = []Item{
	{Label: "sigmaProp", Kind: KindFunction, Detail: "sigmaProp(cond: Boolean): SigmaProp", Doc: "Lifts a boolean condition into a sigma proposition.", Insert: "sigmaProp(${1:condition})"},
	{Label: "proveDlog", Kind: KindFunction, Detail: "proveDlog(value: GroupElement): SigmaProp", Doc: "Proposition proving knowledge of the discrete logarithm of value.", Insert: "proveDlog(${1:value})"},
	{Label: "proveDHTuple", Kind: KindFunction, Detail: "proveDHTuple(g, h, u, v: GroupElement): SigmaProp", Doc: "Proposition proving knowledge of a Diffie-Hellman tuple.", Insert: "proveDHTuple(${1:g}, ${2:h}, ${3:u}, ${4:v})"},
	{Label: "atLeast", Kind: KindFunction, Detail: "atLeast(k: Int, props: Coll[SigmaProp]): SigmaProp", Doc: "Threshold proposition: at least k of the given propositions must hold.", Insert: "atLeast(${1:k}, ${2:props})"},
	{Label: "allOf", Kind: KindFunction, Detail: "allOf(conds: Coll[Boolean]): Boolean", Doc: "True when every condition in the collection holds.", Insert: "allOf(Coll(${1:conditions}))"},
	{Label: "anyOf", Kind: KindFunction, Detail: "anyOf(conds: Coll[Boolean]): Boolean", Doc: "True when at least one condition in the collection holds.", Insert: "anyOf(Coll(${1:conditions}))"},
	{Label: "blake2b256", Kind: KindFunction, Detail: "blake2b256(input: Coll[Byte]): Coll[Byte]", Doc: "Blake2b-256 hash of the input bytes.", Insert: "blake2b256(${1:input})"},
	{Label: "sha256", Kind: KindFunction, Detail: "sha256(input: Coll[Byte]): Coll[Byte]", Doc: "SHA-256 hash of the input bytes.", Insert: "sha256(${1:input})"},
	{Label: "fromBase16", Kind: KindFunction, Detail: "fromBase16(encoded: String): Coll[Byte]", Doc: "Decodes a base16 (hex) string literal into bytes.", Insert: "fromBase16(\"${1}\")"},
	{Label: "fromBase58", Kind: KindFunction, Detail: "fromBase58(encoded: String): Coll[Byte]", Doc: "Decodes a base58 string literal into bytes.", Insert: "fromBase58(\"${1}\")"},
	{Label: "fromBase64", Kind: KindFunction, Detail: "fromBase64(encoded: String): Coll[Byte]", Doc: "Decodes a base64 string literal into bytes.", Insert: "fromBase64(\"${1}\")"},
	{Label: "decodePoint", Kind: KindFunction, Detail: "decodePoint(bytes: Coll[Byte]): GroupElement", Doc: "Decodes a compressed elliptic curve point.", Insert: "decodePoint(${1:bytes})"},
	{Label: "min", Kind: KindFunction, Detail: "min(a: T, b: T): T", Doc: "Smaller of two numeric values.", Insert: "min(${1:a}, ${2:b})"},
	{Label: "max", Kind: KindFunction, Detail: "max(a: T, b: T): T", Doc: "Larger of two numeric values.", Insert: "max(${1:a}, ${2:b})"},
}

// FunctionReturns maps built-in function names to their return type
// descriptors. Functions whose return type depends on their arguments
// (min, max) are deliberately absent; calls to them infer as unknown.
var FunctionReturns = map[string]string{
	"sigmaProp":    "SigmaProp",
	"proveDlog":    "SigmaProp",
	"proveDHTuple": "SigmaProp",
	"atLeast":      "SigmaProp",
	"allOf":        "Boolean",
	"anyOf":        "Boolean",
	"blake2b256":   "Coll[Byte]",
	"sha256":       "Coll[Byte]",
	"fromBase16":   "Coll[Byte]",
	"fromBase58":   "Coll[Byte]",
	"fromBase64":   "Coll[Byte]",
	"decodePoint":  "GroupElement",
}

// LookupItem finds a catalog item by label across all catalogs.
// Used by hover for built-in identifiers.
func LookupItem(label string) (Item, bool) {
	for _, catalog := range [][]Item{Globals, Functions, Keywords, BoxMembers, OptionMethods, CollMethods} {
		for _, item := range catalog {
			if item.Label == label {
				return item, true
			}
		}
	}

	return Item{}, false
}

// KindName returns the human-readable category for an item kind, used
// as the hover category tag.
func KindName(k ItemKind) string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindConstant:
		return "Constant"
	case KindFunction:
		return "Function"
	case KindProperty:
		return "Property"
	case KindMethod:
		return "Method"
	case KindVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}
