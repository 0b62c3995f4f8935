package ergols

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ContractDecl is the parsed header of an annotated contract
// declaration: @contract def <name>(<params>).
type ContractDecl struct {
	Pos lexer.Position

	Name   string       `parser:"'@' 'contract' 'def' @Ident"`
	Params []*ParamDecl `parser:"'(' (@@ (',' @@)*)? ')'"`
}

// ParamDecl is a single parameter in a contract declaration. Type and
// Default are optional at the grammar level; the template extractor
// rejects declarations missing either.
type ParamDecl struct {
	Pos lexer.Position

	Name    string       `parser:"@Ident"`
	Type    *TypeRef     `parser:"(':' @@)?"`
	Default *DefaultExpr `parser:"('=' @@)?"`
}

// TypeRef is a possibly-parameterized type reference such as Int or
// Coll[SigmaProp].
type TypeRef struct {
	Name string   `parser:"@Ident"`
	Elem *TypeRef `parser:"('[' @@ ']')?"`
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}

	if t.Elem != nil {
		return t.Name + "[" + t.Elem.String() + "]"
	}

	return t.Name
}

// DefaultExpr is the restricted expression grammar accepted for
// parameter defaults: numeric literals with + - * / arithmetic,
// booleans, strings, and calls such as fromBase16("...") or
// Coll(sigmaProp(true)).
type DefaultExpr struct {
	First *DefaultTerm     `parser:"@@"`
	Rest  []*DefaultOpTerm `parser:"@@*"`
}

// DefaultOpTerm is an arithmetic continuation of a default expression.
type DefaultOpTerm struct {
	Op   string       `parser:"@('+' | '-' | '*' | '/' | '%')"`
	Term *DefaultTerm `parser:"@@"`
}

// DefaultTerm is a single operand in a default expression.
type DefaultTerm struct {
	Number *string      `parser:"@Number"`
	Bool   *string      `parser:"| @('true' | 'false')"`
	Str    *string      `parser:"| @String"`
	Call   *DefaultCall `parser:"| @@"`
}

// DefaultCall is a call form inside a default expression.
type DefaultCall struct {
	Func string         `parser:"@Ident"`
	Args []*DefaultExpr `parser:"'(' (@@ (',' @@)*)? ')'"`
}

// String reconstructs the canonical source text of the expression.
func (d *DefaultExpr) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(d.First.String())

	for _, r := range d.Rest {
		b.WriteString(" " + r.Op + " " + r.Term.String())
	}

	return b.String()
}

func (t *DefaultTerm) String() string {
	switch {
	case t.Number != nil:
		return *t.Number
	case t.Bool != nil:
		return *t.Bool
	case t.Str != nil:
		return `"` + *t.Str + `"`
	case t.Call != nil:
		args := make([]string, len(t.Call.Args))
		for i, a := range t.Call.Args {
			args[i] = a.String()
		}

		return t.Call.Func + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}

var contractParser = participle.MustBuild[ContractDecl](
	participle.Lexer(ScriptLexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment"),
	participle.Unquote("String"),
)

// ParseContractDecl parses an annotated contract declaration header.
// src must span from the '@' of the annotation through the closing
// parenthesis of the parameter list. This function is thread-safe.
func ParseContractDecl(src string) (*ContractDecl, error) {
	return contractParser.ParseString("", src)
}
