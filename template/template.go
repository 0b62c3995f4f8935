// Package template extracts parameterized contract templates from
// annotated ErgoScript sources and compiles them into a portable,
// constant-segregated JSON format that can be re-instantiated with new
// parameter values without recompilation.
package template

import (
	"errors"
	"fmt"

	"github.com/mkerr/ergols"
)

// ErrorKind identifies a template validation failure.
type ErrorKind string

// Validation failure kinds. Extraction is all-or-nothing: any of these
// aborts the contract with no partial template emitted.
const (
	// MissingParamDoc: a declared parameter has no matching @param tag.
	MissingParamDoc ErrorKind = "MissingParamDoc"

	// MissingDefault: a declared parameter has no default literal.
	MissingDefault ErrorKind = "MissingDefault"

	// MissingTypeAnnotation: a declared parameter has no declared type.
	MissingTypeAnnotation ErrorKind = "MissingTypeAnnotation"

	// MalformedDocstring: the contract is not preceded by a block-style
	// docstring comment.
	MalformedDocstring ErrorKind = "MalformedDocstring"
)

// Error is a template validation error carrying the offending
// parameter and source line context.
type Error struct {
	Kind  ErrorKind
	Param string // offending parameter name, empty when not applicable
	Line  int    // 1-based source line, 0 when unknown
}

func (e *Error) Error() string {
	msg := string(e.Kind)

	switch e.Kind {
	case MissingParamDoc:
		msg = fmt.Sprintf("parameter %q has no @param documentation", e.Param)
	case MissingDefault:
		msg = fmt.Sprintf("parameter %q has no default value", e.Param)
	case MissingTypeAnnotation:
		msg = fmt.Sprintf("parameter %q has no type annotation", e.Param)
	case MalformedDocstring:
		msg = "contract declaration must be preceded by a /** ... */ docstring"
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}

	return msg
}

// ErrNoContract is returned when the source contains no @contract
// declaration.
var ErrNoContract = errors.New("no @contract declaration found")

// DraftParam is one validated parameter of a contract draft.
type DraftParam struct {
	Name        string
	Type        string // declared type tag, e.g. "Int", "Coll[SigmaProp]"
	Default     *ergols.DefaultExpr
	Description string
	Line        int // 1-based declaration line
}

// Draft is the validated output of extraction, ready for compilation.
type Draft struct {
	Name        string
	Description string
	Params      []DraftParam // declaration order
	Body        string       // contract body between the outer braces

	// TreeVersion is the header version (0-7) stamped into the
	// expression tree. Zero unless overridden by configuration.
	TreeVersion int
}

// Parameter is a named, substitutable slot in a compiled template.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// ConstantIndex is the index of this parameter's slot in
	// ConstTypes and ConstValues.
	ConstantIndex int `json:"constantIndex"`
}

// ContractTemplate is the persisted, interchangeable form of a
// compiled contract. ConstValues entries can be overwritten in place
// to instantiate the template with new parameter values; the
// expression tree and the type tags never change after compilation.
type ContractTemplate struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ConstTypes  []string    `json:"constTypes"`
	ConstValues []string    `json:"constValues"` // hex-encoded serialized literals
	Parameters  []Parameter `json:"parameters"`

	// ExpressionTree is the hex-encoded, constant-segregated body
	// encoding described in serialize.go.
	ExpressionTree string `json:"expressionTree"`

	// TemplateID is the Blake2b-256 hash of the expression tree bytes.
	TemplateID string `json:"templateId"`
}
