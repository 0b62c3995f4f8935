package template

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/mkerr/ergols"
)

// Compile compiles a validated draft into a contract template.
//
// Each parameter, in declaration order, contributes one constant slot:
// its declared type tag is appended to ConstTypes and its serialized
// default to ConstValues, and that index becomes the parameter's
// ConstantIndex. The body is serialized with every occurrence of a
// parameter name replaced by a reference to its constant index, which
// is what allows later instantiation without recompilation.
func Compile(draft *Draft) (*ContractTemplate, error) {
	tmpl := &ContractTemplate{
		Name:        draft.Name,
		Description: draft.Description,
		ConstTypes:  make([]string, 0, len(draft.Params)),
		ConstValues: make([]string, 0, len(draft.Params)),
		Parameters:  make([]Parameter, 0, len(draft.Params)),
	}

	slots := make(map[string]int, len(draft.Params))

	for i, p := range draft.Params {
		if _, err := TypeCode(p.Type); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}

		value, err := EvalDefault(p.Type, p.Default)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}

		if err := validateRange(value); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}

		serialized, err := SerializeValue(value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}

		tmpl.ConstTypes = append(tmpl.ConstTypes, p.Type)
		tmpl.ConstValues = append(tmpl.ConstValues, hex.EncodeToString(serialized))
		tmpl.Parameters = append(tmpl.Parameters, Parameter{
			Name:          p.Name,
			Description:   p.Description,
			ConstantIndex: i,
		})
		slots[p.Name] = i
	}

	tree, err := serializeTree(draft, slots)
	if err != nil {
		return nil, err
	}

	tmpl.ExpressionTree = hex.EncodeToString(tree)

	sum := blake2b.Sum256(tree)
	tmpl.TemplateID = hex.EncodeToString(sum[:])

	return tmpl, nil
}

// serializeTree encodes the constant-segregated expression tree. The
// tree carries the constant type codes but not their values: values
// live only in the template's side table, so instantiation rewrites
// ConstValues and leaves the tree untouched.
func serializeTree(draft *Draft, slots map[string]int) ([]byte, error) {
	tokens, err := ergols.TokenizeScript(draft.Body)
	if err != nil {
		return nil, fmt.Errorf("compile body of %q: %w", draft.Name, err)
	}

	if draft.TreeVersion < 0 || draft.TreeVersion > 7 {
		return nil, fmt.Errorf("tree version %d out of range 0-7", draft.TreeVersion)
	}

	var w writer

	w.byte(headerSegregated | byte(draft.TreeVersion))
	w.uvarint(uint64(len(draft.Params)))

	for _, p := range draft.Params {
		code, err := TypeCode(p.Type)
		if err != nil {
			return nil, err
		}

		w.byte(code)
	}

	for _, tok := range tokens {
		if tok.Type == ergols.TokenIdent {
			if idx, ok := slots[tok.Value]; ok {
				w.byte(tagPlaceholder)
				w.uvarint(uint64(idx))

				continue
			}
		}

		w.byte(tagToken)
		w.uvarint(uint64(len(tok.Value)))
		w.bytes([]byte(tok.Value))
	}

	return w.buf.Bytes(), nil
}

// Instantiate overwrites the constant slots of the named parameters
// with new values, in place. The expression tree and the type tags are
// unchanged; only the targeted ConstValues entries are rewritten, so
// no recompilation happens.
func Instantiate(tmpl *ContractTemplate, values map[string]Value) error {
	for name, value := range values {
		param, ok := findParameter(tmpl, name)
		if !ok {
			return fmt.Errorf("template %q has no parameter %q", tmpl.Name, name)
		}

		declared := tmpl.ConstTypes[param.ConstantIndex]
		if value.Type != declared {
			return fmt.Errorf("parameter %q: value of type %s does not match declared type %s",
				name, value.Type, declared)
		}

		serialized, err := SerializeValue(value)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}

		tmpl.ConstValues[param.ConstantIndex] = hex.EncodeToString(serialized)
	}

	return nil
}

func findParameter(tmpl *ContractTemplate, name string) (Parameter, bool) {
	for _, p := range tmpl.Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return Parameter{}, false
}

// Encode renders the template as canonical indented JSON.
func (t *ContractTemplate) Encode() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ParseTemplate loads a persisted template from its JSON encoding.
func ParseTemplate(data []byte) (*ContractTemplate, error) {
	var tmpl ContractTemplate

	err := json.Unmarshal(data, &tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template JSON: %w", err)
	}

	return &tmpl, nil
}
