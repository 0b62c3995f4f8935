package template

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/mkerr/ergols"
)

// Value is a typed constant produced from a default literal or
// supplied at instantiation time.
type Value struct {
	Type  string  // type tag, e.g. "Int", "Coll[Byte]", "Coll[SigmaProp]"
	Num   int64   // Int / Long
	Flag  bool    // Boolean / SigmaProp (trivial proposition)
	Bytes []byte  // Coll[Byte] / GroupElement
	Nums  []int64 // Coll[Int] / Coll[Long]
	Props []bool  // Coll[SigmaProp] of trivial propositions
}

// Convenience constructors for instantiation callers.

// IntValue returns an Int constant.
func IntValue(n int32) Value { return Value{Type: "Int", Num: int64(n)} }

// LongValue returns a Long constant.
func LongValue(n int64) Value { return Value{Type: "Long", Num: n} }

// BoolValue returns a Boolean constant.
func BoolValue(b bool) Value { return Value{Type: "Boolean", Flag: b} }

// BytesValue returns a Coll[Byte] constant.
func BytesValue(b []byte) Value { return Value{Type: "Coll[Byte]", Bytes: b} }

// PropValue returns a trivial SigmaProp constant.
func PropValue(b bool) Value { return Value{Type: "SigmaProp", Flag: b} }

// PropCollValue returns a Coll[SigmaProp] constant of trivial
// propositions.
func PropCollValue(props ...bool) Value { return Value{Type: "Coll[SigmaProp]", Props: props} }

// EvalDefault evaluates a parameter's default expression to a typed
// constant matching the declared type tag.
//
// Supported default forms: integer literals with + - * / % arithmetic
// (evaluated as constant expressions), booleans, fromBase16/fromBase64
// byte collections, sigmaProp(true|false) trivial propositions, and
// Coll(...) collections of integers or trivial propositions.
func EvalDefault(typeTag string, def *ergols.DefaultExpr) (Value, error) {
	v, err := evalExpr(def)
	if err != nil {
		return Value{}, err
	}

	return coerce(typeTag, v)
}

// evalExpr evaluates a default expression without regard to the
// declared type; coerce reconciles the two afterwards.
func evalExpr(def *ergols.DefaultExpr) (Value, error) {
	if def.First.Number != nil || len(def.Rest) > 0 {
		return evalArithmetic(def)
	}

	term := def.First

	switch {
	case term.Bool != nil:
		return BoolValue(*term.Bool == "true"), nil

	case term.Call != nil:
		return evalCall(term.Call)

	case term.Str != nil:
		return Value{}, fmt.Errorf("bare string literals are not valid defaults; use fromBase16(...) for byte collections")

	default:
		return Value{}, fmt.Errorf("unsupported default expression %q", def.String())
	}
}

// evalArithmetic evaluates a numeric constant expression such as
// "4 * 360" using the expr engine. A trailing L suffix on any literal
// marks the result as Long.
func evalArithmetic(def *ergols.DefaultExpr) (Value, error) {
	src := def.String()

	long := strings.ContainsAny(src, "Ll")
	src = strings.Map(func(r rune) rune {
		if r == 'L' || r == 'l' {
			return -1
		}

		return r
	}, src)

	program, err := expr.Compile(src, expr.AsInt64())
	if err != nil {
		return Value{}, fmt.Errorf("evaluate default %q: %w", def.String(), err)
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		return Value{}, fmt.Errorf("evaluate default %q: %w", def.String(), err)
	}

	n, ok := out.(int64)
	if !ok {
		return Value{}, fmt.Errorf("evaluate default %q: not an integer", def.String())
	}

	if long {
		return LongValue(n), nil
	}

	return Value{Type: "Int", Num: n}, nil
}

func evalCall(call *ergols.DefaultCall) (Value, error) {
	switch call.Func {
	case "fromBase16":
		s, err := singleStringArg(call)
		if err != nil {
			return Value{}, err
		}

		b, err := hex.DecodeString(s)
		if err != nil {
			return Value{}, fmt.Errorf("fromBase16: %w", err)
		}

		return BytesValue(b), nil

	case "fromBase64":
		s, err := singleStringArg(call)
		if err != nil {
			return Value{}, err
		}

		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Value{}, fmt.Errorf("fromBase64: %w", err)
		}

		return BytesValue(b), nil

	case "sigmaProp":
		if len(call.Args) != 1 || call.Args[0].First.Bool == nil {
			return Value{}, fmt.Errorf("sigmaProp default must be sigmaProp(true) or sigmaProp(false)")
		}

		return PropValue(*call.Args[0].First.Bool == "true"), nil

	case "Coll":
		return evalColl(call)

	default:
		return Value{}, fmt.Errorf("unsupported call %q in default value", call.Func)
	}
}

// evalColl evaluates a Coll(...) literal of integers or trivial
// propositions.
func evalColl(call *ergols.DefaultCall) (Value, error) {
	if len(call.Args) == 0 {
		return Value{}, fmt.Errorf("empty Coll(...) default has no element type")
	}

	elems := make([]Value, 0, len(call.Args))

	for _, arg := range call.Args {
		v, err := evalExpr(arg)
		if err != nil {
			return Value{}, err
		}

		if v.Type != elems0Type(elems, v) {
			return Value{}, fmt.Errorf("mixed element types in Coll(...) default")
		}

		elems = append(elems, v)
	}

	switch elems[0].Type {
	case "SigmaProp":
		props := make([]bool, len(elems))
		for i, e := range elems {
			props[i] = e.Flag
		}

		return PropCollValue(props...), nil

	case "Int", "Long":
		nums := make([]int64, len(elems))
		for i, e := range elems {
			nums[i] = e.Num
		}

		return Value{Type: "Coll[" + elems[0].Type + "]", Nums: nums}, nil

	default:
		return Value{}, fmt.Errorf("unsupported Coll element type %q in default", elems[0].Type)
	}
}

func elems0Type(elems []Value, v Value) string {
	if len(elems) == 0 {
		return v.Type
	}

	return elems[0].Type
}

func singleStringArg(call *ergols.DefaultCall) (string, error) {
	if len(call.Args) != 1 || call.Args[0].First.Str == nil {
		return "", fmt.Errorf("%s takes a single string literal", call.Func)
	}

	return *call.Args[0].First.Str, nil
}

// coerce reconciles an evaluated value with the declared type tag.
// Numeric literals widen to Long when declared Long; everything else
// must match exactly.
func coerce(typeTag string, v Value) (Value, error) {
	if v.Type == typeTag {
		return v, nil
	}

	switch {
	case typeTag == "Long" && v.Type == "Int":
		v.Type = "Long"

		return v, nil

	case typeTag == "Int" && v.Type == "Long":
		return Value{}, fmt.Errorf("default literal has Long suffix but parameter is declared Int")

	case typeTag == "Coll[Long]" && v.Type == "Coll[Int]":
		v.Type = "Coll[Long]"

		return v, nil
	}

	return Value{}, fmt.Errorf("default literal of type %s does not match declared type %s", v.Type, typeTag)
}

// validateRange checks that an Int constant fits in 32 bits.
func validateRange(v Value) error {
	if v.Type == "Int" && (v.Num > math.MaxInt32 || v.Num < math.MinInt32) {
		return fmt.Errorf("Int constant %d out of range", v.Num)
	}

	return nil
}
