package analysis_test

import (
	"testing"

	"github.com/mkerr/ergols/analysis"
)

func TestInferType_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want analysis.Type
	}{
		{"100", analysis.TypeInt},
		{"0", analysis.TypeInt},
		{"1000000L", analysis.TypeLong},
		{"42l", analysis.TypeLong},
		{"true", analysis.TypeBoolean},
		{"false", analysis.TypeBoolean},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_Globals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want analysis.Type
	}{
		{"HEIGHT", analysis.TypeInt},
		{"SELF", analysis.TypeBox},
		{"INPUTS", analysis.TypeCollBox},
		{"OUTPUTS", analysis.TypeCollBox},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_RegisterAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want analysis.Type
	}{
		{"get yields element type", "SELF.R4[Int].get", "Int"},
		{"get yields collection element type", "SELF.R5[Coll[Byte]].get", "Coll[Byte]"},
		{"bare access yields option", "SELF.R4[Int]", "Option[Int]"},
		{"getOrElse yields element type", "SELF.R6[Int].getOrElse(0)", "Int"},
		{"isDefined yields boolean", "SELF.R7[Long].isDefined", analysis.TypeBoolean},
		{"arbitrary receiver", "INPUTS(0).R4[SigmaProp].get", "SigmaProp"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_BuiltinCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want analysis.Type
	}{
		{"sigmaProp(HEIGHT > 100)", analysis.TypeSigmaProp},
		{"proveDlog(pk)", analysis.TypeSigmaProp},
		{"atLeast(2, props)", analysis.TypeSigmaProp},
		{"blake2b256(SELF.propositionBytes)", analysis.TypeCollByte},
		{"sha256(data)", analysis.TypeCollByte},
		{"allOf(Coll(a, b))", analysis.TypeBoolean},
		{"fromBase16(\"deadbeef\")", analysis.TypeCollByte},
		{"decodePoint(bytes)", "GroupElement"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_UnknownFunctionIsUnknown(t *testing.T) {
	t.Parallel()

	if got, ok := analysis.InferType("unknownFunction(x)", nil); ok {
		t.Errorf("InferType resolved unknown call to %q, want no result", got)
	}
}

func TestInferType_HashLikeNameYieldsBytes(t *testing.T) {
	t.Parallel()

	got, ok := analysis.InferType("customHash(data)", nil)
	if !ok {
		t.Fatal("InferType did not resolve hash-like call")
	}

	if got != analysis.TypeCollByte {
		t.Errorf("InferType = %q, want %q", got, analysis.TypeCollByte)
	}
}

func TestInferType_BooleanOperators(t *testing.T) {
	t.Parallel()

	tests := []string{
		"HEIGHT > 100",
		"a < b",
		"x == y",
		"a != b",
		"deadline >= HEIGHT && spent",
		"p || q",
		"SELF.value >= 1000000L",
	}

	for _, expr := range tests {
		expr := expr
		t.Run(expr, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", expr)
			}

			if got != analysis.TypeBoolean {
				t.Errorf("InferType(%q) = %q, want Boolean", expr, got)
			}
		})
	}
}

func TestInferType_LambdaArrowIsNotComparison(t *testing.T) {
	t.Parallel()

	// The => inside a lambda must not classify the whole expression as
	// a comparison; the filter rule should win.
	got, ok := analysis.InferType("OUTPUTS.filter { (b) => b.value } ", nil)
	if !ok {
		t.Fatal("InferType did not resolve filter chain")
	}

	if got != analysis.TypeCollBox {
		t.Errorf("InferType = %q, want Coll[Box]", got)
	}
}

func TestInferType_MemberChains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want analysis.Type
	}{
		{"box value", "SELF.value", analysis.TypeLong},
		{"box proposition bytes", "SELF.propositionBytes", analysis.TypeCollByte},
		{"box id", "SELF.id", analysis.TypeCollByte},
		{"box tokens", "SELF.tokens", "Coll[(Coll[Byte], Long)]"},
		{"collection size", "INPUTS.size", analysis.TypeInt},
		{"collection isEmpty", "OUTPUTS.isEmpty", analysis.TypeBoolean},
		{"filter keeps receiver type", "OUTPUTS.filter(p)", analysis.TypeCollBox},
		{"map loses element type", "OUTPUTS.map(f)", "Coll[T]"},
		{"fold loses element type", "OUTPUTS.fold(z, op)", analysis.TypeUnresolved},
		{"zip pairs elements", "OUTPUTS.zip(other)", "Coll[(Box, T)]"},
		{"indexing yields element", "INPUTS(0)", analysis.TypeBox},
		{"indexed member access", "INPUTS(0).value", analysis.TypeLong},
		{"chained filter size", "OUTPUTS.filter(p).size", analysis.TypeInt},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, nil)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_SymbolReferences(t *testing.T) {
	t.Parallel()

	text := `
val boxValue = SELF.value
val amount = boxValue
val deadline = 100
val spendable = HEIGHT > deadline
`
	symbols := analysis.ExtractSymbols(text)

	tests := []struct {
		expr string
		want analysis.Type
	}{
		{"boxValue", analysis.TypeLong},
		{"amount", analysis.TypeLong},
		{"deadline", analysis.TypeInt},
		{"spendable", analysis.TypeBoolean},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, ok := analysis.InferType(tt.expr, symbols)
			if !ok {
				t.Fatalf("InferType(%q) did not resolve", tt.expr)
			}

			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInferType_CyclicSymbolsResolveToUnknown(t *testing.T) {
	t.Parallel()

	symbols := analysis.ExtractSymbols("val a = b\nval b = a\n")

	if got, ok := analysis.InferType("a", symbols); ok {
		t.Errorf("InferType resolved cyclic symbol to %q, want no result", got)
	}
}

func TestInferType_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	if got, ok := analysis.InferType("mystery", nil); ok {
		t.Errorf("InferType resolved unbound identifier to %q, want no result", got)
	}
}

func TestInferType_EmptyExpression(t *testing.T) {
	t.Parallel()

	if _, ok := analysis.InferType("   ", nil); ok {
		t.Error("InferType resolved blank expression")
	}
}
