package ergols_test

import (
	"testing"

	"github.com/mkerr/ergols"
)

func TestParseContractDecl(t *testing.T) {
	t.Parallel()

	decl, err := ergols.ParseContractDecl("@contract def heightLock(deadline: Int = 100)")
	if err != nil {
		t.Fatalf("ParseContractDecl: %v", err)
	}

	if decl.Name != "heightLock" {
		t.Errorf("name = %q, want heightLock", decl.Name)
	}

	if len(decl.Params) != 1 {
		t.Fatalf("got %d params, want 1", len(decl.Params))
	}

	p := decl.Params[0]
	if p.Name != "deadline" {
		t.Errorf("param name = %q, want deadline", p.Name)
	}

	if got := p.Type.String(); got != "Int" {
		t.Errorf("param type = %q, want Int", got)
	}

	if got := p.Default.String(); got != "100" {
		t.Errorf("param default = %q, want 100", got)
	}
}

func TestParseContractDecl_MultipleParams(t *testing.T) {
	t.Parallel()

	src := "@contract def channel(sender: SigmaProp = sigmaProp(true), timeout: Int = 4 * 360)"

	decl, err := ergols.ParseContractDecl(src)
	if err != nil {
		t.Fatalf("ParseContractDecl: %v", err)
	}

	if len(decl.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(decl.Params))
	}

	if got := decl.Params[0].Default.String(); got != "sigmaProp(true)" {
		t.Errorf("first default = %q, want sigmaProp(true)", got)
	}

	if got := decl.Params[1].Default.String(); got != "4 * 360" {
		t.Errorf("second default = %q, want 4 * 360", got)
	}
}

func TestParseContractDecl_ParameterizedTypes(t *testing.T) {
	t.Parallel()

	src := "@contract def m(owners: Coll[SigmaProp] = Coll(sigmaProp(true)), id: Coll[Byte] = fromBase16(\"ff\"))"

	decl, err := ergols.ParseContractDecl(src)
	if err != nil {
		t.Fatalf("ParseContractDecl: %v", err)
	}

	if got := decl.Params[0].Type.String(); got != "Coll[SigmaProp]" {
		t.Errorf("first type = %q, want Coll[SigmaProp]", got)
	}

	if got := decl.Params[1].Type.String(); got != "Coll[Byte]" {
		t.Errorf("second type = %q, want Coll[Byte]", got)
	}

	def := decl.Params[1].Default
	if def.First.Call == nil || def.First.Call.Func != "fromBase16" {
		t.Fatalf("second default = %q, want a fromBase16 call", def.String())
	}

	arg := def.First.Call.Args[0].First
	if arg.Str == nil || *arg.Str != "ff" {
		t.Errorf("fromBase16 argument not unquoted: %+v", arg)
	}
}

func TestParseContractDecl_OptionalPieces(t *testing.T) {
	t.Parallel()

	decl, err := ergols.ParseContractDecl("@contract def bare(x, y: Int, z = 1)")
	if err != nil {
		t.Fatalf("ParseContractDecl: %v", err)
	}

	if decl.Params[0].Type != nil || decl.Params[0].Default != nil {
		t.Error("untyped param should have nil type and default")
	}

	if decl.Params[1].Type == nil || decl.Params[1].Default != nil {
		t.Error("typed param without default parsed wrong")
	}

	if decl.Params[2].Type != nil || decl.Params[2].Default == nil {
		t.Error("defaulted param without type parsed wrong")
	}
}

func TestParseContractDecl_NoParams(t *testing.T) {
	t.Parallel()

	decl, err := ergols.ParseContractDecl("@contract def constant()")
	if err != nil {
		t.Fatalf("ParseContractDecl: %v", err)
	}

	if len(decl.Params) != 0 {
		t.Errorf("got %d params, want 0", len(decl.Params))
	}
}

func TestParseContractDecl_Rejects(t *testing.T) {
	t.Parallel()

	tests := []string{
		"@contract heightLock(x: Int = 1)",
		"def heightLock(x: Int = 1)",
		"@contract def (x: Int = 1)",
		"@contract def f(x: Int = 1",
	}

	for _, src := range tests {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			if _, err := ergols.ParseContractDecl(src); err == nil {
				t.Errorf("ParseContractDecl(%q) accepted invalid input", src)
			}
		})
	}
}
