package ergols

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer tokenizes ErgoScript source. It is deliberately small:
// the analysis engine works over raw text, so tokens are only needed
// for contract declaration parsing and body compilation.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "BlockComment", Pattern: `/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `\d+[Ll]?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Op", Pattern: `&&|\|\||=>|[=!<>]=|[-+*/%=<>!&|]`},
	{Name: "Punct", Pattern: `[(){}\[\]:;,.@$]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Token type lookups for callers that inspect token streams directly.
var (
	scriptSymbols = ScriptLexer.Symbols()

	// TokenIdent is the token type for identifiers.
	TokenIdent = scriptSymbols["Ident"]
	// TokenNumber is the token type for numeric literals.
	TokenNumber = scriptSymbols["Number"]
	// TokenString is the token type for string literals.
	TokenString = scriptSymbols["String"]

	tokenWhitespace   = scriptSymbols["Whitespace"]
	tokenLineComment  = scriptSymbols["LineComment"]
	tokenBlockComment = scriptSymbols["BlockComment"]
)

// TokenizeScript lexes src and returns its tokens with whitespace and
// comments elided. Positions are 1-based, matching participle.
func TokenizeScript(src string) ([]lexer.Token, error) {
	lx, err := ScriptLexer.LexString("", src)
	if err != nil {
		return nil, fmt.Errorf("lex script: %w", err)
	}

	var tokens []lexer.Token

	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, fmt.Errorf("lex script: %w", err)
		}

		if tok.EOF() {
			return tokens, nil
		}

		if tok.Type == tokenWhitespace || tok.Type == tokenLineComment || tok.Type == tokenBlockComment {
			continue
		}

		tokens = append(tokens, tok)
	}
}
