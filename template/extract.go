package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkerr/ergols"
)

// ErrNoBody is returned when a contract declaration has no body block.
var ErrNoBody = errors.New("contract declaration has no body block")

// Extract parses an annotated contract source into a validated Draft.
//
// The source must contain a /** ... */ docstring immediately before an
// @contract declaration. The docstring's free text becomes the
// description; each declared parameter must carry a type annotation, a
// default literal, and exactly one matching @param tag, matched by
// name. Parameter order in the draft equals declaration order,
// independent of @param tag order. Validation is all-or-nothing.
func Extract(source string) (*Draft, error) {
	at := strings.Index(source, "@contract")
	if at < 0 {
		return nil, ErrNoContract
	}

	declLine := lineOf(source, at)

	doc, err := parseDocstring(source[:at], declLine)
	if err != nil {
		return nil, err
	}

	headerEnd, err := signatureEnd(source, at)
	if err != nil {
		return nil, err
	}

	decl, err := ergols.ParseContractDecl(source[at:headerEnd])
	if err != nil {
		return nil, fmt.Errorf("parse contract declaration: %w", err)
	}

	body, err := bodyAfter(source, headerEnd)
	if err != nil {
		return nil, err
	}

	params := make([]DraftParam, 0, len(decl.Params))

	for _, p := range decl.Params {
		line := declLine + p.Pos.Line - 1

		if p.Type == nil {
			return nil, &Error{Kind: MissingTypeAnnotation, Param: p.Name, Line: line}
		}

		if p.Default == nil {
			return nil, &Error{Kind: MissingDefault, Param: p.Name, Line: line}
		}

		desc, ok := doc.params[p.Name]
		if !ok {
			return nil, &Error{Kind: MissingParamDoc, Param: p.Name, Line: line}
		}

		params = append(params, DraftParam{
			Name:        p.Name,
			Type:        p.Type.String(),
			Default:     p.Default,
			Description: desc,
			Line:        line,
		})
	}

	return &Draft{
		Name:        decl.Name,
		Description: doc.description,
		Params:      params,
		Body:        body,
	}, nil
}

// docstring holds the parsed pieces of a contract docstring.
type docstring struct {
	description string
	params      map[string]string
}

// parseDocstring validates and parses the /** ... */ comment ending
// immediately before the contract declaration.
func parseDocstring(prefix string, declLine int) (*docstring, error) {
	trimmed := strings.TrimRight(prefix, " \t\r\n")

	if !strings.HasSuffix(trimmed, "*/") {
		return nil, &Error{Kind: MalformedDocstring, Line: declLine}
	}

	start := strings.LastIndex(trimmed, "/**")
	if start < 0 || start+3 > len(trimmed)-2 {
		return nil, &Error{Kind: MalformedDocstring, Line: declLine}
	}

	content := trimmed[start+3 : len(trimmed)-2]

	doc := &docstring{params: make(map[string]string)}

	var descLines []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(line, "@param"); ok {
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				continue
			}

			doc.params[fields[0]] = strings.Join(fields[1:], " ")

			continue
		}

		if len(doc.params) == 0 && line != "" {
			descLines = append(descLines, line)
		}
	}

	doc.description = strings.Join(descLines, "\n")

	return doc, nil
}

// signatureEnd returns the offset one past the closing parenthesis of
// the parameter list starting at the @contract annotation.
func signatureEnd(source string, at int) (int, error) {
	open := strings.IndexByte(source[at:], '(')
	if open < 0 {
		return 0, fmt.Errorf("parse contract declaration at line %d: missing parameter list", lineOf(source, at))
	}

	depth := 0

	for i := at + open; i < len(source); i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}

	return 0, fmt.Errorf("parse contract declaration at line %d: unbalanced parameter list", lineOf(source, at))
}

// bodyAfter extracts the contract body: "= { ... }" following the
// signature, with the braces balanced.
func bodyAfter(source string, pos int) (string, error) {
	rest := strings.TrimLeft(source[pos:], " \t\r\n")
	if !strings.HasPrefix(rest, "=") {
		return "", ErrNoBody
	}

	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if !strings.HasPrefix(rest, "{") {
		return "", ErrNoBody
	}

	depth := 0

	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[1:i], nil
			}
		}
	}

	return "", ErrNoBody
}

// lineOf returns the 1-based line number of the given byte offset.
func lineOf(source string, offset int) int {
	return 1 + strings.Count(source[:offset], "\n")
}
