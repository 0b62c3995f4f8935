package analysis

import (
	"regexp"
	"strings"
)

// registerReceiverPattern recognizes receivers shaped like a register
// access, e.g. SELF.R4[Int] or b.R5[Coll[Byte]].
var registerReceiverPattern = regexp.MustCompile(`(^|\.)R[0-9]\[.*\]$`)

// ClassifyContext inspects the text immediately before the cursor and
// classifies the completion context. It is best-effort pattern
// matching, not a parser: it never fails, and any position out of
// document bounds or text matching no rule degrades to the general
// context.
func ClassifyContext(text string, line, character int, trigger string) Context {
	ctx := Context{Kind: ContextGeneral}

	offset, ok := OffsetAt(text, line, character)
	if !ok {
		return ctx
	}

	before := text[:offset]

	// Ignore the in-progress partial identifier so "SELF.val" still
	// classifies as a member access on SELF.
	prefix := trailingIdent(before)
	ctx.Prefix = prefix

	core := strings.TrimRight(before[:len(before)-len(prefix)], " \t")

	if trigger == "." || strings.HasSuffix(core, ".") {
		recvEnd := len(core)
		if strings.HasSuffix(core, ".") {
			recvEnd--
		}

		receiver := receiverBefore(core[:recvEnd])
		if receiver != "" {
			ctx.Receiver = receiver

			if registerReceiverPattern.MatchString(receiver) {
				ctx.Kind = ContextRegisterGetter
			} else {
				ctx.Kind = ContextMemberAccess
			}
		}

		return ctx
	}

	if fn, ok := enclosingCall(core); ok {
		ctx.Kind = ContextCallArgument
		ctx.Function = fn

		return ctx
	}

	return ctx
}

// enclosingCall finds the nearest unclosed parenthesis before the
// cursor and returns its head identifier, if it has one.
func enclosingCall(s string) (string, bool) {
	depth := 0

	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			if depth > 0 {
				depth--

				continue
			}

			head := trailingIdent(strings.TrimRight(s[:i], " \t"))
			if head == "" {
				return "", false
			}

			return head, true
		}
	}

	return "", false
}

// receiverBefore extracts the receiver expression ending at the end of
// s: a chain of identifiers, dots, and balanced bracket groups.
func receiverBefore(s string) string {
	i := len(s)

	for i > 0 {
		c := s[i-1]

		switch {
		case isIdentByte(c) || c == '.':
			i--
		case c == ')' || c == ']' || c == '}':
			j := matchBackward(s, i-1)
			if j < 0 {
				return s[i:]
			}

			i = j
		default:
			return s[i:]
		}
	}

	return s
}

// matchBackward returns the index of the opener matching the closer at
// index close, or -1 when unbalanced.
func matchBackward(s string, close int) int {
	depth := 0

	for i := close; i >= 0; i-- {
		switch s[i] {
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// trailingIdent returns the identifier suffix of s, if any.
func trailingIdent(s string) string {
	start := len(s)

	for start > 0 && isIdentByte(s[start-1]) {
		start--
	}

	// Identifiers cannot start with a digit.
	for start < len(s) && s[start] >= '0' && s[start] <= '9' {
		start++
	}

	return s[start:]
}
