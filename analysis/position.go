package analysis

import "strings"

// OffsetAt converts a 0-indexed line/character position into a byte
// offset in text. ok is false when the line is out of range; a
// character past the end of its line clamps to the line end.
func OffsetAt(text string, line, character int) (int, bool) {
	if line < 0 || character < 0 {
		return 0, false
	}

	offset := 0
	rest := text

	for l := 0; l < line; l++ {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return 0, false
		}

		offset += i + 1
		rest = rest[i+1:]
	}

	lineEnd := strings.IndexByte(rest, '\n')
	if lineEnd < 0 {
		lineEnd = len(rest)
	}

	if character > lineEnd {
		character = lineEnd
	}

	return offset + character, true
}

// WordAt returns the identifier containing or immediately preceding
// the given offset, with its start and end offsets. The word is empty
// when the offset is not on an identifier.
func WordAt(text string, offset int) (string, int, int) {
	if offset < 0 || offset > len(text) {
		return "", 0, 0
	}

	start := offset
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}

	end := offset
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}

	if start == end || text[start] >= '0' && text[start] <= '9' {
		return "", start, end
	}

	return text[start:end], start, end
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
