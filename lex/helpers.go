package lex

import "github.com/dhamidi/zest/diagnostics"

// digitLimit caps digit sequences fed to arbitrary-precision parsing.
// Pathological inputs with tens of thousands of digits otherwise make
// literal parsing the slowest part of the front end.
const digitLimit = 1000

var errTooManyDigits = diagnostics.Descriptor{
	Kind: diagnostics.TooManyDigits, Level: diagnostics.Error,
	Format: "found a sequence of %d digits, which is greater than the limit of %d"}

// CanLexInteger rejects digit sequences longer than the supported limit,
// diagnosing at the sequence's byte offset.
func CanLexInteger(emitter *diagnostics.Emitter[int], text []byte, offset int) bool {
	if len(text) > digitLimit {
		emitter.Emit(offset, errTooManyDigits, len(text), digitLimit)
		return false
	}
	return true
}

// UnescapeStringLiteral expands the common escape set from plain scalar
// code. It handles the subset of escapes that need no diagnostics and
// returns false on anything it cannot expand; the lexer's string literal
// path is the full implementation. Tabs in the content are rejected.
func UnescapeStringLiteral(source string) (string, bool) {
	out := make([]byte, 0, len(source))
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch c {
		case '\\':
			i++
			if i == len(source) {
				return "", false
			}
			switch source[i] {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case '0':
				if i+1 < len(source) && IsDecimalDigit(source[i+1]) {
					// \0[0-9] is reserved; spell it \x00.
					return "", false
				}
				out = append(out, 0)
			case '"':
				out = append(out, '"')
			case '\'':
				out = append(out, '\'')
			case '\\':
				out = append(out, '\\')
			case 'x':
				if i+2 >= len(source) {
					return "", false
				}
				hi, okHi := fromHex(source[i+1])
				lo, okLo := fromHex(source[i+2])
				if !okHi || !okLo {
					return "", false
				}
				out = append(out, hi<<4|lo)
				i += 2
			default:
				return "", false
			}
		case '\t':
			return "", false
		default:
			out = append(out, c)
		}
	}
	return string(out), true
}

func fromHex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'A' <= c && c <= 'F':
		return 10 + c - 'A', true
	}
	return 0, false
}
