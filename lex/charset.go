package lex

// Character predicates used by the lexer. All of them are ASCII-only;
// bytes above 0x7F are handled separately by the identifier scanner.

// IsAlpha reports [a-zA-Z].
func IsAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// IsDecimalDigit reports [0-9].
func IsDecimalDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsAlnum reports [a-zA-Z0-9].
func IsAlnum(c byte) bool {
	return IsAlpha(c) || IsDecimalDigit(c)
}

// IsUpperHexDigit reports [0-9A-F]. Lower-case a-f are not hex digits in
// any context.
func IsUpperHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'F')
}

// IsLower reports [a-z].
func IsLower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

// IsHorizontalWhitespace reports space or tab.
func IsHorizontalWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsVerticalWhitespace reports newline. Carriage returns are not
// whitespace; they diagnose as unrecognized characters.
func IsVerticalWhitespace(c byte) bool {
	return c == '\n'
}

// IsSpace reports any whitespace the lexer skips.
func IsSpace(c byte) bool {
	return IsHorizontalWhitespace(c) || IsVerticalWhitespace(c)
}
