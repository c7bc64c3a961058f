package lex

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/zest/diagnostics"
)

// MultiLineKind distinguishes the three string literal forms.
type MultiLineKind int8

const (
	NotMultiLine MultiLineKind = iota
	MultiLine
	MultiLineWithDoubleQuotes
)

const (
	multiLineIndicator             = "'''"
	doubleQuotedMultiLineIndicator = `"""`
)

// StringLiteralExtent is the raw extent of one string token: the full text
// including delimiters, the content between them, and the `#` level that
// raises delimiters and escapes.
type StringLiteralExtent struct {
	text    []byte
	content []byte
	// Byte offsets of text[0] and content[0] within the source buffer.
	start        int
	contentStart int
	hashLevel    int
	multiLine    MultiLineKind
	terminated   bool
}

type stringIntroducer struct {
	kind MultiLineKind
	// Terminator without the trailing hashes.
	terminator string
	// Bytes from the opening delimiter through the first newline for
	// multi-line forms, including the file-type indicator.
	prefixSize int
}

// lexStringIntroducer identifies the opening delimiter of text, which
// follows any leading hashes.
func lexStringIntroducer(text []byte) (stringIntroducer, bool) {
	kind := NotMultiLine
	var indicator string
	if bytes.HasPrefix(text, []byte(multiLineIndicator)) {
		kind = MultiLine
		indicator = multiLineIndicator
	} else if bytes.HasPrefix(text, []byte(doubleQuotedMultiLineIndicator)) {
		kind = MultiLineWithDoubleQuotes
		indicator = doubleQuotedMultiLineIndicator
	}

	if kind != NotMultiLine {
		// A file-type indicator may follow the delimiter: anything up to
		// the first newline, as long as it contains no '#' or '"'.
		if i := bytes.IndexAny(text[len(indicator):], "#\n\""); i >= 0 {
			prefixEnd := len(indicator) + i
			if text[prefixEnd] == '\n' {
				return stringIntroducer{kind: kind, terminator: indicator, prefixSize: prefixEnd + 1}, true
			}
		}
	}

	if len(text) > 0 && text[0] == '"' {
		return stringIntroducer{kind: NotMultiLine, terminator: `"`, prefixSize: 1}, true
	}
	return stringIntroducer{}, false
}

// LexStringLiteral scans the extent of a string literal at the front of
// source[offset:]. It finds the terminator (or the point where the
// literal is cut off) without interpreting escapes beyond skipping the
// characters they protect.
func LexStringLiteral(source []byte, offset int) (StringLiteralExtent, bool) {
	text := source[offset:]
	cursor := 0
	for cursor < len(text) && text[cursor] == '#' {
		cursor++
	}
	hashLevel := cursor

	introducer, ok := lexStringIntroducer(text[hashLevel:])
	if !ok {
		return StringLiteralExtent{}, false
	}

	cursor += introducer.prefixSize
	prefixLen := cursor

	terminator := introducer.terminator + hashes(hashLevel)
	escape := `\` + hashes(hashLevel)

	mk := func(end, contentEnd int, terminated bool) StringLiteralExtent {
		return StringLiteralExtent{
			text:         text[:end],
			content:      text[prefixLen:contentEnd],
			start:        offset,
			contentStart: offset + prefixLen,
			hashLevel:    hashLevel,
			multiLine:    introducer.kind,
			terminated:   terminated,
		}
	}

	for ; cursor < len(text); cursor++ {
		switch text[cursor] {
		case '\\':
			if len(escape) == 1 || bytes.HasPrefix(text[cursor+1:], []byte(escape[1:])) {
				cursor += len(escape)
				// An escape at EOF, or an escaped newline in a
				// single-line literal, truncates the string there.
				if cursor >= len(text) ||
					(introducer.kind == NotMultiLine && text[cursor] == '\n') {
					return mk(cursor, cursor, false), true
				}
			}
		case '\n':
			if introducer.kind == NotMultiLine {
				return mk(cursor, cursor, false), true
			}
		case '"', '\'':
			if bytes.HasPrefix(text[cursor:], []byte(terminator)) {
				return mk(cursor+len(terminator), cursor, true), true
			}
		}
	}

	return mk(len(text), len(text), false), true
}

func hashes(n int) string {
	return string(bytes.Repeat([]byte{'#'}, n))
}

// Text returns the literal's full source spelling.
func (l StringLiteralExtent) Text() []byte { return l.text }

// IsMultiLine reports the triple-quoted forms.
func (l StringLiteralExtent) IsMultiLine() bool { return l.multiLine != NotMultiLine }

// IsTerminated reports whether the closing delimiter was found.
func (l StringLiteralExtent) IsTerminated() bool { return l.terminated }

var (
	errContentBeforeStringTerminator = diagnostics.Descriptor{
		Kind: diagnostics.ContentBeforeStringTerminator, Level: diagnostics.Error,
		Format: "only whitespace is permitted before the closing `'''` of a multi-line string"}
	errUnicodeEscapeTooLarge = diagnostics.Descriptor{
		Kind: diagnostics.UnicodeEscapeTooLarge, Level: diagnostics.Error,
		Format: "code point specified by `\\u{...}` escape is greater than 0x10FFFF"}
	errUnicodeEscapeSurrogate = diagnostics.Descriptor{
		Kind: diagnostics.UnicodeEscapeSurrogate, Level: diagnostics.Error,
		Format: "code point specified by `\\u{...}` escape is a surrogate character"}
	errUnknownEscapeSequence = diagnostics.Descriptor{
		Kind: diagnostics.UnknownEscapeSequence, Level: diagnostics.Error,
		Format: "unrecognized escape sequence `%c`"}
	errDecimalEscapeSequence = diagnostics.Descriptor{
		Kind: diagnostics.DecimalEscapeSequence, Level: diagnostics.Error,
		Format: "decimal digit follows `\\0` escape sequence; use `\\x00` instead of `\\0` if the next character is a digit"}
	errHexadecimalEscapeMissingDigits = diagnostics.Descriptor{
		Kind: diagnostics.HexadecimalEscapeMissingDigits, Level: diagnostics.Error,
		Format: "escape sequence `\\x` must be followed by two uppercase hexadecimal digits, for example `\\x0F`"}
	errUnicodeEscapeMissingBracedDigits = diagnostics.Descriptor{
		Kind: diagnostics.UnicodeEscapeMissingBracedDigits, Level: diagnostics.Error,
		Format: "escape sequence `\\u` must be followed by a braced sequence of uppercase hexadecimal digits, for example `\\u{70AD}`"}
	errInvalidHorizontalWhitespaceInString = diagnostics.Descriptor{
		Kind: diagnostics.InvalidHorizontalWhitespaceInString, Level: diagnostics.Error,
		Format: "whitespace other than plain space must be expressed with an escape sequence in a string literal"}
	errMismatchedIndentInString = diagnostics.Descriptor{
		Kind: diagnostics.MismatchedIndentInString, Level: diagnostics.Error,
		Format: "indentation does not match that of the closing `'''` in multi-line string literal"}
	errMultiLineStringWithDoubleQuotes = diagnostics.Descriptor{
		Kind: diagnostics.MultiLineStringWithDoubleQuotes, Level: diagnostics.Error,
		Format: "use `'''` delimiters for a multi-line string literal, not `\"\"\"`"}
	errUnterminatedString = diagnostics.Descriptor{
		Kind: diagnostics.UnterminatedString, Level: diagnostics.Error,
		Format: "string is missing a terminator"}
)

// computeIndentOfFinalLine finds the horizontal whitespace run that
// opens the last line of text. The text must contain a newline.
func computeIndentOfFinalLine(text []byte) (start, end int) {
	end = len(text)
	for i := end - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1, end
		}
		if !IsSpace(text[i]) {
			end = i
		}
	}
	panic("multi-line string literal without a newline")
}

// checkIndent verifies that nothing but whitespace precedes the closing
// delimiter and returns the indentation to strip from every content
// line.
func (l StringLiteralExtent) checkIndent(emitter *diagnostics.Emitter[int]) []byte {
	indentStart, indentEnd := computeIndentOfFinalLine(l.text)

	contentEnd := l.contentStart - l.start + len(l.content)
	if indentEnd != contentEnd {
		emitter.Emit(l.start+indentEnd, errContentBeforeStringTerminator)
	}
	return l.text[indentStart:indentEnd]
}

// expandUnicodeEscape appends the UTF-8 encoding of the code point
// written as uppercase hex digits.
func expandUnicodeEscape(emitter *diagnostics.Emitter[int], digits []byte, offset int, result []byte) ([]byte, bool) {
	if !CanLexInteger(emitter, digits, offset) {
		return result, false
	}
	codePoint, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || codePoint > 0x10FFFF {
		emitter.Emit(offset, errUnicodeEscapeTooLarge)
		return result, false
	}
	if codePoint >= 0xD800 && codePoint < 0xE000 {
		emitter.Emit(offset, errUnicodeEscapeSurrogate)
		return result, false
	}
	return utf8.AppendRune(result, rune(codePoint)), true
}

// expandEscape interprets one escape sequence. i points just past the
// escape introducer within content; the new cursor is returned.
func (l StringLiteralExtent) expandEscape(emitter *diagnostics.Emitter[int], content []byte, i int, result []byte) ([]byte, int) {
	first := content[i]
	i++

	switch first {
	case 't':
		return append(result, '\t'), i
	case 'n':
		return append(result, '\n'), i
	case 'r':
		return append(result, '\r'), i
	case '"':
		return append(result, '"'), i
	case '\'':
		return append(result, '\''), i
	case '\\':
		return append(result, '\\'), i
	case '0':
		result = append(result, 0)
		if i < len(content) && IsDecimalDigit(content[i]) {
			emitter.Emit(l.contentStart+i, errDecimalEscapeSequence)
		}
		return result, i
	case 'x':
		if i+1 < len(content) && IsUpperHexDigit(content[i]) && IsUpperHexDigit(content[i+1]) {
			hi, _ := fromHex(content[i])
			lo, _ := fromHex(content[i+1])
			return append(result, hi<<4|lo), i + 2
		}
		emitter.Emit(l.contentStart+i, errHexadecimalEscapeMissingDigits)
	case 'u':
		if i < len(content) && content[i] == '{' {
			j := i + 1
			for j < len(content) && IsUpperHexDigit(content[j]) {
				j++
			}
			if j > i+1 && j < len(content) && content[j] == '}' {
				expanded, ok := expandUnicodeEscape(emitter, content[i+1:j], l.contentStart+i+1, result)
				if ok {
					return expanded, j + 1
				}
				result = expanded
				break
			}
		}
		emitter.Emit(l.contentStart+i, errUnicodeEscapeMissingBracedDigits)
	default:
		emitter.Emit(l.contentStart+i-1, errUnknownEscapeSequence, first)
	}

	return append(result, first), i
}

// expandEscapesAndRemoveIndent produces the string value: indentation
// stripping per line, escape expansion, trailing-space removal before
// newlines, and line continuations.
func (l StringLiteralExtent) expandEscapesAndRemoveIndent(emitter *diagnostics.Emitter[int], indent []byte) string {
	content := l.content
	result := make([]byte, 0, len(content))
	escape := `\` + hashes(l.hashLevel)

	trimTrailing := func(result []byte, lastEscapeLength int) []byte {
		for len(result) > 0 && result[len(result)-1] != '\n' &&
			IsSpace(result[len(result)-1]) && len(result) > lastEscapeLength {
			result = result[:len(result)-1]
		}
		return result
	}

	i := 0
	for {
		// Each line must start with the terminator's indentation.
		if bytes.HasPrefix(content[i:], indent) {
			i += len(indent)
		} else {
			lineStart := i
			for i < len(content) && IsHorizontalWhitespace(content[i]) {
				i++
			}
			if !(i < len(content) && content[i] == '\n') {
				emitter.Emit(l.contentStart+lineStart, errMismatchedIndentInString)
			}
		}

		// Guards the trailing-space trim from eating expanded escapes.
		lastEscapeLength := 0

		for {
			j := i
			for j < len(content) {
				c := content[j]
				if c == '\n' || c == '\\' || (IsHorizontalWhitespace(c) && c != ' ') {
					break
				}
				j++
			}
			result = append(result, content[i:j]...)
			i = j

			if i == len(content) {
				return string(result)
			}

			if content[i] == '\n' {
				i++
				result = trimTrailing(result, lastEscapeLength)
				result = append(result, '\n')
				break
			}

			if IsHorizontalWhitespace(content[i]) {
				// A tab is allowed only as line-trailing whitespace,
				// which the newline handling strips anyway.
				afterSpace := i
				for afterSpace < len(content) && IsHorizontalWhitespace(content[afterSpace]) {
					afterSpace++
				}
				if afterSpace == len(content) || content[afterSpace] != '\n' {
					emitter.Emit(l.contentStart+i, errInvalidHorizontalWhitespaceInString)
					result = append(result, content[i:afterSpace]...)
				}
				i = afterSpace
				continue
			}

			if !bytes.HasPrefix(content[i:], []byte(escape)) {
				result = append(result, content[i])
				i++
				continue
			}
			i += len(escape)

			if i < len(content) && content[i] == '\n' {
				// Line continuation: the newline and the previous
				// line's trailing spaces go away.
				i++
				result = trimTrailing(result, lastEscapeLength)
				break
			}

			result, i = l.expandEscape(emitter, content, i, result)
			lastEscapeLength = len(result)
		}
	}
}

// ComputeValue expands the literal into its string value, emitting any
// diagnostics for malformed content. Unterminated literals yield "".
func (l StringLiteralExtent) ComputeValue(emitter *diagnostics.Emitter[int]) string {
	if !l.terminated {
		return ""
	}
	if l.multiLine == MultiLineWithDoubleQuotes {
		emitter.Emit(l.start, errMultiLineStringWithDoubleQuotes)
	}
	var indent []byte
	if l.IsMultiLine() {
		indent = l.checkIndent(emitter)
	}
	return l.expandEscapesAndRemoveIndent(emitter, indent)
}
