package lex

import (
	"math/big"

	"github.com/dhamidi/zest/diagnostics"
)

// Radix of a numeric literal: binary (`0b`), decimal, or hexadecimal
// (`0x`).
type Radix int8

const (
	Binary      Radix = 2
	Decimal     Radix = 10
	Hexadecimal Radix = 16
)

func (r Radix) String() string {
	switch r {
	case Binary:
		return "binary"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	}
	return "unknown"
}

// NumericLiteral is the raw text of one numeric token plus the offsets of
// its radix point and exponent introducer, found by a greedy scan.
// Checking and value computation happen separately so that an invalid
// literal still consumes its full extent.
type NumericLiteral struct {
	text []byte
	// Byte offset of text[0] within the source buffer; diagnostics are
	// anchored relative to it.
	start int
	// Offset of '.' within text, or len(text) when absent.
	radixPoint int
	// Offset of the exponent introducer within text, or len(text).
	exponent int
}

// IntegerValue is the value of an integer literal.
type IntegerValue struct {
	Value *big.Int
}

// RealValue is mantissa*radix^exponent with radix 2 or 10.
type RealValue struct {
	Radix    Radix
	Mantissa *big.Int
	Exponent *big.Int
}

// NumericValue is an IntegerValue or a RealValue.
type NumericValue interface {
	isNumericValue()
}

func (IntegerValue) isNumericValue() {}
func (RealValue) isNumericValue()    {}

// LexNumericLiteral greedily scans a numeric literal at the front of
// source[offset:]. It accepts digits, letters, underscores, a single
// radix point followed by an alphanumeric, and one exponent sign
// directly after a lower-case introducer. Reports false when the text
// does not start with a decimal digit.
func LexNumericLiteral(source []byte, offset int) (NumericLiteral, bool) {
	text := source[offset:]
	if len(text) == 0 || !IsDecimalDigit(text[0]) {
		return NumericLiteral{}, false
	}

	result := NumericLiteral{start: offset, radixPoint: -1, exponent: -1}

	seenPlusMinus := false
	seenRadixPoint := false
	seenPotentialExponent := false

	i := 1
	for ; i < len(text); i++ {
		c := text[i]
		if IsAlnum(c) || c == '_' {
			if IsLower(c) && seenRadixPoint && !seenPlusMinus {
				result.exponent = i
				seenPotentialExponent = true
			}
			continue
		}

		if c == '.' && i+1 < len(text) && IsAlnum(text[i+1]) && !seenRadixPoint {
			result.radixPoint = i
			seenRadixPoint = true
			continue
		}

		if (c == '+' || c == '-') && seenPotentialExponent &&
			result.exponent == i-1 && i+1 < len(text) && IsAlnum(text[i+1]) {
			seenPlusMinus = true
			continue
		}
		break
	}

	result.text = text[:i]
	if !seenRadixPoint {
		result.radixPoint = i
	}
	if !seenPotentialExponent {
		result.exponent = i
	}
	return result, true
}

// Text returns the literal's source spelling.
func (l NumericLiteral) Text() []byte { return l.text }

var (
	errUnknownBaseSpecifier = diagnostics.Descriptor{
		Kind: diagnostics.UnknownBaseSpecifier, Level: diagnostics.Error,
		Format: "unknown base specifier in numeric literal"}
	errEmptyDigitSequence = diagnostics.Descriptor{
		Kind: diagnostics.EmptyDigitSequence, Level: diagnostics.Error,
		Format: "empty digit sequence in numeric literal"}
	errInvalidDigit = diagnostics.Descriptor{
		Kind: diagnostics.InvalidDigit, Level: diagnostics.Error,
		Format: "invalid digit '%c' in %v numeric literal"}
	errInvalidDigitSeparator = diagnostics.Descriptor{
		Kind: diagnostics.InvalidDigitSeparator, Level: diagnostics.Error,
		Format: "misplaced digit separator in numeric literal"}
	errIrregularDigitSeparators = diagnostics.Descriptor{
		Kind: diagnostics.IrregularDigitSeparators, Level: diagnostics.Error,
		Format: "digit separators in %v number should appear every %d characters from the right"}
	errBinaryRealLiteral = diagnostics.Descriptor{
		Kind: diagnostics.BinaryRealLiteral, Level: diagnostics.Error,
		Format: "binary real number literals are not supported"}
	errWrongRealLiteralExponent = diagnostics.Descriptor{
		Kind: diagnostics.WrongRealLiteralExponent, Level: diagnostics.Error,
		Format: "expected '%c' to introduce exponent"}
)

// numericParser validates a scanned literal and extracts its value.
// Lexical structure: [radix] int_part [. fract_part [[ep] [+-] exponent_part]]
type numericParser struct {
	emitter *diagnostics.Emitter[int]
	literal NumericLiteral

	radix Radix

	intPart      []byte
	intPartStart int
	fractPart    []byte
	exponentPart []byte
	// Offsets of fractPart / exponentPart within the source buffer.
	fractStart    int
	exponentStart int

	mantissaNeedsCleaning bool
	exponentNeedsCleaning bool
	exponentIsNegative    bool
}

func newNumericParser(emitter *diagnostics.Emitter[int], literal NumericLiteral) *numericParser {
	p := &numericParser{emitter: emitter, literal: literal, radix: Decimal}

	intPart := literal.text[:literal.radixPoint]
	p.intPartStart = literal.start
	if len(intPart) >= 2 && intPart[0] == '0' && (intPart[1] == 'x' || intPart[1] == 'b') {
		if intPart[1] == 'x' {
			p.radix = Hexadecimal
		} else {
			p.radix = Binary
		}
		intPart = intPart[2:]
		p.intPartStart += 2
	}
	p.intPart = intPart

	fractEnd := literal.exponent
	if literal.radixPoint < len(literal.text) {
		p.fractPart = literal.text[literal.radixPoint+1 : fractEnd]
		p.fractStart = literal.start + literal.radixPoint + 1
	}

	if literal.exponent < len(literal.text) {
		exponentPart := literal.text[literal.exponent+1:]
		p.exponentStart = literal.start + literal.exponent + 1
		if len(exponentPart) > 0 && exponentPart[0] == '+' {
			exponentPart = exponentPart[1:]
			p.exponentStart++
		} else if len(exponentPart) > 0 && exponentPart[0] == '-' {
			p.exponentIsNegative = true
			exponentPart = exponentPart[1:]
			p.exponentStart++
		}
		p.exponentPart = exponentPart
	}
	return p
}

func (p *numericParser) isInteger() bool {
	return p.literal.radixPoint == len(p.literal.text)
}

func (p *numericParser) check() bool {
	return p.checkLeadingZero() && p.checkIntPart() &&
		p.checkFractionalPart() && p.checkExponentPart()
}

// checkLeadingZero rejects a '0' prefix on a non-zero decimal integer
// part; it would be a base specifier we do not know.
func (p *numericParser) checkLeadingZero() bool {
	if p.radix == Decimal && len(p.intPart) > 1 && p.intPart[0] == '0' {
		p.emitter.Emit(p.intPartStart, errUnknownBaseSpecifier)
		return false
	}
	return true
}

func (p *numericParser) checkIntPart() bool {
	ok, hasSeparators := p.checkDigitSequence(p.intPart, p.intPartStart, p.radix, true)
	p.mantissaNeedsCleaning = p.mantissaNeedsCleaning || hasSeparators
	return ok
}

func (p *numericParser) checkFractionalPart() bool {
	if p.isInteger() {
		return true
	}
	if p.radix == Binary {
		p.emitter.Emit(p.literal.start+p.literal.radixPoint, errBinaryRealLiteral)
	}
	// The mantissa spans the radix point, which must be stripped before
	// value extraction.
	p.mantissaNeedsCleaning = true
	ok, _ := p.checkDigitSequence(p.fractPart, p.fractStart, p.radix, false)
	return ok
}

func (p *numericParser) checkExponentPart() bool {
	if p.literal.exponent == len(p.literal.text) {
		return true
	}

	expected := byte('e')
	if p.radix != Decimal {
		expected = 'p'
	}
	if p.literal.text[p.literal.exponent] != expected {
		p.emitter.Emit(p.literal.start+p.literal.exponent, errWrongRealLiteralExponent, expected)
		return false
	}

	ok, hasSeparators := p.checkDigitSequence(p.exponentPart, p.exponentStart, Decimal, true)
	p.exponentNeedsCleaning = hasSeparators
	return ok
}

// checkDigitSequence validates that text contains only digits of the
// radix plus well-placed '_' separators.
func (p *numericParser) checkDigitSequence(text []byte, start int, radix Radix, allowSeparators bool) (ok bool, hasSeparators bool) {
	numSeparators := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if isRadixDigit(c, radix) {
			continue
		}

		if c == '_' {
			// Separators may not lead, trail, or double up.
			if !allowSeparators || i == 0 || text[i-1] == '_' || i+1 == len(text) {
				p.emitter.Emit(start+i, errInvalidDigitSeparator)
			}
			numSeparators++
			continue
		}

		p.emitter.Emit(start+i, errInvalidDigit, c, radix)
		return false, false
	}

	if numSeparators == len(text) {
		p.emitter.Emit(start, errEmptyDigitSequence)
		return false, false
	}

	if numSeparators > 0 {
		p.checkDigitSeparatorPlacement(text, start, radix, numSeparators)
	}

	if !CanLexInteger(p.emitter, text, start) {
		return false, false
	}
	return true, numSeparators > 0
}

// checkDigitSeparatorPlacement enforces the regular grouping: decimal
// separators every 3 digits from the right, hexadecimal every 4. Binary
// placement is unconstrained.
func (p *numericParser) checkDigitSeparatorPlacement(text []byte, start int, radix Radix, numSeparators int) {
	if radix == Binary {
		return
	}

	stride := 4
	groups := 3
	if radix == Hexadecimal {
		stride = 5
		groups = 4
	}

	remaining := numSeparators
	pos := len(text)
	for pos >= stride {
		pos -= stride
		if text[pos] != '_' {
			p.emitter.Emit(start, errIrregularDigitSeparators, radix, groups)
			return
		}
		remaining--
	}
	if remaining != 0 {
		p.emitter.Emit(start, errIrregularDigitSeparators, radix, groups)
	}
}

func isRadixDigit(c byte, radix Radix) bool {
	switch radix {
	case Binary:
		return c == '0' || c == '1'
	case Decimal:
		return '0' <= c && c <= '9'
	case Hexadecimal:
		return IsUpperHexDigit(c)
	}
	return false
}

// parseInteger converts a validated digit sequence, dropping '_' and '.'
// when the sequence spans them.
func parseInteger(digits []byte, radix Radix, needsCleaning bool) *big.Int {
	if needsCleaning {
		cleaned := make([]byte, 0, len(digits))
		for _, c := range digits {
			if c != '_' && c != '.' {
				cleaned = append(cleaned, c)
			}
		}
		digits = cleaned
	}
	value, ok := new(big.Int).SetString(string(digits), int(radix))
	if !ok {
		panic("validated digit sequence failed to parse: " + string(digits))
	}
	return value
}

func (p *numericParser) mantissa() *big.Int {
	end := p.literal.radixPoint
	if !p.isInteger() {
		end = p.literal.exponent
	}
	digits := p.literal.text[p.intPartStart-p.literal.start : end]
	return parseInteger(digits, p.radix, p.mantissaNeedsCleaning)
}

// exponent computes the effective exponent: the written exponent (if
// any) minus one per fractional digit, times four for hexadecimal where
// each fractional digit is four bits of the binary exponent.
func (p *numericParser) exponent() *big.Int {
	exponent := big.NewInt(0)
	if len(p.exponentPart) > 0 {
		exponent = parseInteger(p.exponentPart, Decimal, p.exponentNeedsCleaning)
		if p.exponentIsNegative {
			exponent.Neg(exponent)
		}
	}

	excess := int64(len(p.fractPart))
	if p.radix == Hexadecimal {
		excess *= 4
	}
	return exponent.Sub(exponent, big.NewInt(excess))
}

// ComputeValue checks the literal and produces its value, or nil when
// the literal is unrecoverably malformed and must become an Error token.
func (l NumericLiteral) ComputeValue(emitter *diagnostics.Emitter[int]) NumericValue {
	p := newNumericParser(emitter, l)
	if !p.check() {
		return nil
	}

	if p.isInteger() {
		return IntegerValue{Value: p.mantissa()}
	}

	radix := Decimal
	if p.radix != Decimal {
		radix = Binary
	}
	return RealValue{Radix: radix, Mantissa: p.mantissa(), Exponent: p.exponent()}
}
