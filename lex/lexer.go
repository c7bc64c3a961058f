package lex

import (
	"bytes"
	"math/big"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/source"
)

var (
	errTrailingComment = diagnostics.Descriptor{
		Kind: diagnostics.TrailingComment, Level: diagnostics.Error,
		Format: "trailing comments are not permitted"}
	errNoWhitespaceAfterCommentIntroducer = diagnostics.Descriptor{
		Kind: diagnostics.NoWhitespaceAfterCommentIntroducer, Level: diagnostics.Error,
		Format: "whitespace is required after '//'"}
	errUnmatchedClosing = diagnostics.Descriptor{
		Kind: diagnostics.UnmatchedClosing, Level: diagnostics.Error,
		Format: "closing symbol without a corresponding opening symbol"}
	errMismatchedClosing = diagnostics.Descriptor{
		Kind: diagnostics.MismatchedClosing, Level: diagnostics.Error,
		Format: "closing symbol does not match most recent opening symbol"}
	errUnrecognizedCharacters = diagnostics.Descriptor{
		Kind: diagnostics.UnrecognizedCharacters, Level: diagnostics.Error,
		Format: "encountered unrecognized characters while parsing"}
)

// lexer walks the source buffer once, front to back, appending tokens
// and line records to the buffer under construction.
type lexer struct {
	buffer       *Buffer
	emitter      *diagnostics.Emitter[int]
	tokenEmitter *diagnostics.Emitter[Token]

	text []byte
	pos  int

	currentLine   Line
	currentColumn int
	setIndent     bool

	// Opening bracket tokens whose closers have not been seen yet.
	openGroups []Token
}

// Lex tokenizes a source buffer. Malformed input never stops the lexer;
// it produces Error tokens and diagnostics and keeps going to EOF.
func Lex(src *source.Buffer, consumer diagnostics.Consumer) *Buffer {
	buffer := newBuffer(src)
	tracking := diagnostics.NewErrorTrackingConsumer(consumer)

	lx := &lexer{
		buffer: buffer,
		text:   src.Text(),
	}
	lx.emitter = diagnostics.NewEmitter[int](NewSourceLocationTranslator(buffer), tracking)
	lx.tokenEmitter = diagnostics.NewEmitter[Token](NewTokenLocationTranslator(buffer), tracking)
	lx.currentLine = buffer.addLine(lineInfo{start: 0, length: lineLengthUnknown})

	for lx.skipWhitespace() {
		dispatchTable[lx.text[lx.pos]](lx)
	}

	// The end of file counts as whitespace.
	lx.noteWhitespace()
	lx.closeInvalidOpenGroups(Error)
	lx.addEndOfFileToken()

	if tracking.SeenError() {
		buffer.hasErrors = true
	}
	return buffer
}

func newTokenInfo(kind TokenKind, line Line, column int) tokenInfo {
	return tokenInfo{
		kind:         kind,
		line:         line,
		column:       int32(column),
		literalIndex: -1,
		id:           InvalidIdentifier,
		closingToken: InvalidToken,
		openingToken: InvalidToken,
	}
}

func (lx *lexer) lineInfo() *lineInfo {
	return &lx.buffer.lineInfos[lx.currentLine]
}

// handleNewline closes the current line record and opens the next one.
func (lx *lexer) handleNewline() {
	info := lx.lineInfo()
	info.length = lx.currentColumn
	lx.currentLine = lx.buffer.addLine(lineInfo{
		start:  info.start + lx.currentColumn + 1,
		length: lineLengthUnknown,
	})
	lx.currentColumn = 0
	lx.setIndent = false
}

func (lx *lexer) noteWhitespace() {
	if len(lx.buffer.tokenInfos) > 0 {
		lx.buffer.tokenInfos[len(lx.buffer.tokenInfos)-1].hasTrailingSpace = true
	}
}

func (lx *lexer) markIndent() {
	if !lx.setIndent {
		lx.lineInfo().indent = lx.currentColumn
		lx.setIndent = true
	}
}

// skipWhitespace advances over spaces, tabs, newlines, and comments.
// It reports whether a token follows.
func (lx *lexer) skipWhitespace() bool {
	whitespaceStart := lx.pos

	for lx.pos < len(lx.text) {
		if bytes.HasPrefix(lx.text[lx.pos:], []byte("//")) {
			// A comment must be the only non-whitespace on its line.
			if lx.setIndent {
				lx.emitter.Emit(lx.pos, errTrailingComment)
			}
			if lx.pos+2 < len(lx.text) && !IsSpace(lx.text[lx.pos+2]) {
				lx.emitter.Emit(lx.pos+2, errNoWhitespaceAfterCommentIntroducer)
			}
			for lx.pos < len(lx.text) && lx.text[lx.pos] != '\n' {
				lx.currentColumn++
				lx.pos++
			}
			if lx.pos == len(lx.text) {
				break
			}
		}

		switch lx.text[lx.pos] {
		case '\n':
			lx.pos++
			if lx.pos == len(lx.text) {
				lx.lineInfo().length = lx.currentColumn
				return false
			}
			lx.handleNewline()

		case ' ', '\t':
			lx.currentColumn++
			lx.pos++

		default:
			if whitespaceStart != lx.pos {
				lx.noteWhitespace()
			}
			return true
		}
	}

	lx.lineInfo().length = lx.currentColumn
	return false
}

func (lx *lexer) lexNumericLiteral() {
	literal, ok := LexNumericLiteral(lx.text, lx.pos)
	if !ok {
		lx.lexError()
		return
	}

	lx.markIndent()
	column := lx.currentColumn
	tokenSize := len(literal.Text())
	lx.currentColumn += tokenSize
	lx.pos += tokenSize

	switch value := literal.ComputeValue(lx.emitter).(type) {
	case IntegerValue:
		info := newTokenInfo(IntegerLiteral, lx.currentLine, column)
		info.literalIndex = int32(len(lx.buffer.literalInts))
		lx.buffer.literalInts = append(lx.buffer.literalInts, value.Value)
		lx.buffer.addToken(info)

	case RealValue:
		info := newTokenInfo(RealLiteral, lx.currentLine, column)
		info.literalIndex = int32(len(lx.buffer.literalInts))
		lx.buffer.literalInts = append(lx.buffer.literalInts, value.Mantissa, value.Exponent)
		lx.buffer.addToken(info)

	default:
		info := newTokenInfo(Error, lx.currentLine, column)
		info.errorLength = int32(tokenSize)
		lx.buffer.addToken(info)
	}
}

func (lx *lexer) lexStringLiteral() {
	start := lx.pos
	literal, ok := LexStringLiteral(lx.text, lx.pos)
	if !ok {
		lx.lexError()
		return
	}

	stringLine := lx.currentLine
	stringColumn := lx.currentColumn
	literalSize := len(literal.Text())
	lx.pos += literalSize
	lx.markIndent()

	if !literal.IsMultiLine() {
		lx.currentColumn += literalSize
	} else {
		// Lines inside a multi-line literal inherit its indent.
		for _, c := range literal.Text() {
			if c == '\n' {
				lx.handleNewline()
				lx.lineInfo().indent = stringColumn
				lx.setIndent = true
			} else {
				lx.currentColumn++
			}
		}
	}

	if literal.IsTerminated() {
		info := newTokenInfo(StringLiteral, stringLine, stringColumn)
		info.literalIndex = int32(len(lx.buffer.literalStrings))
		lx.buffer.literalStrings = append(lx.buffer.literalStrings, literal.ComputeValue(lx.emitter))
		lx.buffer.addToken(info)
		return
	}

	lx.emitter.Emit(start, errUnterminatedString)
	info := newTokenInfo(Error, stringLine, stringColumn)
	info.errorLength = int32(literalSize)
	lx.buffer.addToken(info)
}

// computeSymbolKind finds the longest symbol spelling prefixing text.
// Symbol registry order makes the first match the longest one.
func computeSymbolKind(text []byte) TokenKind {
	for _, kind := range SymbolTokens {
		if bytes.HasPrefix(text, []byte(kind.FixedSpelling())) {
			return kind
		}
	}
	return Error
}

func (lx *lexer) lexSymbolToken(kind TokenKind) {
	if kind == Error {
		kind = computeSymbolKind(lx.text[lx.pos:])
		if kind == Error {
			lx.lexError()
			return
		}
	}

	lx.markIndent()
	lx.closeInvalidOpenGroups(kind)

	location := lx.pos
	token := lx.buffer.addToken(newTokenInfo(kind, lx.currentLine, lx.currentColumn))
	lx.currentColumn += len(kind.FixedSpelling())
	lx.pos += len(kind.FixedSpelling())

	if kind.IsOpeningSymbol() {
		lx.openGroups = append(lx.openGroups, token)
		return
	}
	if !kind.IsClosingSymbol() {
		return
	}

	closingInfo := &lx.buffer.tokenInfos[token]

	if len(lx.openGroups) == 0 {
		closingInfo.kind = Error
		closingInfo.errorLength = int32(len(kind.FixedSpelling()))
		lx.emitter.Emit(location, errUnmatchedClosing)
		return
	}

	openingToken := lx.openGroups[len(lx.openGroups)-1]
	lx.openGroups = lx.openGroups[:len(lx.openGroups)-1]
	lx.buffer.tokenInfos[openingToken].closingToken = token
	closingInfo.openingToken = openingToken
}

// closeInvalidOpenGroups pops every open group that cannot stay open
// once kind appears, fabricating a recovery closer for each. Passing
// Error closes everything; the lexer does that at EOF.
func (lx *lexer) closeInvalidOpenGroups(kind TokenKind) {
	if !kind.IsClosingSymbol() && kind != Error {
		return
	}

	for len(lx.openGroups) > 0 {
		openingToken := lx.openGroups[len(lx.openGroups)-1]
		openingKind := lx.buffer.tokenInfos[openingToken].kind
		if kind == openingKind.ClosingSymbol() {
			return
		}

		lx.openGroups = lx.openGroups[:len(lx.openGroups)-1]
		lx.tokenEmitter.Emit(openingToken, errMismatchedClosing)

		prevToken := Token(len(lx.buffer.tokenInfos) - 1)
		info := newTokenInfo(openingKind.ClosingSymbol(), lx.currentLine, lx.currentColumn)
		info.hasTrailingSpace = lx.buffer.HasTrailingWhitespace(prevToken)
		info.isRecovery = true
		closingToken := lx.buffer.addToken(info)

		lx.buffer.tokenInfos[openingToken].closingToken = closingToken
		lx.buffer.tokenInfos[closingToken].openingToken = openingToken
	}
}

func (lx *lexer) getOrCreateIdentifier(text []byte) IdentifierID {
	if id, ok := lx.buffer.identifierMap[string(text)]; ok {
		return id
	}
	id := IdentifierID(len(lx.buffer.identifierTexts))
	spelling := string(text)
	lx.buffer.identifierTexts = append(lx.buffer.identifierTexts, spelling)
	lx.buffer.identifierMap[spelling] = id
	return id
}

// lexWordAsTypeLiteral interprets an already-scanned word as a sized
// type literal (`i32`, `u8`, `f64`). Reports false when the word is not
// one.
func (lx *lexer) lexWordAsTypeLiteral(word []byte, column int, offset int) bool {
	if len(word) < 2 {
		return false
	}
	if word[1] < '1' || word[1] > '9' {
		return false
	}

	var kind TokenKind
	switch word[0] {
	case 'i':
		kind = IntegerTypeLiteral
	case 'u':
		kind = UnsignedIntegerTypeLiteral
	case 'f':
		kind = FloatingPointTypeLiteral
	default:
		return false
	}

	suffix := word[1:]
	for _, c := range suffix {
		if !IsDecimalDigit(c) {
			return false
		}
	}

	if !CanLexInteger(lx.emitter, suffix, offset+1) {
		info := newTokenInfo(Error, lx.currentLine, column)
		info.errorLength = int32(len(word))
		lx.buffer.addToken(info)
		return true
	}

	value, ok := new(big.Int).SetString(string(suffix), 10)
	if !ok {
		return false
	}

	info := newTokenInfo(kind, lx.currentLine, column)
	info.literalIndex = int32(len(lx.buffer.literalInts))
	lx.buffer.literalInts = append(lx.buffer.literalInts, value)
	lx.buffer.addToken(info)
	return true
}

func (lx *lexer) lexKeywordOrIdentifier() {
	if lx.text[lx.pos] > 0x7F {
		// Non-ASCII identifiers are rejected until Unicode identifier
		// rules are decided.
		lx.lexError()
		return
	}

	lx.markIndent()

	offset := lx.pos
	length := scanIdentifierPrefix(lx.text[lx.pos:])
	word := lx.text[lx.pos : lx.pos+length]
	column := lx.currentColumn
	lx.currentColumn += length
	lx.pos += length

	if lx.lexWordAsTypeLiteral(word, column, offset) {
		return
	}

	if kind, ok := keywordTable[string(word)]; ok {
		lx.buffer.addToken(newTokenInfo(kind, lx.currentLine, column))
		return
	}

	info := newTokenInfo(Identifier, lx.currentLine, column)
	info.id = lx.getOrCreateIdentifier(word)
	lx.buffer.addToken(info)
}

// lexError consumes a run of error bytes (see errorByteTable), at least
// one byte long, and produces a single Error token covering it.
func (lx *lexer) lexError() {
	start := lx.pos
	end := start
	for end < len(lx.text) && errorByteTable[lx.text[end]] {
		end++
	}
	if end == start {
		end = start + 1
	}
	length := end - start

	info := newTokenInfo(Error, lx.currentLine, lx.currentColumn)
	info.errorLength = int32(length)
	lx.buffer.addToken(info)
	lx.emitter.Emit(start, errUnrecognizedCharacters)

	lx.currentColumn += length
	lx.pos = end
}

func (lx *lexer) addEndOfFileToken() {
	lx.buffer.addToken(newTokenInfo(EndOfFile, lx.currentLine, lx.currentColumn))
}

// isIDByte classifies [0-9A-Za-z_]; the scalar form of the nibble-LUT
// classification. Identifiers are scanned one byte at a time.
var isIDByte [256]bool

// scanIdentifierPrefix returns the length of the identifier at the
// front of text.
func scanIdentifierPrefix(text []byte) int {
	i := 0
	for i < len(text) && isIDByte[text[i]] {
		i++
	}
	return i
}

// errorByteTable marks the bytes an error run extends over: every byte
// except identifier bytes, tabs, newlines, and the first bytes of
// symbols. Spaces and the string introducers ' " # are in the set.
var errorByteTable [256]bool

var keywordTable map[string]TokenKind

// dispatchTable routes the first byte after whitespace to the lexing
// routine for the token it must begin.
var dispatchTable [256]func(*lexer)

func init() {
	for c := '0'; c <= '9'; c++ {
		isIDByte[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		isIDByte[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		isIDByte[c] = true
	}
	isIDByte['_'] = true

	for i := range errorByteTable {
		errorByteTable[i] = true
	}
	for i := range isIDByte {
		if isIDByte[i] {
			errorByteTable[i] = false
		}
	}
	errorByteTable['\t'] = false
	errorByteTable['\n'] = false
	for _, kind := range SymbolTokens {
		errorByteTable[kind.FixedSpelling()[0]] = false
	}

	keywordTable = make(map[string]TokenKind, len(KeywordTokens))
	for _, kind := range KeywordTokens {
		keywordTable[kind.FixedSpelling()] = kind
	}

	for i := range dispatchTable {
		dispatchTable[i] = func(lx *lexer) { lx.lexError() }
	}
	for _, kind := range SymbolTokens {
		if !kind.IsOneCharSymbol() {
			dispatchTable[kind.FixedSpelling()[0]] = func(lx *lexer) { lx.lexSymbolToken(Error) }
		}
	}
	// One-character symbols never share a first byte with a longer
	// symbol, so the dispatch can resolve their kind directly.
	for _, kind := range SymbolTokens {
		if kind.IsOneCharSymbol() {
			k := kind
			dispatchTable[k.FixedSpelling()[0]] = func(lx *lexer) { lx.lexSymbolToken(k) }
		}
	}
	lexWord := func(lx *lexer) { lx.lexKeywordOrIdentifier() }
	dispatchTable['_'] = lexWord
	for c := 'a'; c <= 'z'; c++ {
		dispatchTable[c] = lexWord
	}
	for c := 'A'; c <= 'Z'; c++ {
		dispatchTable[c] = lexWord
	}
	for i := 0x80; i < 0x100; i++ {
		dispatchTable[i] = lexWord
	}
	for c := '0'; c <= '9'; c++ {
		dispatchTable[c] = func(lx *lexer) { lx.lexNumericLiteral() }
	}
	lexString := func(lx *lexer) { lx.lexStringLiteral() }
	dispatchTable['\''] = lexString
	dispatchTable['"'] = lexString
	dispatchTable['#'] = lexString
}
