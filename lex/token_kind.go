package lex

// TokenKind is a one-byte tag identifying the category of a token. The
// set is closed; all per-kind properties are static tables generated
// from the single registry below.
type TokenKind uint8

const (
	// Error covers source text that failed to lex as any token. The
	// token records the length of the bad region.
	Error TokenKind = iota
	EndOfFile

	Identifier
	IntegerLiteral
	RealLiteral
	StringLiteral
	IntegerTypeLiteral
	UnsignedIntegerTypeLiteral
	FloatingPointTypeLiteral

	// Symbols, in descending spelling length. The lexer matches these by
	// first-match longest-prefix, so a spelling must come before any of
	// its own prefixes.
	GreaterGreaterEqual
	LessEqualGreater
	LessLessEqual
	AmpEqual
	CaretEqual
	ColonEqual
	ColonExclaim
	EqualEqual
	EqualGreater
	ExclaimEqual
	GreaterEqual
	GreaterGreater
	LessEqual
	LessGreater
	LessLess
	LessMinus
	MinusEqual
	MinusGreater
	MinusMinus
	PercentEqual
	PipeEqual
	PlusEqual
	PlusPlus
	SlashEqual
	StarEqual
	TildeEqual
	Amp
	At
	Backslash
	Caret
	Colon
	Comma
	Equal
	Exclaim
	Greater
	Less
	Minus
	Percent
	Period
	Pipe
	Plus
	Question
	Semi
	Slash
	Star
	Tilde

	// Grouping symbols. Openers and closers must pair up in the token
	// stream; the lexer balances them.
	OpenParen
	CloseParen
	OpenCurlyBrace
	CloseCurlyBrace
	OpenSquareBracket
	CloseSquareBracket

	// Keywords.
	Abstract
	Addr
	Alias
	And
	Api
	As
	Base
	Break
	Case
	Class
	Const
	Constraint
	Continue
	Default
	Else
	Final
	Fn
	For
	If
	Impl
	Import
	In
	Interface
	Let
	Library
	Match
	Namespace
	Not
	Or
	Package
	Private
	Protected
	Return
	Returned
	SelfValue
	SelfType
	StringKeyword
	Template
	Then
	Var
	Virtual
	While
	Where

	numTokenKinds
)

// Shapes of registry entries. Symbols carry a fixed spelling and are
// lexed by prefix matching; one-char symbols are additionally known not
// to begin any longer symbol, so the dispatch table can resolve them
// directly. Opening and closing entries name their counterpart.
const (
	entryPlain = iota
	entrySymbol
	entryOneCharSymbol
	entryOpeningSymbol
	entryClosingSymbol
	entryKeyword
)

type tokenKindEntry struct {
	kind        TokenKind
	name        string
	shape       int8
	spelling    string
	counterpart TokenKind
	// Upper bound on parse tree nodes anchored at one token of this
	// kind; used to pre-size the parse tree.
	treeSize int8
}

// tokenKindRegistry is the single source of truth for the catalogue.
// Order matters for symbols: the lexer tries spellings in this order.
var tokenKindRegistry = []tokenKindEntry{
	{kind: Error, name: "Error", shape: entryPlain, treeSize: 1},
	{kind: EndOfFile, name: "EndOfFile", shape: entryPlain, treeSize: 1},

	{kind: Identifier, name: "Identifier", shape: entryPlain, treeSize: 1},
	{kind: IntegerLiteral, name: "IntegerLiteral", shape: entryPlain, treeSize: 1},
	{kind: RealLiteral, name: "RealLiteral", shape: entryPlain, treeSize: 1},
	{kind: StringLiteral, name: "StringLiteral", shape: entryPlain, treeSize: 1},
	{kind: IntegerTypeLiteral, name: "IntegerTypeLiteral", shape: entryPlain, treeSize: 1},
	{kind: UnsignedIntegerTypeLiteral, name: "UnsignedIntegerTypeLiteral", shape: entryPlain, treeSize: 1},
	{kind: FloatingPointTypeLiteral, name: "FloatingPointTypeLiteral", shape: entryPlain, treeSize: 1},

	{kind: GreaterGreaterEqual, name: "GreaterGreaterEqual", shape: entrySymbol, spelling: ">>=", treeSize: 1},
	{kind: LessEqualGreater, name: "LessEqualGreater", shape: entrySymbol, spelling: "<=>", treeSize: 1},
	{kind: LessLessEqual, name: "LessLessEqual", shape: entrySymbol, spelling: "<<=", treeSize: 1},
	{kind: AmpEqual, name: "AmpEqual", shape: entrySymbol, spelling: "&=", treeSize: 1},
	{kind: CaretEqual, name: "CaretEqual", shape: entrySymbol, spelling: "^=", treeSize: 1},
	{kind: ColonEqual, name: "ColonEqual", shape: entrySymbol, spelling: ":=", treeSize: 1},
	{kind: ColonExclaim, name: "ColonExclaim", shape: entrySymbol, spelling: ":!", treeSize: 1},
	{kind: EqualEqual, name: "EqualEqual", shape: entrySymbol, spelling: "==", treeSize: 1},
	{kind: EqualGreater, name: "EqualGreater", shape: entrySymbol, spelling: "=>", treeSize: 1},
	{kind: ExclaimEqual, name: "ExclaimEqual", shape: entrySymbol, spelling: "!=", treeSize: 1},
	{kind: GreaterEqual, name: "GreaterEqual", shape: entrySymbol, spelling: ">=", treeSize: 1},
	{kind: GreaterGreater, name: "GreaterGreater", shape: entrySymbol, spelling: ">>", treeSize: 1},
	{kind: LessEqual, name: "LessEqual", shape: entrySymbol, spelling: "<=", treeSize: 1},
	{kind: LessGreater, name: "LessGreater", shape: entrySymbol, spelling: "<>", treeSize: 1},
	{kind: LessLess, name: "LessLess", shape: entrySymbol, spelling: "<<", treeSize: 1},
	{kind: LessMinus, name: "LessMinus", shape: entrySymbol, spelling: "<-", treeSize: 1},
	{kind: MinusEqual, name: "MinusEqual", shape: entrySymbol, spelling: "-=", treeSize: 1},
	{kind: MinusGreater, name: "MinusGreater", shape: entrySymbol, spelling: "->", treeSize: 1},
	{kind: MinusMinus, name: "MinusMinus", shape: entrySymbol, spelling: "--", treeSize: 1},
	{kind: PercentEqual, name: "PercentEqual", shape: entrySymbol, spelling: "%=", treeSize: 1},
	{kind: PipeEqual, name: "PipeEqual", shape: entrySymbol, spelling: "|=", treeSize: 1},
	{kind: PlusEqual, name: "PlusEqual", shape: entrySymbol, spelling: "+=", treeSize: 1},
	{kind: PlusPlus, name: "PlusPlus", shape: entrySymbol, spelling: "++", treeSize: 1},
	{kind: SlashEqual, name: "SlashEqual", shape: entrySymbol, spelling: "/=", treeSize: 1},
	{kind: StarEqual, name: "StarEqual", shape: entrySymbol, spelling: "*=", treeSize: 1},
	{kind: TildeEqual, name: "TildeEqual", shape: entrySymbol, spelling: "~=", treeSize: 1},
	{kind: Amp, name: "Amp", shape: entrySymbol, spelling: "&", treeSize: 1},
	{kind: At, name: "At", shape: entryOneCharSymbol, spelling: "@", treeSize: 1},
	{kind: Backslash, name: "Backslash", shape: entryOneCharSymbol, spelling: "\\", treeSize: 1},
	{kind: Caret, name: "Caret", shape: entrySymbol, spelling: "^", treeSize: 1},
	{kind: Colon, name: "Colon", shape: entrySymbol, spelling: ":", treeSize: 1},
	{kind: Comma, name: "Comma", shape: entryOneCharSymbol, spelling: ",", treeSize: 1},
	{kind: Equal, name: "Equal", shape: entrySymbol, spelling: "=", treeSize: 1},
	{kind: Exclaim, name: "Exclaim", shape: entrySymbol, spelling: "!", treeSize: 1},
	{kind: Greater, name: "Greater", shape: entrySymbol, spelling: ">", treeSize: 1},
	{kind: Less, name: "Less", shape: entrySymbol, spelling: "<", treeSize: 1},
	{kind: Minus, name: "Minus", shape: entrySymbol, spelling: "-", treeSize: 1},
	{kind: Percent, name: "Percent", shape: entrySymbol, spelling: "%", treeSize: 1},
	{kind: Period, name: "Period", shape: entryOneCharSymbol, spelling: ".", treeSize: 1},
	{kind: Pipe, name: "Pipe", shape: entrySymbol, spelling: "|", treeSize: 1},
	{kind: Plus, name: "Plus", shape: entrySymbol, spelling: "+", treeSize: 1},
	{kind: Question, name: "Question", shape: entryOneCharSymbol, spelling: "?", treeSize: 1},
	{kind: Semi, name: "Semi", shape: entryOneCharSymbol, spelling: ";", treeSize: 2},
	{kind: Slash, name: "Slash", shape: entrySymbol, spelling: "/", treeSize: 1},
	{kind: Star, name: "Star", shape: entrySymbol, spelling: "*", treeSize: 1},
	{kind: Tilde, name: "Tilde", shape: entrySymbol, spelling: "~", treeSize: 1},

	{kind: OpenParen, name: "OpenParen", shape: entryOpeningSymbol, spelling: "(", counterpart: CloseParen, treeSize: 2},
	{kind: CloseParen, name: "CloseParen", shape: entryClosingSymbol, spelling: ")", counterpart: OpenParen, treeSize: 2},
	{kind: OpenCurlyBrace, name: "OpenCurlyBrace", shape: entryOpeningSymbol, spelling: "{", counterpart: CloseCurlyBrace, treeSize: 2},
	{kind: CloseCurlyBrace, name: "CloseCurlyBrace", shape: entryClosingSymbol, spelling: "}", counterpart: OpenCurlyBrace, treeSize: 2},
	{kind: OpenSquareBracket, name: "OpenSquareBracket", shape: entryOpeningSymbol, spelling: "[", counterpart: CloseSquareBracket, treeSize: 2},
	{kind: CloseSquareBracket, name: "CloseSquareBracket", shape: entryClosingSymbol, spelling: "]", counterpart: OpenSquareBracket, treeSize: 2},

	{kind: Abstract, name: "Abstract", shape: entryKeyword, spelling: "abstract", treeSize: 2},
	{kind: Addr, name: "Addr", shape: entryKeyword, spelling: "addr", treeSize: 2},
	{kind: Alias, name: "Alias", shape: entryKeyword, spelling: "alias", treeSize: 2},
	{kind: And, name: "And", shape: entryKeyword, spelling: "and", treeSize: 1},
	{kind: Api, name: "Api", shape: entryKeyword, spelling: "api", treeSize: 1},
	{kind: As, name: "As", shape: entryKeyword, spelling: "as", treeSize: 1},
	{kind: Base, name: "Base", shape: entryKeyword, spelling: "base", treeSize: 2},
	{kind: Break, name: "Break", shape: entryKeyword, spelling: "break", treeSize: 2},
	{kind: Case, name: "Case", shape: entryKeyword, spelling: "case", treeSize: 2},
	{kind: Class, name: "Class", shape: entryKeyword, spelling: "class", treeSize: 2},
	{kind: Const, name: "Const", shape: entryKeyword, spelling: "const", treeSize: 1},
	{kind: Constraint, name: "Constraint", shape: entryKeyword, spelling: "constraint", treeSize: 2},
	{kind: Continue, name: "Continue", shape: entryKeyword, spelling: "continue", treeSize: 2},
	{kind: Default, name: "Default", shape: entryKeyword, spelling: "default", treeSize: 2},
	{kind: Else, name: "Else", shape: entryKeyword, spelling: "else", treeSize: 2},
	{kind: Final, name: "Final", shape: entryKeyword, spelling: "final", treeSize: 1},
	{kind: Fn, name: "Fn", shape: entryKeyword, spelling: "fn", treeSize: 2},
	{kind: For, name: "For", shape: entryKeyword, spelling: "for", treeSize: 2},
	{kind: If, name: "If", shape: entryKeyword, spelling: "if", treeSize: 2},
	{kind: Impl, name: "Impl", shape: entryKeyword, spelling: "impl", treeSize: 2},
	{kind: Import, name: "Import", shape: entryKeyword, spelling: "import", treeSize: 2},
	{kind: In, name: "In", shape: entryKeyword, spelling: "in", treeSize: 1},
	{kind: Interface, name: "Interface", shape: entryKeyword, spelling: "interface", treeSize: 2},
	{kind: Let, name: "Let", shape: entryKeyword, spelling: "let", treeSize: 2},
	{kind: Library, name: "Library", shape: entryKeyword, spelling: "library", treeSize: 2},
	{kind: Match, name: "Match", shape: entryKeyword, spelling: "match", treeSize: 2},
	{kind: Namespace, name: "Namespace", shape: entryKeyword, spelling: "namespace", treeSize: 2},
	{kind: Not, name: "Not", shape: entryKeyword, spelling: "not", treeSize: 1},
	{kind: Or, name: "Or", shape: entryKeyword, spelling: "or", treeSize: 1},
	{kind: Package, name: "Package", shape: entryKeyword, spelling: "package", treeSize: 2},
	{kind: Private, name: "Private", shape: entryKeyword, spelling: "private", treeSize: 1},
	{kind: Protected, name: "Protected", shape: entryKeyword, spelling: "protected", treeSize: 1},
	{kind: Return, name: "Return", shape: entryKeyword, spelling: "return", treeSize: 2},
	{kind: Returned, name: "Returned", shape: entryKeyword, spelling: "returned", treeSize: 2},
	{kind: SelfValue, name: "SelfValue", shape: entryKeyword, spelling: "self", treeSize: 1},
	{kind: SelfType, name: "SelfType", shape: entryKeyword, spelling: "Self", treeSize: 1},
	{kind: StringKeyword, name: "String", shape: entryKeyword, spelling: "String", treeSize: 1},
	{kind: Template, name: "Template", shape: entryKeyword, spelling: "template", treeSize: 2},
	{kind: Then, name: "Then", shape: entryKeyword, spelling: "then", treeSize: 2},
	{kind: Var, name: "Var", shape: entryKeyword, spelling: "var", treeSize: 2},
	{kind: Virtual, name: "Virtual", shape: entryKeyword, spelling: "virtual", treeSize: 1},
	{kind: While, name: "While", shape: entryKeyword, spelling: "while", treeSize: 2},
	{kind: Where, name: "Where", shape: entryKeyword, spelling: "where", treeSize: 1},
}

var (
	tokenKindNames       [numTokenKinds]string
	tokenKindSpellings   [numTokenKinds]string
	tokenKindIsSymbol    [numTokenKinds]bool
	tokenKindIsOneChar   [numTokenKinds]bool
	tokenKindIsKeyword   [numTokenKinds]bool
	tokenKindIsOpening   [numTokenKinds]bool
	tokenKindIsClosing   [numTokenKinds]bool
	tokenKindCounterpart [numTokenKinds]TokenKind
	tokenKindTreeSize    [numTokenKinds]int8

	// SymbolTokens lists symbol kinds in registry order: descending
	// spelling length, which the longest-prefix lexer relies on.
	SymbolTokens []TokenKind
	// KeywordTokens lists keyword kinds in registry order.
	KeywordTokens []TokenKind
)

// The tables are built during package variable initialization, which
// completes before any init function runs: the init in lexer.go reads
// SymbolTokens and KeywordTokens.
var tokenKindTablesBuilt = buildTokenKindTables()

func buildTokenKindTables() bool {
	for i, entry := range tokenKindRegistry {
		if TokenKind(i) != entry.kind {
			panic("token kind registry out of order: " + entry.name)
		}
		tokenKindNames[entry.kind] = entry.name
		tokenKindSpellings[entry.kind] = entry.spelling
		tokenKindCounterpart[entry.kind] = Error
		tokenKindTreeSize[entry.kind] = entry.treeSize
		switch entry.shape {
		case entrySymbol:
			tokenKindIsSymbol[entry.kind] = true
		case entryOneCharSymbol:
			tokenKindIsSymbol[entry.kind] = true
			tokenKindIsOneChar[entry.kind] = true
		case entryOpeningSymbol:
			tokenKindIsSymbol[entry.kind] = true
			tokenKindIsOneChar[entry.kind] = true
			tokenKindIsOpening[entry.kind] = true
			tokenKindCounterpart[entry.kind] = entry.counterpart
		case entryClosingSymbol:
			tokenKindIsSymbol[entry.kind] = true
			tokenKindIsOneChar[entry.kind] = true
			tokenKindIsClosing[entry.kind] = true
			tokenKindCounterpart[entry.kind] = entry.counterpart
		case entryKeyword:
			tokenKindIsKeyword[entry.kind] = true
		}
		if tokenKindIsSymbol[entry.kind] {
			SymbolTokens = append(SymbolTokens, entry.kind)
		}
		if tokenKindIsKeyword[entry.kind] {
			KeywordTokens = append(KeywordTokens, entry.kind)
		}
	}
	return true
}

// Name returns the kind's identifier-like name, as used in dumps.
func (k TokenKind) Name() string { return tokenKindNames[k] }

func (k TokenKind) String() string { return k.Name() }

// FixedSpelling returns the source spelling for symbols and keywords and
// the empty string for content-carrying kinds.
func (k TokenKind) FixedSpelling() string { return tokenKindSpellings[k] }

// IsSymbol reports whether this kind is a punctuation sequence lexed by
// prefix matching.
func (k TokenKind) IsSymbol() bool { return tokenKindIsSymbol[k] }

// IsOneCharSymbol reports symbols whose single character never begins a
// longer symbol, letting the dispatch table resolve them directly.
func (k TokenKind) IsOneCharSymbol() bool { return tokenKindIsOneChar[k] }

// IsKeyword reports whether this kind is a keyword.
func (k TokenKind) IsKeyword() bool { return tokenKindIsKeyword[k] }

// IsGroupingSymbol reports brackets that must match in the token stream.
func (k TokenKind) IsGroupingSymbol() bool {
	return tokenKindIsOpening[k] || tokenKindIsClosing[k]
}

// IsOpeningSymbol reports opening brackets.
func (k TokenKind) IsOpeningSymbol() bool { return tokenKindIsOpening[k] }

// IsClosingSymbol reports closing brackets.
func (k TokenKind) IsClosingSymbol() bool { return tokenKindIsClosing[k] }

// OpeningSymbol returns the opener matching a closing bracket kind.
func (k TokenKind) OpeningSymbol() TokenKind {
	if !tokenKindIsClosing[k] {
		panic("OpeningSymbol called on non-closing kind " + k.Name())
	}
	return tokenKindCounterpart[k]
}

// ClosingSymbol returns the closer matching an opening bracket kind.
func (k TokenKind) ClosingSymbol() TokenKind {
	if !tokenKindIsOpening[k] {
		panic("ClosingSymbol called on non-opening kind " + k.Name())
	}
	return tokenKindCounterpart[k]
}

// IsSizedTypeLiteral reports the `i`/`u`/`f` type literals.
func (k TokenKind) IsSizedTypeLiteral() bool {
	return k == IntegerTypeLiteral || k == UnsignedIntegerTypeLiteral ||
		k == FloatingPointTypeLiteral
}

// ExpectedParseTreeSize is the number of parse tree nodes a token of
// this kind can anchor; the parser uses the sum to reserve the tree.
func (k TokenKind) ExpectedParseTreeSize() int { return int(tokenKindTreeSize[k]) }

// IsOneOf reports membership in the given list.
func (k TokenKind) IsOneOf(kinds ...TokenKind) bool {
	for _, other := range kinds {
		if k == other {
			return true
		}
	}
	return false
}
