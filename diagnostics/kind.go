package diagnostics

// Kind identifies a distinct diagnostic message. The catalogue is closed:
// every message the front end can produce has exactly one kind here.
type Kind uint32

const (
	// Source acquisition.
	ErrorOpeningFile Kind = iota
	ErrorStattingFile
	FileTooLarge
	ErrorReadingFile

	// Lexical.
	TrailingComment
	NoWhitespaceAfterCommentIntroducer
	UnknownBaseSpecifier
	EmptyDigitSequence
	InvalidDigit
	InvalidDigitSeparator
	IrregularDigitSeparators
	TooManyDigits
	BinaryRealLiteral
	WrongRealLiteralExponent
	UnicodeEscapeTooLarge
	UnicodeEscapeSurrogate
	UnknownEscapeSequence
	DecimalEscapeSequence
	HexadecimalEscapeMissingDigits
	UnicodeEscapeMissingBracedDigits
	InvalidHorizontalWhitespaceInString
	ContentBeforeStringTerminator
	MismatchedIndentInString
	UnterminatedString
	MultiLineStringWithDoubleQuotes
	UnmatchedClosing
	MismatchedClosing
	UnrecognizedCharacters

	// Syntactic.
	ExpectedDeclarationName
	ExpectedDeclarationSemi
	ExpectedCodeBlock
	ExpectedExpression
	ExpectedArraySemi
	ExpectedParameterList
	ExpectedStructFieldValue
	ExpectedMatchCases
	ExpectedPatternName
	ExpectedPatternColon
	ExpectedLibraryName
	ExpectedPackageApi
	ExpectedParenAfter
	UnexpectedTokenAfterListElement
	UnrecognizedDeclaration
	OperatorRequiresParentheses
	ExpectedSemiAfterExpression
	ExpectedIdentifierAfterPeriod
)

var kindNames = [...]string{
	ErrorOpeningFile:                    "ErrorOpeningFile",
	ErrorStattingFile:                   "ErrorStattingFile",
	FileTooLarge:                        "FileTooLarge",
	ErrorReadingFile:                    "ErrorReadingFile",
	TrailingComment:                     "TrailingComment",
	NoWhitespaceAfterCommentIntroducer:  "NoWhitespaceAfterCommentIntroducer",
	UnknownBaseSpecifier:                "UnknownBaseSpecifier",
	EmptyDigitSequence:                  "EmptyDigitSequence",
	InvalidDigit:                        "InvalidDigit",
	InvalidDigitSeparator:               "InvalidDigitSeparator",
	IrregularDigitSeparators:            "IrregularDigitSeparators",
	TooManyDigits:                       "TooManyDigits",
	BinaryRealLiteral:                   "BinaryRealLiteral",
	WrongRealLiteralExponent:            "WrongRealLiteralExponent",
	UnicodeEscapeTooLarge:               "UnicodeEscapeTooLarge",
	UnicodeEscapeSurrogate:              "UnicodeEscapeSurrogate",
	UnknownEscapeSequence:               "UnknownEscapeSequence",
	DecimalEscapeSequence:               "DecimalEscapeSequence",
	HexadecimalEscapeMissingDigits:      "HexadecimalEscapeMissingDigits",
	UnicodeEscapeMissingBracedDigits:    "UnicodeEscapeMissingBracedDigits",
	InvalidHorizontalWhitespaceInString: "InvalidHorizontalWhitespaceInString",
	ContentBeforeStringTerminator:       "ContentBeforeStringTerminator",
	MismatchedIndentInString:            "MismatchedIndentInString",
	UnterminatedString:                  "UnterminatedString",
	MultiLineStringWithDoubleQuotes:     "MultiLineStringWithDoubleQuotes",
	UnmatchedClosing:                    "UnmatchedClosing",
	MismatchedClosing:                   "MismatchedClosing",
	UnrecognizedCharacters:              "UnrecognizedCharacters",
	ExpectedDeclarationName:             "ExpectedDeclarationName",
	ExpectedDeclarationSemi:             "ExpectedDeclarationSemi",
	ExpectedCodeBlock:                   "ExpectedCodeBlock",
	ExpectedExpression:                  "ExpectedExpression",
	ExpectedArraySemi:                   "ExpectedArraySemi",
	ExpectedParameterList:               "ExpectedParameterList",
	ExpectedStructFieldValue:            "ExpectedStructFieldValue",
	ExpectedMatchCases:                  "ExpectedMatchCases",
	ExpectedPatternName:                 "ExpectedPatternName",
	ExpectedPatternColon:                "ExpectedPatternColon",
	ExpectedLibraryName:                 "ExpectedLibraryName",
	ExpectedPackageApi:                  "ExpectedPackageApi",
	ExpectedParenAfter:                  "ExpectedParenAfter",
	UnexpectedTokenAfterListElement:     "UnexpectedTokenAfterListElement",
	UnrecognizedDeclaration:             "UnrecognizedDeclaration",
	OperatorRequiresParentheses:         "OperatorRequiresParentheses",
	ExpectedSemiAfterExpression:         "ExpectedSemiAfterExpression",
	ExpectedIdentifierAfterPeriod:       "ExpectedIdentifierAfterPeriod",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
