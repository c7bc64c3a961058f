package lex

import (
	"regexp"
	"strings"
	"testing"
)

func TestTokenKindNames(t *testing.T) {
	for _, entry := range tokenKindRegistry {
		if entry.kind.Name() == "" {
			t.Errorf("kind %d has no name", entry.kind)
		}
	}
}

func TestSymbolSpellings(t *testing.T) {
	symbolPattern := regexp.MustCompile(`^[\[\]{}!@#%^&*()/?\\|;:.,<>=+~-]+$`)
	for _, kind := range SymbolTokens {
		if !symbolPattern.MatchString(kind.FixedSpelling()) {
			t.Errorf("symbol %s has invalid spelling %q", kind.Name(), kind.FixedSpelling())
		}
	}
}

func TestKeywordSpellings(t *testing.T) {
	keywordPattern := regexp.MustCompile(`^([a-z_]+|Self|String)$`)
	for _, kind := range KeywordTokens {
		if !keywordPattern.MatchString(kind.FixedSpelling()) {
			t.Errorf("keyword %s has invalid spelling %q", kind.Name(), kind.FixedSpelling())
		}
	}
}

// The lexer takes the first symbol whose spelling prefixes the input,
// so no earlier symbol spelling may be a prefix of a later one.
func TestSymbolOrderSupportsLongestMatch(t *testing.T) {
	for i, earlier := range SymbolTokens {
		for _, later := range SymbolTokens[i+1:] {
			if strings.HasPrefix(later.FixedSpelling(), earlier.FixedSpelling()) {
				t.Errorf("symbol %s (%q) shadows %s (%q)",
					earlier.Name(), earlier.FixedSpelling(),
					later.Name(), later.FixedSpelling())
			}
		}
	}
}

func TestGroupingSymbols(t *testing.T) {
	tests := []struct {
		opening TokenKind
		closing TokenKind
	}{
		{OpenParen, CloseParen},
		{OpenCurlyBrace, CloseCurlyBrace},
		{OpenSquareBracket, CloseSquareBracket},
	}

	for _, tt := range tests {
		t.Run(tt.opening.Name(), func(t *testing.T) {
			if !tt.opening.IsOpeningSymbol() || !tt.opening.IsGroupingSymbol() {
				t.Errorf("%s is not an opening grouping symbol", tt.opening)
			}
			if !tt.closing.IsClosingSymbol() || !tt.closing.IsGroupingSymbol() {
				t.Errorf("%s is not a closing grouping symbol", tt.closing)
			}
			if tt.opening.ClosingSymbol() != tt.closing {
				t.Errorf("ClosingSymbol(%s) = %s", tt.opening, tt.opening.ClosingSymbol())
			}
			if tt.closing.OpeningSymbol() != tt.opening {
				t.Errorf("OpeningSymbol(%s) = %s", tt.closing, tt.closing.OpeningSymbol())
			}
		})
	}
}

func TestTokenKindPredicates(t *testing.T) {
	if !Fn.IsKeyword() || Fn.IsSymbol() {
		t.Errorf("fn misclassified")
	}
	if !Semi.IsSymbol() || !Semi.IsOneCharSymbol() {
		t.Errorf("semi misclassified")
	}
	if Minus.IsOneCharSymbol() {
		t.Errorf("minus begins longer symbols and must not be one-char")
	}
	if !IntegerTypeLiteral.IsSizedTypeLiteral() ||
		!UnsignedIntegerTypeLiteral.IsSizedTypeLiteral() ||
		!FloatingPointTypeLiteral.IsSizedTypeLiteral() {
		t.Errorf("sized type literals misclassified")
	}
	if IntegerLiteral.IsSizedTypeLiteral() {
		t.Errorf("IntegerLiteral is not a sized type literal")
	}
	if Identifier.FixedSpelling() != "" {
		t.Errorf("Identifier has fixed spelling %q", Identifier.FixedSpelling())
	}
}

func TestExpectedParseTreeSize(t *testing.T) {
	for _, entry := range tokenKindRegistry {
		size := entry.kind.ExpectedParseTreeSize()
		if size < 1 || size > 2 {
			t.Errorf("%s has expected parse tree size %d", entry.kind, size)
		}
	}
}
