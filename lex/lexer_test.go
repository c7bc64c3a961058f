package lex

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/source"
	"gopkg.in/yaml.v3"
)

func lexText(t *testing.T, text string) (*Buffer, *kindCollector) {
	t.Helper()
	collector := &kindCollector{}
	buffer := Lex(source.NewFromText(text, "test.zest"), collector)
	return buffer, collector
}

type expectedToken struct {
	kind   TokenKind
	line   int
	column int
	indent int
	text   string
}

func checkTokens(t *testing.T, buffer *Buffer, expected []expectedToken) {
	t.Helper()
	if buffer.Len() != len(expected)+1 {
		t.Fatalf("Len() = %d, want %d", buffer.Len(), len(expected)+1)
	}
	for i, want := range expected {
		token := Token(i)
		if got := buffer.Kind(token); got != want.kind {
			t.Errorf("token %d: kind = %v, want %v", i, got, want.kind)
		}
		if got := buffer.LineNumber(token); got != want.line {
			t.Errorf("token %d: line = %d, want %d", i, got, want.line)
		}
		if got := buffer.ColumnNumber(token); got != want.column {
			t.Errorf("token %d: column = %d, want %d", i, got, want.column)
		}
		if got := buffer.IndentColumnNumber(buffer.TokenLine(token)); got != want.indent {
			t.Errorf("token %d: indent = %d, want %d", i, got, want.indent)
		}
		if got := buffer.Text(token); got != want.text {
			t.Errorf("token %d: text = %q, want %q", i, got, want.text)
		}
	}
	if got := buffer.Kind(Token(buffer.Len() - 1)); got != EndOfFile {
		t.Errorf("last token kind = %v, want EndOfFile", got)
	}
}

func TestLexEmpty(t *testing.T) {
	buffer, collector := lexText(t, "")
	checkTokens(t, buffer, nil)
	if buffer.HasErrors() {
		t.Errorf("empty input reported errors")
	}
	if len(collector.kinds) != 0 {
		t.Errorf("unexpected diagnostics: %v", collector.kinds)
	}
}

func TestLexNumbersAndLines(t *testing.T) {
	buffer, collector := lexText(t, "12-578\n  1  2")
	checkTokens(t, buffer, []expectedToken{
		{IntegerLiteral, 1, 1, 1, "12"},
		{Minus, 1, 3, 1, "-"},
		{IntegerLiteral, 1, 4, 1, "578"},
		{IntegerLiteral, 2, 3, 3, "1"},
		{IntegerLiteral, 2, 6, 3, "2"},
	})
	values := []int64{12, 0, 578, 1, 2}
	for i, want := range values {
		if buffer.Kind(Token(i)) != IntegerLiteral {
			continue
		}
		if got := buffer.IntegerLiteralValue(Token(i)); got.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("token %d: value = %s, want %d", i, got, want)
		}
	}
	if len(collector.kinds) != 0 {
		t.Errorf("unexpected diagnostics: %v", collector.kinds)
	}
	if buffer.HasErrors() {
		t.Errorf("buffer reported errors")
	}
}

func TestLexMatchedBrackets(t *testing.T) {
	buffer, collector := lexText(t, "((()()))")
	pairs := [][2]int{{0, 7}, {1, 6}, {2, 3}, {4, 5}}
	for _, pair := range pairs {
		opening, closing := Token(pair[0]), Token(pair[1])
		if got := buffer.MatchedClosingToken(opening); got != closing {
			t.Errorf("MatchedClosingToken(%d) = %d, want %d", opening, got, closing)
		}
		if got := buffer.MatchedOpeningToken(closing); got != opening {
			t.Errorf("MatchedOpeningToken(%d) = %d, want %d", closing, got, opening)
		}
	}
	if len(collector.kinds) != 0 || buffer.HasErrors() {
		t.Errorf("bracket matching reported errors: %v", collector.kinds)
	}
}

func TestLexBracketRecovery(t *testing.T) {
	buffer, collector := lexText(t, ")({)")

	kinds := []TokenKind{Error, OpenParen, OpenCurlyBrace, CloseCurlyBrace, CloseParen, EndOfFile}
	if buffer.Len() != len(kinds) {
		t.Fatalf("Len() = %d, want %d", buffer.Len(), len(kinds))
	}
	for i, want := range kinds {
		if got := buffer.Kind(Token(i)); got != want {
			t.Errorf("token %d: kind = %v, want %v", i, got, want)
		}
	}

	if !buffer.IsRecoveryToken(Token(3)) {
		t.Errorf("fabricated close curly is not marked as recovery")
	}
	if buffer.IsRecoveryToken(Token(4)) {
		t.Errorf("real close paren marked as recovery")
	}
	if got := buffer.MatchedOpeningToken(Token(3)); got != Token(2) {
		t.Errorf("MatchedOpeningToken(3) = %d, want 2", got)
	}
	if got := buffer.MatchedClosingToken(Token(1)); got != Token(4) {
		t.Errorf("MatchedClosingToken(1) = %d, want 4", got)
	}

	if !collector.has(diagnostics.UnmatchedClosing) {
		t.Errorf("missing UnmatchedClosing diagnostic: %v", collector.kinds)
	}
	if !collector.has(diagnostics.MismatchedClosing) {
		t.Errorf("missing MismatchedClosing diagnostic: %v", collector.kinds)
	}
	if !buffer.HasErrors() {
		t.Errorf("buffer did not report errors")
	}
}

func TestLexUnclosedGroupAtEndOfFile(t *testing.T) {
	buffer, collector := lexText(t, "(")
	kinds := []TokenKind{OpenParen, CloseParen, EndOfFile}
	for i, want := range kinds {
		if got := buffer.Kind(Token(i)); got != want {
			t.Errorf("token %d: kind = %v, want %v", i, got, want)
		}
	}
	if !buffer.IsRecoveryToken(Token(1)) {
		t.Errorf("synthetic closer not marked as recovery")
	}
	if !collector.has(diagnostics.MismatchedClosing) {
		t.Errorf("missing MismatchedClosing diagnostic: %v", collector.kinds)
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"fn", Fn},
		{"var", Var},
		{"if", If},
		{"and", And},
		{"Self", SelfType},
		{"String", StringKeyword},
		{"self", SelfValue},
		{"foo", Identifier},
		{"_bar", Identifier},
		{"if76", Identifier},
		{"iff", Identifier},
		{"i0", Identifier},
		{"fn_", Identifier},
		{"i32", IntegerTypeLiteral},
		{"u8", UnsignedIntegerTypeLiteral},
		{"f64", FloatingPointTypeLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			buffer, _ := lexText(t, tt.input)
			if got := buffer.Kind(Token(0)); got != tt.kind {
				t.Errorf("kind = %v, want %v", got, tt.kind)
			}
			if got := buffer.Text(Token(0)); got != tt.input {
				t.Errorf("text = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestLexTypeLiteralSizes(t *testing.T) {
	buffer, _ := lexText(t, "i32 u8 f64")
	sizes := []int64{32, 8, 64}
	for i, want := range sizes {
		if got := buffer.TypeLiteralSize(Token(i)); got.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("token %d: size = %s, want %d", i, got, want)
		}
	}
}

func TestLexIdentifierInterning(t *testing.T) {
	buffer, _ := lexText(t, "foo bar foo")
	first := buffer.TokenIdentifier(Token(0))
	second := buffer.TokenIdentifier(Token(1))
	third := buffer.TokenIdentifier(Token(2))
	if first == second {
		t.Errorf("distinct identifiers interned together")
	}
	if first != third {
		t.Errorf("same identifier interned twice: %d vs %d", first, third)
	}
	if got := buffer.IdentifierText(first); got != "foo" {
		t.Errorf("IdentifierText = %q, want %q", got, "foo")
	}
}

func TestLexTrailingSpace(t *testing.T) {
	buffer, _ := lexText(t, "a b")
	if !buffer.HasTrailingWhitespace(Token(0)) {
		t.Errorf("token 0 should have trailing space")
	}
	// The end of file counts as whitespace.
	if !buffer.HasTrailingWhitespace(Token(1)) {
		t.Errorf("token before EOF should have trailing space")
	}
	if !buffer.HasLeadingWhitespace(Token(1)) {
		t.Errorf("token 1 should have leading space")
	}
	if buffer.HasLeadingWhitespace(Token(1)) != buffer.HasTrailingWhitespace(Token(0)) {
		t.Errorf("leading/trailing disagree")
	}
}

func TestLexComments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kinds  []diagnostics.Kind
		tokens int
	}{
		{"own line", "// a comment\nx", nil, 2},
		{"trailing", "x // c", []diagnostics.Kind{diagnostics.TrailingComment}, 2},
		{"no space", "//x", []diagnostics.Kind{diagnostics.NoWhitespaceAfterCommentIntroducer}, 1},
		{"at eof", "//", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffer, collector := lexText(t, tt.input)
			if buffer.Len() != tt.tokens {
				t.Errorf("Len() = %d, want %d", buffer.Len(), tt.tokens)
			}
			for _, kind := range tt.kinds {
				if !collector.has(kind) {
					t.Errorf("diagnostics = %v, want %v", collector.kinds, kind)
				}
			}
			if len(collector.kinds) != len(tt.kinds) {
				t.Errorf("diagnostics = %v, want %d of them", collector.kinds, len(tt.kinds))
			}
		})
	}
}

func TestLexSymbols(t *testing.T) {
	buffer, collector := lexText(t, "x+=y<=>z->w")
	kinds := []TokenKind{Identifier, PlusEqual, Identifier, LessEqualGreater, Identifier, MinusGreater, Identifier, EndOfFile}
	if buffer.Len() != len(kinds) {
		t.Fatalf("Len() = %d, want %d", buffer.Len(), len(kinds))
	}
	for i, want := range kinds {
		if got := buffer.Kind(Token(i)); got != want {
			t.Errorf("token %d: kind = %v, want %v", i, got, want)
		}
	}
	if len(collector.kinds) != 0 {
		t.Errorf("unexpected diagnostics: %v", collector.kinds)
	}
}

func TestLexStringLiteralToken(t *testing.T) {
	buffer, collector := lexText(t, `x = "hello"`)
	if got := buffer.Kind(Token(2)); got != StringLiteral {
		t.Fatalf("token 2 kind = %v, want StringLiteral", got)
	}
	if got := buffer.StringLiteralValue(Token(2)); got != "hello" {
		t.Errorf("value = %q, want %q", got, "hello")
	}
	if got := buffer.Text(Token(2)); got != `"hello"` {
		t.Errorf("text = %q, want %q", got, `"hello"`)
	}
	if len(collector.kinds) != 0 {
		t.Errorf("unexpected diagnostics: %v", collector.kinds)
	}
}

func TestLexMultiLineStringColumns(t *testing.T) {
	buffer, _ := lexText(t, "'''\n  hi\n  ''' x")
	if got := buffer.Kind(Token(0)); got != StringLiteral {
		t.Fatalf("token 0 kind = %v, want StringLiteral", got)
	}
	if got := buffer.StringLiteralValue(Token(0)); got != "hi\n" {
		t.Errorf("value = %q, want %q", got, "hi\n")
	}
	// The identifier after the literal is on line 3.
	if got := buffer.LineNumber(Token(1)); got != 3 {
		t.Errorf("line = %d, want 3", got)
	}
	if got := buffer.ColumnNumber(Token(1)); got != 7 {
		t.Errorf("column = %d, want 7", got)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	buffer, collector := lexText(t, `"abc`)
	if got := buffer.Kind(Token(0)); got != Error {
		t.Fatalf("kind = %v, want Error", got)
	}
	if got := buffer.Text(Token(0)); got != `"abc` {
		t.Errorf("text = %q, want %q", got, `"abc`)
	}
	if !collector.has(diagnostics.UnterminatedString) {
		t.Errorf("diagnostics = %v, want UnterminatedString", collector.kinds)
	}
}

func TestLexUnrecognizedCharacters(t *testing.T) {
	buffer, collector := lexText(t, "$$é x")
	if got := buffer.Kind(Token(0)); got != Error {
		t.Fatalf("kind = %v, want Error", got)
	}
	if !collector.has(diagnostics.UnrecognizedCharacters) {
		t.Errorf("diagnostics = %v, want UnrecognizedCharacters", collector.kinds)
	}
	if !buffer.HasErrors() {
		t.Errorf("buffer did not report errors")
	}
}

func TestLexDiagnosticLocation(t *testing.T) {
	collector := &locationCollector{}
	Lex(source.NewFromText("x = $\ny = 2\n", "loc.zest"), collector)
	if len(collector.locations) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(collector.locations))
	}
	loc := collector.locations[0]
	if loc.File != "loc.zest" {
		t.Errorf("file = %q, want loc.zest", loc.File)
	}
	if loc.LineNumber != 1 || loc.ColumnNumber != 5 {
		t.Errorf("position = %d:%d, want 1:5", loc.LineNumber, loc.ColumnNumber)
	}
	if loc.Line != "x = $" {
		t.Errorf("line = %q, want %q", loc.Line, "x = $")
	}
}

type locationCollector struct {
	locations []diagnostics.Location
}

func (c *locationCollector) HandleDiagnostic(d diagnostics.Diagnostic) {
	c.locations = append(c.locations, d.Location)
}

func (c *locationCollector) Flush() {}

// Every non-fabricated token's text appears verbatim at the position
// the buffer records for it.
func TestTokenTextMatchesSource(t *testing.T) {
	text := "fn F(a: i32) -> i32 {\n  var x: i32 = a * 2;\n  return x;\n}\n"
	buffer, collector := lexText(t, text)
	if len(collector.kinds) != 0 {
		t.Fatalf("unexpected diagnostics: %v", collector.kinds)
	}

	for i := 0; i < buffer.Len(); i++ {
		token := Token(i)
		if buffer.IsRecoveryToken(token) || buffer.Kind(token) == EndOfFile {
			continue
		}
		start := buffer.LineStart(buffer.TokenLine(token)) + buffer.ColumnNumber(token) - 1
		spelling := buffer.Text(token)
		if got := text[start : start+len(spelling)]; got != spelling {
			t.Errorf("token %d: source has %q at %d, token text is %q", i, got, start, spelling)
		}
	}
}

func TestTokenDumpIsYAML(t *testing.T) {
	buffer, _ := lexText(t, "fn F(x: y);")

	var out bytes.Buffer
	buffer.Print(&out)

	var parsed []struct {
		Filename string           `yaml:"filename"`
		Tokens   []map[string]any `yaml:"tokens"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &parsed); err != nil {
		t.Fatalf("dump is not parseable YAML: %v\n%s", err, out.String())
	}
	if len(parsed) != 1 {
		t.Fatalf("documents = %d, want 1", len(parsed))
	}
	if parsed[0].Filename != "test.zest" {
		t.Errorf("filename = %q", parsed[0].Filename)
	}
	if len(parsed[0].Tokens) != buffer.Len() {
		t.Errorf("dumped %d tokens, want %d", len(parsed[0].Tokens), buffer.Len())
	}
	first := parsed[0].Tokens[0]
	if first["kind"] != "Fn" || first["spelling"] != "fn" {
		t.Errorf("first token = %v", first)
	}
	if !strings.Contains(out.String(), "closing_token:") {
		t.Errorf("dump is missing bracket cross-links:\n%s", out.String())
	}
}
