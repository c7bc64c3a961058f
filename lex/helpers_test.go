package lex

import (
	"strings"
	"testing"

	"github.com/dhamidi/zest/diagnostics"
)

func newTestEmitter(consumer diagnostics.Consumer) *diagnostics.Emitter[int] {
	return diagnostics.NewEmitter[int](nullLocationTranslator{}, consumer)
}

func TestUnescapeStringLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"plain", "plain", true},
		{`a\nb`, "a\nb", true},
		{`\t\r\"\'\\`, "\t\r\"'\\", true},
		{`\0`, "\x00", true},
		{`\x41`, "A", true},
		{`\x4`, "", false},
		{`\xg1`, "", false},
		{`\01`, "", false},
		{`\q`, "", false},
		{"tab\there", "", false},
		{`trailing\`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := UnescapeStringLiteral(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanLexInteger(t *testing.T) {
	collector := &kindCollector{}
	emitter := newTestEmitter(collector)

	if !CanLexInteger(emitter, []byte(strings.Repeat("9", digitLimit)), 0) {
		t.Errorf("rejected a sequence at the limit")
	}
	if len(collector.kinds) != 0 {
		t.Errorf("unexpected diagnostics: %v", collector.kinds)
	}

	if CanLexInteger(emitter, []byte(strings.Repeat("9", digitLimit+1)), 0) {
		t.Errorf("accepted a sequence over the limit")
	}
	if len(collector.kinds) != 1 {
		t.Errorf("diagnostics = %v, want one TooManyDigits", collector.kinds)
	}
}
