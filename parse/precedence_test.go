package parse

import (
	"testing"

	"github.com/dhamidi/zest/lex"
)

func TestPrecedenceSentinels(t *testing.T) {
	highest := ForPostfixExpression()
	lowest := ForExpressionStatement()

	for level := int8(0); level < numPrecedenceLevels; level++ {
		group := PrecedenceGroup{level: level}
		if group != highest && Priority(highest, group) != LeftFirst {
			t.Errorf("Highest does not dominate level %d", level)
		}
		if group != lowest && Priority(group, lowest) != LeftFirst {
			t.Errorf("Lowest is not dominated by level %d", level)
		}
	}
}

func TestPrecedenceSymmetry(t *testing.T) {
	for a := int8(0); a < numPrecedenceLevels; a++ {
		for b := int8(0); b < numPrecedenceLevels; b++ {
			if a == b {
				// The diagonal holds associativity, not an ordering.
				continue
			}
			left := Priority(PrecedenceGroup{level: a}, PrecedenceGroup{level: b})
			right := Priority(PrecedenceGroup{level: b}, PrecedenceGroup{level: a})
			if left == LeftFirst && right != RightFirst {
				t.Errorf("asymmetric entry (%d, %d)", a, b)
			}
			if left == RightFirst && right != LeftFirst {
				t.Errorf("asymmetric entry (%d, %d)", a, b)
			}
		}
	}
}

func TestPrecedenceRelationships(t *testing.T) {
	mul, _ := ForTrailing(lex.Star, true)
	add, _ := ForTrailing(lex.Plus, true)
	assign, _ := ForTrailing(lex.Equal, true)
	and, _ := ForTrailing(lex.And, true)
	rel, _ := ForTrailing(lex.EqualEqual, true)

	if Priority(add.Level, mul.Level) != RightFirst {
		t.Errorf("a + b * c should bind the multiplication first")
	}
	if Priority(mul.Level, add.Level) != LeftFirst {
		t.Errorf("a * b + c should bind the multiplication first")
	}
	if Priority(add.Level, add.Level) != LeftFirst {
		t.Errorf("additive operators should be left associative")
	}
	if Priority(assign.Level, assign.Level) != Ambiguous {
		t.Errorf("chained assignment should be ambiguous")
	}
	if Priority(rel.Level, and.Level) != LeftFirst {
		t.Errorf("a == b and c should bind the comparison first")
	}
}

func TestForLeading(t *testing.T) {
	leadingKinds := []lex.TokenKind{
		lex.Star, lex.Amp, lex.Not, lex.Minus, lex.MinusMinus, lex.PlusPlus,
		lex.Caret, lex.If, lex.Const,
	}
	for _, kind := range leadingKinds {
		if _, ok := ForLeading(kind); !ok {
			t.Errorf("ForLeading(%v) missing", kind)
		}
	}
	if _, ok := ForLeading(lex.Plus); ok {
		t.Errorf("`+` is not a prefix operator")
	}
	if _, ok := ForLeading(lex.Semi); ok {
		t.Errorf("`;` is not a prefix operator")
	}
}

func TestForTrailingStar(t *testing.T) {
	infix, ok := ForTrailing(lex.Star, true)
	if !ok || !infix.IsBinary {
		t.Errorf("infix `*` should be binary multiplication")
	}
	postfix, ok := ForTrailing(lex.Star, false)
	if !ok || postfix.IsBinary {
		t.Errorf("postfix `*` should be unary pointer type formation")
	}
	if _, ok := ForTrailing(lex.Semi, true); ok {
		t.Errorf("`;` is not a trailing operator")
	}
	if _, ok := ForTrailing(lex.MinusGreater, true); ok {
		t.Errorf("`->` is not a trailing operator")
	}
}
