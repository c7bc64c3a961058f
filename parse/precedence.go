package parse

import "github.com/dhamidi/zest/lex"

// OperatorPriority is the parse order between two adjacent operators:
// whether the left one binds its operand first, the right one does, or
// the combination is ambiguous and needs explicit parentheses.
type OperatorPriority int8

const (
	LeftFirst  OperatorPriority = -1
	Ambiguous  OperatorPriority = 0
	RightFirst OperatorPriority = 1
)

// Precedence levels form a fixed ladder. Highest and Lowest are
// sentinels that terminate expression recursion and never correspond to
// an operator.
const (
	levelHighest int8 = iota
	levelTermPrefix
	levelIncrementDecrement
	levelNumericPrefix
	levelModulo
	levelMultiplicative
	levelAdditive
	levelBitwisePrefix
	levelBitwiseAnd
	levelBitwiseOr
	levelBitwiseXor
	levelBitShift
	levelTypePrefix
	levelTypePostfix
	levelAs
	levelLogicalPrefix
	levelRelational
	levelLogicalAnd
	levelLogicalOr
	levelIf
	levelAssignment
	levelLowest

	numPrecedenceLevels
)

// PrecedenceGroup identifies one level of the operator ladder.
type PrecedenceGroup struct {
	level int8
}

// Trailing describes a token usable after an expression: its level and
// whether it takes a right operand.
type Trailing struct {
	Level    PrecedenceGroup
	IsBinary bool
}

// priorityTable records, for each ordered pair of levels, which side
// binds first. Built once at startup; the zero value is Ambiguous.
var priorityTable [numPrecedenceLevels][numPrecedenceLevels]OperatorPriority

func markHigherThan(higherGroup, lowerGroup []int8) {
	for _, higher := range higherGroup {
		for _, lower := range lowerGroup {
			priorityTable[higher][lower] = LeftFirst
		}
	}
}

func makeTransitivelyClosed() {
	for changed := true; changed; {
		changed = false
		for a := int8(0); a < numPrecedenceLevels; a++ {
			for b := int8(0); b < numPrecedenceLevels; b++ {
				if priorityTable[a][b] != LeftFirst {
					continue
				}
				for c := int8(0); c < numPrecedenceLevels; c++ {
					if priorityTable[b][c] == LeftFirst && priorityTable[a][c] != LeftFirst {
						priorityTable[a][c] = LeftFirst
						changed = true
					}
				}
			}
		}
	}
}

func makeSymmetric() {
	for a := int8(0); a < numPrecedenceLevels; a++ {
		for b := int8(0); b < numPrecedenceLevels; b++ {
			if priorityTable[a][b] == LeftFirst {
				if priorityTable[b][a] == LeftFirst {
					panic("inconsistent precedence table entries")
				}
				priorityTable[b][a] = RightFirst
			}
		}
	}
}

func addAssociativityRules() {
	// The diagonal encodes associativity. Prefix operators chain
	// right-first; postfix ones left-first.
	for _, prefix := range []int8{levelTermPrefix, levelIf} {
		priorityTable[prefix][prefix] = RightFirst
	}
	for _, postfix := range []int8{levelTypePostfix} {
		priorityTable[postfix][postfix] = LeftFirst
	}
	for _, assoc := range []int8{
		levelMultiplicative, levelAdditive, levelBitwiseAnd, levelBitwiseOr,
		levelBitwiseXor, levelLogicalAnd, levelLogicalOr,
	} {
		priorityTable[assoc][assoc] = LeftFirst
	}
	// Everything else requires explicit parentheses.
}

func consistencyCheck() {
	for level := int8(0); level < numPrecedenceLevels; level++ {
		if level != levelHighest &&
			(priorityTable[levelHighest][level] != LeftFirst ||
				priorityTable[level][levelHighest] != RightFirst) {
			panic("Highest is not highest priority")
		}
		if level != levelLowest &&
			(priorityTable[levelLowest][level] != RightFirst ||
				priorityTable[level][levelLowest] != LeftFirst) {
			panic("Lowest is not lowest priority")
		}
	}
}

func init() {
	// Higher-precedence, lower-precedence relationships.
	markHigherThan([]int8{levelHighest}, []int8{levelTermPrefix, levelLogicalPrefix})
	markHigherThan([]int8{levelTermPrefix},
		[]int8{levelNumericPrefix, levelBitwisePrefix, levelIncrementDecrement})
	markHigherThan([]int8{levelNumericPrefix, levelBitwisePrefix},
		[]int8{levelAs, levelMultiplicative, levelModulo, levelBitwiseAnd,
			levelBitwiseOr, levelBitwiseXor, levelBitShift})
	markHigherThan([]int8{levelMultiplicative}, []int8{levelAdditive})
	markHigherThan(
		[]int8{levelAs, levelAdditive, levelModulo, levelBitwiseAnd,
			levelBitwiseOr, levelBitwiseXor, levelBitShift},
		[]int8{levelRelational})
	markHigherThan([]int8{levelRelational, levelLogicalPrefix},
		[]int8{levelLogicalAnd, levelLogicalOr})
	markHigherThan([]int8{levelLogicalAnd, levelLogicalOr}, []int8{levelIf})
	markHigherThan([]int8{levelIf}, []int8{levelAssignment})
	markHigherThan([]int8{levelAssignment, levelIncrementDecrement}, []int8{levelLowest})

	// Types are mostly a separate precedence graph.
	markHigherThan([]int8{levelHighest}, []int8{levelTypePrefix})
	markHigherThan([]int8{levelTypePrefix}, []int8{levelTypePostfix})
	markHigherThan([]int8{levelTypePostfix}, []int8{levelAs})

	makeTransitivelyClosed()
	makeSymmetric()
	addAssociativityRules()
	consistencyCheck()
}

// ForPostfixExpression is the precedence of a parsed postfix expression.
func ForPostfixExpression() PrecedenceGroup {
	return PrecedenceGroup{level: levelHighest}
}

// ForTopLevelExpression is the ambient precedence of a full expression:
// conditions, initializers, list elements.
func ForTopLevelExpression() PrecedenceGroup {
	return PrecedenceGroup{level: levelIf}
}

// ForExpressionStatement is the ambient precedence of an expression
// statement, which additionally admits assignments.
func ForExpressionStatement() PrecedenceGroup {
	return PrecedenceGroup{level: levelLowest}
}

// ForType is the ambient precedence of type expressions.
func ForType() PrecedenceGroup {
	return ForTopLevelExpression()
}

// ForLeading returns the prefix precedence of a token, if it can begin
// an operator expression.
func ForLeading(kind lex.TokenKind) (PrecedenceGroup, bool) {
	switch kind {
	case lex.Star, lex.Amp:
		return PrecedenceGroup{level: levelTermPrefix}, true
	case lex.Not:
		return PrecedenceGroup{level: levelLogicalPrefix}, true
	case lex.Minus:
		return PrecedenceGroup{level: levelNumericPrefix}, true
	case lex.MinusMinus, lex.PlusPlus:
		return PrecedenceGroup{level: levelIncrementDecrement}, true
	case lex.Caret:
		return PrecedenceGroup{level: levelBitwisePrefix}, true
	case lex.If:
		return PrecedenceGroup{level: levelIf}, true
	case lex.Const:
		return PrecedenceGroup{level: levelTypePrefix}, true
	}
	return PrecedenceGroup{}, false
}

// ForTrailing returns the precedence of a token following an
// expression. infix disambiguates tokens valid both as infix and
// postfix operators, `*` in particular.
func ForTrailing(kind lex.TokenKind, infix bool) (Trailing, bool) {
	switch kind {
	// Assignment operators.
	case lex.Equal, lex.PlusEqual, lex.MinusEqual, lex.StarEqual,
		lex.SlashEqual, lex.PercentEqual, lex.AmpEqual, lex.PipeEqual,
		lex.CaretEqual, lex.GreaterGreaterEqual, lex.LessLessEqual:
		return Trailing{Level: PrecedenceGroup{level: levelAssignment}, IsBinary: true}, true

	// Logical operators.
	case lex.And:
		return Trailing{Level: PrecedenceGroup{level: levelLogicalAnd}, IsBinary: true}, true
	case lex.Or:
		return Trailing{Level: PrecedenceGroup{level: levelLogicalOr}, IsBinary: true}, true

	// Bitwise operators.
	case lex.Amp:
		return Trailing{Level: PrecedenceGroup{level: levelBitwiseAnd}, IsBinary: true}, true
	case lex.Pipe:
		return Trailing{Level: PrecedenceGroup{level: levelBitwiseOr}, IsBinary: true}, true
	case lex.Caret:
		return Trailing{Level: PrecedenceGroup{level: levelBitwiseXor}, IsBinary: true}, true
	case lex.GreaterGreater, lex.LessLess:
		return Trailing{Level: PrecedenceGroup{level: levelBitShift}, IsBinary: true}, true

	// Relational operators.
	case lex.EqualEqual, lex.ExclaimEqual, lex.Less, lex.LessEqual,
		lex.Greater, lex.GreaterEqual, lex.LessEqualGreater:
		return Trailing{Level: PrecedenceGroup{level: levelRelational}, IsBinary: true}, true

	// Additive operators.
	case lex.Plus, lex.Minus:
		return Trailing{Level: PrecedenceGroup{level: levelAdditive}, IsBinary: true}, true

	// Multiplicative operators.
	case lex.Slash:
		return Trailing{Level: PrecedenceGroup{level: levelMultiplicative}, IsBinary: true}, true
	case lex.Percent:
		return Trailing{Level: PrecedenceGroup{level: levelModulo}, IsBinary: true}, true

	// `*` is multiplication when infix and pointer type formation when
	// postfix.
	case lex.Star:
		if infix {
			return Trailing{Level: PrecedenceGroup{level: levelMultiplicative}, IsBinary: true}, true
		}
		return Trailing{Level: PrecedenceGroup{level: levelTypePostfix}, IsBinary: false}, true

	// Cast operator.
	case lex.As:
		return Trailing{Level: PrecedenceGroup{level: levelAs}, IsBinary: true}, true
	}
	return Trailing{}, false
}

// Priority reports which of two adjacent operator levels binds first.
func Priority(left, right PrecedenceGroup) OperatorPriority {
	return priorityTable[left.level][right.level]
}
