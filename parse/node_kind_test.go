package parse

import "testing"

func TestNodeKindRegistry(t *testing.T) {
	for _, entry := range nodeKindRegistry {
		if entry.kind.Name() == "" {
			t.Errorf("kind %d has no name", entry.kind)
		}
		if entry.hasBracket {
			if !entry.kind.HasBracket() {
				t.Errorf("%s should have a bracket", entry.kind)
			}
			if entry.kind.Bracket() == entry.kind {
				t.Errorf("%s brackets itself", entry.kind)
			}
			if entry.kind.Bracket().HasBracket() && entry.kind.Bracket().Bracket() == entry.kind {
				t.Errorf("%s and %s bracket each other", entry.kind, entry.kind.Bracket())
			}
		} else {
			if entry.kind.HasBracket() {
				t.Errorf("%s should have a child count", entry.kind)
			}
			if count := entry.kind.ChildCount(); count < 0 || count > 3 {
				t.Errorf("%s has child count %d", entry.kind, count)
			}
		}
	}
}

func TestNodeKindExamples(t *testing.T) {
	if !FunctionDeclaration.HasBracket() || FunctionDeclaration.Bracket() != FunctionIntroducer {
		t.Errorf("FunctionDeclaration should be bracketed by FunctionIntroducer")
	}
	if !CallExpression.HasBracket() || CallExpression.Bracket() != CallExpressionStart {
		t.Errorf("CallExpression should be bracketed by CallExpressionStart")
	}
	if CallExpressionStart.HasBracket() || CallExpressionStart.ChildCount() != 1 {
		t.Errorf("CallExpressionStart should have exactly the callee as child")
	}
	if InfixOperator.HasBracket() || InfixOperator.ChildCount() != 2 {
		t.Errorf("InfixOperator should have two children")
	}
	if DeclaredName.HasBracket() || DeclaredName.ChildCount() != 0 {
		t.Errorf("DeclaredName should be a leaf")
	}
}
