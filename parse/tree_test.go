package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
	"github.com/dhamidi/zest/source"
)

func parseSource(t *testing.T, text string) (*lex.Buffer, *Tree) {
	t.Helper()
	src := source.NewFromText(text, "test.zest")
	tokens := lex.Lex(src, diagnostics.NullConsumer{})
	tree := Parse(tokens, diagnostics.NullConsumer{})
	if err := tree.Verify(); err != nil {
		t.Fatalf("Verify() of %q: %v", text, err)
	}
	if tree.Size() > tokens.ExpectedParseTreeSize() {
		t.Fatalf("tree size %d exceeds the reserved %d for %q",
			tree.Size(), tokens.ExpectedParseTreeSize(), text)
	}
	return tokens, tree
}

func checkNodeKinds(t *testing.T, tree *Tree, expected []NodeKind) {
	t.Helper()
	if tree.Size() != len(expected) {
		var got []string
		for _, n := range tree.Postorder() {
			got = append(got, tree.NodeKind(n).Name())
		}
		t.Fatalf("Size() = %d, want %d; kinds: %s", tree.Size(), len(expected), strings.Join(got, ", "))
	}
	for i, want := range expected {
		if got := tree.NodeKind(Node(i)); got != want {
			t.Errorf("node %d: kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseEmptyFile(t *testing.T) {
	_, tree := parseSource(t, "")
	if tree.Size() != 0 {
		t.Errorf("Size() = %d, want 0", tree.Size())
	}
	if tree.HasErrors() {
		t.Errorf("empty file reported errors")
	}
}

func TestParseEmptyDeclaration(t *testing.T) {
	_, tree := parseSource(t, ";")
	checkNodeKinds(t, tree, []NodeKind{EmptyDeclaration})
	if tree.HasErrors() {
		t.Errorf("empty declaration reported errors")
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	_, tree := parseSource(t, "fn F();")
	checkNodeKinds(t, tree, []NodeKind{
		FunctionIntroducer,
		DeclaredName,
		ParameterListStart,
		ParameterList,
		DeclarationEnd,
		FunctionDeclaration,
	})
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}

	roots := tree.Roots()
	if len(roots) != 1 || tree.NodeKind(roots[0]) != FunctionDeclaration {
		t.Fatalf("roots = %v", roots)
	}
	if got := tree.NodeText(roots[0]); got != "fn" {
		t.Errorf("root text = %q, want fn", got)
	}

	children := tree.Children(roots[0])
	childKinds := []NodeKind{FunctionIntroducer, DeclaredName, ParameterList, DeclarationEnd}
	if len(children) != len(childKinds) {
		t.Fatalf("children = %v", children)
	}
	for i, want := range childKinds {
		if got := tree.NodeKind(children[i]); got != want {
			t.Errorf("child %d: kind = %v, want %v", i, got, want)
		}
	}
	if got := tree.NodeText(children[1]); got != "F" {
		t.Errorf("declared name text = %q, want F", got)
	}
}

func TestParseFunctionWithReturnType(t *testing.T) {
	_, tree := parseSource(t, "fn A() -> int;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		FunctionIntroducer,
		DeclaredName,
		ParameterListStart,
		ParameterList,
		Name,
		ReturnType,
		DeclarationEnd,
		FunctionDeclaration,
	})
}

func TestParseForeignFunctionSyntax(t *testing.T) {
	_, tree := parseSource(t, "auto A() -> int;")
	if !tree.HasErrors() {
		t.Fatalf("foreign declaration syntax parsed without errors")
	}
}

func TestParseFunctionWithParameters(t *testing.T) {
	_, tree := parseSource(t, "fn Sum(a: i32, b: i32) -> i32;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		FunctionIntroducer,
		DeclaredName,
		ParameterListStart,
		DeclaredName,
		Literal,
		PatternBinding,
		PatternListComma,
		DeclaredName,
		Literal,
		PatternBinding,
		ParameterList,
		Literal,
		ReturnType,
		DeclarationEnd,
		FunctionDeclaration,
	})
}

func TestParseFunctionWithDeducedParameters(t *testing.T) {
	_, tree := parseSource(t, "fn Min[template T:! Type](x: T, y: T) -> T;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	var kinds []NodeKind
	for _, n := range tree.Postorder() {
		kinds = append(kinds, tree.NodeKind(n))
	}
	wantSome := []NodeKind{DeducedParameterListStart, GenericPatternBinding, TemplatePattern, DeducedParameterList}
	for _, want := range wantSome {
		found := false
		for _, kind := range kinds {
			if kind == want {
				found = true
			}
		}
		if !found {
			t.Errorf("tree is missing a %v node", want)
		}
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	_, tree := parseSource(t, "fn F() { return; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		FunctionIntroducer,
		DeclaredName,
		ParameterListStart,
		ParameterList,
		FunctionDefinitionStart,
		ReturnStatementStart,
		ReturnStatement,
		FunctionDefinition,
	})

	root := tree.Roots()[0]
	children := tree.Children(root)
	if tree.NodeKind(children[0]) != FunctionDefinitionStart {
		t.Errorf("first child = %v, want FunctionDefinitionStart", tree.NodeKind(children[0]))
	}
}

func TestParsePackageDirective(t *testing.T) {
	_, tree := parseSource(t, `package Widgets library "widgets" api;`)
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		PackageIntroducer,
		DeclaredName,
		Literal,
		PackageLibrary,
		PackageApi,
		DeclarationEnd,
		PackageDirective,
	})
}

func TestParseImportDirective(t *testing.T) {
	_, tree := parseSource(t, "import Widgets;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		ImportIntroducer,
		DeclaredName,
		DeclarationEnd,
		ImportDirective,
	})
}

func TestParseNamespace(t *testing.T) {
	_, tree := parseSource(t, "namespace Things;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		NamespaceStart,
		DeclaredName,
		DeclarationEnd,
		NamespaceDeclaration,
	})
}

func TestParseVariableDeclaration(t *testing.T) {
	_, tree := parseSource(t, "var x: i32 = 5;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		VariableIntroducer,
		DeclaredName,
		Literal,
		PatternBinding,
		VariableInitializer,
		Literal,
		DeclarationEnd,
		VariableDeclaration,
	})
}

func TestParseLetDeclaration(t *testing.T) {
	_, tree := parseSource(t, "let x: i32 = 5;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		LetIntroducer,
		DeclaredName,
		Literal,
		PatternBinding,
		LetInitializer,
		Literal,
		DeclarationEnd,
		LetDeclaration,
	})
}

func TestParseClassDefinition(t *testing.T) {
	_, tree := parseSource(t, "class C { fn F(); var x: i32; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	root := tree.Roots()[0]
	if tree.NodeKind(root) != ClassDefinition {
		t.Fatalf("root = %v, want ClassDefinition", tree.NodeKind(root))
	}
	children := tree.Children(root)
	childKinds := []NodeKind{ClassDefinitionStart, FunctionDeclaration, VariableDeclaration}
	if len(children) != len(childKinds) {
		t.Fatalf("children count = %d, want %d", len(children), len(childKinds))
	}
	for i, want := range childKinds {
		if got := tree.NodeKind(children[i]); got != want {
			t.Errorf("child %d: kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseTypeDeclarations(t *testing.T) {
	_, tree := parseSource(t, "class C; interface I; constraint K;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	roots := tree.Roots()
	rootKinds := []NodeKind{ClassDeclaration, InterfaceDeclaration, NamedConstraintDeclaration}
	if len(roots) != len(rootKinds) {
		t.Fatalf("roots = %d, want %d", len(roots), len(rootKinds))
	}
	for i, want := range rootKinds {
		if got := tree.NodeKind(roots[i]); got != want {
			t.Errorf("root %d: kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x = a + b * c; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}

	// The multiplication binds tighter: its node covers only b and c.
	var mulNode, addNode Node = InvalidNode, InvalidNode
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) != InfixOperator {
			continue
		}
		switch tree.NodeText(n) {
		case "*":
			mulNode = n
		case "+":
			addNode = n
		}
	}
	if mulNode == InvalidNode || addNode == InvalidNode {
		t.Fatalf("missing operator nodes")
	}
	if got := tree.NodeSubtreeSize(mulNode); got != 3 {
		t.Errorf("subtree_size(*) = %d, want 3", got)
	}
	if got := tree.NodeSubtreeSize(addNode); got != 5 {
		t.Errorf("subtree_size(+) = %d, want 5", got)
	}
}

func TestParsePostfixExpressions(t *testing.T) {
	_, tree := parseSource(t, "fn F() { a.b(c)[d]; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		FunctionIntroducer,
		DeclaredName,
		ParameterListStart,
		ParameterList,
		FunctionDefinitionStart,
		Name,
		Name,
		MemberAccessExpression,
		CallExpressionStart,
		Name,
		CallExpression,
		IndexExpressionStart,
		Name,
		IndexExpression,
		ExpressionStatement,
		FunctionDefinition,
	})
}

func TestParsePointerMemberAccess(t *testing.T) {
	_, tree := parseSource(t, "fn F() { p->q; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	found := false
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == PointerMemberAccessExpression {
			found = true
		}
	}
	if !found {
		t.Errorf("tree is missing a PointerMemberAccessExpression node")
	}
}

func TestParsePrefixOperators(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x = -y; b = not c; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	count := 0
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == PrefixOperator {
			count++
		}
	}
	if count != 2 {
		t.Errorf("PrefixOperator nodes = %d, want 2", count)
	}
}

func TestParsePointerTypePostfix(t *testing.T) {
	_, tree := parseSource(t, "var p: i32*;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	found := false
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == PostfixOperator && tree.NodeText(n) == "*" {
			found = true
		}
	}
	if !found {
		t.Errorf("tree is missing the pointer-type PostfixOperator node")
	}
}

func TestParseArrayType(t *testing.T) {
	_, tree := parseSource(t, "var a: [i32; 4] = z;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	checkNodeKinds(t, tree, []NodeKind{
		VariableIntroducer,
		DeclaredName,
		ArrayExpressionStart,
		Literal,
		ArrayExpressionSemi,
		Literal,
		ArrayExpression,
		PatternBinding,
		VariableInitializer,
		Name,
		DeclarationEnd,
		VariableDeclaration,
	})
}

func TestParseArrayTypeMissingSemi(t *testing.T) {
	_, tree := parseSource(t, "var a: [i32 4] = z;")
	if !tree.HasErrors() {
		t.Fatalf("missing array `;` parsed without errors")
	}
}

func TestParseIfElse(t *testing.T) {
	_, tree := parseSource(t, "fn F() { if (c) { return; } else { break; } }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	var ifNode Node = InvalidNode
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == IfStatement {
			ifNode = n
		}
	}
	if ifNode == InvalidNode {
		t.Fatalf("tree is missing an IfStatement node")
	}
	children := tree.Children(ifNode)
	childKinds := []NodeKind{IfCondition, CodeBlock, IfStatementElse, CodeBlock}
	if len(children) != len(childKinds) {
		t.Fatalf("children count = %d, want %d", len(children), len(childKinds))
	}
	for i, want := range childKinds {
		if got := tree.NodeKind(children[i]); got != want {
			t.Errorf("child %d: kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseElseIfChain(t *testing.T) {
	_, tree := parseSource(t, "fn F() { if (a) { return; } else if (b) { return; } else { return; } }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	count := 0
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == IfStatement {
			count++
		}
	}
	if count != 2 {
		t.Errorf("IfStatement nodes = %d, want 2", count)
	}
}

func TestParseWhile(t *testing.T) {
	_, tree := parseSource(t, "fn F() { while (c) { continue; } }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	var whileNode Node = InvalidNode
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == WhileStatement {
			whileNode = n
		}
	}
	if whileNode == InvalidNode {
		t.Fatalf("tree is missing a WhileStatement node")
	}
	children := tree.Children(whileNode)
	if len(children) != 2 ||
		tree.NodeKind(children[0]) != WhileCondition ||
		tree.NodeKind(children[1]) != CodeBlock {
		t.Errorf("unexpected WhileStatement children")
	}
}

func TestParseIfWithoutCondition(t *testing.T) {
	_, tree := parseSource(t, "fn F() { if { return; } }")
	if !tree.HasErrors() {
		t.Fatalf("missing condition parsed without errors")
	}
	found := false
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == InvalidParse {
			found = true
		}
	}
	if !found {
		t.Errorf("tree is missing the InvalidParse placeholder")
	}
}

func TestParseMatch(t *testing.T) {
	_, tree := parseSource(t,
		"fn F() { match (x) { case y: i32 => { return; } default => { return; } } }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	var matchNode Node = InvalidNode
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == MatchStatement {
			matchNode = n
		}
	}
	if matchNode == InvalidNode {
		t.Fatalf("tree is missing a MatchStatement node")
	}
	children := tree.Children(matchNode)
	if len(children) != 2 ||
		tree.NodeKind(children[0]) != MatchCondition ||
		tree.NodeKind(children[1]) != MatchCases {
		t.Errorf("unexpected MatchStatement children")
	}
	caseCount, defaultCount := 0, 0
	for _, n := range tree.Postorder() {
		switch tree.NodeKind(n) {
		case MatchCase:
			caseCount++
		case MatchDefault:
			defaultCount++
		}
	}
	if caseCount != 1 || defaultCount != 1 {
		t.Errorf("cases = %d, defaults = %d", caseCount, defaultCount)
	}
}

func TestParseParenAndTupleLiterals(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x = (a); y = (a, b); z = (); }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	parens, tuples := 0, 0
	for _, n := range tree.Postorder() {
		switch tree.NodeKind(n) {
		case ParenExpression:
			parens++
		case TupleLiteral:
			tuples++
		}
	}
	if parens != 1 {
		t.Errorf("ParenExpression nodes = %d, want 1", parens)
	}
	if tuples != 2 {
		t.Errorf("TupleLiteral nodes = %d, want 2", tuples)
	}
}

func TestParseStructLiterals(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x = {.a = 1, .b = 2}; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	structs, fields := 0, 0
	for _, n := range tree.Postorder() {
		switch tree.NodeKind(n) {
		case StructLiteral:
			structs++
		case StructFieldValue:
			fields++
		}
	}
	if structs != 1 || fields != 2 {
		t.Errorf("structs = %d, fields = %d", structs, fields)
	}
}

func TestParseStructTypeLiteral(t *testing.T) {
	_, tree := parseSource(t, "var s: {.t: i32} = y;")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	found := false
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == StructTypeLiteral {
			found = true
		}
	}
	if !found {
		t.Errorf("tree is missing a StructTypeLiteral node")
	}
}

func TestParseIfExpression(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x = if c then a else b; }")
	if tree.HasErrors() {
		t.Fatalf("tree reported errors")
	}
	var ifExpr Node = InvalidNode
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == IfExpression {
			ifExpr = n
		}
	}
	if ifExpr == InvalidNode {
		t.Fatalf("tree is missing an IfExpression node")
	}
	children := tree.Children(ifExpr)
	if len(children) != 3 ||
		tree.NodeKind(children[0]) != IfExpressionIf ||
		tree.NodeKind(children[1]) != IfExpressionThen {
		t.Errorf("unexpected IfExpression children")
	}
}

func TestParseExpressionRecovery(t *testing.T) {
	_, tree := parseSource(t, "fn F() { x + ; y = 1; }")
	if !tree.HasErrors() {
		t.Fatalf("malformed expression parsed without errors")
	}
	// The following statement still parses.
	found := false
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == InfixOperator && tree.NodeText(n) == "=" {
			found = true
		}
	}
	if !found {
		t.Errorf("statement after recovery was not parsed")
	}
}

func TestParseDeclarationRecovery(t *testing.T) {
	_, tree := parseSource(t, "fn ;\nfn G();")
	if !tree.HasErrors() {
		t.Fatalf("malformed declaration parsed without errors")
	}
	count := 0
	for _, n := range tree.Postorder() {
		if tree.NodeKind(n) == FunctionDeclaration {
			count++
		}
	}
	if count != 2 {
		t.Errorf("FunctionDeclaration nodes = %d, want 2", count)
	}
}

func TestParseTreeErrorsFromLexer(t *testing.T) {
	_, tree := parseSource(t, "fn F(")
	if !tree.HasErrors() {
		t.Fatalf("lexer errors did not propagate to the tree")
	}
}

func TestParseAssignmentInSubexpression(t *testing.T) {
	_, tree := parseSource(t, "fn F() { if (a = b) { return; } }")
	if !tree.HasErrors() {
		t.Fatalf("assignment in condition parsed without errors")
	}
}

func TestTreePrint(t *testing.T) {
	_, tree := parseSource(t, "fn F();")
	var out bytes.Buffer
	tree.Print(&out)

	dump := out.String()
	for _, want := range []string{
		"[\n",
		"{node_index: 5, kind: 'FunctionDeclaration', text: 'fn'",
		"{node_index: 1, kind: 'DeclaredName', text: 'F'}",
		"subtree_size: 6",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q:\n%s", want, dump)
		}
	}
}

func TestTreePrintMarksErrors(t *testing.T) {
	_, tree := parseSource(t, "fn ;")
	var out bytes.Buffer
	tree.Print(&out)
	if !strings.Contains(out.String(), "has_error: yes") {
		t.Errorf("dump does not annotate erroneous subtrees:\n%s", out.String())
	}
}

// Malformed input must still produce a structurally valid tree: every
// recovery path ends in nodes whose subtree sizes verify.
func TestParseMalformedInputs(t *testing.T) {
	inputs := []string{
		"fn",
		"fn F",
		"fn F(",
		"fn F(x",
		"fn F(x:",
		"fn F() {",
		"fn F() { if (",
		"fn F() { (; }",
		"fn F() { a..b; }",
		"fn F() { match (x) {",
		"class",
		"class C {",
		"var",
		"var x",
		"var x:",
		"if",
		"match",
		")",
		"}{",
		"((((",
		"= = =",
		"...",
		"\\",
		"#",
		"'''",
		`"`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, tree := parseSource(t, input)
			if !tree.HasErrors() {
				t.Errorf("malformed input parsed without errors")
			}
		})
	}
}

func TestPostorderCoversTree(t *testing.T) {
	_, tree := parseSource(t, "fn F() { return; } class C; var x: i32 = 0;")
	nodes := tree.Postorder()
	if len(nodes) != tree.Size() {
		t.Fatalf("Postorder() returned %d nodes, want %d", len(nodes), tree.Size())
	}
	// Roots partition the postorder range.
	total := int32(0)
	for _, root := range tree.Roots() {
		total += tree.NodeSubtreeSize(root)
	}
	if total != int32(tree.Size()) {
		t.Errorf("root subtrees cover %d nodes, want %d", total, tree.Size())
	}
}
