package parse

// NodeKind is a one-byte tag identifying the kind of a parse tree node.
// Every kind either is bracketed, naming the kind of its first child
// that bounds the subtree, or has a fixed child count.
type NodeKind uint8

const (
	// InvalidParse is a placeholder for input that failed to parse as
	// the expected construct.
	InvalidParse NodeKind = iota
	EmptyDeclaration
	DeclarationEnd
	Name
	DeclaredName
	SelfValueName
	Literal

	PackageIntroducer
	PackageApi
	PackageLibrary
	PackageDirective
	ImportIntroducer
	ImportDirective

	NamespaceStart
	NamespaceDeclaration

	FunctionIntroducer
	ParameterListStart
	PatternListComma
	ParameterList
	DeducedParameterListStart
	DeducedParameterList
	ReturnType
	FunctionDeclaration
	FunctionDefinitionStart
	FunctionDefinition

	VariableIntroducer
	ReturnedModifier
	VariableInitializer
	VariableDeclaration
	LetIntroducer
	LetInitializer
	LetDeclaration

	ClassIntroducer
	ClassDeclaration
	ClassDefinitionStart
	ClassDefinition
	InterfaceIntroducer
	InterfaceDeclaration
	InterfaceDefinitionStart
	InterfaceDefinition
	NamedConstraintIntroducer
	NamedConstraintDeclaration
	NamedConstraintDefinitionStart
	NamedConstraintDefinition

	Address
	TemplatePattern
	PatternBinding
	GenericPatternBinding

	CodeBlockStart
	CodeBlock
	ExpressionStatement
	IfConditionStart
	IfCondition
	IfStatementElse
	IfStatement
	WhileConditionStart
	WhileCondition
	WhileStatement
	ReturnStatementStart
	ReturnStatement
	BreakStatementStart
	BreakStatement
	ContinueStatementStart
	ContinueStatement
	MatchConditionStart
	MatchCondition
	MatchCaseIntroducer
	MatchCaseEqualGreater
	MatchCase
	MatchDefaultIntroducer
	MatchDefault
	MatchCasesStart
	MatchCases
	MatchStatement

	ParenExpressionOrTupleLiteralStart
	ParenExpression
	TupleLiteralComma
	TupleLiteral
	StructLiteralOrStructTypeLiteralStart
	DesignatedName
	StructFieldDesignator
	StructFieldValue
	StructFieldType
	StructComma
	StructLiteral
	StructTypeLiteral

	CallExpressionStart
	CallExpressionComma
	CallExpression
	IndexExpressionStart
	IndexExpression
	MemberAccessExpression
	PointerMemberAccessExpression
	ArrayExpressionStart
	ArrayExpressionSemi
	ArrayExpression
	PrefixOperator
	InfixOperator
	PostfixOperator
	IfExpressionIf
	IfExpressionThen
	IfExpression

	numNodeKinds
)

type nodeKindEntry struct {
	kind NodeKind
	name string
	// hasBracket selects between bracket and childCount.
	hasBracket bool
	bracket    NodeKind
	childCount int32
}

func leaf(kind NodeKind, name string) nodeKindEntry {
	return nodeKindEntry{kind: kind, name: name}
}

func withChildren(kind NodeKind, name string, count int32) nodeKindEntry {
	return nodeKindEntry{kind: kind, name: name, childCount: count}
}

func bracketed(kind NodeKind, name string, bracket NodeKind) nodeKindEntry {
	return nodeKindEntry{kind: kind, name: name, hasBracket: true, bracket: bracket}
}

// nodeKindRegistry is the single source of truth for the catalogue.
var nodeKindRegistry = []nodeKindEntry{
	leaf(InvalidParse, "InvalidParse"),
	leaf(EmptyDeclaration, "EmptyDeclaration"),
	leaf(DeclarationEnd, "DeclarationEnd"),
	leaf(Name, "Name"),
	leaf(DeclaredName, "DeclaredName"),
	leaf(SelfValueName, "SelfValueName"),
	leaf(Literal, "Literal"),

	leaf(PackageIntroducer, "PackageIntroducer"),
	leaf(PackageApi, "PackageApi"),
	withChildren(PackageLibrary, "PackageLibrary", 1),
	bracketed(PackageDirective, "PackageDirective", PackageIntroducer),
	leaf(ImportIntroducer, "ImportIntroducer"),
	bracketed(ImportDirective, "ImportDirective", ImportIntroducer),

	leaf(NamespaceStart, "NamespaceStart"),
	bracketed(NamespaceDeclaration, "NamespaceDeclaration", NamespaceStart),

	leaf(FunctionIntroducer, "FunctionIntroducer"),
	leaf(ParameterListStart, "ParameterListStart"),
	leaf(PatternListComma, "PatternListComma"),
	bracketed(ParameterList, "ParameterList", ParameterListStart),
	leaf(DeducedParameterListStart, "DeducedParameterListStart"),
	bracketed(DeducedParameterList, "DeducedParameterList", DeducedParameterListStart),
	withChildren(ReturnType, "ReturnType", 1),
	bracketed(FunctionDeclaration, "FunctionDeclaration", FunctionIntroducer),
	bracketed(FunctionDefinitionStart, "FunctionDefinitionStart", FunctionIntroducer),
	bracketed(FunctionDefinition, "FunctionDefinition", FunctionDefinitionStart),

	leaf(VariableIntroducer, "VariableIntroducer"),
	leaf(ReturnedModifier, "ReturnedModifier"),
	leaf(VariableInitializer, "VariableInitializer"),
	bracketed(VariableDeclaration, "VariableDeclaration", VariableIntroducer),
	leaf(LetIntroducer, "LetIntroducer"),
	leaf(LetInitializer, "LetInitializer"),
	bracketed(LetDeclaration, "LetDeclaration", LetIntroducer),

	leaf(ClassIntroducer, "ClassIntroducer"),
	bracketed(ClassDeclaration, "ClassDeclaration", ClassIntroducer),
	bracketed(ClassDefinitionStart, "ClassDefinitionStart", ClassIntroducer),
	bracketed(ClassDefinition, "ClassDefinition", ClassDefinitionStart),
	leaf(InterfaceIntroducer, "InterfaceIntroducer"),
	bracketed(InterfaceDeclaration, "InterfaceDeclaration", InterfaceIntroducer),
	bracketed(InterfaceDefinitionStart, "InterfaceDefinitionStart", InterfaceIntroducer),
	bracketed(InterfaceDefinition, "InterfaceDefinition", InterfaceDefinitionStart),
	leaf(NamedConstraintIntroducer, "NamedConstraintIntroducer"),
	bracketed(NamedConstraintDeclaration, "NamedConstraintDeclaration", NamedConstraintIntroducer),
	bracketed(NamedConstraintDefinitionStart, "NamedConstraintDefinitionStart", NamedConstraintIntroducer),
	bracketed(NamedConstraintDefinition, "NamedConstraintDefinition", NamedConstraintDefinitionStart),

	withChildren(Address, "Address", 1),
	withChildren(TemplatePattern, "TemplatePattern", 1),
	withChildren(PatternBinding, "PatternBinding", 2),
	withChildren(GenericPatternBinding, "GenericPatternBinding", 2),

	leaf(CodeBlockStart, "CodeBlockStart"),
	bracketed(CodeBlock, "CodeBlock", CodeBlockStart),
	withChildren(ExpressionStatement, "ExpressionStatement", 1),
	leaf(IfConditionStart, "IfConditionStart"),
	bracketed(IfCondition, "IfCondition", IfConditionStart),
	leaf(IfStatementElse, "IfStatementElse"),
	bracketed(IfStatement, "IfStatement", IfCondition),
	leaf(WhileConditionStart, "WhileConditionStart"),
	bracketed(WhileCondition, "WhileCondition", WhileConditionStart),
	bracketed(WhileStatement, "WhileStatement", WhileCondition),
	leaf(ReturnStatementStart, "ReturnStatementStart"),
	bracketed(ReturnStatement, "ReturnStatement", ReturnStatementStart),
	leaf(BreakStatementStart, "BreakStatementStart"),
	bracketed(BreakStatement, "BreakStatement", BreakStatementStart),
	leaf(ContinueStatementStart, "ContinueStatementStart"),
	bracketed(ContinueStatement, "ContinueStatement", ContinueStatementStart),
	leaf(MatchConditionStart, "MatchConditionStart"),
	bracketed(MatchCondition, "MatchCondition", MatchConditionStart),
	leaf(MatchCaseIntroducer, "MatchCaseIntroducer"),
	leaf(MatchCaseEqualGreater, "MatchCaseEqualGreater"),
	bracketed(MatchCase, "MatchCase", MatchCaseIntroducer),
	leaf(MatchDefaultIntroducer, "MatchDefaultIntroducer"),
	bracketed(MatchDefault, "MatchDefault", MatchDefaultIntroducer),
	leaf(MatchCasesStart, "MatchCasesStart"),
	bracketed(MatchCases, "MatchCases", MatchCasesStart),
	withChildren(MatchStatement, "MatchStatement", 2),

	leaf(ParenExpressionOrTupleLiteralStart, "ParenExpressionOrTupleLiteralStart"),
	bracketed(ParenExpression, "ParenExpression", ParenExpressionOrTupleLiteralStart),
	leaf(TupleLiteralComma, "TupleLiteralComma"),
	bracketed(TupleLiteral, "TupleLiteral", ParenExpressionOrTupleLiteralStart),
	leaf(StructLiteralOrStructTypeLiteralStart, "StructLiteralOrStructTypeLiteralStart"),
	leaf(DesignatedName, "DesignatedName"),
	withChildren(StructFieldDesignator, "StructFieldDesignator", 1),
	withChildren(StructFieldValue, "StructFieldValue", 2),
	withChildren(StructFieldType, "StructFieldType", 2),
	leaf(StructComma, "StructComma"),
	bracketed(StructLiteral, "StructLiteral", StructLiteralOrStructTypeLiteralStart),
	bracketed(StructTypeLiteral, "StructTypeLiteral", StructLiteralOrStructTypeLiteralStart),

	withChildren(CallExpressionStart, "CallExpressionStart", 1),
	leaf(CallExpressionComma, "CallExpressionComma"),
	bracketed(CallExpression, "CallExpression", CallExpressionStart),
	withChildren(IndexExpressionStart, "IndexExpressionStart", 1),
	bracketed(IndexExpression, "IndexExpression", IndexExpressionStart),
	withChildren(MemberAccessExpression, "MemberAccessExpression", 2),
	withChildren(PointerMemberAccessExpression, "PointerMemberAccessExpression", 2),
	leaf(ArrayExpressionStart, "ArrayExpressionStart"),
	bracketed(ArrayExpressionSemi, "ArrayExpressionSemi", ArrayExpressionStart),
	bracketed(ArrayExpression, "ArrayExpression", ArrayExpressionStart),
	withChildren(PrefixOperator, "PrefixOperator", 1),
	withChildren(InfixOperator, "InfixOperator", 2),
	withChildren(PostfixOperator, "PostfixOperator", 1),
	withChildren(IfExpressionIf, "IfExpressionIf", 1),
	withChildren(IfExpressionThen, "IfExpressionThen", 1),
	withChildren(IfExpression, "IfExpression", 3),
}

var (
	nodeKindNames      [numNodeKinds]string
	nodeKindHasBracket [numNodeKinds]bool
	nodeKindBracket    [numNodeKinds]NodeKind
	nodeKindChildCount [numNodeKinds]int32
)

func init() {
	for i, entry := range nodeKindRegistry {
		if NodeKind(i) != entry.kind {
			panic("node kind registry out of order: " + entry.name)
		}
		nodeKindNames[entry.kind] = entry.name
		nodeKindHasBracket[entry.kind] = entry.hasBracket
		nodeKindBracket[entry.kind] = entry.bracket
		nodeKindChildCount[entry.kind] = entry.childCount
	}
}

// Name returns the kind's name as used in dumps.
func (k NodeKind) Name() string { return nodeKindNames[k] }

func (k NodeKind) String() string { return k.Name() }

// HasBracket reports whether the kind's subtree is bounded by a
// matching-kind first child rather than a fixed child count.
func (k NodeKind) HasBracket() bool { return nodeKindHasBracket[k] }

// Bracket returns the kind of the child that marks the subtree's lower
// bound. Requires HasBracket.
func (k NodeKind) Bracket() NodeKind {
	if !nodeKindHasBracket[k] {
		panic("Bracket on non-bracketed kind " + k.Name())
	}
	return nodeKindBracket[k]
}

// ChildCount returns the fixed number of children. Requires !HasBracket.
func (k NodeKind) ChildCount() int32 {
	if nodeKindHasBracket[k] {
		panic("ChildCount on bracketed kind " + k.Name())
	}
	return nodeKindChildCount[k]
}
