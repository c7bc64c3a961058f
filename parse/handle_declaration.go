package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var (
	errUnrecognizedDeclaration = diagnostics.Descriptor{
		Kind: diagnostics.UnrecognizedDeclaration, Level: diagnostics.Error,
		Format: "unrecognized declaration introducer"}
	errExpectedLibraryName = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedLibraryName, Level: diagnostics.Error,
		Format: "expected a string literal to name the library"}
	errExpectedPackageApi = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedPackageApi, Level: diagnostics.Error,
		Format: "expected `api` in package directive"}
)

func handleFileScopeDeclarationLoop(c *Context) {
	if c.PositionIs(lex.EndOfFile) {
		c.PopAndDiscardState()
		return
	}
	c.PushState(StateDeclaration)
}

func handleTypeScopeDeclarationLoop(c *Context) {
	if c.PositionIs(lex.CloseCurlyBrace) || c.PositionIs(lex.EndOfFile) {
		c.PopAndDiscardState()
		return
	}
	c.PushState(StateDeclaration)
}

func handleDeclaration(c *Context) {
	c.PopAndDiscardState()

	switch c.PositionKind() {
	case lex.Semi:
		c.AddLeafNode(EmptyDeclaration, c.Consume(), false)

	case lex.Package:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(PackageIntroducer, token, false)
		c.PushFrame(stateStackEntry{state: StatePackageDirective, token: token, subtreeStart: start})

	case lex.Import:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(ImportIntroducer, token, false)
		c.PushFrame(stateStackEntry{state: StateImportDirective, token: token, subtreeStart: start})

	case lex.Namespace:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(NamespaceStart, token, false)
		c.PushFrame(stateStackEntry{state: StateNamespaceFinish, token: token, subtreeStart: start})
		c.PushFrame(stateStackEntry{state: StateDeclarationName, token: token})

	case lex.Fn:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(FunctionIntroducer, token, false)
		c.PushFrame(stateStackEntry{state: StateFunctionSignature, token: token, subtreeStart: start})
		c.PushFrame(stateStackEntry{state: StateDeclarationName, token: token})

	case lex.Var:
		c.beginVariableDeclaration()

	case lex.Let:
		c.beginLetDeclaration()

	case lex.Class:
		c.beginTypeDeclaration(ClassIntroducer, StateClassAfterName)

	case lex.Interface:
		c.beginTypeDeclaration(InterfaceIntroducer, StateInterfaceAfterName)

	case lex.Constraint:
		c.beginTypeDeclaration(NamedConstraintIntroducer, StateNamedConstraintAfterName)

	default:
		c.emitter.Emit(c.position, errUnrecognizedDeclaration)
		before := c.position
		if semi, ok := c.SkipPastLikelyEnd(c.position); ok {
			c.AddLeafNode(EmptyDeclaration, semi, true)
			return
		}
		c.AddLeafNode(InvalidParse, before, true)
		if c.position == before && c.position != c.end {
			c.Consume()
		}
	}
}

func handleDeclarationName(c *Context) {
	state := c.PopState()
	if c.PositionIs(lex.Identifier) {
		c.AddLeafNode(DeclaredName, c.Consume(), false)
		return
	}
	c.emitter.Emit(c.position, errExpectedDeclarationName, c.tokens.Text(state.token))
	c.ReturnErrorOnState()
}

// consumeLibraryClause parses an optional `library "name"` suffix. It
// reports whether the clause was erroneous.
func (c *Context) consumeLibraryClause() bool {
	libraryToken, ok := c.ConsumeIf(lex.Library)
	if !ok {
		return false
	}
	start := int32(c.tree.Size())
	if c.PositionIs(lex.StringLiteral) {
		c.AddLeafNode(Literal, c.Consume(), false)
		c.AddNode(PackageLibrary, libraryToken, start, false)
		return false
	}
	c.emitter.Emit(c.position, errExpectedLibraryName)
	c.AddLeafNode(InvalidParse, c.position, true)
	c.AddNode(PackageLibrary, libraryToken, start, true)
	return true
}

func handlePackageDirective(c *Context) {
	state := c.PopState()

	if !c.ConsumeAndAddLeafNodeIf(lex.Identifier, DeclaredName) {
		c.emitter.Emit(c.position, errExpectedDeclarationName, c.tokens.Text(state.token))
		c.RecoverFromDeclarationError(state, PackageDirective, true)
		return
	}

	if c.consumeLibraryClause() {
		state.hasError = true
	}

	if !c.ConsumeAndAddLeafNodeIf(lex.Api, PackageApi) {
		c.emitter.Emit(c.position, errExpectedPackageApi)
		state.hasError = true
	}

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(PackageDirective, state.token, state.subtreeStart, state.hasError)
		return
	}
	c.EmitExpectedDeclarationSemi(lex.Package)
	c.RecoverFromDeclarationError(state, PackageDirective, true)
}

func handleImportDirective(c *Context) {
	state := c.PopState()

	if !c.ConsumeAndAddLeafNodeIf(lex.Identifier, DeclaredName) {
		c.emitter.Emit(c.position, errExpectedDeclarationName, c.tokens.Text(state.token))
		c.RecoverFromDeclarationError(state, ImportDirective, true)
		return
	}

	if c.consumeLibraryClause() {
		state.hasError = true
	}

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(ImportDirective, state.token, state.subtreeStart, state.hasError)
		return
	}
	c.EmitExpectedDeclarationSemi(lex.Import)
	c.RecoverFromDeclarationError(state, ImportDirective, true)
}

func handleNamespaceFinish(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.RecoverFromDeclarationError(state, NamespaceDeclaration, true)
		return
	}

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(NamespaceDeclaration, state.token, state.subtreeStart, state.hasError)
		return
	}
	c.EmitExpectedDeclarationSemi(lex.Namespace)
	c.RecoverFromDeclarationError(state, NamespaceDeclaration, true)
}
