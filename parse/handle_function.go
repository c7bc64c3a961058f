package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var errExpectedParameterList = diagnostics.Descriptor{
	Kind: diagnostics.ExpectedParameterList, Level: diagnostics.Error,
	Format: "expected `(` to begin the parameter list"}

func handleFunctionSignature(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.RecoverFromDeclarationError(state, FunctionDeclaration, true)
		return
	}

	if c.PositionIs(lex.OpenSquareBracket) {
		state.state = StateFunctionSignatureAfterDeduced
		c.PushFrame(state)
		c.beginParameterList(DeducedParameterListStart)
		return
	}
	c.requireParameterList(state)
}

func handleFunctionSignatureAfterDeduced(c *Context) {
	state := c.PopState()
	c.requireParameterList(state)
}

func (c *Context) requireParameterList(state stateStackEntry) {
	if !c.PositionIs(lex.OpenParen) {
		c.emitter.Emit(c.position, errExpectedParameterList)
		state.hasError = true
		c.RecoverFromDeclarationError(state, FunctionDeclaration, true)
		return
	}
	state.state = StateFunctionAfterParameters
	c.PushFrame(state)
	c.beginParameterList(ParameterListStart)
}

// beginParameterList consumes the opening bracket and sets up the
// pattern list states. The current token must be the opener.
func (c *Context) beginParameterList(startKind NodeKind) {
	start := int32(c.tree.Size())
	opener := c.Consume()
	c.AddLeafNode(startKind, opener, false)
	c.PushFrame(stateStackEntry{state: StateParameterListFinish, token: opener, subtreeStart: start})
	if !c.PositionIs(c.tokens.Kind(opener).ClosingSymbol()) {
		c.PushFrame(stateStackEntry{state: StateParameterFinish, token: opener})
		c.PushState(StatePattern)
	}
}

func handleParameterFinish(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.ReturnErrorOnState()
	}

	closeKind := c.tokens.Kind(state.token).ClosingSymbol()
	if c.ConsumeListToken(PatternListComma, closeKind) == ListComma {
		c.PushFrame(stateStackEntry{state: StateParameterFinish, token: state.token})
		c.PushState(StatePattern)
	}
}

func handleParameterListFinish(c *Context) {
	state := c.PopState()
	kind := ParameterList
	if c.tokens.Kind(state.token) == lex.OpenSquareBracket {
		kind = DeducedParameterList
	}
	c.ConsumeAndAddCloseSymbol(state.token, state, kind)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}

func handleFunctionAfterParameters(c *Context) {
	state := c.PopState()

	if arrow, ok := c.ConsumeIf(lex.MinusGreater); ok {
		state.state = StateFunctionSignatureFinish
		c.PushFrame(state)
		c.PushFrame(stateStackEntry{state: StateFunctionReturnType, token: arrow, subtreeStart: int32(c.tree.Size())})
		c.PushStateForExpression(ForType())
		return
	}
	state.state = StateFunctionSignatureFinish
	c.PushFrame(state)
}

func handleFunctionReturnType(c *Context) {
	state := c.PopState()
	c.AddNode(ReturnType, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}

func handleFunctionSignatureFinish(c *Context) {
	state := c.PopState()

	switch c.PositionKind() {
	case lex.Semi:
		c.AddLeafNode(DeclarationEnd, c.Consume(), false)
		c.AddNode(FunctionDeclaration, state.token, state.subtreeStart, state.hasError)

	case lex.OpenCurlyBrace:
		c.AddNode(FunctionDefinitionStart, c.Consume(), state.subtreeStart, state.hasError)
		state.state = StateFunctionDefinitionFinish
		c.PushFrame(state)
		c.PushState(StateStatementScopeLoop)

	default:
		c.EmitExpectedDeclarationSemi(lex.Fn)
		state.hasError = true
		c.RecoverFromDeclarationError(state, FunctionDeclaration, true)
	}
}

func handleFunctionDefinitionFinish(c *Context) {
	state := c.PopState()
	c.AddNode(FunctionDefinition, c.Consume(), state.subtreeStart, state.hasError)
}
