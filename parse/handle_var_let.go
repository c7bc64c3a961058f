package parse

import "github.com/dhamidi/zest/lex"

func (c *Context) beginVariableDeclaration() {
	start := int32(c.tree.Size())
	token := c.ConsumeChecked(lex.Var)
	c.AddLeafNode(VariableIntroducer, token, false)
	if c.PositionIs(lex.Returned) {
		c.AddLeafNode(ReturnedModifier, c.Consume(), false)
	}
	c.PushFrame(stateStackEntry{state: StateVariableAfterPattern, token: token, subtreeStart: start})
	c.PushState(StatePattern)
}

func handleVariableAfterPattern(c *Context) {
	state := c.PopState()
	state.state = StateVariableFinish
	c.PushFrame(state)

	if equal, ok := c.ConsumeIf(lex.Equal); ok {
		c.AddLeafNode(VariableInitializer, equal, false)
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

func handleVariableFinish(c *Context) {
	state := c.PopState()

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(VariableDeclaration, state.token, state.subtreeStart, state.hasError)
		return
	}
	c.EmitExpectedDeclarationSemi(lex.Var)
	c.RecoverFromDeclarationError(state, VariableDeclaration, true)
}

func (c *Context) beginLetDeclaration() {
	start := int32(c.tree.Size())
	token := c.ConsumeChecked(lex.Let)
	c.AddLeafNode(LetIntroducer, token, false)
	c.PushFrame(stateStackEntry{state: StateLetAfterPattern, token: token, subtreeStart: start})
	c.PushState(StatePattern)
}

func handleLetAfterPattern(c *Context) {
	state := c.PopState()
	state.state = StateLetFinish
	c.PushFrame(state)

	if equal, ok := c.ConsumeIf(lex.Equal); ok {
		c.AddLeafNode(LetInitializer, equal, false)
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

func handleLetFinish(c *Context) {
	state := c.PopState()

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(LetDeclaration, state.token, state.subtreeStart, state.hasError)
		return
	}
	c.EmitExpectedDeclarationSemi(lex.Let)
	c.RecoverFromDeclarationError(state, LetDeclaration, true)
}
