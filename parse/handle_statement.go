package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var (
	errExpectedCodeBlock = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedCodeBlock, Level: diagnostics.Error,
		Format: "expected braced code block"}
	errExpectedSemiAfterExpression = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedSemiAfterExpression, Level: diagnostics.Error,
		Format: "expected `;` after expression"}
)

func handleStatement(c *Context) {
	c.PopAndDiscardState()

	switch c.PositionKind() {
	case lex.If:
		c.beginIfStatement()

	case lex.While:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.PushFrame(stateStackEntry{state: StateWhileStatementFinish, token: token, subtreeStart: start})
		c.PushState(StateCodeBlock)
		c.PushFrame(stateStackEntry{state: StateParenConditionAsWhile, token: token, subtreeStart: start})

	case lex.Match:
		c.beginMatchStatement()

	case lex.Return:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(ReturnStatementStart, token, false)
		c.PushFrame(stateStackEntry{state: StateReturnStatementFinish, token: token, subtreeStart: start})
		if !c.PositionIs(lex.Semi) {
			c.PushStateForExpression(ForTopLevelExpression())
		}

	case lex.Break:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(BreakStatementStart, token, false)
		c.PushFrame(stateStackEntry{state: StateBreakStatementFinish, token: token, subtreeStart: start})

	case lex.Continue:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(ContinueStatementStart, token, false)
		c.PushFrame(stateStackEntry{state: StateContinueStatementFinish, token: token, subtreeStart: start})

	case lex.Var:
		c.beginVariableDeclaration()

	case lex.Let:
		c.beginLetDeclaration()

	case lex.OpenCurlyBrace:
		c.PushState(StateCodeBlock)

	default:
		c.PushFrame(stateStackEntry{
			state:        StateExpressionStatementFinish,
			token:        c.position,
			subtreeStart: int32(c.tree.Size()),
		})
		c.PushStateForExpression(ForExpressionStatement())
	}
}

func handleStatementScopeLoop(c *Context) {
	if c.PositionIs(lex.CloseCurlyBrace) || c.PositionIs(lex.EndOfFile) {
		c.PopAndDiscardState()
		return
	}
	c.PushState(StateStatement)
}

func handleExpressionStatementFinish(c *Context) {
	state := c.PopState()

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddNode(ExpressionStatement, semi, state.subtreeStart, state.hasError)
		return
	}
	c.emitter.Emit(c.position, errExpectedSemiAfterExpression)
	if semi, ok := c.SkipPastLikelyEnd(state.token); ok {
		c.AddNode(ExpressionStatement, semi, state.subtreeStart, true)
		return
	}
	c.AddNode(ExpressionStatement, state.token, state.subtreeStart, true)
}

func handleCodeBlock(c *Context) {
	c.PopAndDiscardState()

	c.PushState(StateCodeBlockFinish)
	if c.ConsumeAndAddLeafNodeIf(lex.OpenCurlyBrace, CodeBlockStart) {
		c.PushState(StateStatementScopeLoop)
		return
	}

	c.AddLeafNode(CodeBlockStart, c.position, true)

	// Recover by parsing a single statement.
	c.emitter.Emit(c.position, errExpectedCodeBlock)
	c.PushState(StateStatement)
}

func handleCodeBlockFinish(c *Context) {
	state := c.PopState()

	// If the block started with an open curly, this is a close curly.
	if c.tokens.Kind(state.token) == lex.OpenCurlyBrace {
		c.AddNode(CodeBlock, c.Consume(), state.subtreeStart, state.hasError)
		return
	}
	c.AddNode(CodeBlock, state.token, state.subtreeStart, true)
}

func (c *Context) beginIfStatement() {
	start := int32(c.tree.Size())
	token := c.ConsumeChecked(lex.If)
	c.PushFrame(stateStackEntry{state: StateIfStatementFinishThen, token: token, subtreeStart: start})
	c.PushState(StateCodeBlock)
	c.PushFrame(stateStackEntry{state: StateParenConditionAsIf, token: token, subtreeStart: start})
}

func handleIfStatementFinishThen(c *Context) {
	state := c.PopState()

	if elseToken, ok := c.ConsumeIf(lex.Else); ok {
		c.AddLeafNode(IfStatementElse, elseToken, false)
		state.state = StateIfStatementFinishElse
		c.PushFrame(state)
		// An `else if` nests a full if statement as the else branch.
		if c.PositionIs(lex.If) {
			c.beginIfStatement()
		} else {
			c.PushState(StateCodeBlock)
		}
		return
	}
	c.AddNode(IfStatement, state.token, state.subtreeStart, state.hasError)
}

func handleIfStatementFinishElse(c *Context) {
	state := c.PopState()
	c.AddNode(IfStatement, state.token, state.subtreeStart, state.hasError)
}

func handleWhileStatementFinish(c *Context) {
	state := c.PopState()
	c.AddNode(WhileStatement, state.token, state.subtreeStart, state.hasError)
}

func handleReturnStatementFinish(c *Context) {
	state := c.PopState()
	keywordStatementFinish(c, state, ReturnStatement)
}

func handleBreakStatementFinish(c *Context) {
	state := c.PopState()
	keywordStatementFinish(c, state, BreakStatement)
}

func handleContinueStatementFinish(c *Context) {
	state := c.PopState()
	keywordStatementFinish(c, state, ContinueStatement)
}

func keywordStatementFinish(c *Context, state stateStackEntry, kind NodeKind) {
	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddNode(kind, semi, state.subtreeStart, state.hasError)
		return
	}
	c.emitter.Emit(c.position, errExpectedSemiAfterExpression)
	if semi, ok := c.SkipPastLikelyEnd(state.token); ok {
		c.AddNode(kind, semi, state.subtreeStart, true)
		return
	}
	c.AddNode(kind, state.token, state.subtreeStart, true)
}
