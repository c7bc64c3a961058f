package parse

import "github.com/dhamidi/zest/lex"

// Handles ParenConditionAs(If|While|Match).
func parenCondition(c *Context, startKind NodeKind, finishState State) {
	state := c.PopState()

	openParen, ok := c.ConsumeAndAddOpenParen(state.token, startKind)
	if ok {
		state.token = openParen
	} else {
		state.hasError = true
	}
	state.state = finishState
	c.PushFrame(state)

	if !ok && c.PositionIs(lex.OpenCurlyBrace) {
		// For an open curly, assume the condition was completely
		// omitted. Expression parsing would treat the `{` as a struct
		// literal; emit an invalid parse and leave it for the block.
		c.AddLeafNode(InvalidParse, c.position, true)
	} else {
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

func handleParenConditionAsIf(c *Context) {
	parenCondition(c, IfConditionStart, StateParenConditionFinishAsIf)
}

func handleParenConditionAsWhile(c *Context) {
	parenCondition(c, WhileConditionStart, StateParenConditionFinishAsWhile)
}

func handleParenConditionAsMatch(c *Context) {
	parenCondition(c, MatchConditionStart, StateParenConditionFinishAsMatch)
}

func handleParenConditionFinishAsIf(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, IfCondition)
}

func handleParenConditionFinishAsWhile(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, WhileCondition)
}

func handleParenConditionFinishAsMatch(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, MatchCondition)
}
