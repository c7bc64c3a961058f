package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var errExpectedMatchCases = diagnostics.Descriptor{
	Kind: diagnostics.ExpectedMatchCases, Level: diagnostics.Error,
	Format: "expected braced `case` list after `match` condition"}

func (c *Context) beginMatchStatement() {
	start := int32(c.tree.Size())
	token := c.ConsumeChecked(lex.Match)
	c.PushFrame(stateStackEntry{state: StateMatchStatementFinish, token: token, subtreeStart: start})
	c.PushFrame(stateStackEntry{state: StateMatchCases, token: token})
	c.PushFrame(stateStackEntry{state: StateParenConditionAsMatch, token: token, subtreeStart: start})
}

func handleMatchCases(c *Context) {
	c.PopAndDiscardState()

	if c.PositionIs(lex.OpenCurlyBrace) {
		start := int32(c.tree.Size())
		opener := c.Consume()
		c.AddLeafNode(MatchCasesStart, opener, false)
		c.PushFrame(stateStackEntry{state: StateMatchCasesFinish, token: opener, subtreeStart: start})
		c.PushState(StateMatchCaseLoop)
		return
	}

	c.emitter.Emit(c.position, errExpectedMatchCases)
	c.AddLeafNode(InvalidParse, c.position, true)
	c.ReturnErrorOnState()
}

func handleMatchCaseLoop(c *Context) {
	switch c.PositionKind() {
	case lex.Case:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(MatchCaseIntroducer, token, false)
		c.PushFrame(stateStackEntry{state: StateMatchCaseFinish, token: token, subtreeStart: start})
		c.PushFrame(stateStackEntry{state: StateMatchCaseAfterPattern, token: token})
		c.PushState(StatePattern)

	case lex.Default:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.AddLeafNode(MatchDefaultIntroducer, token, false)
		finish := stateStackEntry{state: StateMatchDefaultFinish, token: token, subtreeStart: start}
		if equalGreater, ok := c.ConsumeIf(lex.EqualGreater); ok {
			c.AddLeafNode(MatchCaseEqualGreater, equalGreater, false)
		} else {
			c.emitter.Emit(c.position, errExpectedCodeBlock)
			finish.hasError = true
		}
		c.PushFrame(finish)
		c.PushState(StateCodeBlock)

	case lex.CloseCurlyBrace, lex.EndOfFile:
		c.PopAndDiscardState()

	default:
		c.emitter.Emit(c.position, errUnexpectedTokenAfterListElement)
		c.AddLeafNode(InvalidParse, c.Consume(), true)
	}
}

func handleMatchCaseAfterPattern(c *Context) {
	state := c.PopState()

	if equalGreater, ok := c.ConsumeIf(lex.EqualGreater); ok {
		c.AddLeafNode(MatchCaseEqualGreater, equalGreater, false)
	} else {
		c.emitter.Emit(c.position, errExpectedCodeBlock)
		c.ReturnErrorOnState()
	}
	if state.hasError {
		c.ReturnErrorOnState()
	}
	c.PushState(StateCodeBlock)
}

func handleMatchCaseFinish(c *Context) {
	state := c.PopState()
	c.AddNode(MatchCase, state.token, state.subtreeStart, state.hasError)
}

func handleMatchDefaultFinish(c *Context) {
	state := c.PopState()
	c.AddNode(MatchDefault, state.token, state.subtreeStart, state.hasError)
}

func handleMatchCasesFinish(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, MatchCases)
}

func handleMatchStatementFinish(c *Context) {
	state := c.PopState()
	c.AddNode(MatchStatement, state.token, state.subtreeStart, state.hasError)
}
