package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var (
	errExpectedExpression = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedExpression, Level: diagnostics.Error,
		Format: "expected expression"}
	errOperatorRequiresParentheses = diagnostics.Descriptor{
		Kind: diagnostics.OperatorRequiresParentheses, Level: diagnostics.Error,
		Format: "parentheses are required to disambiguate operator precedence"}
	errExpectedIdentifierAfterPeriod = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedIdentifierAfterPeriod, Level: diagnostics.Error,
		Format: "expected identifier after `.`"}
)

func handleExpression(c *Context) {
	state := c.PopState()
	kind := c.PositionKind()

	// `if` heads an if-then-else expression rather than a prefix
	// operator chain.
	if kind == lex.If {
		ifLevel, _ := ForLeading(lex.If)
		if Priority(state.ambientPrecedence, ifLevel) != RightFirst {
			c.emitter.Emit(c.position, errOperatorRequiresParentheses)
			state.hasError = true
		}
		token := c.Consume()
		c.PushFrame(stateStackEntry{
			state:             StateExpressionIfFinishCondition,
			hasError:          state.hasError,
			ambientPrecedence: state.ambientPrecedence,
			token:             token,
			subtreeStart:      state.subtreeStart,
		})
		c.PushStateForExpression(ForTopLevelExpression())
		return
	}

	if lead, ok := ForLeading(kind); ok {
		if Priority(state.ambientPrecedence, lead) != RightFirst {
			c.emitter.Emit(c.position, errOperatorRequiresParentheses)
			state.hasError = true
		}
		token := c.Consume()
		c.PushFrame(stateStackEntry{
			state:             StateExpressionLoopForPrefix,
			hasError:          state.hasError,
			ambientPrecedence: state.ambientPrecedence,
			lhsPrecedence:     lead,
			token:             token,
			subtreeStart:      state.subtreeStart,
		})
		c.PushStateForExpression(lead)
		return
	}

	c.PushFrame(stateStackEntry{
		state:             StateExpressionLoop,
		hasError:          state.hasError,
		ambientPrecedence: state.ambientPrecedence,
		lhsPrecedence:     ForPostfixExpression(),
		token:             state.token,
		subtreeStart:      state.subtreeStart,
	})
	c.PushFrame(stateStackEntry{state: StateExpressionInPostfix, token: c.position, subtreeStart: state.subtreeStart})
}

// canBeginOperand reports whether a token can start an expression.
func (c *Context) canBeginOperand(kind lex.TokenKind) bool {
	switch {
	case kind == lex.Identifier, kind == lex.SelfValue, kind == lex.SelfType,
		kind == lex.StringKeyword, kind == lex.IntegerLiteral,
		kind == lex.RealLiteral, kind == lex.StringLiteral,
		kind.IsSizedTypeLiteral(), kind == lex.OpenParen,
		kind == lex.OpenCurlyBrace, kind == lex.OpenSquareBracket:
		return true
	}
	_, ok := ForLeading(kind)
	return ok
}

// isTrailingOperatorInfix disambiguates tokens usable both infix and
// postfix: symmetric whitespace followed by a possible operand reads as
// infix.
func (c *Context) isTrailingOperatorInfix() bool {
	if c.position >= c.end {
		return false
	}
	if c.tokens.HasLeadingWhitespace(c.position) != c.tokens.HasTrailingWhitespace(c.position) {
		return false
	}
	return c.canBeginOperand(c.tokens.Kind(c.position + 1))
}

func handleExpressionLoop(c *Context) {
	state := c.PopState()

	trailing, ok := ForTrailing(c.PositionKind(), c.isTrailingOperatorInfix())
	if !ok {
		if state.hasError {
			c.ReturnErrorOnState()
		}
		return
	}

	if Priority(state.ambientPrecedence, trailing.Level) != RightFirst {
		// The outer context binds tighter; stop here and leave the
		// operator to it.
		if state.hasError {
			c.ReturnErrorOnState()
		}
		return
	}

	if Priority(state.lhsPrecedence, trailing.Level) != LeftFirst {
		// The previous operator and this one do not compose without
		// explicit grouping.
		c.emitter.Emit(c.position, errOperatorRequiresParentheses)
		state.hasError = true
	}

	token := c.Consume()
	state.token = token
	state.lhsPrecedence = trailing.Level

	if trailing.IsBinary {
		state.state = StateExpressionLoopForBinary
		c.PushFrame(state)
		c.PushStateForExpression(trailing.Level)
		return
	}

	c.AddNode(PostfixOperator, token, state.subtreeStart, state.hasError)
	state.state = StateExpressionLoop
	c.PushFrame(state)
}

func handleExpressionLoopForBinary(c *Context) {
	state := c.PopState()
	c.AddNode(InfixOperator, state.token, state.subtreeStart, state.hasError)
	state.state = StateExpressionLoop
	c.PushFrame(state)
}

func handleExpressionLoopForPrefix(c *Context) {
	state := c.PopState()
	c.AddNode(PrefixOperator, state.token, state.subtreeStart, state.hasError)
	state.state = StateExpressionLoop
	c.PushFrame(state)
}

func handleExpressionIfFinishCondition(c *Context) {
	state := c.PopState()
	c.AddNode(IfExpressionIf, state.token, state.subtreeStart, state.hasError)

	if thenToken, ok := c.ConsumeIf(lex.Then); ok {
		c.PushFrame(stateStackEntry{
			state:        StateExpressionIfFinish,
			hasError:     state.hasError,
			token:        thenToken,
			subtreeStart: state.subtreeStart,
		})
		c.PushFrame(stateStackEntry{
			state:        StateExpressionIfFinishThen,
			token:        thenToken,
			subtreeStart: int32(c.tree.Size()),
		})
		c.PushStateForExpression(ForTopLevelExpression())
		return
	}

	c.emitter.Emit(c.position, errExpectedExpression)
	c.AddLeafNode(InvalidParse, c.position, true)
	c.AddNode(IfExpression, state.token, state.subtreeStart, true)
	c.ReturnErrorOnState()
}

func handleExpressionIfFinishThen(c *Context) {
	state := c.PopState()
	c.AddNode(IfExpressionThen, state.token, state.subtreeStart, state.hasError)

	if elseToken, ok := c.ConsumeIf(lex.Else); ok {
		c.stack[len(c.stack)-1].token = elseToken
		c.PushStateForExpression(ForTopLevelExpression())
		return
	}
	c.emitter.Emit(c.position, errExpectedExpression)
	c.AddLeafNode(InvalidParse, c.position, true)
	c.ReturnErrorOnState()
}

func handleExpressionIfFinish(c *Context) {
	state := c.PopState()
	c.AddNode(IfExpression, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}
