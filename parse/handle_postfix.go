package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var (
	errExpectedArraySemi = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedArraySemi, Level: diagnostics.Error,
		Format: "expected `;` in array type"}
	errExpectedStructFieldValue = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedStructFieldValue, Level: diagnostics.Error,
		Format: "expected `.field = value` or `.field: type` in structure literal"}
)

func handleExpressionInPostfix(c *Context) {
	state := c.PopState()
	loop := stateStackEntry{
		state:        StateExpressionInPostfixLoop,
		token:        state.token,
		subtreeStart: state.subtreeStart,
	}

	switch kind := c.PositionKind(); {
	case kind == lex.Identifier:
		c.AddLeafNode(Name, c.Consume(), false)
		c.PushFrame(loop)

	case kind == lex.SelfValue:
		c.AddLeafNode(SelfValueName, c.Consume(), false)
		c.PushFrame(loop)

	case kind == lex.IntegerLiteral || kind == lex.RealLiteral ||
		kind == lex.StringLiteral || kind.IsSizedTypeLiteral() ||
		kind == lex.SelfType || kind == lex.StringKeyword:
		c.AddLeafNode(Literal, c.Consume(), false)
		c.PushFrame(loop)

	case kind == lex.OpenParen:
		start := int32(c.tree.Size())
		opener := c.Consume()
		c.AddLeafNode(ParenExpressionOrTupleLiteralStart, opener, false)
		c.PushFrame(loop)
		c.PushFrame(stateStackEntry{state: StateParenExpressionFinish, token: opener, subtreeStart: start})
		if !c.PositionIs(lex.CloseParen) {
			c.PushFrame(stateStackEntry{state: StateParenExpressionParameterFinish, token: opener})
			c.PushStateForExpression(ForTopLevelExpression())
		}

	case kind == lex.OpenCurlyBrace:
		start := int32(c.tree.Size())
		opener := c.Consume()
		c.AddLeafNode(StructLiteralOrStructTypeLiteralStart, opener, false)
		c.PushFrame(loop)
		c.PushFrame(stateStackEntry{state: StateBraceExpressionFinish, token: opener, subtreeStart: start})
		if !c.PositionIs(lex.CloseCurlyBrace) {
			c.PushFrame(stateStackEntry{state: StateBraceExpressionParameterFinish, token: opener})
			c.PushState(StateBraceExpressionField)
		}

	case kind == lex.OpenSquareBracket:
		start := int32(c.tree.Size())
		opener := c.Consume()
		c.AddLeafNode(ArrayExpressionStart, opener, false)
		c.PushFrame(loop)
		c.PushFrame(stateStackEntry{state: StateArrayExpressionSemi, token: opener, subtreeStart: start})
		c.PushStateForExpression(ForTopLevelExpression())

	default:
		c.emitter.Emit(c.position, errExpectedExpression)
		c.AddLeafNode(InvalidParse, c.position, true)
		c.ReturnErrorOnState()
	}
}

func handleExpressionInPostfixLoop(c *Context) {
	state := c.PopState()

	switch c.PositionKind() {
	case lex.Period:
		token := c.Consume()
		if c.PositionIs(lex.Identifier) {
			c.AddLeafNode(Name, c.Consume(), false)
		} else {
			c.emitter.Emit(c.position, errExpectedIdentifierAfterPeriod)
			c.AddLeafNode(InvalidParse, c.position, true)
			state.hasError = true
		}
		c.AddNode(MemberAccessExpression, token, state.subtreeStart, state.hasError)
		c.PushFrame(state)

	case lex.MinusGreater:
		token := c.Consume()
		if c.PositionIs(lex.Identifier) {
			c.AddLeafNode(Name, c.Consume(), false)
		} else {
			c.emitter.Emit(c.position, errExpectedIdentifierAfterPeriod)
			c.AddLeafNode(InvalidParse, c.position, true)
			state.hasError = true
		}
		c.AddNode(PointerMemberAccessExpression, token, state.subtreeStart, state.hasError)
		c.PushFrame(state)

	case lex.OpenParen:
		opener := c.Consume()
		c.AddNode(CallExpressionStart, opener, state.subtreeStart, state.hasError)
		state.state = StateCallExpressionFinish
		state.token = opener
		c.PushFrame(state)
		if !c.PositionIs(lex.CloseParen) {
			c.PushFrame(stateStackEntry{state: StateCallExpressionParameterFinish, token: opener})
			c.PushStateForExpression(ForTopLevelExpression())
		}

	case lex.OpenSquareBracket:
		opener := c.Consume()
		c.AddNode(IndexExpressionStart, opener, state.subtreeStart, state.hasError)
		state.state = StateIndexExpressionFinish
		state.token = opener
		c.PushFrame(state)
		c.PushStateForExpression(ForTopLevelExpression())

	default:
		if state.hasError {
			c.ReturnErrorOnState()
		}
	}
}

func handleCallExpressionParameterFinish(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.ReturnErrorOnState()
	}

	if c.ConsumeListToken(CallExpressionComma, lex.CloseParen) == ListComma {
		c.PushFrame(stateStackEntry{state: StateCallExpressionParameterFinish, token: state.token})
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

func handleCallExpressionFinish(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, CallExpression)
	state.state = StateExpressionInPostfixLoop
	c.PushFrame(state)
}

func handleIndexExpressionFinish(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, IndexExpression)
	state.state = StateExpressionInPostfixLoop
	c.PushFrame(state)
}

func handleParenExpressionParameterFinish(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.ReturnErrorOnState()
	}

	if c.ConsumeListToken(TupleLiteralComma, lex.CloseParen) == ListComma {
		c.PushFrame(stateStackEntry{state: StateParenExpressionParameterFinish, token: state.token})
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

// subtreeContainsDirectChild reports whether any direct child of the
// pending node (everything appended since subtreeStart) has the kind.
func (c *Context) subtreeContainsDirectChild(subtreeStart int32, kind NodeKind) bool {
	for i := int32(c.tree.Size()) - 1; i >= subtreeStart; i -= c.tree.nodeInfos[i].subtreeSize {
		if c.tree.nodeInfos[i].kind == kind {
			return true
		}
	}
	return false
}

func handleParenExpressionFinish(c *Context) {
	state := c.PopState()

	// A comma anywhere at the top level, or an empty `()`, makes this a
	// tuple rather than grouping parens.
	kind := ParenExpression
	if int32(c.tree.Size()) == state.subtreeStart+1 ||
		c.subtreeContainsDirectChild(state.subtreeStart, TupleLiteralComma) {
		kind = TupleLiteral
	}
	c.ConsumeAndAddCloseSymbol(state.token, state, kind)
}

func handleBraceExpressionField(c *Context) {
	c.PopAndDiscardState()

	if !c.PositionIs(lex.Period) {
		c.emitter.Emit(c.position, errExpectedStructFieldValue)
		c.AddLeafNode(InvalidParse, c.position, true)
		c.ReturnErrorOnState()
		return
	}

	start := int32(c.tree.Size())
	designator := c.Consume()
	hasError := false
	if c.PositionIs(lex.Identifier) {
		c.AddLeafNode(DesignatedName, c.Consume(), false)
	} else {
		c.emitter.Emit(c.position, errExpectedIdentifierAfterPeriod)
		c.AddLeafNode(InvalidParse, c.position, true)
		hasError = true
	}
	c.AddNode(StructFieldDesignator, designator, start, hasError)

	if c.PositionIs(lex.Equal) || c.PositionIs(lex.Colon) {
		token := c.Consume()
		c.PushFrame(stateStackEntry{state: StateStructFieldFinish, hasError: hasError, token: token, subtreeStart: start})
		c.PushStateForExpression(ForTopLevelExpression())
		return
	}
	c.emitter.Emit(c.position, errExpectedStructFieldValue)
	c.ReturnErrorOnState()
}

func handleStructFieldFinish(c *Context) {
	state := c.PopState()
	kind := StructFieldValue
	if c.tokens.Kind(state.token) == lex.Colon {
		kind = StructFieldType
	}
	c.AddNode(kind, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}

func handleBraceExpressionParameterFinish(c *Context) {
	state := c.PopState()

	if state.hasError {
		c.ReturnErrorOnState()
	}

	if c.ConsumeListToken(StructComma, lex.CloseCurlyBrace) == ListComma {
		c.PushFrame(stateStackEntry{state: StateBraceExpressionParameterFinish, token: state.token})
		c.PushState(StateBraceExpressionField)
	}
}

func handleBraceExpressionFinish(c *Context) {
	state := c.PopState()

	kind := StructLiteral
	if c.subtreeContainsDirectChild(state.subtreeStart, StructFieldType) {
		kind = StructTypeLiteral
	}
	c.ConsumeAndAddCloseSymbol(state.token, state, kind)
}

func handleArrayExpressionSemi(c *Context) {
	state := c.PopState()

	semi, ok := c.ConsumeIf(lex.Semi)
	if !ok {
		c.AddNode(ArrayExpressionSemi, c.position, state.subtreeStart, true)
		c.emitter.Emit(c.position, errExpectedArraySemi)
		state.hasError = true
	} else {
		c.AddNode(ArrayExpressionSemi, semi, state.subtreeStart, state.hasError)
	}
	state.state = StateArrayExpressionFinish
	c.PushFrame(state)
	if !c.PositionIs(lex.CloseSquareBracket) {
		c.PushStateForExpression(ForTopLevelExpression())
	}
}

func handleArrayExpressionFinish(c *Context) {
	state := c.PopState()
	c.ConsumeAndAddCloseSymbol(state.token, state, ArrayExpression)
}
