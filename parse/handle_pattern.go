package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

var (
	errExpectedPatternName = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedPatternName, Level: diagnostics.Error,
		Format: "expected a name in pattern"}
	errExpectedPatternColon = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedPatternColon, Level: diagnostics.Error,
		Format: "expected `:` or `:!` after name in pattern"}
)

func handlePattern(c *Context) {
	c.PopAndDiscardState()

	switch c.PositionKind() {
	case lex.Addr:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.PushFrame(stateStackEntry{state: StateAddressPatternFinish, token: token, subtreeStart: start})
		c.PushState(StatePattern)

	case lex.Template:
		start := int32(c.tree.Size())
		token := c.Consume()
		c.PushFrame(stateStackEntry{state: StateTemplatePatternFinish, token: token, subtreeStart: start})
		c.PushState(StatePattern)

	case lex.Identifier, lex.SelfValue:
		start := int32(c.tree.Size())
		nameKind := DeclaredName
		if c.PositionIs(lex.SelfValue) {
			nameKind = SelfValueName
		}
		c.AddLeafNode(nameKind, c.Consume(), false)

		if c.PositionIs(lex.Colon) || c.PositionIs(lex.ColonExclaim) {
			colon := c.Consume()
			c.PushFrame(stateStackEntry{state: StatePatternBindingFinish, token: colon, subtreeStart: start})
			c.PushStateForExpression(ForType())
			return
		}
		c.emitter.Emit(c.position, errExpectedPatternColon)
		c.AddLeafNode(InvalidParse, c.position, true)
		c.ReturnErrorOnState()

	default:
		c.emitter.Emit(c.position, errExpectedPatternName)
		c.AddLeafNode(InvalidParse, c.position, true)
		c.ReturnErrorOnState()
	}
}

func handlePatternBindingFinish(c *Context) {
	state := c.PopState()
	kind := PatternBinding
	if c.tokens.Kind(state.token) == lex.ColonExclaim {
		kind = GenericPatternBinding
	}
	c.AddNode(kind, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}

func handleTemplatePatternFinish(c *Context) {
	state := c.PopState()
	c.AddNode(TemplatePattern, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}

func handleAddressPatternFinish(c *Context) {
	state := c.PopState()
	c.AddNode(Address, state.token, state.subtreeStart, state.hasError)
	if state.hasError {
		c.ReturnErrorOnState()
	}
}
