package parse

import "github.com/dhamidi/zest/lex"

// Class, interface, and named constraint declarations share one shape:
// an introducer, a name, and either `;` or a braced declaration scope.

func (c *Context) beginTypeDeclaration(introducerKind NodeKind, afterName State) {
	start := int32(c.tree.Size())
	token := c.Consume()
	c.AddLeafNode(introducerKind, token, false)
	c.PushFrame(stateStackEntry{state: afterName, token: token, subtreeStart: start})
	c.PushFrame(stateStackEntry{state: StateDeclarationName, token: token})
}

func typeAfterName(c *Context, declKind, defStartKind NodeKind, definitionFinish State, introducer lex.TokenKind) {
	state := c.PopState()

	if state.hasError {
		c.RecoverFromDeclarationError(state, declKind, true)
		return
	}

	if semi, ok := c.ConsumeIf(lex.Semi); ok {
		c.AddLeafNode(DeclarationEnd, semi, false)
		c.AddNode(declKind, state.token, state.subtreeStart, state.hasError)
		return
	}

	if c.PositionIs(lex.OpenCurlyBrace) {
		c.AddNode(defStartKind, c.Consume(), state.subtreeStart, state.hasError)
		state.state = definitionFinish
		c.PushFrame(state)
		c.PushState(StateTypeScopeDeclarationLoop)
		return
	}

	c.EmitExpectedDeclarationSemi(introducer)
	c.RecoverFromDeclarationError(state, declKind, true)
}

func typeDefinitionFinish(c *Context, defKind NodeKind) {
	state := c.PopState()
	c.AddNode(defKind, c.Consume(), state.subtreeStart, state.hasError)
}

func handleClassAfterName(c *Context) {
	typeAfterName(c, ClassDeclaration, ClassDefinitionStart, StateClassDefinitionFinish, lex.Class)
}

func handleClassDefinitionFinish(c *Context) {
	typeDefinitionFinish(c, ClassDefinition)
}

func handleInterfaceAfterName(c *Context) {
	typeAfterName(c, InterfaceDeclaration, InterfaceDefinitionStart, StateInterfaceDefinitionFinish, lex.Interface)
}

func handleInterfaceDefinitionFinish(c *Context) {
	typeDefinitionFinish(c, InterfaceDefinition)
}

func handleNamedConstraintAfterName(c *Context) {
	typeAfterName(c, NamedConstraintDeclaration, NamedConstraintDefinitionStart, StateNamedConstraintDefinitionFinish, lex.Constraint)
}

func handleNamedConstraintDefinitionFinish(c *Context) {
	typeDefinitionFinish(c, NamedConstraintDefinition)
}
