package parse

import (
	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

// ListTokenKind is the outcome of consuming the token after a list
// element: another element follows, the list closes here, or a trailing
// comma precedes the close.
type ListTokenKind int8

const (
	ListComma ListTokenKind = iota
	ListClose
	ListCommaClose
)

// stateStackEntry is one frame of the parser's state stack: the state
// to run, precedence context for expression states, the token anchoring
// the frame's subtree, and where that subtree starts in the tree.
type stateStackEntry struct {
	state    State
	hasError bool

	// ambientPrecedence bounds how much an expression state may
	// consume; lhsPrecedence is the precedence of the most recently
	// parsed left-hand subtree.
	ambientPrecedence PrecedenceGroup
	lhsPrecedence     PrecedenceGroup

	token        lex.Token
	subtreeStart int32
}

var (
	errExpectedDeclarationName = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedDeclarationName, Level: diagnostics.Error,
		Format: "expected name in `%s` declaration"}
	errExpectedDeclarationSemi = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedDeclarationSemi, Level: diagnostics.Error,
		Format: "`%s` declaration is not terminated by `;`"}
	errExpectedParenAfter = diagnostics.Descriptor{
		Kind: diagnostics.ExpectedParenAfter, Level: diagnostics.Error,
		Format: "expected `(` after `%s`"}
	errUnexpectedTokenAfterListElement = diagnostics.Descriptor{
		Kind: diagnostics.UnexpectedTokenAfterListElement, Level: diagnostics.Error,
		Format: "unexpected tokens in list; expected `,` or the closing bracket"}
)

// Context provides the shared mutable state and helper operations the
// state handlers run against.
type Context struct {
	tree    *Tree
	tokens  *lex.Buffer
	emitter *diagnostics.Emitter[lex.Token]

	position lex.Token
	// The EndOfFile token; the parser never consumes past it.
	end lex.Token

	stack []stateStackEntry
}

func newContext(tree *Tree, tokens *lex.Buffer, emitter *diagnostics.Emitter[lex.Token]) *Context {
	if tokens.Len() == 0 || tokens.Kind(lex.Token(tokens.Len()-1)) != lex.EndOfFile {
		panic("tokenized buffer must end with EndOfFile")
	}
	return &Context{
		tree:    tree,
		tokens:  tokens,
		emitter: emitter,
		end:     lex.Token(tokens.Len() - 1),
	}
}

func (c *Context) Emitter() *diagnostics.Emitter[lex.Token] { return c.emitter }

// PositionKind returns the kind of the current token.
func (c *Context) PositionKind() lex.TokenKind { return c.tokens.Kind(c.position) }

// PositionIs reports whether the current token has the given kind.
func (c *Context) PositionIs(kind lex.TokenKind) bool { return c.PositionKind() == kind }

// Consume returns the current token and advances past it.
func (c *Context) Consume() lex.Token {
	t := c.position
	if c.position < c.end {
		c.position++
	}
	return t
}

// ConsumeChecked consumes the current token, which must have the given
// kind.
func (c *Context) ConsumeChecked(kind lex.TokenKind) lex.Token {
	if !c.PositionIs(kind) {
		panic("expected " + kind.Name() + ", have " + c.PositionKind().Name())
	}
	return c.Consume()
}

// ConsumeIf consumes the current token when it has the given kind.
func (c *Context) ConsumeIf(kind lex.TokenKind) (lex.Token, bool) {
	if !c.PositionIs(kind) {
		return lex.InvalidToken, false
	}
	return c.Consume(), true
}

// AddLeafNode appends a childless node.
func (c *Context) AddLeafNode(kind NodeKind, token lex.Token, hasError bool) {
	c.tree.nodeInfos = append(c.tree.nodeInfos, nodeInfo{
		kind: kind, hasError: hasError, token: token, subtreeSize: 1,
	})
	if hasError {
		c.tree.hasErrors = true
	}
}

// AddNode appends an interior node covering everything appended since
// subtreeStart. The node is marked erroneous when any child is.
func (c *Context) AddNode(kind NodeKind, token lex.Token, subtreeStart int32, hasError bool) {
	for i := int32(c.tree.Size()) - 1; i >= subtreeStart; i -= c.tree.nodeInfos[i].subtreeSize {
		if c.tree.nodeInfos[i].hasError {
			hasError = true
		}
	}
	subtreeSize := int32(c.tree.Size()) - subtreeStart + 1
	c.tree.nodeInfos = append(c.tree.nodeInfos, nodeInfo{
		kind: kind, hasError: hasError, token: token, subtreeSize: subtreeSize,
	})
	if hasError {
		c.tree.hasErrors = true
	}
}

// ConsumeAndAddLeafNodeIf adds a leaf for the current token when it has
// the wanted kind.
func (c *Context) ConsumeAndAddLeafNodeIf(tokenKind lex.TokenKind, nodeKind NodeKind) bool {
	token, ok := c.ConsumeIf(tokenKind)
	if !ok {
		return false
	}
	c.AddLeafNode(nodeKind, token, false)
	return true
}

// PushState pushes a fresh frame anchored at the current position.
func (c *Context) PushState(state State) {
	c.push(stateStackEntry{
		state:        state,
		token:        c.position,
		subtreeStart: int32(c.tree.Size()),
	})
}

// PushStateWith pushes a fresh frame anchored at the given token.
func (c *Context) PushStateWith(state State, token lex.Token) {
	c.push(stateStackEntry{
		state:        state,
		token:        token,
		subtreeStart: int32(c.tree.Size()),
	})
}

// PushStateForExpression pushes an expression frame with the given
// ambient precedence.
func (c *Context) PushStateForExpression(ambient PrecedenceGroup) {
	c.push(stateStackEntry{
		state:             StateExpression,
		ambientPrecedence: ambient,
		lhsPrecedence:     ForPostfixExpression(),
		token:             c.position,
		subtreeStart:      int32(c.tree.Size()),
	})
}

// PushFrame re-pushes a frame, typically after updating its state.
func (c *Context) PushFrame(entry stateStackEntry) { c.push(entry) }

func (c *Context) push(entry stateStackEntry) {
	c.stack = append(c.stack, entry)
}

// PopState removes and returns the top frame.
func (c *Context) PopState() stateStackEntry {
	entry := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return entry
}

// PopAndDiscardState removes the top frame.
func (c *Context) PopAndDiscardState() { c.PopState() }

// ReturnErrorOnState marks the frame that will run next as erroneous.
func (c *Context) ReturnErrorOnState() {
	if len(c.stack) > 0 {
		c.stack[len(c.stack)-1].hasError = true
	}
}

// ConsumeListToken handles the token after a list element. Unexpected
// tokens diagnose once, mark the next frame erroneous, and skip ahead
// to the next comma or closing bracket at this nesting level.
func (c *Context) ConsumeListToken(commaKind NodeKind, closeKind lex.TokenKind) ListTokenKind {
	if !c.PositionIs(lex.Comma) && !c.PositionIs(closeKind) {
		c.emitter.Emit(c.position, errUnexpectedTokenAfterListElement)
		c.ReturnErrorOnState()
		c.skipToListToken(closeKind)
	}

	if c.PositionIs(closeKind) || !c.PositionIs(lex.Comma) {
		return ListClose
	}
	c.AddLeafNode(commaKind, c.Consume(), false)
	if c.PositionIs(closeKind) {
		return ListCommaClose
	}
	return ListComma
}

func (c *Context) skipToListToken(closeKind lex.TokenKind) {
	for {
		kind := c.PositionKind()
		if kind == lex.Comma || kind == closeKind || kind == lex.EndOfFile ||
			kind.IsClosingSymbol() {
			return
		}
		if kind.IsOpeningSymbol() {
			c.position = c.tokens.MatchedClosingToken(c.position) + 1
			continue
		}
		c.position++
	}
}

// ConsumeAndAddCloseSymbol finishes a bracketed construct: it consumes
// the opener's matched closer, skipping (with an error mark) anything
// unexpected before it, and appends the node. When the opener itself
// was missing, the node is emitted in place without consuming.
func (c *Context) ConsumeAndAddCloseSymbol(opener lex.Token, state stateStackEntry, kind NodeKind) {
	if !c.tokens.Kind(opener).IsOpeningSymbol() {
		c.AddNode(kind, state.token, state.subtreeStart, true)
		return
	}
	closer := c.tokens.MatchedClosingToken(opener)
	if c.position != closer {
		c.emitter.Emit(c.position, errUnexpectedTokenAfterListElement)
		state.hasError = true
		c.position = closer
	}
	c.AddNode(kind, c.Consume(), state.subtreeStart, state.hasError)
}

// ConsumeAndAddOpenParen consumes a `(` and adds its start leaf. When
// the paren is missing, an erroneous start leaf anchors at the current
// token instead.
func (c *Context) ConsumeAndAddOpenParen(introducer lex.Token, startKind NodeKind) (lex.Token, bool) {
	if token, ok := c.ConsumeIf(lex.OpenParen); ok {
		c.AddLeafNode(startKind, token, false)
		return token, true
	}
	c.emitter.Emit(c.position, errExpectedParenAfter, c.tokens.Text(introducer))
	c.AddLeafNode(startKind, c.position, true)
	return lex.InvalidToken, false
}

// SkipMatchingGroup jumps past the current token's matched closer when
// it is an opening bracket.
func (c *Context) SkipMatchingGroup() bool {
	if !c.PositionKind().IsOpeningSymbol() {
		return false
	}
	c.position = c.tokens.MatchedClosingToken(c.position) + 1
	return true
}

// SkipPastLikelyEnd seeks a likely terminator for the construct rooted
// at skipRoot: a semicolon on the same line or at deeper indentation.
// It stops without consuming at a closing curly brace. The consumed
// semicolon is returned when found.
func (c *Context) SkipPastLikelyEnd(skipRoot lex.Token) (lex.Token, bool) {
	if c.position == c.end {
		return lex.InvalidToken, false
	}

	rootLine := c.tokens.TokenLine(skipRoot)
	rootLineIndent := c.tokens.IndentColumnNumber(rootLine)

	inScope := func(t lex.Token) bool {
		line := c.tokens.TokenLine(t)
		if line == rootLine {
			return true
		}
		return c.tokens.IndentColumnNumber(line) > rootLineIndent
	}

	for {
		switch c.PositionKind() {
		case lex.CloseCurlyBrace:
			return lex.InvalidToken, false
		case lex.Semi:
			return c.Consume(), true
		}

		if !c.SkipMatchingGroup() {
			c.position++
		}

		if c.position == c.end || !inScope(c.position) {
			return lex.InvalidToken, false
		}
	}
}

// RecoverFromDeclarationError finishes a declaration that cannot be
// parsed: it optionally skips to a likely terminator and emits the
// declaration node with its error bit set.
func (c *Context) RecoverFromDeclarationError(state stateStackEntry, kind NodeKind, skipPastLikelyEnd bool) {
	if skipPastLikelyEnd {
		if semi, ok := c.SkipPastLikelyEnd(state.token); ok {
			c.AddLeafNode(DeclarationEnd, semi, false)
			c.AddNode(kind, state.token, state.subtreeStart, true)
			return
		}
	}
	c.AddNode(kind, state.token, state.subtreeStart, true)
}

// EmitExpectedDeclarationSemi diagnoses a declaration missing its
// terminating semicolon.
func (c *Context) EmitExpectedDeclarationSemi(introducer lex.TokenKind) {
	c.emitter.Emit(c.position, errExpectedDeclarationSemi, introducer.FixedSpelling())
}
