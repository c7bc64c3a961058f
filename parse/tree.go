// Package parse builds a parse tree from a tokenized buffer. The tree
// is a flat post-order array of nodes; the parser is a state machine
// over an explicit stack, so error recovery stays local to the state
// that detects the problem.
package parse

import (
	"fmt"
	"io"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
)

// Node is a lightweight handle to one node in a Tree: a 32-bit
// post-order index.
type Node int32

// InvalidNode is the sentinel for absent nodes.
const InvalidNode Node = -1

// Index returns the node's post-order position.
func (n Node) Index() int { return int(n) }

// nodeInfo is the in-memory record of one node.
type nodeInfo struct {
	kind     NodeKind
	hasError bool
	// The token whose position represents this node.
	token lex.Token
	// Number of nodes this node covers in post-order, itself included.
	// In reverse post-order it is the jump to the next non-descendant.
	subtreeSize int32
}

// Tree is an immutable parse tree over a tokenized buffer: a pure
// syntax tree with no semantics attached. Nodes are stored in
// depth-first post-order; a node's children occupy the indices directly
// below it.
type Tree struct {
	nodeInfos []nodeInfo
	tokens    *lex.Buffer
	hasErrors bool
}

func newTree(tokens *lex.Buffer) *Tree {
	return &Tree{
		// One node per expected token contribution; reserving up front
		// keeps the happy path free of reallocation.
		nodeInfos: make([]nodeInfo, 0, tokens.ExpectedParseTreeSize()),
		tokens:    tokens,
	}
}

// Parse builds a tree from a tokenized buffer.
func Parse(tokens *lex.Buffer, consumer diagnostics.Consumer) *Tree {
	tree := newTree(tokens)
	tracking := diagnostics.NewErrorTrackingConsumer(consumer)
	emitter := diagnostics.NewEmitter[lex.Token](lex.NewTokenLocationTranslator(tokens), tracking)

	c := newContext(tree, tokens, emitter)
	c.PushStateWith(StateFileScopeDeclarationLoop, c.position)
	for len(c.stack) > 0 {
		stateHandlers[c.stack[len(c.stack)-1].state](c)
	}

	if tracking.SeenError() || tokens.HasErrors() {
		tree.hasErrors = true
	}
	return tree
}

// HasErrors reports whether any node is erroneous or the underlying
// buffer had lexer errors.
func (t *Tree) HasErrors() bool { return t.hasErrors }

// Size returns the number of nodes.
func (t *Tree) Size() int { return len(t.nodeInfos) }

// NodeKind returns the node's kind.
func (t *Tree) NodeKind(n Node) NodeKind { return t.nodeInfos[n].kind }

// NodeHasError reports whether the subtree rooted at n contains
// malformed input.
func (t *Tree) NodeHasError(n Node) bool { return t.nodeInfos[n].hasError }

// NodeToken returns the node's anchor token.
func (t *Tree) NodeToken(n Node) lex.Token { return t.nodeInfos[n].token }

// NodeSubtreeSize returns the number of post-order nodes the node
// covers, itself included.
func (t *Tree) NodeSubtreeSize(n Node) int32 { return t.nodeInfos[n].subtreeSize }

// NodeText returns the text of the node's anchor token.
func (t *Tree) NodeText(n Node) string { return t.tokens.Text(t.nodeInfos[n].token) }

// Postorder returns all nodes in post-order.
func (t *Tree) Postorder() []Node {
	nodes := make([]Node, len(t.nodeInfos))
	for i := range nodes {
		nodes[i] = Node(i)
	}
	return nodes
}

// Children returns the direct children of n in source order.
func (t *Tree) Children(n Node) []Node {
	var reversed []Node
	end := int32(n) - t.nodeInfos[n].subtreeSize
	for i := int32(n) - 1; i > end; i -= t.nodeInfos[i].subtreeSize {
		reversed = append(reversed, Node(i))
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// Roots returns the root nodes in source order.
func (t *Tree) Roots() []Node {
	var reversed []Node
	for i := int32(len(t.nodeInfos)) - 1; i >= 0; i -= t.nodeInfos[i].subtreeSize {
		reversed = append(reversed, Node(i))
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// Print writes the tree as nested node records, children inside their
// parents.
func (t *Tree) Print(out io.Writer) {
	fmt.Fprint(out, "[\n")

	type stackEntry struct {
		node  Node
		depth int
	}
	var stack []stackEntry
	roots := t.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, stackEntry{node: roots[i]})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		info := &t.nodeInfos[entry.node]

		for i := 0; i < entry.depth; i++ {
			fmt.Fprint(out, "  ")
		}
		fmt.Fprintf(out, "{node_index: %d, kind: '%s', text: '%s'",
			entry.node, info.kind.Name(), t.NodeText(entry.node))
		if info.hasError {
			fmt.Fprint(out, ", has_error: yes")
		}

		if info.subtreeSize > 1 {
			fmt.Fprintf(out, ", subtree_size: %d, children: [\n", info.subtreeSize)
			children := t.Children(entry.node)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, stackEntry{node: children[i], depth: entry.depth + 1})
			}
			continue
		}

		fmt.Fprint(out, "}")
		nextDepth := 0
		if len(stack) > 0 {
			nextDepth = stack[len(stack)-1].depth
		}
		for i := 0; i < entry.depth-nextDepth; i++ {
			fmt.Fprint(out, "]}")
		}
		fmt.Fprint(out, ",\n")
	}
	fmt.Fprint(out, "]\n")
}

// Verify checks the tree's structural invariants: positive subtree
// sizes that nest within their parents, error bits that propagate to
// the tree flag, and a root set partitioning the post-order range.
func (t *Tree) Verify() error {
	var ancestors []Node
	for i := len(t.nodeInfos) - 1; i >= 0; i-- {
		n := Node(i)
		info := &t.nodeInfos[i]

		if info.hasError && !t.hasErrors {
			return fmt.Errorf("node #%d has errors, but the tree is not marked as having any", i)
		}

		if info.subtreeSize > 1 {
			if len(ancestors) > 0 {
				parent := ancestors[len(ancestors)-1]
				endIndex := int32(n) - info.subtreeSize
				parentEndIndex := int32(parent) - t.nodeInfos[parent].subtreeSize
				if parentEndIndex > endIndex {
					return fmt.Errorf(
						"node #%d has a subtree size of %d which extends beyond its parent's (node #%d) subtree",
						i, info.subtreeSize, parent)
				}
			}
			ancestors = append(ancestors, n)
			continue
		}

		if info.subtreeSize < 1 {
			return fmt.Errorf("node #%d has an invalid subtree size of %d", i, info.subtreeSize)
		}

		nextIndex := int32(n) - 1
		for len(ancestors) > 0 {
			parent := ancestors[len(ancestors)-1]
			if int32(parent)-t.nodeInfos[parent].subtreeSize != nextIndex {
				break
			}
			ancestors = ancestors[:len(ancestors)-1]
		}
	}
	if len(ancestors) > 0 {
		return fmt.Errorf("finished walking the parse tree with %d unterminated ancestors", len(ancestors))
	}
	return nil
}
