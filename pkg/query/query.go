// Package query defines the parsed query tree the spell checker walks. The
// parser itself lives in the host search service; this package only models
// the node kinds the checker has to dispatch on.
package query

// NodeType enumerates the query node kinds.
type NodeType int

const (
	// Composite kinds: every child is visited during traversal.
	Phrase NodeType = iota
	Union
	Tag
	// Single-child kinds.
	Not
	Optional
	// Token is the only kind carrying a literal term.
	Token
	// Kinds with no literal term to correct; traversal skips them.
	Prefix
	Numeric
	Geo
	IDList
	Wildcard
	Fuzzy
)

// Node is one node of the query tree. Which fields are meaningful depends on
// Type: Children for Phrase/Union/Tag/Not/Optional, Term and FieldMask for
// Token. The tree is read-only to consumers and outlives any traversal.
type Node struct {
	Type      NodeType
	Children  []*Node
	Term      string
	FieldMask uint64
}

// NewToken returns a leaf term node restricted to the fields in mask.
func NewToken(term string, fieldMask uint64) *Node {
	return &Node{Type: Token, Term: term, FieldMask: fieldMask}
}

// NewPhrase groups children that must appear together.
func NewPhrase(children ...*Node) *Node {
	return &Node{Type: Phrase, Children: children}
}

// NewUnion groups alternative children.
func NewUnion(children ...*Node) *Node {
	return &Node{Type: Union, Children: children}
}

// NewTag wraps children under a tag field.
func NewTag(children ...*Node) *Node {
	return &Node{Type: Tag, Children: children}
}

// NewNot negates a single child.
func NewNot(child *Node) *Node {
	return &Node{Type: Not, Children: []*Node{child}}
}

// NewOptional marks a single child as optional.
func NewOptional(child *Node) *Node {
	return &Node{Type: Optional, Children: []*Node{child}}
}
