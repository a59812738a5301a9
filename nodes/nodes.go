// Package nodes defines the static expression tree the template compiler
// hands to the runtime: literals, variable references and helper
// invocations with their ordered parameter and hash lists.
package nodes

import (
	"fmt"
	"strings"
)

// Position represents a location in the template source
type Position struct {
	Line   int
	Column int
}

// NewPosition creates a new position
func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Node is a parameter or hash value expression. Text returns the expression
// as it appeared in the template source; the runtime uses it for error
// messages and for string-params fallback.
type Node interface {
	Text() string
	GetPosition() Position
}

// BaseNode provides common node functionality
type BaseNode struct {
	Position Position
}

// GetPosition returns the node's position
func (n *BaseNode) GetPosition() Position {
	return n.Position
}

// SetPosition sets the node's position
func (n *BaseNode) SetPosition(pos Position) {
	n.Position = pos
}

// Literal is a constant expression (string, number, boolean)
type Literal struct {
	BaseNode
	Value  interface{}
	Source string
}

// NewLiteral creates a literal node. The source form is kept verbatim so
// quoted strings render with their quotes in error messages.
func NewLiteral(value interface{}, source string) *Literal {
	return &Literal{Value: value, Source: source}
}

// Text returns the literal's source form
func (l *Literal) Text() string {
	if l.Source != "" {
		return l.Source
	}
	return fmt.Sprintf("%v", l.Value)
}

// Variable is a reference to a value reachable from the current context,
// like "name", "this", "../title" or "user.address.city".
type Variable struct {
	BaseNode
	Path string
}

// NewVariable creates a variable node
func NewVariable(path string) *Variable {
	return &Variable{Path: path}
}

// Text returns the variable's path
func (v *Variable) Text() string {
	return v.Path
}

// HashPair is a single named argument of an invocation
type HashPair struct {
	Name  string
	Value Node
}

// Invocation is a helper call with ordered positional parameters and an
// ordered hash of named arguments. It may appear as a template statement or
// nested inside another invocation as a sub-expression.
type Invocation struct {
	BaseNode
	Name   string
	Params []Node
	Hash   []HashPair

	paramSize int
	hashSize  int
}

// NewInvocation creates an invocation node
func NewInvocation(name string, params []Node, hash []HashPair) *Invocation {
	return &Invocation{
		Name:      name,
		Params:    params,
		Hash:      hash,
		paramSize: len(params),
		hashSize:  len(hash),
	}
}

// ParamSize returns the number of positional parameters
func (i *Invocation) ParamSize() int {
	return i.paramSize
}

// HashSize returns the number of hash entries
func (i *Invocation) HashSize() int {
	return i.hashSize
}

// HashValue returns the expression bound to a hash name
func (i *Invocation) HashValue(name string) (Node, bool) {
	for _, pair := range i.Hash {
		if pair.Name == name {
			return pair.Value, true
		}
	}
	return nil, false
}

// Text returns the invocation's source form, like "(helper a b k=v)"
func (i *Invocation) Text() string {
	var buffer strings.Builder
	buffer.WriteString("(")
	buffer.WriteString(i.Name)
	for _, param := range i.Params {
		buffer.WriteString(" ")
		buffer.WriteString(param.Text())
	}
	for _, pair := range i.Hash {
		buffer.WriteString(" ")
		buffer.WriteString(pair.Name)
		buffer.WriteString("=")
		buffer.WriteString(pair.Value.Text())
	}
	buffer.WriteString(")")
	return buffer.String()
}

// References returns the set of variable names this invocation statically
// depends on, in first-seen order. Literals contribute nothing; nested
// sub-expressions contribute their own references. Callers use the result
// for dependency-based cache invalidation, so the walk never evaluates
// anything.
func (i *Invocation) References() []string {
	seen := make(map[string]bool)
	result := make([]string, 0, i.paramSize+i.hashSize)
	i.collectReferences(seen, &result)
	return result
}

func (i *Invocation) collectReferences(seen map[string]bool, result *[]string) {
	collect := func(node Node) {
		switch n := node.(type) {
		case *Variable:
			if !seen[n.Path] {
				seen[n.Path] = true
				*result = append(*result, n.Path)
			}
		case *Invocation:
			n.collectReferences(seen, result)
		}
	}
	for _, param := range i.Params {
		collect(param)
	}
	for _, pair := range i.Hash {
		collect(pair.Value)
	}
}
