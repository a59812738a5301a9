package runtime

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/deicod/gobars/nodes"
)

// Binder resolves a helper invocation's positional and named arguments
// against a context chain, determines the invocation's implicit subject and
// looks up its helper. Binding is read-only with respect to the context
// chain; the only side effect anywhere below is accessor cache population.
type Binder struct {
	engine *Engine
	node   *nodes.Invocation
}

// NewBinder creates a binder for one invocation
func NewBinder(engine *Engine, node *nodes.Invocation) *Binder {
	return &Binder{engine: engine, node: node}
}

// Node returns the bound invocation
func (b *Binder) Node() *nodes.Invocation {
	return b.node
}

// Params resolves the invocation's positional parameters in declaration
// order, skipping index 0: for ordinary helpers the first parameter is the
// determined context, not a true parameter.
func (b *Binder) Params(ctx *Context) ([]interface{}, error) {
	if b.node.ParamSize() <= 1 {
		return nil, nil
	}
	values := make([]interface{}, 0, b.node.ParamSize()-1)
	for _, param := range b.node.Params[1:] {
		value, err := b.resolveParam(ctx, param)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// DecoParams resolves every positional parameter including index 0;
// decorators have no implicit-subject parameter.
func (b *Binder) DecoParams(ctx *Context) ([]interface{}, error) {
	values := make([]interface{}, 0, b.node.ParamSize())
	for _, param := range b.node.Params {
		value, err := b.resolveParam(ctx, param)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Hash resolves the invocation's named arguments, preserving declaration
// order
func (b *Binder) Hash(ctx *Context) (*Hash, error) {
	result := NewHash()
	if b.node.HashSize() == 0 {
		return result, nil
	}
	for _, pair := range b.node.Hash {
		value, err := b.resolveParam(ctx, pair.Value)
		if err != nil {
			return nil, err
		}
		result.Set(pair.Name, value)
	}
	return result, nil
}

// DetermineContext resolves the invocation's implicit subject: the current
// scope's model when there are no parameters, otherwise the first parameter
// resolved
func (b *Binder) DetermineContext(ctx *Context) (interface{}, error) {
	if b.node.ParamSize() == 0 {
		return ctx.Model(), nil
	}
	return b.eval(ctx, b.node.Params[0])
}

// Helper looks up the invocation's helper. An unregistered name on a
// parameterized invocation falls back to the helperMissing registration,
// or fails naming the requested helper; a bare name with no parameters and
// no hash returns nil so the caller may treat it as a plain variable
// reference instead.
func (b *Binder) Helper() (Helper, error) {
	if helper, ok := b.engine.Helper(b.node.Name); ok {
		return helper, nil
	}
	if b.node.ParamSize() > 0 || b.node.HashSize() > 0 {
		if missing, ok := b.engine.Helper(HelperMissing); ok {
			return missing, nil
		}
		return nil, NewMissingHelperError(b.node.Name, b.node.GetPosition())
	}
	return nil, nil
}

// Evaluate resolves the invocation to a value: through its helper when one
// applies, as a plain variable reference otherwise. Sub-expression
// parameters recurse through here.
func (b *Binder) Evaluate(ctx *Context) (interface{}, error) {
	helper, err := b.Helper()
	if err != nil {
		return nil, err
	}
	if helper == nil {
		value := Resolve(ctx, ParsePath(b.node.Name))
		if IsUnresolved(value) {
			return nil, nil
		}
		return value, nil
	}
	subject, err := b.DetermineContext(ctx)
	if err != nil {
		return nil, err
	}
	params, err := b.Params(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := b.Hash(ctx)
	if err != nil {
		return nil, err
	}
	options := &Options{
		Context: ctx,
		Name:    b.node.Name,
		Params:  params,
		Hash:    hash,
	}
	value, err := helper(subject, options)
	if err != nil {
		return nil, NewErrorWithCause(ErrorTypeHelper,
			fmt.Sprintf("helper '%s' failed in %s: %v", b.node.Name, b.node.Text(), err),
			b.node.GetPosition(), err)
	}
	return value, nil
}

// References returns the variable names the invocation statically depends
// on; see nodes.Invocation.References
func (b *Binder) References() []string {
	return b.node.References()
}

// ParamsToString renders the parameter list as written in the source
func (b *Binder) ParamsToString() string {
	if b.node.ParamSize() == 0 {
		return ""
	}
	parts := make([]string, 0, b.node.ParamSize())
	for _, param := range b.node.Params {
		parts = append(parts, exprText(param))
	}
	return strings.Join(parts, " ")
}

// HashToString renders the hash as written in the source, in declaration
// order, like "a=1 b=two"
func (b *Binder) HashToString() string {
	if b.node.HashSize() == 0 {
		return ""
	}
	parts := make([]string, 0, b.node.HashSize())
	for _, pair := range b.node.Hash {
		parts = append(parts, pair.Name+"="+exprText(pair.Value))
	}
	return strings.Join(parts, " ")
}

// resolveParam evaluates a parameter or hash expression, applying the
// string-params fallback: an absent value degrades to the expression's
// original source text instead of nil.
func (b *Binder) resolveParam(ctx *Context, node nodes.Node) (interface{}, error) {
	value, err := b.eval(ctx, node)
	if err != nil {
		return nil, err
	}
	if value == nil && b.engine.StringParams() {
		return node.Text(), nil
	}
	return value, nil
}

// eval evaluates one expression node against the context. Unresolved
// references collapse to nil here; only helper resolution failures
// propagate as errors.
func (b *Binder) eval(ctx *Context, node nodes.Node) (interface{}, error) {
	switch n := node.(type) {
	case *nodes.Literal:
		return n.Value, nil
	case *nodes.Variable:
		value := Resolve(ctx, ParsePath(n.Path))
		if IsUnresolved(value) {
			return nil, nil
		}
		return value, nil
	case *nodes.Invocation:
		return NewBinder(b.engine, n).Evaluate(ctx)
	default:
		return nil, errors.Errorf("unsupported expression node %T in %s", node, b.node.Text())
	}
}

// exprText renders an expression for params/hash string forms: variables by
// their path, literals by their value, sub-expressions by their source form
func exprText(node nodes.Node) string {
	switch n := node.(type) {
	case *nodes.Variable:
		return n.Path
	case *nodes.Literal:
		return fmt.Sprintf("%v", n.Value)
	default:
		return node.Text()
	}
}
