package runtime

// Context is a node in the chain of nested scopes a render walks: it holds
// the current scope's data value, a back-reference to the enclosing scope,
// and the resolver chain used to read properties from its own data. The
// root context has no parent; children are created when entering nested
// template blocks. A context chain belongs to exactly one render call and
// is discarded with it, so parent links never form a cycle and need no
// synchronization.
type Context struct {
	model    interface{}
	parent   *Context
	resolver *ResolverChain
}

// NewContext creates a root context over the given data, using the default
// resolver chain
func NewContext(model interface{}) *Context {
	return NewContextWithResolver(model, DefaultResolverChain())
}

// NewContextWithResolver creates a root context with an explicit resolver
// chain
func NewContextWithResolver(model interface{}, resolver *ResolverChain) *Context {
	return &Context{model: model, resolver: resolver}
}

// NewChild creates a child scope over the given data. The child inherits
// this context's resolver chain.
func (ctx *Context) NewChild(model interface{}) *Context {
	return &Context{model: model, parent: ctx, resolver: ctx.resolver}
}

// Model returns the current scope's data value
func (ctx *Context) Model() interface{} {
	return ctx.model
}

// Parent returns the enclosing scope, or nil at the root
func (ctx *Context) Parent() *Context {
	return ctx.parent
}

// Resolver returns the context's resolver chain
func (ctx *Context) Resolver() *ResolverChain {
	return ctx.resolver
}

// IsRoot reports whether this context is the top of its chain
func (ctx *Context) IsRoot() bool {
	return ctx.parent == nil
}

// Get resolves a path string against this context. It returns the resolved
// value, or the unresolved sentinel when the path has no answer.
func (ctx *Context) Get(path string) interface{} {
	return Resolve(ctx, ParsePath(path))
}

// PropertySet enumerates the properties of the current scope's model
func (ctx *Context) PropertySet() ([]Property, error) {
	return ctx.resolver.PropertiesOf(ctx.model)
}
