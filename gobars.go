// Package gobars is the runtime evaluation core of a logic-less template
// engine: it resolves variable references and helper invocations against a
// root data object of arbitrary shape. Parsing template source and writing
// escaped output belong to the surrounding engine; this module supplies the
// value resolution, context chain and helper binding underneath them.
package gobars

import (
	"github.com/deicod/gobars/nodes"
	"github.com/deicod/gobars/runtime"
)

// Version of the gobars library
const Version = "0.1.0"

// Engine holds the helper registry, resolver chain and rendering options
type Engine = runtime.Engine

// Context is a scope in the nested lookup environment
type Context = runtime.Context

// Helper is a named invocable bound to parameters and hash at render time
type Helper = runtime.Helper

// Options carries an invocation's resolved arguments to a helper
type Options = runtime.Options

// Hash is an ordered name to value mapping
type Hash = runtime.Hash

// ValueResolver reads a named property out of an arbitrary host object
type ValueResolver = runtime.ValueResolver

// Property is a single name/value pair produced by property enumeration
type Property = runtime.Property

// Binder resolves one invocation's arguments against a context chain
type Binder = runtime.Binder

// Invocation is a helper call node supplied by the template compiler
type Invocation = nodes.Invocation

// HelperMissing is the reserved fallback helper name
const HelperMissing = runtime.HelperMissing

// New creates an engine with the default resolver chain
func New() *Engine {
	return runtime.NewEngine()
}

// NewContext creates a root context over the given data using the default
// resolver chain
func NewContext(model interface{}) *Context {
	return runtime.NewContext(model)
}

// IsUnresolved reports whether a value is the unresolved sentinel
func IsUnresolved(value interface{}) bool {
	return runtime.IsUnresolved(value)
}

// Resolve evaluates a path string against a context. It returns the
// resolved value, or the unresolved sentinel when the path has no answer.
func Resolve(ctx *Context, path string) interface{} {
	return ctx.Get(path)
}

// Bind creates a binder for an invocation against the given engine
func Bind(engine *Engine, invocation *Invocation) *Binder {
	return runtime.NewBinder(engine, invocation)
}
