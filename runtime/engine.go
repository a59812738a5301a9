package runtime

import (
	"sync"
)

// Engine holds the shared state of the evaluation core: the helper
// registry, the resolver chain new contexts read through, and rendering
// options. One Engine serves any number of concurrent renders; each render
// builds its own context chain while the registry and the resolver caches
// are shared.
type Engine struct {
	helpers      map[string]Helper
	resolver     *ResolverChain
	stringParams bool
	mu           sync.RWMutex
}

// NewEngine creates an engine with the default resolver chain and an empty
// helper registry
func NewEngine() *Engine {
	return &Engine{
		helpers:  make(map[string]Helper),
		resolver: DefaultResolverChain(),
	}
}

// RegisterHelper registers a helper under the given name, replacing any
// previous registration
func (e *Engine) RegisterHelper(name string, helper Helper) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.helpers[name] = helper
}

// RemoveHelper removes a helper registration
func (e *Engine) RemoveHelper(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.helpers, name)
}

// Helper returns the helper registered under the given name
func (e *Engine) Helper(name string) (Helper, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	helper, ok := e.helpers[name]
	return helper, ok
}

// HelperNames returns the names of all registered helpers
func (e *Engine) HelperNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.helpers))
	for name := range e.helpers {
		names = append(names, name)
	}
	return names
}

// SetStringParams switches string-params mode: an unresolvable parameter
// degrades to its original source text instead of nil
func (e *Engine) SetStringParams(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stringParams = enabled
}

// StringParams reports whether string-params mode is enabled
func (e *Engine) StringParams() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stringParams
}

// SetResolvers replaces the engine's resolver chain
func (e *Engine) SetResolvers(resolvers ...ValueResolver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolver = NewResolverChain(resolvers...)
}

// Resolver returns the engine's resolver chain
func (e *Engine) Resolver() *ResolverChain {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolver
}

// NewContext creates a root context over the given data, reading through
// the engine's resolver chain
func (e *Engine) NewContext(model interface{}) *Context {
	return NewContextWithResolver(model, e.Resolver())
}

// PropertiesOf enumerates the properties of an arbitrary object through the
// engine's resolver chain; used for iteration-style rendering
func (e *Engine) PropertiesOf(obj interface{}) ([]Property, error) {
	return e.Resolver().PropertiesOf(obj)
}
