package runtime

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// cacheKey identifies either the accessor for a specific name on a host
// type, or (with an empty name) the full accessor set of that type. Two
// keys are equal iff both components are equal.
type cacheKey struct {
	typ  reflect.Type
	name string
}

// MemberCache memoizes accessor discovery per host type. It is shared
// across all concurrent renders of the engine that owns it: entries are
// written at most logically once per key, and a racing recompute overwrites
// with an equal value because discovery is deterministic for a given type
// and name. Misses are cached too, as the unresolved sentinel, so repeated
// lookups of absent properties never rescan the type. Entries are never
// evicted; accessor shapes do not change at runtime.
type MemberCache struct {
	entries sync.Map // cacheKey -> accessor | Unresolved | []accessor
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewMemberCache creates an empty member cache
func NewMemberCache() *MemberCache {
	return &MemberCache{}
}

// Lookup returns the cached entry for a (type, name) pair
func (c *MemberCache) Lookup(typ reflect.Type, name string) (interface{}, bool) {
	if typ == nil || name == "" {
		panic("runtime: malformed cache key")
	}
	entry, ok := c.entries.Load(cacheKey{typ: typ, name: name})
	c.count(ok)
	return entry, ok
}

// Store records the accessor, or the unresolved sentinel, for a (type,
// name) pair
func (c *MemberCache) Store(typ reflect.Type, name string, entry interface{}) {
	if typ == nil || name == "" {
		panic("runtime: malformed cache key")
	}
	c.entries.Store(cacheKey{typ: typ, name: name}, entry)
}

// LookupMembers returns the cached accessor set for a type
func (c *MemberCache) LookupMembers(typ reflect.Type) ([]accessor, bool) {
	if typ == nil {
		panic("runtime: malformed cache key")
	}
	entry, ok := c.entries.Load(cacheKey{typ: typ})
	c.count(ok)
	if !ok {
		return nil, false
	}
	return entry.([]accessor), true
}

// StoreMembers records the full accessor set for a type
func (c *MemberCache) StoreMembers(typ reflect.Type, members []accessor) {
	if typ == nil {
		panic("runtime: malformed cache key")
	}
	c.entries.Store(cacheKey{typ: typ}, members)
}

// Hits returns the number of cache lookups that found an entry
func (c *MemberCache) Hits() uint64 {
	return c.hits.Load()
}

// Misses returns the number of cache lookups that required discovery
func (c *MemberCache) Misses() uint64 {
	return c.misses.Load()
}

func (c *MemberCache) count(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}

// accessor is a discovered, invocable member of a host type
type accessor interface {
	// Name is the member's logical property name
	Name() string
	// Matches reports whether the member answers to the given property name
	Matches(name string) bool
	// Get reads the member's value from a host object
	Get(obj reflect.Value) interface{}
}

// memberKind discovers the candidate accessors of a host type; field and
// method introspection plug in here
type memberKind interface {
	members(typ reflect.Type) []accessor
}

// memberResolver is the shared discovery-and-cache discipline of the
// introspecting resolvers: first resolution of a (type, name) pair scans
// the type's candidate members, later ones are cache lookups.
type memberResolver struct {
	cache *MemberCache
	kind  memberKind
}

// Resolve reads the named member from obj, discovering and caching its
// accessor on first use
func (r *memberResolver) Resolve(obj interface{}, name string) interface{} {
	if obj == nil || name == "" {
		return Unresolved
	}
	typ := reflect.TypeOf(obj)
	if entry, ok := r.cache.Lookup(typ, name); ok {
		if IsUnresolved(entry) {
			return Unresolved
		}
		return entry.(accessor).Get(reflect.ValueOf(obj))
	}
	found := r.find(typ, name)
	if found == nil {
		// No luck; remember the miss and move to the next resolver.
		r.cache.Store(typ, name, Unresolved)
		return Unresolved
	}
	r.cache.Store(typ, name, found)
	return found.Get(reflect.ValueOf(obj))
}

// ResolveSelf returns Unresolved; introspection has no default value form
func (r *memberResolver) ResolveSelf(obj interface{}) interface{} {
	return Unresolved
}

// PropertySet enumerates every discoverable member of obj. Map-like and
// sequence-like hosts yield nothing here; their dedicated resolvers own
// enumeration.
func (r *memberResolver) PropertySet(obj interface{}) []Property {
	if obj == nil {
		return nil
	}
	switch reflect.TypeOf(obj).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return nil
	}
	members := r.membersOf(reflect.TypeOf(obj))
	result := make([]Property, 0, len(members))
	for _, member := range members {
		result = append(result, Property{
			Name:  member.Name(),
			Value: r.Resolve(obj, member.Name()),
		})
	}
	return result
}

func (r *memberResolver) find(typ reflect.Type, name string) accessor {
	for _, member := range r.membersOf(typ) {
		if member.Matches(name) {
			return member
		}
	}
	return nil
}

func (r *memberResolver) membersOf(typ reflect.Type) []accessor {
	if members, ok := r.cache.LookupMembers(typ); ok {
		return members
	}
	members := r.kind.members(typ)
	r.cache.StoreMembers(typ, members)
	return members
}

// FieldResolver resolves exported struct fields. A `gobars` struct tag
// renames a field's logical name; `gobars:"-"` hides it.
type FieldResolver struct {
	memberResolver
}

// NewFieldResolver creates a field resolver with its own cache
func NewFieldResolver() *FieldResolver {
	return NewFieldResolverWithCache(NewMemberCache())
}

// NewFieldResolverWithCache creates a field resolver backed by the given
// cache
func NewFieldResolverWithCache(cache *MemberCache) *FieldResolver {
	resolver := &FieldResolver{}
	resolver.cache = cache
	resolver.kind = fieldKind{}
	return resolver
}

type fieldKind struct{}

func (fieldKind) members(typ reflect.Type) []accessor {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}
	members := make([]accessor, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		logical := lowerFirst(field.Name)
		if tag, ok := field.Tag.Lookup("gobars"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				logical = tag
			}
		}
		members = append(members, fieldAccessor{field: field, logical: logical})
	}
	return members
}

type fieldAccessor struct {
	field   reflect.StructField
	logical string
}

func (a fieldAccessor) Name() string {
	return a.logical
}

func (a fieldAccessor) Matches(name string) bool {
	return a.logical == name || a.field.Name == name
}

func (a fieldAccessor) Get(obj reflect.Value) interface{} {
	if obj.Kind() == reflect.Ptr {
		if obj.IsNil() {
			return nil
		}
		obj = obj.Elem()
	}
	return obj.FieldByIndex(a.field.Index).Interface()
}

// MethodResolver resolves exported niladic single-result methods. A method
// named GetTitle, IsAdmin or Title answers to the logical names "title",
// "admin" and "title" respectively, as well as to its own name.
type MethodResolver struct {
	memberResolver
}

// NewMethodResolver creates a method resolver with its own cache
func NewMethodResolver() *MethodResolver {
	return NewMethodResolverWithCache(NewMemberCache())
}

// NewMethodResolverWithCache creates a method resolver backed by the given
// cache
func NewMethodResolverWithCache(cache *MemberCache) *MethodResolver {
	resolver := &MethodResolver{}
	resolver.cache = cache
	resolver.kind = methodKind{}
	return resolver
}

type methodKind struct{}

func (methodKind) members(typ reflect.Type) []accessor {
	members := make([]accessor, 0, typ.NumMethod())
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		if !method.IsExported() {
			continue
		}
		// Only the receiver in, exactly one value out.
		if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
			continue
		}
		members = append(members, methodAccessor{
			method:  method,
			logical: methodName(method.Name),
		})
	}
	return members
}

type methodAccessor struct {
	method  reflect.Method
	logical string
}

func (a methodAccessor) Name() string {
	return a.logical
}

func (a methodAccessor) Matches(name string) bool {
	return a.logical == name || a.method.Name == name
}

func (a methodAccessor) Get(obj reflect.Value) interface{} {
	return a.method.Func.Call([]reflect.Value{obj})[0].Interface()
}

// methodName maps a getter-style method name to its logical property name
func methodName(name string) string {
	for _, prefix := range []string{"Get", "Is"} {
		trimmed := strings.TrimPrefix(name, prefix)
		if trimmed != name && trimmed != "" && isUpper(trimmed[0]) {
			return lowerFirst(trimmed)
		}
	}
	return lowerFirst(name)
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
