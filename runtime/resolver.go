package runtime

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// unresolvedType is the sentinel for "this resolver has no answer". It is
// deliberately distinct from nil: a map entry holding nil is a present value,
// while a missing entry is Unresolved and lets the next resolver in the
// chain have a try.
type unresolvedType struct{}

func (unresolvedType) String() string {
	return "<unresolved>"
}

// Unresolved is returned by a ValueResolver that cannot supply the named
// property. Callers compare against it with ==.
var Unresolved = unresolvedType{}

// IsUnresolved reports whether a value is the unresolved sentinel
func IsUnresolved(value interface{}) bool {
	_, ok := value.(unresolvedType)
	return ok
}

// Property is a single name/value pair produced by property enumeration.
// Enumeration order is preserved so iteration-style rendering is
// deterministic.
type Property struct {
	Name  string
	Value interface{}
}

// ValueResolver reads a named property out of an arbitrary host object.
// Resolve returns Unresolved when this resolver has no such property, which
// moves evaluation to the next resolver in the chain. ResolveSelf is the
// default-value form used for self-referential path segments: it lets a
// resolver unwrap or translate the host value itself. PropertySet lists
// every property this resolver can enumerate on the host, in a stable order.
type ValueResolver interface {
	Resolve(obj interface{}, name string) interface{}
	ResolveSelf(obj interface{}) interface{}
	PropertySet(obj interface{}) []Property
}

// MapResolver resolves properties of map-like hosts by direct key lookup
type MapResolver struct{}

// Resolve looks up name as a key of a string-keyed map
func (MapResolver) Resolve(obj interface{}, name string) interface{} {
	if m, ok := obj.(map[string]interface{}); ok {
		if value, exists := m[name]; exists {
			return value
		}
		return Unresolved
	}
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return Unresolved
	}
	result := val.MapIndex(reflect.ValueOf(name).Convert(val.Type().Key()))
	if !result.IsValid() {
		return Unresolved
	}
	return result.Interface()
}

// ResolveSelf returns Unresolved; a map has no default value form
func (MapResolver) ResolveSelf(obj interface{}) interface{} {
	return Unresolved
}

// PropertySet enumerates the map's entries with keys sorted for determinism
func (MapResolver) PropertySet(obj interface{}) []Property {
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return nil
	}
	keys := make([]string, 0, val.Len())
	for _, key := range val.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	result := make([]Property, 0, len(keys))
	for _, key := range keys {
		entry := val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key()))
		if entry.IsValid() {
			result = append(result, Property{Name: key, Value: entry.Interface()})
		}
	}
	return result
}

// SliceResolver resolves properties of sequence-like hosts by parsing the
// property name as an index
type SliceResolver struct{}

// Resolve parses name as an index into a slice or array. Non-numeric names
// and out-of-range indices yield Unresolved.
func (SliceResolver) Resolve(obj interface{}, name string) interface{} {
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return Unresolved
	}
	index, err := strconv.Atoi(name)
	if err != nil {
		return Unresolved
	}
	if index < 0 || index >= val.Len() {
		return Unresolved
	}
	return val.Index(index).Interface()
}

// ResolveSelf returns Unresolved; a sequence has no default value form
func (SliceResolver) ResolveSelf(obj interface{}) interface{} {
	return Unresolved
}

// PropertySet returns nothing; sequences are iterated positionally, not
// enumerated by property name
func (SliceResolver) PropertySet(obj interface{}) []Property {
	return nil
}

// ResolverChain composes resolvers and tries them strictly in registration
// order; the first non-Unresolved result wins.
type ResolverChain struct {
	resolvers []ValueResolver
}

// NewResolverChain creates a chain over the given resolvers
func NewResolverChain(resolvers ...ValueResolver) *ResolverChain {
	return &ResolverChain{resolvers: resolvers}
}

// DefaultResolverChain returns the standard chain: maps, then sequences,
// then struct fields, then methods.
func DefaultResolverChain() *ResolverChain {
	return NewResolverChain(
		MapResolver{},
		SliceResolver{},
		NewFieldResolver(),
		NewMethodResolver(),
	)
}

// Resolve reads the named property from obj. A nil host short-circuits to
// Unresolved without consulting any resolver.
func (c *ResolverChain) Resolve(obj interface{}, name string) interface{} {
	if obj == nil {
		return Unresolved
	}
	for _, resolver := range c.resolvers {
		if value := resolver.Resolve(obj, name); !IsUnresolved(value) {
			return value
		}
	}
	return Unresolved
}

// ResolveSelf applies the default-value form of each resolver to obj
func (c *ResolverChain) ResolveSelf(obj interface{}) interface{} {
	if obj == nil {
		return Unresolved
	}
	for _, resolver := range c.resolvers {
		if value := resolver.ResolveSelf(obj); !IsUnresolved(value) {
			return value
		}
	}
	return Unresolved
}

// PropertiesOf enumerates every property of obj discoverable by any resolver
// in the chain, first resolver first. A nil host is a caller error.
func (c *ResolverChain) PropertiesOf(obj interface{}) ([]Property, error) {
	if obj == nil {
		return nil, errors.New("the host object is required")
	}
	var result []Property
	seen := make(map[string]bool)
	for _, resolver := range c.resolvers {
		for _, property := range resolver.PropertySet(obj) {
			if !seen[property.Name] {
				seen[property.Name] = true
				result = append(result, property)
			}
		}
	}
	return result, nil
}
