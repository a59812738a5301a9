package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolver(t *testing.T) {
	resolver := MapResolver{}

	tests := []struct {
		name     string
		obj      interface{}
		property string
		expected interface{}
	}{
		{
			name:     "present key",
			obj:      map[string]interface{}{"name": "Ada"},
			property: "name",
			expected: "Ada",
		},
		{
			name:     "absent key",
			obj:      map[string]interface{}{"name": "Ada"},
			property: "age",
			expected: Unresolved,
		},
		{
			name:     "typed map",
			obj:      map[string]int{"count": 3},
			property: "count",
			expected: 3,
		},
		{
			name:     "non-map host",
			obj:      "not a map",
			property: "name",
			expected: Unresolved,
		},
		{
			name:     "int-keyed map",
			obj:      map[int]string{1: "one"},
			property: "1",
			expected: Unresolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.obj, tt.property))
		})
	}
}

func TestMapResolverNilValue(t *testing.T) {
	// A key holding nil is a present value, not an unresolved reference.
	resolver := MapResolver{}
	value := resolver.Resolve(map[string]interface{}{"name": nil}, "name")
	assert.Nil(t, value)
	assert.False(t, IsUnresolved(value))
}

func TestMapResolverPropertySet(t *testing.T) {
	resolver := MapResolver{}
	properties := resolver.PropertySet(map[string]interface{}{"b": 2, "a": 1, "c": 3})
	require.Len(t, properties, 3)
	assert.Equal(t, []Property{{"a", 1}, {"b", 2}, {"c", 3}}, properties)
}

func TestSliceResolver(t *testing.T) {
	resolver := SliceResolver{}

	tests := []struct {
		name     string
		obj      interface{}
		property string
		expected interface{}
	}{
		{
			name:     "valid index",
			obj:      []string{"a", "b", "c"},
			property: "1",
			expected: "b",
		},
		{
			name:     "array host",
			obj:      [2]int{10, 20},
			property: "0",
			expected: 10,
		},
		{
			name:     "out of range",
			obj:      []string{"a"},
			property: "5",
			expected: Unresolved,
		},
		{
			name:     "negative index",
			obj:      []string{"a"},
			property: "-1",
			expected: Unresolved,
		},
		{
			name:     "non-numeric name",
			obj:      []string{"a"},
			property: "first",
			expected: Unresolved,
		},
		{
			name:     "non-sequence host",
			obj:      map[string]interface{}{"0": "x"},
			property: "0",
			expected: Unresolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.obj, tt.property))
		})
	}
}

func TestResolverChainOrder(t *testing.T) {
	// The first non-unresolved result wins, in registration order.
	first := stubResolver{values: map[string]interface{}{"shared": "first"}}
	second := stubResolver{values: map[string]interface{}{"shared": "second", "only": "second"}}
	chain := NewResolverChain(first, second)

	assert.Equal(t, "first", chain.Resolve(struct{}{}, "shared"))
	assert.Equal(t, "second", chain.Resolve(struct{}{}, "only"))
	assert.Equal(t, Unresolved, chain.Resolve(struct{}{}, "absent"))
}

func TestResolverChainNilHost(t *testing.T) {
	chain := DefaultResolverChain()
	assert.Equal(t, Unresolved, chain.Resolve(nil, "anything"))
	assert.Equal(t, Unresolved, chain.ResolveSelf(nil))
}

func TestResolverChainRepeatedMisses(t *testing.T) {
	chain := DefaultResolverChain()
	host := map[string]interface{}{}
	for i := 0; i < 3; i++ {
		assert.Equal(t, Unresolved, chain.Resolve(host, "missing"))
	}
}

func TestPropertiesOfNilHost(t *testing.T) {
	chain := DefaultResolverChain()
	_, err := chain.PropertiesOf(nil)
	require.Error(t, err)
}

func TestPropertiesOfMap(t *testing.T) {
	chain := DefaultResolverChain()
	properties, err := chain.PropertiesOf(map[string]interface{}{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.Equal(t, []Property{{"x", 1}, {"y", 2}}, properties)
}

func TestUnresolvedSentinel(t *testing.T) {
	assert.True(t, IsUnresolved(Unresolved))
	assert.False(t, IsUnresolved(nil))
	assert.False(t, IsUnresolved(""))
	assert.Equal(t, "<unresolved>", Unresolved.String())
}

// stubResolver answers from a fixed map regardless of the host object
type stubResolver struct {
	values map[string]interface{}
}

func (s stubResolver) Resolve(obj interface{}, name string) interface{} {
	if value, ok := s.values[name]; ok {
		return value
	}
	return Unresolved
}

func (s stubResolver) ResolveSelf(obj interface{}) interface{} {
	return Unresolved
}

func (s stubResolver) PropertySet(obj interface{}) []Property {
	return nil
}
