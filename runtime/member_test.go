package runtime

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	Name   string
	Email  string `gobars:"mail"`
	Hidden string `gobars:"-"`
	age    int
}

type testAccount struct {
	owner   string
	balance int
	admin   bool
}

func (a testAccount) Owner() string {
	return a.owner
}

func (a testAccount) GetBalance() int {
	return a.balance
}

func (a testAccount) IsAdmin() bool {
	return a.admin
}

func (a testAccount) Pay(amount int) int {
	return a.balance - amount
}

func TestFieldResolver(t *testing.T) {
	resolver := NewFieldResolver()
	user := testUser{Name: "Ada", Email: "ada@example.com", Hidden: "x", age: 36}

	tests := []struct {
		name     string
		property string
		expected interface{}
	}{
		{name: "logical name", property: "name", expected: "Ada"},
		{name: "declared name", property: "Name", expected: "Ada"},
		{name: "tag rename", property: "mail", expected: "ada@example.com"},
		{name: "hidden by tag", property: "hidden", expected: Unresolved},
		{name: "unexported field", property: "age", expected: Unresolved},
		{name: "absent field", property: "nope", expected: Unresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(user, tt.property))
		})
	}
}

func TestFieldResolverPointerHost(t *testing.T) {
	resolver := NewFieldResolver()
	user := &testUser{Name: "Ada"}
	assert.Equal(t, "Ada", resolver.Resolve(user, "name"))
}

func TestMethodResolver(t *testing.T) {
	resolver := NewMethodResolver()
	account := testAccount{owner: "Ada", balance: 42, admin: true}

	tests := []struct {
		name     string
		property string
		expected interface{}
	}{
		{name: "plain getter", property: "owner", expected: "Ada"},
		{name: "Get prefix", property: "balance", expected: 42},
		{name: "Is prefix", property: "admin", expected: true},
		{name: "declared name", property: "GetBalance", expected: 42},
		{name: "method with arguments", property: "pay", expected: Unresolved},
		{name: "absent method", property: "nope", expected: Unresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(account, tt.property))
		})
	}
}

func TestMemberCacheNoRediscovery(t *testing.T) {
	cache := NewMemberCache()
	resolver := NewFieldResolverWithCache(cache)
	user := testUser{Name: "Ada"}

	first := resolver.Resolve(user, "name")
	misses := cache.Misses()

	second := resolver.Resolve(user, "name")
	assert.Equal(t, first, second)
	assert.Equal(t, misses, cache.Misses(), "second resolution must be a cache hit")
	assert.Greater(t, cache.Hits(), uint64(0))
}

func TestMemberCacheCachesMisses(t *testing.T) {
	cache := NewMemberCache()
	resolver := NewFieldResolverWithCache(cache)
	user := testUser{Name: "Ada"}

	assert.Equal(t, Unresolved, resolver.Resolve(user, "nope"))
	misses := cache.Misses()

	// Repeated misses are O(1) lookups of the cached sentinel.
	assert.Equal(t, Unresolved, resolver.Resolve(user, "nope"))
	assert.Equal(t, misses, cache.Misses())
}

func TestMemberCacheMalformedKey(t *testing.T) {
	cache := NewMemberCache()
	assert.Panics(t, func() { cache.Lookup(nil, "name") })
	assert.Panics(t, func() { cache.Lookup(reflect.TypeOf(testUser{}), "") })
	assert.Panics(t, func() { cache.StoreMembers(nil, nil) })
}

func TestMemberCacheConcurrentResolution(t *testing.T) {
	cache := NewMemberCache()
	resolver := NewFieldResolverWithCache(cache)
	user := testUser{Name: "Ada"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "Ada", resolver.Resolve(user, "name"))
				assert.Equal(t, Unresolved, resolver.Resolve(user, "nope"))
			}
		}()
	}
	wg.Wait()
}

func TestFieldResolverPropertySet(t *testing.T) {
	resolver := NewFieldResolver()
	user := testUser{Name: "Ada", Email: "ada@example.com", Hidden: "x"}

	properties := resolver.PropertySet(user)
	require.Len(t, properties, 2)
	assert.Equal(t, "name", properties[0].Name)
	assert.Equal(t, "Ada", properties[0].Value)
	assert.Equal(t, "mail", properties[1].Name)
	assert.Equal(t, "ada@example.com", properties[1].Value)
}

func TestMemberResolverPropertySetSkipsMapsAndSequences(t *testing.T) {
	fields := NewFieldResolver()
	methods := NewMethodResolver()

	assert.Empty(t, fields.PropertySet(map[string]interface{}{"a": 1}))
	assert.Empty(t, fields.PropertySet([]int{1, 2}))
	assert.Empty(t, methods.PropertySet(map[string]interface{}{"a": 1}))
	assert.Empty(t, methods.PropertySet([]int{1, 2}))
}

func TestMethodResolverPropertySet(t *testing.T) {
	resolver := NewMethodResolver()
	account := testAccount{owner: "Ada", balance: 42, admin: true}

	properties := resolver.PropertySet(account)
	names := make(map[string]interface{}, len(properties))
	for _, property := range properties {
		names[property.Name] = property.Value
	}
	assert.Equal(t, "Ada", names["owner"])
	assert.Equal(t, 42, names["balance"])
	assert.Equal(t, true, names["admin"])
	assert.NotContains(t, names, "pay")
}

func TestMethodNameMapping(t *testing.T) {
	tests := []struct {
		method   string
		expected string
	}{
		{method: "GetBalance", expected: "balance"},
		{method: "IsAdmin", expected: "admin"},
		{method: "Owner", expected: "owner"},
		{method: "Get", expected: "get"},
		{method: "Is", expected: "is"},
		{method: "Getaway", expected: "getaway"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, methodName(tt.method), tt.method)
	}
}
