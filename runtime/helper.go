package runtime

// HelperMissing is the reserved registry name looked up when a
// parameterized invocation names an unregistered helper
const HelperMissing = "helperMissing"

// Helper is a named, invocable unit bound to parameters and hash at render
// time. The subject is the invocation's determined context: the current
// scope's model when the invocation has no parameters, otherwise the first
// parameter resolved.
type Helper func(subject interface{}, options *Options) (interface{}, error)

// Options carries an invocation's resolved arguments to a helper
type Options struct {
	// Context is the scope the invocation was evaluated in
	Context *Context
	// Name is the invoked helper's name as written in the template; with a
	// helperMissing fallback it still names the original helper
	Name string
	// Params are the resolved positional parameters, not including the
	// determined context
	Params []interface{}
	// Hash holds the resolved named arguments in declaration order
	Hash *Hash
}

// Param returns the parameter at the given index, or nil when absent
func (o *Options) Param(index int) interface{} {
	if index < 0 || index >= len(o.Params) {
		return nil
	}
	return o.Params[index]
}

// ParamOr returns the parameter at the given index, or a default when
// absent
func (o *Options) ParamOr(index int, def interface{}) interface{} {
	if index < 0 || index >= len(o.Params) {
		return def
	}
	return o.Params[index]
}

// HashValue returns the hash value bound to a name, or nil when absent
func (o *Options) HashValue(name string) interface{} {
	value, _ := o.Hash.Get(name)
	return value
}

// HashOr returns the hash value bound to a name, or a default when absent
func (o *Options) HashOr(name string, def interface{}) interface{} {
	if value, ok := o.Hash.Get(name); ok {
		return value
	}
	return def
}

// Hash is an ordered name to value mapping; insertion order is preserved so
// rendering driven by hash iteration is deterministic
type Hash struct {
	entries []Property
}

// NewHash creates an empty hash
func NewHash() *Hash {
	return &Hash{}
}

// Len returns the number of entries
func (h *Hash) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Get returns the value bound to a name
func (h *Hash) Get(name string) (interface{}, bool) {
	if h == nil {
		return nil, false
	}
	for _, entry := range h.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set binds a name to a value, keeping the position of an existing entry
func (h *Hash) Set(name string, value interface{}) {
	for i, entry := range h.entries {
		if entry.Name == name {
			h.entries[i].Value = value
			return
		}
	}
	h.entries = append(h.entries, Property{Name: name, Value: value})
}

// Names returns the entry names in insertion order
func (h *Hash) Names() []string {
	if h == nil {
		return nil
	}
	names := make([]string, len(h.entries))
	for i, entry := range h.entries {
		names[i] = entry.Name
	}
	return names
}

// Entries returns the entries in insertion order
func (h *Hash) Entries() []Property {
	if h == nil {
		return nil
	}
	return h.entries
}
