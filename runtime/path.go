package runtime

import "strings"

// PathExpression is one step of a parsed path. Eval advances the walk: it
// receives the context cursor and the value resolved so far, and returns
// both updated. The data cursor carries the unresolved sentinel once a step
// has no answer; later steps treat that as a nil host, so a dead path
// degrades to Unresolved instead of erroring.
type PathExpression interface {
	Eval(ctx *Context, data interface{}) (*Context, interface{})
	String() string
}

// CurrentPath references the current scope's own model ("this" or ".")
type CurrentPath struct{}

// Eval applies the resolver chain's default-value form, keeping the value
// as is when no resolver claims it
func (CurrentPath) Eval(ctx *Context, data interface{}) (*Context, interface{}) {
	if IsUnresolved(data) {
		return ctx, data
	}
	if value := ctx.Resolver().ResolveSelf(data); !IsUnresolved(value) {
		return ctx, value
	}
	return ctx, data
}

func (CurrentPath) String() string {
	return "this"
}

// ParentPath hops one scope up ("../"). A missing parent is empty, not
// fatal: the hop yields the unresolved sentinel and evaluation carries on.
type ParentPath struct{}

// Eval moves the walk to the enclosing context
func (ParentPath) Eval(ctx *Context, data interface{}) (*Context, interface{}) {
	parent := ctx.Parent()
	if parent == nil {
		return ctx, Unresolved
	}
	return parent, parent.Model()
}

func (ParentPath) String() string {
	return "../"
}

// NamePath reads a named property from the value resolved so far
type NamePath struct {
	Name string
}

// Eval asks the current context's resolver chain for the named property.
// An unresolved cursor resolves against nil, which yields Unresolved again;
// there is no fallback to sibling contexts except via an explicit parent
// hop.
func (p NamePath) Eval(ctx *Context, data interface{}) (*Context, interface{}) {
	if IsUnresolved(data) {
		data = nil
	}
	return ctx, ctx.Resolver().Resolve(data, p.Name)
}

func (p NamePath) String() string {
	return p.Name
}

// ParsePath parses a path string into its expression list. The grammar is
// the data-path mini-syntax: "this" or "." for the current scope, "../"
// for a parent hop (repeatable), bare segment names separated by "." or
// "/", and bracket-quoted segments like "[first name]" whose content is
// taken verbatim.
func ParsePath(path string) []PathExpression {
	var result []PathExpression
	rest := path
	for rest != "" {
		switch {
		case rest == "..":
			result = append(result, ParentPath{})
			rest = ""
		case strings.HasPrefix(rest, "../"):
			result = append(result, ParentPath{})
			rest = rest[len("../"):]
		case rest == "." || rest == "this":
			result = append(result, CurrentPath{})
			rest = ""
		case strings.HasPrefix(rest, "./"):
			result = append(result, CurrentPath{})
			rest = rest[len("./"):]
		case strings.HasPrefix(rest, "this.") || strings.HasPrefix(rest, "this/"):
			result = append(result, CurrentPath{})
			rest = rest[len("this."):]
		case strings.HasPrefix(rest, "["):
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				// Unterminated bracket; take the remainder verbatim.
				result = append(result, NamePath{Name: rest[1:]})
				rest = ""
				break
			}
			result = append(result, NamePath{Name: rest[1:end]})
			rest = rest[end+1:]
			if strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "/") {
				rest = rest[1:]
			}
		default:
			if sep := strings.IndexAny(rest, "./"); sep >= 0 {
				result = append(result, NamePath{Name: rest[:sep]})
				rest = rest[sep+1:]
			} else {
				result = append(result, NamePath{Name: rest})
				rest = ""
			}
		}
	}
	return result
}

// PathToString renders a parsed path back to its source form
func PathToString(path []PathExpression) string {
	var buffer strings.Builder
	needSep := false
	for _, expr := range path {
		if _, hop := expr.(ParentPath); hop {
			buffer.WriteString("../")
			needSep = false
			continue
		}
		if needSep {
			buffer.WriteString(".")
		}
		buffer.WriteString(expr.String())
		needSep = true
	}
	return buffer.String()
}

// Resolve walks a parsed path against a context chain. It returns the
// resolved value, or the unresolved sentinel when the path has no answer;
// path resolution never fails.
func Resolve(ctx *Context, path []PathExpression) interface{} {
	current, data := ctx, ctx.Model()
	for _, expr := range path {
		current, data = expr.Eval(current, data)
	}
	return data
}
