package render

import "sort"

// Context maps variable names to the string or number values substituted into
// templated files.
type Context map[string]any

// Clone returns a shallow copy so a render pass cannot observe later mutation.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Keys returns the variable names in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
