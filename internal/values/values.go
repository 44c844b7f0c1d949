package values

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/appgen-labs/appgen/internal/render"
)

var (
	keyPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)
)

// ParseSet parses key=value pairs. A value becomes a number only when the
// number prints back exactly as typed; everything else stays a string, so
// 01234, 1.10, and 1e3 render unchanged.
func ParseSet(pairs []string) (render.Context, error) {
	out := make(render.Context, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found {
			return nil, fmt.Errorf("invalid value %q: expected key=value", pair)
		}
		if !keyPattern.MatchString(key) {
			return nil, fmt.Errorf("invalid variable name %q: must match %s", key, keyPattern.String())
		}
		out[key] = parseScalar(value)
	}
	return out, nil
}

func parseScalar(s string) any {
	if !numberPattern.MatchString(s) {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s {
			return i
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}

// Merge combines layers into a new Context. Later layers win.
func Merge(layers ...render.Context) render.Context {
	out := make(render.Context)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
