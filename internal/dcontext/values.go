package dcontext

import "context"

// stringMapContext proxies Value lookups through a map, falling back to the
// parent for unknown keys. Only string keys hit the map.
type stringMapContext struct {
	context.Context
	m map[string]any
}

// WithValues returns a context that resolves the given string-keyed values
// before consulting the parent.
func WithValues(ctx context.Context, m map[string]any) context.Context {
	mo := make(map[string]any, len(m)) // own copy, callers may reuse theirs
	for k, v := range m {
		mo[k] = v
	}

	return stringMapContext{
		Context: ctx,
		m:       mo,
	}
}

func (smc stringMapContext) Value(key any) any {
	if ks, ok := key.(string); ok {
		if v, ok := smc.m[ks]; ok {
			return v
		}
	}

	return smc.Context.Value(key)
}

// GetStringValue resolves key on the context, returning "" when it is absent
// or not a string.
func GetStringValue(ctx context.Context, key any) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
