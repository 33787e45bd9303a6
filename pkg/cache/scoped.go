package cache

// ScopedKeyer wraps a Keyer with a prefix, so that entries written by
// different builds or tenants never collide.
//
// Example usage:
//
//	// Renders from one release are not served to another
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// InputKey generates a prefixed input key.
func (k *ScopedKeyer) InputKey(data []byte) string {
	return k.prefix + k.inner.InputKey(data)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(inputKey string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(inputKey, opts)
}
