package cache

// ScopedKeyer wraps a Keyer with a prefix so server deployments can
// isolate cache namespaces per tenant or request context.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer falls back to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed dependency-graph key.
func (k *ScopedKeyer) GraphKey(resourcesHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(resourcesHash, opts)
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(resourcesHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(resourcesHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
