package cache

// GraphKeyOpts are the extraction options that affect dependency-graph
// cache keys. Changing any field yields a different key.
type GraphKeyOpts struct {
	MaxPerResource       int
	HideImplicit         bool
	HideCrossEnvironment bool
}

// DiagramKeyOpts are the layout options that affect diagram cache keys.
// The extraction flags appear here too because the derived connections
// depend on the extracted graph.
type DiagramKeyOpts struct {
	Layout               string
	FlowDirection        string
	GroupBy              string
	Theme                string
	ShowZones            bool
	CompactMode          bool
	MaxConnections       int
	HideImplicit         bool
	HideCrossEnvironment bool
	Width                float64
	Height               float64
	Padding              float64
}

// Keyer produces cache keys per artifact kind.
type Keyer interface {
	// GraphKey keys a dependency graph by the resource-set hash and the
	// extraction options.
	GraphKey(resourcesHash string, opts GraphKeyOpts) string

	// DiagramKey keys a laid-out diagram by the resource-set hash and
	// the layout options.
	DiagramKey(resourcesHash string, opts DiagramKeyOpts) string
}

// DefaultKeyer implements the stock key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the stock keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for dependency-graph caching.
func (k *DefaultKeyer) GraphKey(resourcesHash string, opts GraphKeyOpts) string {
	return hashKey("graph", resourcesHash, opts)
}

// DiagramKey generates a key for diagram caching.
func (k *DefaultKeyer) DiagramKey(resourcesHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", resourcesHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
