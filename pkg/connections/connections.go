// Package connections derives typed, styled, directed connection records
// from the dependency graph and the final node positions.
//
// Derivation runs a second, render-aware pruning pass independent from the
// extraction-time cap: edges are scored for visual relevance (cross-zone,
// critical type pairs, data-flow shape, security involvement, high-value
// data sinks) and truncated to the configured fan-out, highest score
// first. Classification, color, style and arrow direction then follow
// fixed total lookup tables, and the arrowhead rotation angle is computed
// from the two node centers.
package connections

import (
	"math"
	"sort"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
)

// ScoreWeights are the additive render-time scoring bonuses. They are
// tuning parameters for visual legibility, not semantic quantities.
type ScoreWeights struct {
	CrossZone    int
	CriticalPair int
	DataFlow     int
	Security     int
	DataSink     int
}

// DefaultScoreWeights are the stock bonuses.
var DefaultScoreWeights = ScoreWeights{
	CrossZone:    10,
	CriticalPair: 20,
	DataFlow:     15,
	Security:     10,
	DataSink:     5,
}

// criticalPairs are type pairs whose edges are always worth showing.
// Matching is by substring in either direction.
var criticalPairs = [][2]string{
	{"app_service", "sql"},
	{"app_service", "key_vault"},
	{"function", "storage"},
	{"application_gateway", "app_service"},
	{"firewall", "virtual_network"},
	{"kubernetes", "container_registry"},
	{"frontdoor", "app_service"},
	{"subnet", "virtual_network"},
}

// Data-flow shape: a consumer-type keyword on the source and a sink-type
// keyword on the target.
var (
	consumerKeywords = []string{
		"app_service", "web_app", "function", "kubernetes", "container",
		"virtual_machine", "logic_app",
	}
	sinkKeywords = []string{
		"sql", "cosmosdb", "storage", "redis", "postgresql", "mysql",
		"database", "eventhub", "servicebus",
	}
)

// securityKeywords mark types whose edges classify as security.
var securityKeywords = []string{
	"key_vault", "security", "identity", "firewall", "role_", "policy",
}

// highValueSinks receive a flat scoring bonus.
var highValueSinks = []string{
	"sql_server", "mssql", "cosmosdb_account", "storage_account", "key_vault",
}

// connectionColors is the fixed type → color table.
var connectionColors = map[diagram.ConnectionType]string{
	diagram.ConnData:       "#2563eb",
	diagram.ConnControl:    "#7c3aed",
	diagram.ConnSecurity:   "#dc2626",
	diagram.ConnDependency: "#9ca3af",
	diagram.ConnReference:  "#d1d5db",
}

// connectionArrows is the fixed type → arrow direction table.
var connectionArrows = map[diagram.ConnectionType]diagram.ArrowDirection{
	diagram.ConnData:       diagram.ArrowForward,
	diagram.ConnControl:    diagram.ArrowForward,
	diagram.ConnSecurity:   diagram.ArrowBoth,
	diagram.ConnDependency: diagram.ArrowNone,
	diagram.ConnReference:  diagram.ArrowNone,
}

// connectionLabels maps known source/target type-keyword pairs to labels.
var connectionLabels = []struct {
	source, target, label string
}{
	{"app_service", "sql", "SQL"},
	{"app_service", "key_vault", "secrets"},
	{"function", "storage", "blobs"},
	{"application_gateway", "app_service", "HTTP"},
	{"frontdoor", "app_service", "HTTP"},
	{"subnet", "virtual_network", "member of"},
}

// fallbackColor covers connection types missing from the color table.
const fallbackColor = "#9ca3af"

// Derive turns each non-container node's retained dependency targets into
// connection records. Targets absent from the node list are silently
// skipped, so the result never references dangling ids.
func Derive(nodes []diagram.Node, deps map[string][]string, opts diagram.Options) []diagram.Connection {
	return DeriveScored(nodes, deps, opts, DefaultScoreWeights)
}

// DeriveScored is Derive with explicit score weights.
func DeriveScored(nodes []diagram.Node, deps map[string][]string, opts diagram.Options, weights ScoreWeights) []diagram.Connection {
	byID := make(map[string]diagram.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	connections := []diagram.Connection{}
	for _, n := range nodes {
		if n.IsGroupContainer {
			continue
		}
		targets := retained(n, deps[n.ID], byID, opts, weights)
		for _, target := range targets {
			connections = append(connections, connect(n, byID[target]))
		}
	}
	return connections
}

// retained runs the render-time scoring pass: score every resolvable edge,
// sort highest first (stable) and truncate to the fan-out cap.
func retained(source diagram.Node, targets []string, byID map[string]diagram.Node, opts diagram.Options, weights ScoreWeights) []string {
	type scored struct {
		id    string
		score int
	}
	var edges []scored
	for _, t := range targets {
		target, ok := byID[t]
		if !ok || target.IsGroupContainer {
			continue
		}
		edges = append(edges, scored{id: t, score: score(source, target, weights)})
	}

	sort.SliceStable(edges, func(i, j int) bool { return edges[i].score > edges[j].score })

	max := opts.MaxConnectionsPerResource
	if max > 0 && len(edges) > max {
		edges = edges[:max]
	}

	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.id
	}
	return ids
}

// score computes the additive render-time relevance score for an edge.
func score(source, target diagram.Node, w ScoreWeights) int {
	s := 0
	if source.Zone != target.Zone {
		s += w.CrossZone
	}
	if isCriticalPair(source.Type, target.Type) {
		s += w.CriticalPair
	}
	if isDataFlow(source.Type, target.Type) {
		s += w.DataFlow
	}
	if isSecurity(source.Type) || isSecurity(target.Type) {
		s += w.Security
	}
	if containsAny(target.Type, highValueSinks) {
		s += w.DataSink
	}
	return s
}

// connect builds the connection record for one retained edge.
func connect(source, target diagram.Node) diagram.Connection {
	connType := classify(source, target)
	return diagram.Connection{
		Source:    source.ID,
		Target:    target.ID,
		Type:      connType,
		Style:     styleOf(connType),
		Color:     colorOf(connType),
		Direction: arrowOf(connType),
		Label:     labelOf(source.Type, target.Type),
		Angle:     arrowAngle(source, target),
	}
}

// classify applies the ordered precedence: data-flow shape, security
// keyword, cross-zone control, default dependency.
func classify(source, target diagram.Node) diagram.ConnectionType {
	switch {
	case isDataFlow(source.Type, target.Type):
		return diagram.ConnData
	case isSecurity(source.Type) || isSecurity(target.Type):
		return diagram.ConnSecurity
	case source.Zone != target.Zone:
		return diagram.ConnControl
	default:
		return diagram.ConnDependency
	}
}

func styleOf(t diagram.ConnectionType) diagram.LineStyle {
	switch t {
	case diagram.ConnDependency:
		return diagram.StyleDashed
	case diagram.ConnReference:
		return diagram.StyleDotted
	default:
		return diagram.StyleSolid
	}
}

func colorOf(t diagram.ConnectionType) string {
	if c, ok := connectionColors[t]; ok {
		return c
	}
	return fallbackColor
}

func arrowOf(t diagram.ConnectionType) diagram.ArrowDirection {
	if d, ok := connectionArrows[t]; ok {
		return d
	}
	return diagram.ArrowNone
}

func labelOf(sourceType, targetType string) string {
	for _, l := range connectionLabels {
		if strings.Contains(sourceType, l.source) && strings.Contains(targetType, l.target) {
			return l.label
		}
	}
	return ""
}

// arrowAngle computes the arrowhead rotation between the two node centers:
// atan2 in degrees, minus the default glyph orientation of 90°, normalized
// into [0, 360).
func arrowAngle(source, target diagram.Node) float64 {
	dx := target.CenterX() - source.CenterX()
	dy := target.CenterY() - source.CenterY()
	angle := math.Atan2(dy, dx)*180/math.Pi - 90
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func isCriticalPair(a, b string) bool {
	for _, pair := range criticalPairs {
		if strings.Contains(a, pair[0]) && strings.Contains(b, pair[1]) {
			return true
		}
		if strings.Contains(a, pair[1]) && strings.Contains(b, pair[0]) {
			return true
		}
	}
	return false
}

func isDataFlow(sourceType, targetType string) bool {
	return containsAny(sourceType, consumerKeywords) && containsAny(targetType, sinkKeywords)
}

func isSecurity(resourceType string) bool {
	return containsAny(resourceType, securityKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
