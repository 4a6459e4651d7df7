// Package diagram defines the output data model of the layout engine:
// positioned nodes, grouping containers, typed connections and the option
// set that configures a layout run.
//
// The node list is a flat arena keyed by id. Container membership is
// expressed with id references (ParentGroup / Children), never object
// pointers, so containers and members can be built in either order and the
// structure can be validated without reference identity.
package diagram

import (
	"github.com/sergeyitaly/tfdiagram/pkg/taxonomy"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// Node levels. Containers are level 0, regular resources level 1 and
// satellite resources level 2. The microservices layout marks its
// outer-ring shared services as satellites.
const (
	LevelContainer = 0
	LevelPrimary   = 1
	LevelSatellite = 2
)

// Node is one positioned element of the diagram: a resource box or a
// grouping container.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Category taxonomy.Category `json:"category"`
	Zone     zone.Zone         `json:"zone"`
	Level    int               `json:"level"`

	// ParentGroup names the container this node is nested in, or is empty.
	// It is a weak reference into the same node list.
	ParentGroup string `json:"parent_group,omitempty"`

	// Children lists member ids. Populated only on container nodes.
	Children []string `json:"children,omitempty"`

	IsGroupContainer bool `json:"is_group_container,omitempty"`

	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// CenterX returns the horizontal center of the node.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// ConnectionType classifies a derived connection.
type ConnectionType string

// Connection types in classification precedence order.
const (
	ConnData       ConnectionType = "data"
	ConnControl    ConnectionType = "control"
	ConnSecurity   ConnectionType = "security"
	ConnDependency ConnectionType = "dependency"
	ConnReference  ConnectionType = "reference"
)

// LineStyle is the stroke style of a connection.
type LineStyle string

// Line styles.
const (
	StyleSolid  LineStyle = "solid"
	StyleDashed LineStyle = "dashed"
	StyleDotted LineStyle = "dotted"
)

// ArrowDirection describes arrowhead placement on a connection.
type ArrowDirection string

// Arrow directions.
const (
	ArrowForward  ArrowDirection = "forward"
	ArrowBackward ArrowDirection = "backward"
	ArrowBoth     ArrowDirection = "both"
	ArrowNone     ArrowDirection = "none"
)

// Connection is a typed, styled, directed edge between two diagram nodes.
type Connection struct {
	Source    string         `json:"source"`
	Target    string         `json:"target"`
	Type      ConnectionType `json:"type"`
	Style     LineStyle      `json:"style"`
	Color     string         `json:"color,omitempty"`
	Direction ArrowDirection `json:"direction"`
	Label     string         `json:"label,omitempty"`

	// Angle orients the arrowhead glyph, in degrees within [0, 360).
	Angle float64 `json:"angle"`
}
