// Package layout places classified resources on a 2-D canvas.
//
// Five interchangeable strategies consume the resource list plus the pruned
// dependency graph and emit positioned nodes and group containers: flow
// (zone bands along a primary axis), layered (seven fixed tiers), zones
// (fixed zone columns), microservices (concentric rings) and resource-group
// (buckets by inferred resource group).
//
// Strategies place content in raw coordinates; the [Style] and [Normalize]
// passes then force leaf sizes, synthesize display labels, apply theme
// colors and fit the result into the configured canvas. All placement is
// deterministic for a given input order.
package layout

import (
	"math"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/taxonomy"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// Raw placement geometry. Style later forces leaf dimensions; these are the
// working sizes strategies place with.
const (
	nodeWidth  = 120.0
	nodeHeight = 70.0

	nodeGapX = 40.0
	nodeGapY = 40.0

	// containerPad is the inset between a container border and its content.
	containerPad = 30.0

	// containerTitle reserves vertical space for the container label strip.
	containerTitle = 28.0

	// containerGap separates sibling containers.
	containerGap = 60.0

	// typeGroupGap separates stacked type groups inside a container.
	typeGroupGap = 24.0

	// maxRowItems is the wrap width, in items, for type-group rows.
	maxRowItems = 4
)

// Build places the resource list using the strategy selected by opts and
// returns the node arena: leaf nodes plus synthesized group containers.
//
// GroupBy == resourceGroup short-circuits strategy dispatch entirely;
// otherwise the layout option selects the strategy, defaulting to flow.
// The dependency graph is accepted for strategy parity but only spatial
// classification drives placement.
func Build(resources []resource.Record, deps map[string][]string, opts diagram.Options) []diagram.Node {
	if len(resources) == 0 {
		return []diagram.Node{}
	}

	if opts.GroupBy == diagram.GroupByResourceGroup {
		return buildResourceGroups(resources, opts)
	}

	switch opts.Layout {
	case diagram.LayoutLayered:
		return buildLayered(resources, opts)
	case diagram.LayoutZones:
		return buildZoneColumns(resources, opts)
	case diagram.LayoutMicroservices:
		return buildRadial(resources, opts)
	default:
		return buildFlow(resources, opts)
	}
}

// newLeaf constructs an unpositioned leaf node for a resource with its
// classification filled in.
func newLeaf(r resource.Record) diagram.Node {
	info := taxonomy.Classify(r.Type)
	return diagram.Node{
		ID:       r.ID(),
		Type:     r.Type,
		Name:     r.Name,
		Width:    nodeWidth,
		Height:   nodeHeight,
		Category: info.Category,
		Zone:     zone.Classify(r.Type),
		Level:    diagram.LevelPrimary,
		Color:    taxonomy.Color(info.Category),
		Icon:     info.Icon,
	}
}

// newContainer constructs a group-container node. Geometry is filled in by
// the caller once content is placed.
func newContainer(id, label string, z zone.Zone) diagram.Node {
	return diagram.Node{
		ID:               id,
		Label:            label,
		Zone:             z,
		Level:            diagram.LevelContainer,
		IsGroupContainer: true,
		Color:            zone.Color(z),
	}
}

// arena accumulates placed nodes and wires container membership through
// id references.
type arena struct {
	nodes []diagram.Node
}

// addLeaf appends a leaf node and returns its index.
func (a *arena) addLeaf(n diagram.Node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// addContainer appends a container node and returns its index.
func (a *arena) addContainer(n diagram.Node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// adopt links a member into a container, maintaining both sides of the
// weak parent/child reference pair.
func (a *arena) adopt(containerIdx, memberIdx int) {
	member := &a.nodes[memberIdx]
	container := &a.nodes[containerIdx]
	member.ParentGroup = container.ID
	container.Children = append(container.Children, member.ID)
}

// fitContainer sets a container's geometry to the bounding box of its
// children plus padding and the title strip.
func (a *arena) fitContainer(containerIdx int) {
	container := &a.nodes[containerIdx]
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range container.Children {
		for i := range a.nodes {
			if a.nodes[i].ID != id {
				continue
			}
			n := a.nodes[i]
			minX = math.Min(minX, n.X)
			minY = math.Min(minY, n.Y)
			maxX = math.Max(maxX, n.X+n.Width)
			maxY = math.Max(maxY, n.Y+n.Height)
		}
	}
	if minX > maxX {
		return // no children placed
	}
	container.X = minX - containerPad
	container.Y = minY - containerPad - containerTitle
	container.Width = maxX - minX + 2*containerPad
	container.Height = maxY - minY + 2*containerPad + containerTitle
}

// gridColumns returns the column count for a roughly square grid of n items.
func gridColumns(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// zoneBuckets groups resources by their classified zone, returning the
// present zones in spatial order and the members of each in input order.
func zoneBuckets(resources []resource.Record) ([]zone.Zone, map[zone.Zone][]resource.Record) {
	buckets := make(map[zone.Zone][]resource.Record)
	var order []zone.Zone
	for _, r := range resources {
		z := zone.Classify(r.Type)
		if _, seen := buckets[z]; !seen {
			order = append(order, z)
		}
		buckets[z] = append(buckets[z], r)
	}
	// Spatial order, not first-seen order. Unknown sorts last by index.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j].Index() < order[j-1].Index(); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order, buckets
}

// typeGroups splits records into per-type groups preserving first-seen
// type order.
func typeGroups(records []resource.Record) ([]string, map[string][]resource.Record) {
	groups := make(map[string][]resource.Record)
	var order []string
	for _, r := range records {
		if _, seen := groups[r.Type]; !seen {
			order = append(order, r.Type)
		}
		groups[r.Type] = append(groups[r.Type], r)
	}
	return order, groups
}

// rowsOf wraps items into rows of at most maxRowItems.
func rowsOf(n int) [][2]int {
	var rows [][2]int
	for start := 0; start < n; start += maxRowItems {
		end := start + maxRowItems
		if end > n {
			end = n
		}
		rows = append(rows, [2]int{start, end})
	}
	return rows
}

// rowWidth returns the placed width of count items in a row.
func rowWidth(count int) float64 {
	return float64(count)*(nodeWidth+nodeGapX) - nodeGapX
}
