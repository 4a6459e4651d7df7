package layout

import (
	"math"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// fixedZoneOrder is the zone subset the zones strategy renders, in column
// order. Resources outside these zones are not placed by this strategy.
var fixedZoneOrder = []zone.Zone{
	zone.Internet, zone.Edge, zone.DMZ, zone.Presentation, zone.Application, zone.Data,
}

// buildZoneColumns gives each present fixed zone an equal-width column with
// members arranged in a square-ish grid centered in the column. Falls back
// to the flow strategy when none of the fixed zones are present.
func buildZoneColumns(resources []resource.Record, opts diagram.Options) []diagram.Node {
	_, buckets := zoneBuckets(resources)

	var present []zone.Zone
	for _, z := range fixedZoneOrder {
		if len(buckets[z]) > 0 {
			present = append(present, z)
		}
	}
	if len(present) == 0 {
		return buildFlow(resources, opts)
	}

	a := &arena{}
	columnWidth := opts.Width / float64(len(present))
	midY := opts.Height / 2

	for i, z := range present {
		members := buckets[z]
		cols := gridColumns(len(members))
		rows := int(math.Ceil(float64(len(members)) / float64(cols)))

		gridWidth := float64(cols)*(nodeWidth+nodeGapX) - nodeGapX
		gridHeight := float64(rows)*(nodeHeight+nodeGapY) - nodeGapY

		originX := float64(i)*columnWidth + (columnWidth-gridWidth)/2
		originY := midY - gridHeight/2

		containerIdx := a.addContainer(newContainer("zone_"+z.String(), zoneLabel(z), z))

		for j, r := range members {
			n := newLeaf(r)
			n.X = originX + float64(j%cols)*(nodeWidth+nodeGapX)
			n.Y = originY + float64(j/cols)*(nodeHeight+nodeGapY)
			idx := a.addLeaf(n)
			a.adopt(containerIdx, idx)
		}

		a.fitContainer(containerIdx)
	}

	return a.nodes
}
