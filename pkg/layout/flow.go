package layout

import (
	"math"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// buildFlow arranges resources in zone bands along the primary flow axis.
// Horizontal flow gives each zone a column band with a roughly square grid
// inside. Vertical flow stacks zone bands and lays members out as
// horizontally centered type-group rows. Unknown-zone resources form a
// trailing band under the same sub-layout rules.
func buildFlow(resources []resource.Record, opts diagram.Options) []diagram.Node {
	order, buckets := zoneBuckets(resources)
	if opts.Reversed() {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	a := &arena{}
	if opts.Horizontal() {
		flowColumns(a, order, buckets, opts)
	} else {
		flowStack(a, order, buckets, opts)
	}
	return a.nodes
}

// flowColumns places one proportional column band per zone, members in a
// ceil(sqrt(n))-column grid.
func flowColumns(a *arena, order []zone.Zone, buckets map[zone.Zone][]resource.Record, opts diagram.Options) {
	x := 0.0
	for _, z := range order {
		members := buckets[z]
		cols := gridColumns(len(members))

		bandX := x + containerPad
		bandY := containerPad + containerTitle

		var containerIdx = -1
		if opts.ShowZones {
			containerIdx = a.addContainer(newContainer("zone_"+z.String(), zoneLabel(z), z))
		}

		for i, r := range members {
			col := i % cols
			row := i / cols
			n := newLeaf(r)
			n.X = bandX + float64(col)*(nodeWidth+nodeGapX)
			n.Y = bandY + float64(row)*(nodeHeight+nodeGapY)
			idx := a.addLeaf(n)
			if containerIdx >= 0 {
				a.adopt(containerIdx, idx)
			}
		}

		if containerIdx >= 0 {
			a.fitContainer(containerIdx)
		}

		bandWidth := float64(cols)*(nodeWidth+nodeGapX) - nodeGapX + 2*containerPad
		x += bandWidth + containerGap
	}
}

// flowStack places one zone band per row, members grouped by type and
// wrapped into centered rows. Band dimensions come from placed content,
// not an up-front guess.
func flowStack(a *arena, order []zone.Zone, buckets map[zone.Zone][]resource.Record, opts diagram.Options) {
	y := 0.0
	for _, z := range order {
		members := buckets[z]
		types, groups := typeGroups(members)

		// Content width is the widest wrapped row across all type groups.
		contentWidth := 0.0
		for _, t := range types {
			for _, r := range rowsOf(len(groups[t])) {
				contentWidth = math.Max(contentWidth, rowWidth(r[1]-r[0]))
			}
		}

		var containerIdx = -1
		if opts.ShowZones {
			containerIdx = a.addContainer(newContainer("zone_"+z.String(), zoneLabel(z), z))
		}

		bandY := y + containerPad + containerTitle
		for _, t := range types {
			items := groups[t]
			for _, row := range rowsOf(len(items)) {
				width := rowWidth(row[1] - row[0])
				rowX := containerPad + (contentWidth-width)/2
				for i := row[0]; i < row[1]; i++ {
					n := newLeaf(items[i])
					n.X = rowX + float64(i-row[0])*(nodeWidth+nodeGapX)
					n.Y = bandY
					idx := a.addLeaf(n)
					if containerIdx >= 0 {
						a.adopt(containerIdx, idx)
					}
				}
				bandY += nodeHeight + nodeGapY
			}
			bandY += typeGroupGap - nodeGapY
		}

		if containerIdx >= 0 {
			a.fitContainer(containerIdx)
		}

		bandHeight := bandY - y + containerPad
		y += bandHeight + containerGap
	}
}

// zoneLabel returns the display label for a zone band. Unclassifiable
// resources collect under "Other".
func zoneLabel(z zone.Zone) string {
	if z == zone.Unknown {
		return "Other"
	}
	name := z.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
