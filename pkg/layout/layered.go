package layout

import (
	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// buildLayered buckets resources into the seven fixed layers and gives
// each non-empty layer an equal-width column. Members stack in a single
// vertical list centered on the canvas's vertical midpoint; the layer
// container bounds derive from the stack extent.
func buildLayered(resources []resource.Record, opts diagram.Options) []diagram.Node {
	var layers [zone.LayerCount][]resource.Record
	for _, r := range resources {
		l := zone.LayerOf(zone.Classify(r.Type))
		layers[l] = append(layers[l], r)
	}

	var present []zone.Layer
	for l := zone.Layer(0); int(l) < zone.LayerCount; l++ {
		if len(layers[l]) > 0 {
			present = append(present, l)
		}
	}
	if len(present) == 0 {
		return []diagram.Node{}
	}

	a := &arena{}
	columnWidth := opts.Width / float64(len(present))
	midY := opts.Height / 2

	for i, l := range present {
		members := layers[l]
		columnX := float64(i) * columnWidth

		stackHeight := float64(len(members))*(nodeHeight+nodeGapY) - nodeGapY
		y := midY - stackHeight/2

		containerIdx := a.addContainer(newContainer("layer_"+layerID(l), l.String(), zone.Unknown))

		for _, r := range members {
			n := newLeaf(r)
			n.X = columnX + (columnWidth-nodeWidth)/2
			n.Y = y
			idx := a.addLeaf(n)
			a.adopt(containerIdx, idx)
			y += nodeHeight + nodeGapY
		}

		a.fitContainer(containerIdx)
	}

	return a.nodes
}

func layerID(l zone.Layer) string {
	switch l {
	case zone.LayerClient:
		return "client"
	case zone.LayerDelivery:
		return "delivery"
	case zone.LayerSecurity:
		return "security"
	case zone.LayerPresentation:
		return "presentation"
	case zone.LayerApplication:
		return "application"
	case zone.LayerData:
		return "data"
	default:
		return "management"
	}
}
