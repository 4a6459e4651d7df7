package layout

import (
	"math"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// Ring radii for the microservices layout, measured to node centers.
const (
	innerRadius = 200.0
	outerRadius = 400.0
)

// computeKeywords mark "compute-like" resource types placed on the inner
// ring; everything else lands on the outer ring.
var computeKeywords = []string{"app_service", "function", "container", "kubernetes"}

// buildRadial partitions resources into compute-like services on an inner
// circle and shared services on a concentric outer ring, both evenly
// spaced around the canvas center.
func buildRadial(resources []resource.Record, opts diagram.Options) []diagram.Node {
	var inner, outer []resource.Record
	for _, r := range resources {
		if isComputeLike(r.Type) {
			inner = append(inner, r)
		} else {
			outer = append(outer, r)
		}
	}

	a := &arena{}
	centerX := opts.Width / 2
	centerY := opts.Height / 2

	placeRing(a, inner, "ring_services", "Services", centerX, centerY, innerRadius, diagram.LevelPrimary)
	placeRing(a, outer, "ring_shared", "Shared Services", centerX, centerY, outerRadius, diagram.LevelSatellite)

	return a.nodes
}

// placeRing spaces members evenly around a circle at the given level and
// synthesizes one container covering the ring extent. Outer-ring members
// are satellites orbiting the compute core.
func placeRing(a *arena, members []resource.Record, id, label string, cx, cy, radius float64, level int) {
	if len(members) == 0 {
		return
	}

	containerIdx := a.addContainer(newContainer(id, label, zone.Unknown))

	step := 2 * math.Pi / float64(len(members))
	for i, r := range members {
		angle := float64(i)*step - math.Pi/2 // start at twelve o'clock
		n := newLeaf(r)
		n.Level = level
		n.X = cx + radius*math.Cos(angle) - nodeWidth/2
		n.Y = cy + radius*math.Sin(angle) - nodeHeight/2
		idx := a.addLeaf(n)
		a.adopt(containerIdx, idx)
	}

	a.fitContainer(containerIdx)
}

func isComputeLike(resourceType string) bool {
	for _, kw := range computeKeywords {
		if strings.Contains(resourceType, kw) {
			return true
		}
	}
	return false
}
