package layout

import (
	"math"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
)

// Normalize rescales and translates all node geometry in place so the
// content fits centered inside the configured canvas minus padding.
//
// The scale factor is min(targetWidth/contentWidth,
// targetHeight/contentHeight, 1): content is shrunk to fit but never
// upscaled past 100%. Aspect ratio and relative layout are preserved, so
// running Normalize on an already-normalized list with the same options
// leaves geometry unchanged.
func Normalize(nodes []diagram.Node, opts diagram.Options) {
	if len(nodes) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}

	contentWidth := maxX - minX
	contentHeight := maxY - minY
	targetWidth := opts.ContentWidth()
	targetHeight := opts.ContentHeight()

	scale := 1.0
	if contentWidth > 0 {
		scale = math.Min(scale, targetWidth/contentWidth)
	}
	if contentHeight > 0 {
		scale = math.Min(scale, targetHeight/contentHeight)
	}

	offsetX := opts.Padding + (targetWidth-contentWidth*scale)/2
	offsetY := opts.Padding + (targetHeight-contentHeight*scale)/2

	for i := range nodes {
		n := &nodes[i]
		n.X = offsetX + (n.X-minX)*scale
		n.Y = offsetY + (n.Y-minY)*scale
		n.Width *= scale
		n.Height *= scale
	}
}

// Scale returns the normalization scale factor that Normalize would apply
// to the given node list, without mutating it.
func Scale(nodes []diagram.Node, opts diagram.Options) float64 {
	if len(nodes) == 0 {
		return 1
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}
	scale := 1.0
	if w := maxX - minX; w > 0 {
		scale = math.Min(scale, opts.ContentWidth()/w)
	}
	if h := maxY - minY; h > 0 {
		scale = math.Min(scale, opts.ContentHeight()/h)
	}
	return scale
}
