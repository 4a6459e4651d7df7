package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
	"github.com/sergeyitaly/tfdiagram/pkg/taxonomy"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// ungroupedBucket is the sentinel bucket for resources without a
// resolvable resource group. It always sorts last.
const ungroupedBucket = "ungrouped"

// Symbolic reference shapes accepted in resource_group_name attributes.
var (
	groupResourceRef = regexp.MustCompile(`(?:\$\{)?azurerm_resource_group\.([\w-]+)`)
	groupSymbolRef   = regexp.MustCompile(`(?:\$\{)?(?:var|local)\.([\w-]+)`)
)

// buildResourceGroups buckets resources by their inferred resource group
// and stacks one container per bucket vertically. The bucket's defining
// resource-group resource, when present, becomes the container itself;
// remaining members are grouped by type in a fixed priority order and
// wrapped into fixed-width rows.
func buildResourceGroups(resources []resource.Record, opts diagram.Options) []diagram.Node {
	buckets := make(map[string][]resource.Record)
	defining := make(map[string]resource.Record)
	var names []string

	for _, r := range resources {
		if strings.Contains(r.Type, "resource_group") {
			if _, ok := defining[r.Name]; !ok {
				defining[r.Name] = r
				if _, seen := buckets[r.Name]; !seen {
					names = append(names, r.Name)
					buckets[r.Name] = nil
				}
			}
			continue
		}
		name := groupNameOf(r)
		if _, seen := buckets[name]; !seen {
			names = append(names, name)
		}
		buckets[name] = append(buckets[name], r)
	}

	sort.Slice(names, func(i, j int) bool {
		if names[i] == ungroupedBucket {
			return false
		}
		if names[j] == ungroupedBucket {
			return true
		}
		return names[i] < names[j]
	})

	a := &arena{}
	y := 0.0
	for _, name := range names {
		y = placeBucket(a, name, buckets[name], defining, y)
	}
	return a.nodes
}

// placeBucket lays out one resource-group bucket starting at yOffset and
// returns the y offset for the next bucket.
func placeBucket(a *arena, name string, members []resource.Record, defining map[string]resource.Record, yOffset float64) float64 {
	container := containerFor(name, defining)
	containerIdx := a.addContainer(container)

	types, groups := typeGroups(members)
	sort.SliceStable(types, func(i, j int) bool {
		pi, pj := typePriority(types[i]), typePriority(types[j])
		if pi != pj {
			return pi < pj
		}
		return types[i] < types[j]
	})

	// Content width is the widest wrapped row; the container label is
	// centered above it by the renderer.
	contentWidth := rowWidth(1)
	for _, t := range types {
		for _, row := range rowsOf(len(groups[t])) {
			w := rowWidth(row[1] - row[0])
			if w > contentWidth {
				contentWidth = w
			}
		}
	}

	y := yOffset + containerPad + containerTitle
	for _, t := range types {
		items := groups[t]
		for _, row := range rowsOf(len(items)) {
			width := rowWidth(row[1] - row[0])
			rowX := containerPad + (contentWidth-width)/2
			for i := row[0]; i < row[1]; i++ {
				n := newLeaf(items[i])
				n.X = rowX + float64(i-row[0])*(nodeWidth+nodeGapX)
				n.Y = y
				idx := a.addLeaf(n)
				a.adopt(containerIdx, idx)
			}
			y += nodeHeight + nodeGapY
		}
		y += typeGroupGap - nodeGapY
	}

	if len(members) > 0 {
		a.fitContainer(containerIdx)
	} else {
		// Empty group: give the container a minimal visible footprint.
		c := &a.nodes[containerIdx]
		c.X = 0
		c.Y = yOffset
		c.Width = contentWidth + 2*containerPad
		c.Height = containerTitle + 2*containerPad
	}

	bottom := a.nodes[containerIdx].Y + a.nodes[containerIdx].Height
	return bottom + containerGap
}

// containerFor builds the bucket container: the defining resource-group
// resource when one exists, otherwise a synthesized container.
func containerFor(name string, defining map[string]resource.Record) diagram.Node {
	if r, ok := defining[name]; ok {
		info := taxonomy.Classify(r.Type)
		c := newContainer(r.ID(), r.Name, zone.Classify(r.Type))
		c.Type = r.Type
		c.Name = r.Name
		c.Category = info.Category
		c.Icon = info.Icon
		return c
	}
	label := name
	if name == ungroupedBucket {
		label = "Ungrouped"
	}
	return newContainer("group_"+name, label, zone.Unknown)
}

// groupNameOf infers the resource-group bucket for a record from its
// resource_group_name attribute, resolving symbolic references to their
// bare name. Records without a resolvable group land in the sentinel
// bucket.
func groupNameOf(r resource.Record) string {
	v, ok := r.Attributes["resource_group_name"]
	if !ok {
		return ungroupedBucket
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return ungroupedBucket
	}
	if m := groupResourceRef.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := groupSymbolRef.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if strings.ContainsAny(s, "${}.") {
		return ungroupedBucket
	}
	return s
}

// typePriority orders type groups inside a bucket: network primitives,
// then compute, then storage, then security, then everything else.
func typePriority(resourceType string) int {
	switch taxonomy.Classify(resourceType).Category {
	case taxonomy.Networking:
		return 0
	case taxonomy.Compute, taxonomy.Containers, taxonomy.Web:
		return 1
	case taxonomy.Storage, taxonomy.Databases:
		return 2
	case taxonomy.Security:
		return 3
	default:
		return 4
	}
}
