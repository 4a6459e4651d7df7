// Package depgraph builds the pruned dependency graph of a resource list.
//
// Extraction combines explicitly declared references with implicit
// references discovered inside attribute values, then prunes the edge list:
// self-edges, unresolved targets and (optionally) cross-environment edges
// are dropped, and per-resource fan-out is capped by a stable priority sort.
//
// Malformed reference data is handled by omission, never by erroring: the
// result for a resource with no surviving edges is simply absent from the
// output mapping.
package depgraph

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

// DefaultMaxPerResource caps outgoing edges per resource when Options does
// not specify a limit.
const DefaultMaxPerResource = 5

// Options controls extraction behavior.
type Options struct {
	// MaxPerResource caps the number of retained outgoing edges per
	// resource. Zero means DefaultMaxPerResource.
	MaxPerResource int

	// HideImplicit disables attribute scanning so only explicitly declared
	// references produce edges.
	HideImplicit bool

	// HideCrossEnvironment drops edges whose endpoints carry differing
	// environment tags.
	HideCrossEnvironment bool
}

func (o Options) maxPerResource() int {
	if o.MaxPerResource > 0 {
		return o.MaxPerResource
	}
	return DefaultMaxPerResource
}

// Reference shapes recognized inside attribute values. Variable and local
// symbols are intentionally not matched: they never name diagram entities.
var (
	resourceRefPattern = regexp.MustCompile(`\b([a-z][a-z0-9]*(?:_[a-z0-9]+)+)\.([A-Za-z][\w-]*)`)
	moduleRefPattern   = regexp.MustCompile(`\bmodule\.([\w-]+)`)
	dataRefPattern     = regexp.MustCompile(`\bdata\.([a-z][a-z0-9_]*)\.([\w-]+)`)
)

// nonDiagramPrefixes mark symbolic references to entities that never appear
// in the diagram (variables, locals, data sources, module outputs handled
// separately).
var nonDiagramPrefixes = []string{"var.", "local.", "data.", "each.", "count."}

// Extract builds the id → ordered dependency-target mapping for a resource
// list. Resources with no surviving edges are omitted from the result.
func Extract(resources []resource.Record, opts Options) map[string][]string {
	index := resource.Index(resources)
	graph := make(map[string][]string, len(resources))

	for _, r := range resources {
		id := r.ID()
		var targets []string
		seen := map[string]bool{}

		add := func(target string) {
			if target == "" || target == id || seen[target] {
				return
			}
			if _, exists := index[target]; !exists {
				return
			}
			if opts.HideCrossEnvironment && crossEnvironment(r, index[target]) {
				return
			}
			seen[target] = true
			targets = append(targets, target)
		}

		for _, ref := range r.References {
			add(resolveReference(ref, index))
		}

		if !opts.HideImplicit {
			for _, candidate := range scanValue(r.Attributes) {
				add(candidate)
			}
		}

		if len(targets) > opts.maxPerResource() {
			targets = prune(targets, index, opts.maxPerResource())
		}

		if len(targets) > 0 {
			graph[id] = targets
		}
	}

	return graph
}

// resolveReference turns an explicit reference into a candidate id.
// References may already be ids ("type_name") or symbolic ("type.name").
// References to non-diagram entities resolve to "".
func resolveReference(ref string, index map[string]resource.Record) string {
	for _, prefix := range nonDiagramPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return ""
		}
	}
	if _, ok := index[ref]; ok {
		return ref
	}
	if m := resourceRefPattern.FindStringSubmatch(ref); m != nil {
		return m[1] + "_" + m[2]
	}
	return ""
}

// scanValue walks an attribute value recursively and collects candidate
// ids for every recognized reference shape. Map keys are visited in sorted
// order so results are deterministic.
func scanValue(v any) []string {
	var found []string
	switch val := v.(type) {
	case string:
		found = append(found, scanString(val)...)
	case []any:
		for _, item := range val {
			found = append(found, scanValue(item)...)
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			found = append(found, scanValue(val[k])...)
		}
	}
	return found
}

func scanString(s string) []string {
	var found []string
	for _, m := range dataRefPattern.FindAllStringSubmatch(s, -1) {
		found = append(found, m[1]+"_"+m[2])
	}
	for _, m := range moduleRefPattern.FindAllStringSubmatch(s, -1) {
		found = append(found, "module_"+m[1])
	}
	for _, m := range resourceRefPattern.FindAllStringSubmatch(s, -1) {
		found = append(found, m[1]+"_"+m[2])
	}
	return found
}

// prune truncates an overlong edge list to max entries. Edges into grouping
// and network backbone resources sort first; otherwise original order is
// preserved (a stable priority sort, not a scored one).
func prune(targets []string, index map[string]resource.Record, max int) []string {
	pruned := make([]string, len(targets))
	copy(pruned, targets)
	sort.SliceStable(pruned, func(i, j int) bool {
		return edgePriority(pruned[i], index) < edgePriority(pruned[j], index)
	})
	return pruned[:max]
}

func edgePriority(target string, index map[string]resource.Record) int {
	t := index[target].Type
	switch {
	case strings.Contains(t, "resource_group"):
		return 0
	case strings.Contains(t, "virtual_network"):
		return 1
	default:
		return 2
	}
}

// crossEnvironment reports whether both records resolve an environment tag
// and the tags differ.
func crossEnvironment(a, b resource.Record) bool {
	ea, eb := a.Environment(), b.Environment()
	return ea != "" && eb != "" && ea != eb
}
