package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/taxonomy"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

// Styled leaf dimensions. Every non-container node is forced to one of
// these pairs regardless of the strategy's working size.
const (
	styledWidth  = 120.0
	styledHeight = 70.0

	compactWidth  = 90.0
	compactHeight = 50.0
)

// labelBudget is the display-name character budget before truncation.
const labelBudget = 24

// darkShade is subtracted from each color channel under the dark theme.
const darkShade = 40

// blueprintFill overrides container fill under the blueprint theme.
const blueprintFill = "#1e3a5f"

// providerPrefix is stripped when synthesizing display names from types.
const providerPrefix = "azurerm_"

// environmentTokens are removed from synthesized display names.
var environmentTokens = map[string]bool{
	"dev": true, "development": true,
	"prod": true, "production": true,
	"staging": true, "stage": true,
	"test": true, "qa": true, "uat": true,
}

// Style applies compact/theme styling in place and returns the node list.
// Non-container leaves at a placement size are forced to the configured
// size pair; missing display names are synthesized; theme recoloring is
// applied last.
//
// The pass is a fixed point: leaves already scaled by Normalize keep
// their geometry, and theme colors derive from the node's classification
// rather than its current color, so re-running Style (followed by
// Normalize) leaves the node list unchanged.
func Style(nodes []diagram.Node, opts diagram.Options) []diagram.Node {
	width, height := styledWidth, styledHeight
	if opts.CompactMode {
		width, height = compactWidth, compactHeight
	}

	for i := range nodes {
		n := &nodes[i]
		if !n.IsGroupContainer && presized(n.Width, n.Height) {
			n.Width = width
			n.Height = height
		}
		if n.Label == "" {
			n.Label = displayName(*n)
		}
		switch opts.Theme {
		case diagram.ThemeDark:
			n.Color = shade(baseColor(*n), darkShade)
		case diagram.ThemeBlueprint:
			if n.IsGroupContainer {
				n.Color = blueprintFill
			}
		}
	}
	return nodes
}

// presized reports whether a leaf still carries one of the placement size
// pairs. Leaves rescaled by Normalize match neither pair (the two aspect
// ratios differ) and keep their normalized geometry.
func presized(w, h float64) bool {
	return (w == styledWidth && h == styledHeight) ||
		(w == compactWidth && h == compactHeight)
}

// baseColor recomputes the light-theme color from the node's
// classification. Containers are zone-colored, leaves category-colored,
// matching initial placement.
func baseColor(n diagram.Node) string {
	if n.IsGroupContainer {
		return zone.Color(n.Zone)
	}
	return taxonomy.Color(n.Category)
}

// displayName synthesizes a human-readable label: provider prefix
// stripped, separators spaced, environment tokens removed, title-cased and
// truncated to the label budget. Falls back to the bare type name when
// nothing usable remains.
func displayName(n diagram.Node) string {
	source := n.Name
	if source == "" {
		source = strings.TrimPrefix(n.Type, providerPrefix)
	}

	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(source)
	var kept []string
	for _, token := range strings.Fields(cleaned) {
		if environmentTokens[strings.ToLower(token)] {
			continue
		}
		kept = append(kept, titleToken(token))
	}
	if len(kept) == 0 {
		fallback := strings.TrimPrefix(n.Type, providerPrefix)
		if fallback == "" {
			fallback = n.Type
		}
		return truncate(strings.NewReplacer("_", " ").Replace(fallback), labelBudget)
	}
	return truncate(strings.Join(kept, " "), labelBudget)
}

func titleToken(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget-1]) + "…"
}

// shade darkens a "#rrggbb" color by subtracting amount from each channel,
// clamped at zero. Non-hex colors pass through unchanged.
func shade(color string, amount int) string {
	if len(color) != 7 || color[0] != '#' {
		return color
	}
	channels := make([]int, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return color
		}
		c := int(v) - amount
		if c < 0 {
			c = 0
		}
		channels[i] = c
	}
	return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2])
}
