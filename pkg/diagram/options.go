package diagram

import (
	"github.com/sergeyitaly/tfdiagram/pkg/errors"
)

// =============================================================================
// Option Values - Single Source of Truth for CLI, API and Config
// =============================================================================

// Layout strategies.
const (
	LayoutFlow          = "flow"
	LayoutLayered       = "layered"
	LayoutZones         = "zones"
	LayoutMicroservices = "microservices"
)

// Flow directions.
const (
	DirectionLeftRight = "left-right"
	DirectionTopBottom = "top-bottom"
	DirectionRightLeft = "right-left"
	DirectionBottomTop = "bottom-top"
)

// Grouping modes. GroupByResourceGroup short-circuits strategy dispatch.
const (
	GroupByZone          = "zone"
	GroupByFunction      = "function"
	GroupByLayer         = "layer"
	GroupByResourceGroup = "resourceGroup"
	GroupByNone          = "none"
)

// Themes.
const (
	ThemeLight     = "light"
	ThemeDark      = "dark"
	ThemeBlueprint = "blueprint"
)

// Default option values.
const (
	DefaultLayout         = LayoutFlow
	DefaultFlowDirection  = DirectionLeftRight
	DefaultGroupBy        = GroupByNone
	DefaultTheme          = ThemeLight
	DefaultMaxConnections = 5
	DefaultWidth          = 1200.0
	DefaultHeight         = 800.0
	DefaultPadding        = 50.0
)

// ValidLayouts is the set of supported layout strategies.
var ValidLayouts = map[string]bool{
	LayoutFlow:          true,
	LayoutLayered:       true,
	LayoutZones:         true,
	LayoutMicroservices: true,
}

// ValidDirections is the set of supported flow directions.
var ValidDirections = map[string]bool{
	DirectionLeftRight: true,
	DirectionTopBottom: true,
	DirectionRightLeft: true,
	DirectionBottomTop: true,
}

// ValidGroupings is the set of supported grouping modes.
var ValidGroupings = map[string]bool{
	GroupByZone:          true,
	GroupByFunction:      true,
	GroupByLayer:         true,
	GroupByResourceGroup: true,
	GroupByNone:          true,
}

// ValidThemes is the set of supported themes.
var ValidThemes = map[string]bool{
	ThemeLight:     true,
	ThemeDark:      true,
	ThemeBlueprint: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a layout run. The zero value is not directly usable:
// resolve defaults with ValidateAndSetDefaults (or start from
// DefaultOptions) before handing Options to the engine.
type Options struct {
	Layout        string `json:"layout,omitempty"`
	FlowDirection string `json:"flow_direction,omitempty"`
	GroupBy       string `json:"group_by,omitempty"`
	Theme         string `json:"theme,omitempty"`

	ShowZones   bool `json:"show_zones"`
	CompactMode bool `json:"compact_mode,omitempty"`

	MaxConnectionsPerResource int `json:"max_connections_per_resource,omitempty"`

	HideImplicitDependencies bool `json:"hide_implicit_dependencies,omitempty"`
	HideCrossEnvironment     bool `json:"hide_cross_environment,omitempty"`

	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Padding float64 `json:"padding,omitempty"`

	// validated tracks whether ValidateAndSetDefaults already ran.
	// Unexported, so it never marshals.
	validated bool
}

// DefaultOptions returns an Options with every field at its documented
// default. Callers mutating individual fields should start here so boolean
// defaults (ShowZones) survive.
func DefaultOptions() Options {
	return Options{
		Layout:                    DefaultLayout,
		FlowDirection:             DefaultFlowDirection,
		GroupBy:                   DefaultGroupBy,
		Theme:                     DefaultTheme,
		ShowZones:                 true,
		MaxConnectionsPerResource: DefaultMaxConnections,
		Width:                     DefaultWidth,
		Height:                    DefaultHeight,
		Padding:                   DefaultPadding,
	}
}

// ValidateAndSetDefaults fills unset fields with documented defaults and
// rejects unsupported or degenerate configuration. The method is idempotent.
//
// A negative canvas dimension is a caller precondition violation and is
// reported here, before any layout begins.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.FlowDirection == "" {
		o.FlowDirection = DefaultFlowDirection
	}
	if o.GroupBy == "" {
		o.GroupBy = DefaultGroupBy
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.MaxConnectionsPerResource == 0 {
		o.MaxConnectionsPerResource = DefaultMaxConnections
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}

	if !ValidLayouts[o.Layout] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid layout: %q (must be one of: flow, layered, zones, microservices)", o.Layout)
	}
	if !ValidDirections[o.FlowDirection] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid flow direction: %q (must be one of: left-right, top-bottom, right-left, bottom-top)", o.FlowDirection)
	}
	if !ValidGroupings[o.GroupBy] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid grouping: %q (must be one of: zone, function, layer, resourceGroup, none)", o.GroupBy)
	}
	if !ValidThemes[o.Theme] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid theme: %q (must be one of: light, dark, blueprint)", o.Theme)
	}
	if o.MaxConnectionsPerResource < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "max connections per resource must be positive, got %d", o.MaxConnectionsPerResource)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas dimensions must be positive, got %.0fx%.0f", o.Width, o.Height)
	}
	if o.Padding < 0 || 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return errors.New(errors.ErrCodeInvalidCanvas, "padding %.0f leaves no drawable area on a %.0fx%.0f canvas", o.Padding, o.Width, o.Height)
	}

	o.validated = true
	return nil
}

// ContentWidth returns the drawable width inside the canvas padding.
func (o Options) ContentWidth() float64 { return o.Width - 2*o.Padding }

// ContentHeight returns the drawable height inside the canvas padding.
func (o Options) ContentHeight() float64 { return o.Height - 2*o.Padding }

// Horizontal reports whether the flow direction runs along the x axis.
func (o Options) Horizontal() bool {
	return o.FlowDirection == DirectionLeftRight || o.FlowDirection == DirectionRightLeft
}

// Reversed reports whether the flow direction runs against the axis.
func (o Options) Reversed() bool {
	return o.FlowDirection == DirectionRightLeft || o.FlowDirection == DirectionBottomTop
}
