package diagram

import (
	"testing"

	"github.com/sergeyitaly/tfdiagram/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.Layout != LayoutFlow {
		t.Errorf("Layout = %q, want flow", opts.Layout)
	}
	if opts.FlowDirection != DirectionLeftRight {
		t.Errorf("FlowDirection = %q, want left-right", opts.FlowDirection)
	}
	if opts.GroupBy != GroupByNone {
		t.Errorf("GroupBy = %q, want none", opts.GroupBy)
	}
	if opts.Theme != ThemeLight {
		t.Errorf("Theme = %q, want light", opts.Theme)
	}
	if opts.MaxConnectionsPerResource != 5 {
		t.Errorf("MaxConnectionsPerResource = %d, want 5", opts.MaxConnectionsPerResource)
	}
	if opts.Width != 1200 || opts.Height != 800 || opts.Padding != 50 {
		t.Errorf("canvas = %.0fx%.0f pad %.0f, want 1200x800 pad 50", opts.Width, opts.Height, opts.Padding)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	saved := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation: %v", err)
	}
	if opts != saved {
		t.Error("second validation changed options")
	}
}

func TestValidateRejectsInvalidEnums(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Options)
	}{
		{"layout", func(o *Options) { o.Layout = "spiral" }},
		{"direction", func(o *Options) { o.FlowDirection = "diagonal" }},
		{"groupBy", func(o *Options) { o.GroupBy = "color" }},
		{"theme", func(o *Options) { o.Theme = "neon" }},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		tt.mut(&opts)
		err := opts.ValidateAndSetDefaults()
		if err == nil {
			t.Errorf("%s: invalid value should be rejected", tt.name)
			continue
		}
		if errors.GetCode(err) != errors.ErrCodeInvalidOption {
			t.Errorf("%s: code = %v, want %v", tt.name, errors.GetCode(err), errors.ErrCodeInvalidOption)
		}
	}
}

func TestValidateRejectsDegenerateCanvas(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Options)
	}{
		{"negative width", func(o *Options) { o.Width = -100 }},
		{"negative height", func(o *Options) { o.Height = -1 }},
		{"padding eats canvas", func(o *Options) { o.Width = 80; o.Padding = 50 }},
		{"negative padding", func(o *Options) { o.Padding = -1 }},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		tt.mut(&opts)
		err := opts.ValidateAndSetDefaults()
		if err == nil {
			t.Errorf("%s: should be rejected", tt.name)
			continue
		}
		if errors.GetCode(err) != errors.ErrCodeInvalidCanvas {
			t.Errorf("%s: code = %v, want %v", tt.name, errors.GetCode(err), errors.ErrCodeInvalidCanvas)
		}
	}
}

func TestDirectionHelpers(t *testing.T) {
	opts := DefaultOptions()
	if !opts.Horizontal() || opts.Reversed() {
		t.Error("left-right should be horizontal and not reversed")
	}
	opts.FlowDirection = DirectionBottomTop
	if opts.Horizontal() || !opts.Reversed() {
		t.Error("bottom-top should be vertical and reversed")
	}
}

func TestDiagramRoundtrip(t *testing.T) {
	d := Diagram{
		Width:  1200,
		Height: 800,
		Nodes: []Node{
			{ID: "zone_dmz", Label: "DMZ", IsGroupContainer: true, Children: []string{"azurerm_firewall_fw"}},
			{ID: "azurerm_firewall_fw", Type: "azurerm_firewall", Name: "fw", ParentGroup: "zone_dmz", X: 10, Y: 20, Width: 120, Height: 70},
		},
		Connections: []Connection{
			{Source: "azurerm_firewall_fw", Target: "zone_dmz", Type: ConnDependency, Style: StyleDashed, Direction: ArrowNone},
		},
	}

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Nodes) != 2 || len(back.Connections) != 1 {
		t.Fatalf("roundtrip lost content: %+v", back)
	}
	if back.Nodes[1].ParentGroup != "zone_dmz" {
		t.Errorf("ParentGroup lost in roundtrip")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	if err == nil {
		t.Fatal("invalid JSON should error")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestValidateContainment(t *testing.T) {
	valid := Diagram{
		Nodes: []Node{
			{ID: "g", IsGroupContainer: true, Children: []string{"a"}},
			{ID: "a", ParentGroup: "g"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid diagram rejected: %v", err)
	}

	missingParent := Diagram{
		Nodes: []Node{{ID: "a", ParentGroup: "gone"}},
	}
	if missingParent.Validate() == nil {
		t.Error("missing parent should be rejected")
	}

	oneWay := Diagram{
		Nodes: []Node{
			{ID: "g", IsGroupContainer: true},
			{ID: "a", ParentGroup: "g"},
		},
	}
	if oneWay.Validate() == nil {
		t.Error("parent not listing member should be rejected")
	}

	danglingConn := Diagram{
		Nodes:       []Node{{ID: "a"}},
		Connections: []Connection{{Source: "a", Target: "ghost"}},
	}
	if danglingConn.Validate() == nil {
		t.Error("dangling connection target should be rejected")
	}
}

func TestNodeCenter(t *testing.T) {
	n := Node{X: 100, Y: 50, Width: 120, Height: 70}
	if n.CenterX() != 160 || n.CenterY() != 85 {
		t.Errorf("center = (%v, %v), want (160, 85)", n.CenterX(), n.CenterY())
	}
}
