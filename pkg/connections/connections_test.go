package connections

import (
	"math"
	"testing"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/zone"
)

func node(id, rtype string, z zone.Zone) diagram.Node {
	return diagram.Node{
		ID: id, Type: rtype, Zone: z,
		Width: 120, Height: 70,
	}
}

func at(n diagram.Node, x, y float64) diagram.Node {
	n.X, n.Y = x, y
	return n
}

func testOpts() diagram.Options {
	opts := diagram.DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		panic(err)
	}
	return opts
}

func TestDeriveClassification(t *testing.T) {
	tests := []struct {
		name   string
		source diagram.Node
		target diagram.Node
		want   diagram.ConnectionType
	}{
		{
			// Data-flow shape wins even over the security keyword check.
			"consumer to sink is data",
			node("web", "azurerm_app_service", zone.Presentation),
			node("db", "azurerm_sql_server", zone.Data),
			diagram.ConnData,
		},
		{
			"security endpoint",
			node("web", "azurerm_app_service", zone.Presentation),
			node("kv", "azurerm_key_vault", zone.Identity),
			diagram.ConnSecurity,
		},
		{
			"cross-zone control",
			node("pip", "azurerm_public_ip", zone.Internet),
			node("web", "azurerm_app_service", zone.Presentation),
			diagram.ConnControl,
		},
		{
			"same-zone dependency",
			node("snet", "azurerm_subnet", zone.Edge),
			node("vnet", "azurerm_virtual_network", zone.Edge),
			diagram.ConnDependency,
		},
	}

	for _, tt := range tests {
		nodes := []diagram.Node{tt.source, tt.target}
		deps := map[string][]string{tt.source.ID: {tt.target.ID}}
		conns := Derive(nodes, deps, testOpts())
		if len(conns) != 1 {
			t.Fatalf("%s: got %d connections, want 1", tt.name, len(conns))
		}
		if conns[0].Type != tt.want {
			t.Errorf("%s: type = %v, want %v", tt.name, conns[0].Type, tt.want)
		}
	}
}

func TestDeriveStyling(t *testing.T) {
	tests := []struct {
		connType diagram.ConnectionType
		color    string
		style    diagram.LineStyle
		arrow    diagram.ArrowDirection
	}{
		{diagram.ConnData, "#2563eb", diagram.StyleSolid, diagram.ArrowForward},
		{diagram.ConnControl, "#7c3aed", diagram.StyleSolid, diagram.ArrowForward},
		{diagram.ConnSecurity, "#dc2626", diagram.StyleSolid, diagram.ArrowBoth},
		{diagram.ConnDependency, "#9ca3af", diagram.StyleDashed, diagram.ArrowNone},
		{diagram.ConnReference, "#d1d5db", diagram.StyleDotted, diagram.ArrowNone},
	}
	for _, tt := range tests {
		if got := colorOf(tt.connType); got != tt.color {
			t.Errorf("colorOf(%v) = %s, want %s", tt.connType, got, tt.color)
		}
		if got := styleOf(tt.connType); got != tt.style {
			t.Errorf("styleOf(%v) = %v, want %v", tt.connType, got, tt.style)
		}
		if got := arrowOf(tt.connType); got != tt.arrow {
			t.Errorf("arrowOf(%v) = %v, want %v", tt.connType, got, tt.arrow)
		}
	}
}

func TestDeriveLabels(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"azurerm_app_service", "azurerm_sql_server", "SQL"},
		{"azurerm_app_service", "azurerm_key_vault", "secrets"},
		{"azurerm_function_app", "azurerm_storage_account", "blobs"},
		{"azurerm_application_gateway", "azurerm_app_service", "HTTP"},
		{"azurerm_subnet", "azurerm_virtual_network", "member of"},
		{"azurerm_public_ip", "azurerm_firewall", ""},
	}
	for _, tt := range tests {
		if got := labelOf(tt.source, tt.target); got != tt.want {
			t.Errorf("labelOf(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestArrowAngle(t *testing.T) {
	source := at(node("a", "azurerm_subnet", zone.Edge), 0, 0)
	tests := []struct {
		name   string
		target diagram.Node
		want   float64
	}{
		{"directly right", at(node("b", "azurerm_subnet", zone.Edge), 400, 0), 270},
		{"directly below", at(node("b", "azurerm_subnet", zone.Edge), 0, 400), 0},
		{"directly left", at(node("b", "azurerm_subnet", zone.Edge), -400, 0), 90},
		{"directly above", at(node("b", "azurerm_subnet", zone.Edge), 0, -400), 180},
	}
	for _, tt := range tests {
		if got := arrowAngle(source, tt.target); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: angle = %v, want %v", tt.name, got, tt.want)
		}
		got := arrowAngle(source, tt.target)
		if got < 0 || got >= 360 {
			t.Errorf("%s: angle %v outside [0, 360)", tt.name, got)
		}
	}
}

func TestDeriveFanOutCap(t *testing.T) {
	web := node("web", "azurerm_app_service", zone.Presentation)
	nodes := []diagram.Node{
		web,
		node("db", "azurerm_sql_server", zone.Data),
		node("kv", "azurerm_key_vault", zone.Identity),
		node("snet", "azurerm_subnet", zone.Edge),
		node("misc", "azurerm_misc_thing", zone.Unknown),
	}
	deps := map[string][]string{
		// Deliberately listed lowest-value first.
		"web": {"misc", "snet", "kv", "db"},
	}

	opts := testOpts()
	opts.MaxConnectionsPerResource = 2
	conns := Derive(nodes, deps, opts)

	if len(conns) != 2 {
		t.Fatalf("got %d connections, want 2", len(conns))
	}
	// Highest scores survive: the data-flow critical pair, then the
	// security pair.
	if conns[0].Target != "db" || conns[1].Target != "kv" {
		t.Errorf("retained targets = %s, %s, want db, kv", conns[0].Target, conns[1].Target)
	}
}

func TestDeriveStableTieBreak(t *testing.T) {
	a := node("a", "azurerm_thing", zone.Unknown)
	nodes := []diagram.Node{
		a,
		node("t1", "azurerm_thing", zone.Unknown),
		node("t2", "azurerm_thing", zone.Unknown),
		node("t3", "azurerm_thing", zone.Unknown),
	}
	deps := map[string][]string{"a": {"t2", "t1", "t3"}}

	opts := testOpts()
	opts.MaxConnectionsPerResource = 2
	conns := Derive(nodes, deps, opts)
	if len(conns) != 2 || conns[0].Target != "t2" || conns[1].Target != "t1" {
		t.Errorf("tied scores should keep input order, got %v", conns)
	}
}

func TestDeriveSkipsContainersAndDangling(t *testing.T) {
	container := node("zone_data", "", zone.Data)
	container.IsGroupContainer = true

	nodes := []diagram.Node{
		node("web", "azurerm_app_service", zone.Presentation),
		node("db", "azurerm_sql_server", zone.Data),
		container,
	}
	deps := map[string][]string{
		"web":       {"db", "zone_data", "azurerm_missing_gone"},
		"zone_data": {"db"},
	}

	conns := Derive(nodes, deps, testOpts())
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	if conns[0].Source != "web" || conns[0].Target != "db" {
		t.Errorf("connection = %s -> %s, want web -> db", conns[0].Source, conns[0].Target)
	}

	d := diagram.Diagram{Nodes: nodes, Connections: conns}
	if err := d.Validate(); err != nil {
		t.Errorf("derived connections should never dangle: %v", err)
	}
}

func TestScore(t *testing.T) {
	w := DefaultScoreWeights
	tests := []struct {
		name   string
		source diagram.Node
		target diagram.Node
		want   int
	}{
		{
			// cross-zone + critical pair + data flow + high-value sink
			"app service to sql server",
			node("web", "azurerm_app_service", zone.Presentation),
			node("db", "azurerm_sql_server", zone.Data),
			w.CrossZone + w.CriticalPair + w.DataFlow + w.DataSink,
		},
		{
			// cross-zone + critical pair + security + high-value sink
			"app service to key vault",
			node("web", "azurerm_app_service", zone.Presentation),
			node("kv", "azurerm_key_vault", zone.Identity),
			w.CrossZone + w.CriticalPair + w.Security + w.DataSink,
		},
		{
			"same-zone plain edge",
			node("a", "azurerm_thing", zone.Unknown),
			node("b", "azurerm_thing", zone.Unknown),
			0,
		},
	}
	for _, tt := range tests {
		if got := score(tt.source, tt.target, w); got != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestIsCriticalPairSymmetric(t *testing.T) {
	if !isCriticalPair("azurerm_sql_server", "azurerm_app_service") {
		t.Errorf("critical pairs should match in either direction")
	}
	if isCriticalPair("azurerm_public_ip", "azurerm_dns_zone") {
		t.Errorf("unrelated pair should not be critical")
	}
}
