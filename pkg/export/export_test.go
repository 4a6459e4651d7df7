package export

import (
	"strings"
	"testing"

	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

func TestToDOT(t *testing.T) {
	resources := []resource.Record{
		{Type: "azurerm_public_ip", Name: "pip"},
		{Type: "azurerm_app_service", Name: "web"},
	}
	deps := map[string][]string{
		"azurerm_app_service_web": {"azurerm_public_ip_pip"},
	}

	dot := ToDOT(resources, deps)

	if !strings.HasPrefix(dot, "digraph dependencies {") {
		t.Errorf("missing digraph header")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Errorf("missing rankdir")
	}
	for _, want := range []string{
		`"azurerm_public_ip_pip"`,
		`"azurerm_app_service_web"`,
		`"azurerm_app_service_web" -> "azurerm_public_ip_pip";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
	// Internet zone fill for the public IP.
	if !strings.Contains(dot, `fillcolor="#60a5fa"`) {
		t.Errorf("node fill should carry the zone color")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Errorf("unterminated graph")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	resources := []resource.Record{
		{Type: "azurerm_subnet", Name: "a"},
		{Type: "azurerm_subnet", Name: "b"},
		{Type: "azurerm_virtual_network", Name: "vnet"},
	}
	deps := map[string][]string{
		"azurerm_subnet_b": {"azurerm_virtual_network_vnet"},
		"azurerm_subnet_a": {"azurerm_virtual_network_vnet"},
	}

	first := ToDOT(resources, deps)
	for i := 0; i < 10; i++ {
		if got := ToDOT(resources, deps); got != first {
			t.Fatalf("DOT output not deterministic")
		}
	}
	// Edge sources emit in sorted order regardless of map iteration.
	if strings.Index(first, `"azurerm_subnet_a" ->`) > strings.Index(first, `"azurerm_subnet_b" ->`) {
		t.Errorf("edges should emit in sorted source order")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="144pt" height="72pt" viewBox="0.00 0.00 144.00 72.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 144.00 72.00"`) {
		t.Errorf("view box should be rebased to the origin: %s", got)
	}
	if !strings.Contains(got, `width="144" height="72"`) {
		t.Errorf("pixel size should match the view box: %s", got)
	}
	if strings.Contains(got, "pt") {
		t.Errorf("point sizes should be stripped: %s", got)
	}

	// SVG without a view box passes through untouched.
	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Errorf("svg without a view box should be unchanged")
	}
}
