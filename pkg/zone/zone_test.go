package zone

import (
	"encoding/json"
	"testing"
)

func TestClassifyFixedTable(t *testing.T) {
	tests := []struct {
		resourceType string
		want         Zone
	}{
		{"azurerm_public_ip", Internet},
		{"azurerm_dns_zone", Internet},
		{"azurerm_application_gateway", Edge},
		{"azurerm_cdn_profile", Edge},
		{"azurerm_firewall", DMZ},
		{"azurerm_network_security_group", DMZ},
		{"azurerm_app_service", Presentation},
		{"azurerm_linux_web_app", Presentation},
		{"azurerm_function_app", Application},
		{"azurerm_kubernetes_cluster", Application},
		{"azurerm_sql_server", Data},
		{"azurerm_storage_account", Data},
		{"azurerm_redis_cache", Data},
		{"azurerm_log_analytics_workspace", Management},
		{"azurerm_resource_group", Management},
		{"azurerm_key_vault", Identity},
		{"azurerm_role_assignment", Identity},
	}

	for _, tt := range tests {
		if got := Classify(tt.resourceType); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.resourceType, got, tt.want)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	tests := []struct {
		resourceType string
		want         Zone
	}{
		// Category fallback for types absent from the fixed table
		{"azurerm_linux_virtual_machine", DMZ},      // compute
		{"azurerm_virtual_network", Edge},           // networking
		{"azurerm_firewall_policy", Security},       // security keyword wins over networking
		{"azurerm_managed_disk", Data},              // storage
		{"azurerm_mariadb_server", Data},            // databases
		{"azurerm_monitor_metric_alert", Management}, // monitoring
		{"azurerm_something_else", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.resourceType); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.resourceType, got, tt.want)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	// Every type resolves to some zone without panicking
	for _, rt := range []string{"nonsense", "azurerm_", "x"} {
		z := Classify(rt)
		if z < Internet || z > Unknown {
			t.Errorf("Classify(%q) out of range: %v", rt, z)
		}
	}
}

func TestLayerOf(t *testing.T) {
	tests := []struct {
		zone Zone
		want Layer
	}{
		{Internet, LayerClient},
		{Edge, LayerDelivery},
		{DMZ, LayerSecurity},
		{Presentation, LayerPresentation},
		{Application, LayerApplication},
		{Data, LayerData},
		{Management, LayerManagement},
		{Identity, LayerManagement},
		{Security, LayerManagement},
		{Unknown, LayerManagement},
	}

	for _, tt := range tests {
		if got := LayerOf(tt.zone); got != tt.want {
			t.Errorf("LayerOf(%v) = %v, want %v", tt.zone, got, tt.want)
		}
	}
}

func TestZoneTextRoundtrip(t *testing.T) {
	for z := Internet; z <= Unknown; z++ {
		data, err := json.Marshal(z)
		if err != nil {
			t.Fatalf("marshal %v: %v", z, err)
		}
		var back Zone
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != z {
			t.Errorf("roundtrip %v = %v", z, back)
		}
	}

	// Unrecognized names resolve to Unknown, not an error
	var z Zone
	if err := json.Unmarshal([]byte(`"galaxy"`), &z); err != nil {
		t.Fatalf("unmarshal unknown name: %v", err)
	}
	if z != Unknown {
		t.Errorf("unknown name = %v, want Unknown", z)
	}
}

func TestZoneIndexOrder(t *testing.T) {
	// Spatial order must place Internet before Edge before DMZ etc.
	order := []Zone{Internet, Edge, DMZ, Presentation, Application, Data, Management, Identity, Security, Unknown}
	for i := 1; i < len(order); i++ {
		if order[i-1].Index() >= order[i].Index() {
			t.Errorf("Index order broken at %v", order[i])
		}
	}
}

func TestColor(t *testing.T) {
	if Color(DMZ) != "#f97316" {
		t.Errorf("Color(DMZ) = %s", Color(DMZ))
	}
	if Color(Unknown) != DefaultColor {
		t.Errorf("Color(Unknown) should fall back to DefaultColor, got %s", Color(Unknown))
	}
}
