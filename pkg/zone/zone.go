// Package zone classifies infrastructure resources into security/network
// zones and collapses zones into the fixed layer sequence used by the
// layered layout strategy.
//
// Classification is a total function: every resource type resolves to a
// zone, falling back to category-based rules and finally to [Unknown].
// There are no error paths.
package zone

import (
	"strings"

	"github.com/sergeyitaly/tfdiagram/pkg/taxonomy"
)

// Zone is a coarse security/network-topology bucket used to group and
// order resources spatially.
type Zone int

// Zones in spatial order. Index returns this ordering for layout.
const (
	Internet Zone = iota
	Edge
	DMZ
	Presentation
	Application
	Data
	Management
	Identity
	Security
	Unknown
)

var zoneNames = map[Zone]string{
	Internet:     "internet",
	Edge:         "edge",
	DMZ:          "dmz",
	Presentation: "presentation",
	Application:  "application",
	Data:         "data",
	Management:   "management",
	Identity:     "identity",
	Security:     "security",
	Unknown:      "unknown",
}

// String returns the lowercase zone name.
func (z Zone) String() string {
	if s, ok := zoneNames[z]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so zones serialize as names.
func (z Zone) MarshalText() ([]byte, error) { return []byte(z.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized names
// resolve to Unknown rather than erroring.
func (z *Zone) UnmarshalText(text []byte) error {
	s := string(text)
	for zone, name := range zoneNames {
		if name == s {
			*z = zone
			return nil
		}
	}
	*z = Unknown
	return nil
}

// Index returns the spatial ordering position of the zone. Lower indices
// are placed earlier along the primary layout axis.
func (z Zone) Index() int { return int(z) }

// Layer is one of the seven fixed tiers used by the layered layout strategy.
type Layer int

// Layers in top-to-bottom (or left-to-right) order.
const (
	LayerClient Layer = iota
	LayerDelivery
	LayerSecurity
	LayerPresentation
	LayerApplication
	LayerData
	LayerManagement
)

// LayerCount is the number of fixed layers.
const LayerCount = 7

var layerNames = [LayerCount]string{
	"Client", "Delivery", "Security", "Presentation", "Application", "Data", "Management",
}

// String returns the layer's display name.
func (l Layer) String() string {
	if l >= 0 && int(l) < LayerCount {
		return layerNames[l]
	}
	return "Management"
}

// typeZones is the fixed resource-type → zone table consulted before the
// category fallback. Types follow the azurerm provider naming.
var typeZones = map[string]Zone{
	"azurerm_public_ip":               Internet,
	"azurerm_dns_zone":                Internet,
	"azurerm_traffic_manager_profile": Internet,
	"azurerm_cdn_profile":             Edge,
	"azurerm_cdn_endpoint":            Edge,
	"azurerm_frontdoor":               Edge,
	"azurerm_front_door":              Edge,
	"azurerm_application_gateway":     Edge,
	"azurerm_lb":                      Edge,
	"azurerm_firewall":                DMZ,
	"azurerm_bastion_host":            DMZ,
	"azurerm_network_security_group":  DMZ,
	"azurerm_app_service":             Presentation,
	"azurerm_linux_web_app":           Presentation,
	"azurerm_windows_web_app":         Presentation,
	"azurerm_static_site":             Presentation,
	"azurerm_app_service_plan":        Application,
	"azurerm_service_plan":            Application,
	"azurerm_function_app":            Application,
	"azurerm_linux_function_app":      Application,
	"azurerm_kubernetes_cluster":      Application,
	"azurerm_container_group":         Application,
	"azurerm_sql_server":              Data,
	"azurerm_mssql_server":            Data,
	"azurerm_mssql_database":          Data,
	"azurerm_cosmosdb_account":        Data,
	"azurerm_storage_account":         Data,
	"azurerm_redis_cache":             Data,
	"azurerm_postgresql_server":       Data,
	"azurerm_mysql_server":            Data,
	"azurerm_log_analytics_workspace": Management,
	"azurerm_application_insights":    Management,
	"azurerm_monitor_action_group":    Management,
	"azurerm_automation_account":      Management,
	"azurerm_resource_group":          Management,
	"azurerm_key_vault":               Identity,
	"azurerm_user_assigned_identity":  Identity,
	"azurerm_role_assignment":         Identity,
}

// Classify maps a resource type to its zone. The fixed table wins; types
// absent from it fall back to category-based rules, and anything unmatched
// resolves to Unknown.
func Classify(resourceType string) Zone {
	if z, ok := typeZones[resourceType]; ok {
		return z
	}
	switch taxonomy.Classify(resourceType).Category {
	case taxonomy.Compute:
		return DMZ
	case taxonomy.Networking:
		if strings.Contains(resourceType, "firewall") {
			return DMZ
		}
		return Edge
	case taxonomy.Storage, taxonomy.Databases:
		return Data
	case taxonomy.Security:
		if strings.Contains(resourceType, "key_vault") || strings.Contains(resourceType, "keyvault") {
			return Identity
		}
		return Security
	case taxonomy.Monitoring, taxonomy.Management:
		return Management
	default:
		return Unknown
	}
}

// LayerOf collapses a zone into one of the seven fixed layers.
func LayerOf(z Zone) Layer {
	switch z {
	case Internet:
		return LayerClient
	case Edge:
		return LayerDelivery
	case DMZ:
		return LayerSecurity
	case Presentation:
		return LayerPresentation
	case Application:
		return LayerApplication
	case Data:
		return LayerData
	default:
		// Management, Identity, Security and Unknown all share the
		// management tier in the layered view.
		return LayerManagement
	}
}

// zoneColors maps zones to their display color.
var zoneColors = map[Zone]string{
	Internet:     "#60a5fa",
	Edge:         "#38bdf8",
	DMZ:          "#f97316",
	Presentation: "#34d399",
	Application:  "#10b981",
	Data:         "#6366f1",
	Management:   "#a78bfa",
	Identity:     "#f59e0b",
	Security:     "#ef4444",
}

// DefaultColor is the fallback for zones without a configured color.
const DefaultColor = "#9ca3af"

// Color returns the display color for a zone, falling back to DefaultColor.
func Color(z Zone) string {
	if c, ok := zoneColors[z]; ok {
		return c
	}
	return DefaultColor
}
