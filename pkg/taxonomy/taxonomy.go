// Package taxonomy maps resource types to service categories and icon keys.
//
// The classifier is a total function: every type resolves to a category,
// with General as the fallback for unrecognized types. Renderers consume the
// category→color lookup; the layout engine consumes categories when deciding
// zone fallbacks and type-group ordering.
package taxonomy

import "strings"

// Category is a coarse service classification for a resource type.
type Category int

// Categories. General is the fallback for unrecognized types.
const (
	Networking Category = iota
	Compute
	Containers
	Web
	Databases
	Storage
	Security
	Monitoring
	Management
	Integration
	General
)

var categoryNames = map[Category]string{
	Networking:  "networking",
	Compute:     "compute",
	Containers:  "containers",
	Web:         "web",
	Databases:   "databases",
	Storage:     "storage",
	Security:    "security",
	Monitoring:  "monitoring",
	Management:  "management",
	Integration: "integration",
	General:     "general",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "general"
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized names
// resolve to General rather than erroring.
func (c *Category) UnmarshalText(text []byte) error {
	s := string(text)
	for cat, name := range categoryNames {
		if name == s {
			*c = cat
			return nil
		}
	}
	*c = General
	return nil
}

// Info is the classification result for a resource type.
type Info struct {
	Category Category
	Icon     string
}

// categoryKeywords is checked in order; the first keyword contained in the
// resource type decides the category. Order matters: more specific service
// families are listed before generic ones.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"kubernetes", Containers},
	{"container", Containers},
	{"registry", Containers},
	{"app_service", Web},
	{"web_app", Web},
	{"function", Web},
	{"static_site", Web},
	{"logic_app", Integration},
	{"servicebus", Integration},
	{"eventhub", Integration},
	{"eventgrid", Integration},
	{"api_management", Integration},
	{"sql", Databases},
	{"cosmosdb", Databases},
	{"postgresql", Databases},
	{"mysql", Databases},
	{"mariadb", Databases},
	{"database", Databases},
	{"redis", Databases},
	{"storage", Storage},
	{"backup", Storage},
	{"disk", Storage},
	{"key_vault", Security},
	{"security", Security},
	{"identity", Security},
	{"role_", Security},
	{"policy", Security},
	{"sentinel", Security},
	{"monitor", Monitoring},
	{"log_analytics", Monitoring},
	{"application_insights", Monitoring},
	{"alert", Monitoring},
	{"resource_group", Management},
	{"management", Management},
	{"automation", Management},
	{"subscription", Management},
	{"virtual_machine", Compute},
	{"vm_", Compute},
	{"availability_set", Compute},
	{"batch", Compute},
	{"virtual_network", Networking},
	{"subnet", Networking},
	{"network", Networking},
	{"firewall", Networking},
	{"dns", Networking},
	{"_ip", Networking},
	{"gateway", Networking},
	{"route", Networking},
	{"lb", Networking},
	{"load_balancer", Networking},
	{"frontdoor", Networking},
	{"front_door", Networking},
	{"cdn", Networking},
	{"traffic_manager", Networking},
	{"bastion", Networking},
	{"private_endpoint", Networking},
}

// iconOverrides maps resource types whose icon key differs from the bare
// type name.
var iconOverrides = map[string]string{
	"azurerm_linux_web_app":       "app_service",
	"azurerm_windows_web_app":     "app_service",
	"azurerm_linux_function_app":  "function_app",
	"azurerm_mssql_server":        "sql_server",
	"azurerm_mssql_database":      "sql_database",
	"azurerm_linux_virtual_machine":   "virtual_machine",
	"azurerm_windows_virtual_machine": "virtual_machine",
}

// providerPrefix is stripped from type names to derive default icon keys.
const providerPrefix = "azurerm_"

// Classify returns the category and icon key for a resource type.
// Unknown types classify as General with a generic icon.
func Classify(resourceType string) Info {
	return Info{
		Category: categoryOf(resourceType),
		Icon:     iconOf(resourceType),
	}
}

func categoryOf(resourceType string) Category {
	for _, kw := range categoryKeywords {
		if strings.Contains(resourceType, kw.keyword) {
			return kw.category
		}
	}
	return General
}

func iconOf(resourceType string) string {
	if icon, ok := iconOverrides[resourceType]; ok {
		return icon
	}
	if name := strings.TrimPrefix(resourceType, providerPrefix); name != "" {
		return name
	}
	return "resource"
}

// categoryColors maps categories to their display color.
var categoryColors = map[Category]string{
	Networking:  "#0ea5e9",
	Compute:     "#f97316",
	Containers:  "#22c55e",
	Web:         "#14b8a6",
	Databases:   "#6366f1",
	Storage:     "#8b5cf6",
	Security:    "#ef4444",
	Monitoring:  "#eab308",
	Management:  "#a78bfa",
	Integration: "#ec4899",
}

// DefaultColor is the fallback for categories without a configured color.
const DefaultColor = "#9ca3af"

// Color returns the display color for a category, falling back to DefaultColor.
func Color(c Category) string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return DefaultColor
}
