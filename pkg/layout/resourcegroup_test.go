package layout

import (
	"testing"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

func recInGroup(rtype, name, group string) resource.Record {
	return resource.Record{
		Type:       rtype,
		Name:       name,
		Attributes: map[string]any{"resource_group_name": group},
	}
}

func TestBuildResourceGroups(t *testing.T) {
	resources := []resource.Record{
		rec("azurerm_resource_group", "main"),
		recInGroup("azurerm_virtual_network", "vnet", "${azurerm_resource_group.main}"),
		recInGroup("azurerm_subnet", "snet", "${azurerm_resource_group.main}"),
	}

	opts := testOptions()
	opts.GroupBy = diagram.GroupByResourceGroup
	nodes := Build(resources, nil, opts)

	containers := containersOf(nodes)
	if len(containers) != 1 {
		t.Fatalf("want one group container, got %d", len(containers))
	}

	// The defining resource-group record becomes the container itself.
	c := containers[0]
	if c.ID != "azurerm_resource_group_main" {
		t.Errorf("container id = %q, want the resource group's own id", c.ID)
	}
	if c.Type != "azurerm_resource_group" || c.Name != "main" {
		t.Errorf("container should carry the defining record's identity, got %s/%s", c.Type, c.Name)
	}
	if len(c.Children) != 2 {
		t.Errorf("container holds %d children, want 2", len(c.Children))
	}

	leaves := leavesOf(nodes)
	if len(leaves) != 2 {
		t.Fatalf("want 2 leaves, got %d", len(leaves))
	}
	for _, n := range leaves {
		if n.ParentGroup != c.ID {
			t.Errorf("leaf %s parent = %q, want %q", n.ID, n.ParentGroup, c.ID)
		}
	}

	d := diagram.Diagram{Width: opts.Width, Height: opts.Height, Nodes: nodes}
	if err := d.Validate(); err != nil {
		t.Errorf("resource-group output should satisfy containment invariants: %v", err)
	}
}

func TestBuildResourceGroupsOrdering(t *testing.T) {
	resources := []resource.Record{
		recInGroup("azurerm_storage_account", "st", "zulu"),
		recInGroup("azurerm_app_service", "web", "alpha"),
		rec("azurerm_subnet", "loose"), // no group attribute
	}

	opts := testOptions()
	opts.GroupBy = diagram.GroupByResourceGroup
	nodes := Build(resources, nil, opts)

	containers := containersOf(nodes)
	if len(containers) != 3 {
		t.Fatalf("want 3 group containers, got %d", len(containers))
	}
	// Alphabetical buckets with ungrouped last, stacked top to bottom.
	if !(containers[0].ID == "group_alpha" &&
		containers[1].ID == "group_zulu" &&
		containers[2].ID == "group_ungrouped") {
		t.Errorf("bucket order = %s, %s, %s", containers[0].ID, containers[1].ID, containers[2].ID)
	}
	if !(containers[0].Y < containers[1].Y && containers[1].Y < containers[2].Y) {
		t.Errorf("buckets should stack vertically: %.0f, %.0f, %.0f",
			containers[0].Y, containers[1].Y, containers[2].Y)
	}
	if containers[2].Label != "Ungrouped" {
		t.Errorf("sentinel bucket label = %q, want Ungrouped", containers[2].Label)
	}
}

func TestGroupNameOf(t *testing.T) {
	tests := []struct {
		name string
		attr any
		want string
	}{
		{"literal", "prod-rg", "prod-rg"},
		{"resource ref", "${azurerm_resource_group.main}", "main"},
		{"bare resource ref", "azurerm_resource_group.core.name", "core"},
		{"var ref", "${var.rg_name}", "rg_name"},
		{"local ref", "${local.group}", "group"},
		{"unresolvable", "${module.net.rg}", ungroupedBucket},
		{"empty", "", ungroupedBucket},
		{"non-string", 42, ungroupedBucket},
	}
	for _, tt := range tests {
		r := resource.Record{
			Type:       "azurerm_subnet",
			Name:       "snet",
			Attributes: map[string]any{"resource_group_name": tt.attr},
		}
		if got := groupNameOf(r); got != tt.want {
			t.Errorf("%s: groupNameOf = %q, want %q", tt.name, got, tt.want)
		}
	}

	if got := groupNameOf(rec("azurerm_subnet", "snet")); got != ungroupedBucket {
		t.Errorf("missing attribute: groupNameOf = %q, want %q", got, ungroupedBucket)
	}
}

func TestTypePriority(t *testing.T) {
	tests := []struct {
		resourceType string
		want         int
	}{
		{"azurerm_virtual_network", 0},
		{"azurerm_virtual_machine", 1},
		{"azurerm_storage_account", 2},
		{"azurerm_key_vault", 3},
		{"azurerm_log_analytics_workspace", 4},
	}
	for _, tt := range tests {
		if got := typePriority(tt.resourceType); got != tt.want {
			t.Errorf("typePriority(%q) = %d, want %d", tt.resourceType, got, tt.want)
		}
	}
}
