// Package resource defines the input contract consumed from the resource
// extractor: typed infrastructure resource records with attribute bags,
// tags and declared references.
//
// The layout engine treats records as read-only input. Record identity is
// the "type_name" pair, which must be unique across an input list.
package resource

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Record is one declared infrastructure resource.
type Record struct {
	Type string `json:"type"`
	Name string `json:"name"`

	// Attributes is an arbitrary nested bag of primitives, lists and maps
	// as produced by the extractor.
	Attributes map[string]any `json:"attributes,omitempty"`

	// Tags carries the resource's tag map, used for environment filtering.
	Tags map[string]string `json:"tags,omitempty"`

	// References lists explicitly declared references, either resolved ids
	// ("type_name") or symbolic names ("type.name").
	References []string `json:"references,omitempty"`

	// SecurityRules is optional network-security metadata.
	SecurityRules []SecurityRule `json:"security_rules,omitempty"`

	// Network is an optional bag of network-related metadata.
	Network map[string]any `json:"network,omitempty"`
}

// SecurityRule is one entry of a resource's security-rule list.
type SecurityRule struct {
	Name      string `json:"name"`
	Direction string `json:"direction,omitempty"`
	Access    string `json:"access,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
	Priority  int    `json:"priority,omitempty"`
}

// ID returns the unique resource identifier, "type_name".
func (r Record) ID() string { return r.Type + "_" + r.Name }

// environmentTagKeys are checked in order when resolving a resource's
// environment for cross-environment edge filtering.
var environmentTagKeys = []string{"environment", "env", "Environment", "Env"}

// Environment returns the resource's environment tag value, or "" when no
// environment tag is present.
func (r Record) Environment() string {
	for _, key := range environmentTagKeys {
		if v, ok := r.Tags[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Index builds an id → record lookup preserving nothing but membership and
// the record values. Later duplicates are ignored so the first declaration
// of an id wins.
func Index(records []Record) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, r := range records {
		if _, exists := index[r.ID()]; !exists {
			index[r.ID()] = r
		}
	}
	return index
}

// Input is the file format consumed by the CLI and the HTTP API: the
// extractor's resource list plus an optional pre-computed dependency
// mapping. When Dependencies is non-nil the pipeline uses it verbatim
// instead of running extraction.
type Input struct {
	Resources    []Record            `json:"resources"`
	Dependencies map[string][]string `json:"dependencies,omitempty"`
}

// Read decodes an Input from r.
func Read(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("decode resources: %w", err)
	}
	return in, nil
}

// ReadFile reads an Input from a JSON file.
func ReadFile(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Marshal serializes an Input to pretty-printed JSON bytes.
func Marshal(in Input) ([]byte, error) {
	return json.MarshalIndent(in, "", "  ")
}
