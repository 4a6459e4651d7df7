package diagram

import (
	"encoding/json"
	"os"

	"github.com/sergeyitaly/tfdiagram/pkg/errors"
)

// Diagram is the complete output contract handed to renderers: positioned
// nodes, derived connections and the canvas they were normalized into.
type Diagram struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Marshal serializes a Diagram to pretty-printed JSON bytes.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Diagram.
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal diagram")
	}
	return d, nil
}

// WriteFile writes a Diagram to a JSON file.
func WriteFile(d Diagram, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Diagram from a JSON file.
func ReadFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Unmarshal(data)
}

// Validate checks the structural invariants of the diagram:
//
//   - every ParentGroup reference names an existing container node whose
//     Children list includes the referencing node, and vice versa
//   - every connection endpoint names an existing node
//
// Returns nil when the diagram is structurally sound.
func (d Diagram) Validate() error {
	byID := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		byID[n.ID] = i
	}

	for _, n := range d.Nodes {
		if n.ParentGroup != "" {
			pi, ok := byID[n.ParentGroup]
			if !ok {
				return errors.New(errors.ErrCodeInvalidDiagram, "node %s references missing group %s", n.ID, n.ParentGroup)
			}
			parent := d.Nodes[pi]
			if !parent.IsGroupContainer {
				return errors.New(errors.ErrCodeInvalidDiagram, "node %s nested in non-container %s", n.ID, n.ParentGroup)
			}
			if !contains(parent.Children, n.ID) {
				return errors.New(errors.ErrCodeInvalidDiagram, "group %s does not list member %s", parent.ID, n.ID)
			}
		}
		for _, child := range n.Children {
			ci, ok := byID[child]
			if !ok {
				return errors.New(errors.ErrCodeInvalidDiagram, "group %s lists missing member %s", n.ID, child)
			}
			if d.Nodes[ci].ParentGroup != n.ID {
				return errors.New(errors.ErrCodeInvalidDiagram, "member %s does not reference group %s", child, n.ID)
			}
		}
	}

	for _, c := range d.Connections {
		if _, ok := byID[c.Source]; !ok {
			return errors.New(errors.ErrCodeInvalidDiagram, "connection source %s not in node list", c.Source)
		}
		if _, ok := byID[c.Target]; !ok {
			return errors.New(errors.ErrCodeInvalidDiagram, "connection target %s not in node list", c.Target)
		}
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
