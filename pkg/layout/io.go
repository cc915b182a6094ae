package layout

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/pathgraph/pkg/errors"
)

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
// It checks that every edge references existing nodes.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks that node ids are unique, positions are finite, and edges
// reference existing nodes.
func (l Layout) Validate() error {
	ids := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidLayout, "node without id")
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate node %q", n.ID)
		}
		if !n.Position.Finite() {
			return errors.New(errors.ErrCodeInvalidLayout, "node %q has non-finite position", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range l.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return errors.New(errors.ErrCodeInvalidLayout, "edge %q references unknown node", e.ID)
		}
	}
	return nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Unmarshal(data)
}
