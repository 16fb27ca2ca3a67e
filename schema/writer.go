// schema/writer.go

package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// toWire converts a node back to its document shape. Derived ids are not
// written; decoding re-derives them from the same positions.
func toWire(n *Node) wireNode {
	tag := n.Tag()
	w := wireNode{Type: &tag}
	if n.ID != "" && !IsDerivedID(n.ID) {
		w.ID = n.ID
	}
	if n.Content != (Content{}) {
		c := n.Content
		w.Content = &c
	}
	if len(n.Children) > 0 {
		w.Subviews = make([]wireNode, len(n.Children))
		for i := range n.Children {
			w.Subviews[i] = toWire(&n.Children[i])
		}
	}
	return w
}

// MarshalJSON writes the node in wire form, omitting absent fields.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(&n))
}

// MarshalYAML writes the node in wire form.
func (n Node) MarshalYAML() (interface{}, error) {
	return toWire(&n), nil
}

// Encode writes n as indented JSON.
func Encode(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(n)); err != nil {
		return fmt.Errorf("schema encode: %w", err)
	}
	return nil
}

// EncodeYAML writes n as YAML.
func EncodeYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toWire(n)); err != nil {
		return fmt.Errorf("schema encode: %w", err)
	}
	return enc.Close()
}
