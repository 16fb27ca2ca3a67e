// schema/reader.go

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is wrapped by every decode failure.
var ErrMalformed = errors.New("malformed document")

// DecodeError reports a structural problem at a node path.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "schema decode: " + e.Err.Error()
	}
	return fmt.Sprintf("schema decode: node %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// Format selects the document encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ParseFormat parses "json" or "yaml"; anything else is JSON.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML
	}
	return FormatJSON
}

// wireNode is the document shape of a node as written.
type wireNode struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type     *string    `json:"type" yaml:"type"`
	Content  *Content   `json:"content,omitempty" yaml:"content,omitempty"`
	Subviews []wireNode `json:"subviews,omitempty" yaml:"subviews,omitempty"`
}

// readNode is the document shape of a node as read. Content is kept raw until
// the node's path is known so its errors can name it.
type readNode struct {
	ID       string      `json:"id" yaml:"id"`
	Type     *string     `json:"type" yaml:"type"`
	Content  *rawContent `json:"content" yaml:"content"`
	Subviews []readNode  `json:"subviews" yaml:"subviews"`
}

type rawContent struct {
	json json.RawMessage
	yaml *yaml.Node
}

func (r *rawContent) UnmarshalJSON(data []byte) error {
	r.json = append(json.RawMessage(nil), data...)
	return nil
}

func (r *rawContent) UnmarshalYAML(value *yaml.Node) error {
	r.yaml = value
	return nil
}

func (r *rawContent) decode() (Content, error) {
	var c Content
	switch {
	case r.json != nil:
		return c, json.Unmarshal(r.json, &c)
	case r.yaml != nil:
		return c, r.yaml.Decode(&c)
	}
	return c, nil
}

// errTrailing reports data after the document.
var errTrailing = errors.New("unexpected data after the document")

// Decode reads a JSON document. Anything but whitespace after it is an error.
func Decode(r io.Reader) (*Node, error) {
	var w readNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Err: errTrailing}
	}
	return fromWire(&w)
}

// DecodeYAML reads a single YAML document with the same field names as JSON.
func DecodeYAML(r io.Reader) (*Node, error) {
	var w readNode
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, &DecodeError{Err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &DecodeError{Err: errTrailing}
	}
	return fromWire(&w)
}

// DecodeBytes decodes data in the given format.
func DecodeBytes(data []byte, f Format) (*Node, error) {
	if f == FormatYAML {
		return DecodeYAML(bytes.NewReader(data))
	}
	return Decode(bytes.NewReader(data))
}

func fromWire(w *readNode) (*Node, error) {
	seen := make(map[string]string)
	n, err := buildNode(w, RootID, seen)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func buildNode(w *readNode, path string, seen map[string]string) (Node, error) {
	if w.Type == nil {
		return Node{}, &DecodeError{Path: path, Err: errors.New("missing type")}
	}
	tag := strings.TrimSpace(*w.Type)
	if tag == "" {
		return Node{}, &DecodeError{Path: path, Err: errors.New("empty type")}
	}

	id := path
	if w.ID != "" {
		if IsDerivedID(w.ID) {
			return Node{}, &DecodeError{Path: path, Err: fmt.Errorf("id %q uses the reserved %q prefix", w.ID, RootID)}
		}
		if other, dup := seen[w.ID]; dup {
			return Node{}, &DecodeError{Path: path, Err: fmt.Errorf("duplicate id %q (first used at %s)", w.ID, other)}
		}
		seen[w.ID] = path
		id = w.ID
	}

	n := Node{ID: id, Kind: ParseKind(tag), Type: tag}
	if w.Content != nil {
		c, err := w.Content.decode()
		if err != nil {
			return Node{}, &DecodeError{Path: path, Err: err}
		}
		n.Content = c
	}
	if len(w.Subviews) > 0 {
		n.Children = make([]Node, len(w.Subviews))
		for i := range w.Subviews {
			child, err := buildNode(&w.Subviews[i], ChildID(path, i), seen)
			if err != nil {
				return Node{}, err
			}
			n.Children[i] = child
		}
	}
	return n, nil
}

// UnmarshalJSON decodes a node document rooted at this node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w readNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := fromWire(&w)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// UnmarshalYAML decodes a node document rooted at this node.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w readNode
	if err := value.Decode(&w); err != nil {
		return err
	}
	decoded, err := fromWire(&w)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// UnmarshalJSON decodes content leniently: the payload must be an object, but
// fields of the wrong type are dropped so the node still renders with defaults.
func (c *Content) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.New("content must be an object")
	}
	*c = Content{}
	for key, raw := range fields {
		switch key {
		case "style":
			c.Style = jsonString(raw)
		case "backgroundColor":
			c.BackgroundColor = jsonString(raw)
		case "spacing":
			c.Spacing = jsonString(raw)
		case "text":
			c.Text = jsonString(raw)
		case "placeholder":
			c.Placeholder = jsonString(raw)
		case "axis":
			c.Axis = jsonString(raw)
		case "image":
			c.Image = jsonString(raw)
		case "isHidden":
			var b bool
			if json.Unmarshal(raw, &b) == nil {
				c.IsHidden = b
			}
		case "action":
			var a Action
			if json.Unmarshal(raw, &a) == nil && a.Type != "" {
				c.Action = &a
			}
		}
	}
	return nil
}

func jsonString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// UnmarshalYAML mirrors the lenient JSON content decoding.
func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*c = Content{}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("content must be a mapping (line %d)", value.Line)
	}
	*c = Content{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		switch key {
		case "style":
			c.Style = yamlString(val)
		case "backgroundColor":
			c.BackgroundColor = yamlString(val)
		case "spacing":
			c.Spacing = yamlString(val)
		case "text":
			c.Text = yamlString(val)
		case "placeholder":
			c.Placeholder = yamlString(val)
		case "axis":
			c.Axis = yamlString(val)
		case "image":
			c.Image = yamlString(val)
		case "isHidden":
			var b bool
			if val.Decode(&b) == nil {
				c.IsHidden = b
			}
		case "action":
			var a Action
			if val.Kind == yaml.MappingNode && val.Decode(&a) == nil && a.Type != "" {
				c.Action = &a
			}
		}
	}
	return nil
}

func yamlString(v *yaml.Node) string {
	if v.Kind != yaml.ScalarNode || v.Tag != "!!str" {
		return ""
	}
	return v.Value
}
