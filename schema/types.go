// schema/types.go

package schema

import (
	"strconv"
	"strings"
)

// Kind is the closed set of node kinds the renderer knows how to build.
// Anything else decodes as KindUnknown and keeps its raw tag in Node.Type.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindContent
	KindStack
	KindLabel
	KindButton
	KindTextInput
	KindCard
	KindImage
)

var kindTags = [...]string{
	KindUnknown:   "unknown",
	KindContent:   "contentView",
	KindStack:     "stackView",
	KindLabel:     "label",
	KindButton:    "button",
	KindTextInput: "textInput",
	KindCard:      "cardView",
	KindImage:     "imageView",
}

func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a wire tag to a Kind. Unrecognized tags map to KindUnknown.
func ParseKind(tag string) Kind {
	for k, name := range kindTags {
		if Kind(k) != KindUnknown && name == tag {
			return Kind(k)
		}
	}
	return KindUnknown
}

// Kinds returns every known kind, in declaration order.
func Kinds() []Kind {
	return []Kind{KindContent, KindStack, KindLabel, KindButton, KindTextInput, KindCard, KindImage}
}

// IsContainer reports whether the kind lays out its own children.
// Other kinds get an implicit stack when they declare children.
func (k Kind) IsContainer() bool {
	return k == KindContent || k == KindStack
}

// IsInteractive reports whether elements of this kind take input.
func (k Kind) IsInteractive() bool {
	return k == KindButton || k == KindTextInput
}

// Action types the renderer acts upon. ActionPrint is the older name found
// in existing documents; both behave the same.
const (
	ActionPerform = "perform"
	ActionPrint   = "print"
)

// Action describes a side effect triggered by an interactive node.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Context string `json:"context" yaml:"context"`
}

// Content is the open-ended payload of a node. Every field is optional.
type Content struct {
	Style           string  `json:"style,omitempty" yaml:"style,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Spacing         string  `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Text            string  `json:"text,omitempty" yaml:"text,omitempty"`
	Placeholder     string  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	IsHidden        bool    `json:"isHidden,omitempty" yaml:"isHidden,omitempty"`
	Action          *Action `json:"action,omitempty" yaml:"action,omitempty"`
	Axis            string  `json:"axis,omitempty" yaml:"axis,omitempty"`
	Image           string  `json:"image,omitempty" yaml:"image,omitempty"`
}

// Node describes one UI element and its children. Nodes are plain values;
// nothing in this module mutates a decoded tree.
type Node struct {
	// ID is the node identity used as its action binding key. Decoding fills
	// it from the wire "id" or derives it from the node's position.
	ID string
	// Kind is the parsed node kind; Type is the tag as it appeared on the wire.
	Kind     Kind
	Type     string
	Content  Content
	Children []Node
}

// New builds a node of a known kind. The ID is left empty; the mapper derives
// one from the node's position when rendering.
func New(kind Kind, content Content, children ...Node) Node {
	return Node{Kind: kind, Type: kind.String(), Content: content, Children: children}
}

// Tag returns the wire tag of the node.
func (n *Node) Tag() string {
	if n.Type != "" {
		return n.Type
	}
	return n.Kind.String()
}

// RootID is the path-derived identity of a document root.
const RootID = "$"

// ChildID derives the identity of the i-th child of the node at parentPath.
func ChildID(parentPath string, i int) string {
	return parentPath + "." + strconv.Itoa(i)
}

// IsDerivedID reports whether id was derived from a tree position rather than
// supplied by the document.
func IsDerivedID(id string) bool {
	return strings.HasPrefix(id, RootID)
}

// LegacyKey is the (type, placeholder) binding key older payloads rely on.
// Two text inputs with the same placeholder collide; prefer Node.ID.
func LegacyKey(kind Kind, placeholder string) string {
	return kind.String() + "_" + placeholder
}
