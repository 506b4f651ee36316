package tree

import (
	"encoding/json"
	"sort"
)

// VariableMap holds the variables passed to an included page.
type VariableMap map[string]string

// AttributeMap holds the attributes of a container.
type AttributeMap map[string]string

// ContainerType represents the kind of inline construct a container holds
type ContainerType int

const (
	ContainerBold ContainerType = iota
	ContainerItalics
	ContainerUnderline
	ContainerSuperscript
	ContainerSubscript
	ContainerStrikethrough
	ContainerMonospace
)

func (c ContainerType) String() string {
	switch c {
	case ContainerBold:
		return "bold"
	case ContainerItalics:
		return "italics"
	case ContainerUnderline:
		return "underline"
	case ContainerSuperscript:
		return "superscript"
	case ContainerSubscript:
		return "subscript"
	case ContainerStrikethrough:
		return "strikethrough"
	case ContainerMonospace:
		return "monospace"
	default:
		return "unknown"
	}
}

// Element is a single node in the syntax tree.
type Element interface {
	element()
}

type Text string

type LineBreak struct{}

type ParagraphBreak struct{}

type HorizontalRule struct{}

// Container is an inline construct wrapping other elements.
type Container struct {
	Type       ContainerType
	Attributes AttributeMap
	Elements   []Element
}

func NewContainer(ctype ContainerType, elements []Element, attributes AttributeMap) *Container {
	if attributes == nil {
		attributes = AttributeMap{}
	}
	return &Container{
		Type:       ctype,
		Attributes: attributes,
		Elements:   elements,
	}
}

func (Text) element()           {}
func (LineBreak) element()      {}
func (ParagraphBreak) element() {}
func (HorizontalRule) element() {}
func (*Container) element()     {}

// SyntaxTree is the result of parsing a document.
type SyntaxTree struct {
	Elements []Element
}

// MergeText joins adjacent text elements.
func MergeText(elements []Element) []Element {
	merged := make([]Element, 0, len(elements))
	for _, elem := range elements {
		if text, ok := elem.(Text); ok && len(merged) > 0 {
			if prev, ok := merged[len(merged)-1].(Text); ok {
				merged[len(merged)-1] = prev + text
				continue
			}
		}
		merged = append(merged, elem)
	}
	return merged
}

type jsonElement struct {
	Element    string        `json:"element"`
	Text       string        `json:"text,omitempty"`
	Type       string        `json:"type,omitempty"`
	Attributes [][2]string   `json:"attributes,omitempty"`
	Elements   []jsonElement `json:"elements,omitempty"`
}

func toJSON(elements []Element) []jsonElement {
	out := make([]jsonElement, 0, len(elements))
	for _, elem := range elements {
		switch e := elem.(type) {
		case Text:
			out = append(out, jsonElement{Element: "text", Text: string(e)})
		case LineBreak:
			out = append(out, jsonElement{Element: "line-break"})
		case ParagraphBreak:
			out = append(out, jsonElement{Element: "paragraph-break"})
		case HorizontalRule:
			out = append(out, jsonElement{Element: "horizontal-rule"})
		case *Container:
			out = append(out, jsonElement{
				Element:    "container",
				Type:       e.Type.String(),
				Attributes: sortedAttributes(e.Attributes),
				Elements:   toJSON(e.Elements),
			})
		}
	}
	return out
}

func sortedAttributes(attrs AttributeMap) [][2]string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, attrs[k]})
	}
	return pairs
}

// MarshalJSON writes the tree with a tagged representation of each element.
func (t *SyntaxTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Elements []jsonElement `json:"elements"`
	}{toJSON(t.Elements)})
}
