// Package xmltree provides a minimal ordered-attribute element tree and its
// indented XML serialization. Writers build a complete document bottom-up
// through this package and emit it in one shot; there is no streaming mode.
//
// Attribute and child order is insertion order. Element names are emitted
// verbatim, so namespace-prefixed names like "gml:Point" work as long as the
// prefix is declared on an ancestor via SetAttr("xmlns:gml", ...).
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the document tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// New creates a detached element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// SetAttr sets an attribute, replacing an existing attribute with the same
// name in place or appending a new one.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Child appends a new child element with the given tag and returns it.
func (e *Element) Child(tag string) *Element {
	c := New(tag)
	e.Children = append(e.Children, c)
	return c
}

// WriteTo serializes the tree rooted at e to w: XML declaration, UTF-8,
// two-space indentation, trailing newline.
func (e *Element) WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml declaration: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := e.encode(enc); err != nil {
		return fmt.Errorf("encode xml tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush xml encoder: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// String renders the whole document, for tests and debugging.
func (e *Element) String() string {
	var buf bytes.Buffer
	if err := e.WriteTo(&buf); err != nil {
		return fmt.Sprintf("<!-- xmltree: %v -->", err)
	}
	return buf.String()
}

func (e *Element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: a.Name},
			Value: a.Value,
		})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
