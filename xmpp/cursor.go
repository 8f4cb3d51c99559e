/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"encoding/xml"
	"io"
	"strconv"
)

// EventKind represents the kind of stream event a cursor is positioned at.
type EventKind int

const (
	// NoEvent is the cursor position previous to the first Next call.
	NoEvent EventKind = iota

	// StartElementEvent represents a start tag event.
	StartElementEvent

	// EndElementEvent represents an end tag event.
	EndElementEvent

	// TextEvent represents a character data event.
	TextEvent

	// OtherEvent represents any other event kind (processing instructions, comments, directives).
	OtherEvent
)

// Cursor is a forward-only reader over an XML event stream.
// At any position it exposes the current event kind along with the
// tag local name, resolved namespace and attributes when applicable.
type Cursor struct {
	dec       *xml.Decoder
	kind      EventKind
	name      string
	namespace string
	text      string
	attrs     attributeSet
}

// NewCursor returns a cursor reading from reader, positioned
// previous to the first event.
func NewCursor(reader io.Reader) *Cursor {
	return &Cursor{dec: xml.NewDecoder(reader)}
}

// Next advances the cursor one event forward.
// Decoder errors are handed to the caller untouched.
func (c *Cursor) Next() error {
	t, err := c.dec.Token()
	if err != nil {
		return err
	}
	c.name = ""
	c.namespace = ""
	c.text = ""
	c.attrs = nil

	switch t1 := t.(type) {
	case xml.StartElement:
		c.kind = StartElementEvent
		c.name = t1.Name.Local
		c.namespace = t1.Name.Space
		attrs := make([]Attribute, 0, len(t1.Attr))
		for _, a := range t1.Attr {
			attrs = append(attrs, Attribute{attributeLabel(a.Name), a.Value})
		}
		c.attrs = attrs

	case xml.EndElement:
		c.kind = EndElementEvent
		c.name = t1.Name.Local
		c.namespace = t1.Name.Space

	case xml.CharData:
		c.kind = TextEvent
		c.text = string(t1)

	default:
		c.kind = OtherEvent
	}
	return nil
}

// Kind returns current event kind.
func (c *Cursor) Kind() EventKind {
	return c.kind
}

// Name returns current tag local name.
// Returns an empty string when not positioned at a tag event.
func (c *Cursor) Name() string {
	return c.name
}

// Namespace returns current tag resolved namespace.
func (c *Cursor) Namespace() string {
	return c.namespace
}

// Text returns current event character data.
func (c *Cursor) Text() string {
	return c.text
}

// Attribute returns current start tag attribute value.
// Returns an empty string if no attribute is found.
func (c *Cursor) Attribute(label string) string {
	return c.attrs.Get(label)
}

// Attributes returns current start tag attributes.
func (c *Cursor) Attributes() AttributeSet {
	return c.attrs
}

// BoolAttribute returns current start tag attribute value read as a
// boolean, falling back to def when the attribute is absent or does
// not parse.
func (c *Cursor) BoolAttribute(label string, def bool) bool {
	v := c.attrs.Get(label)
	if len(v) == 0 {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// IntAttribute returns current start tag attribute value read as an
// integer, falling back to def when the attribute is absent or does
// not parse.
func (c *Cursor) IntAttribute(label string, def int) int {
	v := c.attrs.Get(label)
	if len(v) == 0 {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func attributeLabel(name xml.Name) string {
	if len(name.Space) > 0 {
		return name.Space + ":" + name.Local
	}
	return name.Local
}
