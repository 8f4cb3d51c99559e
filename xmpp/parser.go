/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"io"
)

// Parser parses arbitrary XML input and builds an array with the structure of all tag and data elements.
type Parser struct {
	cursor       *Cursor
	parsingStack []*Element
}

// NewParser creates an empty Parser instance reading from reader.
func NewParser(reader io.Reader) *Parser {
	return &Parser{cursor: NewCursor(reader)}
}

// Cursor returns the underlying stream cursor.
func (p *Parser) Cursor() *Cursor {
	return p.cursor
}

// ParseElement parses next available XML element from the stream.
func (p *Parser) ParseElement() (XElement, error) {
	for {
		if err := p.cursor.Next(); err != nil {
			return nil, err
		}
		switch p.cursor.Kind() {
		case StartElementEvent:
			p.startElement()

		case TextEvent:
			if len(p.parsingStack) == 0 {
				continue
			}
			p.parsingStack[len(p.parsingStack)-1].SetText(p.cursor.Text())

		case EndElementEvent:
			if elem := p.endElement(); elem != nil {
				return elem, nil
			}
		}
	}
}

func (p *Parser) startElement() {
	elem := NewElementName(p.cursor.Name())
	attrs := p.cursor.Attributes().(attributeSet)
	for _, attr := range attrs {
		elem.SetAttribute(attr.Label, attr.Value)
	}
	if len(elem.Namespace()) == 0 && len(p.cursor.Namespace()) > 0 {
		elem.SetNamespace(p.cursor.Namespace())
	}
	p.parsingStack = append(p.parsingStack, elem)
}

func (p *Parser) endElement() *Element {
	elem := p.parsingStack[len(p.parsingStack)-1]
	p.parsingStack = p.parsingStack[:len(p.parsingStack)-1]

	if len(p.parsingStack) == 0 {
		return elem
	}
	p.parsingStack[len(p.parsingStack)-1].AppendElement(elem)
	return nil
}
