/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser_ParseElement(t *testing.T) {
	docSrc := `<message from="alice@jabber.org/phone" to="bob@jabber.org"><body>ping</body></message>`
	p := NewParser(strings.NewReader(docSrc))

	elem, err := p.ParseElement()
	require.Nil(t, err)
	require.NotNil(t, elem)
	require.Equal(t, "message", elem.Name())
	require.Equal(t, "alice@jabber.org/phone", elem.From())
	require.Equal(t, "bob@jabber.org", elem.To())

	body := elem.Elements().Child("body")
	require.NotNil(t, body)
	require.Equal(t, "ping", body.Text())

	_, err = p.ParseElement()
	require.Equal(t, io.EOF, err)
}

func TestParser_ParseSeveralElements(t *testing.T) {
	docSrc := `<a xmlns="urn:xmpp:sm:3" h="12"/><r xmlns="urn:xmpp:sm:3"/>`
	p := NewParser(strings.NewReader(docSrc))

	a, err := p.ParseElement()
	require.Nil(t, err)
	require.Equal(t, "a", a.Name())
	require.Equal(t, "urn:xmpp:sm:3", a.Namespace())
	require.Equal(t, "12", a.Attributes().Get("h"))

	r, err := p.ParseElement()
	require.Nil(t, err)
	require.Equal(t, "r", r.Name())
}

func TestParser_ParseError(t *testing.T) {
	p := NewParser(strings.NewReader(`<open_tag`))
	_, err := p.ParseElement()
	require.NotNil(t, err)

	p = NewParser(strings.NewReader(`<a></b>`))
	_, err = p.ParseElement()
	require.NotNil(t, err)
}
