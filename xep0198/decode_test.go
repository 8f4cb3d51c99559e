/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0198

import (
	"strings"
	"testing"

	"github.com/ortuman/canary/xmpp"
	"github.com/stretchr/testify/require"
)

func cursorAtStartTag(t *testing.T, docSrc string) *xmpp.Cursor {
	t.Helper()
	c := xmpp.NewCursor(strings.NewReader(docSrc))
	require.Nil(t, c.Next())
	require.Equal(t, xmpp.StartElementEvent, c.Kind())
	return c
}

func TestDecodeEnabled(t *testing.T) {
	c := cursorAtStartTag(t, `<enabled xmlns="urn:xmpp:sm:3" id="some-long-sm-id" resume="true" location="[2001:41D0:1:A49b::1]:9222" max="300"/>`)
	enabled, err := DecodeEnabled(c)
	require.Nil(t, err)
	require.Equal(t, "some-long-sm-id", enabled.ID())
	require.True(t, enabled.Resume())
	require.Equal(t, "[2001:41D0:1:A49b::1]:9222", enabled.Location())
	require.Equal(t, 300, enabled.Max())
}

func TestDecodeEnabled_Defaults(t *testing.T) {
	c := cursorAtStartTag(t, `<enabled xmlns="urn:xmpp:sm:3"/>`)
	enabled, err := DecodeEnabled(c)
	require.Nil(t, err)
	require.Equal(t, "", enabled.ID())
	require.False(t, enabled.Resume())
	require.Equal(t, "", enabled.Location())
	require.Equal(t, UnspecifiedMax, enabled.Max())
}

func TestDecodeEnabled_MalformedOptionalAttributes(t *testing.T) {
	c := cursorAtStartTag(t, `<enabled xmlns="urn:xmpp:sm:3" resume="yes" max="forever"/>`)
	enabled, err := DecodeEnabled(c)
	require.Nil(t, err)
	require.False(t, enabled.Resume())
	require.Equal(t, UnspecifiedMax, enabled.Max())
}

func TestDecodeEnabled_UnexpectedChildren(t *testing.T) {
	c := cursorAtStartTag(t, `<enabled xmlns="urn:xmpp:sm:3"><sneaky/></enabled>`)
	_, err := DecodeEnabled(c)
	require.NotNil(t, err)
	require.IsType(t, &StructuralError{}, err)
}

func TestDecode_BadCursorPosition(t *testing.T) {
	c := xmpp.NewCursor(strings.NewReader(`<enabled xmlns="urn:xmpp:sm:3"/>`))

	// cursor was never advanced to the start tag
	_, err := DecodeEnabled(c)
	require.IsType(t, &StructuralError{}, err)
	_, err = DecodeFailed(c)
	require.IsType(t, &StructuralError{}, err)
	_, err = DecodeResumed(c)
	require.IsType(t, &StructuralError{}, err)
	_, err = DecodeAckAnswer(c)
	require.IsType(t, &StructuralError{}, err)
}

func TestDecodeFailed(t *testing.T) {
	c := cursorAtStartTag(t, `<failed xmlns="urn:xmpp:sm:3"><item-not-found xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></failed>`)
	failed, err := DecodeFailed(c)
	require.Nil(t, err)
	require.Equal(t, "item-not-found", failed.Condition().Name)
	require.Equal(t, ErrorNamespace, failed.Condition().Namespace)
}

func TestDecodeFailed_LastConditionWins(t *testing.T) {
	c := cursorAtStartTag(t, `<failed xmlns="urn:xmpp:sm:3">`+
		`<item-not-found xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/>`+
		`<unexpected-request xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/>`+
		`</failed>`)
	failed, err := DecodeFailed(c)
	require.Nil(t, err)
	require.Equal(t, "unexpected-request", failed.Condition().Name)
}

func TestDecodeFailed_NoCondition(t *testing.T) {
	c := cursorAtStartTag(t, `<failed xmlns="urn:xmpp:sm:3"/>`)
	failed, err := DecodeFailed(c)
	require.Nil(t, err)
	require.Equal(t, UnknownCondition, failed.Condition().Name)
}

func TestDecodeFailed_ForeignChildrenIgnored(t *testing.T) {
	c := cursorAtStartTag(t, `<failed xmlns="urn:xmpp:sm:3">`+
		`<text xmlns="urn:some:other:ns">busted</text>`+
		`<resource-constraint xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/>`+
		`</failed>`)
	failed, err := DecodeFailed(c)
	require.Nil(t, err)
	require.Equal(t, "resource-constraint", failed.Condition().Name)
}

func TestDecodeFailed_CursorErrorPropagates(t *testing.T) {
	c := cursorAtStartTag(t, `<failed xmlns="urn:xmpp:sm:3"><item-not-found`)
	_, err := DecodeFailed(c)
	require.NotNil(t, err)

	_, ok := err.(*StructuralError)
	require.False(t, ok)
	_, ok = err.(*AttributeError)
	require.False(t, ok)
}

func TestDecodeResumed(t *testing.T) {
	c := cursorAtStartTag(t, `<resumed xmlns="urn:xmpp:sm:3" h="287" previd="some-long-sm-id"/>`)
	resumed, err := DecodeResumed(c)
	require.Nil(t, err)
	require.Equal(t, uint64(287), resumed.H())
	require.Equal(t, "some-long-sm-id", resumed.PrevID())

	// cursor stays at the start tag
	require.Equal(t, xmpp.StartElementEvent, c.Kind())
	require.Equal(t, "resumed", c.Name())
}

func TestDecodeResumed_MissingH(t *testing.T) {
	c := cursorAtStartTag(t, `<resumed xmlns="urn:xmpp:sm:3" previd="some-long-sm-id"/>`)
	_, err := DecodeResumed(c)
	require.NotNil(t, err)
	require.IsType(t, &AttributeError{}, err)
}

func TestDecodeResumed_OverflowH(t *testing.T) {
	c := cursorAtStartTag(t, `<resumed xmlns="urn:xmpp:sm:3" h="18446744073709551616"/>`)
	_, err := DecodeResumed(c)
	require.NotNil(t, err)
	require.IsType(t, &AttributeError{}, err)
}

func TestDecodeAckAnswer(t *testing.T) {
	c := cursorAtStartTag(t, `<a xmlns="urn:xmpp:sm:3" h="12"/>`)
	a, err := DecodeAckAnswer(c)
	require.Nil(t, err)
	require.Equal(t, uint64(12), a.H())
}

func TestDecodeAckAnswer_MalformedH(t *testing.T) {
	c := cursorAtStartTag(t, `<a xmlns="urn:xmpp:sm:3" h="twelve"/>`)
	_, err := DecodeAckAnswer(c)
	require.NotNil(t, err)
	require.IsType(t, &AttributeError{}, err)

	c = cursorAtStartTag(t, `<a xmlns="urn:xmpp:sm:3"/>`)
	_, err = DecodeAckAnswer(c)
	require.NotNil(t, err)
	require.IsType(t, &AttributeError{}, err)
}
