/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0198

import (
	"math"
	"strings"
	"testing"

	"github.com/ortuman/canary/xmpp"
	"github.com/stretchr/testify/require"
)

func TestEnable_Element(t *testing.T) {
	require.Equal(t, `<enable xmlns="urn:xmpp:sm:3"/>`, NewEnable(false, UnspecifiedMax).Element().String())
	require.Equal(t, `<enable xmlns="urn:xmpp:sm:3" resume="true" max="60"/>`, NewEnable(true, 60).Element().String())
}

func TestEnabled_RoundTrip(t *testing.T) {
	enabled := NewEnabled("abc", true, "", 300)

	c := xmpp.NewCursor(strings.NewReader(enabled.Element().String()))
	require.Nil(t, c.Next())

	decoded, err := DecodeEnabled(c)
	require.Nil(t, err)
	require.Equal(t, enabled, decoded)
}

func TestResumeRequest_Element(t *testing.T) {
	r := NewResumeRequest(42, "some-long-sm-id")
	require.Equal(t, `<resume xmlns="urn:xmpp:sm:3" h="42" previd="some-long-sm-id"/>`, r.Element().String())
}

func TestResumed_RoundTrip(t *testing.T) {
	resumed := NewResumed(287, "some-long-sm-id")

	c := xmpp.NewCursor(strings.NewReader(resumed.Element().String()))
	require.Nil(t, c.Next())

	decoded, err := DecodeResumed(c)
	require.Nil(t, err)
	require.Equal(t, resumed, decoded)
}

func TestFailed_RoundTrip(t *testing.T) {
	failed := NewFailed("item-not-found")
	require.Equal(t, `<failed xmlns="urn:xmpp:sm:3"><item-not-found xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></failed>`, failed.Element().String())

	c := xmpp.NewCursor(strings.NewReader(failed.Element().String()))
	require.Nil(t, c.Next())

	decoded, err := DecodeFailed(c)
	require.Nil(t, err)
	require.Equal(t, failed, decoded)
}

func TestAckStanzas_Element(t *testing.T) {
	require.Equal(t, `<r xmlns="urn:xmpp:sm:3"/>`, NewAckRequest().Element().String())
	require.Equal(t, `<a xmlns="urn:xmpp:sm:3" h="12"/>`, NewAckAnswer(12).Element().String())
}

func TestAckAnswer_RoundTrip(t *testing.T) {
	a := NewAckAnswer(uint64(math.MaxUint32) + 7)

	c := xmpp.NewCursor(strings.NewReader(a.Element().String()))
	require.Nil(t, c.Next())

	decoded, err := DecodeAckAnswer(c)
	require.Nil(t, err)
	require.Equal(t, a, decoded)
}

func TestIncH(t *testing.T) {
	require.Equal(t, uint32(6), IncH(5))
	require.Equal(t, uint32(0), IncH(math.MaxUint32-1))
}

func TestErrorMessages(t *testing.T) {
	serr := &StructuralError{Reason: "cursor is not positioned at a start tag"}
	require.Contains(t, serr.Error(), "start tag")

	aerr := &AttributeError{Label: "h"}
	require.Contains(t, aerr.Error(), "missing")
	aerr = &AttributeError{Label: "h", Value: "twelve"}
	require.Contains(t, aerr.Error(), "malformed")
}
