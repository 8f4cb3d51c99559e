/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0198

import (
	"strconv"

	"github.com/ortuman/canary/xmpp"
)

// Decode functions turn cursor events into stanza values. The cursor
// must be positioned at the stanza start tag on entry; routing by tag
// name is the caller's job. Errors coming from the cursor itself are
// returned untouched.

// DecodeEnabled decodes an 'enabled' stanza.
// The stanza is defined to have no children, so the cursor is advanced
// exactly one event and must land on the closing tag.
func DecodeEnabled(c *xmpp.Cursor) (*Enabled, error) {
	if err := requireStartTag(c); err != nil {
		return nil, err
	}
	resume := c.BoolAttribute("resume", false)
	id := c.Attribute("id")
	location := c.Attribute("location")
	max := c.IntAttribute("max", UnspecifiedMax)

	if err := c.Next(); err != nil {
		return nil, err
	}
	if c.Kind() != xmpp.EndElementEvent {
		return nil, &StructuralError{Reason: "unexpected child content inside 'enabled'"}
	}
	return NewEnabled(id, resume, location, max), nil
}

// DecodeFailed decodes a 'failed' stanza.
// The scan records the last condition element found in the stanza
// error namespace and stops only when the closing 'failed' tag shows
// up; a stream that never closes the stanza is the caller's problem.
func DecodeFailed(c *xmpp.Cursor) (*Failed, error) {
	if err := requireStartTag(c); err != nil {
		return nil, err
	}
	condition := UnknownCondition
	for {
		if err := c.Next(); err != nil {
			return nil, err
		}
		switch c.Kind() {
		case xmpp.StartElementEvent:
			if c.Namespace() == ErrorNamespace {
				condition = c.Name() // last match wins
			}
		case xmpp.EndElementEvent:
			if c.Name() == failedName {
				return NewFailed(condition), nil
			}
		}
	}
}

// DecodeResumed decodes a 'resumed' stanza.
// Only start tag attributes are read; the cursor is left in place.
func DecodeResumed(c *xmpp.Cursor) (*Resumed, error) {
	if err := requireStartTag(c); err != nil {
		return nil, err
	}
	h, err := uintAttribute(c, "h")
	if err != nil {
		return nil, err
	}
	return NewResumed(h, c.Attribute("previd")), nil
}

// DecodeAckAnswer decodes an 'a' stanza.
// Only start tag attributes are read; the cursor is left in place.
func DecodeAckAnswer(c *xmpp.Cursor) (*AckAnswer, error) {
	if err := requireStartTag(c); err != nil {
		return nil, err
	}
	h, err := uintAttribute(c, "h")
	if err != nil {
		return nil, err
	}
	return NewAckAnswer(h), nil
}

func requireStartTag(c *xmpp.Cursor) error {
	if c.Kind() != xmpp.StartElementEvent {
		return &StructuralError{Reason: "cursor is not positioned at a start tag"}
	}
	return nil
}

func uintAttribute(c *xmpp.Cursor, label string) (uint64, error) {
	v := c.Attribute(label)
	if len(v) == 0 {
		return 0, &AttributeError{Label: label}
	}
	h, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, &AttributeError{Label: label, Value: v}
	}
	return h, nil
}
