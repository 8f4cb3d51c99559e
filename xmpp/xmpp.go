/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"fmt"
	"io"

	"github.com/ortuman/canary/pool"
)

var bufPool = pool.NewBufferPool()

const (
	// MessageName represents "message" stanza name.
	MessageName = "message"

	// PresenceName represents "presence" stanza name.
	PresenceName = "presence"

	// IQName represents "iq" stanza name.
	IQName = "iq"
)

// ErrorType represents an 'error' stanza type.
const ErrorType = "error"

// XElement represents a generic XML node element.
type XElement interface {
	fmt.Stringer

	Name() string
	Attributes() AttributeSet
	Elements() ElementSet

	Text() string

	ID() string
	Namespace() string
	From() string
	To() string
	Type() string

	IsStanza() bool

	ToXML(w io.Writer, includeClosing bool)
}
