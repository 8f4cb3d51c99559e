/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"github.com/ortuman/canary/roster"
	"github.com/ortuman/canary/xmpp"
	"github.com/pkg/errors"
)

// ErrNotConnected is returned when an operation requires an
// established connection.
var ErrNotConnected = errors.New("stream: not connected to server")

// ErrAlreadyAuthenticated is returned when trying to log in over an
// already authenticated connection.
var ErrAlreadyAuthenticated = errors.New("stream: already logged in to server")

// State represents a connection lifecycle state.
type State int

const (
	// Disconnected represents a connection that has not been
	// established, or that has been shut down.
	Disconnected State = iota

	// Connecting represents a connection being established.
	Connecting

	// Connected represents an established, not yet authenticated
	// connection.
	Connected

	// Authenticated represents a logged in connection.
	Authenticated

	// AuthenticatedAnonymous represents an anonymously logged in
	// connection.
	AuthenticatedAnonymous
)

// Conn represents a client connection surface.
type Conn interface {
	Connect() error
	Login(username, password, resource string) error
	LoginAnonymously() error
	Shutdown()

	ConnectionID() string
	User() string
	Roster() *roster.Roster

	IsConnected() bool
	IsAuthenticated() bool
	IsAnonymous() bool

	SendElement(elem xmpp.XElement)
}

// Filter determines whether an inbound element is of interest to a
// listener or collector.
type Filter func(elem xmpp.XElement) bool

// ElementListener is asynchronously notified of every inbound element
// accepted by its registration filter.
type ElementListener interface {
	ProcessElement(elem xmpp.XElement) error
}

// ElementListenerFunc lets a plain function act as an ElementListener.
type ElementListenerFunc func(elem xmpp.XElement) error

// ProcessElement satisfies ElementListener interface.
func (f ElementListenerFunc) ProcessElement(elem xmpp.XElement) error {
	return f(elem)
}

// ConnListener observes connection lifecycle transitions.
type ConnListener interface {
	// Connected is invoked when the connection is established for
	// the first time.
	Connected(connectionID string)

	// Reconnected is invoked when the connection is established
	// again after a shutdown.
	Reconnected(connectionID string)

	// Disconnected is invoked when the connection shuts down.
	Disconnected()
}
