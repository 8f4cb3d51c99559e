/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"sync"
	"time"

	"github.com/ortuman/canary/log"
	"github.com/ortuman/canary/roster"
	"github.com/ortuman/canary/xmpp"
	"github.com/ortuman/canary/xmpp/jid"
	"github.com/pborman/uuid"
)

const (
	defaultUsername = "canary"
	defaultResource = "test"
)

// creation listeners registry
var (
	creationMu        sync.RWMutex
	creationListeners []func(*MockConn)
)

// RegisterCreationListener registers a callback invoked whenever a new
// mocked connection is instantiated.
func RegisterCreationListener(fn func(conn *MockConn)) {
	creationMu.Lock()
	defer creationMu.Unlock()
	creationListeners = append(creationListeners, fn)
}

func resetCreationListeners() {
	creationMu.Lock()
	defer creationMu.Unlock()
	creationListeners = nil
}

type listenerWrapper struct {
	listener ElementListener
	filter   Filter
}

var _ Conn = (*MockConn)(nil)

// MockConn is an in-memory Conn implementation intended to be used
// during unit tests. Elements delivered through SendElement are stored
// in a queue whose content can be inspected with SentElement and
// WaitSentElement. Inbound traffic is simulated with ProcessElement,
// which feeds the registered collectors and element listeners.
type MockConn struct {
	cfg Config

	mu        sync.RWMutex
	state     State
	reconnect bool
	connID    string
	user      string
	rst       *roster.Roster

	sentQueue *elementQueue

	regMu         sync.RWMutex
	connListeners []ConnListener
	listeners     []listenerWrapper
	collectors    []*Collector
}

// NewMockConn returns a new disconnected mocked connection.
// A nil config uses the default service name.
func NewMockConn(cfg *Config) *MockConn {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if len(c.ServiceName) == 0 {
		c.ServiceName = defaultServiceName
	}
	m := &MockConn{
		cfg:       c,
		sentQueue: newElementQueue(),
	}
	creationMu.RLock()
	fns := append([]func(*MockConn){}, creationListeners...)
	creationMu.RUnlock()
	for _, fn := range fns {
		fn(m)
	}
	return m
}

// Connect establishes the mocked connection generating a fresh
// connection identifier. Every connect performed after a shutdown is
// notified as a successful reconnection.
func (m *MockConn) Connect() error {
	m.mu.Lock()
	m.state = Connecting
	m.connID = newConnID()
	m.state = Connected
	reconnecting := m.reconnect
	connID := m.connID
	m.mu.Unlock()

	log.Debugf("connected... id: %s", connID)

	for _, l := range m.connListenersSnapshot() {
		if reconnecting {
			l.Reconnected(connID)
		} else {
			l.Connected(connID)
		}
	}
	return nil
}

// Login authenticates the connection deriving its full JID from
// username and resource, falling back to placeholder values when
// empty. Password is never validated.
func (m *MockConn) Login(username, _, resource string) error {
	m.mu.Lock()
	if err := m.checkLoginState(); err != nil {
		m.mu.Unlock()
		return err
	}
	if len(username) == 0 {
		username = defaultUsername
	}
	if len(resource) == 0 {
		resource = defaultResource
	}
	j, err := jid.New(username, m.cfg.ServiceName, resource, false)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.user = j.String()
	m.rst = roster.New()
	m.state = Authenticated
	user := m.user
	m.mu.Unlock()

	log.Debugf("logged in... user: %s", user)
	return nil
}

// LoginAnonymously authenticates the connection as an anonymous
// session. No identity or roster is constructed.
func (m *MockConn) LoginAnonymously() error {
	m.mu.Lock()
	if err := m.checkLoginState(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = AuthenticatedAnonymous
	m.mu.Unlock()

	log.Debugf("logged in anonymously")
	return nil
}

// Shutdown drops connection state and notifies registered connection
// listeners. Any connect performed afterwards is treated as a
// reconnection.
func (m *MockConn) Shutdown() {
	m.mu.Lock()
	m.user = ""
	m.connID = ""
	m.rst = nil
	m.state = Disconnected
	m.reconnect = true
	m.mu.Unlock()

	log.Debugf("connection closed")

	for _, l := range m.connListenersSnapshot() {
		l.Disconnected()
	}
}

// State returns current connection lifecycle state.
func (m *MockConn) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// ConnectionID returns current connection identifier, regenerating it
// if queried while connected but unset. Returns an empty string when
// not connected.
func (m *MockConn) ConnectionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Disconnected || m.state == Connecting {
		return ""
	}
	if len(m.connID) == 0 {
		m.connID = newConnID()
	}
	return m.connID
}

// User returns connection full JID, lazily derived from placeholder
// values when no login has been performed.
func (m *MockConn) User() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.user) == 0 {
		m.user = defaultUsername + "@" + m.cfg.ServiceName + "/" + defaultResource
	}
	return m.user
}

// Roster returns connection contact list, lazily constructing it if
// missing. Anonymous sessions have no contact list.
func (m *MockConn) Roster() *roster.Roster {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == AuthenticatedAnonymous {
		return nil
	}
	if m.rst == nil {
		m.rst = roster.New()
	}
	return m.rst
}

// IsConnected returns whether the connection has been established.
func (m *MockConn) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Connected || m.state == Authenticated || m.state == AuthenticatedAnonymous
}

// IsAuthenticated returns whether the connection has logged in.
func (m *MockConn) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Authenticated || m.state == AuthenticatedAnonymous
}

// IsAnonymous returns whether the connection logged in anonymously.
func (m *MockConn) IsAnonymous() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == AuthenticatedAnonymous
}

// SendElement stores elem into the sent queue for later inspection.
// Delivery never fails: the mocked connection is trivially reachable.
func (m *MockConn) SendElement(elem xmpp.XElement) {
	log.Debugf("SEND: %v", elem)
	m.sentQueue.push(elem)
}

// SentElement returns the first element delivered through SendElement
// not yet returned by earlier calls. Returns nil when none is queued.
func (m *MockConn) SentElement() xmpp.XElement {
	return m.sentQueue.pop()
}

// WaitSentElement behaves as SentElement, blocking up to timeout for
// an element to be sent. Returns nil on timeout.
func (m *MockConn) WaitSentElement(timeout time.Duration) xmpp.XElement {
	return m.sentQueue.popWait(timeout)
}

// SentElementsCount returns the number of elements awaiting inspection.
func (m *MockConn) SentElementsCount() int {
	return m.sentQueue.len()
}

// ProcessElement simulates the receipt of elem, feeding registered
// collectors first and filtered element listeners afterwards, in
// registration order. A nil element is tolerated and dispatches
// nothing. A failing listener is reported and never prevents delivery
// to the remaining ones.
func (m *MockConn) ProcessElement(elem xmpp.XElement) {
	if elem == nil {
		return
	}
	for _, col := range m.collectorsSnapshot() {
		col.process(elem)
	}
	log.Debugf("RECV: %v", elem)

	for _, w := range m.listenersSnapshot() {
		if w.filter != nil && !w.filter(elem) {
			continue
		}
		if err := w.listener.ProcessElement(elem); err != nil {
			log.Errorf("stream: element listener failed: %v", err)
		}
	}
}

// RegisterConnListener registers a connection lifecycle listener.
func (m *MockConn) RegisterConnListener(l ConnListener) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	m.connListeners = append(m.connListeners, l)
}

// UnregisterConnListener unregisters a connection lifecycle listener.
func (m *MockConn) UnregisterConnListener(l ConnListener) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	for i, reg := range m.connListeners {
		if reg == l {
			m.connListeners = append(m.connListeners[:i], m.connListeners[i+1:]...)
			return
		}
	}
}

// RegisterElementListener registers an inbound element listener along
// with its acceptance filter. A nil filter accepts every element.
func (m *MockConn) RegisterElementListener(l ElementListener, f Filter) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	m.listeners = append(m.listeners, listenerWrapper{listener: l, filter: f})
}

// UnregisterElementListener unregisters an inbound element listener.
// Listeners are matched by identity: a listener that needs to be
// unregistered must be implemented by a comparable type, typically a
// struct pointer.
func (m *MockConn) UnregisterElementListener(l ElementListener) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	for i, w := range m.listeners {
		if w.listener == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// NewCollector registers and returns a collector gathering inbound
// elements accepted by f. A nil filter accepts every element.
func (m *MockConn) NewCollector(f Filter) *Collector {
	col := newCollector(m, f)
	m.regMu.Lock()
	defer m.regMu.Unlock()
	m.collectors = append(m.collectors, col)
	return col
}

func (m *MockConn) removeCollector(col *Collector) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	for i, reg := range m.collectors {
		if reg == col {
			m.collectors = append(m.collectors[:i], m.collectors[i+1:]...)
			return
		}
	}
}

func (m *MockConn) checkLoginState() error {
	switch m.state {
	case Disconnected, Connecting:
		return ErrNotConnected
	case Authenticated, AuthenticatedAnonymous:
		return ErrAlreadyAuthenticated
	}
	return nil
}

func (m *MockConn) connListenersSnapshot() []ConnListener {
	m.regMu.RLock()
	defer m.regMu.RUnlock()
	return append([]ConnListener{}, m.connListeners...)
}

func (m *MockConn) listenersSnapshot() []listenerWrapper {
	m.regMu.RLock()
	defer m.regMu.RUnlock()
	return append([]listenerWrapper{}, m.listeners...)
}

func (m *MockConn) collectorsSnapshot() []*Collector {
	m.regMu.RLock()
	defer m.regMu.RUnlock()
	return append([]*Collector{}, m.collectors...)
}

func newConnID() string {
	return "mock-" + uuid.New()
}
