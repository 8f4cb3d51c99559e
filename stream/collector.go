/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"time"

	"github.com/ortuman/canary/xmpp"
)

const collectorBufferSize = 256

// Collector is a synchronous waiter for inbound elements matching a
// filter. Collectors are always fed before element listeners so a
// goroutine blocked on Next can match the element being dispatched.
type Collector struct {
	conn   *MockConn
	filter Filter
	elemCh chan xmpp.XElement
}

func newCollector(conn *MockConn, filter Filter) *Collector {
	return &Collector{
		conn:   conn,
		filter: filter,
		elemCh: make(chan xmpp.XElement, collectorBufferSize),
	}
}

// Poll returns next matched element without blocking.
// Returns nil if none is buffered.
func (c *Collector) Poll() xmpp.XElement {
	select {
	case elem := <-c.elemCh:
		return elem
	default:
		return nil
	}
}

// Next waits up to timeout for a matched element.
// Returns nil on timeout.
func (c *Collector) Next(timeout time.Duration) xmpp.XElement {
	select {
	case elem := <-c.elemCh:
		return elem
	case <-time.After(timeout):
		return nil
	}
}

// Cancel unregisters the collector so it stops receiving elements.
func (c *Collector) Cancel() {
	c.conn.removeCollector(c)
}

func (c *Collector) process(elem xmpp.XElement) {
	if c.filter != nil && !c.filter(elem) {
		return
	}
	select {
	case c.elemCh <- elem:
	default:
		break // buffer is full...
	}
}
