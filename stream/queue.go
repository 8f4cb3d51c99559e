/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"sync"
	"time"

	"github.com/ortuman/canary/xmpp"
)

// elementQueue is an unbounded FIFO of outbound elements, fed by
// sender goroutines and drained by assertion goroutines. A buffered
// wake channel keeps bounded waits cheap without missing pushes.
type elementQueue struct {
	mu     sync.Mutex
	items  []xmpp.XElement
	wakeCh chan struct{}
}

func newElementQueue() *elementQueue {
	return &elementQueue{wakeCh: make(chan struct{}, 1)}
}

func (q *elementQueue) push(elem xmpp.XElement) {
	q.mu.Lock()
	q.items = append(q.items, elem)
	q.mu.Unlock()
	q.wake()
}

// pop removes and returns queue head, or nil when empty.
func (q *elementQueue) pop() xmpp.XElement {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	elem := q.items[0]
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.wake() // keep concurrent waiters moving
	}
	return elem
}

// popWait behaves as pop, blocking up to timeout for an element to
// show up. Returns nil on timeout.
func (q *elementQueue) popWait(timeout time.Duration) xmpp.XElement {
	if elem := q.pop(); elem != nil {
		return elem
	}
	tm := time.NewTimer(timeout)
	defer tm.Stop()
	for {
		select {
		case <-q.wakeCh:
			if elem := q.pop(); elem != nil {
				return elem
			}
		case <-tm.C:
			return q.pop()
		}
	}
}

func (q *elementQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *elementQueue) wake() {
	select {
	case q.wakeCh <- struct{}{}:
	default:
		break // a wake up is already pending...
	}
}
