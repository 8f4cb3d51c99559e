/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ortuman/canary/xmpp"
	"github.com/stretchr/testify/require"
)

func TestElementQueue_FIFO(t *testing.T) {
	q := newElementQueue()
	require.Equal(t, 0, q.len())
	require.Nil(t, q.pop())

	for i := 0; i < 4; i++ {
		q.push(xmpp.NewElementName("message").SetID(fmt.Sprintf("m%d", i)))
	}
	require.Equal(t, 4, q.len())
	for i := 0; i < 4; i++ {
		require.Equal(t, fmt.Sprintf("m%d", i), q.pop().ID())
	}
	require.Nil(t, q.pop())
}

func TestElementQueue_PopWaitTimeout(t *testing.T) {
	q := newElementQueue()

	start := time.Now()
	require.Nil(t, q.popWait(time.Millisecond*20))
	require.True(t, time.Since(start) >= time.Millisecond*20)
}

func TestElementQueue_PopWaitDelivery(t *testing.T) {
	q := newElementQueue()
	elem := xmpp.NewElementName("presence")

	go func() {
		time.Sleep(time.Millisecond * 30)
		q.push(elem)
	}()
	require.Equal(t, elem, q.popWait(time.Second*5))
}

func TestElementQueue_PerProducerOrder(t *testing.T) {
	const perProducer = 100

	q := newElementQueue()
	var wg sync.WaitGroup
	for _, producer := range []string{"a", "b"} {
		wg.Add(1)
		go func(producer string) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(xmpp.NewElementName("message").SetID(fmt.Sprintf("%s%d", producer, i)))
			}
		}(producer)
	}
	wg.Wait()
	require.Equal(t, perProducer*2, q.len())

	lastSeen := map[string]int{"a": -1, "b": -1}
	for i := 0; i < perProducer*2; i++ {
		id := q.pop().ID()
		producer := id[:1]
		var seq int
		fmt.Sscanf(strings.TrimPrefix(id, producer), "%d", &seq)
		require.Greater(t, seq, lastSeen[producer])
		lastSeen[producer] = seq
	}
}
