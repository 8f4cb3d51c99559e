/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package roster

import (
	"sort"
	"sync"
)

// roster subscription values
const (
	SubscriptionNone = "none"
	SubscriptionFrom = "from"
	SubscriptionTo   = "to"
	SubscriptionBoth = "both"
)

// Item represents a roster contact entry.
type Item struct {
	JID          string
	Name         string
	Subscription string
	Groups       []string
}

// Roster represents a per-connection contact list.
type Roster struct {
	mu    sync.RWMutex
	items map[string]Item
}

// New returns an empty roster instance.
func New() *Roster {
	return &Roster{items: map[string]Item{}}
}

// UpsertItem inserts or updates a roster contact entry.
func (r *Roster) UpsertItem(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.JID] = item
}

// DeleteItem removes the contact entry identified by jid.
func (r *Roster) DeleteItem(jid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, jid)
}

// Item returns the contact entry identified by jid.
func (r *Roster) Item(jid string) (Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[jid]
	return item, ok
}

// Items returns all contact entries sorted by JID.
func (r *Roster) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		ret = append(ret, item)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].JID < ret[j].JID })
	return ret
}

// Count returns the number of contact entries.
func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
