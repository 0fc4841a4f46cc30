package checkin

import (
	"fmt"
	"sync"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// RosterCache mirrors the server roster for the single active group.
// Every SwitchGroup bumps the generation; writes carrying an older
// generation are dropped so a cycle that outlives its group cannot
// overwrite the new group's state. Within a generation, fetches are
// sequenced and a read that began before the stored one never replaces it.
type RosterCache struct {
	mu         sync.RWMutex
	group      model.GroupCode
	roster     *model.Roster
	generation uint64

	fetches uint64 // last sequence handed out by BeginFetch
	applied uint64 // sequence of the fetch that last wrote or invalidated
}

// Fetch identifies one roster read against a group context
type Fetch struct {
	Group      model.GroupCode
	Generation uint64
	seq        uint64
}

// NewRosterCache creates a cache with no active group
func NewRosterCache() *RosterCache {
	return &RosterCache{}
}

// SwitchGroup makes group the active context and discards any cached roster
func (c *RosterCache) SwitchGroup(group model.GroupCode) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.group = group
	c.roster = nil
	c.generation++
	return c.generation
}

// ActiveGroup returns the active group and its generation
func (c *RosterCache) ActiveGroup() (model.GroupCode, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.group, c.generation
}

// Get returns a copy of the cached roster if group is active and loaded
func (c *RosterCache) Get(group model.GroupCode) (*model.Roster, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.roster == nil || c.group != group {
		return nil, false
	}
	return c.roster.Clone(), true
}

// BeginFetch stamps a roster read that is about to be sent.
// Call it immediately before the request so the sequence follows send order.
func (c *RosterCache) BeginFetch(group model.GroupCode, generation uint64) Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	return Fetch{Group: group, Generation: generation, seq: c.fetches}
}

// Replace stores the roster read by f and returns a copy of what the cache
// now holds. It fails with ErrContextChanged if the group switched since f
// began. If a later fetch has already been stored, f is dropped and the
// newer roster is returned instead, or ErrFetchFailed if that fetch failed.
func (c *RosterCache) Replace(f Fetch, roster *model.Roster) (*model.Roster, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.group != f.Group || c.generation != f.Generation {
		return nil, fmt.Errorf("%w: %s", ErrContextChanged, f.Group)
	}
	if f.seq < c.applied {
		if c.roster == nil {
			return nil, fmt.Errorf("%w: superseded by a failed re-fetch", ErrFetchFailed)
		}
		return c.roster.Clone(), nil
	}
	c.roster = roster.Clone()
	c.applied = f.seq
	return roster.Clone(), nil
}

// Invalidate drops the cached roster after f failed, so the next reader
// fetches again and no earlier read can repopulate it
func (c *RosterCache) Invalidate(f Fetch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.group != f.Group || c.generation != f.Generation || f.seq < c.applied {
		return
	}
	c.roster = nil
	c.applied = f.seq
}
