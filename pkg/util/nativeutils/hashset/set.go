// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package hashset

import (
	"sync"
)

var _empty = new(struct{})

// SafeSet is a threadsafe hashset.
type SafeSet struct {
	sync.RWMutex
	*Set
}

// NewSafe returns an initialized SafeSet.
func NewSafe() *SafeSet {
	return &SafeSet{
		Set: New(),
	}
}

// Has returns true if the entry is found.
func (s *SafeSet) Has(data []byte) bool {
	s.RLock()
	defer s.RUnlock()
	return s.Set.Has(data)
}

// Add an entry to the current set. If the entry is already there, it returns true.
func (s *SafeSet) Add(data []byte) bool {
	s.Lock()
	defer s.Unlock()
	return s.Set.Add(data)
}

// AddAll inserts every entry under a single lock, or none of them. It
// returns false without modifying the set if any entry is already present.
func (s *SafeSet) AddAll(entries ...[]byte) bool {
	s.Lock()
	defer s.Unlock()

	for _, e := range entries {
		if s.Set.Has(e) {
			return false
		}
	}

	for _, e := range entries {
		s.Set.Add(e)
	}
	return true
}

// Size returns the number of elements in the SafeSet.
func (s *SafeSet) Size() int {
	s.RLock()
	defer s.RUnlock()
	return s.Set.Size()
}

// Set is a hashset keyed by the raw bytes of its entries. Entries are never
// hashed down, so distinct entries can not collide.
type Set struct {
	entries map[string]*struct{}
}

// New creates a new Set.
func New() *Set {
	return &Set{
		entries: make(map[string]*struct{}),
	}
}

// Has returns true if the entry is found.
func (s *Set) Has(data []byte) bool {
	return s != nil && s.has(string(data))
}

// Add an entry to the current set. If the entry is already there, it returns true.
func (s *Set) Add(data []byte) bool {
	k := string(data)
	_, found := s.entries[k]
	s.entries[k] = _empty
	return found
}

func (s *Set) has(k string) bool {
	_, found := s.entries[k]
	return found
}

// Size returns the number of elements in the Set.
func (s *Set) Size() int {
	return len(s.entries)
}
