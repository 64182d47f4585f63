// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package hashmap implements a generic open-addressing hash table using
// robin-hood hashing, used as the backing store wherever a component needs
// O(1) lookup by an opaque key (reference ids, path-label indices) without
// caring about iteration order. Any part of this module that produces
// user-visible output sorts the keys it reads out of a Hashmap first —
// the map itself makes no ordering guarantee.
package hashmap

import "math/bits"

// Hashmap implements a hashmap from K to V using external hash and
// equality functions, so K need not implement any particular interface.
type Hashmap[K any, V any] struct {
	seed    uint64
	entries []entry[K, V]
	length  int
	hash    func(K) uint64
	equal   func(K, K) bool
}

type entry[K any, V any] struct {
	hash      uint64
	key       K
	value     V
	occupied  bool
	tombstone bool
}

// New returns an empty Hashmap with size slots, rounded up to a power of
// two; it grows once 90% of its slots are in use. hash and equal must be
// consistent: equal keys must hash equal.
func New[K any, V any](size uint, hash func(K) uint64, equal func(K, K) bool) *Hashmap[K, V] {
	var entries []entry[K, V]
	if size != 0 {
		entries = make([]entry[K, V], 1<<bits.Len(size-1))
	}
	return &Hashmap[K, V]{entries: entries, hash: hash, equal: equal}
}

// Len returns the number of entries currently stored in m.
func (m *Hashmap[K, V]) Len() int {
	return m.length
}

func (m *Hashmap[K, V]) mask() int {
	return len(m.entries) - 1
}

func (m *Hashmap[K, V]) position(hash uint64) int {
	return int(hash^m.seed) & m.mask()
}

// Set associates k with v in m, replacing any existing value for k.
func (m *Hashmap[K, V]) Set(k K, v V) {
	capacity := len(m.entries)
	if capacity == 0 {
		m.resize(4)
	} else if m.length >= int(float64(capacity)*0.9) {
		m.resize(capacity * 2)
	}
	m.set(m.hash(k), k, v)
}

func (m *Hashmap[K, V]) set(hash uint64, k K, v V) {
	position := m.position(hash)
	var distance int
	for {
		existing := &m.entries[position]
		switch {
		case !existing.occupied:
			m.entries[position] = entry[K, V]{hash: hash, key: k, value: v, occupied: true}
			m.length++
			return
		case !existing.tombstone && existing.hash == hash && m.equal(existing.key, k):
			existing.value = v
			return
		}

		existingDistance := position - m.position(existing.hash)
		if existingDistance < 0 {
			existingDistance += len(m.entries)
		}
		switch {
		case distance > existingDistance:
			if existing.tombstone {
				m.entries[position] = entry[K, V]{hash: hash, key: k, value: v, occupied: true}
				m.length++
				return
			}
			hash, existing.hash = existing.hash, hash
			k, existing.key = existing.key, k
			v, existing.value = existing.value, v
			distance = existingDistance
		case distance == existingDistance && existing.tombstone:
			m.entries[position] = entry[K, V]{hash: hash, key: k, value: v, occupied: true}
			m.length++
			return
		}

		distance++
		position = (position + 1) & m.mask()
	}
}

// Get returns the value associated with k, and whether k was present.
func (m *Hashmap[K, V]) Get(k K) (V, bool) {
	ent := m.getRef(k)
	if ent == nil {
		var v V
		return v, false
	}
	return ent.value, true
}

func (m *Hashmap[K, V]) getRef(k K) *entry[K, V] {
	if len(m.entries) == 0 {
		return nil
	}
	hash := m.hash(k)
	position := m.position(hash)
	var distance int
	for {
		ent := &m.entries[position]
		if !ent.occupied {
			return nil
		}
		entDistance := position - m.position(ent.hash)
		if entDistance < 0 {
			entDistance += len(m.entries)
		}
		if distance > entDistance {
			return nil
		}
		// A tombstone's key has been zeroed; it must never report as a
		// live match for a key whose zero value collides with it.
		if !ent.tombstone && ent.hash == hash && m.equal(ent.key, k) {
			return ent
		}
		distance++
		position = (position + 1) & m.mask()
	}
}

// Delete removes k from m, if present.
func (m *Hashmap[K, V]) Delete(k K) {
	ent := m.getRef(k)
	if ent == nil {
		return
	}
	var (
		nilK K
		nilV V
	)
	ent.key = nilK
	ent.value = nilV
	ent.tombstone = true
	m.length--
}

// Range calls f for every entry in m, in unspecified order, until f
// returns false. Callers that must produce deterministic output sort
// whatever Range hands them before using it.
func (m *Hashmap[K, V]) Range(f func(K, V) bool) {
	for _, ent := range m.entries {
		if !ent.occupied || ent.tombstone {
			continue
		}
		if !f(ent.key, ent.value) {
			return
		}
	}
}

func (m *Hashmap[K, V]) resize(size int) {
	oldEntries := m.entries
	m.entries = make([]entry[K, V], size)
	m.length = 0
	for _, ent := range oldEntries {
		if !ent.occupied || ent.tombstone {
			continue
		}
		m.set(ent.hash, ent.key, ent.value)
	}
}
