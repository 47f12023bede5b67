// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scratch provides ephemeral in-memory slots for session state that
// must never be written to disk, such as a generated template waiting to be
// applied.
package scratch

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// Slot holds at most one value of type T under a fixed key. Setting
// overwrites; Take reads and clears in one step. Values do not expire.
type Slot[T any] struct {
	mu    sync.Mutex
	key   string
	store *cache.Cache
}

// NewSlot creates an empty slot backed by its own cache.
func NewSlot[T any](key string) *Slot[T] {
	return NewSlotIn[T](cache.New(cache.NoExpiration, 0), key)
}

// NewSlotIn creates a slot that lives in an existing cache, so several
// slots can share one scratch store.
func NewSlotIn[T any](store *cache.Cache, key string) *Slot[T] {
	return &Slot[T]{key: key, store: store}
}

// Set replaces the held value.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(s.key, v, cache.NoExpiration)
}

// Get returns the held value without clearing it.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get()
}

// Take returns the held value and clears the slot.
func (s *Slot[T]) Take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get()
	if ok {
		s.store.Delete(s.key)
	}
	return v, ok
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(s.key)
}

func (s *Slot[T]) get() (T, bool) {
	var zero T
	raw, ok := s.store.Get(s.key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
