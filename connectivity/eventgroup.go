/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package connectivity signals network readiness to the update task
package connectivity

import (
	"sync"
	"time"
)

// Bits is a set of readiness flags
type Bits uint32

const (
	// ConnectedBit is set while the network is usable
	ConnectedBit Bits = 1 << iota
	// FailBit is set once the network gave up connecting
	FailBit
)

// Gate is the read side of the readiness signal
type Gate interface {
	// WaitForBits blocks until the bits in "mask" are set (all of them
	// when "waitForAll", any otherwise) or "timeout" expires, and returns
	// the bits observed at that moment. With "clearOnExit" the bits in
	// "mask" are cleared when the wait is satisfied.
	WaitForBits(mask Bits, clearOnExit bool, waitForAll bool, timeout time.Duration) Bits
}

// EventGroup is a Gate whose bits are set by another goroutine
type EventGroup struct {
	mutex   sync.Mutex
	bits    Bits
	changed chan struct{}
}

// NewEventGroup creates an EventGroup with every bit cleared
func NewEventGroup() *EventGroup {
	return &EventGroup{changed: make(chan struct{})}
}

// Bits returns the current bits
func (g *EventGroup) Bits() Bits {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.bits
}

// SetBits sets "bits" and wakes up the waiters
func (g *EventGroup) SetBits(bits Bits) Bits {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.bits |= bits
	g.notify()

	return g.bits
}

// ClearBits clears "bits"
func (g *EventGroup) ClearBits(bits Bits) Bits {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.bits &^= bits
	g.notify()

	return g.bits
}

// must be called with the mutex held
func (g *EventGroup) notify() {
	close(g.changed)
	g.changed = make(chan struct{})
}

// WaitForBits is the Gate interface implementation
func (g *EventGroup) WaitForBits(mask Bits, clearOnExit bool, waitForAll bool, timeout time.Duration) Bits {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		g.mutex.Lock()

		observed := g.bits
		if satisfied(observed, mask, waitForAll) {
			if clearOnExit {
				g.bits &^= mask
			}
			g.mutex.Unlock()
			return observed
		}

		changed := g.changed
		g.mutex.Unlock()

		select {
		case <-changed:
		case <-timer.C:
			return g.Bits()
		}
	}
}

func satisfied(bits Bits, mask Bits, waitForAll bool) bool {
	if waitForAll {
		return bits&mask == mask
	}

	return bits&mask != 0
}
