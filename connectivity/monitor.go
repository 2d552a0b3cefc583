/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package connectivity

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/OSSystems/pkg/log"
)

// DialFunc opens a probe connection
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Monitor probes the network and publishes its state into an EventGroup.
// It is the only writer of the group bits.
type Monitor struct {
	Group        *EventGroup
	Address      string
	Interval     time.Duration
	MaximumRetry int
	Dial         DialFunc

	retries int
}

// NewMonitor creates a Monitor probing "address" with TCP connections
func NewMonitor(group *EventGroup, address string, interval time.Duration, maximumRetry int) *Monitor {
	dialer := &net.Dialer{Timeout: interval}

	return &Monitor{
		Group:        group,
		Address:      address,
		Interval:     interval,
		MaximumRetry: maximumRetry,
		Dial:         dialer.DialContext,
	}
}

// Run probes every Interval until "ctx" is done
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		m.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Check runs a single probe and updates the group bits
func (m *Monitor) Check(ctx context.Context) {
	conn, err := m.Dial(ctx, "tcp", m.Address)
	if err == nil {
		conn.Close()

		if m.Group.Bits()&ConnectedBit == 0 {
			log.Info(fmt.Sprintf("network is reachable (%s)", m.Address))
		}

		m.retries = 0
		m.Group.ClearBits(FailBit)
		m.Group.SetBits(ConnectedBit)
		return
	}

	m.Group.ClearBits(ConnectedBit)

	if m.retries < m.MaximumRetry {
		m.retries++
		log.Debug(fmt.Sprintf("retry to reach %s (%d/%d): %s", m.Address, m.retries, m.MaximumRetry, err))
		return
	}

	if m.Group.Bits()&FailBit == 0 {
		log.Warn(fmt.Sprintf("failed to reach %s: %s", m.Address, err))
	}

	m.Group.SetBits(FailBit)
}
