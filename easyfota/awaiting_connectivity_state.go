/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/connectivity"
)

// AwaitingConnectivityState is the State interface implementation for
// the EasyFotaStateAwaitingConnectivity
type AwaitingConnectivityState struct {
	BaseState
}

// Handle for AwaitingConnectivityState does a bounded wait on the
// connectivity bits. A plain timeout still lets the attempt go on.
func (state *AwaitingConnectivityState) Handle(ef *EasyFota) (State, error) {
	bits := ef.Gate.WaitForBits(connectivity.ConnectedBit|connectivity.FailBit, false, false, ef.Settings.ConnectivityTimeout)

	if bits&connectivity.FailBit != 0 {
		err := NewTransientError(ConnectivityLost, "", errors.New("failed to connect to the network"))
		return NewCoolingDownState(err), err
	}

	if bits&connectivity.ConnectedBit == 0 {
		log.Debug("no connectivity signal yet, trying anyway")
	}

	return NewOpeningSessionState(), nil
}

// NewAwaitingConnectivityState creates a new AwaitingConnectivityState
func NewAwaitingConnectivityState() *AwaitingConnectivityState {
	return &AwaitingConnectivityState{
		BaseState: BaseState{id: EasyFotaStateAwaitingConnectivity},
	}
}
