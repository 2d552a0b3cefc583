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
)

// RebootingState is the State interface implementation for the
// EasyFotaStateRebooting
type RebootingState struct {
	BaseState
}

// Handle for RebootingState
func (state *RebootingState) Handle(ef *EasyFota) (State, error) {
	log.Info("firmware upgrade succeeded, rebooting...")

	ef.Sleep(ef.Settings.RebootDelay)

	err := ef.Rebooter.Reboot()
	if err != nil {
		finalErr := NewTransientError(RebootFailed, "", err)
		return NewCoolingDownState(finalErr), finalErr
	}

	return NewExitState(0), nil
}

// NewRebootingState creates a new RebootingState
func NewRebootingState() *RebootingState {
	return &RebootingState{
		BaseState: BaseState{id: EasyFotaStateRebooting},
	}
}
