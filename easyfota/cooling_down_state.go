/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"fmt"

	"github.com/OSSystems/pkg/log"
)

// CoolingDownState is the State interface implementation for the
// EasyFotaStateCoolingDown. Every failed attempt goes through it.
type CoolingDownState struct {
	BaseState

	cause EasyFotaErrorReporter
}

// Handle for CoolingDownState logs the failure, releases the session
// left open by it and waits before the next attempt
func (state *CoolingDownState) Handle(ef *EasyFota) (State, error) {
	if state.cause.Kind() == FinishFailed && state.cause.SubKind() == ImageCorrupted {
		log.Error(fmt.Sprintf("image corrupted, discarding it: %s", state.cause))
	} else {
		log.Warn(state.cause)
	}

	if ef.Session != nil {
		err := ef.Session.Abort()
		if err != nil {
			log.Warn(fmt.Sprintf("failed to release the update session: %s", err))
		}

		ef.LastOutcome = ef.Session.Outcome
		ef.Session = nil

		log.Info(fmt.Sprintf("attempt abandoned after %d bytes", ef.ProgressTracker.GetProgress()))
	}

	log.Info(fmt.Sprintf("next update attempt in %s", ef.Settings.CooldownInterval))

	ef.Sleep(ef.Settings.CooldownInterval)

	return NewAwaitingConnectivityState(), nil
}

// ToMap is for the State interface implementation
func (state *CoolingDownState) ToMap() map[string]interface{} {
	m := state.BaseState.ToMap()
	m["error"] = state.cause.Error()
	return m
}

// NewCoolingDownState creates a new CoolingDownState from a EasyFotaErrorReporter
func NewCoolingDownState(cause EasyFotaErrorReporter) *CoolingDownState {
	if cause == nil {
		cause = NewTransientError("", "", nil)
	}

	return &CoolingDownState{
		BaseState: BaseState{id: EasyFotaStateCoolingDown},
		cause:     cause,
	}
}
