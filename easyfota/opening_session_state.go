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

// OpeningSessionState is the State interface implementation for the
// EasyFotaStateOpeningSession
type OpeningSessionState struct {
	BaseState
}

// Handle for OpeningSessionState
func (state *OpeningSessionState) Handle(ef *EasyFota) (State, error) {
	if ef.Session != nil && ef.Session.Open() {
		log.Warn("previous update session still open, aborting it")

		err := ef.Session.Abort()
		if err != nil {
			log.Warn(err)
		}
	}

	ef.Session = nil
	ef.ProgressTracker.SetProgress(0)

	log.Info(fmt.Sprintf("opening update session: %s", ef.URL))

	stream, err := ef.Source.Begin(ef.sessionConfig())
	if err != nil {
		finalErr := NewTransientError(SessionOpenFailed, "", err)
		return NewCoolingDownState(finalErr), finalErr
	}

	ef.Session = NewUpdateSession(stream)

	return NewFetchingHeaderState(), nil
}

// NewOpeningSessionState creates a new OpeningSessionState
func NewOpeningSessionState() *OpeningSessionState {
	return &OpeningSessionState{
		BaseState: BaseState{id: EasyFotaStateOpeningSession},
	}
}
