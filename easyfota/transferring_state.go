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

	"github.com/UpdateHub/easyfota/imagesource"
)

// TransferringState is the State interface implementation for the
// EasyFotaStateTransferring
type TransferringState struct {
	BaseState
}

// Handle for TransferringState pulls chunks until the stream ends. A
// failed chunk abandons the attempt, there are no chunk retries.
func (state *TransferringState) Handle(ef *EasyFota) (State, error) {
	for {
		status, err := ef.Session.stream.PerformStep()

		ef.Session.BytesRead = ef.Session.stream.BytesRead()
		ef.ProgressTracker.SetProgress(int(ef.Session.BytesRead))

		log.Debug(fmt.Sprintf("image bytes read: %d", ef.Session.BytesRead))

		if err != nil {
			ef.Session.Outcome = OutcomeTransportError
			finalErr := NewTransientError(TransferChunkFailed, "", err)
			return NewCoolingDownState(finalErr), finalErr
		}

		if status == imagesource.StepDone {
			break
		}
	}

	return NewFinishingState(), nil
}

// NewTransferringState creates a new TransferringState
func NewTransferringState() *TransferringState {
	return &TransferringState{
		BaseState: BaseState{id: EasyFotaStateTransferring},
	}
}
