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
	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/imagesource"
)

// FinishingState is the State interface implementation for the
// EasyFotaStateFinishing
type FinishingState struct {
	BaseState
}

// Handle for FinishingState finalizes a complete image. An incomplete
// one is left to be aborted.
func (state *FinishingState) Handle(ef *EasyFota) (State, error) {
	if !ef.Session.stream.IsComplete() {
		ef.Session.Outcome = OutcomeTransferIncomplete
		finalErr := NewTransientError(TransferIncomplete, "", fmt.Errorf("complete image was not received (%d bytes read)", ef.Session.BytesRead))
		return NewCoolingDownState(finalErr), finalErr
	}

	err := ef.Session.Finish()
	if err != nil {
		ef.Session.Outcome = OutcomeFinishFailed

		subKind := ""

		switch errors.Cause(err) {
		case imagesource.ErrValidateFailed:
			subKind = ImageCorrupted
		case imagesource.ErrSmallSecureVersion:
			subKind = SecurityVersionTooLow
		}

		finalErr := NewTransientError(FinishFailed, subKind, err)
		return NewCoolingDownState(finalErr), finalErr
	}

	ef.Session.Outcome = OutcomeSuccess
	ef.LastOutcome = OutcomeSuccess
	ef.Session = nil

	log.Info("firmware image written and set as bootable")

	return NewRebootingState(), nil
}

// NewFinishingState creates a new FinishingState
func NewFinishingState() *FinishingState {
	return &FinishingState{
		BaseState: BaseState{id: EasyFotaStateFinishing},
	}
}
