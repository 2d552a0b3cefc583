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

	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/policy"
)

// ValidatingState is the State interface implementation for the
// EasyFotaStateValidating
type ValidatingState struct {
	BaseState
}

// Handle for ValidatingState checks the candidate descriptor against
// the running image and the security floor
func (state *ValidatingState) Handle(ef *EasyFota) (State, error) {
	running := ef.runningImage()

	var floor uint32

	if ef.Validator.AntiRollback {
		if ef.FloorReader == nil {
			return state.reject(ef, SecurityFloorUnreadable, errors.New("no security floor reader"))
		}

		var err error

		floor, err = ef.FloorReader.SecureVersion()
		if err != nil {
			return state.reject(ef, SecurityFloorUnreadable, err)
		}
	}

	err := ef.Validator.Validate(ef.Session.Descriptor, running, floor)
	if err != nil {
		subKind := ""

		switch errors.Cause(err) {
		case policy.ErrVersionNotNewer:
			subKind = VersionNotNewer
		case policy.ErrSecureVersionTooLow:
			subKind = SecurityVersionTooLow
		case policy.ErrInvalidArgument:
			subKind = InvalidArgument
		}

		return state.reject(ef, subKind, err)
	}

	return NewTransferringState(), nil
}

func (state *ValidatingState) reject(ef *EasyFota, subKind string, err error) (State, error) {
	ef.Session.Outcome = OutcomeValidationFailed

	finalErr := NewTransientError(PolicyRejected, subKind, err)

	return NewCoolingDownState(finalErr), finalErr
}

// runningImage never fails, an unreadable running image is treated as
// one without version
func (ef *EasyFota) runningImage() *metadata.RunningImageInfo {
	if ef.RunningImage == nil {
		return &metadata.RunningImageInfo{}
	}

	running, err := ef.RunningImage.RunningDescriptor()
	if err != nil {
		log.Warn(fmt.Sprintf("failed to read the running image descriptor: %s", err))
		return &metadata.RunningImageInfo{}
	}

	log.Info(fmt.Sprintf("running firmware version: %s", running.Version))

	return running
}

// NewValidatingState creates a new ValidatingState
func NewValidatingState() *ValidatingState {
	return &ValidatingState{
		BaseState: BaseState{id: EasyFotaStateValidating},
	}
}
