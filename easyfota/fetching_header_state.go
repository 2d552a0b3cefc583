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

// FetchingHeaderState is the State interface implementation for the
// EasyFotaStateFetchingHeader
type FetchingHeaderState struct {
	BaseState
}

// Handle for FetchingHeaderState
func (state *FetchingHeaderState) Handle(ef *EasyFota) (State, error) {
	descriptor, err := ef.Session.stream.ReadDescriptor()
	if err != nil {
		ef.Session.Outcome = OutcomeTransportError
		finalErr := NewTransientError(HeaderReadFailed, "", err)
		return NewCoolingDownState(finalErr), finalErr
	}

	ef.Session.Descriptor = descriptor

	// a missing descriptor is rejected by the validator
	if descriptor != nil {
		log.Info(fmt.Sprintf("new firmware version: %s (secure version %d)", descriptor.Version, descriptor.SecureVersion))
	}

	return NewValidatingState(), nil
}

// NewFetchingHeaderState creates a new FetchingHeaderState
func NewFetchingHeaderState() *FetchingHeaderState {
	return &FetchingHeaderState{
		BaseState: BaseState{id: EasyFotaStateFetchingHeader},
	}
}
