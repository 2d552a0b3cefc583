/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UpdateHub/easyfota/imagesource"
	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/testsmocks/progresstrackermock"
)

func TestTransferringStateHandle(t *testing.T) {
	tef := newTestEasyFota()

	ptm := &progresstrackermock.ProgressTrackerMock{}
	ptm.On("SetProgress", 1024).Once()
	ptm.On("SetProgress", 2048).Once()
	ptm.On("SetProgress", 2500).Once()
	tef.ProgressTracker = ptm

	session := tef.openSession(&metadata.FirmwareDescriptor{Version: "2.0.0"})
	session.On("PerformStep").Return(imagesource.StepInProgress, nil).Twice()
	session.On("PerformStep").Return(imagesource.StepDone, nil).Once()
	session.On("BytesRead").Return(int64(1024)).Once()
	session.On("BytesRead").Return(int64(2048)).Once()
	session.On("BytesRead").Return(int64(2500)).Once()

	next, err := NewTransferringState().Handle(tef.EasyFota)

	assert.NoError(t, err)
	assert.IsType(t, &FinishingState{}, next)
	assert.Equal(t, int64(2500), tef.Session.BytesRead)

	session.AssertExpectations(t)
	ptm.AssertExpectations(t)
}

func TestTransferringStateHandleWithChunkError(t *testing.T) {
	tef := newTestEasyFota()

	session := tef.openSession(&metadata.FirmwareDescriptor{Version: "2.0.0"})
	session.On("PerformStep").Return(imagesource.StepInProgress, nil).Once()
	session.On("PerformStep").Return(imagesource.StepDone, errors.New("timeout")).Once()
	session.On("BytesRead").Return(int64(1024)).Twice()

	next, err := NewTransferringState().Handle(tef.EasyFota)

	assert.IsType(t, &CoolingDownState{}, next)
	assert.EqualError(t, err, "transient error (transfer-chunk-failed): timeout")
	assert.Equal(t, OutcomeTransportError, tef.Session.Outcome)
	assert.Equal(t, 1024, tef.ProgressTracker.GetProgress())

	// no retry of the failed chunk
	session.AssertNumberOfCalls(t, "PerformStep", 2)
	session.AssertExpectations(t)
}
