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

	"github.com/UpdateHub/easyfota/metadata"
)

func TestValidatingStateHandle(t *testing.T) {
	testCases := []struct {
		name            string
		candidate       *metadata.FirmwareDescriptor
		running         *metadata.RunningImageInfo
		antiRollback    bool
		floor           uint32
		expectedSubKind string
	}{
		{
			"NewerVersion",
			&metadata.FirmwareDescriptor{Version: "1.1.0"},
			&metadata.RunningImageInfo{Version: "1.0.0"},
			false, 0, "",
		},
		{
			"EqualVersion",
			&metadata.FirmwareDescriptor{Version: "1.0.0"},
			&metadata.RunningImageInfo{Version: "1.0.0"},
			false, 0, VersionNotNewer,
		},
		{
			"OlderVersion",
			&metadata.FirmwareDescriptor{Version: "0.9.0"},
			&metadata.RunningImageInfo{Version: "1.0.0"},
			false, 0, VersionNotNewer,
		},
		{
			"SecureVersionAtFloor",
			&metadata.FirmwareDescriptor{Version: "1.1.0", SecureVersion: 2},
			&metadata.RunningImageInfo{Version: "1.0.0"},
			true, 2, "",
		},
		{
			"SecureVersionBelowFloor",
			&metadata.FirmwareDescriptor{Version: "1.1.0", SecureVersion: 1},
			&metadata.RunningImageInfo{Version: "1.0.0"},
			true, 2, SecurityVersionTooLow,
		},
		{
			"MissingDescriptor",
			nil,
			&metadata.RunningImageInfo{Version: "1.0.0"},
			false, 0, InvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tef := newTestEasyFota()
			tef.Validator.AntiRollback = tc.antiRollback

			tef.rim.On("RunningDescriptor").Return(tc.running, nil).Once()
			if tc.antiRollback {
				tef.erm.On("SecureVersion").Return(tc.floor, nil).Once()
			}

			session := tef.openSession(tc.candidate)

			next, err := NewValidatingState().Handle(tef.EasyFota)

			if tc.expectedSubKind == "" {
				assert.NoError(t, err)
				assert.IsType(t, &TransferringState{}, next)
				assert.Equal(t, OutcomePending, tef.Session.Outcome)
			} else {
				assert.IsType(t, &CoolingDownState{}, next)
				assert.Equal(t, PolicyRejected, err.(EasyFotaErrorReporter).Kind())
				assert.Equal(t, tc.expectedSubKind, err.(EasyFotaErrorReporter).SubKind())
				assert.Equal(t, OutcomeValidationFailed, tef.Session.Outcome)
			}

			tef.assertExpectations(t)
			session.AssertExpectations(t)
		})
	}
}

func TestValidatingStateWithUnreadableFloor(t *testing.T) {
	tef := newTestEasyFota()
	tef.Validator.AntiRollback = true

	tef.rim.On("RunningDescriptor").Return(&metadata.RunningImageInfo{Version: "1.0.0"}, nil).Once()
	tef.erm.On("SecureVersion").Return(uint32(0), errors.New("no such file")).Once()

	tef.openSession(&metadata.FirmwareDescriptor{Version: "2.0.0"})

	next, err := NewValidatingState().Handle(tef.EasyFota)

	assert.IsType(t, &CoolingDownState{}, next)
	assert.EqualError(t, err, "transient error (policy-rejected/security-floor-unreadable): no such file")

	tef.assertExpectations(t)
}

func TestValidatingStateWithUnreadableRunningImage(t *testing.T) {
	hook, restore := captureLog()
	defer restore()

	tef := newTestEasyFota()

	tef.rim.On("RunningDescriptor").Return(nil, errors.New("invalid image magic: 0xff")).Once()

	tef.openSession(&metadata.FirmwareDescriptor{Version: "0.0.1"})

	next, err := NewValidatingState().Handle(tef.EasyFota)

	assert.NoError(t, err)
	assert.IsType(t, &TransferringState{}, next)
	assert.Equal(t, "failed to read the running image descriptor: invalid image magic: 0xff", hook.Entries[0].Message)

	tef.assertExpectations(t)
}

func TestValidatingStateSkippingVersionCheck(t *testing.T) {
	tef := newTestEasyFota()
	tef.Validator.SkipVersionCheck = true

	tef.rim.On("RunningDescriptor").Return(&metadata.RunningImageInfo{Version: "1.0.0"}, nil).Once()

	tef.openSession(&metadata.FirmwareDescriptor{Version: "1.0.0"})

	next, err := NewValidatingState().Handle(tef.EasyFota)

	assert.NoError(t, err)
	assert.IsType(t, &TransferringState{}, next)

	tef.assertExpectations(t)
}
