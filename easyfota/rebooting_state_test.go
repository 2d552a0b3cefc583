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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRebootingStateHandle(t *testing.T) {
	tef := newTestEasyFota()
	tef.rm.On("Reboot").Return(nil).Once()

	next, err := NewRebootingState().Handle(tef.EasyFota)

	assert.NoError(t, err)
	assert.IsType(t, &ExitState{}, next)
	assert.Equal(t, 0, next.(*ExitState).ExitCode())
	assert.Equal(t, []time.Duration{time.Second}, tef.sleeper.sleeps)

	tef.assertExpectations(t)
}

func TestRebootingStateHandleWithError(t *testing.T) {
	tef := newTestEasyFota()
	tef.rm.On("Reboot").Return(errors.New("permission denied")).Once()

	next, err := NewRebootingState().Handle(tef.EasyFota)

	assert.IsType(t, &CoolingDownState{}, next)
	assert.EqualError(t, err, "transient error (reboot-failed): permission denied")

	tef.assertExpectations(t)
}
