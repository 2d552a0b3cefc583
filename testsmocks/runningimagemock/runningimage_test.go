/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package runningimagemock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UpdateHub/easyfota/metadata"
)

func TestRunningDescriptor(t *testing.T) {
	expected := &metadata.RunningImageInfo{Version: "1.0.0"}

	rim := &RunningImageMock{}
	rim.On("RunningDescriptor").Return(expected, nil).Once()
	rim.On("RunningDescriptor").Return(nil, errors.New("some error")).Once()

	info, err := rim.RunningDescriptor()
	assert.NoError(t, err)
	assert.Equal(t, expected, info)

	info, err = rim.RunningDescriptor()
	assert.EqualError(t, err, "some error")
	assert.Nil(t, info)

	rim.AssertExpectations(t)
}
