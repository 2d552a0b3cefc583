/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package runningimagemock

import (
	"github.com/stretchr/testify/mock"

	"github.com/UpdateHub/easyfota/metadata"
)

// RunningImageMock is an easyfota.RunningImageProvider mock
type RunningImageMock struct {
	mock.Mock
}

func (rim *RunningImageMock) RunningDescriptor() (*metadata.RunningImageInfo, error) {
	args := rim.Called()

	info, _ := args.Get(0).(*metadata.RunningImageInfo)

	return info, args.Error(1)
}
