/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gatemock

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/UpdateHub/easyfota/connectivity"
)

// GateMock is a connectivity.Gate mock
type GateMock struct {
	mock.Mock
}

func (gm *GateMock) WaitForBits(mask connectivity.Bits, clearOnExit bool, waitForAll bool, timeout time.Duration) connectivity.Bits {
	args := gm.Called(mask, clearOnExit, waitForAll, timeout)
	return args.Get(0).(connectivity.Bits)
}
