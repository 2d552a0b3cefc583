/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package efusemock

import "github.com/stretchr/testify/mock"

// ReaderMock is an efuse.Reader mock
type ReaderMock struct {
	mock.Mock
}

func (rm *ReaderMock) SecureVersion() (uint32, error) {
	args := rm.Called()
	return args.Get(0).(uint32), args.Error(1)
}
