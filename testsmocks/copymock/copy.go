/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package copymock

import (
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// CopierMock is a copy.Interface mock
type CopierMock struct {
	mock.Mock
}

func (cm *CopierMock) CopyChunk(wr io.Writer, rd io.Reader, timeout time.Duration, chunkSize int) (int, bool, error) {
	args := cm.Called(wr, rd, timeout, chunkSize)
	return args.Int(0), args.Bool(1), args.Error(2)
}
