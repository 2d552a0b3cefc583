/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package copy

import (
	"errors"
	"io"
	"time"
)

// ErrTimeout is returned when the reader doesn't deliver data in time
var ErrTimeout = errors.New("timeout")

// Interface describes a chunked copy from a reader that may stall
type Interface interface {
	CopyChunk(wr io.Writer, rd io.Reader, timeout time.Duration, chunkSize int) (int, bool, error)
}

// ExtendedIO is the default Interface implementation
type ExtendedIO struct {
}

type readResult struct {
	n   int
	err error
}

// CopyChunk does a single read of up to "chunkSize" bytes from "rd" and
// writes what was read to "wr". It returns the number of bytes copied and
// whether "rd" reached EOF. A zero "timeout" waits forever.
func (eio ExtendedIO) CopyChunk(wr io.Writer, rd io.Reader, timeout time.Duration, chunkSize int) (int, bool, error) {
	if chunkSize < 1 {
		return 0, false, errors.New("Copy error: chunkSize can't be less than 1")
	}

	buf := make([]byte, chunkSize)
	result := make(chan readResult, 1)

	go func() {
		n, err := rd.Read(buf)
		result <- readResult{n: n, err: err}
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-expired:
		return 0, false, ErrTimeout
	case r := <-result:
		if r.n > 0 {
			written, err := wr.Write(buf[:r.n])
			if err != nil {
				return written, false, err
			}
		}

		if r.err == io.EOF {
			return r.n, true, nil
		}

		return r.n, false, r.err
	}
}
