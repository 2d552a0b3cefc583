/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"github.com/UpdateHub/easyfota/imagesource"
	"github.com/UpdateHub/easyfota/metadata"
)

// Outcome is how an update attempt ended
type Outcome int

const (
	// OutcomePending means the attempt is still running
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeValidationFailed
	OutcomeTransferIncomplete
	OutcomeFinishFailed
	OutcomeTransportError
)

var outcomeNames = map[Outcome]string{
	OutcomePending:            "pending",
	OutcomeSuccess:            "success",
	OutcomeValidationFailed:   "validation-failed",
	OutcomeTransferIncomplete: "transfer-incomplete",
	OutcomeFinishFailed:       "finish-failed",
	OutcomeTransportError:     "transport-error",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// UpdateSession is the state of a single attempt. It lives from the
// session opening until it is finished or aborted.
type UpdateSession struct {
	Descriptor *metadata.FirmwareDescriptor
	BytesRead  int64
	Outcome    Outcome

	stream   imagesource.Session
	released bool
}

// NewUpdateSession wraps an open image source session
func NewUpdateSession(stream imagesource.Session) *UpdateSession {
	return &UpdateSession{stream: stream}
}

// Open tells whether the stream still has to be released
func (us *UpdateSession) Open() bool {
	return !us.released
}

// Finish finalizes the stream. The stream is released whatever the result.
func (us *UpdateSession) Finish() error {
	us.released = true

	return us.stream.Finish()
}

// Abort releases the stream if it's still open. An attempt without an
// outcome at this point failed on the transport.
func (us *UpdateSession) Abort() error {
	if us.Outcome == OutcomePending {
		us.Outcome = OutcomeTransportError
	}

	if us.released {
		return nil
	}

	us.released = true

	return us.stream.Abort()
}
