/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package imagesource streams a firmware image into the inactive slot
package imagesource

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/metadata"
)

var (
	// ErrValidateFailed is returned by Finish when the written image is corrupted
	ErrValidateFailed = errors.New("image validation failed")
	// ErrSmallSecureVersion is returned by Finish when the image secure
	// version is below the security floor
	ErrSmallSecureVersion = errors.New("image secure version lower than the security floor")
	// ErrSessionReleased is returned when using a finished or aborted session
	ErrSessionReleased = errors.New("session already released")
)

// StepStatus tells whether a transfer needs more steps
type StepStatus int

const (
	// StepInProgress means more data is expected
	StepInProgress StepStatus = iota
	// StepDone means the stream ended
	StepDone
)

// HeaderInitFunc customizes the headers sent with every request of a session
type HeaderInitFunc func(header http.Header) error

// Config holds what is needed to open a session
type Config struct {
	URL                 string
	CertPEM             []byte
	Timeout             time.Duration
	SkipCommonNameCheck bool
	KeepAlive           bool
	PartialHTTPDownload bool
	MaxHTTPRequestSize  int64
	ChunkSize           int
	AntiRollback        bool
	// ClientInit is invoked once while the session is being opened
	ClientInit HeaderInitFunc
}

// Source opens image sessions
type Source interface {
	Begin(cfg *Config) (Session, error)
}

// Session is one open image stream. Finish and Abort release it, any
// call after that fails with ErrSessionReleased.
type Session interface {
	ReadDescriptor() (*metadata.FirmwareDescriptor, error)
	PerformStep() (StepStatus, error)
	BytesRead() int64
	IsComplete() bool
	Finish() error
	Abort() error
}
