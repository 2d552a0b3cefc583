/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tells which step of an attempt failed
type ErrorKind string

const (
	ConnectivityLost           ErrorKind = "connectivity-lost"
	SessionOpenFailed          ErrorKind = "session-open-failed"
	HeaderReadFailed           ErrorKind = "header-read-failed"
	PolicyRejected             ErrorKind = "policy-rejected"
	TransferChunkFailed        ErrorKind = "transfer-chunk-failed"
	TransferIncomplete         ErrorKind = "transfer-incomplete"
	FinishFailed               ErrorKind = "finish-failed"
	RebootFailed               ErrorKind = "reboot-failed"
	FatalConfigurationMismatch ErrorKind = "fatal-configuration-mismatch"
)

// Sub-kinds detailing PolicyRejected and FinishFailed
const (
	VersionNotNewer         = "version-not-newer"
	SecurityVersionTooLow   = "security-version-too-low"
	InvalidArgument         = "invalid-argument"
	SecurityFloorUnreadable = "security-floor-unreadable"
	ImageCorrupted          = "image-corrupted"
)

type EasyFotaErrorReporter interface {
	Cause() error
	IsFatal() bool
	Kind() ErrorKind
	SubKind() string
	error
}

type EasyFotaError struct {
	cause   error
	fatal   bool
	kind    ErrorKind
	subKind string
}

func (e *EasyFotaError) Cause() error {
	return e.cause
}

func (e *EasyFotaError) IsFatal() bool {
	return e.fatal
}

func (e *EasyFotaError) Kind() ErrorKind {
	return e.kind
}

func (e *EasyFotaError) SubKind() string {
	return e.subKind
}

func (e *EasyFotaError) Error() string {
	kind := string(e.kind)
	if e.subKind != "" {
		kind = fmt.Sprintf("%s/%s", e.kind, e.subKind)
	}

	var err error

	if e.fatal {
		err = errors.Wrapf(e.cause, "fatal error (%s)", kind)
	} else {
		err = errors.Wrapf(e.cause, "transient error (%s)", kind)
	}

	return err.Error()
}

func NewFatalError(kind ErrorKind, err error) EasyFotaErrorReporter {
	if err == nil {
		err = errors.New("generic error")
	}

	return &EasyFotaError{
		cause: err,
		fatal: true,
		kind:  kind,
	}
}

func NewTransientError(kind ErrorKind, subKind string, err error) EasyFotaErrorReporter {
	if err == nil {
		err = errors.New("generic error")
	}

	return &EasyFotaError{
		cause:   err,
		fatal:   false,
		kind:    kind,
		subKind: subKind,
	}
}
