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

	"github.com/stretchr/testify/assert"
)

func TestTransientError(t *testing.T) {
	cause := errors.New("version not newer")

	err := NewTransientError(PolicyRejected, VersionNotNewer, cause)

	assert.False(t, err.IsFatal())
	assert.Equal(t, cause, err.Cause())
	assert.Equal(t, PolicyRejected, err.Kind())
	assert.Equal(t, VersionNotNewer, err.SubKind())
	assert.EqualError(t, err, "transient error (policy-rejected/version-not-newer): version not newer")
}

func TestFatalError(t *testing.T) {
	err := NewFatalError(FatalConfigurationMismatch, errors.New("bad url"))

	assert.True(t, err.IsFatal())
	assert.Equal(t, "", err.SubKind())
	assert.EqualError(t, err, "fatal error (fatal-configuration-mismatch): bad url")
}

func TestErrorWithoutCause(t *testing.T) {
	assert.EqualError(t, NewTransientError(RebootFailed, "", nil), "transient error (reboot-failed): generic error")
	assert.EqualError(t, NewFatalError(FatalConfigurationMismatch, nil), "fatal error (fatal-configuration-mismatch): generic error")
}
