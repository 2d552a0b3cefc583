/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package policy decides whether a candidate firmware image may be
// installed over the running one
package policy

import (
	"bytes"

	"github.com/coreos/go-semver/semver"
	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/metadata"
)

var (
	// ErrInvalidArgument is returned when there is no candidate descriptor
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrVersionNotNewer is returned when the candidate version is not
	// greater than the running one
	ErrVersionNotNewer = errors.New("version not newer")
	// ErrSecureVersionTooLow is returned when the candidate secure
	// version is below the security floor
	ErrSecureVersionTooLow = errors.New("secure version too low")
)

// VersionScheme selects how versions are ordered
type VersionScheme string

const (
	// VersionSchemeBytes orders versions by raw byte comparison
	VersionSchemeBytes VersionScheme = "bytes"
	// VersionSchemeSemver orders versions as semantic versions, falling
	// back to VersionSchemeBytes when either side doesn't parse
	VersionSchemeSemver VersionScheme = "semver"
)

// Validator holds the policy toggles resolved at startup
type Validator struct {
	SkipVersionCheck bool
	AntiRollback     bool
	Scheme           VersionScheme
}

// Validate accepts (nil) or rejects (non-nil) "candidate". "floor" is
// only looked at when AntiRollback is enabled. Use errors.Cause on the
// result to find which rule rejected it.
func (v *Validator) Validate(candidate *metadata.FirmwareDescriptor, running *metadata.RunningImageInfo, floor uint32) error {
	if candidate == nil {
		return ErrInvalidArgument
	}

	if running == nil {
		running = &metadata.RunningImageInfo{}
	}

	if !v.SkipVersionCheck && v.compare(candidate.Version, running.Version) <= 0 {
		return errors.Wrapf(ErrVersionNotNewer, "candidate '%s', running '%s'", candidate.Version, running.Version)
	}

	if v.AntiRollback && candidate.SecureVersion < floor {
		return errors.Wrapf(ErrSecureVersionTooLow, "%d < %d", candidate.SecureVersion, floor)
	}

	return nil
}

func (v *Validator) compare(candidate, running string) int {
	if v.Scheme == VersionSchemeSemver {
		c, cErr := semver.NewVersion(candidate)
		r, rErr := semver.NewVersion(running)

		if cErr == nil && rErr == nil {
			return c.Compare(*r)
		}
	}

	return bytes.Compare([]byte(candidate), []byte(running))
}
