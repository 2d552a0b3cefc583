/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/spf13/afero"
)

// Sha256sumLength is the size of a SHA-256 digest
const Sha256sumLength = sha256.Size

// DataSha256sum returns the raw SHA-256 digest of "data"
func DataSha256sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// CheckTrailingSha256sum verifies that the last Sha256sumLength bytes
// of the first "length" bytes of "path" are the SHA-256 digest of what
// comes before them
func CheckTrailingSha256sum(fsb afero.Fs, path string, length int64) (bool, error) {
	if length <= Sha256sumLength {
		return false, nil
	}

	file, err := fsb.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	hash := sha256.New()

	_, err = io.CopyN(hash, file, length-Sha256sumLength)
	if err != nil {
		return false, err
	}

	expected := make([]byte, Sha256sumLength)
	_, err = io.ReadFull(file, expected)
	if err != nil {
		return false, err
	}

	return bytes.Equal(hash.Sum(nil), expected), nil
}
